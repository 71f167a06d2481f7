// Package router binds the article engine to the HTTP surfaces. The
// admin surface carries the full CRUD set; the public surface exposes
// read-only listing and lookup.
package router

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pleygg/content-api/internal/apperr"
	"github.com/pleygg/content-api/internal/article"
	"github.com/pleygg/content-api/internal/auth"
	"github.com/pleygg/content-api/internal/domain"
	"github.com/pleygg/content-api/internal/dto"
	"github.com/pleygg/content-api/pkg/pagination"
	"github.com/pleygg/content-api/pkg/stringsutil"
)

type AdminRouter struct {
	e      *echo.Echo
	engine *article.Engine
	oracle auth.Oracle
}

func NewAdminRouter(e *echo.Echo, engine *article.Engine, oracle auth.Oracle) *AdminRouter {
	return &AdminRouter{
		e:      e,
		engine: engine,
		oracle: oracle,
	}
}

func (r *AdminRouter) Bind() {
	g := r.e.Group("/admin/articles", auth.Middleware(r.oracle, auth.SurfaceAdmin))
	g.GET("", r.listHandler)
	g.GET("/:id", r.getHandler)
	g.POST("", r.createHandler)
	g.PUT("/:id", r.updateHandler)
	g.DELETE("/:id", r.deleteHandler)
}

func (r *AdminRouter) caller(c echo.Context) article.Caller {
	return article.Caller{
		Surface:   auth.SurfaceAdmin,
		Actor:     auth.ActorFrom(c),
		Languages: languagesFrom(c),
	}
}

// listHandler godoc
// @Summary List articles
// @Description Lists articles with optional filters, newest first
// @Tags admin
// @Produce json
// @Param limit query int false "Page size"
// @Param after query string false "Cursor from the previous page"
// @Success 200 {object} pagination.Result[dto.Article]
// @Router /admin/articles [get]
func (r *AdminRouter) listHandler(c echo.Context) error {
	in, err := bindListInput(c)
	if err != nil {
		return err
	}

	page, err := r.engine.List(c.Request().Context(), r.caller(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.FromPage(page))
}

// getHandler godoc
// @Summary Get an article
// @Tags admin
// @Produce json
// @Param id path string true "Article id"
// @Success 200 {object} dto.Article
// @Router /admin/articles/{id} [get]
func (r *AdminRouter) getHandler(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.InvalidRequest("invalid article id")
	}

	got, err := r.engine.Get(c.Request().Context(), r.caller(c), article.GetInput{ID: &id})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.FromArticle(*got))
}

// createHandler godoc
// @Summary Create an article
// @Tags admin
// @Accept json
// @Produce json
// @Param article body dto.CreateArticleRequest true "Article payload"
// @Success 201 {object} dto.Article
// @Router /admin/articles [post]
func (r *AdminRouter) createHandler(c echo.Context) error {
	var req dto.CreateArticleRequest
	if err := c.Bind(&req); err != nil {
		return apperr.InvalidRequest("invalid request body")
	}

	in, err := req.ToInput()
	if err != nil {
		return err
	}

	created, err := r.engine.Create(c.Request().Context(), r.caller(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.FromArticle(*created))
}

// updateHandler godoc
// @Summary Update an article
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Article id"
// @Param article body dto.UpdateArticleRequest true "Fields to replace"
// @Success 200 {object} dto.Article
// @Router /admin/articles/{id} [put]
func (r *AdminRouter) updateHandler(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.InvalidRequest("invalid article id")
	}

	var req dto.UpdateArticleRequest
	if err := c.Bind(&req); err != nil {
		return apperr.InvalidRequest("invalid request body")
	}

	in, err := req.ToInput(id)
	if err != nil {
		return err
	}

	updated, err := r.engine.Update(c.Request().Context(), r.caller(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.FromArticle(*updated))
}

// deleteHandler godoc
// @Summary Delete an article
// @Description Soft-deletes the article and removes it downstream
// @Tags admin
// @Param id path string true "Article id"
// @Success 204
// @Router /admin/articles/{id} [delete]
func (r *AdminRouter) deleteHandler(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.InvalidRequest("invalid article id")
	}

	if err := r.engine.Delete(c.Request().Context(), r.caller(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type PublicRouter struct {
	e      *echo.Echo
	engine *article.Engine
}

func NewPublicRouter(e *echo.Echo, engine *article.Engine) *PublicRouter {
	return &PublicRouter{
		e:      e,
		engine: engine,
	}
}

func (r *PublicRouter) Bind() {
	r.e.GET("/articles", r.listHandler)
	r.e.GET("/articles/:idOrSlug", r.getHandler)
}

func (r *PublicRouter) caller(c echo.Context) article.Caller {
	return article.Caller{
		Surface:   auth.SurfaceApp,
		Languages: languagesFrom(c),
	}
}

// listHandler godoc
// @Summary List published articles
// @Description Lists live published articles, newest first
// @Tags public
// @Produce json
// @Param limit query int false "Page size"
// @Param after query string false "Cursor from the previous page"
// @Param languages query string false "Comma-separated language preference"
// @Success 200 {object} pagination.Result[dto.Article]
// @Router /articles [get]
func (r *PublicRouter) listHandler(c echo.Context) error {
	in, err := bindListInput(c)
	if err != nil {
		return err
	}

	page, err := r.engine.List(c.Request().Context(), r.caller(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.FromPage(page))
}

// getHandler godoc
// @Summary Get a published article
// @Description Resolves by id when the path segment parses as a UUID, by slug otherwise. A previewToken query param reveals a matching draft.
// @Tags public
// @Produce json
// @Param idOrSlug path string true "Article id or slug"
// @Param previewToken query string false "Draft preview token"
// @Success 200 {object} dto.Article
// @Router /articles/{idOrSlug} [get]
func (r *PublicRouter) getHandler(c echo.Context) error {
	in := article.GetInput{
		PreviewToken: c.QueryParam("previewToken"),
	}

	param := c.Param("idOrSlug")
	if id, err := uuid.Parse(param); err == nil {
		in.ID = &id
	} else {
		in.Slug = param
	}

	got, err := r.engine.Get(c.Request().Context(), r.caller(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.FromArticle(*got))
}

// bindListInput reads pagination from query-tagged params and filters
// from a JSON-encoded `filters` query param.
func bindListInput(c echo.Context) (article.ListInput, error) {
	var page pagination.Request
	if err := c.Bind(&page); err != nil {
		return article.ListInput{}, apperr.InvalidRequest("invalid list parameters")
	}

	var filters []domain.Filter
	if raw := c.QueryParam("filters"); raw != "" {
		var reqFilters []dto.Filter
		if err := json.Unmarshal([]byte(raw), &reqFilters); err != nil {
			return article.ListInput{}, apperr.InvalidRequest("filters must be a JSON array")
		}
		parsed, err := dto.FiltersToDomain(reqFilters)
		if err != nil {
			return article.ListInput{}, err
		}
		filters = parsed
	}

	return article.ListInput{
		Filters:    filters,
		Pagination: &page,
	}, nil
}

func languagesFrom(c echo.Context) []string {
	raw := c.QueryParam("languages")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return stringsutil.RemoveEmptyStrings(parts)
}
