// Package article owns the article state machine: it drives
// create/update/delete/get/list, and decides which propagation
// side-effects each transition fires.
package article

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pleygg/content-api/internal/apperr"
	"github.com/pleygg/content-api/internal/auth"
	"github.com/pleygg/content-api/internal/buildqueue"
	"github.com/pleygg/content-api/internal/domain"
	"github.com/pleygg/content-api/internal/locale"
	"github.com/pleygg/content-api/internal/propagation"
	"github.com/pleygg/content-api/internal/search"
	"github.com/pleygg/content-api/internal/slug"
	"github.com/pleygg/content-api/internal/storage"
	"github.com/pleygg/content-api/pkg/pagination"
)

// CollectionName is the entity kind announced on build-queue events.
const CollectionName = "Article"

// assetCloudName is stamped onto image payloads for the asset CDN.
const assetCloudName = "pley-gg"

// Engine composes the access gate, the primary store and the
// propagation executor. The store is the commit point: once a primary
// write succeeds the operation is successful to the caller, and
// propagation failures are logged and reconciled out of band.
type Engine struct {
	store    storage.Store
	gate     *auth.Gate
	executor *propagation.Executor
	now      func() time.Time
}

type Option func(*Engine)

// WithClock overrides the engine's time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(store storage.Store, gate *auth.Gate, executor *propagation.Executor, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		gate:     gate,
		executor: executor,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) nowMillis() int64 {
	return domain.EpochMillis(e.now())
}

// List returns a page of articles. The public surface needs no
// authentication but only ever sees live published records: the
// visibility filters are appended server-side.
func (e *Engine) List(ctx context.Context, caller Caller, in ListInput) (*pagination.Result[domain.Article], error) {
	if caller.Surface == auth.SurfaceAdmin {
		if err := e.gate.Authorize(ctx, caller.Surface, caller.Actor, auth.OpView, auth.PermArticleView); err != nil {
			return nil, err
		}
	}

	filters := make([]domain.Filter, 0, len(in.Filters)+2)
	for _, f := range in.Filters {
		if err := f.Validate(); err != nil {
			return nil, apperr.InvalidRequest(err.Error())
		}
		if caller.Surface == auth.SurfaceApp && !domain.PublicFields[f.Field] {
			return nil, apperr.InvalidRequest(fmt.Sprintf("cannot filter on %q", f.Field))
		}
		filters = append(filters, f)
	}

	if caller.Surface == auth.SurfaceApp {
		filters = append(filters,
			domain.Filter{Field: domain.FieldPublishedAt, Operator: domain.OpLte, Value: e.nowMillis()},
			domain.Eq(domain.FieldStatus, string(domain.StatusPublished)),
		)
	}

	plan, err := pagination.Build(in.Pagination, pagination.PublishedAtDesc)
	if err != nil {
		return nil, apperr.InvalidRequest(err.Error())
	}

	page, err := e.store.List(ctx, storage.ListQuery{Filters: filters, Page: plan})
	if err != nil {
		return nil, apperr.Upstream("failed to list articles", err)
	}

	page.Items = locale.Articles(page.Items, caller.languages())
	if caller.Surface == auth.SurfaceApp {
		for i := range page.Items {
			scrubPublic(&page.Items[i])
		}
	}
	return page, nil
}

// Get resolves an article by id or slug. Slug lookup never falls back
// to an unpublished match: it is restricted to live published records.
func (e *Engine) Get(ctx context.Context, caller Caller, in GetInput) (*domain.Article, error) {
	if caller.Surface == auth.SurfaceAdmin {
		if err := e.gate.Authorize(ctx, caller.Surface, caller.Actor, auth.OpView, auth.PermArticleView); err != nil {
			return nil, err
		}
	}

	if in.ID == nil && in.Slug == "" {
		return nil, apperr.InvalidRequest("nothing to look up on")
	}

	id := in.ID
	if id == nil {
		resolved, err := e.resolveSlug(ctx, in.Slug)
		if err != nil {
			return nil, err
		}
		id = resolved
	}

	record, err := e.store.Get(ctx, *id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("no article: %s", *id))
		}
		return nil, apperr.Upstream("failed to get article", err)
	}

	view := locale.Article(*record, caller.languages())

	if caller.Surface == auth.SurfaceApp {
		if !record.IsLive(e.nowMillis()) {
			if in.PreviewToken == "" || record.PreviewToken == "" || in.PreviewToken != record.PreviewToken {
				return nil, apperr.NotFound(fmt.Sprintf("not available: %s", *id))
			}
		}
		scrubPublic(&view)
	}

	return &view, nil
}

func (e *Engine) resolveSlug(ctx context.Context, slugValue string) (*uuid.UUID, error) {
	plan, _ := pagination.Build(&pagination.Request{Limit: 1}, pagination.PublishedAtDesc)
	page, err := e.store.List(ctx, storage.ListQuery{
		Filters: []domain.Filter{
			domain.Eq(domain.FieldIsDeleted, false),
			domain.Eq(domain.FieldSlug, slugValue),
			domain.Eq(domain.FieldStatus, string(domain.StatusPublished)),
			{Field: domain.FieldPublishedAt, Operator: domain.OpLte, Value: e.nowMillis()},
		},
		Page: plan,
	})
	if err != nil {
		return nil, apperr.Upstream("failed to resolve slug", err)
	}
	if len(page.Items) == 0 {
		return nil, apperr.NotFound("nothing found")
	}
	return &page.Items[0].ID, nil
}

// Create validates and defaults the input into a fresh record, commits
// it, and fires propagation when the article is born published.
func (e *Engine) Create(ctx context.Context, caller Caller, in CreateInput) (*domain.Article, error) {
	if err := e.gate.Authorize(ctx, caller.Surface, caller.Actor, auth.OpCreate, auth.PermArticleCreate); err != nil {
		return nil, err
	}

	title := in.LocaleTitle.Get(domain.DefaultLanguage)
	if title == "" {
		return nil, apperr.InvalidRequest("localeTitle requires an \"en\" entry")
	}
	if in.LocaleBody.Get(domain.DefaultLanguage) == "" {
		return nil, apperr.InvalidRequest("localeBody requires an \"en\" entry")
	}
	if in.LocaleTeaser.Get(domain.DefaultLanguage) == "" {
		return nil, apperr.InvalidRequest("localeTeaser requires an \"en\" entry")
	}
	if slug.Normalize(title) == "" {
		return nil, apperr.InvalidRequest("title does not yield a usable slug")
	}

	status := domain.DefaultStatus
	if in.Status != nil {
		if err := in.Status.Validate(); err != nil {
			return nil, apperr.InvalidRequest(err.Error())
		}
		status = *in.Status
	}
	priority := domain.DefaultPriority
	if in.Priority != nil {
		if err := in.Priority.Validate(); err != nil {
			return nil, apperr.InvalidRequest(err.Error())
		}
		priority = *in.Priority
	}

	nowMs := e.nowMillis()
	publishedAt := nowMs
	if in.PublishedAt != nil {
		publishedAt = *in.PublishedAt
	}
	author := caller.Actor.ID
	if in.AuthorUserID != nil {
		author = *in.AuthorUserID
	}

	slugValue, err := slug.Generate(ctx, e.store, title, domain.DefaultLanguage)
	if err != nil {
		return nil, apperr.Upstream("failed to generate slug", err)
	}

	record := domain.Article{
		LocaleTitle:    in.LocaleTitle.Clone(),
		LocaleTeaser:   in.LocaleTeaser.Clone(),
		LocaleBody:     in.LocaleBody.Clone(),
		LocaleSlug:     domain.LocaleString{domain.DefaultLanguage: slugValue},
		Image:          stampImage(in.Image),
		Priority:       priority,
		HashTag:        in.HashTag,
		Status:         status,
		PublishedAt:    publishedAt,
		AuthorUserID:   author,
		TeamMentions:   append([]string(nil), in.TeamMentions...),
		PlayerMentions: append([]string(nil), in.PlayerMentions...),
	}
	if status == domain.StatusDraft {
		record.PreviewToken = slug.IssuePreviewToken()
	}

	created, err := e.store.Create(ctx, record, caller.Actor.ID)
	if err != nil {
		return nil, apperr.Upstream("failed to create article", err)
	}

	view := locale.Article(*created, caller.languages())

	if created.Status == domain.StatusPublished {
		doc := search.DocumentFrom(view)
		e.propagate(ctx, propagation.Decision{
			Upsert: &doc,
			Enqueue: &buildqueue.Message{
				Event:       buildqueue.EventUpdate,
				Collection:  CollectionName,
				ItemID:      created.ID.String(),
				PublishedAt: created.PublishedAt,
			},
		})
	}

	return &view, nil
}

// Update replaces the supplied fields, re-issues or clears the preview
// token for the resulting status, and fires propagation per the
// transition: publishing upserts, demoting a previously-live article
// back to draft removes it downstream.
func (e *Engine) Update(ctx context.Context, caller Caller, in UpdateInput) (*domain.Article, error) {
	if err := e.gate.Authorize(ctx, caller.Surface, caller.Actor, auth.OpUpdate, auth.PermArticleUpdate); err != nil {
		return nil, err
	}

	current, err := e.store.Get(ctx, in.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("no article: %s", in.ID))
		}
		return nil, apperr.Upstream("failed to load article", err)
	}

	next, err := applyPatch(*current, in)
	if err != nil {
		return nil, err
	}

	// A fresh token on every edit back into draft invalidates
	// previously shared preview links.
	if next.Status == domain.StatusDraft {
		next.PreviewToken = slug.IssuePreviewToken()
	} else {
		next.PreviewToken = ""
	}

	updated, err := e.store.Update(ctx, next, caller.Actor.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("no article: %s", in.ID))
		}
		return nil, apperr.Upstream("failed to update article", err)
	}

	view := locale.Article(*updated, caller.languages())

	var decision propagation.Decision
	if updated.Status == domain.StatusPublished {
		doc := search.DocumentFrom(view)
		decision.Upsert = &doc
		decision.Enqueue = &buildqueue.Message{
			Event:       buildqueue.EventUpdate,
			Collection:  CollectionName,
			ItemID:      updated.ID.String(),
			PublishedAt: updated.PublishedAt,
		}
	}
	if current.IsLive(e.nowMillis()) && updated.Status == domain.StatusDraft {
		decision.DeleteID = updated.ID
		decision.Enqueue = &buildqueue.Message{
			Event:      buildqueue.EventDelete,
			Collection: CollectionName,
			ItemID:     updated.ID.String(),
		}
	}
	if !decision.IsZero() {
		e.propagate(ctx, decision)
	}

	return &view, nil
}

// Delete soft-deletes the article and unconditionally removes it from
// the search index and schedules a DELETE build.
func (e *Engine) Delete(ctx context.Context, caller Caller, id uuid.UUID) error {
	if err := e.gate.Authorize(ctx, caller.Surface, caller.Actor, auth.OpDelete, auth.PermArticleDelete); err != nil {
		return err
	}

	if err := e.store.DeleteSoft(ctx, id, []string{"locations"}, caller.Actor.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NotFound(fmt.Sprintf("no article: %s", id))
		}
		return apperr.Upstream("failed to delete article", err)
	}

	e.propagate(ctx, propagation.Decision{
		DeleteID: id,
		Enqueue: &buildqueue.Message{
			Event:      buildqueue.EventDelete,
			Collection: CollectionName,
			ItemID:     id.String(),
		},
	})

	return nil
}

// propagate runs after the primary write has committed. Failures are
// never surfaced as operation failure: the record is already correct
// and downstream systems reconcile from the log.
func (e *Engine) propagate(ctx context.Context, d propagation.Decision) {
	if err := e.executor.Propagate(ctx, d); err != nil {
		slog.Warn("propagation incomplete, primary record committed", "error", err)
	}
}

func applyPatch(current domain.Article, in UpdateInput) (domain.Article, error) {
	next := current.Clone()

	if in.LocaleTitle != nil {
		next.LocaleTitle = in.LocaleTitle.Clone()
	}
	if in.LocaleTeaser != nil {
		next.LocaleTeaser = in.LocaleTeaser.Clone()
	}
	if in.LocaleBody != nil {
		next.LocaleBody = in.LocaleBody.Clone()
	}
	if in.Image != nil {
		next.Image = stampImage(in.Image)
	}
	if in.Status != nil {
		if err := in.Status.Validate(); err != nil {
			return domain.Article{}, apperr.InvalidRequest(err.Error())
		}
		next.Status = *in.Status
	}
	if in.Priority != nil {
		if err := in.Priority.Validate(); err != nil {
			return domain.Article{}, apperr.InvalidRequest(err.Error())
		}
		next.Priority = *in.Priority
	}
	if in.PublishedAt != nil {
		next.PublishedAt = *in.PublishedAt
	}
	if in.HashTag != nil {
		next.HashTag = *in.HashTag
	}
	if in.AuthorUserID != nil {
		next.AuthorUserID = *in.AuthorUserID
	}
	if in.TeamMentions != nil {
		next.TeamMentions = append([]string(nil), in.TeamMentions...)
	}
	if in.PlayerMentions != nil {
		next.PlayerMentions = append([]string(nil), in.PlayerMentions...)
	}

	return next, nil
}

// stampImage returns a copy of the image annotated for the asset CDN,
// never mutating the caller's payload.
func stampImage(img *domain.Image) *domain.Image {
	if img == nil {
		return nil
	}
	out := *img
	out.CloudinaryAsset = true
	out.CloudName = assetCloudName
	return &out
}

// scrubPublic removes admin-only fields from a public-surface view.
func scrubPublic(a *domain.Article) {
	a.PreviewToken = ""
	a.CreatedBy = uuid.Nil
}
