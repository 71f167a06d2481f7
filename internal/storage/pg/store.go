// Package pg implements the primary article store on Postgres.
package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	_ "embed"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pleygg/content-api/internal/domain"
	"github.com/pleygg/content-api/internal/storage"
	"github.com/pleygg/content-api/pkg/pagination"
)

//go:embed schema.sql
var schemaSQL string

// subCollectionTables maps the subcollection names callers may ask
// DeleteSoft to clear onto their backing tables. Unknown names are
// rejected rather than interpolated.
var subCollectionTables = map[string]string{
	"locations": "article_locations",
}

type Store struct {
	db *pgxpool.Pool
}

func NewStore(pool *ConnectionPool) *Store {
	return &Store{db: pool.GetConn()}
}

// EnsureSchema creates the articles tables when they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

const articleColumns = `
	id, locale_title, locale_teaser, locale_body, locale_slug, image,
	priority, hash_tag, status,
	COALESCE(published_at, 0),
	COALESCE(preview_token, ''),
	is_deleted,
	COALESCE(author_user_id, '00000000-0000-0000-0000-000000000000'::uuid),
	COALESCE(created_by, '00000000-0000-0000-0000-000000000000'::uuid),
	team_mentions, player_mentions, created_at, last_updated_at`

func scanArticle(row pgx.Row) (*domain.Article, error) {
	var a domain.Article
	var lastUpdated *time.Time
	err := row.Scan(
		&a.ID, &a.LocaleTitle, &a.LocaleTeaser, &a.LocaleBody, &a.LocaleSlug, &a.Image,
		&a.Priority, &a.HashTag, &a.Status,
		&a.PublishedAt,
		&a.PreviewToken,
		&a.IsDeleted,
		&a.AuthorUserID,
		&a.CreatedBy,
		&a.TeamMentions, &a.PlayerMentions, &a.CreatedAt, &lastUpdated,
	)
	if err != nil {
		return nil, err
	}
	if lastUpdated != nil {
		a.LastUpdatedAt = *lastUpdated
	}
	return &a, nil
}

// filterColumns maps filter fields onto SQL expressions. Slug filters
// hit the authored locale; the set is closed and validated upstream.
var filterColumns = map[domain.Field]string{
	domain.FieldPriority:    "priority",
	domain.FieldPublishedAt: "published_at",
	domain.FieldStatus:      "status",
	domain.FieldSlug:        "locale_slug ->> 'en'",
	domain.FieldIsDeleted:   "is_deleted",
}

var filterOperators = map[domain.Operator]string{
	domain.OpEq:  "=",
	domain.OpNeq: "<>",
	domain.OpLt:  "<",
	domain.OpLte: "<=",
	domain.OpGt:  ">",
	domain.OpGte: ">=",
}

var orderColumns = map[string]string{
	"publishedAt": "published_at",
	"createdAt":   "created_at",
}

func (s *Store) List(ctx context.Context, q storage.ListQuery) (*pagination.Result[domain.Article], error) {
	where := make([]string, 0, len(q.Filters)+1)
	args := make([]any, 0, len(q.Filters)+2)

	for _, f := range q.Filters {
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("invalid filter: %w", err)
		}
		col, ok := filterColumns[f.Field]
		if !ok {
			return nil, fmt.Errorf("unfilterable field: %q", f.Field)
		}
		args = append(args, f.Value)
		where = append(where, fmt.Sprintf("%s %s $%d", col, filterOperators[f.Operator], len(args)))
	}

	orderCol, ok := orderColumns[q.Page.OrderByField]
	if !ok {
		return nil, fmt.Errorf("cannot order by %q", q.Page.OrderByField)
	}
	dir := "DESC"
	cmp := "<"
	if q.Page.SortOrder == pagination.SortAsc {
		dir = "ASC"
		cmp = ">"
	}

	if q.Page.Cursor != "" {
		if orderCol != "published_at" {
			return nil, fmt.Errorf("cursor pagination requires ordering by publishedAt")
		}
		cursor, err := pagination.DecodeCursor(q.Page.Cursor)
		if err != nil {
			return nil, err
		}
		args = append(args, cursor.PublishedAt, cursor.ID)
		where = append(where, fmt.Sprintf("(published_at, id) %s ($%d, $%d)", cmp, len(args)-1, len(args)))
	}

	// Capping excessive limits is this store's contract; the planner
	// hands the requested value through untouched.
	limit := q.Page.Limit
	if limit <= 0 {
		limit = pagination.DefaultLimit
	}
	if limit > pagination.MaxLimit {
		limit = pagination.MaxLimit
	}

	query := "SELECT" + articleColumns + " FROM articles"
	if len(where) > 0 {
		query += " WHERE " + joinAnd(where)
	}
	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY %s %s, id %s LIMIT $%d", orderCol, dir, dir, len(args))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read articles: %w", err)
	}

	return pagination.NewResult(articles, limit, func(a domain.Article) (string, error) {
		return pagination.EncodeCursor(a.PublishedAt, a.ID)
	})
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	row := s.db.QueryRow(ctx, "SELECT"+articleColumns+" FROM articles WHERE id = $1", id)
	a, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return a, nil
}

func (s *Store) Create(ctx context.Context, article domain.Article, actorID uuid.UUID) (*domain.Article, error) {
	a := article.Clone()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedBy = actorID
	a.CreatedAt = time.Now().UTC()

	cmd := `
        INSERT INTO articles (
            id, locale_title, locale_teaser, locale_body, locale_slug, image,
            priority, hash_tag, status, published_at, preview_token, is_deleted,
            author_user_id, created_by, team_mentions, player_mentions, created_at
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
        RETURNING created_at;
    `
	err := s.db.QueryRow(
		ctx,
		cmd,
		a.ID,
		orEmpty(a.LocaleTitle),
		orEmpty(a.LocaleTeaser),
		orEmpty(a.LocaleBody),
		orEmpty(a.LocaleSlug),
		a.Image,
		a.Priority,
		nullIfEmpty(a.HashTag),
		a.Status,
		nullIfZero(a.PublishedAt),
		nullIfEmpty(a.PreviewToken),
		a.IsDeleted,
		nullIfNilUUID(a.AuthorUserID),
		nullIfNilUUID(a.CreatedBy),
		mentionsOrEmpty(a.TeamMentions),
		mentionsOrEmpty(a.PlayerMentions),
		a.CreatedAt,
	).Scan(&a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert article: %w", err)
	}

	return &a, nil
}

func (s *Store) Update(ctx context.Context, article domain.Article, actorID uuid.UUID) (*domain.Article, error) {
	a := article.Clone()

	cmd := `
        UPDATE articles SET
            locale_title = $2, locale_teaser = $3, locale_body = $4, locale_slug = $5,
            image = $6, priority = $7, hash_tag = $8, status = $9,
            published_at = $10, preview_token = $11,
            author_user_id = $12, team_mentions = $13, player_mentions = $14,
            last_updated_at = now()
        WHERE id = $1
        RETURNING created_at, COALESCE(created_by, '00000000-0000-0000-0000-000000000000'::uuid), last_updated_at;
    `
	var lastUpdated time.Time
	err := s.db.QueryRow(
		ctx,
		cmd,
		a.ID,
		orEmpty(a.LocaleTitle),
		orEmpty(a.LocaleTeaser),
		orEmpty(a.LocaleBody),
		orEmpty(a.LocaleSlug),
		a.Image,
		a.Priority,
		nullIfEmpty(a.HashTag),
		a.Status,
		nullIfZero(a.PublishedAt),
		nullIfEmpty(a.PreviewToken),
		nullIfNilUUID(a.AuthorUserID),
		mentionsOrEmpty(a.TeamMentions),
		mentionsOrEmpty(a.PlayerMentions),
	).Scan(&a.CreatedAt, &a.CreatedBy, &lastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update article: %w", err)
	}
	a.LastUpdatedAt = lastUpdated

	return &a, nil
}

func (s *Store) DeleteSoft(ctx context.Context, id uuid.UUID, subCollections []string, actorID uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
        UPDATE articles SET
            is_deleted = TRUE, status = 'DELETED', preview_token = NULL,
            last_updated_at = now()
        WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to soft-delete article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}

	for _, sub := range subCollections {
		table, ok := subCollectionTables[sub]
		if !ok {
			return fmt.Errorf("unknown subcollection: %q", sub)
		}
		if _, err := tx.Exec(ctx, "DELETE FROM "+table+" WHERE article_id = $1", id); err != nil {
			return fmt.Errorf("failed to clear subcollection %q: %w", sub, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

func (s *Store) SlugExists(ctx context.Context, language, slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM articles WHERE locale_slug ->> $1 = $2)",
		language, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

func joinAnd(parts []string) string {
	out := parts[0]
	for _, p := range parts[1:] {
		out += " AND " + p
	}
	return out
}

func orEmpty(ls domain.LocaleString) domain.LocaleString {
	if ls == nil {
		return domain.LocaleString{}
	}
	return ls
}

func mentionsOrEmpty(m []string) []string {
	if m == nil {
		return []string{}
	}
	return m
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullIfZero(n int64) *int64 {
	if n == 0 {
		return nil
	}
	return &n
}

func nullIfNilUUID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

var _ storage.Store = (*Store)(nil)
