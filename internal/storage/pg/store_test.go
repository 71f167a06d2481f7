package pg

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pleygg/content-api/internal/domain"
	"github.com/pleygg/content-api/internal/storage"
	"github.com/pleygg/content-api/pkg/pagination"
	pkgtesting "github.com/pleygg/content-api/pkg/testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed store test in short mode")
	}

	ctx := context.Background()
	container := pkgtesting.NewPGContainerWithCleanup(ctx, t)

	pool, err := NewConnectionPool(ctx, PoolConfig{ConnStr: container.ConnString})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return NewStore(pool)
}

func draft(title, slug string, publishedAt int64) domain.Article {
	return domain.Article{
		LocaleTitle:  domain.LocaleString{"en": title},
		LocaleTeaser: domain.LocaleString{"en": "teaser"},
		LocaleBody:   domain.LocaleString{"en": "body"},
		LocaleSlug:   domain.LocaleString{"en": slug},
		Priority:     domain.PriorityDefault,
		Status:       domain.StatusDraft,
		PublishedAt:  publishedAt,
		PreviewToken: "token",
	}
}

func TestStore_CreateGetRoundtrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	actor := uuid.New()

	created, err := store.Create(ctx, draft("Hello", "hello", 1000), actor)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, actor, created.CreatedBy)

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.LocaleTitle.Get("en"))
	assert.Equal(t, "hello", got.LocaleSlug.Get("en"))
	assert.Equal(t, domain.StatusDraft, got.Status)
	assert.Equal(t, "token", got.PreviewToken)
	assert.False(t, got.IsDeleted)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestStore_GetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_UpdateReplacesFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	actor := uuid.New()

	created, err := store.Create(ctx, draft("Hello", "hello", 1000), actor)
	require.NoError(t, err)

	updated := created.Clone()
	updated.Status = domain.StatusPublished
	updated.PreviewToken = ""
	updated.LocaleTitle = domain.LocaleString{"en": "Hello v2"}

	got, err := store.Update(ctx, updated, actor)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, got.Status)
	assert.Empty(t, got.PreviewToken)
	assert.Equal(t, "Hello v2", got.LocaleTitle.Get("en"))
	assert.False(t, got.LastUpdatedAt.IsZero())
	assert.Equal(t, created.CreatedBy, got.CreatedBy)
}

func TestStore_UpdateMissing(t *testing.T) {
	store := newTestStore(t)

	a := draft("Ghost", "ghost", 0)
	a.ID = uuid.New()
	_, err := store.Update(context.Background(), a, uuid.New())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_DeleteSoft(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	actor := uuid.New()

	created, err := store.Create(ctx, draft("Hello", "hello", 1000), actor)
	require.NoError(t, err)

	require.NoError(t, store.DeleteSoft(ctx, created.ID, []string{"locations"}, actor))

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDeleted)
	assert.Equal(t, domain.StatusDeleted, got.Status)
	assert.Empty(t, got.PreviewToken)

	// second delete is idempotent at the data layer
	require.NoError(t, store.DeleteSoft(ctx, created.ID, nil, actor))

	// soft delete never removes the record
	_, err = store.Get(ctx, created.ID)
	require.NoError(t, err)
}

func TestStore_DeleteSoftMissing(t *testing.T) {
	store := newTestStore(t)

	err := store.DeleteSoft(context.Background(), uuid.New(), nil, uuid.New())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_SlugExists(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, draft("Hello", "hello", 1000), uuid.New())
	require.NoError(t, err)

	exists, err := store.SlugExists(ctx, "en", "hello")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.SlugExists(ctx, "en", "other")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStore_ListFiltersAndPaginates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	actor := uuid.New()

	for _, spec := range []struct {
		title       string
		status      domain.Status
		publishedAt int64
	}{
		{"Oldest", domain.StatusPublished, 1000},
		{"Middle", domain.StatusPublished, 2000},
		{"Newest", domain.StatusPublished, 3000},
		{"Draft", domain.StatusDraft, 4000},
	} {
		a := draft(spec.title, spec.title, spec.publishedAt)
		a.Status = spec.status
		_, err := store.Create(ctx, a, actor)
		require.NoError(t, err)
	}

	plan, err := pagination.Build(&pagination.Request{Limit: 2}, pagination.PublishedAtDesc)
	require.NoError(t, err)

	page, err := store.List(ctx, storage.ListQuery{
		Filters: []domain.Filter{
			domain.Eq(domain.FieldStatus, "PUBLISHED"),
			{Field: domain.FieldPublishedAt, Operator: domain.OpLte, Value: int64(3000)},
		},
		Page: plan,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Newest", page.Items[0].LocaleTitle.Get("en"))
	assert.Equal(t, "Middle", page.Items[1].LocaleTitle.Get("en"))
	assert.True(t, page.HasMore)
	require.NotNil(t, page.NextCursor)

	plan2, err := pagination.Build(&pagination.Request{Limit: 2, After: *page.NextCursor}, pagination.PublishedAtDesc)
	require.NoError(t, err)
	page2, err := store.List(ctx, storage.ListQuery{
		Filters: []domain.Filter{domain.Eq(domain.FieldStatus, "PUBLISHED")},
		Page:    plan2,
	})
	require.NoError(t, err)
	require.Len(t, page2.Items, 1)
	assert.Equal(t, "Oldest", page2.Items[0].LocaleTitle.Get("en"))
	assert.False(t, page2.HasMore)
}
