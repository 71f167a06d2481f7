package article

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pleygg/content-api/internal/apperr"
	"github.com/pleygg/content-api/internal/auth"
	"github.com/pleygg/content-api/internal/buildqueue"
	"github.com/pleygg/content-api/internal/domain"
	"github.com/pleygg/content-api/internal/propagation"
	"github.com/pleygg/content-api/internal/search"
	"github.com/pleygg/content-api/internal/storage"
	"github.com/pleygg/content-api/pkg/pagination"
)

// testNow is the fixed engine clock for every test.
var testNow = time.UnixMilli(5_000_000)

// callLog records the global order of store and propagation calls so
// tests can assert the write-then-propagate sequencing.
type callLog struct {
	seq []string
}

func (l *callLog) add(name string) { l.seq = append(l.seq, name) }

type fakeStore struct {
	log      *callLog
	articles map[uuid.UUID]domain.Article
}

func newFakeStore(log *callLog) *fakeStore {
	return &fakeStore{log: log, articles: make(map[uuid.UUID]domain.Article)}
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		panic(fmt.Sprintf("not a number: %T", v))
	}
}

func matches(a domain.Article, f domain.Filter) bool {
	switch f.Field {
	case domain.FieldStatus:
		return cmpString(string(a.Status), f)
	case domain.FieldPriority:
		return cmpString(string(a.Priority), f)
	case domain.FieldSlug:
		return cmpString(a.LocaleSlug.Get("en"), f)
	case domain.FieldIsDeleted:
		want := f.Value.(bool)
		if f.Operator == domain.OpNeq {
			return a.IsDeleted != want
		}
		return a.IsDeleted == want
	case domain.FieldPublishedAt:
		return cmpInt(a.PublishedAt, toInt64(f.Value), f.Operator)
	}
	return false
}

func cmpString(have string, f domain.Filter) bool {
	want := f.Value.(string)
	if f.Operator == domain.OpNeq {
		return have != want
	}
	return have == want
}

func cmpInt(have, want int64, op domain.Operator) bool {
	switch op {
	case domain.OpEq:
		return have == want
	case domain.OpNeq:
		return have != want
	case domain.OpLt:
		return have < want
	case domain.OpLte:
		return have <= want
	case domain.OpGt:
		return have > want
	case domain.OpGte:
		return have >= want
	}
	return false
}

func (s *fakeStore) List(_ context.Context, q storage.ListQuery) (*pagination.Result[domain.Article], error) {
	s.log.add("store-list")

	var out []domain.Article
	for _, a := range s.articles {
		ok := true
		for _, f := range q.Filters {
			if !matches(a, f) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, a.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt > out[j].PublishedAt })

	limit := q.Page.Limit
	if limit <= 0 {
		limit = pagination.DefaultLimit
	}
	if len(out) > limit+1 {
		out = out[:limit+1]
	}
	return pagination.NewResult(out, limit, func(a domain.Article) (string, error) {
		return pagination.EncodeCursor(a.PublishedAt, a.ID)
	})
}

func (s *fakeStore) Get(_ context.Context, id uuid.UUID) (*domain.Article, error) {
	s.log.add("store-get")
	a, ok := s.articles[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := a.Clone()
	return &out, nil
}

func (s *fakeStore) Create(_ context.Context, article domain.Article, actorID uuid.UUID) (*domain.Article, error) {
	s.log.add("store-create")
	a := article.Clone()
	a.ID = uuid.New()
	a.CreatedBy = actorID
	a.CreatedAt = testNow
	s.articles[a.ID] = a
	out := a.Clone()
	return &out, nil
}

func (s *fakeStore) Update(_ context.Context, article domain.Article, _ uuid.UUID) (*domain.Article, error) {
	s.log.add("store-update")
	current, ok := s.articles[article.ID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	a := article.Clone()
	a.CreatedAt = current.CreatedAt
	a.CreatedBy = current.CreatedBy
	a.LastUpdatedAt = testNow
	s.articles[a.ID] = a
	out := a.Clone()
	return &out, nil
}

func (s *fakeStore) DeleteSoft(_ context.Context, id uuid.UUID, _ []string, _ uuid.UUID) error {
	s.log.add("store-delete")
	a, ok := s.articles[id]
	if !ok {
		return storage.ErrNotFound
	}
	a.IsDeleted = true
	a.Status = domain.StatusDeleted
	a.PreviewToken = ""
	s.articles[id] = a
	return nil
}

func (s *fakeStore) SlugExists(_ context.Context, _, slug string) (bool, error) {
	for _, a := range s.articles {
		if a.LocaleSlug.Get("en") == slug {
			return true, nil
		}
	}
	return false, nil
}

type fakeIndex struct {
	log       *callLog
	upsertErr error
	deleteErr error
	upserts   []search.Document
	deletes   []uuid.UUID
}

func (f *fakeIndex) Upsert(_ context.Context, doc search.Document) error {
	f.log.add("index-upsert")
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts = append(f.upserts, doc)
	return nil
}

func (f *fakeIndex) Delete(_ context.Context, id uuid.UUID) error {
	f.log.add("index-delete")
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes = append(f.deletes, id)
	return nil
}

type fakeQueue struct {
	log      *callLog
	err      error
	messages []buildqueue.Message
}

func (f *fakeQueue) Enqueue(_ context.Context, msg buildqueue.Message) error {
	f.log.add("build-enqueue")
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msg)
	return nil
}

type allowAll struct{}

func (allowAll) Authenticate(context.Context, auth.Surface, string) (*auth.Actor, error) {
	return nil, nil
}

func (allowAll) IsPermitted(context.Context, auth.Actor, auth.Operation, auth.Permission) (bool, error) {
	return true, nil
}

type denyAll struct{ allowAll }

func (denyAll) IsPermitted(context.Context, auth.Actor, auth.Operation, auth.Permission) (bool, error) {
	return false, nil
}

type fixture struct {
	engine *Engine
	store  *fakeStore
	index  *fakeIndex
	queue  *fakeQueue
	log    *callLog
	admin  Caller
	public Caller
}

func newFixture(t *testing.T, oracle auth.Oracle) *fixture {
	t.Helper()
	log := &callLog{}
	store := newFakeStore(log)
	index := &fakeIndex{log: log}
	queue := &fakeQueue{log: log}
	engine := NewEngine(
		store,
		auth.NewGate(oracle),
		propagation.NewExecutor(index, queue, nil),
		WithClock(func() time.Time { return testNow }),
	)
	return &fixture{
		engine: engine,
		store:  store,
		index:  index,
		queue:  queue,
		log:    log,
		admin: Caller{
			Surface: auth.SurfaceAdmin,
			Actor:   &auth.Actor{ID: uuid.New(), Type: auth.ActorAdmin, Role: "editor"},
		},
		public: Caller{Surface: auth.SurfaceApp},
	}
}

func createInput(title string) CreateInput {
	return CreateInput{
		LocaleTitle:  domain.LocaleString{"en": title},
		LocaleTeaser: domain.LocaleString{"en": "teaser"},
		LocaleBody:   domain.LocaleString{"en": "<p>body</p>"},
	}
}

func statusPtr(s domain.Status) *domain.Status { return &s }

func TestCreate_StatusOmittedDefaultsToDraft(t *testing.T) {
	f := newFixture(t, allowAll{})

	got, err := f.engine.Create(context.Background(), f.admin, createInput("Hello World"))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusDraft, got.Status)
	assert.NotEmpty(t, got.PreviewToken, "drafts carry a preview token")
	assert.Equal(t, domain.PriorityDefault, got.Priority)
	assert.Equal(t, domain.EpochMillis(testNow), got.PublishedAt)
	assert.Equal(t, f.admin.Actor.ID, got.AuthorUserID)
	assert.Equal(t, "hello-world", got.Slug)

	// a draft fires no propagation
	assert.Equal(t, []string{"store-create"}, f.log.seq)
}

func TestCreate_PublishedPropagatesAfterWrite(t *testing.T) {
	f := newFixture(t, allowAll{})

	got, err := f.engine.Create(context.Background(), f.admin, CreateInput{
		LocaleTitle:  domain.LocaleString{"en": "Hello World"},
		LocaleTeaser: domain.LocaleString{"en": "teaser"},
		LocaleBody:   domain.LocaleString{"en": "<p>body</p>"},
		Status:       statusPtr(domain.StatusPublished),
	})
	require.NoError(t, err)

	assert.Empty(t, got.PreviewToken, "published articles carry no preview token")
	assert.Equal(t, []string{"store-create", "index-upsert", "build-enqueue"}, f.log.seq)

	require.Len(t, f.index.upserts, 1)
	doc := f.index.upserts[0]
	assert.Equal(t, got.ID.String(), doc.ObjectID)
	assert.Equal(t, "Hello World", doc.Title)
	assert.Equal(t, "body", doc.Body, "index body is markup-stripped")

	require.Len(t, f.queue.messages, 1)
	msg := f.queue.messages[0]
	assert.Equal(t, buildqueue.EventUpdate, msg.Event)
	assert.Equal(t, CollectionName, msg.Collection)
	assert.Equal(t, got.ID.String(), msg.ItemID)
	assert.Equal(t, got.PublishedAt, msg.PublishedAt)
}

func TestCreate_RequiresEnglishLocales(t *testing.T) {
	f := newFixture(t, allowAll{})

	in := createInput("Hello")
	in.LocaleBody = domain.LocaleString{"da": "krop"}

	_, err := f.engine.Create(context.Background(), f.admin, in)
	assert.Equal(t, apperr.CodeInvalidRequest, apperr.CodeOf(err))
	assert.Empty(t, f.log.seq, "validation failures happen before any write")
}

func TestCreate_SlugCollisionSuffixed(t *testing.T) {
	f := newFixture(t, allowAll{})
	ctx := context.Background()

	first, err := f.engine.Create(ctx, f.admin, createInput("Hello World"))
	require.NoError(t, err)
	assert.Equal(t, "hello-world", first.Slug)

	second, err := f.engine.Create(ctx, f.admin, createInput("Hello World"))
	require.NoError(t, err)
	assert.Equal(t, "hello-world-2", second.Slug)
}

func TestCreate_AccessDenied(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		f := newFixture(t, allowAll{})
		caller := Caller{Surface: auth.SurfaceAdmin}
		_, err := f.engine.Create(context.Background(), caller, createInput("x"))
		assert.Equal(t, apperr.CodeUnauthenticated, apperr.CodeOf(err))
	})

	t.Run("missing permission", func(t *testing.T) {
		f := newFixture(t, denyAll{})
		_, err := f.engine.Create(context.Background(), f.admin, createInput("x"))
		assert.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))
	})

	t.Run("public surface", func(t *testing.T) {
		f := newFixture(t, allowAll{})
		_, err := f.engine.Create(context.Background(), f.public, createInput("x"))
		assert.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))
	})
}

func TestUpdate_PublishingDraft(t *testing.T) {
	f := newFixture(t, allowAll{})
	ctx := context.Background()

	draft, err := f.engine.Create(ctx, f.admin, createInput("Hello World"))
	require.NoError(t, err)
	require.NotEmpty(t, draft.PreviewToken)

	f.log.seq = nil
	got, err := f.engine.Update(ctx, f.admin, UpdateInput{
		ID:     draft.ID,
		Status: statusPtr(domain.StatusPublished),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPublished, got.Status)
	assert.Empty(t, got.PreviewToken, "token cleared on transition out of draft")
	assert.Equal(t, []string{"store-get", "store-update", "index-upsert", "build-enqueue"}, f.log.seq)
	require.Len(t, f.queue.messages, 1)
	assert.Equal(t, buildqueue.EventUpdate, f.queue.messages[0].Event)
}

func TestUpdate_DemotingLiveArticle(t *testing.T) {
	f := newFixture(t, allowAll{})
	ctx := context.Background()

	past := domain.EpochMillis(testNow) - 1000
	live, err := f.engine.Create(ctx, f.admin, CreateInput{
		LocaleTitle:  domain.LocaleString{"en": "Live"},
		LocaleTeaser: domain.LocaleString{"en": "t"},
		LocaleBody:   domain.LocaleString{"en": "b"},
		Status:       statusPtr(domain.StatusPublished),
		PublishedAt:  &past,
	})
	require.NoError(t, err)

	f.log.seq = nil
	f.queue.messages = nil
	got, err := f.engine.Update(ctx, f.admin, UpdateInput{
		ID:     live.ID,
		Status: statusPtr(domain.StatusDraft),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusDraft, got.Status)
	assert.NotEmpty(t, got.PreviewToken, "fresh token on re-draft")
	assert.Equal(t, []string{"store-get", "store-update", "index-delete", "build-enqueue"}, f.log.seq)
	assert.Equal(t, []uuid.UUID{live.ID}, f.index.deletes)
	require.Len(t, f.queue.messages, 1)
	assert.Equal(t, buildqueue.EventDelete, f.queue.messages[0].Event)
	assert.Zero(t, f.queue.messages[0].PublishedAt)
}

func TestUpdate_DemotingNotYetLiveArticleIsInert(t *testing.T) {
	f := newFixture(t, allowAll{})
	ctx := context.Background()

	future := domain.EpochMillis(testNow) + 60_000
	scheduled, err := f.engine.Create(ctx, f.admin, CreateInput{
		LocaleTitle:  domain.LocaleString{"en": "Scheduled"},
		LocaleTeaser: domain.LocaleString{"en": "t"},
		LocaleBody:   domain.LocaleString{"en": "b"},
		Status:       statusPtr(domain.StatusPublished),
		PublishedAt:  &future,
	})
	require.NoError(t, err)

	f.log.seq = nil
	_, err = f.engine.Update(ctx, f.admin, UpdateInput{
		ID:     scheduled.ID,
		Status: statusPtr(domain.StatusDraft),
	})
	require.NoError(t, err)

	// never went live, so there is nothing downstream to remove
	assert.Equal(t, []string{"store-get", "store-update"}, f.log.seq)
}

func TestUpdate_EditingDraftReissuesToken(t *testing.T) {
	f := newFixture(t, allowAll{})
	ctx := context.Background()

	draft, err := f.engine.Create(ctx, f.admin, createInput("Hello"))
	require.NoError(t, err)

	f.log.seq = nil
	got, err := f.engine.Update(ctx, f.admin, UpdateInput{
		ID:          draft.ID,
		LocaleTitle: domain.LocaleString{"en": "Hello v2"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusDraft, got.Status)
	assert.NotEmpty(t, got.PreviewToken)
	assert.Equal(t, "Hello v2", got.Title)
	// still a draft: no propagation
	assert.Equal(t, []string{"store-get", "store-update"}, f.log.seq)
}

func TestUpdate_EditingPublishedArticleReindexes(t *testing.T) {
	f := newFixture(t, allowAll{})
	ctx := context.Background()

	live, err := f.engine.Create(ctx, f.admin, CreateInput{
		LocaleTitle:  domain.LocaleString{"en": "Live"},
		LocaleTeaser: domain.LocaleString{"en": "t"},
		LocaleBody:   domain.LocaleString{"en": "b"},
		Status:       statusPtr(domain.StatusPublished),
	})
	require.NoError(t, err)

	f.log.seq = nil
	f.index.upserts = nil
	f.queue.messages = nil

	_, err = f.engine.Update(ctx, f.admin, UpdateInput{
		ID:          live.ID,
		LocaleBody:  domain.LocaleString{"en": "new body"},
		LocaleTitle: domain.LocaleString{"en": "Live v2"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"store-get", "store-update", "index-upsert", "build-enqueue"}, f.log.seq)
	require.Len(t, f.index.upserts, 1)
	assert.Equal(t, "Live v2", f.index.upserts[0].Title)
}

func TestUpdate_MissingArticle(t *testing.T) {
	f := newFixture(t, allowAll{})

	_, err := f.engine.Update(context.Background(), f.admin, UpdateInput{ID: uuid.New()})
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestDelete_SoftDeletesAndPropagates(t *testing.T) {
	f := newFixture(t, allowAll{})
	ctx := context.Background()

	live, err := f.engine.Create(ctx, f.admin, CreateInput{
		LocaleTitle:  domain.LocaleString{"en": "Live"},
		LocaleTeaser: domain.LocaleString{"en": "t"},
		LocaleBody:   domain.LocaleString{"en": "b"},
		Status:       statusPtr(domain.StatusPublished),
	})
	require.NoError(t, err)

	f.log.seq = nil
	require.NoError(t, f.engine.Delete(ctx, f.admin, live.ID))

	assert.Equal(t, []string{"store-delete", "index-delete", "build-enqueue"}, f.log.seq)

	stored := f.store.articles[live.ID]
	assert.True(t, stored.IsDeleted)
	assert.Equal(t, domain.StatusDeleted, stored.Status)
	assert.Empty(t, stored.PreviewToken)

	// soft: the record is still there, and a second delete must not throw
	require.NoError(t, f.engine.Delete(ctx, f.admin, live.ID))
}

func TestDelete_PropagationFailureNotSurfaced(t *testing.T) {
	f := newFixture(t, allowAll{})
	ctx := context.Background()

	live, err := f.engine.Create(ctx, f.admin, CreateInput{
		LocaleTitle:  domain.LocaleString{"en": "Live"},
		LocaleTeaser: domain.LocaleString{"en": "t"},
		LocaleBody:   domain.LocaleString{"en": "b"},
		Status:       statusPtr(domain.StatusPublished),
	})
	require.NoError(t, err)

	f.index.deleteErr = fmt.Errorf("index down")
	f.log.seq = nil

	// the primary write is the commit point; the caller sees success
	require.NoError(t, f.engine.Delete(ctx, f.admin, live.ID))
	assert.Equal(t, []string{"store-delete", "index-delete", "build-enqueue"}, f.log.seq)
}

func TestGet_RequiresIDOrSlug(t *testing.T) {
	f := newFixture(t, allowAll{})

	_, err := f.engine.Get(context.Background(), f.public, GetInput{})
	assert.Equal(t, apperr.CodeInvalidRequest, apperr.CodeOf(err))
}

func TestGet_PublicBySlug(t *testing.T) {
	f := newFixture(t, allowAll{})
	ctx := context.Background()

	past := domain.EpochMillis(testNow) - 1000
	_, err := f.engine.Create(ctx, f.admin, CreateInput{
		LocaleTitle:  domain.LocaleString{"en": "Hello World"},
		LocaleTeaser: domain.LocaleString{"en": "t"},
		LocaleBody:   domain.LocaleString{"en": "b"},
		Status:       statusPtr(domain.StatusPublished),
		PublishedAt:  &past,
	})
	require.NoError(t, err)

	got, err := f.engine.Get(ctx, f.public, GetInput{Slug: "hello-world"})
	require.NoError(t, err)
	assert.Equal(t, "Hello World", got.Title)
	assert.Empty(t, got.PreviewToken, "public views carry no admin fields")
	assert.Equal(t, uuid.Nil, got.CreatedBy)
}

func TestGet_PublicBySlugNeverResolvesDrafts(t *testing.T) {
	f := newFixture(t, allowAll{})
	ctx := context.Background()

	// a draft with this slug exists, but slug lookup only sees live
	// published records
	_, err := f.engine.Create(ctx, f.admin, createInput("Hello World"))
	require.NoError(t, err)

	_, err = f.engine.Get(ctx, f.public, GetInput{Slug: "hello-world"})
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestGet_PreviewToken(t *testing.T) {
	f := newFixture(t, allowAll{})
	ctx := context.Background()

	draft, err := f.engine.Create(ctx, f.admin, createInput("Hello"))
	require.NoError(t, err)

	t.Run("matching token reveals the draft", func(t *testing.T) {
		got, err := f.engine.Get(ctx, f.public, GetInput{
			ID:           &draft.ID,
			PreviewToken: draft.PreviewToken,
		})
		require.NoError(t, err)
		assert.Equal(t, "Hello", got.Title)
	})

	t.Run("wrong token is not found", func(t *testing.T) {
		_, err := f.engine.Get(ctx, f.public, GetInput{
			ID:           &draft.ID,
			PreviewToken: "guessed",
		})
		assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
	})

	t.Run("missing token is not found", func(t *testing.T) {
		_, err := f.engine.Get(ctx, f.public, GetInput{ID: &draft.ID})
		assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
	})
}

func TestGet_AdminSeesDrafts(t *testing.T) {
	f := newFixture(t, allowAll{})
	ctx := context.Background()

	draft, err := f.engine.Create(ctx, f.admin, createInput("Hello"))
	require.NoError(t, err)

	got, err := f.engine.Get(ctx, f.admin, GetInput{ID: &draft.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, got.Status)
	assert.NotEmpty(t, got.PreviewToken)
}

func TestList_PublicSeesOnlyLivePublished(t *testing.T) {
	f := newFixture(t, allowAll{})
	ctx := context.Background()

	past := domain.EpochMillis(testNow) - 1000
	future := domain.EpochMillis(testNow) + 60_000

	for _, spec := range []struct {
		title       string
		status      *domain.Status
		publishedAt *int64
	}{
		{"Live", statusPtr(domain.StatusPublished), &past},
		{"Scheduled", statusPtr(domain.StatusPublished), &future},
		{"Drafted", nil, &past},
	} {
		_, err := f.engine.Create(ctx, f.admin, CreateInput{
			LocaleTitle:  domain.LocaleString{"en": spec.title},
			LocaleTeaser: domain.LocaleString{"en": "t"},
			LocaleBody:   domain.LocaleString{"en": "b"},
			Status:       spec.status,
			PublishedAt:  spec.publishedAt,
		})
		require.NoError(t, err)
	}

	page, err := f.engine.List(ctx, f.public, ListInput{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Live", page.Items[0].Title)
	assert.Empty(t, page.Items[0].PreviewToken)
}

func TestList_PublicFilterFieldsRestricted(t *testing.T) {
	f := newFixture(t, allowAll{})

	_, err := f.engine.List(context.Background(), f.public, ListInput{
		Filters: []domain.Filter{domain.Eq(domain.FieldStatus, "DRAFT")},
	})
	assert.Equal(t, apperr.CodeInvalidRequest, apperr.CodeOf(err))
}

func TestList_PublicAllowsPriorityFilter(t *testing.T) {
	f := newFixture(t, allowAll{})
	ctx := context.Background()

	past := domain.EpochMillis(testNow) - 1000
	breaking := domain.PriorityBreaking
	_, err := f.engine.Create(ctx, f.admin, CreateInput{
		LocaleTitle:  domain.LocaleString{"en": "Breaking"},
		LocaleTeaser: domain.LocaleString{"en": "t"},
		LocaleBody:   domain.LocaleString{"en": "b"},
		Status:       statusPtr(domain.StatusPublished),
		Priority:     &breaking,
		PublishedAt:  &past,
	})
	require.NoError(t, err)
	_, err = f.engine.Create(ctx, f.admin, CreateInput{
		LocaleTitle:  domain.LocaleString{"en": "Regular"},
		LocaleTeaser: domain.LocaleString{"en": "t"},
		LocaleBody:   domain.LocaleString{"en": "b"},
		Status:       statusPtr(domain.StatusPublished),
		PublishedAt:  &past,
	})
	require.NoError(t, err)

	page, err := f.engine.List(ctx, f.public, ListInput{
		Filters: []domain.Filter{domain.Eq(domain.FieldPriority, "BREAKING")},
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Breaking", page.Items[0].Title)
}

func TestList_AdminRequiresPermission(t *testing.T) {
	f := newFixture(t, denyAll{})

	_, err := f.engine.List(context.Background(), f.admin, ListInput{})
	assert.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))
}

func TestList_AdminSeesEverything(t *testing.T) {
	f := newFixture(t, allowAll{})
	ctx := context.Background()

	_, err := f.engine.Create(ctx, f.admin, createInput("Draft One"))
	require.NoError(t, err)
	_, err = f.engine.Create(ctx, f.admin, CreateInput{
		LocaleTitle:  domain.LocaleString{"en": "Published One"},
		LocaleTeaser: domain.LocaleString{"en": "t"},
		LocaleBody:   domain.LocaleString{"en": "b"},
		Status:       statusPtr(domain.StatusPublished),
	})
	require.NoError(t, err)

	page, err := f.engine.List(ctx, f.admin, ListInput{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
}
