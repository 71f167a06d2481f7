// Package es implements the search index on Elasticsearch.
package es

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/google/uuid"

	"github.com/pleygg/content-api/internal/search"
)

type ClientConfig struct {
	Addresses []string
	IndexName string
	Username  string
	Password  string
}

func newClient(config ClientConfig) (*elasticsearch.TypedClient, error) {
	cfg := elasticsearch.Config{
		Addresses: config.Addresses,
	}

	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	return elasticsearch.NewTypedClient(cfg)
}

// Index is the article search index. It is a long-lived, stateless
// handle safe to share across concurrent requests.
type Index struct {
	client    *elasticsearch.TypedClient
	indexName string
}

func NewIndex(ctx context.Context, config ClientConfig) (*Index, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	idx := &Index{
		client:    client,
		indexName: config.IndexName,
	}

	if err := idx.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return idx, nil
}

func (e *Index) Upsert(ctx context.Context, doc search.Document) error {
	res, err := e.client.Index(e.indexName).Id(doc.ObjectID).Document(doc).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}

	slog.Info("document indexed", "id", doc.ObjectID, "index", e.indexName, "result", res.Result)
	return nil
}

func (e *Index) Delete(ctx context.Context, objectID uuid.UUID) error {
	res, err := e.client.Delete(e.indexName, objectID.String()).Do(ctx)
	if err != nil {
		// Deleting an object that was never indexed (or already
		// removed) is idempotent.
		var esErr *types.ElasticsearchError
		if errors.As(err, &esErr) && esErr.Status == 404 {
			slog.Info("document already absent from index", "id", objectID, "index", e.indexName)
			return nil
		}
		return fmt.Errorf("failed to delete document: %w", err)
	}

	slog.Info("document deleted", "id", objectID, "index", e.indexName, "result", res.Result)
	return nil
}

func (e *Index) EnsureIndex(ctx context.Context) error {
	existsRes, err := e.client.Indices.Exists(e.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}

	if existsRes {
		slog.Info("Index already exists", "index", e.indexName)
		return nil
	}

	mappings := types.TypeMapping{
		Properties: map[string]types.Property{
			"objectID":  types.NewKeywordProperty(),
			"id":        types.NewKeywordProperty(),
			"title":     textPropertyWithKeyword(),
			"teaser":    types.NewTextProperty(),
			"slug":      types.NewKeywordProperty(),
			"body":      types.NewTextProperty(),
			"createdAt": types.NewDateProperty(),
			"indexedAt": types.NewDateProperty(),
		},
	}

	createRes, err := e.client.Indices.Create(e.indexName).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	if !createRes.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created successfully", "index", e.indexName)
	return nil
}

func textPropertyWithKeyword() types.Property {
	textProp := types.NewTextProperty()
	textProp.Fields = map[string]types.Property{
		"keyword": types.NewKeywordProperty(),
	}
	return textProp
}

var _ search.Index = (*Index)(nil)
