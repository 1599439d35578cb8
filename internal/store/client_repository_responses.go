package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/edu-offline/internal/logger"
	"github.com/MKhiriev/edu-offline/models"
)

const responsesTable = "http_cache"

var responseColumns = []string{"namespace", "url", "status", "header", "body", "stored_at"}

type responseCache struct {
	q      querier
	logger *logger.Logger
}

func newResponseCache(q querier, logger *logger.Logger) *responseCache {
	return &responseCache{q: q, logger: logger}
}

func (c *responseCache) Put(ctx context.Context, resp models.CachedResponse) error {
	header, err := json.Marshal(resp.Header)
	if err != nil {
		return fmt.Errorf("failed to encode cached header: %w", err)
	}
	storedAt := resp.StoredAt
	if storedAt.IsZero() {
		storedAt = time.Now().UTC()
	}

	query, args, err := sq.Insert(responsesTable).
		Options("OR REPLACE").
		Columns(responseColumns...).
		Values(resp.Namespace, resp.URL, resp.Status, string(header), resp.Body, storedAt).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = c.q.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "responseCache.Put").
			Str("namespace", resp.Namespace).
			Str("url", resp.URL).
			Msg("failed to store response")
		return fmt.Errorf("failed to cache response for %s: %w", resp.URL, err)
	}
	return nil
}

func (c *responseCache) Match(ctx context.Context, namespace, url string) (models.CachedResponse, error) {
	return c.first(ctx, "responseCache.Match", sq.Eq{"namespace": namespace, "url": url})
}

func (c *responseCache) MatchAny(ctx context.Context, url string) (models.CachedResponse, error) {
	return c.first(ctx, "responseCache.MatchAny", sq.Eq{"url": url})
}

func (c *responseCache) Namespaces(ctx context.Context) ([]string, error) {
	query, args, err := sq.Select("DISTINCT namespace").
		From(responsesTable).
		OrderBy("namespace").
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := c.q.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "responseCache.Namespaces").Msg("failed to list namespaces")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var namespaces []string
	for rows.Next() {
		var ns string
		if err := rows.Scan(&ns); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		namespaces = append(namespaces, ns)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return namespaces, nil
}

func (c *responseCache) DeleteNamespace(ctx context.Context, namespace string) error {
	query, args, err := sq.Delete(responsesTable).
		Where(sq.Eq{"namespace": namespace}).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = c.q.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "responseCache.DeleteNamespace").
			Str("namespace", namespace).
			Msg("failed to delete namespace")
		return fmt.Errorf("failed to delete cache namespace %s: %w", namespace, err)
	}
	return nil
}

func (c *responseCache) first(ctx context.Context, fn string, pred sq.Eq) (models.CachedResponse, error) {
	query, args, err := sq.Select(responseColumns...).
		From(responsesTable).
		Where(pred).
		OrderBy("stored_at DESC").
		Limit(1).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return models.CachedResponse{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := c.q.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("failed to query cached response")
		return models.CachedResponse{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return models.CachedResponse{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		return models.CachedResponse{}, ErrResponseNotCached
	}

	var (
		resp   models.CachedResponse
		header string
	)
	if err := rows.Scan(&resp.Namespace, &resp.URL, &resp.Status, &header, &resp.Body, &resp.StoredAt); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("failed to scan cached response")
		return models.CachedResponse{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	resp.Header = make(http.Header)
	if err := json.Unmarshal([]byte(header), &resp.Header); err != nil {
		return models.CachedResponse{}, fmt.Errorf("%w: %w", ErrDecodingRecord, err)
	}
	if resp.Header == nil {
		resp.Header = make(http.Header)
	}
	return resp, nil
}
