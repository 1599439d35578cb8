package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/edu-offline/internal/logger"
	"github.com/MKhiriev/edu-offline/models"
)

var recordColumns = []string{"id", "scope", "payload", "stored_at"}

type collectionRepository struct {
	q      querier
	logger *logger.Logger
}

func newCollectionRepository(q querier, logger *logger.Logger) *collectionRepository {
	return &collectionRepository{q: q, logger: logger}
}

func (r *collectionRepository) Put(ctx context.Context, c Collection, record models.Record) error {
	return r.PutMany(ctx, c, []models.Record{record})
}

// PutMany writes records with one INSERT OR REPLACE statement. An existing
// record with the same key is overwritten as a whole.
func (r *collectionRepository) PutMany(ctx context.Context, c Collection, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}
	log := logger.FromContext(ctx)

	table, err := c.table()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	builder := sq.Insert(table).
		Options("OR REPLACE").
		Columns(recordColumns...).
		PlaceholderFormat(sq.Question)
	for _, rec := range records {
		storedAt := rec.StoredAt
		if storedAt.IsZero() {
			storedAt = now
		}
		builder = builder.Values(rec.Key, rec.Scope, string(rec.Value), storedAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "collectionRepository.PutMany").
			Str("collection", string(c)).
			Int("records", len(records)).
			Msg("failed to upsert records")
		return fmt.Errorf("failed to save %d record(s) into %s: %w", len(records), c, err)
	}

	return nil
}

func (r *collectionRepository) Get(ctx context.Context, c Collection, key string) (models.Record, error) {
	records, err := r.selectWhere(ctx, c, "collectionRepository.Get", sq.Eq{"id": key})
	if err != nil {
		return models.Record{}, err
	}
	if len(records) == 0 {
		return models.Record{}, fmt.Errorf("%w: %s/%s", ErrRecordNotFound, c, key)
	}
	return records[0], nil
}

func (r *collectionRepository) GetAll(ctx context.Context, c Collection) ([]models.Record, error) {
	return r.selectWhere(ctx, c, "collectionRepository.GetAll", nil)
}

func (r *collectionRepository) GetByScope(ctx context.Context, c Collection, scope string) ([]models.Record, error) {
	return r.selectWhere(ctx, c, "collectionRepository.GetByScope", sq.Eq{"scope": scope})
}

func (r *collectionRepository) Delete(ctx context.Context, c Collection, key string) error {
	return r.deleteWhere(ctx, c, "collectionRepository.Delete", sq.Eq{"id": key})
}

func (r *collectionRepository) DeleteByScope(ctx context.Context, c Collection, scope string) error {
	return r.deleteWhere(ctx, c, "collectionRepository.DeleteByScope", sq.Eq{"scope": scope})
}

func (r *collectionRepository) Clear(ctx context.Context, c Collection) error {
	return r.deleteWhere(ctx, c, "collectionRepository.Clear", nil)
}

func (r *collectionRepository) Count(ctx context.Context, c Collection) (int, error) {
	log := logger.FromContext(ctx)

	table, err := c.table()
	if err != nil {
		return 0, err
	}

	query, args, err := sq.Select("COUNT(*)").From(table).PlaceholderFormat(sq.Question).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = r.q.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).
			Str("func", "collectionRepository.Count").
			Str("collection", string(c)).
			Msg("failed to count records")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}

func (r *collectionRepository) selectWhere(ctx context.Context, c Collection, fn string, pred sq.Sqlizer) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	table, err := c.table()
	if err != nil {
		return nil, err
	}

	builder := sq.Select(recordColumns...).From(table).OrderBy("id").PlaceholderFormat(sq.Question)
	if pred != nil {
		builder = builder.Where(pred)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Str("collection", string(c)).Msg("failed to query records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var (
			rec     models.Record
			payload string
		)
		if err := rows.Scan(&rec.Key, &rec.Scope, &payload, &rec.StoredAt); err != nil {
			log.Err(err).Str("func", fn).Str("collection", string(c)).Msg("failed to scan record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		rec.Value = []byte(payload)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", fn).Str("collection", string(c)).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

func (r *collectionRepository) deleteWhere(ctx context.Context, c Collection, fn string, pred sq.Sqlizer) error {
	log := logger.FromContext(ctx)

	table, err := c.table()
	if err != nil {
		return err
	}

	builder := sq.Delete(table).PlaceholderFormat(sq.Question)
	if pred != nil {
		builder = builder.Where(pred)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", fn).Str("collection", string(c)).Msg("failed to delete records")
		return fmt.Errorf("failed to delete from %s: %w", c, err)
	}
	return nil
}

// isNotFound reports whether err means a missing row.
func isNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows)
}
