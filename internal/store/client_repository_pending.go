package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/edu-offline/internal/logger"
	"github.com/MKhiriev/edu-offline/models"
)

const pendingTable = "pending_sync"

type pendingQueue struct {
	q      querier
	logger *logger.Logger
}

func newPendingQueue(q querier, logger *logger.Logger) *pendingQueue {
	return &pendingQueue{q: q, logger: logger}
}

func (p *pendingQueue) Enqueue(ctx context.Context, m models.Mutation) (int64, error) {
	log := logger.FromContext(ctx)

	payload, err := models.EncodeMutation(m)
	if err != nil {
		return 0, err
	}

	query, args, err := sq.Insert(pendingTable).
		Columns("kind", "target_id", "payload", "enqueued_at").
		Values(string(m.Kind()), m.TargetID(), string(payload), time.Now().UTC()).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := p.q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "pendingQueue.Enqueue").
			Str("kind", string(m.Kind())).
			Str("target_id", m.TargetID()).
			Msg("failed to enqueue mutation")
		return 0, fmt.Errorf("failed to enqueue %s mutation: %w", m.Kind(), err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read queue id: %w", err)
	}
	return id, nil
}

func (p *pendingQueue) List(ctx context.Context) ([]models.PendingMutation, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select("id", "kind", "payload", "enqueued_at").
		From(pendingTable).
		OrderBy("id").
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := p.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "pendingQueue.List").Msg("failed to query pending mutations")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var pending []models.PendingMutation
	for rows.Next() {
		var (
			entry   models.PendingMutation
			kind    string
			payload string
		)
		if err := rows.Scan(&entry.ID, &kind, &payload, &entry.EnqueuedAt); err != nil {
			log.Err(err).Str("func", "pendingQueue.List").Msg("failed to scan pending mutation row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		entry.Mutation, err = models.DecodeMutation(models.MutationKind(kind), []byte(payload))
		if err != nil {
			log.Err(err).Str("func", "pendingQueue.List").Int64("id", entry.ID).Msg("failed to decode pending mutation")
			return nil, fmt.Errorf("%w: queue id %d: %w", ErrDecodingRecord, entry.ID, err)
		}
		pending = append(pending, entry)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "pendingQueue.List").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return pending, nil
}

func (p *pendingQueue) DeleteUpTo(ctx context.Context, id int64) error {
	return p.delete(ctx, "pendingQueue.DeleteUpTo", sq.LtOrEq{"id": id})
}

func (p *pendingQueue) Clear(ctx context.Context) error {
	return p.delete(ctx, "pendingQueue.Clear", nil)
}

func (p *pendingQueue) Count(ctx context.Context) (int, error) {
	var count int
	query, args, err := sq.Select("COUNT(*)").From(pendingTable).PlaceholderFormat(sq.Question).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if err := p.q.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "pendingQueue.Count").Msg("failed to count pending mutations")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}

func (p *pendingQueue) delete(ctx context.Context, fn string, pred sq.Sqlizer) error {
	builder := sq.Delete(pendingTable).PlaceholderFormat(sq.Question)
	if pred != nil {
		builder = builder.Where(pred)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := p.q.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("failed to delete pending mutations")
		return fmt.Errorf("failed to delete pending mutations: %w", err)
	}
	return nil
}
