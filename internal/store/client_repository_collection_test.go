package store

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/edu-offline/internal/logger"
	"github.com/MKhiriev/edu-offline/models"
)

func newMockCollections(t *testing.T) (*collectionRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return newCollectionRepository(newDBFromSQL(db).DB, logger.Nop()), mock
}

func TestCollectionRepository_PutMany(t *testing.T) {
	tests := []struct {
		name    string
		records []models.Record
		execErr error
		wantErr bool
		noQuery bool
	}{
		{
			name:    "writes all records with one statement",
			records: []models.Record{{Key: "c1", Value: []byte(`{}`)}, {Key: "c2", Value: []byte(`{}`)}},
		},
		{
			name:    "driver error is wrapped",
			records: []models.Record{{Key: "c1", Value: []byte(`{}`)}},
			execErr: errors.New("disk I/O error"),
			wantErr: true,
		},
		{
			name:    "empty batch is a no-op",
			noQuery: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockCollections(t)

			if !tt.noQuery {
				exp := mock.ExpectExec(`INSERT OR REPLACE INTO courses \(id,scope,payload,stored_at\) VALUES`)
				if tt.execErr != nil {
					exp.WillReturnError(tt.execErr)
				} else {
					exp.WillReturnResult(sqlmock.NewResult(0, int64(len(tt.records))))
				}
			}

			err := repo.PutMany(testContext(), Courses, tt.records)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.execErr)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCollectionRepository_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newMockCollections(t)
		at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

		mock.ExpectQuery(`SELECT id, scope, payload, stored_at FROM course_topics WHERE id = \?`).
			WithArgs("course-1").
			WillReturnRows(sqlmock.NewRows(recordColumns).AddRow("course-1", "course-1", `[]`, at))

		rec, err := repo.Get(testContext(), CourseTopics, "course-1")
		require.NoError(t, err)
		assert.Equal(t, "course-1", rec.Key)
		assert.JSONEq(t, `[]`, string(rec.Value))
		assert.Equal(t, at, rec.StoredAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMockCollections(t)

		mock.ExpectQuery(`SELECT id, scope, payload, stored_at FROM courses WHERE id = \?`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(recordColumns))

		_, err := repo.Get(testContext(), Courses, "missing")
		assert.ErrorIs(t, err, ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := newMockCollections(t)

		mock.ExpectQuery(`SELECT .* FROM courses`).WillReturnError(errors.New("boom"))

		_, err := repo.Get(testContext(), Courses, "c1")
		assert.ErrorIs(t, err, ErrExecutingQuery)
	})
}

func TestCollectionRepository_UnknownCollection(t *testing.T) {
	repo, mock := newMockCollections(t)

	err := repo.Put(testContext(), Collection("ciphers"), models.Record{Key: "x"})
	assert.ErrorIs(t, err, ErrUnknownCollection)

	_, err = repo.GetAll(testContext(), Collection("users; DROP TABLE courses"))
	assert.ErrorIs(t, err, ErrUnknownCollection)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectionRepository_DeleteByScope(t *testing.T) {
	repo, mock := newMockCollections(t)

	mock.ExpectExec(`DELETE FROM topic_content WHERE scope = \?`).
		WithArgs("course-1").
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.DeleteByScope(testContext(), TopicContents, "course-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectionRepository_Count(t *testing.T) {
	repo, mock := newMockCollections(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM downloads`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.Count(testContext(), Downloads)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
