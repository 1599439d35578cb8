package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/edu-offline/models"
)

func validUpdate() models.ProgressUpdate {
	return models.ProgressUpdate{
		CourseID:         "course-1",
		Status:           models.ProgressCompleted,
		MasteryLevel:     0.8,
		TimeSpentMinutes: 12,
	}
}

func TestNewProgressValidator(t *testing.T) {
	require.NotNil(t, NewProgressValidator())
}

func TestValidate_ProgressUpdate(t *testing.T) {
	v := NewProgressValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(u *models.ProgressUpdate)
		wantErr bool
		message string
	}{
		{name: "valid", mutate: func(u *models.ProgressUpdate) {}},
		{name: "empty status allowed", mutate: func(u *models.ProgressUpdate) { u.Status = "" }},
		{name: "unknown status", mutate: func(u *models.ProgressUpdate) { u.Status = "done" }, wantErr: true, message: "status"},
		{name: "mastery above one", mutate: func(u *models.ProgressUpdate) { u.MasteryLevel = 1.5 }, wantErr: true, message: "masteryLevel"},
		{name: "negative mastery", mutate: func(u *models.ProgressUpdate) { u.MasteryLevel = -0.1 }, wantErr: true, message: "masteryLevel"},
		{name: "negative minutes", mutate: func(u *models.ProgressUpdate) { u.TimeSpentMinutes = -1 }, wantErr: true, message: "timeSpentMinutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := validUpdate()
			tt.mutate(&u)

			err := v.Validate(ctx, u)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidProgress)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestValidate_ProgressUpdatePointer(t *testing.T) {
	u := validUpdate()
	u.Status = "bogus"

	err := NewProgressValidator().Validate(context.Background(), &u)
	assert.ErrorIs(t, err, ErrInvalidProgress)
}

func TestValidate_FieldScoped(t *testing.T) {
	v := NewProgressValidator()
	u := validUpdate()
	u.Status = "bogus"

	require.NoError(t, v.Validate(context.Background(), u, FieldMasteryLevel, FieldTimeSpent))
	assert.ErrorIs(t, v.Validate(context.Background(), u, FieldStatus), ErrInvalidProgress)
}

func TestValidate_UnknownField(t *testing.T) {
	err := NewProgressValidator().Validate(context.Background(), validUpdate(), "grade")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestValidate_ProgressMutation(t *testing.T) {
	v := NewProgressValidator()
	ctx := context.Background()

	require.NoError(t, v.Validate(ctx, models.ProgressMutation{TopicID: "topic-1", Data: validUpdate()}))

	err := v.Validate(ctx, models.ProgressMutation{Data: validUpdate()})
	assert.ErrorIs(t, err, ErrInvalidMutation)
	assert.Contains(t, err.Error(), "topicId")

	bad := validUpdate()
	bad.MasteryLevel = 2
	err = v.Validate(ctx, &models.ProgressMutation{TopicID: "topic-1", Data: bad})
	assert.ErrorIs(t, err, ErrInvalidMutation)
}

func TestValidate_EntityID(t *testing.T) {
	v := NewProgressValidator()
	ctx := context.Background()

	require.NoError(t, v.Validate(ctx, EntityID("64b7f0c2e1d3a4b5c6d7e8f9")))
	assert.ErrorIs(t, v.Validate(ctx, EntityID("")), ErrInvalidEntityID)
	assert.ErrorIs(t, v.Validate(ctx, EntityID("../etc")), ErrInvalidEntityID)
}

func TestValidate_UnsupportedType(t *testing.T) {
	err := NewProgressValidator().Validate(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
