package validators

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/MKhiriev/edu-offline/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldCourseID targets the course an update belongs to.
	FieldCourseID = "courseId"

	// FieldStatus targets the progress status.
	FieldStatus = "status"

	// FieldMasteryLevel targets the mastery level in [0, 1].
	FieldMasteryLevel = "masteryLevel"

	// FieldTimeSpent targets the minutes spent on a topic.
	FieldTimeSpent = "timeSpentMinutes"

	// FieldTopicID targets the topic id of a mutation.
	FieldTopicID = "topicId"

	// FieldData targets the update payload of a mutation.
	FieldData = "data"
)

// structFields maps the field constants to Go struct field namespaces.
var structFields = map[string][]string{
	FieldCourseID:     {"CourseID"},
	FieldStatus:       {"Status"},
	FieldMasteryLevel: {"MasteryLevel"},
	FieldTimeSpent:    {"TimeSpentMinutes"},
	FieldTopicID:      {"TopicID"},
	FieldData:         {"Data", "Data.CourseID", "Data.Status", "Data.MasteryLevel", "Data.TimeSpentMinutes"},
}

// EntityID is an identifier received from outside, such as a course id
// passed on the command line.
type EntityID string

type entityID struct {
	ID string `json:"id" validate:"required,max=64,printascii,excludesall=/?#"`
}

// ProgressValidator validates progress updates, queued mutations and entity
// identifiers with go-playground/validator struct tags.
type ProgressValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewProgressValidator returns a [Validator] for the progress domain.
func NewProgressValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	english := en.New()
	translator, _ := ut.New(english, english).GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, translator)

	// report json names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &ProgressValidator{validate: v, translator: translator}
}

func (v *ProgressValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ProgressUpdate:
		return v.check(ErrInvalidProgress, value, fields...)
	case *models.ProgressUpdate:
		return v.check(ErrInvalidProgress, *value, fields...)

	case models.ProgressMutation:
		return v.check(ErrInvalidMutation, value, fields...)
	case *models.ProgressMutation:
		return v.check(ErrInvalidMutation, *value, fields...)

	case EntityID:
		return v.check(ErrInvalidEntityID, entityID{ID: string(value)})

	default:
		return ErrUnsupportedType
	}
}

func (v *ProgressValidator) check(sentinel error, value any, fields ...string) error {
	var err error
	if len(fields) == 0 {
		err = v.validate.Struct(value)
	} else {
		names := make([]string, 0, len(fields))
		for _, f := range fields {
			ns, ok := structFields[f]
			if !ok {
				return fmt.Errorf("%w: %s", ErrUnknownField, f)
			}
			names = append(names, ns...)
		}
		err = v.validate.StructPartial(value, names...)
	}
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("%w: %w", sentinel, err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, fe.Translate(v.translator))
	}
	return fmt.Errorf("%w: %s", sentinel, strings.Join(messages, "; "))
}
