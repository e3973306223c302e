package preferences

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"reelhouse/internal/database"
	"reelhouse/models"
)

var (
	ErrNotLiked      = errors.New("movie was not liked")
	ErrAlreadyInList = errors.New("movie is already in list")
	ErrNotInList     = errors.New("movie not found in list")
)

// ValidationError reports the per-field problems with a rejected payload.
// Field keys are the JSON names from the request body.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// newValidator builds a validator that reports fields by their JSON names.
func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// checkUpsert validates the payload and translates validator errors into a
// field-error map.
func checkUpsert(validate *validator.Validate, input models.PreferenceUpsert) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = append(fields[fe.Field()], fieldMessage(fe))
	}
	return &ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("The %s field must be one of: %s.", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("The %s field is invalid.", fe.Field())
	}
}

type likeStore interface {
	Upsert(userID int64, input models.PreferenceUpsert) (models.PreferenceRecord, error)
	Exists(userID, movieID int64) (bool, error)
	Delete(userID, movieID int64) (bool, error)
	ListByUser(userID int64) ([]models.PreferenceRecord, error)
}

var _ likeStore = (*database.LikeRepository)(nil)

// Likes is the toggleable like relation. Adding an existing like refreshes
// its denormalized fields instead of failing.
type Likes struct {
	store    likeStore
	validate *validator.Validate
}

// NewLikes creates the likes service over the given store.
func NewLikes(store likeStore) *Likes {
	return &Likes{store: store, validate: newValidator()}
}

// Check reports whether the user has liked the movie. Absence is a normal
// false, never an error.
func (s *Likes) Check(userID, movieID int64) (bool, error) {
	return s.store.Exists(userID, movieID)
}

// Add records the like, refreshing the stored fields when it already exists.
// Returns *ValidationError for bad payloads.
func (s *Likes) Add(userID int64, input models.PreferenceUpsert) (models.PreferenceRecord, error) {
	if err := checkUpsert(s.validate, input); err != nil {
		return models.PreferenceRecord{}, err
	}
	return s.store.Upsert(userID, input)
}

// Remove deletes the like. Returns ErrNotLiked when the pair was absent;
// removing an absent like is an expected outcome, not a storage failure.
func (s *Likes) Remove(userID, movieID int64) error {
	deleted, err := s.store.Delete(userID, movieID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotLiked
	}
	return nil
}

// List returns the user's likes, newest first.
func (s *Likes) List(userID int64) ([]models.PreferenceRecord, error) {
	return s.store.ListByUser(userID)
}

type listStore interface {
	Insert(userID int64, input models.PreferenceUpsert) (models.PreferenceRecord, error)
	Exists(userID, movieID int64) (bool, error)
	Delete(userID, movieID int64) (bool, error)
	ListByUser(userID int64) ([]models.PreferenceRecord, error)
}

var _ listStore = (*database.ListRepository)(nil)

// List is the strict my-list relation: adding a movie that is already listed
// is a conflict, not an upsert.
type List struct {
	store    listStore
	validate *validator.Validate
}

// NewList creates the my-list service over the given store.
func NewList(store listStore) *List {
	return &List{store: store, validate: newValidator()}
}

// Check reports whether the movie is in the user's list.
func (s *List) Check(userID, movieID int64) (bool, error) {
	return s.store.Exists(userID, movieID)
}

// Add inserts the list entry. Returns ErrAlreadyInList when the pair exists
// and *ValidationError for bad payloads.
func (s *List) Add(userID int64, input models.PreferenceUpsert) (models.PreferenceRecord, error) {
	if err := checkUpsert(s.validate, input); err != nil {
		return models.PreferenceRecord{}, err
	}
	record, err := s.store.Insert(userID, input)
	if errors.Is(err, database.ErrDuplicate) {
		return models.PreferenceRecord{}, ErrAlreadyInList
	}
	return record, err
}

// Remove deletes the list entry. Returns ErrNotInList when absent.
func (s *List) Remove(userID, movieID int64) error {
	deleted, err := s.store.Delete(userID, movieID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotInList
	}
	return nil
}

// Entries returns the user's list, newest first.
func (s *List) Entries(userID int64) ([]models.PreferenceRecord, error) {
	return s.store.ListByUser(userID)
}
