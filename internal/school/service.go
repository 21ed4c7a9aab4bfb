package school

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/campus/internal/logger"
	"github.com/mark3labs/campus/internal/wizard"
)

// MsgDuplicateName is the failure message returned for an existing name.
const MsgDuplicateName = "Duplicate name"

// Service is the school creation endpoint. It implements
// wizard.Creator[FormData].
type Service struct {
	repo      Repository
	validator Validator
	now       func() time.Time
	newID     func() string
}

// NewService creates a Service backed by repo.
func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Create validates the form and persists a new school.
//
// Invalid forms and duplicate names are reported through a failed
// wizard.Result; storage failures are returned as errors.
func (s *Service) Create(ctx context.Context, f FormData) (wizard.Result, error) {
	if errs := s.validator.Validate(ctx, f); len(errs) > 0 {
		logger.Debug("Rejecting school %q: %d invalid fields", f.Name, len(errs))
		return wizard.FailedFields(errs), nil
	}

	f = normalize(f)

	_, err := s.repo.FindByName(ctx, f.Name)
	switch {
	case err == nil:
		return wizard.Failed(MsgDuplicateName), nil
	case !errors.Is(err, ErrNotFound):
		return wizard.Result{}, fmt.Errorf("checking school name: %w", err)
	}

	sc := School{
		FormData:  f,
		ID:        s.newID(),
		Slug:      Slugify(f.Name),
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.Create(ctx, sc); err != nil {
		if errors.Is(err, ErrDuplicateName) {
			return wizard.Failed(MsgDuplicateName), nil
		}
		return wizard.Result{}, fmt.Errorf("storing school: %w", err)
	}

	logger.Info("Created school %s (%s)", sc.ID, sc.Name)
	return wizard.Succeeded(sc.ID), nil
}

// Get returns the school with id.
func (s *Service) Get(ctx context.Context, id string) (School, error) {
	return s.repo.Get(ctx, id)
}

// List returns all schools.
func (s *Service) List(ctx context.Context) ([]School, error) {
	return s.repo.List(ctx)
}

// normalize trims text fields and resolves the country to its canonical name.
func normalize(f FormData) FormData {
	f = f.Clone()
	f.Name = strings.TrimSpace(f.Name)
	f.Short = strings.TrimSpace(f.Short)
	f.Color = strings.ToUpper(f.Color)
	if c, ok := LookupCountry(f.Country); ok {
		f.Country = c.Name
	}
	return f
}

// NameKey returns the comparison key of a school name: lower case with
// collapsed whitespace.
func NameKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
