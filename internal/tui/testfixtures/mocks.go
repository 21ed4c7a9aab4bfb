package testfixtures

import (
	"context"
	"sort"
	"sync"

	"github.com/mark3labs/campus/internal/school"
	"github.com/mark3labs/campus/internal/wizard"
)

// MockSchools is a mock implementation of the school endpoints used by the TUI.
// It is thread-safe and allows configuring responses for testing.
type MockSchools struct {
	mu sync.Mutex

	// Schools holds stored schools by id
	Schools map[string]school.School

	// CreateResult is returned by Create when CreateErr is nil.
	// A zero value result creates the school with FixedSchoolID.
	CreateResult *wizard.Result
	CreateErr    error
	GetErr       error
	ListErr      error

	// Gate, if set, blocks Create until it is closed.
	Gate chan struct{}

	// Created tracks forms passed to Create
	Created []school.FormData
}

// NewMockSchools creates a new MockSchools with no stored schools.
func NewMockSchools() *MockSchools {
	return &MockSchools{
		Schools: make(map[string]school.School),
	}
}

// Create records the form and returns the configured result.
func (m *MockSchools) Create(ctx context.Context, f school.FormData) (wizard.Result, error) {
	if m.Gate != nil {
		select {
		case <-m.Gate:
		case <-ctx.Done():
			return wizard.Result{}, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Created = append(m.Created, f.Clone())
	if m.CreateErr != nil {
		return wizard.Result{}, m.CreateErr
	}
	if m.CreateResult != nil {
		return *m.CreateResult, nil
	}

	m.Schools[FixedSchoolID] = school.School{
		FormData:  f.Clone(),
		ID:        FixedSchoolID,
		Slug:      school.Slugify(f.Name),
		CreatedAt: FixedTime,
	}
	return wizard.Succeeded(FixedSchoolID), nil
}

// Get returns a stored school or school.ErrNotFound.
func (m *MockSchools) Get(ctx context.Context, id string) (school.School, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetErr != nil {
		return school.School{}, m.GetErr
	}
	s, ok := m.Schools[id]
	if !ok {
		return school.School{}, school.ErrNotFound
	}
	return s, nil
}

// List returns stored schools sorted by name.
func (m *MockSchools) List(ctx context.Context) ([]school.School, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]school.School, 0, len(m.Schools))
	for _, s := range m.Schools {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Add stores a school.
func (m *MockSchools) Add(s school.School) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Schools[s.ID] = s
}

// CreatedForms returns a copy of the forms passed to Create.
func (m *MockSchools) CreatedForms() []school.FormData {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]school.FormData(nil), m.Created...)
}
