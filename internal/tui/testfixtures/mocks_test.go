package testfixtures

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mark3labs/campus/internal/school"
	"github.com/mark3labs/campus/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockSchools_CreateAndGet(t *testing.T) {
	m := NewMockSchools()

	res, err := m.Create(context.Background(), ValidForm())
	require.NoError(t, err)
	assert.Equal(t, wizard.Succeeded(FixedSchoolID), res)

	s, err := m.Get(context.Background(), FixedSchoolID)
	require.NoError(t, err)
	assert.Equal(t, FixedSchoolName, s.Name)
	assert.Equal(t, "hanoi-university-of-science", s.Slug)
	assert.Len(t, m.CreatedForms(), 1)
}

func TestMockSchools_ConfiguredResult(t *testing.T) {
	m := NewMockSchools()
	failed := wizard.Failed("Duplicate name")
	m.CreateResult = &failed

	res, err := m.Create(context.Background(), ValidForm())
	require.NoError(t, err)
	assert.False(t, res.Success)

	_, err = m.Get(context.Background(), FixedSchoolID)
	assert.ErrorIs(t, err, school.ErrNotFound)
}

func TestMockSchools_Errors(t *testing.T) {
	m := NewMockSchools()
	boom := errors.New("boom")
	m.CreateErr = boom
	m.ListErr = boom
	m.GetErr = boom

	_, err := m.Create(context.Background(), ValidForm())
	assert.ErrorIs(t, err, boom)
	_, err = m.List(context.Background())
	assert.ErrorIs(t, err, boom)
	_, err = m.Get(context.Background(), "x")
	assert.ErrorIs(t, err, boom)
}

func TestMockSchools_Gate(t *testing.T) {
	m := NewMockSchools()
	m.Gate = make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = m.Create(context.Background(), ValidForm())
	}()

	select {
	case <-done:
		t.Fatal("Create returned before the gate opened")
	case <-time.After(50 * time.Millisecond):
	}

	close(m.Gate)
	<-done
	assert.Len(t, m.CreatedForms(), 1)
}

func TestMockSchools_ListSorted(t *testing.T) {
	m := NewMockSchools()
	m.Add(school.School{ID: "2", FormData: school.FormData{Name: "Zeta"}})
	m.Add(school.School{ID: "1", FormData: school.FormData{Name: "Alpha"}})

	list, err := m.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].Name)
}

func TestMockSchools_ThreadSafety(t *testing.T) {
	m := NewMockSchools()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.Create(context.Background(), ValidForm())
			_, _ = m.List(context.Background())
		}()
	}
	wg.Wait()
	assert.Len(t, m.CreatedForms(), 10)
}

func TestFixtures_Valid(t *testing.T) {
	v := school.Validator{}
	assert.Empty(t, v.Validate(context.Background(), ValidForm()))
	assert.Empty(t, v.Validate(context.Background(), FullForm()))
	assert.NotEmpty(t, v.Validate(context.Background(), EmptyForm()))
}
