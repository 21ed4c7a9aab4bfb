package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/campus/internal/config"
	"github.com/mark3labs/campus/internal/hooks"
	"github.com/mark3labs/campus/internal/school"
	"github.com/mark3labs/campus/internal/tui/testfixtures"
	"github.com/mark3labs/campus/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCreateHeadless_Success(t *testing.T) {
	svc := school.NewService(school.NewMemoryRepository())
	var out bytes.Buffer

	path, err := createHeadless(context.Background(), svc, testfixtures.FullForm(), &out)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(path, "/schools/"), path)

	id := strings.TrimPrefix(path, "/schools/")
	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, testfixtures.FixedSchoolName, got.Name)
	assert.Len(t, got.Scholarships, 2)

	text := out.String()
	for _, step := range school.Steps()[:len(school.Steps())-1] {
		assert.Contains(t, text, "✓ "+step.Label)
	}
	assert.Contains(t, text, "✓ "+wizard.DefaultSuccessMessage)
	assert.Contains(t, text, "→ "+path)
}

func TestCreateHeadless_InvalidStep(t *testing.T) {
	form := testfixtures.ValidForm()
	form.Locations = nil
	var out bytes.Buffer

	_, err := createHeadless(context.Background(), school.NewService(school.NewMemoryRepository()), form, &out)

	var verr *wizard.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, school.FieldLocations)
	assert.Contains(t, out.String(), "✓ "+school.Steps()[0].Label)
	assert.Contains(t, out.String(), "✗ "+school.Steps()[1].Label+" is invalid")
	assert.Contains(t, out.String(), "  "+school.FieldLocations+": ")
}

func TestCreateHeadless_Duplicate(t *testing.T) {
	svc := school.NewService(school.NewMemoryRepository())
	_, err := createHeadless(context.Background(), svc, testfixtures.ValidForm(), &bytes.Buffer{})
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = createHeadless(context.Background(), svc, testfixtures.ValidForm(), &out)
	require.ErrorIs(t, err, wizard.ErrRejected)
	assert.Contains(t, out.String(), "✗ "+school.MsgDuplicateName)
}

type brokenCreator struct{}

func (brokenCreator) Create(context.Context, school.FormData) (wizard.Result, error) {
	return wizard.Result{}, errors.New("disk full")
}

func TestCreateHeadless_CreatorError(t *testing.T) {
	var out bytes.Buffer
	_, err := createHeadless(context.Background(), brokenCreator{}, testfixtures.ValidForm(), &out)
	require.ErrorContains(t, err, "disk full")
	assert.Contains(t, out.String(), "✗ "+wizard.DefaultFailureMessage)
}

func TestReadForm(t *testing.T) {
	dir := t.TempDir()

	t.Run("defaults kept for missing keys", func(t *testing.T) {
		p := filepath.Join(dir, "form.yaml")
		require.NoError(t, os.WriteFile(p, []byte("name: Hanoi University of Science\nshort: HUS\n"), 0644))

		form, err := readForm(p)
		require.NoError(t, err)
		assert.Equal(t, "HUS", form.Short)
		assert.Equal(t, school.DefaultColor, form.Color)
	})

	t.Run("round trip of a full form", func(t *testing.T) {
		data, err := yaml.Marshal(testfixtures.FullForm())
		require.NoError(t, err)
		p := filepath.Join(dir, "full.yaml")
		require.NoError(t, os.WriteFile(p, data, 0644))

		form, err := readForm(p)
		require.NoError(t, err)
		assert.Equal(t, testfixtures.FullForm(), form)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		p := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(p, []byte("name: [unterminated"), 0644))
		_, err := readForm(p)
		require.ErrorContains(t, err, "failed to parse form")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readForm(filepath.Join(dir, "missing.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestOpenBackend(t *testing.T) {
	ctx := context.Background()

	for _, store := range []string{config.StoreMemory, config.StoreSQLite} {
		t.Run(store, func(t *testing.T) {
			cfg := defaultConfig(store)
			cfg.DataDir = t.TempDir()
			require.NoError(t, cfg.Validate())

			b, err := openBackend(ctx, cfg)
			require.NoError(t, err)
			t.Cleanup(func() { assert.NoError(t, b.Close()) })

			path, err := createHeadless(ctx, b.service, testfixtures.ValidForm(), &bytes.Buffer{})
			require.NoError(t, err)

			var out bytes.Buffer
			require.NoError(t, printSchools(ctx, b.service, &out))
			assert.Contains(t, out.String(), "HUS")
			assert.Contains(t, out.String(), testfixtures.FixedSchoolName)

			out.Reset()
			require.NoError(t, printSchool(ctx, b.service, strings.TrimPrefix(path, "/schools/"), &out))
			assert.Contains(t, out.String(), "name: "+testfixtures.FixedSchoolName)
		})
	}
}

func TestPrintSchools_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printSchools(context.Background(), school.NewService(school.NewMemoryRepository()), &out))
	assert.Contains(t, out.String(), "No schools yet")
}

func TestPrintSchool_NotFound(t *testing.T) {
	err := printSchool(context.Background(), school.NewService(school.NewMemoryRepository()), "nope", &bytes.Buffer{})
	require.ErrorContains(t, err, "school nope not found")
}

func TestDefaultConfig(t *testing.T) {
	assert.NoError(t, defaultConfig(config.StoreNATS).Validate())
	assert.Error(t, defaultConfig("postgres").Validate())
}

func TestHookedService_RunsPostCreate(t *testing.T) {
	dir := t.TempDir()
	svc := &hookedService{
		Service: school.NewService(school.NewMemoryRepository()),
		hooks:   []*hooks.HookConfig{{Command: `printf '%s' "$CAMPUS_SCHOOL_NAME" > {{id}}.txt`}},
		workDir: dir,
	}

	path, err := createHeadless(context.Background(), svc, testfixtures.ValidForm(), &bytes.Buffer{})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(path, "/schools/")+".txt"))
	require.NoError(t, err)
	assert.Equal(t, testfixtures.FixedSchoolName, string(data))
}

func TestHookedService_SkipsRejected(t *testing.T) {
	dir := t.TempDir()
	svc := &hookedService{
		Service: school.NewService(school.NewMemoryRepository()),
		hooks:   []*hooks.HookConfig{{Command: "touch ran"}},
		workDir: dir,
	}

	res, err := svc.Create(context.Background(), school.NewFormData())
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.NoFileExists(t, filepath.Join(dir, "ran"))
}
