package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/enrollhub/internal/app/registry"
	"github.com/emre/enrollhub/internal/app/store"
)

func TestCreateDefaultCatalog(t *testing.T) {
	st, err := store.NewCSVStore(t.TempDir())
	require.NoError(t, err)
	reg := registry.New(st, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, CreateDefaultCatalog(ctx, reg, zerolog.Nop()))
	assert.Equal(t, len(defaultCatalog), reg.CourseCount())

	// Seeding again is a no-op.
	require.NoError(t, CreateDefaultCatalog(ctx, reg, zerolog.Nop()))
	assert.Equal(t, len(defaultCatalog), reg.CourseCount())
}

func TestSeedSkipsNonEmptyCatalog(t *testing.T) {
	st, err := store.NewCSVStore(t.TempDir())
	require.NoError(t, err)
	reg := registry.New(st, zerolog.Nop())
	ctx := context.Background()

	_, err = reg.AddCourse(ctx, "CUSTOM1", "Custom Course", "Dr. Custom", "F", "08:00–09:00", 10)
	require.NoError(t, err)

	require.NoError(t, CreateDefaultCatalog(ctx, reg, zerolog.Nop()))
	assert.Equal(t, 1, reg.CourseCount(), "a partial catalog is left untouched")
}

func TestDefaultCatalogParses(t *testing.T) {
	// Every seeded schedule must be parseable by conflict detection.
	st, err := store.NewCSVStore(t.TempDir())
	require.NoError(t, err)
	reg := registry.New(st, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, CreateDefaultCatalog(ctx, reg, zerolog.Nop()))

	_, err = reg.RegisterStudent(ctx, "s1", "Test Student", "s1@example.edu", "pw")
	require.NoError(t, err)

	// BIO101 (MWF 08:00–09:30) and CHEM101 (TR 08:00–09:30) never collide.
	require.NoError(t, reg.Enroll(ctx, "s1", "BIO101"))
	require.NoError(t, reg.Enroll(ctx, "s1", "CHEM101"))
}
