package seeder

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinica/internal/diagnosis"
	"clinica/internal/patient/models"
	"clinica/internal/patient/store"
)

func TestSeedAll(t *testing.T) {
	patients := store.NewInMemory()
	diagnoses := diagnosis.NewInMemoryStore()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := context.Background()

	require.NoError(t, New(patients, diagnoses, logger).SeedAll(ctx))

	seeded, err := patients.List(ctx)
	require.NoError(t, err)
	require.Len(t, seeded, 5)
	assert.Equal(t, "John McClane", seeded[0].Name)

	catalog, err := diagnoses.List(ctx)
	require.NoError(t, err)
	assert.Len(t, catalog, 15)
}

func TestSeedAll_IsNotRepeatable(t *testing.T) {
	patients := store.NewInMemory()
	diagnoses := diagnosis.NewInMemoryStore()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := context.Background()

	s := New(patients, diagnoses, logger)
	require.NoError(t, s.SeedAll(ctx))
	assert.Error(t, s.SeedAll(ctx), "seeding twice conflicts on existing records")
}

func TestSeedDoesNotShiftGeneratedIDs(t *testing.T) {
	patients := store.NewInMemory()
	diagnoses := diagnosis.NewInMemoryStore()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := context.Background()

	require.NoError(t, New(patients, diagnoses, logger).SeedAll(ctx))

	created, err := patients.Create(ctx, models.NewPatientFields{
		Name:       "New Patient",
		Gender:     models.GenderOther,
		Occupation: "tester",
	})
	require.NoError(t, err)
	assert.Equal(t, "1", created.ID.String(), "seed records carry non-numeric ids")
}
