package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "clinica/pkg/domain-errors"
)

func TestHealthCheckRating_Valid(t *testing.T) {
	for _, r := range []HealthCheckRating{RatingHealthy, RatingLowRisk, RatingHighRisk, RatingCriticalRisk} {
		assert.True(t, r.Valid(), r.String())
	}
	assert.False(t, HealthCheckRating(-1).Valid())
	assert.False(t, HealthCheckRating(4).Valid())
}

func TestEntryKind_Recognized(t *testing.T) {
	assert.True(t, KindHealthCheck.Recognized())
	assert.True(t, KindOccupationalHealthcare.Recognized())
	assert.True(t, KindHospital.Recognized())
	assert.False(t, KindUnspecified.Recognized())
	assert.False(t, EntryKind("Dental").Recognized())
}

func TestEntryMarshal_CarriesDiscriminator(t *testing.T) {
	entry := &HealthCheckEntry{
		BaseEntry: BaseEntry{
			ID:          "e1",
			Description: "Yearly control visit",
			Date:        "2019-10-20",
			Specialist:  "MD House",
		},
		HealthCheckRating: RatingLowRisk,
	}

	data, err := json.Marshal(entry)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "HealthCheck", raw["type"])
	assert.Equal(t, float64(1), raw["healthCheckRating"])
	assert.Equal(t, "e1", raw["id"])
}

func TestEntryMarshal_LegacyHasNoDiscriminator(t *testing.T) {
	entry := &LegacyEntry{BaseEntry: BaseEntry{ID: "e2", Description: "old record"}}

	data, err := json.Marshal(entry)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	_, hasType := raw["type"]
	assert.False(t, hasType)
}

func TestUnmarshalEntry_DispatchesOnType(t *testing.T) {
	tests := []struct {
		name string
		json string
		want EntryKind
	}{
		{
			"health check",
			`{"type":"HealthCheck","id":"a","description":"d","date":"2020-01-01","specialist":"s","healthCheckRating":2}`,
			KindHealthCheck,
		},
		{
			"occupational healthcare",
			`{"type":"OccupationalHealthcare","id":"b","description":"d","date":"2020-01-01","specialist":"s","employerName":"HyPD"}`,
			KindOccupationalHealthcare,
		},
		{
			"hospital",
			`{"type":"Hospital","id":"c","description":"d","date":"2020-01-01","specialist":"s","discharge":{"date":"2020-01-10","criteria":"healed"}}`,
			KindHospital,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := UnmarshalEntry([]byte(tt.json))
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Kind())
		})
	}
}

func TestUnmarshalEntry_MissingTypeFallsBackToLegacy(t *testing.T) {
	e, err := UnmarshalEntry([]byte(`{"id":"x","description":"pre-migration record","date":"2001-01-01","specialist":"unknown"}`))
	require.NoError(t, err)

	legacy, ok := e.(*LegacyEntry)
	require.True(t, ok)
	assert.Equal(t, "pre-migration record", legacy.Description)
	assert.Equal(t, KindUnspecified, legacy.Kind())
}

func TestUnmarshalEntry_UnknownTypeFailsLoudly(t *testing.T) {
	_, err := UnmarshalEntry([]byte(`{"type":"Dental","id":"x","description":"d","date":"2020-01-01","specialist":"s"}`))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnhandledEntryKind))
	assert.Contains(t, err.Error(), "Dental")
}

func TestEntries_RoundTrip(t *testing.T) {
	original := Entries{
		&HospitalEntry{
			BaseEntry: BaseEntry{ID: "h1", Description: "broken thumb", Date: "2015-01-02", Specialist: "MD House"},
			Discharge: Discharge{Date: "2015-01-16", Criteria: "Thumb has healed."},
		},
		&OccupationalHealthcareEntry{
			BaseEntry:    BaseEntry{ID: "o1", Description: "radiation", Date: "2019-08-05", Specialist: "MD House"},
			EmployerName: "HyPD",
			SickLeave:    &SickLeave{StartDate: "2019-08-05", EndDate: "2019-08-28"},
		},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Entries
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)

	hospital, ok := decoded[0].(*HospitalEntry)
	require.True(t, ok)
	assert.Equal(t, original[0], hospital)

	occupational, ok := decoded[1].(*OccupationalHealthcareEntry)
	require.True(t, ok)
	assert.Equal(t, original[1], occupational)
}

func TestNewPatient_InitializesEmptyEntries(t *testing.T) {
	p := NewPatient("1", NewPatientFields{
		Name:        "Hans Gruber",
		DateOfBirth: "1970-04-25",
		SSN:         "250470-555L",
		Gender:      GenderOther,
		Occupation:  "Technician",
	})

	require.NotNil(t, p.Entries)
	assert.Empty(t, p.Entries)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"entries":[]`)
}

func TestParseGender_ClosedSet(t *testing.T) {
	for _, s := range []string{"male", "female", "other"} {
		g, err := ParseGender(s)
		require.NoError(t, err)
		assert.Equal(t, Gender(s), g)
	}

	_, err := ParseGender("unknown")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Contains(t, err.Error(), "gender")
}
