package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_MessageFallsBackToCode(t *testing.T) {
	err := New(CodeNotFound, "")
	assert.Equal(t, "not_found", err.Error())

	err = New(CodeNotFound, "patient not found")
	assert.Equal(t, "patient not found", err.Error())
}

func TestNewField_EchoesOffendingValue(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value any
		want  string
	}{
		{"missing value", "name", nil, "Incorrect or missing name: <nil>"},
		{"wrong type", "occupation", 42, "Incorrect or missing occupation: 42"},
		{"boolean", "specialist", true, "Incorrect or missing specialist: true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewField(tt.field, tt.value)
			assert.Equal(t, tt.want, err.Error())
			assert.True(t, HasCode(err, CodeValidation))
		})
	}
}

func TestWrap_PreservesExistingCode(t *testing.T) {
	inner := New(CodeNotFound, "patient not found")
	wrapped := Wrap(inner, CodeInternal, "lookup failed")

	assert.True(t, HasCode(wrapped, CodeNotFound), "original code should survive wrapping")
	assert.Equal(t, "lookup failed", wrapped.Error())
	assert.ErrorIs(t, wrapped, inner)
}

func TestWrap_AssignsCodeToPlainErrors(t *testing.T) {
	inner := errors.New("disk on fire")
	wrapped := Wrap(inner, CodeInternal, "store failure")

	require.True(t, HasCode(wrapped, CodeInternal))
	assert.ErrorIs(t, wrapped, inner)
}

func TestIs_MatchesByCode(t *testing.T) {
	a := New(CodeUnhandledEntryKind, "unhandled entry kind: Dental")
	b := New(CodeUnhandledEntryKind, "different message")

	assert.ErrorIs(t, a, b)
	assert.NotErrorIs(t, a, New(CodeValidation, ""))
}

func TestWrap_SurvivesFmtWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeConflict, "code already exists"))
	assert.True(t, HasCode(err, CodeConflict))
}
