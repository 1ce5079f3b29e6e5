package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "clinica/pkg/domain-errors"
)

func TestParsePatientID(t *testing.T) {
	id, err := ParsePatientID("d2773336-f723-11e9-8f0b-362b9e155667")
	require.NoError(t, err)
	assert.Equal(t, PatientID("d2773336-f723-11e9-8f0b-362b9e155667"), id)
	assert.False(t, id.IsNil())
}

func TestParsePatientID_EmptyRejected(t *testing.T) {
	_, err := ParsePatientID("")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}
