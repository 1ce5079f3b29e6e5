// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	dErrors "clinica/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing an EntryID where a PatientID is expected.
// Patient IDs are store-generated decimal strings for new records, but pre-seeded
// records may carry arbitrary opaque IDs, so both stay string-backed.
type (
	PatientID string
	EntryID   string
)

// DiagnosisCode references an entry in the external diagnosis catalog.
// The patient core treats it as opaque.
type DiagnosisCode string

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParsePatientID(s string) (PatientID, error) {
	id := PatientID(s)
	if id.IsNil() {
		return "", dErrors.New(dErrors.CodeBadRequest, "patient ID cannot be empty")
	}
	return id, nil
}

// String methods - for logging and debugging.

func (id PatientID) String() string    { return string(id) }
func (id EntryID) String() string      { return string(id) }
func (c DiagnosisCode) String() string { return string(c) }

func (id PatientID) IsNil() bool { return id == "" }
