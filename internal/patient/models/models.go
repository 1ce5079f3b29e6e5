// Package models defines the patient record aggregate and the closed set of
// clinical entry variants attached to it.
package models

import (
	"clinica/pkg/domain"
	dErrors "clinica/pkg/domain-errors"
)

// Gender is the closed set of values accepted on patient creation.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Valid reports whether g is one of the defined gender values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// ParseGender validates a raw gender value against the closed set.
func ParseGender(s string) (Gender, error) {
	g := Gender(s)
	if !g.Valid() {
		return "", dErrors.NewField("gender", s)
	}
	return g, nil
}

// Patient is the root entity owning an ordered, append-only list of entries.
// The ID is assigned once by the store and never changes afterwards.
type Patient struct {
	ID          domain.PatientID `json:"id"`
	Name        string           `json:"name"`
	DateOfBirth string           `json:"dateOfBirth"`
	SSN         string           `json:"ssn,omitempty"`
	Gender      Gender           `json:"gender"`
	Occupation  string           `json:"occupation"`
	Entries     Entries          `json:"entries"`
}

// NewPatientFields carries validated patient creation input. It deliberately
// has no ID and no entries: both are owned by the store.
type NewPatientFields struct {
	Name        string
	DateOfBirth string
	SSN         string
	Gender      Gender
	Occupation  string
}

// NewPatient builds a patient record with an empty entry list.
func NewPatient(id domain.PatientID, f NewPatientFields) *Patient {
	return &Patient{
		ID:          id,
		Name:        f.Name,
		DateOfBirth: f.DateOfBirth,
		SSN:         f.SSN,
		Gender:      f.Gender,
		Occupation:  f.Occupation,
		Entries:     Entries{},
	}
}
