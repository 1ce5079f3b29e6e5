package handler

import (
	"fmt"
	"net/http"

	"clinica/internal/patient/models"
	"clinica/pkg/domain"
	dErrors "clinica/pkg/domain-errors"
)

// HTTP response DTOs. Entries pass through the exhaustive dispatch below so a
// value outside the closed variant set fails loudly instead of serializing as
// whatever it happens to be.

type patientResponse struct {
	ID          domain.PatientID `json:"id"`
	Name        string           `json:"name"`
	DateOfBirth string           `json:"dateOfBirth"`
	SSN         string           `json:"ssn,omitempty"`
	Gender      models.Gender    `json:"gender"`
	Occupation  string           `json:"occupation"`
	Entries     []any            `json:"entries"`
}

// nonSensitivePatientResponse is the listing view: the record without ssn.
type nonSensitivePatientResponse struct {
	ID          domain.PatientID `json:"id"`
	Name        string           `json:"name"`
	DateOfBirth string           `json:"dateOfBirth"`
	Gender      models.Gender    `json:"gender"`
	Occupation  string           `json:"occupation"`
	Entries     []any            `json:"entries"`
}

func toPatientResponse(p *models.Patient) (patientResponse, error) {
	entries, err := toEntryResponses(p.Entries)
	if err != nil {
		return patientResponse{}, err
	}
	return patientResponse{
		ID:          p.ID,
		Name:        p.Name,
		DateOfBirth: p.DateOfBirth,
		SSN:         p.SSN,
		Gender:      p.Gender,
		Occupation:  p.Occupation,
		Entries:     entries,
	}, nil
}

func toNonSensitivePatientResponse(p *models.Patient) (nonSensitivePatientResponse, error) {
	entries, err := toEntryResponses(p.Entries)
	if err != nil {
		return nonSensitivePatientResponse{}, err
	}
	return nonSensitivePatientResponse{
		ID:          p.ID,
		Name:        p.Name,
		DateOfBirth: p.DateOfBirth,
		Gender:      p.Gender,
		Occupation:  p.Occupation,
		Entries:     entries,
	}, nil
}

func toEntryResponses(entries models.Entries) ([]any, error) {
	out := make([]any, 0, len(entries))
	for _, e := range entries {
		resp, err := toEntryResponse(e)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// toEntryResponse dispatches over the sealed entry set. Each variant carries
// its own JSON shape (including the discriminator), so the arms pass the value
// through; the point of the switch is that the default arm is unreachable by
// construction and fails with a distinct error when the contract is broken.
func toEntryResponse(e models.Entry) (any, error) {
	switch v := e.(type) {
	case *models.HealthCheckEntry:
		return v, nil
	case *models.OccupationalHealthcareEntry:
		return v, nil
	case *models.HospitalEntry:
		return v, nil
	case *models.LegacyEntry:
		return v, nil
	default:
		return nil, dErrors.New(dErrors.CodeUnhandledEntryKind,
			fmt.Sprintf("unhandled entry kind: %T", e))
	}
}

// writeLegacyValidationError writes the plain-text 400 body existing clients
// parse: "Something went wrong Error: <message>".
func writeLegacyValidationError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	_, _ = fmt.Fprintf(w, "Something went wrong Error: %s", err.Error())
}
