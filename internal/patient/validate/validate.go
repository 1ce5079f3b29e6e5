// Package validate converts untrusted, loosely-typed input into values that
// satisfy the patient domain model, or fails with an error naming the field
// and echoing the offending value.
//
// Every creation path runs through here: both patients and entries. The field
// contract is uniform for strings (present and a JSON string; no date syntax
// checking, dates are opaque), while gender, entry kind, and the health check
// rating are validated against their closed sets.
package validate

import (
	"math"

	"clinica/internal/patient/models"
	"clinica/pkg/domain"
	dErrors "clinica/pkg/domain-errors"
)

// NewPatient validates raw patient creation input.
func NewPatient(raw map[string]any) (models.NewPatientFields, error) {
	var f models.NewPatientFields
	if raw == nil {
		return f, dErrors.New(dErrors.CodeValidation, "Incorrect or missing data")
	}

	name, err := parseString("name", raw["name"])
	if err != nil {
		return f, err
	}
	dateOfBirth, err := parseString("dateOfBirth", raw["dateOfBirth"])
	if err != nil {
		return f, err
	}
	ssn, err := parseString("ssn", raw["ssn"])
	if err != nil {
		return f, err
	}
	genderStr, err := parseString("gender", raw["gender"])
	if err != nil {
		return f, err
	}
	gender, err := models.ParseGender(genderStr)
	if err != nil {
		return f, err
	}
	occupation, err := parseString("occupation", raw["occupation"])
	if err != nil {
		return f, err
	}

	return models.NewPatientFields{
		Name:        name,
		DateOfBirth: dateOfBirth,
		SSN:         ssn,
		Gender:      gender,
		Occupation:  occupation,
	}, nil
}

// NewEntry validates raw entry creation input and dispatches on the
// discriminator. Unrecognized and missing kinds fail: the legacy fallback
// shape is read-compatibility only and is never produced from new input.
// The returned entry has no ID; the store assigns one on append.
func NewEntry(raw map[string]any) (models.Entry, error) {
	if raw == nil {
		return nil, dErrors.New(dErrors.CodeValidation, "Incorrect or missing data")
	}

	base, err := parseBase(raw)
	if err != nil {
		return nil, err
	}

	kindStr, err := parseString("type", raw["type"])
	if err != nil {
		return nil, err
	}
	kind := models.EntryKind(kindStr)
	if !kind.Recognized() {
		return nil, dErrors.NewField("type", kindStr)
	}

	switch kind {
	case models.KindHealthCheck:
		rating, err := parseRating(raw["healthCheckRating"])
		if err != nil {
			return nil, err
		}
		return &models.HealthCheckEntry{BaseEntry: base, HealthCheckRating: rating}, nil

	case models.KindOccupationalHealthcare:
		employer, err := parseString("employerName", raw["employerName"])
		if err != nil {
			return nil, err
		}
		sickLeave, err := parseSickLeave(raw["sickLeave"])
		if err != nil {
			return nil, err
		}
		return &models.OccupationalHealthcareEntry{
			BaseEntry:    base,
			EmployerName: employer,
			SickLeave:    sickLeave,
		}, nil

	case models.KindHospital:
		discharge, err := parseDischarge(raw["discharge"])
		if err != nil {
			return nil, err
		}
		return &models.HospitalEntry{BaseEntry: base, Discharge: discharge}, nil
	}

	// Recognized() already closed the set; reaching here is a contract bug.
	return nil, dErrors.New(dErrors.CodeUnhandledEntryKind, "unhandled entry kind: "+kindStr)
}

func parseBase(raw map[string]any) (models.BaseEntry, error) {
	var base models.BaseEntry

	description, err := parseString("description", raw["description"])
	if err != nil {
		return base, err
	}
	date, err := parseString("date", raw["date"])
	if err != nil {
		return base, err
	}
	specialist, err := parseString("specialist", raw["specialist"])
	if err != nil {
		return base, err
	}
	codes, err := parseDiagnosisCodes(raw["diagnosisCodes"])
	if err != nil {
		return base, err
	}

	return models.BaseEntry{
		Description:    description,
		Date:           date,
		Specialist:     specialist,
		DiagnosisCodes: codes,
	}, nil
}

// parseString accepts a value only when it is present and a JSON string.
// The value is returned unchanged; format checking is not this layer's job.
func parseString(field string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", dErrors.NewField(field, v)
	}
	return s, nil
}

// parseRating accepts only the four defined integer ratings. JSON numbers
// arrive as float64, so the value must also be integral.
func parseRating(v any) (models.HealthCheckRating, error) {
	n, ok := v.(float64)
	if !ok || n != math.Trunc(n) {
		return 0, dErrors.NewField("healthCheckRating", v)
	}
	rating := models.HealthCheckRating(n)
	if !rating.Valid() {
		return 0, dErrors.NewField("healthCheckRating", v)
	}
	return rating, nil
}

// parseSickLeave accepts either no sick leave at all or a complete one.
func parseSickLeave(v any) (*models.SickLeave, error) {
	if v == nil {
		return nil, nil
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, dErrors.NewField("sickLeave", v)
	}
	start, err := parseString("sickLeave.startDate", obj["startDate"])
	if err != nil {
		return nil, err
	}
	end, err := parseString("sickLeave.endDate", obj["endDate"])
	if err != nil {
		return nil, err
	}
	return &models.SickLeave{StartDate: start, EndDate: end}, nil
}

func parseDischarge(v any) (models.Discharge, error) {
	var d models.Discharge
	obj, ok := v.(map[string]any)
	if !ok {
		return d, dErrors.NewField("discharge", v)
	}
	date, err := parseString("discharge.date", obj["date"])
	if err != nil {
		return d, err
	}
	criteria, err := parseString("discharge.criteria", obj["criteria"])
	if err != nil {
		return d, err
	}
	return models.Discharge{Date: date, Criteria: criteria}, nil
}

// parseDiagnosisCodes accepts absence, or an ordered array of strings.
func parseDiagnosisCodes(v any) ([]domain.DiagnosisCode, error) {
	if v == nil {
		return nil, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, dErrors.NewField("diagnosisCodes", v)
	}
	codes := make([]domain.DiagnosisCode, 0, len(arr))
	for _, el := range arr {
		s, ok := el.(string)
		if !ok {
			return nil, dErrors.NewField("diagnosisCodes", el)
		}
		codes = append(codes, domain.DiagnosisCode(s))
	}
	return codes, nil
}
