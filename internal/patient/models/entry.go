package models

import (
	"encoding/json"
	"fmt"

	"clinica/pkg/domain"
	dErrors "clinica/pkg/domain-errors"
)

// EntryKind discriminates the clinical entry variants on the wire.
type EntryKind string

const (
	KindHealthCheck            EntryKind = "HealthCheck"
	KindOccupationalHealthcare EntryKind = "OccupationalHealthcare"
	KindHospital               EntryKind = "Hospital"

	// KindUnspecified marks the legacy fallback shape carried by pre-existing
	// records that never declared a discriminator. It is read-compatibility
	// only and never accepted from new input.
	KindUnspecified EntryKind = ""
)

// Recognized reports whether k names one of the closed variant set.
func (k EntryKind) Recognized() bool {
	switch k {
	case KindHealthCheck, KindOccupationalHealthcare, KindHospital:
		return true
	}
	return false
}

// HealthCheckRating grades the outcome of a health check entry.
type HealthCheckRating int

const (
	RatingHealthy HealthCheckRating = iota
	RatingLowRisk
	RatingHighRisk
	RatingCriticalRisk
)

// Valid reports whether r is one of the four defined ratings. The field is
// numeric on the wire but no other integer is acceptable.
func (r HealthCheckRating) Valid() bool {
	return r >= RatingHealthy && r <= RatingCriticalRisk
}

func (r HealthCheckRating) String() string {
	switch r {
	case RatingHealthy:
		return "Healthy"
	case RatingLowRisk:
		return "LowRisk"
	case RatingHighRisk:
		return "HighRisk"
	case RatingCriticalRisk:
		return "CriticalRisk"
	default:
		return fmt.Sprintf("HealthCheckRating(%d)", int(r))
	}
}

// Entry is the sealed interface over the closed variant set. Only the pointer
// variants in this package implement it; code switching over the dynamic type
// must treat any other value as an unhandled-entry-kind contract violation.
type Entry interface {
	EntryID() domain.EntryID
	Kind() EntryKind
	// Base exposes the shared fields. The store uses it to assign the ID.
	Base() *BaseEntry
	sealed()
}

// BaseEntry holds the fields shared by every entry variant. The ID is assigned
// by the store on append and is immutable afterwards.
type BaseEntry struct {
	ID             domain.EntryID         `json:"id"`
	Description    string                 `json:"description"`
	Date           string                 `json:"date"`
	Specialist     string                 `json:"specialist"`
	DiagnosisCodes []domain.DiagnosisCode `json:"diagnosisCodes,omitempty"`
}

func (b *BaseEntry) EntryID() domain.EntryID { return b.ID }
func (b *BaseEntry) Base() *BaseEntry        { return b }
func (b *BaseEntry) sealed()                 {}

// HealthCheckEntry records a routine health check and its rating.
type HealthCheckEntry struct {
	BaseEntry
	HealthCheckRating HealthCheckRating `json:"healthCheckRating"`
}

func (*HealthCheckEntry) Kind() EntryKind { return KindHealthCheck }

func (e *HealthCheckEntry) MarshalJSON() ([]byte, error) {
	type alias HealthCheckEntry
	return json.Marshal(struct {
		Type EntryKind `json:"type"`
		*alias
	}{Type: KindHealthCheck, alias: (*alias)(e)})
}

// SickLeave is a fully-present-or-absent pair of dates on an occupational
// healthcare entry.
type SickLeave struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// OccupationalHealthcareEntry records a visit tied to the patient's employer.
type OccupationalHealthcareEntry struct {
	BaseEntry
	EmployerName string     `json:"employerName"`
	SickLeave    *SickLeave `json:"sickLeave,omitempty"`
}

func (*OccupationalHealthcareEntry) Kind() EntryKind { return KindOccupationalHealthcare }

func (e *OccupationalHealthcareEntry) MarshalJSON() ([]byte, error) {
	type alias OccupationalHealthcareEntry
	return json.Marshal(struct {
		Type EntryKind `json:"type"`
		*alias
	}{Type: KindOccupationalHealthcare, alias: (*alias)(e)})
}

// Discharge describes how a hospital stay ended. Both fields are required.
type Discharge struct {
	Date     string `json:"date"`
	Criteria string `json:"criteria"`
}

// HospitalEntry records an inpatient episode and its discharge.
type HospitalEntry struct {
	BaseEntry
	Discharge Discharge `json:"discharge"`
}

func (*HospitalEntry) Kind() EntryKind { return KindHospital }

func (e *HospitalEntry) MarshalJSON() ([]byte, error) {
	type alias HospitalEntry
	return json.Marshal(struct {
		Type EntryKind `json:"type"`
		*alias
	}{Type: KindHospital, alias: (*alias)(e)})
}

// LegacyEntry is the unrestricted fallback shape: base fields only, no
// discriminator. It exists so records written before the variant set was
// closed can still be read. The validator never produces one.
type LegacyEntry struct {
	BaseEntry
}

func (*LegacyEntry) Kind() EntryKind { return KindUnspecified }

// UnmarshalEntry decodes one entry, dispatching on its discriminator.
// A missing discriminator yields the legacy fallback; an unrecognized one is
// an unhandled-entry-kind error, never a silent default.
func UnmarshalEntry(data []byte) (Entry, error) {
	var probe struct {
		Type *EntryKind `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "malformed entry")
	}

	if probe.Type == nil {
		var e LegacyEntry
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "malformed entry")
		}
		return &e, nil
	}

	var entry Entry
	switch *probe.Type {
	case KindHealthCheck:
		entry = &HealthCheckEntry{}
	case KindOccupationalHealthcare:
		entry = &OccupationalHealthcareEntry{}
	case KindHospital:
		entry = &HospitalEntry{}
	default:
		return nil, dErrors.New(dErrors.CodeUnhandledEntryKind,
			fmt.Sprintf("unhandled entry kind: %s", *probe.Type))
	}
	if err := json.Unmarshal(data, entry); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "malformed entry")
	}
	return entry, nil
}

// Entries is an ordered, append-only sequence of entry values.
type Entries []Entry

func (es *Entries) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Entries, 0, len(raw))
	for _, msg := range raw {
		e, err := UnmarshalEntry(msg)
		if err != nil {
			return err
		}
		out = append(out, e)
	}
	*es = out
	return nil
}
