// Package service orchestrates patient record operations over the store.
// It is fed only validator-approved values; raw client input never reaches it.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	patientmetrics "clinica/internal/patient/metrics"
	"clinica/internal/patient/models"
	"clinica/internal/platform/privacy"
	"clinica/internal/platform/tracing"
	"clinica/internal/sentinel"
	"clinica/pkg/domain"
	dErrors "clinica/pkg/domain-errors"
)

// PatientStore is the repository contract the service depends on.
type PatientStore interface {
	List(ctx context.Context) ([]*models.Patient, error)
	FindByID(ctx context.Context, id domain.PatientID) (*models.Patient, error)
	Create(ctx context.Context, fields models.NewPatientFields) (*models.Patient, error)
	AppendEntry(ctx context.Context, id domain.PatientID, entry models.Entry) (*models.Patient, error)
}

// Service exposes the patient record operations.
type Service struct {
	patients PatientStore
	logger   *slog.Logger
	metrics  *patientmetrics.Metrics
	tracer   tracing.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *patientmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracing.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func New(patients PatientStore, opts ...Option) *Service {
	s := &Service{
		patients: patients,
		logger:   slog.Default(),
		tracer:   tracing.Noop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListPatients returns every patient record in insertion order.
func (s *Service) ListPatients(ctx context.Context) ([]*models.Patient, error) {
	ctx, span := s.tracer.Start(ctx, "patient.List")
	patients, err := s.patients.List(ctx)
	span.End(err)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list patients")
	}
	return patients, nil
}

// GetPatient returns a single record by ID.
func (s *Service) GetPatient(ctx context.Context, id domain.PatientID) (*models.Patient, error) {
	ctx, span := s.tracer.Start(ctx, "patient.Get", tracing.String("patient_id", id.String()))
	p, err := s.patients.FindByID(ctx, id)
	span.End(err)
	if err != nil {
		return nil, wrapPatientErr(err)
	}
	return p, nil
}

// CreatePatient inserts a new record with a store-generated ID and an empty
// entry list. Fields must already satisfy the validator's output contract.
func (s *Service) CreatePatient(ctx context.Context, fields models.NewPatientFields) (*models.Patient, error) {
	ctx, span := s.tracer.Start(ctx, "patient.Create")
	start := time.Now()
	p, err := s.patients.Create(ctx, fields)
	span.End(err)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create patient")
	}

	s.observe("create", start)
	if s.metrics != nil {
		s.metrics.PatientsCreated.Inc()
	}
	s.logger.InfoContext(ctx, "patient created", "patient_id", p.ID, "ssn", privacy.MaskSSN(p.SSN))
	return p, nil
}

// AddEntry appends a validated entry to the patient's record and returns the
// updated record. Entries are append-only; nothing ever updates or removes one.
func (s *Service) AddEntry(ctx context.Context, id domain.PatientID, entry models.Entry) (*models.Patient, error) {
	ctx, span := s.tracer.Start(ctx, "patient.AddEntry",
		tracing.String("patient_id", id.String()),
		tracing.String("entry_kind", string(entry.Kind())),
	)
	start := time.Now()
	p, err := s.patients.AppendEntry(ctx, id, entry)
	span.End(err)
	if err != nil {
		return nil, wrapPatientErr(err)
	}

	s.observe("append_entry", start)
	if s.metrics != nil {
		s.metrics.EntriesAppended.WithLabelValues(string(entry.Kind())).Inc()
	}
	s.logger.InfoContext(ctx, "entry appended",
		"patient_id", p.ID,
		"entry_id", entry.EntryID(),
		"kind", entry.Kind(),
	)
	return p, nil
}

// ListEntries returns the patient's entry list in insertion order.
func (s *Service) ListEntries(ctx context.Context, id domain.PatientID) (models.Entries, error) {
	p, err := s.GetPatient(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.Entries, nil
}

func (s *Service) observe(operation string, start time.Time) {
	if s.metrics != nil {
		s.metrics.OperationLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

// wrapPatientErr translates store sentinels into domain errors exactly once.
func wrapPatientErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "patient not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "patient store failure")
}
