package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	patientmetrics "clinica/internal/patient/metrics"
	"clinica/internal/patient/models"
	"clinica/internal/patient/validate"
	"clinica/internal/platform/middleware"
	"clinica/pkg/domain"
	dErrors "clinica/pkg/domain-errors"
	"clinica/pkg/platform/httputil"
)

// Service defines the interface for patient record operations.
// Returns domain objects, not HTTP response DTOs.
type Service interface {
	ListPatients(ctx context.Context) ([]*models.Patient, error)
	GetPatient(ctx context.Context, id domain.PatientID) (*models.Patient, error)
	CreatePatient(ctx context.Context, fields models.NewPatientFields) (*models.Patient, error)
	AddEntry(ctx context.Context, id domain.PatientID, entry models.Entry) (*models.Patient, error)
	ListEntries(ctx context.Context, id domain.PatientID) (models.Entries, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *patientmetrics.Metrics
}

// New creates the patient HTTP handler. metrics may be nil in tests.
func New(service Service, logger *slog.Logger, metrics *patientmetrics.Metrics) *Handler {
	return &Handler{service: service, logger: logger, metrics: metrics}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/patients", h.HandleListPatients)
	r.Post("/patients", h.HandleCreatePatient)
	r.Get("/patients/{id}", h.HandleGetPatient)
	r.Get("/patients/{id}/entries", h.HandleListEntries)
	r.Post("/patients/{id}/entries", h.HandleAddEntry)
}

// HandleListPatients returns every record, redacted for non-privileged listing.
func (h *Handler) HandleListPatients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	patients, err := h.service.ListPatients(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list patients failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	out := make([]nonSensitivePatientResponse, 0, len(patients))
	for _, p := range patients {
		resp, err := toNonSensitivePatientResponse(p)
		if err != nil {
			h.logUnhandledKind(ctx, err, requestID)
			httputil.WriteError(w, err)
			return
		}
		out = append(out, resp)
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleCreatePatient validates raw creation input and inserts a new record.
func (h *Handler) HandleCreatePatient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	raw, ok := httputil.DecodeObject(w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	fields, err := validate.NewPatient(raw)
	if err != nil {
		h.logger.WarnContext(ctx, "patient validation failed", "error", err, "request_id", requestID)
		h.countValidationFailure("patient")
		writeLegacyValidationError(w, err)
		return
	}

	p, err := h.service.CreatePatient(ctx, fields)
	if err != nil {
		h.logger.ErrorContext(ctx, "create patient failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	resp, err := toPatientResponse(p)
	if err != nil {
		h.logUnhandledKind(ctx, err, requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleGetPatient returns a one-element array containing the record, or a
// bare 404 when the ID is unknown.
func (h *Handler) HandleGetPatient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	id, err := domain.ParsePatientID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	p, err := h.service.GetPatient(ctx, id)
	if err != nil {
		h.writeLookupError(w, ctx, err, requestID)
		return
	}

	resp, err := toPatientResponse(p)
	if err != nil {
		h.logUnhandledKind(ctx, err, requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, []patientResponse{resp})
}

// HandleListEntries returns the record's entry list in insertion order.
func (h *Handler) HandleListEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	id, err := domain.ParsePatientID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	entries, err := h.service.ListEntries(ctx, id)
	if err != nil {
		h.writeLookupError(w, ctx, err, requestID)
		return
	}

	out, err := toEntryResponses(entries)
	if err != nil {
		h.logUnhandledKind(ctx, err, requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleAddEntry validates raw entry input and appends it to the record.
// An unrecognized discriminator is rejected, never stored as the generic
// fallback shape.
func (h *Handler) HandleAddEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	id, err := domain.ParsePatientID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	raw, ok := httputil.DecodeObject(w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	entry, err := validate.NewEntry(raw)
	if err != nil {
		h.logger.WarnContext(ctx, "entry validation failed",
			"error", err,
			"request_id", requestID,
			"patient_id", id,
		)
		h.countValidationFailure("entry")
		writeLegacyValidationError(w, err)
		return
	}

	p, err := h.service.AddEntry(ctx, id, entry)
	if err != nil {
		h.writeLookupError(w, ctx, err, requestID)
		return
	}

	resp, err := toPatientResponse(p)
	if err != nil {
		h.logUnhandledKind(ctx, err, requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// writeLookupError maps a not-found lookup to a bare 404 with an empty body
// and everything else to the standard envelope.
func (h *Handler) writeLookupError(w http.ResponseWriter, ctx context.Context, err error, requestID string) {
	if dErrors.HasCode(err, dErrors.CodeNotFound) {
		httputil.WriteStatus(w, http.StatusNotFound)
		return
	}
	h.logger.ErrorContext(ctx, "patient operation failed", "error", err, "request_id", requestID)
	httputil.WriteError(w, err)
}

// logUnhandledKind logs an exhaustiveness contract violation loudly. Reaching
// this path means a value outside the closed variant set got past the
// validator; it must never be silently swallowed.
func (h *Handler) logUnhandledKind(ctx context.Context, err error, requestID string) {
	h.logger.ErrorContext(ctx, "unhandled entry kind reached response rendering",
		"error", err,
		"request_id", requestID,
	)
}

func (h *Handler) countValidationFailure(input string) {
	if h.metrics != nil {
		h.metrics.ValidationFailures.WithLabelValues(input).Inc()
	}
}
