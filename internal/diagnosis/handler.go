package diagnosis

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"clinica/internal/platform/middleware"
	"clinica/internal/sentinel"
	"clinica/pkg/domain"
	dErrors "clinica/pkg/domain-errors"
	"clinica/pkg/platform/httputil"
)

// Store is the catalog repository contract the handler depends on.
type Store interface {
	List(ctx context.Context) ([]Diagnosis, error)
	FindByCode(ctx context.Context, code domain.DiagnosisCode) (Diagnosis, error)
	Save(ctx context.Context, d Diagnosis) error
}

type Handler struct {
	store  Store
	logger *slog.Logger
}

func NewHandler(store Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/diagnoses", h.HandleListDiagnoses)
	r.Get("/diagnoses/{code}", h.HandleGetDiagnosis)
	r.Post("/diagnoses", h.HandleCreateDiagnosis)
}

func (h *Handler) HandleListDiagnoses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	diagnoses, err := h.store.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list diagnoses failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list diagnoses"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, diagnoses)
}

func (h *Handler) HandleGetDiagnosis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := domain.DiagnosisCode(chi.URLParam(r, "code"))

	d, err := h.store.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteStatus(w, http.StatusNotFound)
			return
		}
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "diagnosis lookup failed"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) HandleCreateDiagnosis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateDiagnosisRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	d := req.ToDiagnosis()
	if err := h.store.Save(ctx, d); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeConflict, "diagnosis code already exists"))
			return
		}
		h.logger.ErrorContext(ctx, "create diagnosis failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create diagnosis"))
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, d)
}
