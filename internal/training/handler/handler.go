// Package handler exposes the training service over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"roster/internal/training/models"
	"roster/internal/training/service"
	id "roster/pkg/domain"
	dErrors "roster/pkg/domain-errors"
	"roster/pkg/platform/httputil"
	"roster/pkg/platform/middleware/auth"
	"roster/pkg/platform/middleware/device"
	"roster/pkg/platform/middleware/metadata"
	"roster/pkg/requestcontext"
)

// Service is the slice of the training service the HTTP surface needs.
type Service interface {
	BuildAttendanceGrid(ctx context.Context, trainingID id.TrainingID) (*models.AttendanceGrid, error)
	CheckIn(ctx context.Context, trainingID id.TrainingID, participantID id.ParticipantID, session models.Session, location *models.Location) (*models.AttendanceRecord, error)
	BulkUpdateAttendance(ctx context.Context, trainingID id.TrainingID, entries []service.BulkEntry, reason string, actor models.Actor) (int, error)
	PreviewTransfer(ctx context.Context, participantID id.ParticipantID, sourceID, targetID id.TrainingID) (*models.TransferPreview, error)
	ExecuteTransfer(ctx context.Context, participantID id.ParticipantID, sourceID, targetID id.TrainingID, actor models.Actor) (*models.TransferResult, error)
	ListTransferTargets(ctx context.Context, exclude id.TrainingID) ([]*models.Training, error)
	Enroll(ctx context.Context, participantID id.ParticipantID, trainingIDs []id.TrainingID, method models.RegistrationMethod, actor models.Actor) ([]*models.Enrollment, error)
	CancelEnrollment(ctx context.Context, enrollmentID id.EnrollmentID, actor models.Actor) (*models.Enrollment, error)
	ListEnrollmentsByTraining(ctx context.Context, trainingID id.TrainingID) ([]models.EnrolledParticipant, error)
}

type Handler struct {
	svc       Service
	logger    *slog.Logger
	validator auth.TokenValidator
}

func New(svc Service, validator auth.TokenValidator, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, validator: validator, logger: logger}
}

// Register mounts the authenticated training routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(h.validator, h.logger))
		r.Use(metadata.ClientMetadata)
		r.Use(device.Middleware)

		r.Get("/attendance/grid/{trainingID}", h.handleGrid)
		r.Post("/attendance/check-in", h.handleCheckIn)
		r.Post("/attendance/bulk", h.handleBulkUpdate)

		r.Post("/transfers/preview", h.handlePreviewTransfer)
		r.Post("/transfers/participant", h.handleExecuteTransfer)
		r.Get("/transfers/available-trainings", h.handleListTransferTargets)

		r.Post("/enrollments", h.handleEnroll)
		r.Delete("/enrollments/{enrollmentID}", h.handleCancelEnrollment)
		r.Get("/enrollments/training/{trainingID}", h.handleListEnrollments)
	})
}

func actorFrom(ctx context.Context) models.Actor {
	a := requestcontext.Actor(ctx)
	return models.Actor{UserID: a.UserID, Name: a.Name}
}

// fail logs at a level matching the error class and writes the response.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	attrs := []any{"request_id", requestcontext.RequestID(ctx), "error", err}
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}

func (h *Handler) handleGrid(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	trainingID, err := id.ParseTrainingID(chi.URLParam(r, "trainingID"))
	if err != nil {
		h.fail(ctx, w, "invalid training id", err)
		return
	}
	grid, err := h.svc.BuildAttendanceGrid(ctx, trainingID)
	if err != nil {
		h.fail(ctx, w, "failed to build attendance grid", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, grid)
}

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndValidate[CheckInRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	trainingID, err := id.ParseTrainingID(req.TrainingID)
	if err != nil {
		h.fail(ctx, w, "invalid training id", err)
		return
	}
	participantID, err := id.ParseParticipantID(req.ParticipantID)
	if err != nil {
		h.fail(ctx, w, "invalid participant id", err)
		return
	}

	record, err := h.svc.CheckIn(ctx, trainingID, participantID, models.Session(req.Session), req.Location)
	if err != nil {
		h.fail(ctx, w, "check-in failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) handleBulkUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndValidate[BulkUpdateRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	trainingID, err := id.ParseTrainingID(req.TrainingID)
	if err != nil {
		h.fail(ctx, w, "invalid training id", err)
		return
	}
	entries, err := req.toEntries()
	if err != nil {
		h.fail(ctx, w, "invalid attendance entry", err)
		return
	}

	n, err := h.svc.BulkUpdateAttendance(ctx, trainingID, entries, req.Reason, actorFrom(ctx))
	if err != nil {
		h.fail(ctx, w, "bulk attendance update failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BulkUpdateResponse{Updated: n})
}

func (h *Handler) handlePreviewTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndValidate[TransferRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	participantID, sourceID, targetID, err := req.ids()
	if err != nil {
		h.fail(ctx, w, "invalid transfer request", err)
		return
	}

	preview, err := h.svc.PreviewTransfer(ctx, participantID, sourceID, targetID)
	if err != nil {
		h.fail(ctx, w, "transfer preview failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, preview)
}

func (h *Handler) handleExecuteTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndValidate[TransferRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	participantID, sourceID, targetID, err := req.ids()
	if err != nil {
		h.fail(ctx, w, "invalid transfer request", err)
		return
	}

	result, err := h.svc.ExecuteTransfer(ctx, participantID, sourceID, targetID, actorFrom(ctx))
	if err != nil {
		h.fail(ctx, w, "transfer failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, TransferResponse{Message: "Transfer completed successfully", TransferResult: result})
}

func (h *Handler) handleListTransferTargets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var exclude id.TrainingID
	if raw := r.URL.Query().Get("exclude_training_id"); raw != "" {
		parsed, err := id.ParseTrainingID(raw)
		if err != nil {
			h.fail(ctx, w, "invalid exclude_training_id", err)
			return
		}
		exclude = parsed
	}

	list, err := h.svc.ListTransferTargets(ctx, exclude)
	if err != nil {
		h.fail(ctx, w, "failed to list transfer targets", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) handleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndValidate[EnrollRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	participantID, err := id.ParseParticipantID(req.ParticipantID)
	if err != nil {
		h.fail(ctx, w, "invalid participant id", err)
		return
	}
	trainingIDs := make([]id.TrainingID, 0, len(req.TrainingIDs))
	for _, raw := range req.TrainingIDs {
		tid, err := id.ParseTrainingID(raw)
		if err != nil {
			h.fail(ctx, w, "invalid training id", err)
			return
		}
		trainingIDs = append(trainingIDs, tid)
	}
	method, _ := models.ParseRegistrationMethod(req.RegistrationMethod)

	created, err := h.svc.Enroll(ctx, participantID, trainingIDs, method, actorFrom(ctx))
	if err != nil {
		h.fail(ctx, w, "enrollment failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleCancelEnrollment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	enrollmentID, err := id.ParseEnrollmentID(chi.URLParam(r, "enrollmentID"))
	if err != nil {
		h.fail(ctx, w, "invalid enrollment id", err)
		return
	}
	cancelled, err := h.svc.CancelEnrollment(ctx, enrollmentID, actorFrom(ctx))
	if err != nil {
		h.fail(ctx, w, "failed to cancel enrollment", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cancelled)
}

func (h *Handler) handleListEnrollments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	trainingID, err := id.ParseTrainingID(chi.URLParam(r, "trainingID"))
	if err != nil {
		h.fail(ctx, w, "invalid training id", err)
		return
	}
	list, err := h.svc.ListEnrollmentsByTraining(ctx, trainingID)
	if err != nil {
		h.fail(ctx, w, "failed to list enrollments", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}
