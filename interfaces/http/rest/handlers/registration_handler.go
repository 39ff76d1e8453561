package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"coursehub-backend/application/services"
	"coursehub-backend/domain/core/entities"
	pkgerrors "coursehub-backend/pkg/errors"
	"coursehub-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RegistrationHandler handles employee registration HTTP requests
type RegistrationHandler struct {
	registration *services.RegistrationService
	cancellation *services.CancellationService
	errors       *pkgerrors.ErrorHandler
	logger       *zap.Logger
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(
	registration *services.RegistrationService,
	cancellation *services.CancellationService,
	logger *zap.Logger,
) *RegistrationHandler {
	return &RegistrationHandler{
		registration: registration,
		cancellation: cancellation,
		errors:       pkgerrors.NewErrorHandler(logger),
		logger:       logger,
	}
}

// RegisterRequest represents the request body for registering an employee
type RegisterRequest struct {
	CourseID     string `json:"course_id" validate:"required,startswith=OFFERING-"`
	EmployeeName string `json:"employee_name" validate:"required,min=1,max=120"`
	Email        string `json:"email" validate:"required,email"`
}

// RegistrationResponse represents a registration in API responses
type RegistrationResponse struct {
	RegistrationID string `json:"registration_id"`
	EmployeeName   string `json:"employee_name"`
	Email          string `json:"email"`
	CourseID       string `json:"course_id"`
	Status         string `json:"status"`
	RegisteredAt   string `json:"registered_at,omitempty"`
}

// CancellationResponse represents the outcome of a cancel request
type CancellationResponse struct {
	RegistrationID string `json:"registration_id"`
	Outcome        string `json:"outcome"`
	Reason         string `json:"reason,omitempty"`
}

// Register handles POST /registrations
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	reg, err := h.registration.Register(r.Context(), req.CourseID, req.EmployeeName, req.Email)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toRegistrationResponse(reg))
}

// Cancel handles DELETE /registrations/{registrationID}
func (h *RegistrationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	result, err := h.cancellation.Cancel(r.Context(), chi.URLParam(r, "registrationID"))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, CancellationResponse{
		RegistrationID: result.RegistrationID.String(),
		Outcome:        string(result.Outcome),
		Reason:         result.Reason,
	})
}

func toRegistrationResponse(reg *entities.Registration) RegistrationResponse {
	registeredAt := ""
	if !reg.RegisteredAt().IsZero() {
		registeredAt = reg.RegisteredAt().Format(time.RFC3339)
	}
	return RegistrationResponse{
		RegistrationID: reg.ID().String(),
		EmployeeName:   reg.EmployeeName(),
		Email:          reg.Email(),
		CourseID:       reg.CourseID().String(),
		Status:         string(reg.Status()),
		RegisteredAt:   registeredAt,
	}
}
