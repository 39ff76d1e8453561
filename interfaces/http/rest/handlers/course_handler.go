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

// CourseHandler handles course offering HTTP requests
type CourseHandler struct {
	catalog   *services.CatalogService
	allotment *services.AllotmentService
	errors    *pkgerrors.ErrorHandler
	logger    *zap.Logger
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(
	catalog *services.CatalogService,
	allotment *services.AllotmentService,
	logger *zap.Logger,
) *CourseHandler {
	return &CourseHandler{
		catalog:   catalog,
		allotment: allotment,
		errors:    pkgerrors.NewErrorHandler(logger),
		logger:    logger,
	}
}

// CreateCourseRequest represents the request body for creating an offering
type CreateCourseRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=120"`
	Instructor string `json:"instructor" validate:"required,min=1,max=120"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
	MinSeats   int    `json:"min_seats" validate:"gte=0"`
	MaxSeats   int    `json:"max_seats" validate:"gte=0"`
}

// CourseResponse represents a course offering in API responses
type CourseResponse struct {
	CourseID     string `json:"course_id"`
	Name         string `json:"name"`
	Instructor   string `json:"instructor"`
	StartDate    string `json:"start_date"`
	MinSeats     int    `json:"min_seats"`
	MaxSeats     int    `json:"max_seats"`
	CurrentCount int    `json:"current_count"`
	IsAllotted   bool   `json:"is_allotted"`
	CourseStatus string `json:"course_status"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// AllotmentResponse represents the allotment decision in API responses
type AllotmentResponse struct {
	Course        CourseResponse         `json:"course"`
	FinalStatus   string                 `json:"final_status"`
	Registrations []RegistrationResponse `json:"registrations"`
}

// CreateCourse handles POST /courses
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	course, err := h.catalog.CreateOffering(r.Context(), services.CreateOfferingInput{
		Name:       req.Name,
		Instructor: req.Instructor,
		StartDate:  req.StartDate,
		MinSeats:   req.MinSeats,
		MaxSeats:   req.MaxSeats,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toCourseResponse(course))
}

// GetCourse handles GET /courses/{courseID}
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.catalog.GetOffering(r.Context(), chi.URLParam(r, "courseID"))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toCourseResponse(course))
}

// AllotCourse handles POST /courses/{courseID}/allotment
func (h *CourseHandler) AllotCourse(w http.ResponseWriter, r *http.Request) {
	result, err := h.allotment.Allot(r.Context(), chi.URLParam(r, "courseID"))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	resp := AllotmentResponse{
		Course:        toCourseResponse(result.Course),
		FinalStatus:   string(result.FinalStatus),
		Registrations: make([]RegistrationResponse, 0, len(result.Registrations)),
	}
	for _, reg := range result.Registrations {
		resp.Registrations = append(resp.Registrations, toRegistrationResponse(reg))
	}

	respondJSON(w, http.StatusOK, resp)
}

// ListRegistrations handles GET /courses/{courseID}/registrations
func (h *CourseHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := h.catalog.ListRegistrations(r.Context(), chi.URLParam(r, "courseID"))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	resp := make([]RegistrationResponse, 0, len(regs))
	for _, reg := range regs {
		resp = append(resp, toRegistrationResponse(reg))
	}

	respondJSON(w, http.StatusOK, resp)
}

func toCourseResponse(c *entities.Course) CourseResponse {
	createdAt := ""
	if !c.CreatedAt().IsZero() {
		createdAt = c.CreatedAt().Format(time.RFC3339)
	}
	return CourseResponse{
		CourseID:     c.ID().String(),
		Name:         c.Name(),
		Instructor:   c.Instructor(),
		StartDate:    c.StartDate().Format(utils.DateLayout),
		MinSeats:     c.MinSeats(),
		MaxSeats:     c.MaxSeats(),
		CurrentCount: c.CurrentCount(),
		IsAllotted:   c.IsAllotted(),
		CourseStatus: string(c.Status()),
		CreatedAt:    createdAt,
	}
}
