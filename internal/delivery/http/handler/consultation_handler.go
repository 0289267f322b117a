package handler

import (
	"encoding/json"
	"net/http"

	"go-consult-api/internal/delivery/dto"
	"go-consult-api/internal/delivery/http/middleware"
	"go-consult-api/internal/usecase"
	"go-consult-api/pkg/response"
	"go-consult-api/pkg/validator"
)

type ConsultationHandler struct {
	consultationUsecase usecase.ConsultationUsecase
	validator           *validator.CustomValidator
}

func NewConsultationHandler(consultationUsecase usecase.ConsultationUsecase, validator *validator.CustomValidator) *ConsultationHandler {
	return &ConsultationHandler{
		consultationUsecase: consultationUsecase,
		validator:           validator,
	}
}

// CreateConsultation records a consultation. Doctors record under their own
// identity; admins must name the doctor explicitly.
func (h *ConsultationHandler) CreateConsultation(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	actorRole, ok := middleware.GetRoleFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	consultation, err := h.consultationUsecase.Create(r.Context(), actorID, actorRole, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorRequired:
			response.Error(w, http.StatusBadRequest, "doctor_id is required", nil)
		default:
			response.InternalServerError(w, "Failed to create consultation")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Consultation created successfully", consultation)
}

// ListConsultations returns consultations visible to the caller: patients
// see their own, doctors theirs, admins all.
func (h *ConsultationHandler) ListConsultations(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	actorRole, ok := middleware.GetRoleFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	consultations, err := h.consultationUsecase.List(r.Context(), actorID, actorRole)
	if err != nil {
		response.InternalServerError(w, "Failed to list consultations")
		return
	}

	response.Success(w, http.StatusOK, "Consultations retrieved successfully", consultations)
}
