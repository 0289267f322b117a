package usecase

import (
	"context"
	"errors"
	"time"

	"go-consult-api/internal/delivery/dto"
	"go-consult-api/internal/domain/entity"
	"go-consult-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrDoctorRequired = errors.New("doctor_id is required")

type ConsultationUsecase interface {
	Create(ctx context.Context, actorID, actorRole string, req *dto.CreateConsultationRequest) (*dto.ConsultationResponse, error)
	List(ctx context.Context, actorID, actorRole string) ([]*dto.ConsultationResponse, error)
}

type consultationUsecase struct {
	log              *logrus.Logger
	consultationRepo repository.ConsultationRepository
}

func NewConsultationUsecase(log *logrus.Logger, consultationRepo repository.ConsultationRepository) ConsultationUsecase {
	return &consultationUsecase{
		log:              log,
		consultationRepo: consultationRepo,
	}
}

func (u *consultationUsecase) Create(ctx context.Context, actorID, actorRole string, req *dto.CreateConsultationRequest) (*dto.ConsultationResponse, error) {
	doctorID := req.DoctorID
	// Doctors always record under their own identity; admins must name one.
	if actorRole == entity.RoleDoctor {
		doctorID = actorID
	}
	if doctorID == "" {
		return nil, ErrDoctorRequired
	}

	now := time.Now()
	consultation := &entity.Consultation{
		ID:            uuid.New().String(),
		DoctorID:      doctorID,
		PatientID:     req.PatientID,
		Notes:         req.Notes,
		VideoURL:      req.VideoURL,
		VideoPublicID: req.VideoPublicID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := u.consultationRepo.Create(ctx, consultation); err != nil {
		u.log.Warnf("Failed to create consultation: %+v", err)
		return nil, err
	}

	return toConsultationResponse(consultation), nil
}

func (u *consultationUsecase) List(ctx context.Context, actorID, actorRole string) ([]*dto.ConsultationResponse, error) {
	filter := entity.ConsultationFilter{}
	switch actorRole {
	case entity.RoleDoctor:
		filter.DoctorID = actorID
	case entity.RolePatient:
		filter.PatientID = actorID
	}
	// Admins see everything.

	consultations, err := u.consultationRepo.Find(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to list consultations: %+v", err)
		return nil, err
	}

	responses := make([]*dto.ConsultationResponse, 0, len(consultations))
	for _, c := range consultations {
		responses = append(responses, toConsultationResponse(c))
	}
	return responses, nil
}

func toConsultationResponse(c *entity.Consultation) *dto.ConsultationResponse {
	return &dto.ConsultationResponse{
		ID:            c.ID,
		DoctorID:      c.DoctorID,
		PatientID:     c.PatientID,
		Notes:         c.Notes,
		VideoURL:      c.VideoURL,
		VideoPublicID: c.VideoPublicID,
		CreatedAt:     c.CreatedAt,
	}
}
