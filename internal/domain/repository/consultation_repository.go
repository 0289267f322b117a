package repository

import (
	"context"

	"go-consult-api/internal/domain/entity"
)

type ConsultationRepository interface {
	Create(ctx context.Context, consultation *entity.Consultation) error
	Find(ctx context.Context, filter entity.ConsultationFilter) ([]*entity.Consultation, error)
}
