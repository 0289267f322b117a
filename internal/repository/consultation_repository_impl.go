package repository

import (
	"context"

	"go-consult-api/internal/domain/entity"
	domainRepo "go-consult-api/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type consultationRepository struct {
	collection *mongo.Collection
}

func NewConsultationRepository(db *mongo.Database) domainRepo.ConsultationRepository {
	return &consultationRepository{collection: db.Collection("consultations")}
}

func (r *consultationRepository) Create(ctx context.Context, consultation *entity.Consultation) error {
	_, err := r.collection.InsertOne(ctx, consultation)
	return err
}

func (r *consultationRepository) Find(ctx context.Context, filter entity.ConsultationFilter) ([]*entity.Consultation, error) {
	query := bson.M{}
	if filter.DoctorID != "" {
		query["doctor_id"] = filter.DoctorID
	}
	if filter.PatientID != "" {
		query["patient_id"] = filter.PatientID
	}

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	consultations := make([]*entity.Consultation, 0)
	if err := cursor.All(ctx, &consultations); err != nil {
		return nil, err
	}
	return consultations, nil
}
