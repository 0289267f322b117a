package dto

import "time"

type CreateConsultationRequest struct {
	PatientID     string `json:"patient_id" validate:"required"`
	DoctorID      string `json:"doctor_id" validate:"omitempty"`
	Notes         string `json:"notes" validate:"omitempty,max=5000"`
	VideoURL      string `json:"video_url" validate:"omitempty"`
	VideoPublicID string `json:"video_public_id" validate:"omitempty"`
}

type ConsultationResponse struct {
	ID            string    `json:"id"`
	DoctorID      string    `json:"doctor_id"`
	PatientID     string    `json:"patient_id"`
	Notes         string    `json:"notes,omitempty"`
	VideoURL      string    `json:"video_url,omitempty"`
	VideoPublicID string    `json:"video_public_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
