package entity

import "time"

// Consultation is a doctor-patient consultation record. The video fields
// hold the asset reference returned by the storage resolver: a filesystem
// path for the local backend, or a secure URL plus object key for the
// cloud backend.
type Consultation struct {
	ID            string    `bson:"_id" json:"id"`
	DoctorID      string    `bson:"doctor_id" json:"doctor_id"`
	PatientID     string    `bson:"patient_id" json:"patient_id"`
	Notes         string    `bson:"notes" json:"notes,omitempty"`
	VideoURL      string    `bson:"video_url" json:"video_url,omitempty"`
	VideoPublicID string    `bson:"video_public_id" json:"video_public_id,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// ConsultationFilter narrows a consultation query. Empty fields match all.
type ConsultationFilter struct {
	DoctorID  string
	PatientID string
}
