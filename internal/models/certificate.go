package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Certificate represents a processed training certificate. It is created
// once per successful extraction; later edits go through the CRUD endpoints.
type Certificate struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	EmployeeID       primitive.ObjectID `json:"employee_id" bson:"employee_id"`
	CourseName       *string            `json:"course_name" bson:"course_name,omitempty"`
	Date             *string            `json:"date" bson:"date,omitempty"`
	Duration         *string            `json:"duration" bson:"duration,omitempty"`
	ExtractedText    string             `json:"extracted_text" bson:"extracted_text"`
	ScanBucket       string             `json:"scan_bucket,omitempty" bson:"scan_bucket,omitempty"`
	ScanKey          string             `json:"scan_key,omitempty" bson:"scan_key,omitempty"`
	OriginalFilename *string            `json:"original_filename,omitempty" bson:"original_filename,omitempty"`
	ContentType      *string            `json:"content_type,omitempty" bson:"content_type,omitempty"`
	FileSizeBytes    *int64             `json:"file_size_bytes,omitempty" bson:"file_size_bytes,omitempty"`
	LowQualityPages  []int              `json:"low_quality_pages,omitempty" bson:"low_quality_pages,omitempty"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreateCertificateRequest is the request body for manual certificate creation
type CreateCertificateRequest struct {
	EmployeeID string  `json:"employee_id"`
	CourseName *string `json:"course_name,omitempty"`
	Date       *string `json:"date,omitempty"`
	Duration   *string `json:"duration,omitempty"`
}

// UpdateCertificateRequest is the request body for certificate edits
type UpdateCertificateRequest struct {
	CourseName *string `json:"course_name,omitempty"`
	Date       *string `json:"date,omitempty"`
	Duration   *string `json:"duration,omitempty"`
}

// ExtractResponse is returned by the extraction endpoint
type ExtractResponse struct {
	Certificate *Certificate `json:"certificate"`
	Words       []string     `json:"words,omitempty"`
	ScanURL     *string      `json:"scan_url,omitempty"`
}
