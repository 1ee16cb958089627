package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Certificate is the uploaded certificate for a request. Exactly one row exists
// per request; re-uploads after a rejection update the same row in place.
// Verified is true only when the owning request has status completed.
type Certificate struct {
	ID                  string         `json:"id" gorm:"primaryKey"`
	RequestID           string         `json:"request_id" gorm:"uniqueIndex;not null"`
	StudentID           uint           `json:"student_id" gorm:"index;not null"`
	FileURL             string         `json:"file_url" gorm:"not null"`
	VerificationFileURL string         `json:"verification_file_url"`
	Verified            bool           `json:"verified" gorm:"default:false"`
	Remark              string         `json:"remark"`
	ExtractedFields     datatypes.JSON `json:"extracted_fields"` // Snapshot of the fields read from the upload
	UploadedAt          time.Time      `json:"uploaded_at" gorm:"autoCreateTime"`
	UpdatedAt           time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

func (c *Certificate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
