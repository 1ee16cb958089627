package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusProcessing RequestStatus = "processing"
	StatusCompleted  RequestStatus = "completed"
	StatusRejected   RequestStatus = "rejected"
	StatusError      RequestStatus = "error"
)

// CertificateRequest is a teacher's request for a student to submit a
// course-completion certificate for a subject. A request starts out pending and
// is moved through processing into exactly one of the terminal states
// (completed, rejected, error) by the verifier.
type CertificateRequest struct {
	ID        string        `json:"id" gorm:"primaryKey"`
	StudentID uint          `json:"student_id" gorm:"index;not null"`
	TeacherID uint          `json:"teacher_id" gorm:"index;not null"`
	SubjectID uint          `json:"subject_id" gorm:"index;not null"`
	Status    RequestStatus `json:"status" gorm:"default:'pending'"`
	DueDate   *time.Time    `json:"due_date"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	IsDeleted bool          `gorm:"default:false"`
	Student   User          `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Teacher   User          `gorm:"foreignKey:TeacherID"`
	Subject   Subject       `gorm:"foreignKey:SubjectID"`
}

func (r *CertificateRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
