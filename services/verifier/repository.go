package verifier

import (
	"errors"

	"certify/models"

	"gorm.io/gorm"
)

// Repository is the persistence surface the verifier needs. Save must apply
// all given entities in a single transaction.
type Repository interface {
	LoadRequest(requestID string, studentID uint) (*models.CertificateRequest, error)
	LoadCertificate(requestID string) (*models.Certificate, error)
	Save(entities ...interface{}) error
}

// GormRepository backs the Repository interface with the application database
type GormRepository struct {
	Db *gorm.DB
}

// LoadRequest loads a request scoped to its owning student. A missing row and
// a row owned by another student both come back as nil without error.
func (r *GormRepository) LoadRequest(requestID string, studentID uint) (*models.CertificateRequest, error) {
	var request models.CertificateRequest
	err := r.Db.Preload("Subject").Preload("Student").
		Where("id = ? AND student_id = ? AND is_deleted = false", requestID, studentID).
		First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// LoadCertificate returns the certificate row for a request, nil when none
// exists yet
func (r *GormRepository) LoadCertificate(requestID string) (*models.Certificate, error) {
	var certificate models.Certificate
	err := r.Db.Where("request_id = ?", requestID).First(&certificate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &certificate, nil
}

// Save persists the given entities inside one transaction
func (r *GormRepository) Save(entities ...interface{}) error {
	return r.Db.Transaction(func(tx *gorm.DB) error {
		for _, entity := range entities {
			if err := tx.Save(entity).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
