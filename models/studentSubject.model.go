package models

import "gorm.io/gorm"

// StudentSubject maps a student to a subject they are enrolled in
type StudentSubject struct {
	gorm.Model
	StudentID uint    `json:"student_id" gorm:"index;not null"`
	SubjectID uint    `json:"subject_id" gorm:"index;not null"`
	IsDeleted bool    `gorm:"default:false"`
	Student   User    `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Subject   Subject `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE"`
}
