package models

import "gorm.io/gorm"

type Subject struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	SubjectCode string `json:"subject_code" gorm:"unique;not null"`
	TeacherID   uint   `json:"teacher_id" gorm:"index;not null"`
	IsDeleted   bool   `gorm:"default:false"`
	Teacher     User   `gorm:"foreignKey:TeacherID"`
}
