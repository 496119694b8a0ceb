package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AnalysisRecord is written once per analysed upload and never updated.
type AnalysisRecord struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SecToken           string         `gorm:"type:text;not null" json:"sec_token"`
	IPAddress          string         `gorm:"column:ip_add;type:text" json:"ip_add"`
	HostName           string         `gorm:"type:text" json:"host_name"`
	UserAgent          string         `gorm:"type:text" json:"user_agent"`
	LatLong            string         `gorm:"column:latlong;type:text" json:"latlong"`
	City               string         `gorm:"type:text" json:"city"`
	State              string         `gorm:"type:text" json:"state"`
	Country            string         `gorm:"type:text" json:"country"`
	ActName            string         `gorm:"type:text;not null" json:"act_name"`
	ActMail            string         `gorm:"type:text;not null" json:"act_mail"`
	ActMob             string         `gorm:"type:text" json:"act_mob"`
	Name               string         `gorm:"type:text;not null" json:"name"`
	EmailID            string         `gorm:"column:email_id;type:text;not null" json:"email_id"`
	ResumeScore        int            `gorm:"not null" json:"resume_score"`
	Timestamp          string         `gorm:"type:text;not null" json:"timestamp"`
	PageNo             int            `gorm:"not null" json:"page_no"`
	PredictedField     string         `gorm:"type:text;not null;index" json:"predicted_field"`
	UserLevel          string         `gorm:"type:text;not null;index" json:"user_level"`
	ActualSkills       datatypes.JSON `gorm:"type:jsonb;not null" json:"actual_skills"`
	RecommendedSkills  datatypes.JSON `gorm:"type:jsonb;not null" json:"recommended_skills"`
	RecommendedCourses datatypes.JSON `gorm:"type:jsonb;not null" json:"recommended_courses"`
	PDFName            string         `gorm:"column:pdf_name;type:text;not null" json:"pdf_name"`
	StoragePath        string         `gorm:"type:text" json:"storage_path"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
}

func (AnalysisRecord) TableName() string {
	return "user_data"
}

func (m *AnalysisRecord) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
