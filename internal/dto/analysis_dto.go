package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fadilmartias/resume-analyzer/internal/analyzer"
	"github.com/google/uuid"
)

// AnalyzeTextRequest is the body of POST /api/analyze. Skills are kept raw so
// that non-string entries can be rejected instead of coerced.
type AnalyzeTextRequest struct {
	Text        *string           `json:"text"`
	Skills      []json.RawMessage `json:"skills"`
	CourseCount int               `json:"course_count"`
}

// SkillStrings decodes Skills, failing on any entry that is not a JSON string.
// An absent skills field yields nil.
func (r AnalyzeTextRequest) SkillStrings() ([]string, error) {
	if r.Skills == nil {
		return nil, nil
	}
	skills := make([]string, 0, len(r.Skills))
	for i, raw := range r.Skills {
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || raw[0] != '"' {
			return nil, fmt.Errorf("skills[%d] must be a string: %w", i, analyzer.ErrInvalidArgument)
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("skills[%d]: %v: %w", i, err, analyzer.ErrInvalidArgument)
		}
		skills = append(skills, s)
	}
	return skills, nil
}

type LocationDTO struct {
	LatLong string `json:"latlong"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

type AnalysisDTO struct {
	ID                *uuid.UUID           `json:"id,omitempty"`
	Name              string               `json:"name,omitempty"`
	Email             string               `json:"email,omitempty"`
	Mobile            string               `json:"mobile,omitempty"`
	PageCount         int                  `json:"page_count"`
	Skills            []string             `json:"skills"`
	Level             analyzer.Level       `json:"level"`
	Field             analyzer.Field       `json:"field"`
	RecommendedSkills []string             `json:"recommended_skills"`
	Courses           []analyzer.Course    `json:"courses"`
	Score             int                  `json:"score"`
	ScoreSections     []string             `json:"score_sections"`
	Videos            analyzer.BonusVideos `json:"videos"`
	Location          *LocationDTO         `json:"location,omitempty"`
	StoredAt          string               `json:"stored_at,omitempty"`
	CreatedAt         *time.Time           `json:"created_at,omitempty"`
}

func NewAnalysisDTO(resume analyzer.ExtractedResume, a analyzer.Analysis) AnalysisDTO {
	return AnalysisDTO{
		Name:              resume.Contact.Name,
		Email:             resume.Contact.Email,
		Mobile:            resume.Contact.Mobile,
		PageCount:         resume.PageCount,
		Skills:            resume.Skills,
		Level:             a.Level,
		Field:             a.Recommendation.Field,
		RecommendedSkills: a.Recommendation.RecommendedSkills,
		Courses:           a.Courses,
		Score:             a.Score.Score,
		ScoreSections:     a.Score.Sections,
		Videos:            a.Videos,
	}
}
