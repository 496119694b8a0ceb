package analyzer

import "strings"

type Level string

const (
	LevelFresher      Level = "Fresher"
	LevelIntermediate Level = "Intermediate"
	LevelExperienced  Level = "Experienced"
)

var (
	internshipKeywords = []string{"INTERNSHIP", "INTERNSHIPS"}
	experienceKeywords = []string{"EXPERIENCE", "WORK EXPERIENCE"}
)

// DetectLevel infers the candidate level from resume text.
// Internship mentions win over experience mentions.
func DetectLevel(text string) Level {
	upper := strings.ToUpper(text)
	switch {
	case containsAny(upper, internshipKeywords):
		return LevelIntermediate
	case containsAny(upper, experienceKeywords):
		return LevelExperienced
	default:
		return LevelFresher
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
