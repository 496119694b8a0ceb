package analyzer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	SectionPoints   = 15
	LengthBonus     = 10
	LengthThreshold = 500
	LanguageBonus   = 10
	MaxRandomBonus  = 15
	MaxScore        = 100
)

type scoreSection struct {
	name     string
	keywords []string
}

var scoreSections = []scoreSection{
	{name: "objective", keywords: []string{"OBJECTIVE", "SUMMARY", "PROFILE"}},
	{name: "education", keywords: []string{"EDUCATION", "DEGREE", "BACHELOR", "MASTER"}},
	{name: "experience", keywords: []string{"EXPERIENCE", "WORK EXPERIENCE", "PROFESSIONAL EXPERIENCE"}},
	{name: "skills", keywords: []string{"SKILLS", "TECHNICAL SKILLS", "COMPETENCIES"}},
	{name: "projects", keywords: []string{"PROJECTS", "PROJECT EXPERIENCE"}},
	{name: "certifications", keywords: []string{"CERTIFICATIONS", "CERTIFICATE"}},
}

var languageKeywords = []string{"python", "java", "react", "sql"}

// ScoreResult is the outcome of ScoreResume. Base is the deterministic part
// before the random bonus and before clamping.
type ScoreResult struct {
	Score    int      `json:"score"`
	Base     int      `json:"base"`
	Bonus    int      `json:"bonus"`
	Sections []string `json:"sections"`
}

// BaseScore returns the deterministic component of the resume score and the
// names of the sections that were found.
func BaseScore(text string) (int, []string, error) {
	if !utf8.ValidString(text) {
		return 0, nil, fmt.Errorf("resume text is not valid utf-8: %w", ErrInvalidArgument)
	}

	upper := strings.ToUpper(text)
	score := 0
	found := make([]string, 0, len(scoreSections))
	for _, s := range scoreSections {
		if containsAny(upper, s.keywords) {
			score += SectionPoints
			found = append(found, s.name)
		}
	}

	if utf8.RuneCountInString(text) > LengthThreshold {
		score += LengthBonus
	}
	if containsAny(strings.ToLower(upper), languageKeywords) {
		score += LanguageBonus
	}
	return score, found, nil
}

// ScoreResume computes the heuristic 0-100 quality score of a resume.
func ScoreResume(text string, rnd RandomSource) (ScoreResult, error) {
	if rnd == nil {
		return ScoreResult{}, fmt.Errorf("random source is nil: %w", ErrInvalidArgument)
	}
	base, sections, err := BaseScore(text)
	if err != nil {
		return ScoreResult{}, err
	}

	bonus := rnd.Intn(MaxRandomBonus + 1)
	if bonus < 0 {
		bonus = 0
	} else if bonus > MaxRandomBonus {
		bonus = MaxRandomBonus
	}

	return ScoreResult{
		Score:    min(base+bonus, MaxScore),
		Base:     base,
		Bonus:    bonus,
		Sections: sections,
	}, nil
}
