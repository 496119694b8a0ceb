// Package analyzer holds the keyword based resume analysis: experience level,
// career field recommendation, course picks and the resume score.
package analyzer

import "fmt"

// ExtractedResume is produced once per upload by the PDF extractor.
type ExtractedResume struct {
	RawText   string   `json:"raw_text"`
	Skills    []string `json:"skills"`
	PageCount int      `json:"page_count"`
	Contact   Contact  `json:"contact"`
}

type Analysis struct {
	Level          Level               `json:"level"`
	Recommendation FieldRecommendation `json:"recommendation"`
	Courses        []Course            `json:"courses"`
	Score          ScoreResult         `json:"score"`
	Videos         BonusVideos         `json:"videos"`
}

type Analyzer struct {
	rnd RandomSource
}

func New(rnd RandomSource) *Analyzer {
	if rnd == nil {
		rnd = NewRandomSource(0)
	}
	return &Analyzer{rnd: rnd}
}

// Analyze runs level detection, field classification, course selection and
// scoring over an extracted resume.
func (a *Analyzer) Analyze(resume ExtractedResume, courseCount int) (Analysis, error) {
	reco, err := ClassifyField(resume.Skills)
	if err != nil {
		return Analysis{}, fmt.Errorf("classify field: %w", err)
	}
	score, err := ScoreResume(resume.RawText, a.rnd)
	if err != nil {
		return Analysis{}, fmt.Errorf("score resume: %w", err)
	}

	return Analysis{
		Level:          DetectLevel(resume.RawText),
		Recommendation: reco,
		Courses:        RecommendCourses(reco.Courses, courseCount, a.rnd),
		Score:          score,
		Videos:         PickBonusVideos(a.rnd),
	}, nil
}
