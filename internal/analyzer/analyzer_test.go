package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectLevel(t *testing.T) {
	tests := []struct {
		text  string
		level Level
	}{
		{text: "Summer internship at Acme", level: LevelIntermediate},
		{text: "INTERNSHIPS and WORK EXPERIENCE", level: LevelIntermediate},
		{text: "Professional experience: 5 years", level: LevelExperienced},
		{text: "Fresh graduate, eager to learn", level: LevelFresher},
		{text: "", level: LevelFresher},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.level, DetectLevel(tt.text))
		})
	}
}

func TestExtractSkills(t *testing.T) {
	text := "Skilled in Python, JavaScript and SQL; some MySQL. Built apps with Node.js and C++."
	assert.Equal(t, []string{"Python", "JavaScript", "C++", "SQL", "Node.js", "MySQL"}, ExtractSkills(text))
}

func TestExtractSkills_WordBoundaries(t *testing.T) {
	assert.Empty(t, ExtractSkills("guitar building swiftly"))
	assert.Equal(t, []string{"Java"}, ExtractSkills("java developer"))
}

func TestNormalizeSkills(t *testing.T) {
	assert.Equal(t, []string{"Go", "react"}, NormalizeSkills([]string{" Go ", "", "go", "react", "React"}))
}

func TestExtractContact(t *testing.T) {
	text := "Jane Doe\njane.doe@example.com\n+1 555-123-4567\nOBJECTIVE\nBuild things. 2019 - 2021"
	c := ExtractContact(text)
	assert.Equal(t, "Jane Doe", c.Name)
	assert.Equal(t, "jane.doe@example.com", c.Email)
	assert.Equal(t, "+1 555-123-4567", c.Mobile)
}

func TestExtractContact_IgnoresDateRanges(t *testing.T) {
	c := ExtractContact("WORK EXPERIENCE\n2019 - 2021 Acme")
	assert.Empty(t, c.Mobile)
	assert.Empty(t, c.Name)
}

func TestExtractContact_YearRunsAreNotPhones(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		mobile string
	}{
		{name: "years only", text: "Employee of the month 2018 2019 2020", mobile: ""},
		{name: "years with dashes", text: "Awards 1998-1999-2000", mobile: ""},
		{name: "years then phone", text: "Winner 2018 2019 2020\nPhone: +1 555-123-4567", mobile: "+1 555-123-4567"},
		{name: "local four digit groups", text: "Phone: 0812 3456 7890", mobile: "0812 3456 7890"},
		{name: "international year-like groups", text: "+2018 2019 2020", mobile: "+2018 2019 2020"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.mobile, ExtractContact(tt.text).Mobile)
		})
	}
}

func TestRecommendCourses(t *testing.T) {
	courses := RecommendCourses(webCourses, 2, FixedSource(0))
	assert.Len(t, courses, 2)

	all := RecommendCourses(webCourses, MaxCourseCount, FixedSource(0))
	assert.ElementsMatch(t, webCourses, all)

	// shuffling works on a copy
	assert.Equal(t, "The Web Developer Bootcamp", webCourses[0].Name)
}

func TestClampCourseCount(t *testing.T) {
	assert.Equal(t, DefaultCourseCount, ClampCourseCount(0))
	assert.Equal(t, MinCourseCount, ClampCourseCount(-3))
	assert.Equal(t, MaxCourseCount, ClampCourseCount(42))
	assert.Equal(t, 3, ClampCourseCount(3))
}

func TestAnalyzerAnalyze(t *testing.T) {
	a := New(FixedSource(0))
	res, err := a.Analyze(ExtractedResume{
		RawText:   "OBJECTIVE EDUCATION EXPERIENCE SKILLS internship",
		Skills:    []string{"React", "Figma"},
		PageCount: 1,
	}, 1)
	require.NoError(t, err)

	assert.Equal(t, LevelIntermediate, res.Level)
	assert.Equal(t, FieldWebDev, res.Recommendation.Field)
	assert.Len(t, res.Courses, 1)
	assert.Equal(t, 60, res.Score.Score)
	assert.Equal(t, resumeVideos[0], res.Videos.ResumeTips)
	assert.Equal(t, interviewVideos[0], res.Videos.InterviewPrep)
}

func TestAnalyzerAnalyze_InvalidText(t *testing.T) {
	_, err := New(FixedSource(0)).Analyze(ExtractedResume{RawText: string([]byte{0xff})}, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
