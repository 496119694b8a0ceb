package analyzer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type Field string

const (
	FieldDataScience Field = "Data Science"
	FieldWebDev      Field = "Web Development"
	FieldAndroid     Field = "Android Development"
	FieldIOS         Field = "iOS Development"
	FieldUIUX        Field = "UI/UX Design"
	FieldGeneral     Field = "General"
)

type FieldRecommendation struct {
	Field             Field    `json:"field"`
	RecommendedSkills []string `json:"recommended_skills"`
	Courses           []Course `json:"courses"`
}

type fieldRule struct {
	field    Field
	keywords []string
	skills   []string
	courses  []Course
}

// fieldRules is ordered by priority.
var fieldRules = []fieldRule{
	{
		field:    FieldDataScience,
		keywords: []string{"tensorflow", "keras", "pytorch", "machine learning", "deep learning", "flask"},
		skills:   []string{"TensorFlow", "PyTorch", "Scikit-learn", "Pandas", "Data Visualization"},
		courses:  dataScienceCourses,
	},
	{
		field:    FieldWebDev,
		keywords: []string{"react", "django", "node", "javascript", "php", "angular"},
		skills:   []string{"React", "Node.js", "Django", "JavaScript", "REST APIs"},
		courses:  webCourses,
	},
	{
		field:    FieldAndroid,
		keywords: []string{"android", "kotlin", "flutter"},
		skills:   []string{"Kotlin", "Android Studio", "Flutter", "Java"},
		courses:  androidCourses,
	},
	{
		field:    FieldIOS,
		keywords: []string{"ios", "swift", "xcode"},
		skills:   []string{"Swift", "Xcode", "SwiftUI", "UIKit"},
		courses:  iosCourses,
	},
	{
		field:    FieldUIUX,
		keywords: []string{"figma", "adobe xd", "ux", "ui", "prototyping"},
		skills:   []string{"Figma", "Adobe XD", "Prototyping", "User Research"},
		courses:  uiuxCourses,
	},
}

// ClassifyField recommends a career field from extracted skills.
//
// Skills are scanned in order and, for each skill, the field rules in priority
// order. The first hit wins, so an early skill matching a low-priority field
// beats a later skill matching a high-priority one.
func ClassifyField(skills []string) (FieldRecommendation, error) {
	for i, skill := range skills {
		if !utf8.ValidString(skill) {
			return FieldRecommendation{}, fmt.Errorf("skill %d is not valid utf-8: %w", i, ErrInvalidArgument)
		}
	}

	for _, skill := range skills {
		lower := strings.ToLower(skill)
		for _, rule := range fieldRules {
			if containsAny(lower, rule.keywords) {
				return rule.recommendation(), nil
			}
		}
	}

	// General keeps the data science catalogue as its course list.
	return FieldRecommendation{
		Field:             FieldGeneral,
		RecommendedSkills: []string{},
		Courses:           append([]Course(nil), dataScienceCourses...),
	}, nil
}

func (r fieldRule) recommendation() FieldRecommendation {
	return FieldRecommendation{
		Field:             r.field,
		RecommendedSkills: append([]string(nil), r.skills...),
		Courses:           append([]Course(nil), r.courses...),
	}
}
