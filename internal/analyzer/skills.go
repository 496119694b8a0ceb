package analyzer

import (
	"regexp"
	"strings"
)

// skillVocabulary is matched against resume text on word boundaries.
var skillVocabulary = []string{
	"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "PHP", "Kotlin", "Swift", "SQL",
	"HTML", "CSS", "React", "Angular", "Vue", "Node.js", "Django", "Flask", "Spring",
	"TensorFlow", "Keras", "PyTorch", "Scikit-learn", "Pandas", "NumPy",
	"Machine Learning", "Deep Learning", "Data Analysis", "Data Visualization", "Tableau",
	"Android", "Flutter", "iOS", "Xcode", "SwiftUI",
	"Figma", "Adobe XD", "UX", "UI", "Prototyping", "Wireframing", "User Research",
	"MySQL", "PostgreSQL", "MongoDB", "Redis",
	"Docker", "Kubernetes", "AWS", "Azure", "GCP", "Git", "Linux",
	"Excel", "Power BI", "Communication", "Leadership",
}

type skillPattern struct {
	name string
	re   *regexp.Regexp
}

var skillPatterns = compileSkillPatterns(skillVocabulary)

func compileSkillPatterns(vocab []string) []skillPattern {
	patterns := make([]skillPattern, 0, len(vocab))
	for _, name := range vocab {
		expr := `(?i)(?:^|[^a-z0-9+#.])` + regexp.QuoteMeta(strings.ToLower(name)) + `(?:$|[^a-z0-9+#])`
		patterns = append(patterns, skillPattern{name: name, re: regexp.MustCompile(expr)})
	}
	return patterns
}

// ExtractSkills returns the vocabulary skills mentioned in text, in
// vocabulary order and without duplicates.
func ExtractSkills(text string) []string {
	skills := make([]string, 0)
	for _, p := range skillPatterns {
		if p.re.MatchString(text) {
			skills = append(skills, p.name)
		}
	}
	return skills
}

// NormalizeSkills trims, drops empties and removes case-insensitive duplicates.
func NormalizeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
