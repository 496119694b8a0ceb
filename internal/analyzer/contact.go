package analyzer

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	emailPattern      = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phonePattern      = regexp.MustCompile(`\+?\d[\d ().\-]{8,}\d`)
	digitGroupPattern = regexp.MustCompile(`\d+`)
	yearPattern       = regexp.MustCompile(`^(19|20)\d{2}$`)
)

type Contact struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

// ExtractContact pulls the candidate's name, e-mail and phone number out of
// resume text. The name is the first line of two to four alphabetic words.
func ExtractContact(text string) Contact {
	c := Contact{
		Email:  emailPattern.FindString(text),
		Mobile: findPhone(text),
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || emailPattern.MatchString(line) || findPhone(line) != "" {
			continue
		}
		if looksLikeName(line) {
			c.Name = line
			break
		}
	}
	return c
}

// findPhone returns the first phone-like run with at least ten digits, which
// keeps short date ranges out. Runs made only of years ("2018 2019 2020") are
// skipped unless they carry an international prefix.
func findPhone(text string) string {
	for _, m := range phonePattern.FindAllString(text, -1) {
		m = strings.TrimSpace(m)
		groups := digitGroupPattern.FindAllString(m, -1)
		digits := 0
		for _, g := range groups {
			digits += len(g)
		}
		if digits < 10 {
			continue
		}
		if !strings.HasPrefix(m, "+") && allYears(groups) {
			continue
		}
		return m
	}
	return ""
}

func allYears(groups []string) bool {
	for _, g := range groups {
		if !yearPattern.MatchString(g) {
			return false
		}
	}
	return len(groups) > 0
}

func looksLikeName(line string) bool {
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		for _, r := range w {
			if !unicode.IsLetter(r) && r != '.' && r != '-' && r != '\'' {
				return false
			}
		}
	}
	upper := strings.ToUpper(line)
	for _, s := range scoreSections {
		if containsAny(upper, s.keywords) {
			return false
		}
	}
	return true
}
