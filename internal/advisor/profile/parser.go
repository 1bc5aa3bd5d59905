// Package profile normalises raw questionnaire answers into a UserProfile.
package profile

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/smart-spoon-core/advisor/internal/advisor/model"
)

// Answers are the raw strings typed by the user.
type Answers struct {
	Age            string
	Gender         string
	VisitFrequency string
	Medical        string
}

// Parse builds a profile. An age that is not a positive integer is left nil;
// the other answers are capitalised and otherwise kept as typed.
func Parse(a Answers) model.UserProfile {
	return model.UserProfile{
		Age:              parseAge(a.Age),
		Gender:           Capitalize(a.Gender),
		VisitFrequency:   Capitalize(a.VisitFrequency),
		MedicalCondition: Capitalize(a.Medical),
	}
}

// Capitalize trims s, upper-cases its first letter and lower-cases the rest,
// so "KIDNEY DISEASE" becomes "Kidney disease".
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func parseAge(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}
