package entity

import "strings"

// Grade is the SCA-style grade classification of a graded sample.
type Grade string

const (
	GradeSpecialty     Grade = "specialty_grade" // 0-5 defects, zero category 1
	GradePremium       Grade = "premium_grade"   // 0-8 defects
	GradeExchange      Grade = "exchange_grade"  // 9-23 defects
	GradeBelowStandard Grade = "below_standard"  // 24-86 defects
	GradeOff           Grade = "off_grade"       // 87+ defects
)

// gradeNamesTH holds the Thai display names for each grade.
var gradeNamesTH = map[Grade]string{
	GradeSpecialty:     "เกรดพิเศษ",
	GradePremium:       "เกรดพรีเมียม",
	GradeExchange:      "เกรดแลกเปลี่ยน",
	GradeBelowStandard: "ต่ำกว่ามาตรฐาน",
	GradeOff:           "ตกเกรด",
}

// ClassifyGrade maps category defect counts to a grade. The rules are
// evaluated in order, first match wins. Only the specialty tier requires
// zero category 1 defects: a sample with one primary defect and total <= 8
// still grades premium. Inputs are assumed non-negative.
func ClassifyGrade(category1, category2 int) Grade {
	total := category1 + category2
	switch {
	case category1 == 0 && total <= 5:
		return GradeSpecialty
	case total <= 8:
		return GradePremium
	case total <= 23:
		return GradeExchange
	case total <= 86:
		return GradeBelowStandard
	default:
		return GradeOff
	}
}

// ParseGrade converts a wire string back into a Grade. Unknown values map
// to off_grade, matching the platform's defensive parse.
func ParseGrade(s string) Grade {
	switch Grade(s) {
	case GradeSpecialty, GradePremium, GradeExchange, GradeBelowStandard, GradeOff:
		return Grade(s)
	default:
		return GradeOff
	}
}

// Display returns the human-readable form: underscores replaced with spaces,
// each word title-cased ("premium_grade" -> "Premium Grade").
func (g Grade) Display() string {
	words := strings.Split(string(g), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// NameThai returns the Thai display name for the grade.
func (g Grade) NameThai() string {
	if name, ok := gradeNamesTH[g]; ok {
		return name
	}
	return string(g)
}
