package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyGradeBoundaries(t *testing.T) {
	cases := []struct {
		name     string
		cat1     int
		cat2     int
		expected Grade
	}{
		{"zero defects", 0, 0, GradeSpecialty},
		{"specialty upper bound", 0, 5, GradeSpecialty},
		{"specialty exceeded by total", 0, 6, GradePremium},
		{"specialty disqualified by one primary", 1, 0, GradePremium},
		{"premium mixed", 2, 4, GradePremium},
		{"premium upper bound", 4, 4, GradePremium},
		{"exchange lower bound", 4, 5, GradeExchange},
		{"exchange mid", 3, 6, GradeExchange},
		{"exchange upper bound", 10, 13, GradeExchange},
		{"below standard lower bound", 10, 14, GradeBelowStandard},
		{"below standard upper bound", 43, 43, GradeBelowStandard},
		{"off grade lower bound", 43, 44, GradeOff},
		{"off grade large", 100, 100, GradeOff},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, ClassifyGrade(tc.cat1, tc.cat2))
		})
	}
}

func TestClassifyGradeDependsOnlyOnTotalAndPrimaryZeroness(t *testing.T) {
	// Same total, primary count above zero: identical grade regardless of split.
	require.Equal(t, ClassifyGrade(1, 7), ClassifyGrade(7, 1))
	require.Equal(t, ClassifyGrade(2, 10), ClassifyGrade(10, 2))
}

func TestGradeDisplay(t *testing.T) {
	require.Equal(t, "Specialty Grade", GradeSpecialty.Display())
	require.Equal(t, "Premium Grade", GradePremium.Display())
	require.Equal(t, "Exchange Grade", GradeExchange.Display())
	require.Equal(t, "Below Standard", GradeBelowStandard.Display())
	require.Equal(t, "Off Grade", GradeOff.Display())
}

func TestParseGrade(t *testing.T) {
	require.Equal(t, GradeSpecialty, ParseGrade("specialty_grade"))
	require.Equal(t, GradeBelowStandard, ParseGrade("below_standard"))
	// Unknown strings map to off_grade.
	require.Equal(t, GradeOff, ParseGrade("super_grade"))
	require.Equal(t, GradeOff, ParseGrade(""))
}

func TestGradeNameThai(t *testing.T) {
	require.Equal(t, "เกรดพิเศษ", GradeSpecialty.NameThai())
	require.NotEmpty(t, GradeOff.NameThai())
}
