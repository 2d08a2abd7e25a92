package mapping

import (
	"testing"

	"github.com/coolbeans/teicrm/pkg/store"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeString(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"already normal", "Wien", "Wien"},
		{"surrounding space", "  Wien ", "Wien"},
		{"inner runs", "Gave   a\ttalk", "Gave a talk"},
		{"newlines", "Member of\n      Verein\n", "Member of Verein"},
		{"empty", "", ""},
		{"only whitespace", " \n\t ", ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, NormalizeString(testCase.input))
		})
	}
}

func TestDateToLiteral(t *testing.T) {
	testCases := []struct {
		name         string
		value        string
		expectedType string
	}{
		{"year", "1900", store.XSDGYear.String()},
		{"negative year", "-0300", store.XSDGYear.String()},
		{"year month", "1900-05", store.XSDGYearMonth.String()},
		{"full date", "1900-05-01", store.XSDDate.String()},
		{"free text", "ca. 1900", store.XSDString.String()},
		{"seven characters", "um 1900", store.XSDGYearMonth.String()},
		{"five digits", "19000", store.XSDString.String()},
		{"too long", "1900-05-01T10:00", store.XSDString.String()},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			literal := DateToLiteral(testCase.value, DefaultNotKnownValue, "en")

			assert.Equal(t, testCase.value, store.LiteralText(literal))
			assert.Equal(t, testCase.expectedType, store.LiteralDatatype(literal).String())
		})
	}
}

func TestDateToLiteral_Empty(t *testing.T) {
	literal := DateToLiteral("", "undefined", "en")

	assert.Equal(t, "undefined", store.LiteralText(literal))
	assert.Equal(t, "en", store.LiteralLang(literal))
	assert.Empty(t, store.LiteralDatatype(literal))
}

func TestDateToLiteral_CountsRunes(t *testing.T) {
	literal := DateToLiteral("ca.ä", DefaultNotKnownValue, "en")
	assert.Equal(t, store.XSDGYear, store.LiteralDatatype(literal))
}
