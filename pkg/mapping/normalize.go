package mapping

import (
	"strings"
	"unicode/utf8"

	"github.com/cayleygraph/quad"
	"github.com/coolbeans/teicrm/pkg/store"
)

// NormalizeString collapses every whitespace run, newlines included, into a
// single space and trims both ends.
func NormalizeString(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// DateToLiteral types a date value by the shape of its text:
//
//	"1900"       xsd:gYear
//	"-0300"      xsd:gYear
//	"1900-05"    xsd:gYearMonth
//	"1900-05-01" xsd:date
//	other        xsd:string
//
// An empty value yields notKnownValue tagged with defaultLang. Calendar
// correctness is not checked.
func DateToLiteral(value, notKnownValue, defaultLang string) quad.Value {
	if value == "" {
		return store.LangLiteral(notKnownValue, defaultLang)
	}

	switch length := utf8.RuneCountInString(value); {
	case length == 4:
		return store.TypedLiteral(value, store.XSDGYear)
	case length == 5 && strings.HasPrefix(value, "-"):
		return store.TypedLiteral(value, store.XSDGYear)
	case length == 7:
		return store.TypedLiteral(value, store.XSDGYearMonth)
	case length == 10:
		return store.TypedLiteral(value, store.XSDDate)
	default:
		return store.TypedLiteral(value, store.XSDString)
	}
}

// stripHash removes the leading "#" of a TEI pointer.
func stripHash(reference string) string {
	return strings.TrimPrefix(reference, "#")
}

// withSlash makes sure a namespace-like domain ends with "/".
func withSlash(domain string) string {
	if strings.HasSuffix(domain, "/") {
		return domain
	}
	return domain + "/"
}
