package store

import (
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
)

func TestNewTriple(t *testing.T) {
	triple := NewTriple("https://example.org/p1", RDFType, ClassPerson)

	assert.Equal(t, quad.IRI("https://example.org/p1"), triple.Subject)
	assert.Equal(t, RDFType, triple.Predicate)
	assert.Equal(t, quad.Value(ClassPerson), triple.Object)
}

func TestTriple_Equals(t *testing.T) {
	first := NewTriple("https://example.org/p1", RDFSLabel, LangLiteral("Anna", "de"))
	second := NewTriple("https://example.org/p1", RDFSLabel, LangLiteral("Anna", "de"))
	otherLang := NewTriple("https://example.org/p1", RDFSLabel, LangLiteral("Anna", "en"))
	plain := NewTriple("https://example.org/p1", RDFSLabel, PlainLiteral("Anna"))

	assert.True(t, first.Equals(second), "identical triples should be equal")
	assert.False(t, first.Equals(otherLang), "language tag is part of the identity")
	assert.False(t, first.Equals(plain), "plain and tagged literals differ")
}

func TestTriple_NTriples(t *testing.T) {
	testCases := []struct {
		name     string
		triple   Triple
		expected string
	}{
		{
			name:     "iri object",
			triple:   NewTriple("https://example.org/p1", RDFType, ClassPerson),
			expected: "<https://example.org/p1> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.cidoc-crm.org/cidoc-crm/E21_Person> .",
		},
		{
			name:     "language literal",
			triple:   NewTriple("https://example.org/p1", RDFSLabel, LangLiteral("Wien", "de")),
			expected: `<https://example.org/p1> <http://www.w3.org/2000/01/rdf-schema#label> "Wien"@de .`,
		},
		{
			name:     "typed literal",
			triple:   NewTriple("https://example.org/ts", PropBeginOfTheBegin, TypedLiteral("1900", XSDGYear)),
			expected: `<https://example.org/ts> <http://www.cidoc-crm.org/cidoc-crm/P82a_begin_of_the_begin> "1900"^^<http://www.w3.org/2001/XMLSchema#gYear> .`,
		},
		{
			name:     "plain literal",
			triple:   NewTriple("https://example.org/a", RDFValue, PlainLiteral("Vienna")),
			expected: `<https://example.org/a> <http://www.w3.org/1999/02/22-rdf-syntax-ns#value> "Vienna" .`,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, testCase.triple.NTriples())
		})
	}
}

func TestTriple_IsValid(t *testing.T) {
	testCases := []struct {
		name    string
		triple  Triple
		isValid bool
	}{
		{"valid triple", NewTriple("https://example.org/a", RDFType, ClassType), true},
		{"empty subject", NewTriple("", RDFType, ClassType), false},
		{"empty predicate", NewTriple("https://example.org/a", "", ClassType), false},
		{"nil object", NewTriple("https://example.org/a", RDFType, nil), false},
		{"empty iri object", NewTriple("https://example.org/a", RDFType, quad.IRI("")), false},
		{"empty literal is valid", NewTriple("https://example.org/a", RDFValue, PlainLiteral("")), true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.isValid, testCase.triple.IsValid())
		})
	}
}

func TestLiteralAccessors(t *testing.T) {
	tagged := LangLiteral("Wien", "de")
	typed := TypedLiteral("1900-01", XSDGYearMonth)

	assert.Equal(t, "Wien", LiteralText(tagged))
	assert.Equal(t, "de", LiteralLang(tagged))
	assert.Equal(t, quad.IRI(""), LiteralDatatype(tagged))

	assert.Equal(t, "1900-01", LiteralText(typed))
	assert.Equal(t, "", LiteralLang(typed))
	assert.Equal(t, XSDGYearMonth, LiteralDatatype(typed))

	assert.Equal(t, quad.Value(PlainLiteral("x")), LangLiteral("x", ""))
}

func TestTriplePattern_Matches(t *testing.T) {
	triple := NewTriple("https://example.org/a", RDFSLabel, LangLiteral("A", "en"))

	assert.True(t, NewTriplePattern("", "", nil).Matches(triple))
	assert.True(t, NewTriplePattern("https://example.org/a", RDFSLabel, nil).Matches(triple))
	assert.True(t, NewTriplePattern("", "", LangLiteral("A", "en")).Matches(triple))
	assert.False(t, NewTriplePattern("", "", LangLiteral("A", "de")).Matches(triple))
	assert.False(t, NewTriplePattern("https://example.org/b", "", nil).Matches(triple))
}
