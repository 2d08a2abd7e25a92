package mapping

import (
	"errors"
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/coolbeans/teicrm/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifiers_XMLID(t *testing.T) {
	subject, person := samplePerson(t)

	graph, err := testMapper().Identifiers(subject, person, IdentifierOptions{})
	require.NoError(t, err)

	identifier := quad.IRI(subject + "/identifier/DWpers0091")
	assert.True(t, graph.Contains(subject, store.PropIsIdentifiedBy, identifier))
	assert.True(t, graph.Contains(identifier, store.RDFType, store.ClassIdentifier))
	assert.True(t, graph.Contains(identifier, store.RDFSLabel, store.LangLiteral("Identifier: DWpers0091", "und")))
	assert.True(t, graph.Contains(identifier, store.RDFValue, store.PlainLiteral("DWpers0091")))
	assert.True(t, graph.Contains(identifier, store.PropHasType, quad.IRI("https://foo-bar/idno/xml-id")))
	assert.True(t, graph.Contains(quad.IRI("https://foo-bar/idno/xml-id"), store.RDFType, store.ClassType))
	assert.True(t, graph.Contains(quad.IRI("https://foo-bar/date/approx"), store.RDFSLabel, store.PlainLiteral("approx")))
}

func TestIdentifiers_Idnos(t *testing.T) {
	subject, person := samplePerson(t)

	graph, err := testMapper().Identifiers(subject, person, IdentifierOptions{TypeDomain: "https://types.example.org"})
	require.NoError(t, err)

	testCases := []struct {
		name          string
		uri           quad.IRI
		expectedType  quad.IRI
		expectedLabel string
		expectedValue string
	}{
		{
			name:          "typed url",
			uri:           quad.IRI(subject + "/identifier/idno/0"),
			expectedType:  "https://types.example.org/idno/GND/main",
			expectedLabel: "Identifier: https://d-nb.info/gnd/123",
			expectedValue: "https://d-nb.info/gnd/123",
		},
		{
			name:          "untyped",
			uri:           quad.IRI(subject + "/identifier/idno/1"),
			expectedType:  "https://types.example.org/idno",
			expectedLabel: "Identifier: local-7",
			expectedValue: "local-7",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.True(t, graph.Contains(subject, store.PropIsIdentifiedBy, testCase.uri))
			assert.True(t, graph.Contains(testCase.uri, store.RDFType, store.ClassIdentifier))
			assert.True(t, graph.Contains(testCase.uri, store.PropHasType, testCase.expectedType))
			assert.True(t, graph.Contains(testCase.expectedType, store.RDFType, store.ClassType))
			assert.Equal(t, []string{testCase.expectedLabel}, literalValues(graph, testCase.uri, store.RDFSLabel))
			assert.Equal(t, []string{testCase.expectedValue}, literalValues(graph, testCase.uri, store.RDFValue))
		})
	}

	assert.Equal(t, []string{"https://d-nb.info/gnd/123"}, literalValues(graph, subject, store.OWLSameAs))
}

func TestIdentifiers_EventTypes(t *testing.T) {
	subject, person := samplePerson(t)

	graph, err := testMapper().Identifiers(subject, person, IdentifierOptions{})
	require.NoError(t, err)

	eventType := quad.IRI("https://foo-bar/event/conference")
	assert.True(t, graph.Contains(eventType, store.RDFType, store.ClassType))
	assert.True(t, graph.Contains(eventType, store.RDFSLabel, store.LangLiteral("conference", "de")))
}

func TestIdentifiers_Options(t *testing.T) {
	subject, person := samplePerson(t)

	graph, err := testMapper().Identifiers(subject, person, IdentifierOptions{
		SetLang:       true,
		DisableSameAs: true,
		Prefix:        "ID ",
	})
	require.NoError(t, err)

	identifier := quad.IRI(subject + "/identifier/DWpers0091")
	assert.True(t, graph.Contains(identifier, store.RDFSLabel, store.LangLiteral("ID DWpers0091", "de")))
	assert.Empty(t, graph.Objects(subject, store.OWLSameAs))
}

func TestIdentifiers_Deterministic(t *testing.T) {
	subject, person := samplePerson(t)
	mapper := testMapper()

	first, err := mapper.Identifiers(subject, person, IdentifierOptions{})
	require.NoError(t, err)
	second, err := mapper.Identifiers(subject, person, IdentifierOptions{})
	require.NoError(t, err)

	assert.Equal(t, store.NTriplesString(first), store.NTriplesString(second))
}

func TestIdentifiers_MissingXMLID(t *testing.T) {
	person := firstElement(t, `<listPerson xmlns="http://www.tei-c.org/ns/1.0"><person><persName>Anon</persName></person></listPerson>`, ".//tei:person")

	graph, err := testMapper().Identifiers(testDomain+"anon", person, IdentifierOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingAttribute))

	var missing *MissingAttributeError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "person", missing.Element)
	assert.Equal(t, "xml:id", missing.Attribute)
	assert.True(t, graph.IsEmpty())
}
