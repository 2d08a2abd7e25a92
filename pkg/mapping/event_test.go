package mapping

import (
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/coolbeans/teicrm/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvents(t *testing.T) {
	subject, person := samplePerson(t)

	graph := testMapper().Events(subject, person, EventOptions{Domain: testDomain})

	event := quad.IRI(subject + "/event/0")
	timeSpan := quad.IRI(event + "/time-span")
	assert.True(t, graph.Contains(event, store.RDFType, store.ClassEvent))
	assert.True(t, graph.Contains(event, store.RDFSLabel, store.LangLiteral("Event: Gave a talk", "de")))
	assert.True(t, graph.Contains(event, store.PropHasTimeSpan, timeSpan))
	assert.True(t, graph.Contains(event, store.PropTookPlaceAt, quad.IRI(testDomain+"DWplace00010")))
	assert.True(t, graph.Contains(event, store.PropHasType, quad.IRI("https://foo-bar/event/conference")))

	assert.True(t, graph.Contains(timeSpan, store.RDFType, store.ClassTimeSpan))
	assert.True(t, graph.Contains(timeSpan, store.PropBeginOfTheBegin, store.TypedLiteral("1925", store.XSDGYear)))
	assert.True(t, graph.Contains(timeSpan, store.PropEndOfTheEnd, store.TypedLiteral("1925", store.XSDGYear)))
	assert.True(t, graph.Contains(timeSpan, store.RDFSLabel, store.LangLiteral("1925", "de")))
}

func TestEvents_TypeMatchesIdentifierDeclaration(t *testing.T) {
	subject, person := samplePerson(t)
	mapper := testMapper()

	for _, typeDomain := range []string{"https://types.example.org", "https://types.example.org/"} {
		t.Run(typeDomain, func(t *testing.T) {
			events := mapper.Events(subject, person, EventOptions{TypeDomain: typeDomain})
			identifiers, err := mapper.Identifiers(subject, person, IdentifierOptions{TypeDomain: typeDomain})
			require.NoError(t, err)

			eventType, found := events.Value(quad.IRI(subject+"/event/0"), store.PropHasType)
			require.True(t, found)
			assert.True(t, identifiers.Contains(eventType.(quad.IRI), store.RDFType, store.ClassType))
		})
	}
}

func TestEvents_Minimal(t *testing.T) {
	person := firstElement(t, `<listPerson xmlns="http://www.tei-c.org/ns/1.0">
  <person xml:id="p6">
    <event><note>Moved</note></event>
    <event type="travel"><note>Went  abroad</note></event>
  </person>
</listPerson>`, ".//tei:person")
	subject := quad.IRI(testDomain + "p6")

	graph := testMapper().Events(subject, person, EventOptions{Prefix: "Ereignis:", DefaultLang: "en"})

	first := quad.IRI(subject + "/event/0")
	assert.Equal(t, []string{"Ereignis: Moved"}, literalValues(graph, first, store.RDFSLabel))
	assert.Empty(t, graph.Objects(first, store.PropHasType))
	assert.Empty(t, graph.Objects(first, store.PropTookPlaceAt))
	assert.Empty(t, graph.Find(quad.IRI(first+"/time-span"), "", nil))

	second := quad.IRI(subject + "/event/1")
	assert.True(t, graph.Contains(second, store.RDFSLabel, store.LangLiteral("Ereignis: Went abroad", "en")))
	assert.True(t, graph.Contains(second, store.PropHasType, quad.IRI("https://foo-bar/event/travel")))
}

func TestEvents_None(t *testing.T) {
	subject, place := samplePlace(t)
	assert.True(t, testMapper().Events(subject, place, EventOptions{}).IsEmpty())
}
