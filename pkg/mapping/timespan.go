package mapping

import (
	"github.com/cayleygraph/quad"
	"github.com/coolbeans/teicrm/pkg/store"
)

// TimeSpan describes an E52 Time-Span to build.
type TimeSpan struct {
	URI     quad.IRI
	TypeURI quad.IRI

	Begin string
	End   string

	// NotKnownValue and Lang shape the literal used for unknown boundaries.
	NotKnownValue string
	Lang          string

	// Open keeps a missing boundary unknown instead of closing the span on
	// the known one. Both boundaries are always asserted.
	Open bool

	// Unlabeled suppresses the rdfs:label.
	Unlabeled bool
}

// BuildTimeSpan returns the triples of an E52 Time-Span.
//
// A closed span with a single known boundary becomes an instant: the missing
// boundary copies the known one. The label joins both boundaries with " - "
// and collapses to one value when they are equal.
func BuildTimeSpan(span TimeSpan) *store.Graph {
	if span.NotKnownValue == "" {
		span.NotKnownValue = DefaultNotKnownValue
	}
	if span.Lang == "" {
		span.Lang = "en"
	}

	graph := store.NewGraph()
	graph.Add(span.URI, store.RDFType, store.ClassTimeSpan)

	begin, end := span.Begin, span.End
	if !span.Open {
		if end == "" {
			end = begin
		}
		if begin == "" {
			begin = end
		}
	}

	beginLiteral := DateToLiteral(begin, span.NotKnownValue, span.Lang)
	endLiteral := DateToLiteral(end, span.NotKnownValue, span.Lang)

	if begin != "" || span.Open {
		graph.Add(span.URI, store.PropBeginOfTheBegin, beginLiteral)
	}
	if end != "" || span.Open {
		graph.Add(span.URI, store.PropEndOfTheEnd, endLiteral)
	}

	if !span.Unlabeled {
		graph.Add(span.URI, store.RDFSLabel, store.TypedLiteral(timeSpanLabel(beginLiteral, endLiteral), store.XSDString))
	}

	if span.TypeURI != "" {
		graph.Add(span.URI, store.PropHasType, span.TypeURI)
	}
	return graph
}

func timeSpanLabel(begin, end quad.Value) string {
	beginText, endText := store.LiteralText(begin), store.LiteralText(end)
	if beginText == endText {
		return beginText
	}
	return beginText + " - " + endText
}
