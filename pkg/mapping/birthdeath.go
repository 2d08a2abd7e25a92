package mapping

import (
	"fmt"

	"github.com/cayleygraph/quad"
	"github.com/coolbeans/teicrm/pkg/store"
	"github.com/coolbeans/teicrm/pkg/tei"
)

// Life event kinds accepted by BirthDeath.
const (
	EventBirth = "birth"
	EventDeath = "death"
)

// BirthDeathOptions configures BirthDeath.
type BirthDeathOptions struct {
	// Domain prefixes place ids.
	Domain string

	// TypeURI classifies the time-span, if set.
	TypeURI quad.IRI

	// EventType is EventBirth or EventDeath. Default: EventBirth.
	EventType string

	// Prefix starts the event label. Default: "Geburt von".
	Prefix string

	// DefaultLang is passed to the label function. Default: "de".
	DefaultLang string

	// DateXPath locates the dated element below the event element. Empty
	// uses the event element itself.
	DateXPath string

	// PlaceIDXPath is appended to the event path to find the place pointer.
	// Default: "//tei:placeName/@key".
	PlaceIDXPath string
}

func (o BirthDeathOptions) withDefaults() BirthDeathOptions {
	if o.EventType == "" {
		o.EventType = EventBirth
	}
	if o.Prefix == "" {
		o.Prefix = "Geburt von"
	}
	if o.DefaultLang == "" {
		o.DefaultLang = "de"
	}
	if o.PlaceIDXPath == "" {
		o.PlaceIDXPath = "//tei:placeName/@key"
	}
	return o
}

// LifeEvent holds the IRIs generated for a birth or death.
type LifeEvent struct {
	EventURI    quad.IRI
	TimeSpanURI quad.IRI
}

// BirthDeath maps the first tei:birth or tei:death of a person to an E67
// Birth or E69 Death. The event always links a time-span IRI; the time-span
// itself is only described when a date element is present.
//
// The boolean is false, with an empty graph, when the event type is unknown
// or the person has no such element.
func (m *Mapper) BirthDeath(subj quad.IRI, node *tei.Element, opts BirthDeathOptions) (*store.Graph, LifeEvent, bool) {
	opts = opts.withDefaults()
	graph := store.NewGraph()

	var property, class quad.IRI
	switch opts.EventType {
	case EventBirth:
		property, class = store.PropBroughtIntoLife, store.ClassBirth
	case EventDeath:
		property, class = store.PropWasDeathOf, store.ClassDeath
	default:
		m.debugw("unsupported life event type", "subject", string(subj), "type", opts.EventType)
		return graph, LifeEvent{}, false
	}

	xpathExpression := fmt.Sprintf(".//tei:%s[1]", opts.EventType)
	if _, found := node.First(xpathExpression); !found {
		m.debugw("no life event element", "subject", string(subj), "xpath", xpathExpression)
		return graph, LifeEvent{}, false
	}

	name, _ := node.First(".//tei:persName[1]")
	label, labelLang := tei.DefaultLabelMessage, opts.DefaultLang
	if name != nil {
		label, labelLang = m.cfg.Label(name, opts.DefaultLang)
	}

	event := LifeEvent{EventURI: quad.IRI(fmt.Sprintf("%s/%s", string(subj), opts.EventType))}
	event.TimeSpanURI = quad.IRI(event.EventURI + "/time-span")

	graph.Set(event.EventURI, property, subj)
	graph.Set(event.EventURI, store.RDFType, class)
	graph.Add(event.EventURI, store.RDFSLabel, store.LangLiteral(opts.Prefix+" "+label, labelLang))
	graph.Set(event.EventURI, store.PropHasTimeSpan, event.TimeSpanURI)

	dateXPath := xpathExpression
	if opts.DateXPath != "" {
		dateXPath = xpathExpression + "/" + opts.DateXPath
	}
	if dateNode, found := node.First(dateXPath); found {
		dates := m.dateRange(dateNode, true)
		graph.Merge(BuildTimeSpan(TimeSpan{
			URI:           event.TimeSpanURI,
			TypeURI:       opts.TypeURI,
			Begin:         dates.Begin,
			End:           dates.End,
			NotKnownValue: m.cfg.NotKnownValue,
		}))
	}

	if place, found := node.FirstString(xpathExpression + opts.PlaceIDXPath); found {
		graph.Add(event.EventURI, store.PropTookPlaceAt, quad.IRI(opts.Domain+stripHash(place)))
	}
	return graph, event, true
}
