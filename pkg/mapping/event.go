package mapping

import (
	"fmt"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/coolbeans/teicrm/pkg/store"
	"github.com/coolbeans/teicrm/pkg/tei"
)

// EventOptions configures Events.
type EventOptions struct {
	// TypeDomain is the base of event type IRIs.
	TypeDomain string

	// Domain prefixes place ids. Default: "https://sk.acdh.oeaw.ac.at/".
	Domain string

	// Prefix starts event labels. Default: "Event:".
	Prefix string

	// DefaultLang tags labels. Default: "de".
	DefaultLang string

	// DateXPath locates the dated element. Default: "./tei:desc/tei:date[@when]".
	DateXPath string

	// PlaceIDXPath locates the place pointer.
	// Default: "./tei:desc/tei:placeName[@key]/@key".
	PlaceIDXPath string

	// NoteXPath locates the label text. Default: "./tei:note/text()".
	NoteXPath string

	// TypeXPath locates the event classification. Default: "@type".
	TypeXPath string
}

func (o EventOptions) withDefaults() EventOptions {
	if o.TypeDomain == "" {
		o.TypeDomain = "https://foo-bar/"
	}
	if o.Domain == "" {
		o.Domain = "https://sk.acdh.oeaw.ac.at/"
	}
	if o.Prefix == "" {
		o.Prefix = "Event:"
	}
	if o.DefaultLang == "" {
		o.DefaultLang = "de"
	}
	if o.DateXPath == "" {
		o.DateXPath = "./tei:desc/tei:date[@when]"
	}
	if o.PlaceIDXPath == "" {
		o.PlaceIDXPath = "./tei:desc/tei:placeName[@key]/@key"
	}
	if o.NoteXPath == "" {
		o.NoteXPath = "./tei:note/text()"
	}
	if o.TypeXPath == "" {
		o.TypeXPath = "@type"
	}
	return o
}

// Events maps each nested tei:event to an E5 Event with a label, a
// time-span, and, where the markup provides them, a place and a type. The
// type IRIs match the ones declared by Identifiers.
func (m *Mapper) Events(subj quad.IRI, node *tei.Element, opts EventOptions) *store.Graph {
	opts = opts.withDefaults()
	graph := store.NewGraph()
	typeBase := strings.TrimSuffix(opts.TypeDomain, "/") + "/event/"

	for i, event := range node.MustQuery(".//tei:event") {
		eventURI := quad.IRI(fmt.Sprintf("%s/event/%d", string(subj), i))
		timeSpanURI := quad.IRI(eventURI + "/time-span")
		graph.Add(eventURI, store.RDFType, store.ClassEvent)

		notes, _ := event.QueryStrings(opts.NoteXPath)
		noteLabel := NormalizeString(strings.Join(notes, " "))
		eventLabel := NormalizeString(opts.Prefix + " " + noteLabel)
		graph.Add(eventURI, store.RDFSLabel, store.LangLiteral(eventLabel, opts.DefaultLang))
		graph.Add(eventURI, store.PropHasTimeSpan, timeSpanURI)

		if place, found := event.FirstString(opts.PlaceIDXPath); found {
			placeID := place[strings.LastIndex(place, "#")+1:]
			graph.Add(eventURI, store.PropTookPlaceAt, quad.IRI(opts.Domain+placeID))
		}

		if eventType, found := event.FirstString(opts.TypeXPath); found && NormalizeString(eventType) != "" {
			graph.Add(eventURI, store.PropHasType, quad.IRI(typeBase+NormalizeString(eventType)))
		} else {
			m.debugw("event without type", "subject", string(subj), "index", i)
		}

		dateNode, found := event.First(opts.DateXPath)
		if !found {
			m.debugw("event without date", "subject", string(subj), "index", i)
			continue
		}
		dates := m.dateRange(dateNode, true)
		if dates.Begin != "" {
			graph.Add(timeSpanURI, store.RDFType, store.ClassTimeSpan)
			graph.Merge(m.instant(timeSpanURI, dates.Begin))
		}
		if dates.End != "" {
			if when, ok := dateNode.Attr("when"); ok {
				graph.Add(timeSpanURI, store.RDFSLabel, store.LangLiteral(when, opts.DefaultLang))
			}
			graph.Merge(m.instant(timeSpanURI, dates.End))
		}
	}
	return graph
}
