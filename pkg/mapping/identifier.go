package mapping

import (
	"fmt"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/coolbeans/teicrm/pkg/store"
	"github.com/coolbeans/teicrm/pkg/tei"
)

// DefaultIdentifierPrefix starts every identifier label.
const DefaultIdentifierPrefix = "Identifier: "

// undeterminedLang is the ISO 639 code for undetermined language.
const undeterminedLang = "und"

// IdentifierOptions configures Identifiers.
type IdentifierOptions struct {
	// TypeDomain is the base of the identifier type IRIs.
	// Default: "https://foo-bar/".
	TypeDomain string

	// DefaultLang tags event type labels, and identifier labels when SetLang
	// is true and the element has no xml:lang. Default: "de".
	DefaultLang string

	// SetLang tags identifier labels with the element language instead of
	// "und".
	SetLang bool

	// DisableSameAs suppresses owl:sameAs links for URL-shaped idno values.
	DisableSameAs bool

	// Prefix starts identifier labels. Default: DefaultIdentifierPrefix.
	Prefix string
}

func (o IdentifierOptions) withDefaults() IdentifierOptions {
	if o.TypeDomain == "" {
		o.TypeDomain = "https://foo-bar/"
	}
	if o.DefaultLang == "" {
		o.DefaultLang = "de"
	}
	if o.Prefix == "" {
		o.Prefix = DefaultIdentifierPrefix
	}
	o.TypeDomain = withSlash(o.TypeDomain)
	return o
}

// Identifiers maps the xml:id of node and its nested tei:idno elements to
// E42 Identifiers. It also declares the E55 types of the nested tei:event
// elements. A missing xml:id is reported as a *MissingAttributeError.
func (m *Mapper) Identifiers(subj quad.IRI, node *tei.Element, opts IdentifierOptions) (*store.Graph, error) {
	opts = opts.withDefaults()
	graph := store.NewGraph()

	lang := undeterminedLang
	if opts.SetLang {
		lang = node.LangOr(opts.DefaultLang)
	}

	xmlID, ok := node.XMLID()
	if !ok {
		return graph, &MissingAttributeError{Element: node.Tag(), Attribute: "xml:id"}
	}

	identifierURI := quad.IRI(fmt.Sprintf("%s/identifier/%s", string(subj), xmlID))
	typeURI := quad.IRI(opts.TypeDomain + "idno/xml-id")
	approxURI := quad.IRI(opts.TypeDomain + "date/approx")

	graph.Add(approxURI, store.RDFType, store.ClassType)
	graph.Add(approxURI, store.RDFSLabel, store.PlainLiteral("approx"))
	graph.Add(typeURI, store.RDFType, store.ClassType)
	graph.Add(subj, store.PropIsIdentifiedBy, identifierURI)
	graph.Add(identifierURI, store.RDFType, store.ClassIdentifier)
	graph.Add(identifierURI, store.RDFSLabel, store.LangLiteral(NormalizeString(opts.Prefix+xmlID), lang))
	graph.Add(identifierURI, store.RDFValue, store.PlainLiteral(NormalizeString(xmlID)))
	graph.Add(identifierURI, store.PropHasType, typeURI)

	for _, event := range node.MustQuery(".//tei:event[@type]") {
		eventType := event.Get("type")
		eventTypeURI := quad.IRI(opts.TypeDomain + "event/" + eventType)
		graph.Add(eventTypeURI, store.RDFType, store.ClassType)
		graph.Add(eventTypeURI, store.RDFSLabel, store.LangLiteral(eventType, opts.DefaultLang))
	}

	for i, idno := range node.MustQuery(".//tei:idno") {
		text := idno.Text()
		if text == "" {
			continue
		}

		idnoURI := quad.IRI(fmt.Sprintf("%s/identifier/idno/%d", string(subj), i))
		idnoTypeURI := opts.TypeDomain + "idno"
		if idnoType := idno.Get("type"); idnoType != "" {
			idnoTypeURI += "/" + idnoType
		}
		if idnoSubtype := idno.Get("subtype"); idnoSubtype != "" {
			idnoTypeURI += "/" + idnoSubtype
		}

		graph.Add(subj, store.PropIsIdentifiedBy, idnoURI)
		graph.Add(idnoURI, store.RDFType, store.ClassIdentifier)
		graph.Add(idnoURI, store.PropHasType, quad.IRI(idnoTypeURI))
		graph.Add(quad.IRI(idnoTypeURI), store.RDFType, store.ClassType)
		graph.Add(idnoURI, store.RDFSLabel, store.LangLiteral(NormalizeString(opts.Prefix+text), lang))
		graph.Add(idnoURI, store.RDFValue, store.PlainLiteral(NormalizeString(text)))

		if target := strings.TrimSpace(text); !opts.DisableSameAs && strings.HasPrefix(target, "http") {
			graph.Add(subj, store.OWLSameAs, quad.IRI(target))
		}
	}
	return graph, nil
}
