package mapping

import (
	"fmt"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/coolbeans/teicrm/pkg/store"
	"github.com/coolbeans/teicrm/pkg/tei"
)

// AppellationOptions configures Appellations.
type AppellationOptions struct {
	// TypeDomain is the base of the appellation type IRIs.
	// Default: "https://foo-bar/".
	TypeDomain string

	// TypeAttribute names the attribute classifying a name. Default: "type".
	TypeAttribute string

	// DefaultLang is used for names without xml:lang. Default: "de".
	DefaultLang string

	// XPathSuffix is appended to the name element path, e.g. "[@type='main']".
	XPathSuffix string
}

func (o AppellationOptions) withDefaults() AppellationOptions {
	if o.TypeDomain == "" {
		o.TypeDomain = "https://foo-bar/"
	}
	if o.TypeAttribute == "" {
		o.TypeAttribute = "type"
	}
	if o.DefaultLang == "" {
		o.DefaultLang = "de"
	}
	o.TypeDomain = withSlash(o.TypeDomain)
	return o
}

// nameXPath returns the name element path for an entity tag, or "" when the
// entity kind carries no appellations.
func nameXPath(tag string) string {
	switch {
	case strings.HasSuffix(tag, "place"):
		return ".//tei:placeName"
	case strings.HasSuffix(tag, "person"):
		return ".//tei:persName"
	case strings.HasSuffix(tag, "org"):
		return ".//tei:orgName"
	default:
		return ""
	}
}

// Appellations maps the name elements of a place, person or org element to
// E33_E41 Linguistic Appellations and labels the subject after the first
// name. Other element kinds yield an empty graph.
//
// A name with text and no child elements becomes a typed appellation with an
// rdf:value; a name with several parts is labelled by the label function.
// Names with exactly one child element are left out.
func (m *Mapper) Appellations(subj quad.IRI, node *tei.Element, opts AppellationOptions) *store.Graph {
	opts = opts.withDefaults()
	graph := store.NewGraph()

	tag := node.Tag()
	xpathExpression := nameXPath(tag)
	if xpathExpression == "" {
		return graph
	}
	xpathExpression += opts.XPathSuffix
	baseTypeURI := opts.TypeDomain + tag

	names := node.MustQuery(xpathExpression)
	for i, name := range names {
		lang := name.LangOr(opts.DefaultLang)
		typeURI := baseTypeURI + "/" + name.Tag()
		appellationURI := quad.IRI(fmt.Sprintf("%s/appellation/%d", string(subj), i))

		switch childCount := name.ChildCount(); {
		case childCount == 0 && name.Text() != "":
			text := NormalizeString(name.Text())
			graph.Add(subj, store.PropIsIdentifiedBy, appellationURI)
			graph.Add(appellationURI, store.RDFType, store.ClassLinguisticAppellation)
			graph.Add(appellationURI, store.RDFSLabel, store.LangLiteral(text, lang))
			graph.Add(appellationURI, store.RDFValue, store.PlainLiteral(text))

			typeLabel := name.Get(opts.TypeAttribute)
			var currentTypeURI quad.IRI
			if typeLabel != "" {
				currentTypeURI = quad.IRI(strings.ToLower(typeURI + "/" + m.cfg.Slug(typeLabel)))
			} else {
				currentTypeURI = quad.IRI(strings.ToLower(typeURI))
			}
			graph.Add(currentTypeURI, store.RDFType, store.ClassType)
			if typeLabel != "" {
				graph.Add(currentTypeURI, store.RDFSLabel, store.PlainLiteral(typeLabel))
			}
			graph.Add(appellationURI, store.PropHasType, currentTypeURI)

		case childCount > 1:
			label, labelLang := m.cfg.Label(name, opts.DefaultLang)
			graph.Add(subj, store.PropIsIdentifiedBy, appellationURI)
			graph.Add(appellationURI, store.RDFType, store.ClassLinguisticAppellation)
			graph.Add(appellationURI, store.RDFSLabel, store.LangLiteral(NormalizeString(label), labelLang))

			currentTypeURI := quad.IRI(strings.ToLower(typeURI))
			graph.Add(currentTypeURI, store.RDFType, store.ClassType)
			graph.Add(appellationURI, store.PropHasType, currentTypeURI)

		case childCount == 1:
			m.debugw("skipping name with a single part", "subject", string(subj), "index", i)
		}
	}

	if len(names) == 0 {
		m.debugw("no name elements found", "subject", string(subj), "xpath", xpathExpression)
		return graph
	}
	label, labelLang := m.cfg.Label(names[0], opts.DefaultLang)
	graph.Add(subj, store.RDFSLabel, store.LangLiteral(label, labelLang))
	return graph
}
