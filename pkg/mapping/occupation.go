package mapping

import (
	"fmt"
	"strconv"

	"github.com/cayleygraph/quad"
	"github.com/coolbeans/teicrm/pkg/store"
	"github.com/coolbeans/teicrm/pkg/tei"
)

// OccupationOptions configures Occupations.
type OccupationOptions struct {
	// Prefix is the path segment of occupation IRIs. Default: "occupation".
	Prefix string

	// IDXPath selects the local identifier of an occupation, e.g. "./@key".
	// Empty uses the position of the occupation.
	IDXPath string

	// DefaultLang is used for occupations without xml:lang. Default: "de".
	DefaultLang string

	// NotKnownValue overrides the mapper's literal for open boundaries.
	NotKnownValue string
}

func (o OccupationOptions) withDefaults(cfg Config) OccupationOptions {
	if o.Prefix == "" {
		o.Prefix = "occupation"
	}
	if o.DefaultLang == "" {
		o.DefaultLang = "de"
	}
	if o.NotKnownValue == "" {
		o.NotKnownValue = cfg.NotKnownValue
	}
	return o
}

// Occupations maps each nested tei:occupation to an F51 Pursuit performed by
// the subject. Dated occupations get an open-ended time-span. The pursuit
// IRIs are returned in document order.
func (m *Mapper) Occupations(subj quad.IRI, node *tei.Element, opts OccupationOptions) (*store.Graph, []quad.IRI) {
	opts = opts.withDefaults(m.cfg)
	graph := store.NewGraph()
	var occupationURIs []quad.IRI

	baseURI := fmt.Sprintf("%s/%s", string(subj), opts.Prefix)
	for i, occupation := range node.MustQuery(".//tei:occupation") {
		lang := occupation.LangOr(opts.DefaultLang)
		label := NormalizeString(occupation.AllText())

		occupationID := strconv.Itoa(i)
		if opts.IDXPath != "" {
			if value, found := occupation.FirstString(opts.IDXPath); found {
				occupationID = value
			} else {
				m.debugw("occupation id not found, using position",
					"subject", string(subj), "xpath", opts.IDXPath, "index", i)
			}
		}
		occupationID = stripHash(occupationID)

		occupationURI := quad.IRI(baseURI + "/" + occupationID)
		occupationURIs = append(occupationURIs, occupationURI)
		graph.Add(occupationURI, store.RDFType, store.ClassPursuit)
		graph.Add(occupationURI, store.RDFSLabel, store.LangLiteral(label, lang))
		graph.Add(subj, store.PropPerformed, occupationURI)

		dates := m.dateRange(occupation, false)
		if dates.IsZero() {
			continue
		}
		timeSpanURI := quad.IRI(occupationURI + "/time-span")
		graph.Add(occupationURI, store.PropHasTimeSpan, timeSpanURI)
		graph.Merge(BuildTimeSpan(TimeSpan{
			URI:           timeSpanURI,
			Begin:         dates.Begin,
			End:           dates.End,
			NotKnownValue: opts.NotKnownValue,
			Open:          true,
		}))
	}
	return graph, occupationURIs
}
