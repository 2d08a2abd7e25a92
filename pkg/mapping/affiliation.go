package mapping

import (
	"fmt"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/coolbeans/teicrm/pkg/store"
	"github.com/coolbeans/teicrm/pkg/tei"
)

// AffiliationOptions configures Affiliations.
type AffiliationOptions struct {
	// Domain prefixes the xml:id of persons and the ids of organisations.
	Domain string

	// PersonLabel names the person in joining and leaving labels.
	PersonLabel string

	// OrgIDXPath selects the organisation pointer. Default: "./@ref".
	OrgIDXPath string

	// OrgLabelXPath selects the organisation label. Empty uses the full
	// text of the affiliation.
	OrgLabelXPath string

	// Lang tags joining and leaving labels. Default: "en".
	Lang string
}

func (o AffiliationOptions) withDefaults() AffiliationOptions {
	if o.OrgIDXPath == "" {
		o.OrgIDXPath = "./@ref"
	}
	if o.Lang == "" {
		o.Lang = "en"
	}
	return o
}

// Affiliations maps each nested tei:affiliation to an E85 Joining, plus an
// E86 Leaving when the affiliation has an end date.
//
// The person IRI is always {Domain}{xml:id}; subj is not used for it, so
// callers must pass elements carrying an xml:id. Affiliations whose
// organisation pointer cannot be resolved are skipped.
func (m *Mapper) Affiliations(subj quad.IRI, node *tei.Element, opts AffiliationOptions) (*store.Graph, error) {
	opts = opts.withDefaults()
	graph := store.NewGraph()

	xmlID, ok := node.XMLID()
	if !ok {
		return graph, &MissingAttributeError{Element: node.Tag(), Attribute: "xml:id"}
	}
	person := quad.IRI(opts.Domain + xmlID)
	if person != subj {
		m.debugw("affiliation subject recomputed from xml:id", "given", string(subj), "subject", string(person))
	}

	for i, affiliation := range node.MustQuery(".//tei:affiliation") {
		affiliationID, found := affiliation.FirstString(opts.OrgIDXPath)
		if !found {
			m.debugw("affiliation without organisation", "subject", string(person), "index", i)
			continue
		}

		var orgLabel string
		if opts.OrgLabelXPath == "" {
			orgLabel = NormalizeString(affiliation.AllText())
		} else {
			values, _ := affiliation.QueryStrings(opts.OrgLabelXPath)
			orgLabel = NormalizeString(strings.Join(values, " "))
		}

		affiliationID = stripHash(affiliationID)
		orgURI := quad.IRI(opts.Domain + affiliationID)

		joinURI := quad.IRI(fmt.Sprintf("%s/joining/%s/%d", string(person), affiliationID, i))
		joinLabel := NormalizeString(fmt.Sprintf("%s joins %s", opts.PersonLabel, orgLabel))
		graph.Add(joinURI, store.RDFType, store.ClassJoining)
		graph.Add(joinURI, store.PropJoined, person)
		graph.Add(joinURI, store.PropJoinedWith, orgURI)
		graph.Add(joinURI, store.RDFSLabel, store.LangLiteral(joinLabel, opts.Lang))

		dates := m.dateRange(affiliation, false)
		if dates.Begin != "" {
			timeSpanURI := quad.IRI(fmt.Sprintf("%s/time-span/%s", string(joinURI), dates.Begin))
			graph.Add(joinURI, store.PropHasTimeSpan, timeSpanURI)
			graph.Merge(m.instant(timeSpanURI, dates.Begin))
		}
		if dates.End != "" {
			leaveURI := quad.IRI(fmt.Sprintf("%s/leaving/%s/%d", string(person), affiliationID, i))
			leaveLabel := NormalizeString(fmt.Sprintf("%s leaves %s", opts.PersonLabel, orgLabel))
			graph.Add(leaveURI, store.RDFType, store.ClassLeaving)
			graph.Add(leaveURI, store.PropSeparated, person)
			graph.Add(leaveURI, store.PropSeparatedFrom, orgURI)
			graph.Add(leaveURI, store.RDFSLabel, store.LangLiteral(leaveLabel, opts.Lang))

			timeSpanURI := quad.IRI(fmt.Sprintf("%s/time-span/%s", string(leaveURI), dates.End))
			graph.Add(leaveURI, store.PropHasTimeSpan, timeSpanURI)
			graph.Merge(m.instant(timeSpanURI, dates.End))
		}
	}
	return graph, nil
}

// instant builds a closed time-span on a single date.
func (m *Mapper) instant(uri quad.IRI, date string) *store.Graph {
	return BuildTimeSpan(TimeSpan{
		URI:           uri,
		Begin:         date,
		End:           date,
		NotKnownValue: m.cfg.NotKnownValue,
	})
}
