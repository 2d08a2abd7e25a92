// Package store provides the RDF term model, an in-memory triple set and the
// ontology vocabulary used when mapping TEI records to CIDOC-CRM.
package store

import (
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/rdf"
	"github.com/cayleygraph/quad/voc/rdfs"
)

// Namespace URIs for the ontologies the mappers emit.
const (
	// NamespaceCIDOC is the CIDOC-CRM namespace.
	NamespaceCIDOC = "http://www.cidoc-crm.org/cidoc-crm/"

	// NamespaceFRBROO is the FRBRoo namespace, used for pursuits.
	NamespaceFRBROO = "https://cidoc-crm.org/frbroo/sites/default/files/FRBR2.4-draft.rdfs#"

	// NamespaceINT is the INTRO literary-studies ontology namespace.
	NamespaceINT = "https://w3id.org/lso/intro/Vx/#"

	// NamespaceSchema is the schema.org namespace.
	NamespaceSchema = "https://schema.org/"

	// NamespaceRDF is the standard RDF namespace.
	NamespaceRDF = rdf.NS

	// NamespaceRDFS is the RDF Schema namespace.
	NamespaceRDFS = rdfs.NS

	// NamespaceOWL is the Web Ontology Language namespace.
	NamespaceOWL = "http://www.w3.org/2002/07/owl#"

	// NamespaceXSD is the XML Schema namespace for datatypes.
	NamespaceXSD = "http://www.w3.org/2001/XMLSchema#"

	// NamespaceGeo is the GeoSPARQL namespace.
	NamespaceGeo = "http://www.opengis.net/ont/geosparql#"
)

// CIDOC returns the CIDOC-CRM term with the given local name.
func CIDOC(local string) quad.IRI {
	return quad.IRI(NamespaceCIDOC + local)
}

// FRBROO returns the FRBRoo term with the given local name.
func FRBROO(local string) quad.IRI {
	return quad.IRI(NamespaceFRBROO + local)
}

// Standard RDF, RDFS and OWL predicates.
var (
	RDFType   = quad.IRI(rdf.Type).Full()
	RDFValue  = quad.IRI(NamespaceRDF + "value")
	RDFSLabel = quad.IRI(rdfs.Label).Full()
	OWLSameAs = quad.IRI(NamespaceOWL + "sameAs")
)

// Literal datatypes.
var (
	XSDString     = quad.IRI(NamespaceXSD + "string")
	XSDDate       = quad.IRI(NamespaceXSD + "date")
	XSDGYear      = quad.IRI(NamespaceXSD + "gYear")
	XSDGYearMonth = quad.IRI(NamespaceXSD + "gYearMonth")
	GeoWKTLiteral = quad.IRI(NamespaceGeo + "wktLiteral")
)

// CIDOC-CRM classes.
var (
	ClassEvent                 = CIDOC("E5_Event")
	ClassPerson                = CIDOC("E21_Person")
	ClassLinguisticAppellation = CIDOC("E33_E41_Linguistic_Appellation")
	ClassIdentifier            = CIDOC("E42_Identifier")
	ClassTimeSpan              = CIDOC("E52_Time-Span")
	ClassPlace                 = CIDOC("E53_Place")
	ClassType                  = CIDOC("E55_Type")
	ClassBirth                 = CIDOC("E67_Birth")
	ClassDeath                 = CIDOC("E69_Death")
	ClassGroup                 = CIDOC("E74_Group")
	ClassJoining               = CIDOC("E85_Joining")
	ClassLeaving               = CIDOC("E86_Leaving")

	// ClassPursuit is the FRBRoo activity class used for occupations.
	ClassPursuit = FRBROO("F51_Pursuit")
)

// CIDOC-CRM properties.
var (
	PropIsIdentifiedBy   = CIDOC("P1_is_identified_by")
	PropHasType          = CIDOC("P2_has_type")
	PropHasTimeSpan      = CIDOC("P4_has_time-span")
	PropTookPlaceAt      = CIDOC("P7_took_place_at")
	PropPerformed        = CIDOC("P14i_performed")
	PropBeginOfTheBegin  = CIDOC("P82a_begin_of_the_begin")
	PropEndOfTheEnd      = CIDOC("P82b_end_of_the_end")
	PropBroughtIntoLife  = CIDOC("P98_brought_into_life")
	PropWasDeathOf       = CIDOC("P100_was_death_of")
	PropJoined           = CIDOC("P143_joined")
	PropJoinedWith       = CIDOC("P144_joined_with")
	PropSeparated        = CIDOC("P145_separated")
	PropSeparatedFrom    = CIDOC("P146_separated_from")
	PropPlaceIsDefinedBy = CIDOC("P168_place_is_defined_by")
)

// PrefixMapping associates a short prefix label with its full namespace URI.
type PrefixMapping struct {
	Prefix    string
	Namespace string
}

// DefaultPrefixes returns the prefixes used to abbreviate IRIs of mapped graphs.
func DefaultPrefixes() []PrefixMapping {
	return []PrefixMapping{
		{Prefix: "crm", Namespace: NamespaceCIDOC},
		{Prefix: "frbroo", Namespace: NamespaceFRBROO},
		{Prefix: "intro", Namespace: NamespaceINT},
		{Prefix: "schema", Namespace: NamespaceSchema},
		{Prefix: "rdf", Namespace: NamespaceRDF},
		{Prefix: "rdfs", Namespace: NamespaceRDFS},
		{Prefix: "owl", Namespace: NamespaceOWL},
		{Prefix: "xsd", Namespace: NamespaceXSD},
		{Prefix: "geo", Namespace: NamespaceGeo},
	}
}

// Compact abbreviates iri with the first matching default prefix, e.g.
// "crm:E21_Person". Other IRIs are returned in angle brackets.
func Compact(iri quad.IRI) string {
	value := string(iri)
	for _, mapping := range DefaultPrefixes() {
		if strings.HasPrefix(value, mapping.Namespace) && len(value) > len(mapping.Namespace) {
			return mapping.Prefix + ":" + value[len(mapping.Namespace):]
		}
	}
	return "<" + value + ">"
}
