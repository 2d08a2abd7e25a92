package store

import (
	"fmt"

	"github.com/cayleygraph/quad"
)

// Triple represents an RDF Subject-Predicate-Object statement.
// In the mapping domain:
//   - Subject: an entity or derived sub-entity IRI (e.g. ".../person/1/birth")
//   - Predicate: an ontology property (e.g. crm:P4_has_time-span)
//   - Object: another IRI or a literal (plain, language-tagged or typed)
type Triple struct {
	Subject   quad.IRI
	Predicate quad.IRI
	Object    quad.Value
}

// NewTriple creates a new triple with the given components.
func NewTriple(subject, predicate quad.IRI, object quad.Value) Triple {
	return Triple{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
	}
}

// Equals checks if two triples have identical components.
func (t Triple) Equals(other Triple) bool {
	return t.Key() == other.Key()
}

// Key returns the identity of the triple. Two triples with the same key are
// the same statement.
func (t Triple) Key() string {
	return t.Subject.String() + " " + t.Predicate.String() + " " + objectKey(t.Object)
}

// String returns a human-readable representation of the triple.
func (t Triple) String() string {
	return fmt.Sprintf("%s %s %s", t.Subject, t.Predicate, objectKey(t.Object))
}

// NTriples returns the triple in N-Triples format.
func (t Triple) NTriples() string {
	return fmt.Sprintf("%s %s %s .", t.Subject, t.Predicate, objectKey(t.Object))
}

// IsValid returns true if all components are non-empty.
func (t Triple) IsValid() bool {
	return t.Subject != "" && t.Predicate != "" && t.Object != nil && objectKey(t.Object) != ""
}

// IsLiteral reports whether the object of the triple is a literal.
func (t Triple) IsLiteral() bool {
	_, isIRI := t.Object.(quad.IRI)
	return t.Object != nil && !isIRI
}

func objectKey(object quad.Value) string {
	if object == nil {
		return ""
	}
	if iri, ok := object.(quad.IRI); ok && iri == "" {
		return ""
	}
	return object.String()
}

// PlainLiteral returns a literal without language tag or datatype.
func PlainLiteral(value string) quad.String {
	return quad.String(value)
}

// LangLiteral returns a language-tagged literal. An empty language yields a
// plain literal.
func LangLiteral(value, lang string) quad.Value {
	if lang == "" {
		return quad.String(value)
	}
	return quad.LangString{Value: quad.String(value), Lang: lang}
}

// TypedLiteral returns a literal with the given datatype.
func TypedLiteral(value string, datatype quad.IRI) quad.TypedString {
	return quad.TypedString{Value: quad.String(value), Type: datatype}
}

// LiteralText returns the lexical form of a literal object, or the IRI text
// for IRI objects.
func LiteralText(object quad.Value) string {
	switch value := object.(type) {
	case quad.String:
		return string(value)
	case quad.LangString:
		return string(value.Value)
	case quad.TypedString:
		return string(value.Value)
	case quad.IRI:
		return string(value)
	case nil:
		return ""
	default:
		return fmt.Sprint(value.Native())
	}
}

// LiteralLang returns the language tag of a literal, or "" if it has none.
func LiteralLang(object quad.Value) string {
	if value, ok := object.(quad.LangString); ok {
		return value.Lang
	}
	return ""
}

// LiteralDatatype returns the datatype of a typed literal, or "" if it has none.
func LiteralDatatype(object quad.Value) quad.IRI {
	if value, ok := object.(quad.TypedString); ok {
		return value.Type
	}
	return ""
}

// TriplePattern represents a pattern for matching triples.
// Zero components act as wildcards that match any value.
type TriplePattern struct {
	Subject   quad.IRI
	Predicate quad.IRI
	Object    quad.Value
}

// NewTriplePattern creates a new pattern for querying.
func NewTriplePattern(subject, predicate quad.IRI, object quad.Value) TriplePattern {
	return TriplePattern{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
	}
}

// Matches checks if a triple matches this pattern.
func (p TriplePattern) Matches(t Triple) bool {
	if p.Subject != "" && p.Subject != t.Subject {
		return false
	}
	if p.Predicate != "" && p.Predicate != t.Predicate {
		return false
	}
	if key := objectKey(p.Object); key != "" && key != objectKey(t.Object) {
		return false
	}
	return true
}
