// Package mapping converts TEI entity markup into CIDOC-CRM triples.
//
// Each mapper takes a subject IRI and a TEI element and returns a fresh,
// self-contained graph. Mappers never mutate shared state, so their results
// can be merged by union in any order:
//
//	mapper := mapping.New(mapping.DefaultConfig())
//	graph := store.NewGraph()
//	ids, err := mapper.Identifiers(subject, person, mapping.IdentifierOptions{})
//	if err != nil {
//	    return err
//	}
//	graph.Merge(ids)
//	graph.Merge(mapper.Appellations(subject, person, mapping.AppellationOptions{}))
//
// Derived IRIs are plain string concatenations of the subject, a fixed path
// segment and a local fragment, so re-running a mapping over the same
// document yields the same graph.
package mapping

import (
	"github.com/coolbeans/teicrm/pkg/tei"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// DefaultNotKnownValue is the literal used for missing dates.
const DefaultNotKnownValue = "undefined"

// LabelFunc builds a human-readable label and its language from a name
// element.
type LabelFunc func(name *tei.Element, defaultLang string) (label, lang string)

// SlugFunc turns arbitrary text into a lowercase URL-safe token.
type SlugFunc func(text string) string

// Config holds the fixed configuration shared by all mappers.
type Config struct {
	// DateAttributes resolves date attribute names to their roles.
	DateAttributes DateAttributeTable

	// NotKnownValue is the text of the literal emitted for unknown dates.
	NotKnownValue string

	// Label assembles entity labels from name elements.
	Label LabelFunc

	// Slug derives URI fragments from type labels.
	Slug SlugFunc

	// Logger receives diagnostics about skipped structures.
	Logger *zap.SugaredLogger

	// Verbose enables diagnostics for missing optional structures.
	Verbose bool
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		DateAttributes: DefaultDateAttributes(),
		NotKnownValue:  DefaultNotKnownValue,
		Label:          tei.EntityLabel,
		Slug:           slug.Make,
		Logger:         zap.NewNop().Sugar(),
	}
}

// Mapper applies the mapping rules with a fixed configuration. A Mapper holds
// no mutable state and is safe for concurrent use.
type Mapper struct {
	cfg Config
}

// New returns a Mapper for cfg. Zero fields fall back to DefaultConfig.
func New(cfg Config) *Mapper {
	defaults := DefaultConfig()
	if len(cfg.DateAttributes) == 0 {
		cfg.DateAttributes = defaults.DateAttributes
	}
	if cfg.NotKnownValue == "" {
		cfg.NotKnownValue = defaults.NotKnownValue
	}
	if cfg.Label == nil {
		cfg.Label = defaults.Label
	}
	if cfg.Slug == nil {
		cfg.Slug = defaults.Slug
	}
	if cfg.Logger == nil {
		cfg.Logger = defaults.Logger
	}
	return &Mapper{cfg: cfg}
}

// Config returns the configuration of the mapper.
func (m *Mapper) Config() Config {
	return m.cfg
}

func (m *Mapper) debugw(msg string, keysAndValues ...interface{}) {
	if m.cfg.Verbose {
		m.cfg.Logger.Debugw(msg, keysAndValues...)
	}
}
