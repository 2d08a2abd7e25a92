// Package ingest walks TEI documents and runs the entity mappers over every
// person, place and organisation they contain.
package ingest

import (
	"fmt"
	"io"

	"github.com/cayleygraph/quad"
	"github.com/coolbeans/teicrm/pkg/mapping"
	"github.com/coolbeans/teicrm/pkg/store"
	"github.com/coolbeans/teicrm/pkg/tei"
	"go.uber.org/zap"
)

// Entity selectors, evaluated against the document root.
const (
	personXPath = "descendant-or-self::tei:person"
	placeXPath  = "descendant-or-self::tei:place"
	orgXPath    = "descendant-or-self::tei:org"
)

// Options configures the mappers run per entity. Zero mapper options use the
// mapper defaults; Domain is copied into the options that resolve pointers.
type Options struct {
	// Domain prefixes the xml:id of every entity to form its subject IRI.
	Domain string

	// Strict turns entities without xml:id into errors instead of skipping
	// them.
	Strict bool

	Identifiers  mapping.IdentifierOptions
	Appellations mapping.AppellationOptions
	Occupations  mapping.OccupationOptions
	Affiliations mapping.AffiliationOptions
	Birth        mapping.BirthDeathOptions
	Death        mapping.BirthDeathOptions
	Events       mapping.EventOptions
	Geo          mapping.GeoOptions
}

// BuildStats contains statistics about the graph building process. Rejected
// counts mapped statements dropped for an empty component.
type BuildStats struct {
	Persons      int `json:"persons"`
	Places       int `json:"places"`
	Orgs         int `json:"orgs"`
	Skipped      int `json:"skipped"`
	Rejected     int `json:"rejected"`
	TotalTriples int `json:"total_triples"`
}

// Add accumulates other into s. TotalTriples is left to the caller, since
// graphs built from several sources can share triples.
func (s *BuildStats) Add(other *BuildStats) {
	if other == nil {
		return
	}
	s.Persons += other.Persons
	s.Places += other.Places
	s.Orgs += other.Orgs
	s.Skipped += other.Skipped
	s.Rejected += other.Rejected
}

// Builder converts TEI documents into CIDOC-CRM graphs.
type Builder struct {
	mapper *mapping.Mapper
	opts   Options
}

// NewBuilder creates a Builder running mapper with opts.
func NewBuilder(mapper *mapping.Mapper, opts Options) *Builder {
	if mapper == nil {
		mapper = mapping.New(mapping.DefaultConfig())
	}
	if opts.Affiliations.Domain == "" {
		opts.Affiliations.Domain = opts.Domain
	}
	if opts.Birth.Domain == "" {
		opts.Birth.Domain = opts.Domain
	}
	if opts.Birth.EventType == "" {
		opts.Birth.EventType = mapping.EventBirth
	}
	if opts.Death.Domain == "" {
		opts.Death.Domain = opts.Domain
	}
	if opts.Death.EventType == "" {
		opts.Death.EventType = mapping.EventDeath
	}
	if opts.Death.Prefix == "" {
		opts.Death.Prefix = "Tod von"
	}
	if opts.Events.Domain == "" {
		opts.Events.Domain = opts.Domain
	}
	return &Builder{mapper: mapper, opts: opts}
}

// Options returns the effective options of the builder.
func (b *Builder) Options() Options {
	return b.opts
}

// Build maps every entity below doc into a new graph.
func (b *Builder) Build(doc *tei.Element) (*store.Graph, *BuildStats, error) {
	if doc == nil {
		return nil, nil, fmt.Errorf("document is nil")
	}

	graph := store.NewGraph()
	stats := &BuildStats{}

	for _, person := range doc.MustQuery(personXPath) {
		built, err := b.buildEntity(graph, stats, person, store.ClassPerson, b.buildPerson)
		if err != nil {
			return nil, nil, err
		}
		if built {
			stats.Persons++
		} else {
			stats.Skipped++
		}
	}

	for _, place := range doc.MustQuery(placeXPath) {
		built, err := b.buildEntity(graph, stats, place, store.ClassPlace, b.buildPlace)
		if err != nil {
			return nil, nil, err
		}
		if built {
			stats.Places++
		} else {
			stats.Skipped++
		}
	}

	for _, org := range doc.MustQuery(orgXPath) {
		built, err := b.buildEntity(graph, stats, org, store.ClassGroup, nil)
		if err != nil {
			return nil, nil, err
		}
		if built {
			stats.Orgs++
		} else {
			stats.Skipped++
		}
	}

	stats.TotalTriples = graph.Len()
	b.logger().Debugw("document mapped",
		"persons", stats.Persons,
		"places", stats.Places,
		"orgs", stats.Orgs,
		"skipped", stats.Skipped,
		"rejected", stats.Rejected,
		"triples", stats.TotalTriples)
	return graph, stats, nil
}

// BuildReader parses a TEI document from r and maps it.
func (b *Builder) BuildReader(r io.Reader) (*store.Graph, *BuildStats, error) {
	doc, err := tei.Parse(r)
	if err != nil {
		return nil, nil, err
	}
	return b.Build(doc)
}

// BuildFile parses the TEI document at path and maps it.
func (b *Builder) BuildFile(path string) (*store.Graph, *BuildStats, error) {
	doc, err := tei.ParseFile(path)
	if err != nil {
		return nil, nil, err
	}
	graph, stats, err := b.Build(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return graph, stats, nil
}

// entityFunc adds the kind-specific triples of an entity.
type entityFunc func(graph *store.Graph, subject quad.IRI, node *tei.Element) error

// buildEntity maps the triples shared by every entity kind, runs extra and
// merges the result into graph. It reports false when the entity was skipped.
func (b *Builder) buildEntity(graph *store.Graph, stats *BuildStats, node *tei.Element, class quad.IRI, extra entityFunc) (bool, error) {
	xmlID, ok := node.XMLID()
	if !ok {
		err := &mapping.MissingAttributeError{Element: node.Tag(), Attribute: "xml:id"}
		if b.opts.Strict {
			return false, err
		}
		b.logger().Warnw("skipping entity", "element", node.Tag(), "error", err)
		return false, nil
	}

	subject := quad.IRI(b.opts.Domain + xmlID)
	entity := store.NewGraph()
	entity.Set(subject, store.RDFType, class)

	identifiers, err := b.mapper.Identifiers(subject, node, b.opts.Identifiers)
	if err != nil {
		return false, err
	}
	entity.Merge(identifiers)
	entity.Merge(b.mapper.Appellations(subject, node, b.opts.Appellations))

	if extra != nil {
		if err := extra(entity, subject, node); err != nil {
			return false, err
		}
	}

	stats.Rejected += b.mergeEntity(graph, entity, subject)
	return true, nil
}

// mergeEntity merges entity into graph and returns how many of its
// statements were rejected, logging them against subject.
func (b *Builder) mergeEntity(graph, entity *store.Graph, subject quad.IRI) int {
	graph.Merge(entity)
	rejected := entity.Rejected()
	if rejected > 0 {
		b.logger().Warnw("dropped statements with empty components", "subject", string(subject), "count", rejected)
	}
	return rejected
}

func (b *Builder) buildPerson(graph *store.Graph, subject quad.IRI, node *tei.Element) error {
	occupations, _ := b.mapper.Occupations(subject, node, b.opts.Occupations)
	graph.Merge(occupations)

	affiliationOpts := b.opts.Affiliations
	if affiliationOpts.PersonLabel == "" {
		affiliationOpts.PersonLabel = subjectLabel(graph, subject)
	}
	affiliations, err := b.mapper.Affiliations(subject, node, affiliationOpts)
	if err != nil {
		return err
	}
	graph.Merge(affiliations)

	for _, lifeOpts := range []mapping.BirthDeathOptions{b.opts.Birth, b.opts.Death} {
		if lifeEvent, _, found := b.mapper.BirthDeath(subject, node, lifeOpts); found {
			graph.Merge(lifeEvent)
		}
	}

	graph.Merge(b.mapper.Events(subject, node, b.opts.Events))
	return nil
}

func (b *Builder) buildPlace(graph *store.Graph, subject quad.IRI, node *tei.Element) error {
	graph.Merge(b.mapper.Coordinates(subject, node, b.opts.Geo))
	return nil
}

func (b *Builder) logger() *zap.SugaredLogger {
	return b.mapper.Config().Logger
}

// subjectLabel returns the label the appellation mapper gave subject.
func subjectLabel(graph *store.Graph, subject quad.IRI) string {
	if label, found := graph.Value(subject, store.RDFSLabel); found {
		return store.LiteralText(label)
	}
	return tei.DefaultLabelMessage
}
