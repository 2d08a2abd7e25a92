package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/cayleygraph/quad"
)

// IndexStats contains statistics about a graph.
type IndexStats struct {
	TotalTriples     int            `json:"total_triples"`
	UniqueSubjects   int            `json:"unique_subjects"`
	UniquePredicates int            `json:"unique_predicates"`
	PredicateCounts  map[string]int `json:"predicate_counts"`
}

// ErrInvalidTriple is returned for statements with an empty component.
var ErrInvalidTriple = errors.New("triple components cannot be empty")

// Graph is an in-memory triple set. Duplicate statements collapse, so merging
// the output of independent mappers is a plain union.
//
// Two indexes are maintained:
//   - SPO: Subject -> Predicate -> Object key -> Triple
//   - POS: Predicate -> Object key -> Subject -> exists
type Graph struct {
	mu sync.RWMutex

	spo map[quad.IRI]map[quad.IRI]map[string]Triple
	pos map[quad.IRI]map[string]map[quad.IRI]bool

	count int

	// rejected counts statements refused by Add, Set and BulkAdd, including
	// those of merged graphs.
	rejected int

	predicateCounts map[quad.IRI]int
}

// NewGraph creates an empty graph with all indexes initialized.
func NewGraph() *Graph {
	return &Graph{
		spo:             make(map[quad.IRI]map[quad.IRI]map[string]Triple),
		pos:             make(map[quad.IRI]map[string]map[quad.IRI]bool),
		predicateCounts: make(map[quad.IRI]int),
	}
}

// Add inserts a statement. Adding a statement that already exists is a no-op.
// Statements with an empty component are refused and counted in Rejected.
func (g *Graph) Add(subject, predicate quad.IRI, object quad.Value) error {
	triple := NewTriple(subject, predicate, object)

	g.mu.Lock()
	defer g.mu.Unlock()

	if !triple.IsValid() {
		g.rejected++
		return fmt.Errorf("%w: %s", ErrInvalidTriple, triple)
	}
	g.addUnsafe(triple)
	return nil
}

// AddTriple inserts a Triple struct into the graph.
func (g *Graph) AddTriple(triple Triple) error {
	return g.Add(triple.Subject, triple.Predicate, triple.Object)
}

// Set replaces every (subject, predicate, *) statement with the given one.
// It is used for properties that carry at most one value.
func (g *Graph) Set(subject, predicate quad.IRI, object quad.Value) error {
	triple := NewTriple(subject, predicate, object)

	g.mu.Lock()
	defer g.mu.Unlock()

	if !triple.IsValid() {
		g.rejected++
		return fmt.Errorf("%w: %s", ErrInvalidTriple, triple)
	}

	if pMap, ok := g.spo[subject]; ok {
		for _, existing := range pMap[predicate] {
			g.deleteUnsafe(existing)
		}
	}
	g.addUnsafe(triple)
	return nil
}

// BulkAdd inserts multiple triples under a single lock. Invalid triples are
// skipped and counted in Rejected.
func (g *Graph) BulkAdd(triples []Triple) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, triple := range triples {
		if !triple.IsValid() {
			g.rejected++
			continue
		}
		g.addUnsafe(triple)
	}
}

// Merge copies all triples from other into g and returns the number of new
// statements. The rejections of other carry over.
func (g *Graph) Merge(other *Graph) int {
	if other == nil || other == g {
		return 0
	}
	sourceTriples := other.All()
	sourceRejected := other.Rejected()
	previousCount := g.Len()
	g.BulkAdd(sourceTriples)

	g.mu.Lock()
	g.rejected += sourceRejected
	g.mu.Unlock()
	return g.Len() - previousCount
}

// Find returns the triples matching the pattern. Zero values are wildcards.
func (g *Graph) Find(subject, predicate quad.IRI, object quad.Value) []Triple {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.findUnsafe(subject, predicate, objectKey(object))
}

// FindPattern queries using a TriplePattern.
func (g *Graph) FindPattern(pattern TriplePattern) []Triple {
	return g.Find(pattern.Subject, pattern.Predicate, pattern.Object)
}

// Contains checks if a specific statement exists in the graph.
func (g *Graph) Contains(subject, predicate quad.IRI, object quad.Value) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.spo[subject][predicate][objectKey(object)]
	return ok
}

// Objects returns all objects of (subject, predicate, *) sorted by their
// N-Triples form.
func (g *Graph) Objects(subject, predicate quad.IRI) []quad.Value {
	matches := g.Find(subject, predicate, nil)
	objects := make([]quad.Value, 0, len(matches))
	for _, match := range matches {
		objects = append(objects, match.Object)
	}
	return objects
}

// Value returns a single object for a subject-predicate pair and whether one
// was found. With several candidates the lowest in N-Triples order is returned.
func (g *Graph) Value(subject, predicate quad.IRI) (quad.Value, bool) {
	objects := g.Objects(subject, predicate)
	if len(objects) == 0 {
		return nil, false
	}
	return objects[0], true
}

// Delete removes matching triples and returns how many were removed.
func (g *Graph) Delete(subject, predicate quad.IRI, object quad.Value) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	matches := g.findUnsafe(subject, predicate, objectKey(object))
	for _, triple := range matches {
		g.deleteUnsafe(triple)
	}
	return len(matches)
}

// Clear removes all triples from the graph.
func (g *Graph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.spo = make(map[quad.IRI]map[quad.IRI]map[string]Triple)
	g.pos = make(map[quad.IRI]map[string]map[quad.IRI]bool)
	g.predicateCounts = make(map[quad.IRI]int)
	g.count = 0
	g.rejected = 0
}

// Len returns the number of statements in the graph.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.count
}

// Rejected returns the number of statements refused for an empty component.
func (g *Graph) Rejected() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rejected
}

// IsEmpty reports whether the graph holds no statements.
func (g *Graph) IsEmpty() bool {
	return g.Len() == 0
}

// Subjects returns all unique subjects in sorted order.
func (g *Graph) Subjects() []quad.IRI {
	g.mu.RLock()
	defer g.mu.RUnlock()

	subjects := make([]quad.IRI, 0, len(g.spo))
	for subject := range g.spo {
		subjects = append(subjects, subject)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i] < subjects[j] })
	return subjects
}

// All returns all triples in deterministic N-Triples order.
func (g *Graph) All() []Triple {
	return g.Find("", "", nil)
}

// Stats returns statistics about the graph.
func (g *Graph) Stats() IndexStats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	predicateCounts := make(map[string]int, len(g.predicateCounts))
	for predicate, count := range g.predicateCounts {
		predicateCounts[string(predicate)] = count
	}

	return IndexStats{
		TotalTriples:     g.count,
		UniqueSubjects:   len(g.spo),
		UniquePredicates: len(g.pos),
		PredicateCounts:  predicateCounts,
	}
}

// String returns a string representation of the graph statistics.
func (g *Graph) String() string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return fmt.Sprintf("Graph{triples: %d, subjects: %d, predicates: %d}",
		g.count, len(g.spo), len(g.pos))
}

func (g *Graph) addUnsafe(triple Triple) {
	key := objectKey(triple.Object)
	if _, exists := g.spo[triple.Subject][triple.Predicate][key]; exists {
		return
	}

	if g.spo[triple.Subject] == nil {
		g.spo[triple.Subject] = make(map[quad.IRI]map[string]Triple)
	}
	if g.spo[triple.Subject][triple.Predicate] == nil {
		g.spo[triple.Subject][triple.Predicate] = make(map[string]Triple)
	}
	g.spo[triple.Subject][triple.Predicate][key] = triple

	if g.pos[triple.Predicate] == nil {
		g.pos[triple.Predicate] = make(map[string]map[quad.IRI]bool)
	}
	if g.pos[triple.Predicate][key] == nil {
		g.pos[triple.Predicate][key] = make(map[quad.IRI]bool)
	}
	g.pos[triple.Predicate][key][triple.Subject] = true

	g.predicateCounts[triple.Predicate]++
	g.count++
}

func (g *Graph) findUnsafe(subject, predicate quad.IRI, object string) []Triple {
	var results []Triple

	switch {
	case subject != "":
		for p, oMap := range g.spo[subject] {
			if predicate != "" && p != predicate {
				continue
			}
			for key, triple := range oMap {
				if object == "" || key == object {
					results = append(results, triple)
				}
			}
		}
	case predicate != "":
		for key, sMap := range g.pos[predicate] {
			if object != "" && key != object {
				continue
			}
			for s := range sMap {
				results = append(results, g.spo[s][predicate][key])
			}
		}
	default:
		for _, pMap := range g.spo {
			for _, oMap := range pMap {
				for key, triple := range oMap {
					if object == "" || key == object {
						results = append(results, triple)
					}
				}
			}
		}
	}

	sortTriples(results)
	return results
}

func (g *Graph) deleteUnsafe(triple Triple) {
	key := objectKey(triple.Object)
	if _, exists := g.spo[triple.Subject][triple.Predicate][key]; !exists {
		return
	}

	pMap := g.spo[triple.Subject]
	delete(pMap[triple.Predicate], key)
	if len(pMap[triple.Predicate]) == 0 {
		delete(pMap, triple.Predicate)
	}
	if len(pMap) == 0 {
		delete(g.spo, triple.Subject)
	}

	oMap := g.pos[triple.Predicate]
	delete(oMap[key], triple.Subject)
	if len(oMap[key]) == 0 {
		delete(oMap, key)
	}
	if len(oMap) == 0 {
		delete(g.pos, triple.Predicate)
	}

	g.predicateCounts[triple.Predicate]--
	if g.predicateCounts[triple.Predicate] <= 0 {
		delete(g.predicateCounts, triple.Predicate)
	}
	g.count--
}

func sortTriples(triples []Triple) {
	sort.Slice(triples, func(i, j int) bool {
		return triples[i].Key() < triples[j].Key()
	})
}
