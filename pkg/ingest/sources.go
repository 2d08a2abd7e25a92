package ingest

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/coolbeans/teicrm/pkg/store"
)

// ExpandSources resolves file paths and glob patterns (with "**" support)
// into a sorted list of distinct files. A pattern that matches nothing is an
// error.
func ExpandSources(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no source given")
	}

	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid source pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", pattern)
		}
		for _, match := range matches {
			cleaned := filepath.Clean(match)
			if !seen[cleaned] {
				seen[cleaned] = true
				paths = append(paths, cleaned)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// BuildFiles maps every file into one graph. Statistics are summed over all
// files; TotalTriples counts the merged graph.
func (b *Builder) BuildFiles(paths []string) (*store.Graph, *BuildStats, error) {
	graph := store.NewGraph()
	stats := &BuildStats{}

	for _, path := range paths {
		fileGraph, fileStats, err := b.BuildFile(path)
		if err != nil {
			return nil, nil, err
		}
		added := graph.Merge(fileGraph)
		stats.Add(fileStats)
		b.logger().Debugw("source mapped", "path", path, "triples", fileGraph.Len(), "new", added)
	}

	stats.TotalTriples = graph.Len()
	return graph, stats, nil
}

// BuildSources expands patterns and maps the resulting files.
func (b *Builder) BuildSources(patterns []string) (*store.Graph, *BuildStats, error) {
	paths, err := ExpandSources(patterns)
	if err != nil {
		return nil, nil, err
	}
	return b.BuildFiles(paths)
}
