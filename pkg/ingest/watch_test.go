package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coolbeans/teicrm/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type buildResult struct {
	graph *store.Graph
	stats *BuildStats
	err   error
}

func TestBuilder_Watch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "persons.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDocument), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan buildResult, 10)
	done := make(chan error, 1)
	go func() {
		done <- newTestBuilder(false).Watch(ctx, []string{path}, WatchOptions{Debounce: 50 * time.Millisecond},
			func(graph *store.Graph, stats *BuildStats, err error) {
				results <- buildResult{graph, stats, err}
			})
	}()

	initial := waitForBuild(t, results)
	require.NoError(t, initial.err)
	assert.Equal(t, 1, initial.stats.Persons)

	updated := strings.Replace(sampleDocument, `<person>`, `<person xml:id="p2">`, 1)
	require.NoError(t, os.WriteFile(path, []byte(updated), 0644))

	rebuilt := waitForBuild(t, results)
	require.NoError(t, rebuilt.err)
	assert.Equal(t, 2, rebuilt.stats.Persons)
	assert.Equal(t, 0, rebuilt.stats.Skipped)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestBuilder_WatchNewDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "persons.xml"), []byte(sampleDocument), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan buildResult, 20)
	done := make(chan error, 1)
	pattern := filepath.Join(dir, "**", "*.xml")
	go func() {
		done <- newTestBuilder(false).Watch(ctx, []string{pattern}, WatchOptions{Debounce: 50 * time.Millisecond},
			func(graph *store.Graph, stats *BuildStats, err error) {
				results <- buildResult{graph, stats, err}
			})
	}()

	initial := waitForBuild(t, results)
	require.NoError(t, initial.err)
	assert.Equal(t, 1, initial.stats.Persons)

	nested := filepath.Join(dir, "nested", "deeper")
	require.NoError(t, os.MkdirAll(nested, 0755))
	time.Sleep(100 * time.Millisecond)
	extra := `<TEI xmlns="http://www.tei-c.org/ns/1.0"><text><body><listPerson>
  <person xml:id="q1"><persName>Quist</persName></person>
</listPerson></body></text></TEI>`
	require.NoError(t, os.WriteFile(filepath.Join(nested, "more.xml"), []byte(extra), 0644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case result := <-results:
			if result.err == nil && result.stats.Persons == 2 {
				assert.True(t, result.graph.Contains(testDomain+"q1", store.RDFType, store.ClassPerson))
				cancel()
				assert.NoError(t, <-done)
				return
			}
		case <-deadline:
			t.Fatal("file in new directory was not picked up")
		}
	}
}

func TestPatternBase(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name     string
		pattern  string
		expected string
	}{
		{"double star", filepath.Join(dir, "**", "*.xml"), dir},
		{"plain file", filepath.Join(dir, "persons.xml"), dir},
		{"missing base", filepath.Join(dir, "missing", "*.xml"), ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, patternBase(testCase.pattern))
		})
	}
}

func TestBuilder_WatchNoSources(t *testing.T) {
	err := newTestBuilder(false).Watch(context.Background(), []string{filepath.Join(t.TempDir(), "*.xml")},
		WatchOptions{}, func(*store.Graph, *BuildStats, error) {})
	assert.Error(t, err)
}

func waitForBuild(t *testing.T, results <-chan buildResult) buildResult {
	t.Helper()
	select {
	case result := <-results:
		return result
	case <-time.After(5 * time.Second):
		t.Fatal("no build within timeout")
		return buildResult{}
	}
}
