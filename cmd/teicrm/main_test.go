package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/coolbeans/teicrm/pkg/config"
	"github.com/coolbeans/teicrm/pkg/ingest"
	"github.com/coolbeans/teicrm/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTEI = `<TEI xmlns="http://www.tei-c.org/ns/1.0"><text><body>
  <listPerson>
    <person xml:id="p1"><persName><forename>Anna</forename><surname>Berg</surname></persName></person>
    <person><persName>Nobody</persName></person>
  </listPerson>
  <listPlace>
    <place xml:id="pl1"><placeName>Wien</placeName><location><geo>48.2 16.3</geo></location></place>
  </listPlace>
</body></text></TEI>`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTEI), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestConvert_Stdout(t *testing.T) {
	source := writeSample(t)

	stdout, stderr, err := execute(t, "convert", "--source", source, "--domain", "https://data.example.org/", "--stats")
	require.NoError(t, err)

	assert.Contains(t, stdout, "<https://data.example.org/p1> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.cidoc-crm.org/cidoc-crm/E21_Person> .")
	assert.Contains(t, stdout, `"Point(16.3 48.2)"^^<http://www.opengis.net/ont/geosparql#wktLiteral>`)
	assert.Contains(t, stdout, "<https://data.example.org/p1> <http://www.cidoc-crm.org/cidoc-crm/P1_is_identified_by> <https://data.example.org/p1/identifier/p1> .")
	assert.Contains(t, stdout, "<https://data.example.org/p1/appellation/0> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> ")
	assert.NotContains(t, stdout, "<<")
	for _, line := range strings.Split(strings.TrimSpace(stdout), "\n") {
		assert.True(t, strings.HasSuffix(line, " ."), line)
	}

	assert.Contains(t, stderr, "Persons:          1")
	assert.Contains(t, stderr, "Skipped:          1")
	assert.Contains(t, stderr, "Rejected:         0")
}

func TestConvert_OutputFile(t *testing.T) {
	source := writeSample(t)
	output := filepath.Join(t.TempDir(), "graph.nt")

	stdout, _, err := execute(t, "convert", "-s", source, "-o", output)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<https://example.org/pl1>")
}

func TestConvert_Errors(t *testing.T) {
	source := writeSample(t)

	testCases := []struct {
		name string
		args []string
	}{
		{"missing source", []string{"convert"}},
		{"unmatched source", []string{"convert", "--source", filepath.Join(t.TempDir(), "*.xml")}},
		{"strict", []string{"convert", "--source", source, "--strict"}},
		{"invalid domain", []string{"convert", "--source", source, "--domain", "nope"}},
		{"missing config", []string{"convert", "--source", source, "--config", filepath.Join(t.TempDir(), "none.yaml")}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, _, err := execute(t, testCase.args...)
			assert.Error(t, err)
		})
	}
}

func TestConvert_ConfigFile(t *testing.T) {
	source := writeSample(t)
	configPath := filepath.Join(t.TempDir(), "teicrm.yaml")
	cfg := config.DefaultConfig()
	cfg.Domain = "https://configured.example.org/"
	require.NoError(t, cfg.SaveToFile(configPath))

	stdout, _, err := execute(t, "convert", "--source", source, "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "<https://configured.example.org/p1>")
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teicrm.yaml")

	stdout, _, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, path)

	loaded, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), loaded)

	_, _, err = execute(t, "config", "init", path)
	assert.Error(t, err)
	_, _, err = execute(t, "config", "init", path, "--force")
	assert.NoError(t, err)

	stdout, _, err = execute(t, "config", "show", "--config", path, "--lang", "en")
	require.NoError(t, err)
	assert.Contains(t, stdout, "default_lang: en")
	assert.Contains(t, stdout, "domain: https://example.org/")
}

func TestWatch_RequiresOutput(t *testing.T) {
	_, _, err := execute(t, "watch", "--source", writeSample(t))
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, version)
}

func TestPrintStats(t *testing.T) {
	var buffer bytes.Buffer
	printStats(&buffer, &ingest.BuildStats{Persons: 2, Places: 1, TotalTriples: 40}, nil)

	assert.Contains(t, buffer.String(), "Total triples:    40")
	assert.Contains(t, buffer.String(), "Persons:          2")
	assert.NotContains(t, buffer.String(), "Predicates:")
}

func TestPrintStats_Predicates(t *testing.T) {
	graph := store.NewGraph()
	subject := quad.IRI("https://example.org/p1")
	graph.Add(subject, store.RDFType, store.ClassPerson)
	graph.Add(subject, store.RDFSLabel, quad.String("a"))
	graph.Add(subject, store.RDFSLabel, quad.String("b"))

	var buffer bytes.Buffer
	printStats(&buffer, &ingest.BuildStats{Persons: 1, TotalTriples: 3}, graph)

	output := buffer.String()
	require.Contains(t, output, "Predicates:")
	assert.Contains(t, output, "rdfs:label")
	assert.Contains(t, output, "rdf:type")
	assert.Less(t, strings.Index(output, "rdfs:label"), strings.Index(output, "rdf:type"))
}
