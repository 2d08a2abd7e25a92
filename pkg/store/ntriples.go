package store

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteNTriples writes every statement of the graph as one N-Triples line,
// in deterministic order. It returns the number of lines written.
func WriteNTriples(w io.Writer, graph *Graph) (int, error) {
	buffered := bufio.NewWriter(w)
	written := 0
	for _, triple := range graph.All() {
		if _, err := buffered.WriteString(triple.NTriples() + "\n"); err != nil {
			return written, fmt.Errorf("failed to write triple: %w", err)
		}
		written++
	}
	if err := buffered.Flush(); err != nil {
		return written, fmt.Errorf("failed to flush output: %w", err)
	}
	return written, nil
}

// NTriplesString returns the graph serialized as N-Triples.
func NTriplesString(graph *Graph) string {
	var builder strings.Builder
	_, _ = WriteNTriples(&builder, graph)
	return builder.String()
}
