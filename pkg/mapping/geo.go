package mapping

import (
	"fmt"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/coolbeans/teicrm/pkg/store"
	"github.com/coolbeans/teicrm/pkg/tei"
)

// GeoOptions configures Coordinates.
type GeoOptions struct {
	// XPath locates the coordinate element. Default: ".//tei:geo[1]".
	XPath string

	// Separator splits latitude from longitude. Default: " ".
	Separator string

	// Inverse reads the coordinates as "longitude latitude".
	Inverse bool
}

func (o GeoOptions) withDefaults() GeoOptions {
	if o.XPath == "" {
		o.XPath = ".//tei:geo[1]"
	}
	if o.Separator == "" {
		o.Separator = " "
	}
	return o
}

// Coordinates maps a "latitude longitude" coordinate element to a
// well-known-text point on the subject. Missing or malformed coordinates
// yield an empty graph.
func (m *Mapper) Coordinates(subj quad.IRI, node *tei.Element, opts GeoOptions) *store.Graph {
	opts = opts.withDefaults()
	graph := store.NewGraph()

	coords, found := node.First(opts.XPath)
	if !found {
		m.debugw("no coordinates", "subject", string(subj), "xpath", opts.XPath)
		return graph
	}

	text := strings.TrimSpace(coords.Text())
	if text == "" {
		m.debugw("coordinate element without text", "subject", string(subj))
		return graph
	}

	parts := strings.Split(text, opts.Separator)
	if len(parts) != 2 {
		m.debugw("malformed coordinates", "subject", string(subj), "text", text)
		return graph
	}

	lat, lng := parts[0], parts[1]
	if opts.Inverse {
		lat, lng = lng, lat
	}
	point := fmt.Sprintf("Point(%s %s)", lng, lat)
	graph.Set(subj, store.PropPlaceIsDefinedBy, store.TypedLiteral(point, store.GeoWKTLiteral))
	return graph
}
