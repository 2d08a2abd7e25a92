package mapping

import (
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/google/uuid"
)

// DefaultURIDomain is the domain used by NewURI.
const DefaultURIDomain = "https://foo.bar/whatever"

// MakeURI returns a new globally unique IRI below domain. A trailing slash on
// domain is dropped; non-empty version and prefix segments are inserted
// before a time-and-node based UUID.
func MakeURI(domain, version, prefix string) quad.IRI {
	domain = strings.TrimSuffix(domain, "/")

	parts := make([]string, 0, 4)
	for _, part := range []string{domain, version, prefix, newToken()} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return quad.IRI(strings.Join(parts, "/"))
}

// NewURI returns a unique IRI below DefaultURIDomain.
func NewURI() quad.IRI {
	return MakeURI(DefaultURIDomain, "", "")
}

func newToken() string {
	token, err := uuid.NewUUID()
	if err != nil {
		return uuid.NewString()
	}
	return token.String()
}
