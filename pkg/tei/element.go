// Package tei provides a read-only view of parsed TEI documents.
//
// An Element wraps an xmlquery node and answers the questions the mappers
// ask of TEI markup: tag name, plain and namespaced attributes, leading text,
// child elements and XPath queries. XPath expressions are resolved against a
// fixed namespace table, so "tei:persName" always means the TEI P5 element
// regardless of the prefixes used in the source document.
package tei

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	lru "github.com/hashicorp/golang-lru/v2"
)

// exprCacheSize bounds the compiled expressions kept per document.
const exprCacheSize = 256

// Namespace URIs used by TEI documents.
const (
	// NamespaceTEI is the TEI P5 namespace.
	NamespaceTEI = "http://www.tei-c.org/ns/1.0"

	// NamespaceXML is the reserved XML namespace (xml:id, xml:lang).
	NamespaceXML = "http://www.w3.org/XML/1998/namespace"
)

// Namespaces maps XPath prefixes to namespace URIs.
type Namespaces map[string]string

// DefaultNamespaces returns the namespace table used for every query.
func DefaultNamespaces() Namespaces {
	return Namespaces{
		"tei": NamespaceTEI,
		"xml": NamespaceXML,
	}
}

// Element is an immutable handle into a parsed document tree.
type Element struct {
	node       *xmlquery.Node
	namespaces Namespaces
	cache      *lru.Cache[string, *xpath.Expr]
}

// Parse reads an XML document and returns its root element.
func Parse(r io.Reader) (*Element, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	root := firstElement(doc)
	if root == nil {
		return nil, fmt.Errorf("document has no root element")
	}
	return Wrap(root, DefaultNamespaces()), nil
}

// ParseString parses an XML document held in a string.
func ParseString(document string) (*Element, error) {
	return Parse(strings.NewReader(document))
}

// ParseFile parses the XML document at path.
func ParseFile(path string) (*Element, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	root, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return root, nil
}

// Wrap returns an Element for an existing xmlquery element node.
func Wrap(node *xmlquery.Node, namespaces Namespaces) *Element {
	if namespaces == nil {
		namespaces = DefaultNamespaces()
	}
	cache, _ := lru.New[string, *xpath.Expr](exprCacheSize)
	return &Element{
		node:       node,
		namespaces: namespaces,
		cache:      cache,
	}
}

// Node returns the underlying xmlquery node.
func (e *Element) Node() *xmlquery.Node {
	return e.node
}

// Tag returns the local name of the element, without prefix or namespace.
func (e *Element) Tag() string {
	return e.node.Data
}

// Namespace returns the namespace URI of the element.
func (e *Element) Namespace() string {
	return e.node.NamespaceURI
}

// Attr returns the value of an attribute without namespace.
func (e *Element) Attr(name string) (string, bool) {
	for _, attr := range e.node.Attr {
		if attr.Name.Local == name && attr.Name.Space == "" && attr.NamespaceURI == "" {
			return attr.Value, true
		}
	}
	return "", false
}

// Get returns the value of an attribute without namespace, or "".
func (e *Element) Get(name string) string {
	value, _ := e.Attr(name)
	return value
}

// AttrNS returns the value of the attribute with the given namespace URI and
// local name.
func (e *Element) AttrNS(namespace, local string) (string, bool) {
	prefix := e.prefixFor(namespace)
	for _, attr := range e.node.Attr {
		if attr.Name.Local != local {
			continue
		}
		if attr.NamespaceURI == namespace || attr.Name.Space == namespace ||
			(prefix != "" && attr.Name.Space == prefix) {
			return attr.Value, true
		}
	}
	return "", false
}

// XMLID returns the xml:id attribute.
func (e *Element) XMLID() (string, bool) {
	return e.AttrNS(NamespaceXML, "id")
}

// Lang returns the xml:lang attribute.
func (e *Element) Lang() (string, bool) {
	return e.AttrNS(NamespaceXML, "lang")
}

// LangOr returns the xml:lang attribute or fallback when it is absent.
func (e *Element) LangOr(fallback string) string {
	if lang, ok := e.Lang(); ok {
		return lang
	}
	return fallback
}

// Text returns the character data preceding the first child node that is not
// text, the way lxml exposes element.text.
func (e *Element) Text() string {
	var builder strings.Builder
	for child := e.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.TextNode && child.Type != xmlquery.CharDataNode {
			break
		}
		builder.WriteString(child.Data)
	}
	return builder.String()
}

// TextNodes returns every descendant text node in document order.
func (e *Element) TextNodes() []string {
	var texts []string
	var walk func(node *xmlquery.Node)
	walk = func(node *xmlquery.Node) {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			switch child.Type {
			case xmlquery.TextNode, xmlquery.CharDataNode:
				texts = append(texts, child.Data)
			case xmlquery.ElementNode:
				walk(child)
			}
		}
	}
	walk(e.node)
	return texts
}

// AllText joins every descendant text node with a single space.
func (e *Element) AllText() string {
	return strings.Join(e.TextNodes(), " ")
}

// Children returns the child elements in document order.
func (e *Element) Children() []*Element {
	var children []*Element
	for child := e.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			children = append(children, e.derive(child))
		}
	}
	return children
}

// ChildCount returns the number of child elements.
func (e *Element) ChildCount() int {
	count := 0
	for child := e.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			count++
		}
	}
	return count
}

// Query evaluates expr relative to the element and returns the matching
// elements in document order. Non-element results are ignored.
func (e *Element) Query(expr string) ([]*Element, error) {
	compiled, err := e.compile(expr)
	if err != nil {
		return nil, err
	}

	var elements []*Element
	for _, node := range xmlquery.QuerySelectorAll(e.node, compiled) {
		if node.Type == xmlquery.ElementNode {
			elements = append(elements, e.derive(node))
		}
	}
	return elements, nil
}

// MustQuery is Query for expressions known to be valid. An invalid
// expression yields no elements.
func (e *Element) MustQuery(expr string) []*Element {
	elements, _ := e.Query(expr)
	return elements
}

// First returns the first element matching expr.
func (e *Element) First(expr string) (*Element, bool) {
	elements := e.MustQuery(expr)
	if len(elements) == 0 {
		return nil, false
	}
	return elements[0], true
}

// QueryStrings evaluates expr and returns the string value of every result:
// attribute values, text node contents or element text. Scalar results are
// returned as a single value.
func (e *Element) QueryStrings(expr string) ([]string, error) {
	compiled, err := e.compile(expr)
	if err != nil {
		return nil, err
	}

	switch result := compiled.Evaluate(xmlquery.CreateXPathNavigator(e.node)).(type) {
	case *xpath.NodeIterator:
		var values []string
		for result.MoveNext() {
			values = append(values, result.Current().Value())
		}
		return values, nil
	case string:
		return []string{result}, nil
	case float64:
		return []string{fmt.Sprint(result)}, nil
	case bool:
		return []string{fmt.Sprint(result)}, nil
	default:
		return nil, nil
	}
}

// FirstString returns the first string value produced by expr.
func (e *Element) FirstString(expr string) (string, bool) {
	values, err := e.QueryStrings(expr)
	if err != nil || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func (e *Element) compile(expr string) (*xpath.Expr, error) {
	if compiled, ok := e.cache.Get(expr); ok {
		return compiled, nil
	}
	compiled, err := xpath.CompileWithNS(expr, e.namespaces)
	if err != nil {
		return nil, fmt.Errorf("invalid xpath %q: %w", expr, err)
	}
	e.cache.Add(expr, compiled)
	return compiled, nil
}

func (e *Element) derive(node *xmlquery.Node) *Element {
	return &Element{node: node, namespaces: e.namespaces, cache: e.cache}
}

func (e *Element) prefixFor(namespace string) string {
	for prefix, uri := range e.namespaces {
		if uri == namespace {
			return prefix
		}
	}
	return ""
}

func firstElement(node *xmlquery.Node) *xmlquery.Node {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return child
		}
	}
	return nil
}
