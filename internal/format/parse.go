package format

import (
	"strings"

	"golang.org/x/net/html"
)

// ParseField recovers the original content and metadata from a formatted
// fragment. Input without data-ri attributes is classified as plain text and
// returned untouched.
func ParseField(fragment string) Field {
	node, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return Field{Type: TypePlain, Content: fragment}
	}

	tagged := findTagged(node)
	if tagged == nil {
		return Field{Type: TypePlain, Content: fragment}
	}

	field := Field{Type: attr(tagged, "data-ri-type")}
	field.Lang = attr(tagged, "data-ri-lang")
	field.Theme = attr(tagged, "data-ri-theme")

	switch field.Type {
	case TypeImage:
		field.Content = attr(tagged, "src")
	default:
		if decoded, ok := decodeContent(attr(tagged, "data-ri-content")); ok {
			field.Content = decoded
		}
	}
	return field
}

func findTagged(node *html.Node) *html.Node {
	if node.Type == html.ElementNode && attr(node, "data-ri-type") != "" {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findTagged(child); found != nil {
			return found
		}
	}
	return nil
}

func attr(node *html.Node, name string) string {
	for _, a := range node.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
