package scanner

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Parser extracts image references from HTML content.
//
// Design decision: We use golang.org/x/net/html for parsing rather than
// regex because:
//  1. It correctly handles malformed HTML common on the web
//  2. Provides a proper DOM-like structure
//  3. More maintainable than complex regex patterns
type Parser struct {
	// baseURL is the URL of the page being parsed, used for resolving
	// relative image sources.
	baseURL *url.URL
}

// NewParser creates a new HTML parser with the given base URL.
// The base URL is used to resolve relative image sources.
func NewParser(baseURL string) (*Parser, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Parser{baseURL: u}, nil
}

// ExtractImages parses HTML content and returns the absolute URLs of all
// image references, in document order. Covered references are <img src>
// and favicon <link> elements. Images without a resolvable address
// (empty src, javascript:, data: URIs, unparsable values) are skipped
// rather than reported.
func (p *Parser) ExtractImages(content io.Reader) ([]string, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	images := make([]string, 0)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "img":
				if src := getAttr(n, "src"); src != "" {
					if resolved := p.resolveURL(src); resolved != "" {
						images = append(images, resolved)
					}
				}
			case "link":
				// Favicons break pages the same way inline images do.
				rel := strings.ToLower(getAttr(n, "rel"))
				if rel == "icon" || rel == "shortcut icon" {
					if href := getAttr(n, "href"); href != "" {
						if resolved := p.resolveURL(href); resolved != "" {
							images = append(images, resolved)
						}
					}
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)

	return images, nil
}

// resolveURL resolves a possibly-relative image source against the base URL.
// It returns the empty string for sources that cannot point at a fetchable
// image.
func (p *Parser) resolveURL(src string) string {
	src = strings.TrimSpace(src)
	if src == "" ||
		strings.HasPrefix(src, "javascript:") ||
		strings.HasPrefix(src, "data:") ||
		src == "#" {
		return ""
	}

	u, err := url.Parse(src)
	if err != nil {
		return ""
	}

	resolved := p.baseURL.ResolveReference(u)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
