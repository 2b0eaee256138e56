package extractor

import (
	"bytes"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// parsedPage is the text view of a fetched HTML page.
type parsedPage struct {
	Title     string
	Text      string
	Documents []string
}

// attachmentExts are link targets treated as tender documents.
var attachmentExts = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
	".zip":  true,
}

func parseHTML(body []byte, baseURL string) (*parsedPage, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	title := firstElementText(doc, atom.Title)
	if title == "" {
		title = firstElementText(doc, atom.H1)
	}

	return &parsedPage{
		Title:     title,
		Text:      collectVisibleText(doc),
		Documents: collectDocumentLinks(doc, baseURL),
	}, nil
}

// firstElementText returns the trimmed text of the first element of type a.
// Later elements of the same type, such as inline SVG titles, are ignored.
func firstElementText(n *html.Node, a atom.Atom) string {
	if el := findFirst(n, a); el != nil {
		return collectVisibleText(el)
	}
	return ""
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if el := findFirst(c, a); el != nil {
			return el
		}
	}
	return nil
}

// collectVisibleText joins every non-empty trimmed text node with a single
// space, skipping script, style and noscript content.
func collectVisibleText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Template:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// collectDocumentLinks returns absolute attachment URLs in page order.
func collectDocumentLinks(doc *html.Node, baseURL string) []string {
	base, _ := url.Parse(baseURL)
	seen := make(map[string]bool)
	links := []string{}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.A {
			for _, a := range n.Attr {
				if a.Key != "href" {
					continue
				}
				ref, err := url.Parse(strings.TrimSpace(a.Val))
				if err != nil {
					continue
				}
				if !attachmentExts[strings.ToLower(path.Ext(ref.Path))] {
					continue
				}
				if base != nil {
					ref = base.ResolveReference(ref)
				}
				abs := ref.String()
				if !seen[abs] {
					seen[abs] = true
					links = append(links, abs)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links
}
