package web

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Parse reads an HTML document
func Parse(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// Text returns the trimmed text of the first element matching sel
func Text(html, sel string) string {
	doc, err := Parse(html)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find(sel).First().Text())
}

// Attr returns attr of the first element matching sel
func Attr(html, sel, attr string) string {
	doc, err := Parse(html)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find(sel).First().AttrOr(attr, ""))
}

// ContainsAny reports whether the visible text of html contains one of phrases, ignoring case
func ContainsAny(html string, phrases ...string) bool {
	doc, err := Parse(html)
	if err != nil {
		return false
	}
	text := strings.ToLower(doc.Find("body").Text())
	for _, p := range phrases {
		if strings.Contains(text, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// Resolve makes ref absolute against base
func Resolve(base, ref string) string {
	if ref == "" {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
