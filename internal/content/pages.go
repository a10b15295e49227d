// Package content serves the storefront's static pages (shipping policy,
// returns policy, about) from a YAML source, rendered as sanitized HTML.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"os"
	"sort"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no page exists for a slug.
var ErrNotFound = errors.New("content: page not found")

// Page is one static content page.
type Page struct {
	Slug  string `yaml:"slug"`
	Title string `yaml:"title"`
	// Body is markdown in the source file; HTML carries the rendered,
	// sanitized result.
	Body string        `yaml:"body"`
	HTML template.HTML `yaml:"-"`
}

// Library holds the loaded pages keyed by slug.
type Library struct {
	pages map[string]Page
}

var sanitizer = bluemonday.UGCPolicy()

// Load reads pages from the YAML file at path. An empty path or a missing
// file falls back to the built-in pages so the storefront always has its
// policy pages.
func Load(path string) (*Library, error) {
	raw := fallbackPages
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// keep fallbacks
		case err != nil:
			return nil, fmt.Errorf("content: read %s: %w", path, err)
		default:
			raw = data
		}
	}

	var doc struct {
		Pages []Page `yaml:"pages"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("content: parse pages: %w", err)
	}

	lib := &Library{pages: make(map[string]Page, len(doc.Pages))}
	for _, page := range doc.Pages {
		if page.Slug == "" {
			continue
		}
		rendered, err := renderMarkdown(page.Body)
		if err != nil {
			return nil, fmt.Errorf("content: render page %q: %w", page.Slug, err)
		}
		page.HTML = rendered
		lib.pages[page.Slug] = page
	}
	return lib, nil
}

// Get returns the page for slug.
func (l *Library) Get(slug string) (Page, error) {
	page, ok := l.pages[slug]
	if !ok {
		return Page{}, fmt.Errorf("%w: %q", ErrNotFound, slug)
	}
	return page, nil
}

// Slugs lists the available page slugs, sorted.
func (l *Library) Slugs() []string {
	slugs := make([]string, 0, len(l.pages))
	for slug := range l.pages {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// RenderMarkdown converts untrusted markdown (product descriptions, page
// bodies) to sanitized HTML.
func RenderMarkdown(source string) (template.HTML, error) {
	return renderMarkdown(source)
}

func renderMarkdown(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes())), nil
}

var fallbackPages = []byte(`pages:
  - slug: shipping
    title: Shipping Policy
    body: |
      ## Shipping

      Orders over **₹500** ship free. Everything else carries a flat ₹50 fee.

      Delivery stages are tracked on the order page: ordered, processed,
      shipped, out for delivery, delivered.
  - slug: returns
    title: Returns Policy
    body: |
      ## Returns

      Delivered orders can be returned within **7 days**. Open the order in
      your account and submit a return request with the reason.
  - slug: about
    title: About BuySphere
    body: |
      BuySphere is a demo storefront. The catalog, carts, and orders live in
      the storefront API; this site is its browser.
`)
