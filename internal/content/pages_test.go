package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFallbackPages(t *testing.T) {
	lib, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	for _, slug := range []string{"shipping", "returns", "about"} {
		page, err := lib.Get(slug)
		if err != nil {
			t.Fatalf("Get(%q) error: %v", slug, err)
		}
		if page.Title == "" || page.HTML == "" {
			t.Fatalf("page %q missing content: %+v", slug, page)
		}
	}
}

func TestLoadMissingFileUsesFallbacks(t *testing.T) {
	lib, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(lib.Slugs()) == 0 {
		t.Fatalf("expected fallback pages")
	}
}

func TestLoadCustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pages.yaml")
	src := `pages:
  - slug: faq
    title: FAQ
    body: |
      ## Questions

      **Bold** answers.
`
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	lib, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	page, err := lib.Get("faq")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	html := string(page.HTML)
	if !strings.Contains(html, "<h2") || !strings.Contains(html, "<strong>Bold</strong>") {
		t.Fatalf("markdown not rendered: %s", html)
	}
}

func TestGetUnknownSlug(t *testing.T) {
	lib, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if _, err := lib.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
}

func TestRenderMarkdownSanitizesScripts(t *testing.T) {
	html, err := RenderMarkdown("hello <script>alert(1)</script> *world*")
	if err != nil {
		t.Fatalf("RenderMarkdown error: %v", err)
	}
	if strings.Contains(string(html), "<script") {
		t.Fatalf("script tags must be stripped: %s", html)
	}
	if !strings.Contains(string(html), "<em>world</em>") {
		t.Fatalf("markdown emphasis lost: %s", html)
	}
}
