package markdown

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	p := NewParser()

	html, err := p.Render("# Title\n\nSome **bold** text")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Fatalf("expected bold markup, got %q", html)
	}
	if !strings.Contains(html, "<h1") {
		t.Fatalf("expected heading markup, got %q", html)
	}
}

func TestRenderDropsRawHTML(t *testing.T) {
	p := NewParser()

	html, err := p.Render("hello <script>alert(1)</script>")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("expected raw html to be dropped, got %q", html)
	}
}

func TestParseDocument(t *testing.T) {
	p := NewParser()

	t.Run("frontmatter fields", func(t *testing.T) {
		src := "---\ntitle: Weekly review\nheading: What went well\n---\n\nShipped the thing.\n"

		doc, err := p.ParseDocument([]byte(src))
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if doc.Title != "Weekly review" {
			t.Fatalf("expected title %q, got %q", "Weekly review", doc.Title)
		}
		if doc.Heading != "What went well" {
			t.Fatalf("expected heading %q, got %q", "What went well", doc.Heading)
		}
		if doc.Body != "Shipped the thing." {
			t.Fatalf("expected body without frontmatter, got %q", doc.Body)
		}
	})

	t.Run("heading falls back to first heading", func(t *testing.T) {
		src := "---\ntitle: Ideas\n---\n## Side projects\n\n- one\n"

		doc, err := p.ParseDocument([]byte(src))
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if doc.Heading != "Side projects" {
			t.Fatalf("expected heading %q, got %q", "Side projects", doc.Heading)
		}
	})

	t.Run("no frontmatter", func(t *testing.T) {
		src := "Just text."

		doc, err := p.ParseDocument([]byte(src))
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if doc.Title != "" || doc.Heading != "" {
			t.Fatalf("expected empty title and heading, got %q/%q", doc.Title, doc.Heading)
		}
		if doc.Body != "Just text." {
			t.Fatalf("expected body %q, got %q", "Just text.", doc.Body)
		}
	})
}
