package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/frontmatter"
)

// Parser renders note content. Raw HTML in the source is dropped.
type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.Typographer,
			&frontmatter.Extender{},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
			goldmarkhtml.WithXHTML(),
		),
	)

	return &Parser{
		md: md,
	}
}

func (p *Parser) Render(source string) (string, error) {
	var buf bytes.Buffer
	err := p.md.Convert([]byte(source), &buf)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Document is an imported markdown file split into note fields.
type Document struct {
	Title   string
	Heading string
	Body    string
}

// ParseDocument reads title and heading from frontmatter. A missing heading
// falls back to the first heading in the body; a missing title stays empty.
func (p *Parser) ParseDocument(source []byte) (*Document, error) {
	ctx := parser.NewContext()
	root := p.md.Parser().Parse(text.NewReader(source), parser.WithContext(ctx))

	meta := struct {
		Title   string `yaml:"title"`
		Heading string `yaml:"heading"`
	}{}
	data := frontmatter.Get(ctx)
	if data != nil {
		err := data.Decode(&meta)
		if err != nil {
			return nil, fmt.Errorf("invalid frontmatter: %w", err)
		}
	}

	doc := &Document{
		Title:   strings.TrimSpace(meta.Title),
		Heading: strings.TrimSpace(meta.Heading),
		Body:    strings.TrimSpace(string(stripFrontmatter(source))),
	}
	if doc.Heading == "" {
		doc.Heading = firstHeading(root, source)
	}

	return doc, nil
}

func firstHeading(root ast.Node, source []byte) string {
	var heading string
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !entering || !ok {
			return ast.WalkContinue, nil
		}

		var buf bytes.Buffer
		for c := h.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		heading = strings.TrimSpace(buf.String())
		return ast.WalkStop, nil
	})
	return heading
}

// stripFrontmatter removes a leading YAML block delimited by "---" lines.
func stripFrontmatter(source []byte) []byte {
	rest, ok := bytes.CutPrefix(source, []byte("---\n"))
	if !ok {
		rest, ok = bytes.CutPrefix(source, []byte("---\r\n"))
		if !ok {
			return source
		}
	}

	for len(rest) > 0 {
		line, next, _ := bytes.Cut(rest, []byte("\n"))
		if string(bytes.TrimRight(line, "\r")) == "---" {
			return next
		}
		rest = next
	}

	return source
}
