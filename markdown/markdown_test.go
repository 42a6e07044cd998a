package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func render(t *testing.T, input string) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	if err := Markdown([]byte(input)).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("parse rendered html: %v", err)
	}
	return doc
}

func TestMarkdownHeadings(t *testing.T) {
	tests := []struct {
		input string
		tag   string
		id    string
		text  string
	}{
		{"# Heading One", "h1", "heading-one", "Heading One"},
		{"## Heading Two", "h2", "heading-two", "Heading Two"},
		{"### Heading Three", "h3", "heading-three", "Heading Three"},
	}
	for _, tt := range tests {
		doc := render(t, tt.input)
		sel := doc.Find(tt.tag)
		if sel.Length() != 1 {
			t.Errorf("%q: found %d <%s>, want 1", tt.input, sel.Length(), tt.tag)
			continue
		}
		if got := sel.Text(); got != tt.text {
			t.Errorf("%q: text = %q, want %q", tt.input, got, tt.text)
		}
		if id, _ := sel.Attr("id"); id != tt.id {
			t.Errorf("%q: id = %q, want %q", tt.input, id, tt.id)
		}
	}
}

func TestMarkdownCodeBlockWithLanguage(t *testing.T) {
	doc := render(t, "```go\nfmt.Println(\"hello\")\n```")
	code := doc.Find("pre > code")
	if code.Length() != 1 {
		t.Fatalf("expected one code block, got %d", code.Length())
	}
	if !code.HasClass("language-go") {
		t.Errorf("code block should have language-go class")
	}
	if !strings.Contains(code.Text(), `fmt.Println("hello")`) {
		t.Errorf("code block text = %q", code.Text())
	}
}

func TestMarkdownLists(t *testing.T) {
	doc := render(t, "- one\n- two\n\n1. first\n2. second")
	if n := doc.Find("ul > li").Length(); n != 2 {
		t.Errorf("ul items = %d, want 2", n)
	}
	if n := doc.Find("ol > li").Length(); n != 2 {
		t.Errorf("ol items = %d, want 2", n)
	}
}

func TestMarkdownTable(t *testing.T) {
	doc := render(t, "| a | b |\n|---|---|\n| 1 | 2 |")
	if n := doc.Find("table thead th").Length(); n != 2 {
		t.Errorf("header cells = %d, want 2", n)
	}
	if n := doc.Find("table tbody td").Length(); n != 2 {
		t.Errorf("body cells = %d, want 2", n)
	}
}

func TestMarkdownInline(t *testing.T) {
	doc := render(t, "Some **bold**, *italic* and `code` with [a link](https://example.com).")
	if got := doc.Find("strong").Text(); got != "bold" {
		t.Errorf("strong = %q", got)
	}
	if got := doc.Find("em").Text(); got != "italic" {
		t.Errorf("em = %q", got)
	}
	if got := doc.Find("p > code").Text(); got != "code" {
		t.Errorf("code = %q", got)
	}
	if href, _ := doc.Find("a").Attr("href"); href != "https://example.com" {
		t.Errorf("href = %q", href)
	}
}

func TestMarkdownDropsRawHTML(t *testing.T) {
	doc := render(t, "before\n\n<script>alert(1)</script>\n\nafter")
	if doc.Find("script").Length() != 0 {
		t.Errorf("raw <script> should not be rendered")
	}
}

func TestMarkdownBlanksUnsafeLinks(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderMarkdown(&buf, []byte("[x](javascript:alert(1))")); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}
	if strings.Contains(buf.String(), "javascript:") {
		t.Errorf("unsafe scheme leaked into output: %q", buf.String())
	}
}
