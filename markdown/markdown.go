// Package markdown renders post content to HTML as a templ component.
package markdown

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Raw HTML in posts is dropped and unsafe link schemes are blanked; goldmark
// only passes them through with html.WithUnsafe, which is never set here.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Footnote),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// Markdown returns a templ.Component that renders content as HTML.
func Markdown(content []byte) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return RenderMarkdown(w, content)
	})
}

// RenderMarkdown writes the HTML representation of src to w. Output is
// buffered so nothing is written if conversion fails.
func RenderMarkdown(w io.Writer, src []byte) error {
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
