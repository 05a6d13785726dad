package handlers

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"vato-reader/internal/contextutil"
)

//go:embed about.md
var aboutMarkdown []byte

// AboutHandler serves the about page rendered from embedded markdown.
type AboutHandler struct {
	templates *template.Template
	page      aboutPage
}

type aboutPage struct {
	Title   string
	Content template.HTML
}

// NewAboutHandler renders the about page once.
func NewAboutHandler() (*AboutHandler, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	html, err := renderMarkdown(md, aboutMarkdown)
	if err != nil {
		return nil, err
	}

	return &AboutHandler{
		templates: parseTemplates(),
		page: aboutPage{
			Title:   "About",
			Content: template.HTML(html),
		},
	}, nil
}

// ServeHTTP writes the rendered about page.
func (h *AboutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, "about", h.page); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to execute about template", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func renderMarkdown(md goldmark.Markdown, src []byte) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
