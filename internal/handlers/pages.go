package handlers

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"vato-reader/internal/content"
	"vato-reader/internal/contextutil"
	"vato-reader/internal/lastread"
	"vato-reader/internal/navigation"
	"vato-reader/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageFuncs = template.FuncMap{
	"document": navigation.DocumentName,
	"isLastRead": func(pos *lastread.Position, chapterID, vatNo int) bool {
		return pos != nil &&
			pos.ChapterID == strconv.Itoa(chapterID) &&
			pos.VatNumber == strconv.Itoa(vatNo)
	},
}

// parseTemplates parses the embedded page templates.
func parseTemplates() *template.Template {
	return template.Must(template.New("pages").Funcs(pageFuncs).ParseFS(templateFS, "templates/*.html"))
}

// PageHandler serves the reading flow as HTML pages.
type PageHandler struct {
	reader    service.Reader
	templates *template.Template
}

type homePage struct {
	Title    string
	Chapters []navigation.ChapterGroup
	LastRead *lastread.Position
}

type chapterPage struct {
	Title   string
	Chapter service.ChapterView
}

type vatPage struct {
	Title string
	Vat   service.VatView
}

type errorPage struct {
	Title   string
	Message string
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(reader service.Reader) *PageHandler {
	return &PageHandler{
		reader:    reader,
		templates: parseTemplates(),
	}
}

// Home renders the chapter listing with the resume card.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	home, err := h.reader.Home(ctx)
	if err != nil {
		h.renderError(w, ctx, err, "Failed to load chapters")
		return
	}

	h.render(w, ctx, http.StatusOK, "home", homePage{
		Title:    "Chapters",
		Chapters: home.Chapters,
		LastRead: home.LastRead,
	})
}

// Chapter renders one chapter's vats.
func (h *PageHandler) Chapter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	chapterID, err := service.ParseChapterID(chi.URLParam(r, "chapterID"))
	if err != nil {
		h.renderError(w, ctx, err, "Invalid chapter")
		return
	}

	view, err := h.reader.Chapter(ctx, chapterID)
	if err != nil {
		h.renderError(w, ctx, err, "Failed to load chapter")
		return
	}

	h.render(w, ctx, http.StatusOK, "chapter", chapterPage{
		Title:   "Chapter " + strconv.Itoa(view.ID),
		Chapter: view,
	})
}

// Vat renders one passage with its script toggle and neighbours.
func (h *PageHandler) Vat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	chapterID, err := service.ParseChapterID(chi.URLParam(r, "chapterID"))
	if err != nil {
		h.renderError(w, ctx, err, "Invalid chapter")
		return
	}

	view, err := h.reader.Vat(ctx, service.VatRequest{
		ChapterID:    chapterID,
		DocumentName: chi.URLParam(r, "vatFile"),
		Script:       content.Script(r.URL.Query().Get("script")),
	})
	if err != nil {
		h.renderError(w, ctx, err, "Failed to load vat")
		return
	}

	title := view.DocumentName
	if view.Record != nil {
		title = view.Record.DisplayName
	}
	h.render(w, ctx, http.StatusOK, "vat", vatPage{Title: title, Vat: view})
}

func (h *PageHandler) renderError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)
	status, msg := statusFor(err, defaultMsg)
	logger.WarnContext(ctx, "page error", "error", err, "status", status)
	h.render(w, ctx, status, "error", errorPage{Title: "Error", Message: msg})
}

// render executes into a buffer so a template failure still yields a clean 500.
func (h *PageHandler) render(w http.ResponseWriter, ctx context.Context, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to execute template", "template", name, "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
