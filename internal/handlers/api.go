package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vato-reader/internal/catalog"
	"vato-reader/internal/content"
	"vato-reader/internal/contextutil"
	"vato-reader/internal/lastread"
	"vato-reader/internal/navigation"
	"vato-reader/internal/service"
)

// APIHandler serves the reading flow as JSON.
type APIHandler struct {
	reader service.Reader
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(reader service.Reader) *APIHandler {
	return &APIHandler{reader: reader}
}

// VatResponse is a catalog record in API responses.
type VatResponse struct {
	ID                int     `json:"id"`
	ChapterID         int     `json:"chapter_id"`
	SequenceNo        int     `json:"vat_no"`
	FileName          string  `json:"file_name"`
	DocumentName      string  `json:"document_name"`
	DisplayName       string  `json:"name"`
	DisplayNameNative string  `json:"name_native"`
	RefFile           *string `json:"ref_file,omitempty"`
}

// ChapterResponse is one chapter and its vats in reading order.
type ChapterResponse struct {
	ID   int           `json:"id"`
	Vats []VatResponse `json:"vats"`
}

// PositionResponse is the last-read position.
type PositionResponse struct {
	ChapterID string `json:"chapter_id"`
	VatNumber string `json:"vat_no"`
	FileName  string `json:"file_name"`
}

// ChaptersResponse is the landing view.
type ChaptersResponse struct {
	Chapters []ChapterResponse `json:"chapters"`
	LastRead *PositionResponse `json:"last_read,omitempty"`
}

// LinkResponse points at a neighbouring vat.
type LinkResponse struct {
	ChapterID    int         `json:"chapter_id"`
	DocumentName string      `json:"document_name"`
	Vat          VatResponse `json:"vat"`
}

// PassageResponse is one opened vat.
type PassageResponse struct {
	ChapterID    int           `json:"chapter_id"`
	DocumentName string        `json:"document_name"`
	Vat          *VatResponse  `json:"vat,omitempty"`
	Script       string        `json:"script"`
	Text         string        `json:"text"`
	Primary      string        `json:"primary"`
	Secondary    string        `json:"secondary"`
	Previous     *LinkResponse `json:"previous,omitempty"`
	Next         *LinkResponse `json:"next,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListChapters handles GET /api/chapters.
func (h *APIHandler) ListChapters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	home, err := h.reader.Home(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list chapters")
		return
	}

	resp := ChaptersResponse{Chapters: make([]ChapterResponse, 0, len(home.Chapters))}
	for _, g := range home.Chapters {
		resp.Chapters = append(resp.Chapters, toChapterResponse(g.ID, g.Vats))
	}
	if home.LastRead != nil {
		resp.LastRead = toPositionResponse(*home.LastRead)
	}

	writeJSON(w, ctx, http.StatusOK, resp)
}

// GetChapter handles GET /api/chapters/{chapterID}.
func (h *APIHandler) GetChapter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	chapterID, err := service.ParseChapterID(chi.URLParam(r, "chapterID"))
	if err != nil {
		handleServiceError(w, ctx, err, "Invalid chapter")
		return
	}

	view, err := h.reader.Chapter(ctx, chapterID)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load chapter")
		return
	}

	writeJSON(w, ctx, http.StatusOK, toChapterResponse(view.ID, view.Vats))
}

// GetVat handles GET /api/chapters/{chapterID}/vats/{vatFile}.
func (h *APIHandler) GetVat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	chapterID, err := service.ParseChapterID(chi.URLParam(r, "chapterID"))
	if err != nil {
		handleServiceError(w, ctx, err, "Invalid chapter")
		return
	}

	view, err := h.reader.Vat(ctx, service.VatRequest{
		ChapterID:    chapterID,
		DocumentName: chi.URLParam(r, "vatFile"),
		Script:       content.Script(r.URL.Query().Get("script")),
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load vat")
		return
	}

	resp := PassageResponse{
		ChapterID:    view.ChapterID,
		DocumentName: view.DocumentName,
		Script:       string(view.View.Script),
		Text:         view.View.Text(),
		Primary:      view.View.Passage.Primary,
		Secondary:    view.View.Passage.Secondary,
		Previous:     toLinkResponse(view.Previous),
		Next:         toLinkResponse(view.Next),
	}
	if view.Record != nil {
		v := toVatResponse(*view.Record)
		resp.Vat = &v
	}

	writeJSON(w, ctx, http.StatusOK, resp)
}

// GetLastRead handles GET /api/last-read. It returns 404 when nothing is stored.
func (h *APIHandler) GetLastRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pos, ok := h.reader.LastRead(ctx)
	if !ok {
		writeError(w, http.StatusNotFound, "No last-read position")
		return
	}

	writeJSON(w, ctx, http.StatusOK, toPositionResponse(pos))
}

// DeleteLastRead handles DELETE /api/last-read.
func (h *APIHandler) DeleteLastRead(w http.ResponseWriter, r *http.Request) {
	h.reader.ResetLastRead(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func toVatResponse(r catalog.VatRecord) VatResponse {
	return VatResponse{
		ID:                r.ID,
		ChapterID:         r.EffectiveChapterID(),
		SequenceNo:        r.SequenceNo,
		FileName:          r.FileName,
		DocumentName:      navigation.DocumentName(r.FileName),
		DisplayName:       r.DisplayName,
		DisplayNameNative: r.DisplayNameNative,
		RefFile:           r.RefFile,
	}
}

func toChapterResponse(id int, vats []catalog.VatRecord) ChapterResponse {
	out := ChapterResponse{ID: id, Vats: make([]VatResponse, 0, len(vats))}
	for _, v := range vats {
		out.Vats = append(out.Vats, toVatResponse(v))
	}
	return out
}

func toPositionResponse(p lastread.Position) *PositionResponse {
	return &PositionResponse{
		ChapterID: p.ChapterID,
		VatNumber: p.VatNumber,
		FileName:  p.FileName,
	}
}

func toLinkResponse(l *service.Link) *LinkResponse {
	if l == nil {
		return nil
	}
	return &LinkResponse{
		ChapterID:    l.ChapterID,
		DocumentName: l.DocumentName,
		Vat:          toVatResponse(l.Record),
	}
}

// statusFor maps service errors to HTTP status codes and client messages.
func statusFor(err error, defaultMsg string) (int, string) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, fmt.Sprintf("Validation error: %s", validationErr.Error())
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid input"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, service.ErrResourceUnavailable):
		return http.StatusBadGateway, "Content unavailable"
	default:
		return http.StatusInternalServerError, defaultMsg
	}
}

// handleServiceError maps service errors to appropriate HTTP status codes and responses.
func handleServiceError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)
	status, msg := statusFor(err, defaultMsg)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "service error", "error", err, "status", status)
	} else {
		logger.WarnContext(ctx, "request rejected", "error", err, "status", status)
	}
	writeError(w, status, msg)
}

func writeJSON(w http.ResponseWriter, ctx context.Context, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}
