package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_reader.go -package=mocks -mock_names=Reader=MockReader vato-reader/internal/service Reader

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"vato-reader/internal/catalog"
	"vato-reader/internal/content"
	"vato-reader/internal/contextutil"
	"vato-reader/internal/lastread"
	"vato-reader/internal/navigation"
)

// Home is the landing view: every chapter plus the resume position, if any.
type Home struct {
	Chapters []navigation.ChapterGroup
	LastRead *lastread.Position
}

// ChapterView lists the vats of one chapter in reading order.
type ChapterView struct {
	ID   int
	Vats []catalog.VatRecord
}

// VatRequest identifies the passage to open.
type VatRequest struct {
	ChapterID    int
	DocumentName string         // e.g. "vat_1_3.html"
	Script       content.Script // Empty means primary
}

// Link points at a neighbouring vat.
type Link struct {
	ChapterID    int
	DocumentName string
	Record       catalog.VatRecord
}

// VatView is everything needed to display one passage.
type VatView struct {
	ChapterID    int
	DocumentName string
	// Record is nil when the catalog has no entry for the document; the text
	// is still shown but navigation is disabled.
	Record   *catalog.VatRecord
	View     *content.View
	Previous *Link
	Next     *Link
}

// Reader is the reading flow shared by the HTTP server and the CLI.
type Reader interface {
	// Home lists all chapters and the last-read position.
	Home(ctx context.Context) (Home, error)
	// Chapter lists the vats of a chapter. An unknown chapter is empty.
	Chapter(ctx context.Context, chapterID int) (ChapterView, error)
	// Vat opens a passage and records it as the last-read position.
	Vat(ctx context.Context, req VatRequest) (VatView, error)
	// LastRead returns the last-read position.
	LastRead(ctx context.Context) (lastread.Position, bool)
	// ResetLastRead forgets the last-read position.
	ResetLastRead(ctx context.Context)
}

// reader implements Reader.
type reader struct {
	loader  catalog.Loader
	fetcher content.Fetcher
	tracker *lastread.Tracker
}

// NewReader creates a new Reader. A nil tracker disables bookmarking.
func NewReader(loader catalog.Loader, fetcher content.Fetcher, tracker *lastread.Tracker) Reader {
	if tracker == nil {
		tracker = lastread.NewTracker(nil)
	}
	return &reader{
		loader:  loader,
		fetcher: fetcher,
		tracker: tracker,
	}
}

// Home loads the catalog and reads the bookmark once.
func (s *reader) Home(ctx context.Context) (Home, error) {
	logger := contextutil.LoggerFromContext(ctx)

	records, err := s.loader.Load(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load catalog", "error", err)
		return Home{}, unavailable(err, "failed to load catalog")
	}

	home := Home{Chapters: navigation.Chapters(records)}
	if pos, ok := s.tracker.Load(ctx); ok {
		home.LastRead = &pos
	}

	logger.DebugContext(ctx, "home view built", "chapters", len(home.Chapters), "has_last_read", home.LastRead != nil)
	return home, nil
}

// Chapter loads the catalog and returns one chapter in order.
func (s *reader) Chapter(ctx context.Context, chapterID int) (ChapterView, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := validateChapterID(chapterID); err != nil {
		logger.WarnContext(ctx, "invalid chapter id", "chapter_id", chapterID)
		return ChapterView{}, err
	}

	records, err := s.loader.Load(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load catalog", "error", err)
		return ChapterView{}, unavailable(err, "failed to load catalog")
	}

	return ChapterView{
		ID:   chapterID,
		Vats: navigation.Chapter(records, chapterID),
	}, nil
}

// Vat loads the catalog and the document concurrently, extracts the passage,
// resolves its neighbours and saves the bookmark.
func (s *reader) Vat(ctx context.Context, req VatRequest) (VatView, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := validateVatRequest(&req); err != nil {
		logger.WarnContext(ctx, "invalid vat request", "error", err)
		return VatView{}, err
	}

	var (
		records  []catalog.VatRecord
		document []byte
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.loader.Load(gctx)
		if err != nil {
			return unavailable(err, "failed to load catalog")
		}
		records = r
		return nil
	})
	g.Go(func() error {
		d, err := s.fetcher.Fetch(gctx, req.ChapterID, req.DocumentName)
		if err != nil {
			return unavailable(err, "failed to fetch document")
		}
		document = d
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.ErrorContext(ctx, "failed to load vat", "chapter_id", req.ChapterID, "document", req.DocumentName, "error", err)
		return VatView{}, err
	}

	view := content.NewView(content.Extract(document))
	if req.Script == content.Secondary {
		view.Toggle()
	}

	out := VatView{
		ChapterID:    req.ChapterID,
		DocumentName: req.DocumentName,
		View:         view,
	}

	fileName := navigation.RecordFileName(req.DocumentName)
	record, ok := navigation.Find(records, req.ChapterID, fileName)
	if !ok {
		logger.WarnContext(ctx, "document has no catalog entry", "chapter_id", req.ChapterID, "document", req.DocumentName)
		return out, nil
	}
	out.Record = &record

	adj := navigation.Adjacent(records, req.ChapterID, fileName)
	out.Previous = linkTo(adj.Previous)
	out.Next = linkTo(adj.Next)

	s.tracker.Save(ctx, strconv.Itoa(req.ChapterID), strconv.Itoa(record.SequenceNo), req.DocumentName)

	logger.InfoContext(ctx, "vat opened",
		"chapter_id", req.ChapterID,
		"vat_no", record.SequenceNo,
		"script", string(view.Script),
		"has_previous", out.Previous != nil,
		"has_next", out.Next != nil,
	)
	return out, nil
}

// LastRead returns the stored bookmark.
func (s *reader) LastRead(ctx context.Context) (lastread.Position, bool) {
	return s.tracker.Load(ctx)
}

// ResetLastRead clears the stored bookmark.
func (s *reader) ResetLastRead(ctx context.Context) {
	s.tracker.Clear(ctx)
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "last-read position cleared")
}

func linkTo(r *catalog.VatRecord) *Link {
	if r == nil {
		return nil
	}
	return &Link{
		ChapterID:    r.EffectiveChapterID(),
		DocumentName: navigation.DocumentName(r.FileName),
		Record:       *r,
	}
}

func validateChapterID(chapterID int) error {
	if chapterID < 1 {
		return &ValidationError{
			Field:   "chapter_id",
			Message: "must be a positive integer",
		}
	}
	return nil
}

func validateVatRequest(req *VatRequest) error {
	if err := validateChapterID(req.ChapterID); err != nil {
		return err
	}
	req.DocumentName = strings.TrimSpace(req.DocumentName)
	if req.DocumentName == "" {
		return &ValidationError{
			Field:   "file",
			Message: "cannot be empty",
		}
	}
	script, err := content.ParseScript(string(req.Script))
	if err != nil {
		return &ValidationError{
			Field:   "script",
			Message: err.Error(),
		}
	}
	req.Script = script
	return nil
}

// ParseChapterID parses a chapter id from a path segment or argument.
func ParseChapterID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ValidationError{
			Field:   "chapter_id",
			Message: "must be a positive integer",
		}
	}
	if err := validateChapterID(id); err != nil {
		return 0, err
	}
	return id, nil
}
