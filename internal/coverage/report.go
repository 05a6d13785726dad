package coverage

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"vato-reader/internal/catalog"
	"vato-reader/internal/content"
	"vato-reader/internal/contextutil"
	"vato-reader/internal/navigation"
)

// DefaultWorkers bounds concurrent document reads during a check.
const DefaultWorkers = 8

// Report describes how well the catalog and the documents agree.
type Report struct {
	// Records is the number of catalog records.
	Records int `json:"records"`
	// Documents is the number of documents found on disk.
	Documents int `json:"documents"`
	// Missing lists records whose document does not exist.
	Missing []catalog.VatRecord `json:"missing,omitempty"`
	// Orphans lists documents no record points at.
	Orphans []ScannedDocument `json:"orphans,omitempty"`
	// Incomplete lists documents lacking one of the two text regions.
	Incomplete []ScannedDocument `json:"incomplete,omitempty"`
}

// OK reports whether every record has a complete document and nothing is orphaned.
func (r *Report) OK() bool {
	return len(r.Missing) == 0 && len(r.Orphans) == 0 && len(r.Incomplete) == 0
}

type docKey struct {
	chapterID int
	name      string
}

// Check matches records against docs and reads every matched document through
// fetcher to confirm both regions are present. workers < 1 uses DefaultWorkers.
func Check(ctx context.Context, records []catalog.VatRecord, docs []ScannedDocument, fetcher content.Fetcher, workers int) (*Report, error) {
	logger := contextutil.LoggerFromContext(ctx)
	if workers < 1 {
		workers = DefaultWorkers
	}

	report := &Report{
		Records:   len(records),
		Documents: len(docs),
	}

	onDisk := make(map[docKey]ScannedDocument, len(docs))
	for _, d := range docs {
		onDisk[docKey{d.ChapterID, d.Name}] = d
	}

	referenced := make(map[docKey]bool, len(records))
	var matched []ScannedDocument
	for _, r := range records {
		key := docKey{r.EffectiveChapterID(), navigation.DocumentName(r.FileName)}
		if referenced[key] {
			continue
		}
		referenced[key] = true
		if d, ok := onDisk[key]; ok {
			matched = append(matched, d)
		} else {
			report.Missing = append(report.Missing, r)
		}
	}
	for _, d := range docs {
		if !referenced[docKey{d.ChapterID, d.Name}] {
			report.Orphans = append(report.Orphans, d)
		}
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, d := range matched {
		g.Go(func() error {
			body, err := fetcher.Fetch(gctx, d.ChapterID, d.Name)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", d.RelPath, err)
			}
			p := content.Extract(body)
			if p.Primary == "" || p.Secondary == "" {
				mu.Lock()
				report.Incomplete = append(report.Incomplete, d)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(report.Missing, func(a, b catalog.VatRecord) int {
		return cmp.Or(
			cmp.Compare(a.EffectiveChapterID(), b.EffectiveChapterID()),
			cmp.Compare(a.SequenceNo, b.SequenceNo),
			cmp.Compare(a.ID, b.ID),
		)
	})
	slices.SortFunc(report.Orphans, compareDocs)
	slices.SortFunc(report.Incomplete, compareDocs)

	logger.InfoContext(ctx, "coverage check complete",
		"records", report.Records,
		"documents", report.Documents,
		"missing", len(report.Missing),
		"orphans", len(report.Orphans),
		"incomplete", len(report.Incomplete),
	)
	return report, nil
}

func compareDocs(a, b ScannedDocument) int {
	return cmp.Or(cmp.Compare(a.ChapterID, b.ChapterID), cmp.Compare(a.Name, b.Name))
}
