// Package navigation orders vats within chapters and resolves the previous
// and next vat across chapter boundaries.
//
// Every function works on the full record slice and recomputes what it needs
// per call. The slice is never modified.
package navigation

import (
	"cmp"
	"slices"

	"vato-reader/internal/catalog"
)

// ChapterGroup is one chapter of the home listing.
type ChapterGroup struct {
	ID   int
	Vats []catalog.VatRecord
}

// Adjacency holds the neighbours of a vat. A nil side means there is none.
type Adjacency struct {
	Previous *catalog.VatRecord
	Next     *catalog.VatRecord
}

// Chapter returns the records of chapterID sorted ascending by sequence
// number. Equal sequence numbers are ordered by record id, then by their
// position in the catalog.
func Chapter(records []catalog.VatRecord, chapterID int) []catalog.VatRecord {
	var vats []catalog.VatRecord
	for _, r := range records {
		if r.EffectiveChapterID() == chapterID {
			vats = append(vats, r)
		}
	}
	slices.SortStableFunc(vats, compareVats)
	return vats
}

// Chapters groups records by chapter for the listing view. Chapters are
// ascending by id and each chapter's vats are sorted as in Chapter.
func Chapters(records []catalog.VatRecord) []ChapterGroup {
	byID := make(map[int][]catalog.VatRecord)
	for _, r := range records {
		id := r.EffectiveChapterID()
		byID[id] = append(byID[id], r)
	}

	groups := make([]ChapterGroup, 0, len(byID))
	for id, vats := range byID {
		slices.SortStableFunc(vats, compareVats)
		groups = append(groups, ChapterGroup{ID: id, Vats: vats})
	}
	slices.SortFunc(groups, func(a, b ChapterGroup) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return groups
}

// Find returns the record of chapterID whose file name is fileName.
func Find(records []catalog.VatRecord, chapterID int, fileName string) (catalog.VatRecord, bool) {
	vats := Chapter(records, chapterID)
	if i := indexOf(vats, fileName); i >= 0 {
		return vats[i], true
	}
	return catalog.VatRecord{}, false
}

// Previous returns the vat before fileName. The first vat of a chapter is
// preceded by the last vat of chapter chapterID-1; there is no fallback past
// an empty chapter and nothing precedes chapter 1.
func Previous(records []catalog.VatRecord, chapterID int, fileName string) (catalog.VatRecord, bool) {
	vats := Chapter(records, chapterID)
	i := indexOf(vats, fileName)
	if i < 0 {
		return catalog.VatRecord{}, false
	}
	if i > 0 {
		return vats[i-1], true
	}

	prevID := chapterID - 1
	if prevID < 1 {
		return catalog.VatRecord{}, false
	}
	prev := Chapter(records, prevID)
	if len(prev) == 0 {
		return catalog.VatRecord{}, false
	}
	return prev[len(prev)-1], true
}

// Next returns the vat after fileName. The last vat of a chapter is followed
// by the first vat of chapter chapterID+1, if that chapter has any.
func Next(records []catalog.VatRecord, chapterID int, fileName string) (catalog.VatRecord, bool) {
	vats := Chapter(records, chapterID)
	i := indexOf(vats, fileName)
	if i < 0 {
		return catalog.VatRecord{}, false
	}
	if i < len(vats)-1 {
		return vats[i+1], true
	}

	next := Chapter(records, chapterID+1)
	if len(next) == 0 {
		return catalog.VatRecord{}, false
	}
	return next[0], true
}

// Adjacent resolves both neighbours of fileName.
func Adjacent(records []catalog.VatRecord, chapterID int, fileName string) Adjacency {
	var adj Adjacency
	if prev, ok := Previous(records, chapterID, fileName); ok {
		adj.Previous = &prev
	}
	if next, ok := Next(records, chapterID, fileName); ok {
		adj.Next = &next
	}
	return adj
}

func indexOf(vats []catalog.VatRecord, fileName string) int {
	return slices.IndexFunc(vats, func(r catalog.VatRecord) bool {
		return r.FileName == fileName
	})
}

func compareVats(a, b catalog.VatRecord) int {
	if c := cmp.Compare(a.SequenceNo, b.SequenceNo); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
