package catalog

// VatRecord is one passage of the corpus as it appears in vato.json.
type VatRecord struct {
	ChapterID         int     `json:"ChId"`
	RefFile           *string `json:"RefFile"` // Cross-reference, passed through untouched
	FileName          string  `json:"VatFile"` // e.g. "vat_1_1.txt"
	ID                int     `json:"VatId"`
	DisplayName       string  `json:"VatName"`
	DisplayNameNative string  `json:"VatNameGuj"`
	SequenceNo        int     `json:"VatNo"` // Position within the chapter
}

// EffectiveChapterID returns the chapter the record is grouped under.
// Records without a positive chapter id are filed under chapter 1. The web
// reader this corpus comes from only applied that fallback to its chapter
// listing; here chapter pages, prev/next and coverage use it too, so a record
// is always reachable from the chapter it is listed in.
func (r VatRecord) EffectiveChapterID() int {
	if r.ChapterID < 1 {
		return 1
	}
	return r.ChapterID
}
