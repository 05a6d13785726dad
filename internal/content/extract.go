// Package content pulls the two script renderings of a vat out of its
// pre-rendered document and tracks which one is on screen.
//
// A document carries each rendering in a marked region:
//
//	<div id="iastBlock"> <pre>TEXT</pre> </div>
//	<div id="gujaratiBlock" ATTRS> <pre>TEXT</pre> </div>
//
// where the blanks are optional whitespace and TEXT is the shortest run up to
// the closing tags. TEXT is taken verbatim: no entity decoding, whitespace
// and line breaks kept. Nothing else in the document is looked at.
package content

import "regexp"

var (
	primaryRegion   = regexp.MustCompile(`(?s)<div id="iastBlock">\s*<pre>(.*?)</pre>\s*</div>`)
	secondaryRegion = regexp.MustCompile(`(?s)<div id="gujaratiBlock"[^>]*>\s*<pre>(.*?)</pre>\s*</div>`)
)

// Passage holds the two renderings of one vat. Either may be empty when the
// document lacks its region.
type Passage struct {
	Primary   string // Transliteration
	Secondary string // Native script
}

// Extract lifts both regions out of document.
func Extract(document []byte) Passage {
	return Passage{
		Primary:   firstGroup(primaryRegion, document),
		Secondary: firstGroup(secondaryRegion, document),
	}
}

func firstGroup(re *regexp.Regexp, document []byte) string {
	m := re.FindSubmatch(document)
	if m == nil {
		return ""
	}
	return string(m[1])
}
