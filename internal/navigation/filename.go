package navigation

import "strings"

const (
	recordExt   = ".txt"
	documentExt = ".html"
)

// DocumentName maps a catalog file name to the name of its rendered document,
// e.g. "vat_1_1.txt" to "vat_1_1.html". Only the first ".txt" is replaced.
func DocumentName(fileName string) string {
	return strings.Replace(fileName, recordExt, documentExt, 1)
}

// RecordFileName is the inverse of DocumentName.
func RecordFileName(documentName string) string {
	return strings.Replace(documentName, documentExt, recordExt, 1)
}
