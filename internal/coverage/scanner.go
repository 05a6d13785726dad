// Package coverage compares the catalog with the documents on disk.
package coverage

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strconv"
)

var chapterDir = regexp.MustCompile(`^chapter([0-9]+)$`)

// ScannedDocument is a document file found under the document root.
type ScannedDocument struct {
	ChapterID int    // From the chapter{N} directory name
	Name      string // Document name, e.g. "vat_1_3.html"
	RelPath   string // Relative path from the root, forward slashes
}

// ScanDocuments walks root and returns every .html file in a chapter{N}
// directory directly below it. Other files and directories are ignored.
func ScanDocuments(ctx context.Context, root string) ([]ScannedDocument, error) {
	var docs []ScannedDocument

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", path, err)
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if relPath == "." {
				return nil
			}
			// Only chapter{N} directories at the top level are documents.
			if filepath.Dir(relPath) != "." || !chapterDir.MatchString(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if filepath.Ext(d.Name()) != ".html" {
			return nil
		}
		m := chapterDir.FindStringSubmatch(filepath.Dir(relPath))
		if m == nil {
			// A file at the root itself
			return nil
		}
		chapterID, err := strconv.Atoi(m[1])
		if err != nil {
			return nil
		}

		docs = append(docs, ScannedDocument{
			ChapterID: chapterID,
			Name:      d.Name(),
			RelPath:   relPath,
		})
		return nil
	})
	if err != nil {
		return docs, fmt.Errorf("failed to scan documents in %s: %w", root, err)
	}

	return docs, nil
}
