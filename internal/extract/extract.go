// Package extract is the document-extraction boundary: raw bytes plus a
// declared type in, plain text out. Failures of any kind yield an empty
// string; nothing propagates past this boundary.
package extract

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"unicode/utf8"
)

// Supported declared document types.
const (
	TypeTxt  = "txt"
	TypeMd   = "md"
	TypeCSV  = "csv"
	TypeDocx = "docx"
)

// Text extracts plain text from an uploaded document. Unknown types and
// malformed payloads return "".
func Text(data []byte, kind string) string {
	switch strings.ToLower(kind) {
	case TypeTxt, TypeMd, TypeCSV:
		if !utf8.Valid(data) {
			return ""
		}
		return string(data)
	case TypeDocx:
		return docxText(data)
	default:
		return ""
	}
}

// docxText opens the docx zip container and strips markup from the main
// document part.
func docxText(data []byte) string {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return ""
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return ""
		}
		return stripTags(string(raw))
	}
	return ""
}

// stripTags removes XML tags, inserting line breaks at paragraph boundaries.
func stripTags(s string) string {
	s = strings.ReplaceAll(s, "</w:p>", "\n")
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
