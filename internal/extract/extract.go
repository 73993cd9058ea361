// Package extract pulls plain text out of résumé containers so the
// analysis prompts can consume it.
package extract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Kind identifies a supported résumé container format.
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
	KindText Kind = "txt"
)

// KindFromPath maps a file extension to a container Kind.
func KindFromPath(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return KindPDF, nil
	case ".docx":
		return KindDOCX, nil
	case ".txt", ".md":
		return KindText, nil
	default:
		return "", fmt.Errorf("unsupported resume file type %q (want .pdf, .docx, or .txt)", filepath.Ext(path))
	}
}

// Text extracts plain text from a résumé container.
func Text(kind Kind, data []byte) (string, error) {
	switch kind {
	case KindText:
		return string(data), nil
	case KindPDF:
		return pdfText(data)
	case KindDOCX:
		return docxText(data)
	default:
		return "", fmt.Errorf("unsupported resume kind %q", kind)
	}
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	defer func() {
		_ = doc.Close()
	}()

	return doc.Editable().GetContent(), nil
}
