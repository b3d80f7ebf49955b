// Package extract pulls plain text out of resume files (txt, md, pdf, docx).
package extract

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format identifies a supported resume file format.
type Format string

const (
	FormatText Format = "text"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

var (
	// ErrUnsupportedFormat is returned for file types we cannot extract.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrEmptyDocument is returned when a file yields no usable text.
	ErrEmptyDocument = errors.New("document contains no extractable text")
)

// DetectFormat maps a file name to a Format by its extension.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md":
		return FormatText, nil
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

// FormatFromMIME maps a Content-Type header value to a Format. The second
// return reports whether the MIME type is recognized.
func FormatFromMIME(contentType string) (Format, bool) {
	mime := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	switch mime {
	case "text/plain", "text/markdown":
		return FormatText, true
	case "application/pdf":
		return FormatPDF, true
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return FormatDOCX, true
	default:
		return "", false
	}
}

// FromFile reads the file at path and extracts its text, dispatching on the
// file extension.
func FromFile(path string) (string, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file %s: %w", path, err)
	}
	return FromBytes(data, format)
}

// FromReader extracts text from a document streamed through r.
func FromReader(r io.Reader, format Format) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return FromBytes(data, format)
}

// FromBytes extracts text from an in-memory document.
func FromBytes(data []byte, format Format) (string, error) {
	var (
		text string
		err  error
	)
	switch format {
	case FormatText:
		text = strings.TrimPrefix(string(data), "\uFEFF")
	case FormatPDF:
		text, err = extractPDF(data)
	case FormatDOCX:
		text, err = extractDOCX(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	// GetContent returns the raw document.xml body; flatten it to text.
	text, err := flattenXML(doc.Editable().GetContent())
	if err != nil {
		return "", fmt.Errorf("extract docx text: %w", err)
	}
	return text, nil
}

// flattenXML strips markup from a WordprocessingML document body, keeping
// character data and inserting newlines at paragraph and line-break ends.
func flattenXML(raw string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String()), nil
}
