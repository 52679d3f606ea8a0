// ABOUTME: File parsers extracting plain text from txt, docx, and pdf files
// ABOUTME: Parse failures are client-visible; nothing is stored for a failed file
package ingest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedFileType is returned for extensions outside txt/docx/pdf.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// Parser extracts plain text from a file on disk.
type Parser interface {
	Parse(path string) (string, error)
}

// SupportedExtensions lists the file types the upload endpoint accepts.
var SupportedExtensions = []string{".pdf", ".docx", ".txt"}

// ParserFor returns the parser registered for the file's extension.
func ParserFor(fileName string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".txt":
		return TextParser{}, nil
	case ".docx":
		return DOCXParser{}, nil
	case ".pdf":
		return PDFParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, filepath.Ext(fileName))
	}
}

// ParseFile extracts text from path using the parser for its extension.
func ParseFile(path string) (string, error) {
	parser, err := ParserFor(path)
	if err != nil {
		return "", err
	}
	return parser.Parse(path)
}

// TextParser reads plain text files as-is.
type TextParser struct{}

func (TextParser) Parse(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading text file: %w", err)
	}
	return string(data), nil
}

// DOCXParser extracts paragraph text from the word/document.xml part
// of a docx archive.
type DOCXParser struct{}

func (DOCXParser) Parse(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("opening docx archive: %w", err)
	}
	defer func() { _ = archive.Close() }()

	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("opening document.xml: %w", err)
		}
		defer func() { _ = rc.Close() }()
		return extractDocumentXML(rc)
	}

	return "", fmt.Errorf("docx archive has no word/document.xml")
}

// extractDocumentXML collects text runs, emitting a newline per paragraph
func extractDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var sb strings.Builder
	inText := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decoding document.xml: %w", err)
		}

		switch el := token.(type) {
		case xml.StartElement:
			if el.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			if el.Name.Local == "t" {
				inText = false
			}
			if el.Name.Local == "p" {
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(el)
			}
		}
	}

	return sb.String(), nil
}

// PDFParser extracts plain text from PDF files.
type PDFParser struct{}

func (PDFParser) Parse(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	defer func() { _ = file.Close() }()

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(textReader); err != nil {
		return "", fmt.Errorf("reading pdf text: %w", err)
	}
	return buf.String(), nil
}
