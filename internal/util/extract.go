package util

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

var (
	ErrEmptyPDF   = errors.New("no text extracted from PDF")
	ErrNotPDF     = errors.New("file is not a PDF document")
	ErrCorruptPDF = errors.New("PDF document could not be read")
)

var pdfMagic = []byte("%PDF-")

// IsPDF reports whether data starts with the PDF header.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfMagic)
}

type PDFContent struct {
	Text  string
	Pages int
}

// ExtractPDF reads the text layer of a PDF with MuPDF, falls back to a pure Go
// reader when MuPDF cannot open the document, and OCRs page images with
// tesseract when there is no text layer at all.
func ExtractPDF(data []byte, log *zap.Logger) (PDFContent, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if !IsPDF(data) {
		return PDFContent{}, ErrNotPDF
	}

	content, err := extractWithFitz(data)
	if err != nil {
		log.Warn("mupdf extraction failed, trying pure go reader", zap.Error(err))
		content, err = extractWithPDFReader(data)
		if err != nil {
			return PDFContent{}, fmt.Errorf("%w: %v", ErrCorruptPDF, err)
		}
	}

	if strings.TrimSpace(content.Text) == "" {
		log.Info("pdf has no text layer, running OCR", zap.Int("pages", content.Pages))
		text, err := extractPDFOCR(data, log)
		if err != nil {
			return PDFContent{}, err
		}
		content.Text = text
	}

	log.Debug("pdf extracted", zap.Int("pages", content.Pages), zap.Int("chars", len(content.Text)))
	return content, nil
}

func extractWithFitz(data []byte) (PDFContent, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return PDFContent{}, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			return PDFContent{}, fmt.Errorf("page %d: failed to extract text: %w", n+1, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return PDFContent{Text: strings.TrimSpace(sb.String()), Pages: doc.NumPage()}, nil
}

func extractWithPDFReader(data []byte) (PDFContent, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return PDFContent{}, err
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return PDFContent{}, fmt.Errorf("page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return PDFContent{Text: strings.TrimSpace(sb.String()), Pages: r.NumPage()}, nil
}

// extractPDFOCR renders every page and feeds it to tesseract.
func extractPDFOCR(data []byte, log *zap.Logger) (string, error) {
	if err := checkTesseract(); err != nil {
		return "", fmt.Errorf("%w: tesseract check failed: %v", ErrEmptyPDF, err)
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptPDF, err)
	}
	defer doc.Close()

	var fullText bytes.Buffer
	var lastErr error

	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.Image(n)
		if err != nil {
			lastErr = fmt.Errorf("page %d: failed to extract image: %w", n+1, err)
			log.Warn("ocr page skipped", zap.Error(lastErr))
			continue
		}

		pageText, err := ocrImage(img)
		if err != nil {
			lastErr = fmt.Errorf("page %d: %w", n+1, err)
			log.Warn("ocr page skipped", zap.Error(lastErr))
			continue
		}
		if pageText != "" {
			fullText.WriteString(pageText)
			fullText.WriteString("\n\n")
		}
	}

	result := strings.TrimSpace(fullText.String())
	if result == "" {
		if lastErr != nil {
			return "", fmt.Errorf("%w: %v", ErrEmptyPDF, lastErr)
		}
		return "", ErrEmptyPDF
	}
	return result, nil
}

func ocrImage(img image.Image) (string, error) {
	tmpFile, err := os.CreateTemp("", "page-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	err = png.Encode(tmpFile, img)
	tmpFile.Close()
	if err != nil {
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}

	out, err := exec.Command("tesseract", tmpPath, "stdout", "-l", "eng").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("tesseract error: %w, output: %s", err, string(out))
	}
	return strings.TrimSpace(string(out)), nil
}

func checkTesseract() error {
	out, err := exec.Command("tesseract", "-v").CombinedOutput()
	if err != nil {
		return fmt.Errorf("tesseract not found or not executable: %w, output: %s", err, string(out))
	}
	return nil
}
