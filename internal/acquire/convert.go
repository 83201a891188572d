package acquire

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
	"github.com/gen2brain/heic"

	"invoscan/internal/port"
)

// pageImages converts a document into one PNG per page, ready for the
// OCR engine. PDFs are rasterized with MuPDF; HEIC photos from phone
// cameras are transcoded since the OCR API does not accept them; JPEG
// and PNG pass through unchanged.
func pageImages(doc port.Document) ([][]byte, error) {
	switch {
	case doc.ContentType == "application/pdf" || isPDF(doc.Bytes):
		return rasterizePDF(doc.Bytes)
	case doc.ContentType == "image/heic" || doc.ContentType == "image/heif" || isHEIC(doc.Bytes):
		img, err := heicToPNG(doc.Bytes)
		if err != nil {
			return nil, err
		}
		return [][]byte{img}, nil
	default:
		return [][]byte{doc.Bytes}, nil
	}
}

// rasterizePDF renders every page of a PDF to a PNG image.
func rasterizePDF(data []byte) ([][]byte, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	var pages [][]byte
	for i := 0; i < doc.NumPage(); i++ {
		img, err := doc.Image(i)
		if err != nil {
			return nil, fmt.Errorf("rendering PDF page %d: %w", i+1, err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encoding PNG: %w", err)
		}
		pages = append(pages, buf.Bytes())
	}
	return pages, nil
}

// heicToPNG transcodes a HEIC/HEIF image to PNG.
func heicToPNG(data []byte) ([]byte, error) {
	img, err := heic.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding HEIC image: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// enhanceForOCR applies grayscale, contrast, sharpen, brightness and
// gamma passes that make printed invoice text easier for the OCR engine
// to read, then re-encodes the result as PNG.
func enhanceForOCR(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img := imaging.Grayscale(src)
	img = imaging.AdjustContrast(img, 30)
	img = imaging.Sharpen(img, 1.5)
	img = imaging.AdjustBrightness(img, 10)
	img = imaging.AdjustGamma(img, 1.2)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// isPDF reports whether data starts with the PDF magic bytes.
func isPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF"))
}

// isHEIC reports whether data starts with an ftyp box carrying a
// HEIC-related brand.
func isHEIC(data []byte) bool {
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	switch string(data[8:12]) {
	case "heic", "heif", "mif1", "msf1":
		return true
	}
	return false
}
