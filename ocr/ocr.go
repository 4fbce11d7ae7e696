// Package ocr extracts text from captured frames using the system Tesseract
// installation via gosseract.
package ocr

import (
	"fmt"
	"image"
	"log"

	"github.com/otiai10/gosseract/v2"

	"screen-reader-solver/screenshot"
)

// Engine runs OCR with a fixed language setting.
type Engine struct {
	lang string
}

// New returns an engine recognizing the given tesseract language (e.g. "eng").
func New(lang string) *Engine {
	if lang == "" {
		lang = "eng"
	}
	return &Engine{lang: lang}
}

// Recognize extracts text from img. The returned string may be empty when the
// frame contains no readable text; that is not an error.
func (e *Engine) Recognize(img image.Image) (string, error) {
	data, err := screenshot.EncodePNG(img)
	if err != nil {
		return "", err
	}
	return e.RecognizeBytes(data)
}

// RecognizeBytes extracts text from an encoded image. A fresh client is used
// per call; gosseract clients are not safe to share across goroutines.
func (e *Engine) RecognizeBytes(data []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.lang); err != nil {
		return "", fmt.Errorf("tesseract language %q: %v", e.lang, err)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("tesseract set image: %v", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract recognize: %v", err)
	}
	log.Printf("OCR extracted %d chars", len(text))
	return text, nil
}
