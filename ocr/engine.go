// Package ocr wraps the tesseract client behind a small engine interface
// so perception code (and its tests) never touch cgo directly.
package ocr

import (
	"bytes"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
	"github.com/rs/zerolog/log"
)

// Engine reads text out of cropped screen regions. Confidence is the mean
// of per-token confidences in [0,1]; 0.0 when the engine produced nothing.
type Engine interface {
	// Text OCRs a region as a block of text.
	Text(img image.Image) (string, error)
	// TextLine OCRs a region known to hold a single line (turn and year
	// counters read noticeably better this way).
	TextLine(img image.Image) (string, error)
	// TextWithConfidence OCRs a region and reports the mean token
	// confidence alongside the text.
	TextWithConfidence(img image.Image) (string, float64, error)
	Close() error
}

// Tesseract is the gosseract-backed Engine used in production.
type Tesseract struct {
	client *gosseract.Client
}

// NewTesseract creates an OCR engine for English game text.
func NewTesseract() (*Tesseract, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, err
	}
	return &Tesseract{client: client}, nil
}

func (t *Tesseract) Text(img image.Image) (string, error) {
	return t.run(img, gosseract.PSM_SINGLE_BLOCK)
}

func (t *Tesseract) TextLine(img image.Image) (string, error) {
	return t.run(img, gosseract.PSM_SINGLE_LINE)
}

func (t *Tesseract) TextWithConfidence(img image.Image) (string, float64, error) {
	text, err := t.run(img, gosseract.PSM_SINGLE_BLOCK)
	if err != nil {
		return "", 0, err
	}

	boxes, err := t.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		log.Debug().Err(err).Msg("ocr: word boxes unavailable, reporting zero confidence")
		return text, 0, nil
	}
	if len(boxes) == 0 {
		return text, 0, nil
	}

	var sum float64
	for _, b := range boxes {
		sum += b.Confidence
	}
	conf := sum / float64(len(boxes)) / 100.0
	if conf < 0 {
		conf = 0
	} else if conf > 1 {
		conf = 1
	}
	return text, conf, nil
}

func (t *Tesseract) Close() error {
	return t.client.Close()
}

func (t *Tesseract) run(img image.Image, psm gosseract.PageSegMode) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	if err := t.client.SetPageSegMode(psm); err != nil {
		return "", err
	}
	if err := t.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", err
	}
	return t.client.Text()
}
