package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/ledongthuc/pdf"
)

// ErrExtractionFailed indicates malformed or encrypted input. It is
// propagated verbatim to the caller; there is no partial-text recovery.
var ErrExtractionFailed = errors.New("failed to extract text from PDF")

// Extractor converts raw PDF bytes into plain text. Stateless, single call,
// no chunking or OCR fallback.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the plain text content of the given PDF bytes.
func (e *Extractor) Extract(data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty input", ErrExtractionFailed)
	}

	// The underlying parser panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR [Extractor] PDF parser panicked: %v", r)
			text = ""
			err = fmt.Errorf("%w: %v", ErrExtractionFailed, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	plainText, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plainText); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	return buf.String(), nil
}
