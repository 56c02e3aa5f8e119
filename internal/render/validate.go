package render

import (
	"bytes"

	"github.com/ledongthuc/pdf"
)

// PageCount parses the rendered PDF and returns its page count for
// diagnostics. A document the parser cannot read reports zero pages;
// structural acceptance is the magic-number check in Render, not this.
func PageCount(b []byte) (n int) {
	// The parser panics on some malformed inputs.
	defer func() {
		if recover() != nil {
			n = 0
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return 0
	}
	return reader.NumPage()
}
