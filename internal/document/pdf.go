package document

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PDFPageCount validates that data is a well-formed PDF and returns its
// page count. Used as a pre-flight check before schema generation so a
// corrupt sample fails locally instead of at the model.
func PDFPageCount(data []byte) (int, error) {
	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return 0, fmt.Errorf("not a readable PDF: %w", err)
	}
	if count == 0 {
		return 0, fmt.Errorf("PDF has no pages")
	}
	return count, nil
}
