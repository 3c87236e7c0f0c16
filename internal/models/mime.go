package models

// MIME types the document pipeline understands.
const (
	MimeTypePDF  = "application/pdf"
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeWebP = "image/webp"
	MimeTypeText = "text/plain"
)

// ExtractionMIMETypes lists the types accepted for data extraction,
// in the order they are advertised to callers.
var ExtractionMIMETypes = []string{
	MimeTypePDF,
	MimeTypeJPEG,
	MimeTypePNG,
	MimeTypeWebP,
	MimeTypeText,
}

// IsExtractionMIMEType reports whether m is accepted for extraction.
func IsExtractionMIMEType(m string) bool {
	for _, t := range ExtractionMIMETypes {
		if m == t {
			return true
		}
	}
	return false
}

// IsSchemaGenerationMIMEType reports whether m is accepted for schema
// generation. Only PDF samples are supported.
func IsSchemaGenerationMIMEType(m string) bool {
	return m == MimeTypePDF
}
