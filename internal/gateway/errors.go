package gateway

import "fmt"

// ConfigurationError means no model credential is configured. It is
// returned before any network call is attempted.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "gateway not configured: " + e.Reason
}

// UnsupportedMediaError means the document's MIME type is outside the
// accepted set for the requested operation. Checked pre-flight.
type UnsupportedMediaError struct {
	Operation string
	MIMEType  string
}

func (e *UnsupportedMediaError) Error() string {
	return fmt.Sprintf("unsupported document type for %s: %s", e.Operation, e.MIMEType)
}

// ExtractionError means the model responded but its content could not
// be parsed as JSON. Excerpt holds up to 200 chars of the raw text.
type ExtractionError struct {
	Excerpt string
	Err     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("model did not return valid JSON for extraction: %v. Raw: %s", e.Err, e.Excerpt)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// SchemaGenerationError means the model responded but the content did
// not parse as JSON or failed shape validation.
type SchemaGenerationError struct {
	Reason  string
	Excerpt string
	Err     error
}

func (e *SchemaGenerationError) Error() string {
	if e.Excerpt != "" {
		return fmt.Sprintf("schema generation failed: %s. Raw: %s", e.Reason, e.Excerpt)
	}
	return "schema generation failed: " + e.Reason
}

func (e *SchemaGenerationError) Unwrap() error { return e.Err }

// GatewayError wraps a transport or API-level failure from the model
// service, preserving the underlying message.
type GatewayError struct {
	Operation string
	Err       error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("model API error (%s): %v", e.Operation, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }
