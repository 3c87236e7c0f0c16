package gcp

import (
	"context"
	"fmt"

	"cloud.google.com/go/vertexai/genai"
)

const modelName = "gemini-2.0-flash"

// --- Extraction Model Prompts ---
const ExtractionSystemPrompt = `You are an expert data extraction assistant. Your task is to meticulously extract information from the provided document (image, PDF, or text) and populate a JSON object based on the fields provided in the user's prompt.
The document is typically an invoice or a similar structured document.
If a piece of information is not clearly found for a specific field, use null or an empty string ("") for its value. Do not invent information.
Prioritize accuracy.
Format dates as YYYY-MM-DD if possible, otherwise use the given format.
For numerical amounts, provide them as numerical values without currency symbols or thousand separators if possible (e.g., "$18,000.00" should become 18000.00).
Respond ONLY with a valid JSON object. Do not include any explanatory text, markdown formatting (like ` + "```json" + `), or comments before or after the JSON.
Your entire response should be parseable as JSON.`

// --- Schema Generation Model Prompts ---
const SchemaGenerationSystemPrompt = `You are an expert UI and data schema designer. Your task is to analyze the provided PDF document (likely an invoice, form, or structured document) and propose a JSON schema for extracting data from it.
This schema will be used to generate a data entry form.

Carefully examine the document structure, field labels, and data formats.
For each relevant piece of information you identify as a distinct field for data extraction, define an object with the following properties:
- "id": A unique, machine-readable identifier for the field, in camelCase (e.g., "invoiceNumber", "customerName", "transactionDate"). This should be derived from the field's purpose or label.
- "label": A human-readable label for the form field (e.g., "Invoice Number", "Customer Name", "Transaction Date"). This should closely match the label in the document if available, or be a clear description.
- "type": The most appropriate data type for the field. Choose from: 'text', 'date', 'number', 'textarea', 'email', 'tel'.
  - Use 'date' for dates. (Try to recognize various date formats)
  - Use 'number' for numerical values like amounts, quantities.
  - Use 'textarea' for multi-line text fields like addresses or long descriptions/notes.
  - Use 'email' for email addresses.
  - Use 'tel' for phone numbers.
  - Use 'text' for general single-line text inputs.
- "placeholder": (Optional) A short, example placeholder text for the input field (e.g., "INV-00123", "Enter customer's full name", "YYYY-MM-DD"). If unsure, omit or use an empty string.
- "required": A boolean indicating if the field seems mandatory based on common practices for such documents. Default to false if unsure.

Output ONLY a valid JSON array of these field definition objects.
Do NOT include any explanatory text, comments, or markdown formatting (like ` + "```json" + `) before or after the JSON array.
The entire response must be a single JSON array.

Example of a field definition object:
{
  "id": "invoiceTotal",
  "label": "Invoice Total",
  "type": "number",
  "placeholder": "e.g., 123.45",
  "required": true
}

Analyze the whole document and identify all key fields. If the document has line items, you can suggest a 'textarea' field named "lineItemsSummary" or similar to capture overall item details, or individual fields if a very clear, repeating tabular structure for items (like description, quantity, unitPrice, lineTotal) is present across many items. For a first pass, a summary field is often safer.
Focus on creating a practical and comprehensive schema for data extraction from THIS type of document. Ensure IDs are valid identifiers (camelCase).
Try to identify up to 20-25 distinct fields. If many more are present, focus on the most important ones.
For addresses, try to parse them into distinct fields like 'streetAddress', 'city', 'state', 'postalCode', 'country' if clearly separable, otherwise use a single 'textarea' for 'fullAddress'.`

const SchemaGenerationUserPrompt = "Analyze this document and generate the form field schema as per your detailed system instructions."

// VertexClient holds the pre-configured generative models for our app.
type VertexClient struct {
	ExtractionModel *genai.GenerativeModel
	SchemaModel     *genai.GenerativeModel
	baseClient      *genai.Client
}

// NewVertexClient creates a new client holding both models.
func NewVertexClient(ctx context.Context, projectID, region string) (*VertexClient, error) {
	if projectID == "" || region == "" {
		return nil, fmt.Errorf("NewVertexClient: projectID and region cannot be empty")
	}

	baseClient, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	// --- Configure the extraction model ---
	extractionModel := baseClient.GenerativeModel(modelName)
	extractionModel.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(ExtractionSystemPrompt)},
	}
	extractionModel.GenerationConfig = genai.GenerationConfig{
		// Force JSON output so responses stay machine-parseable.
		ResponseMIMEType: "application/json",
	}

	// --- Configure the schema generation model ---
	schemaModel := baseClient.GenerativeModel(modelName)
	schemaModel.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(SchemaGenerationSystemPrompt)},
	}
	schemaModel.GenerationConfig = genai.GenerationConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.2), // Low temp for deterministic schema proposals
	}

	return &VertexClient{
		ExtractionModel: extractionModel,
		SchemaModel:     schemaModel,
		baseClient:      baseClient,
	}, nil
}

func (c *VertexClient) Close() error {
	if c.baseClient != nil {
		return c.baseClient.Close()
	}
	return nil
}
