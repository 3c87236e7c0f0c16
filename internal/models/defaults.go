package models

// DefaultTemplateID identifies the built-in invoice schema, which is
// always available even when the template store is empty.
const DefaultTemplateID = "default_invoice_parser"

// DefaultInvoiceSchema is the built-in schema used when no saved
// template is selected. It targets common invoice layouts.
var DefaultInvoiceSchema = Schema{
	{ID: "invoiceNumber", Label: "Invoice Number", Type: FieldTypeText, Placeholder: "e.g., 5465456"},
	{ID: "invoiceDate", Label: "Invoice Date", Type: FieldTypeDate},
	{ID: "dueDate", Label: "Due Date", Type: FieldTypeDate},

	{ID: "billToName", Label: "Bill To: Name", Type: FieldTypeText, Placeholder: "Company or person billed"},
	{ID: "billToAddress", Label: "Bill To: Address", Type: FieldTypeTextarea, Placeholder: "Full address of the recipient, e.g., Texas, TX9909"},
	{ID: "billToRegNr", Label: "Bill To: Registration Nr.", Type: FieldTypeText, Placeholder: "e.g., RCF2393993"},
	{ID: "billToTaxNr", Label: "Bill To: Tax Nr.", Type: FieldTypeText, Placeholder: "e.g., BT9087906587"},

	{ID: "sellerName", Label: "Seller: Name", Type: FieldTypeText, Placeholder: "e.g., Seller.Com"},
	{ID: "sellerAddress", Label: "Seller: Address", Type: FieldTypeTextarea, Placeholder: "Full address of the seller, e.g., California, 28973"},
	{ID: "sellerRegNr", Label: "Seller: Registration Nr.", Type: FieldTypeText, Placeholder: "e.g., LB8923048"},
	{ID: "sellerTaxNr", Label: "Seller: Tax Nr.", Type: FieldTypeText, Placeholder: "e.g., BT908345"},
	{ID: "sellerPhone", Label: "Seller: Phone", Type: FieldTypeTel, Placeholder: "e.g., 453-223-0987"},

	{ID: "serviceDescription", Label: "Description of Services/Items", Type: FieldTypeTextarea, Placeholder: "Summary of items or services, e.g., Inbound logistics services, Outbound logistics services"},

	{ID: "subtotalAmount", Label: "Subtotal Amount", Type: FieldTypeNumber, Placeholder: "e.g., 18000.00"},
	{ID: "taxAmount", Label: "Tax Amount", Type: FieldTypeNumber, Placeholder: "e.g., 0.00"},
	{ID: "totalAmount", Label: "Total Amount", Type: FieldTypeNumber, Placeholder: "e.g., 18000.00"},

	{ID: "bankName", Label: "Bank Name", Type: FieldTypeText, Placeholder: "e.g., American Bank"},
	{ID: "bankAccountNumber", Label: "Bank Account Number", Type: FieldTypeText, Placeholder: "e.g., 7856478561347"},
	{ID: "bankBIC", Label: "Bank BIC/SWIFT", Type: FieldTypeText, Placeholder: "e.g., 3454"},

	{ID: "notes", Label: "Additional Notes From Document", Type: FieldTypeTextarea, Placeholder: "Any other relevant text like \"Please approve\" or payment terms..."},
}
