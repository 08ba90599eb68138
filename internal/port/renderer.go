package port

import "context"

// InvoiceRenderer turns a flat template parameter mapping into a PDF on
// disk. Line items arrive pre-flattened as 1-based suffixed keys
// (sr_no_1, service_name_1, ...); lineCount says how many to read.
type InvoiceRenderer interface {
	Render(ctx context.Context, templateName string, params map[string]string, lineCount int, outputPath string) error
}
