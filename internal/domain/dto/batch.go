package dto

import "github.com/guttosm/tradedesk/internal/schema"

// ItemReport describes one element of a submitted batch.
type ItemReport struct {
	Index  int                 `json:"index" example:"1"`
	Valid  bool                `json:"valid" example:"false"`
	Errors []schema.FieldError `json:"errors,omitempty"`
}

// NewItemReports converts a validated batch into its wire report.
func NewItemReports(b schema.Batch) []ItemReport {
	out := make([]ItemReport, len(b))
	for i, it := range b {
		out[i] = ItemReport{Index: it.Index, Valid: it.Valid(), Errors: it.Errors}
	}
	return out
}

// DataResponse wraps a successful mutation result.
type DataResponse struct {
	Status int `json:"status" example:"200"`
	Data   any `json:"data"`
}
