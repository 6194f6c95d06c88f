package models

import "time"

type ImportSummary struct {
	TotalRows        int                     `json:"total_rows"`
	ProcessedRows    int                     `json:"processed_rows"`
	SuccessCount     int                     `json:"success_count"`
	ErrorCount       int                     `json:"error_count"`
	CreatedQuestions []string                `json:"created_questions"`
	Errors           []ImportValidationError `json:"errors"`
	Status           ImportJobStatus         `json:"status"`
	ProcessingTime   time.Duration           `json:"processing_time"`
}

type ExportFormat string

const (
	ExportXLSX ExportFormat = "xlsx"
	ExportCSV  ExportFormat = "csv"
)

type ExportRequest struct {
	Format ExportFormat `json:"format" form:"format" validate:"omitempty,oneof=xlsx csv"`
	Test   string       `json:"test" form:"test"`
}
