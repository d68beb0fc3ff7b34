package report

// ListReportsRequest represents query parameters for report history
type ListReportsRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// EmailReportRequest names who receives an emailed report
type EmailReportRequest struct {
	Recipient string `query:"recipient" json:"recipient" validate:"required,email"`
}
