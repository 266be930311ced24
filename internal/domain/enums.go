// Package domain defines the core domain models for the chat backend.
package domain

import "strings"

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "USER"
	RoleAssistant Role = "ASSISTANT"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// ChatRole returns the lowercase role name used by chat completion APIs.
func (r Role) ChatRole() string {
	return strings.ToLower(string(r))
}

// ExportFormat is the output format of a history export.
type ExportFormat string

const (
	ExportFormatPDF ExportFormat = "pdf"
	ExportFormatCSV ExportFormat = "csv"
)

// ParseExportFormat parses a case-insensitive format name.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(s))) {
	case ExportFormatPDF:
		return ExportFormatPDF, nil
	case ExportFormatCSV:
		return ExportFormatCSV, nil
	}
	return "", &FormatError{Format: s}
}

// ContentType returns the MIME type of the format.
func (f ExportFormat) ContentType() string {
	if f == ExportFormatPDF {
		return "application/pdf"
	}
	return "text/csv"
}

// Feedback values sent by the web client. Stored values are free-form.
const (
	FeedbackPositive = "positive"
	FeedbackNegative = "negative"
)
