// Package export renders chat history as CSV or PDF.
package export

import (
	"io"
	"time"

	"github.com/Manideep236692/IARE-ChatBot/internal/domain"
)

// Scope tells the renderers which layout to use.
type Scope string

const (
	ScopeAll     Scope = "all"
	ScopeSession Scope = "session"
)

// Document is the format-independent content of an export.
type Document struct {
	Scope          Scope
	User           domain.User
	ExportedAt     time.Time
	AssistantLabel string
	Sessions       []SessionBlock
}

// SessionBlock is one session with its messages in timestamp order.
type SessionBlock struct {
	Session  domain.Session
	Messages []domain.Message
}

// Render writes doc in the given format.
func Render(w io.Writer, format domain.ExportFormat, doc *Document) error {
	switch format {
	case domain.ExportFormatCSV:
		return WriteCSV(w, doc)
	case domain.ExportFormatPDF:
		return WritePDF(w, doc)
	}
	return &domain.FormatError{Format: string(format)}
}

const timestampLayout = time.RFC3339

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
