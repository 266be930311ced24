package export

import (
	_ "embed"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/Manideep236692/IARE-ChatBot/internal/domain"
)

const (
	pdfTitleAll     = "Chat History Export"
	pdfTitleSession = "Chat Conversation Export"
	pdfUserLabel    = "You"
	pdfFont         = "DejaVu"
	pdfLineHeight   = 6.0
)

// DejaVu covers Latin, Greek and Cyrillic. Scripts it lacks, Telugu among
// them, render as missing glyphs, and fpdf does no complex-script shaping.
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	fontRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	fontBold []byte
	//go:embed fonts/DejaVuSansCondensed-Oblique.ttf
	fontOblique []byte
)

// WritePDF renders doc as an A4 document with embedded UTF-8 fonts. Content
// streams are left uncompressed; text in them is UTF-16BE.
func WritePDF(w io.Writer, doc *Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.SetCreator("CampusConnect", false)
	pdf.SetCreationDate(doc.ExportedAt)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddUTF8FontFromBytes(pdfFont, "", fontRegular)
	pdf.AddUTF8FontFromBytes(pdfFont, "B", fontBold)
	pdf.AddUTF8FontFromBytes(pdfFont, "I", fontOblique)

	title := pdfTitleAll
	if doc.Scope == ScopeSession {
		title = pdfTitleSession
	}
	pdf.SetTitle(title, false)
	pdf.AddPage()

	pdf.SetFont(pdfFont, "B", 18)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(pdfFont, "", 11)
	if doc.Scope == ScopeSession && len(doc.Sessions) > 0 {
		session := doc.Sessions[0].Session
		textLine(pdf, "Conversation: "+session.Title)
		textLine(pdf, "Date: "+formatTime(session.CreatedAt))
		textLine(pdf, "User: "+doc.User.Name+" ("+doc.User.Email+")")
	} else {
		textLine(pdf, "User: "+doc.User.Name)
		textLine(pdf, "Email: "+doc.User.Email)
	}
	textLine(pdf, "Export Date: "+formatTime(doc.ExportedAt))
	divider(pdf)

	label := doc.AssistantLabel
	if label == "" {
		label = "Assistant"
	}

	for _, block := range doc.Sessions {
		if doc.Scope != ScopeSession {
			pdf.SetFont(pdfFont, "B", 13)
			textLine(pdf, "Session: "+block.Session.Title)
			pdf.SetFont(pdfFont, "I", 10)
			textLine(pdf, "Date: "+formatTime(block.Session.CreatedAt))
			pdf.Ln(2)
		}

		for _, msg := range block.Messages {
			speaker := label
			if msg.Role == domain.RoleUser {
				speaker = pdfUserLabel
			}
			pdf.SetFont(pdfFont, "B", 11)
			textLine(pdf, speaker+":")
			pdf.SetFont(pdfFont, "", 11)
			textLine(pdf, msg.Content)
			pdf.Ln(2)
		}

		if doc.Scope != ScopeSession {
			divider(pdf)
		}
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func textLine(pdf *fpdf.Fpdf, s string) {
	pdf.MultiCell(0, pdfLineHeight, s, "", "L", false)
}

func divider(pdf *fpdf.Fpdf) {
	left, _, right, _ := pdf.GetMargins()
	width, _ := pdf.GetPageSize()
	pdf.Ln(2)
	y := pdf.GetY()
	pdf.Line(left, y, width-right, y)
	pdf.Ln(4)
}
