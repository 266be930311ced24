package export

import (
	"bufio"
	"io"
	"strings"
)

const (
	csvHeaderAll     = "Session Title,Date,Role,Message"
	csvHeaderSession = "Timestamp,Role,Message"
)

// WriteCSV writes one row per message. Every value is quoted.
func WriteCSV(w io.Writer, doc *Document) error {
	bw := bufio.NewWriter(w)

	header := csvHeaderAll
	if doc.Scope == ScopeSession {
		header = csvHeaderSession
	}
	bw.WriteString(header)
	bw.WriteByte('\n')

	for _, block := range doc.Sessions {
		for _, msg := range block.Messages {
			var fields []string
			if doc.Scope == ScopeSession {
				fields = []string{formatTime(msg.CreatedAt), string(msg.Role), msg.Content}
			} else {
				fields = []string{block.Session.Title, formatTime(msg.CreatedAt), string(msg.Role), msg.Content}
			}
			writeRow(bw, fields)
		}
	}
	return bw.Flush()
}

func writeRow(bw *bufio.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			bw.WriteByte(',')
		}
		bw.WriteString(quote(f))
	}
	bw.WriteByte('\n')
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
