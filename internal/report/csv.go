package report

import (
	"io"
	"strings"
	"time"

	"github.com/carson-networks/trackease/internal/domain"
)

var csvHeader = []string{"Date", "Type", "Category", "Amount", "Note"}

// WriteCSV writes txs most recent first. Rows are separated by "\n" with no
// trailing newline, so an empty list yields only the header.
func WriteCSV(w io.Writer, txs []domain.Transaction, loc *time.Location) error {
	var b strings.Builder
	writeRow(&b, csvHeader)
	for _, tx := range History(txs) {
		b.WriteByte('\n')
		writeRow(&b, []string{
			formatDate(tx.Date, loc),
			string(tx.Type),
			tx.Category,
			tx.Amount.String(),
			tx.Note,
		})
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quoteField(field))
	}
}

// quoteField quotes only fields holding a comma, a double quote or a newline.
func quoteField(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(time.RFC3339)
}
