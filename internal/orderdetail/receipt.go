package orderdetail

import (
	"strings"
)

// ReceiptRow is one printable row of an order receipt.
type ReceiptRow struct {
	Label  string `json:"label"`
	Amount string `json:"amount,omitempty"`
	Total  bool   `json:"total,omitempty"`
}

// Receipt turns orderDetails text into display rows. Contact lines and
// separators are dropped; item quantities read "2 x Name". Text with no
// recognisable rows comes back as a single row holding the raw text.
func Receipt(text string) []ReceiptRow {
	var rows []ReceiptRow

	for _, raw := range splitLines(text) {
		line := strings.TrimSpace(raw)
		if line == "" || isContactLine(line) {
			continue
		}

		row := ReceiptRow{Total: strings.HasPrefix(line, prefixTotal)}
		label := line
		if i := strings.Index(line, currency); i >= 0 {
			label = line[:i]
			row.Amount = strings.TrimSpace(line[i+len(currency):])
		}
		label = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(label), "-"))
		if m := itemPattern.FindStringSubmatch(label); m != nil {
			label = m[1] + " x " + m[2]
		}
		row.Label = label
		rows = append(rows, row)
	}

	if len(rows) == 0 && strings.TrimSpace(text) != "" {
		return []ReceiptRow{{Label: strings.TrimSpace(text)}}
	}
	return rows
}

func isContactLine(line string) bool {
	return strings.HasPrefix(line, separator) ||
		strings.HasPrefix(line, prefixCustomer) ||
		strings.HasPrefix(line, prefixAddress) ||
		strings.HasPrefix(line, prefixPhone) ||
		strings.HasPrefix(line, prefixTime)
}
