package orderdetail

import (
	"net/url"
	"strconv"
	"strings"
)

// ShareLink builds a wa.me link that pre-fills a chat message with the
// order lines and total. phone is the shop number in international format
// without the leading plus.
func ShareLink(phone string, s Summary) string {
	var b strings.Builder

	b.WriteString("*NUOVO ORDINE*\n\n")
	for _, l := range s.Lines {
		b.WriteString(strconv.Itoa(l.Quantity) + "x *" + l.Name + "*")
		if len(l.Extras) > 0 {
			b.WriteString("\n   _Extra: " + strings.Join(l.Extras, ", ") + "_")
		}
		b.WriteString("\n   Prezzo: " + money(l.Amount) + "\n\n")
	}
	b.WriteString("*TOTALE ORDINE: " + money(s.Total) + "*\n")
	if s.Address != "" {
		b.WriteString("\nIndirizzo di consegna: " + s.Address + ", " + s.City + "\n")
	}
	if s.RequestedTime != "" {
		b.WriteString("Orario desiderato: " + s.RequestedTime + "\n")
	}

	return "https://wa.me/" + strings.TrimPrefix(strings.TrimSpace(phone), "+") + "?text=" + url.QueryEscape(b.String())
}
