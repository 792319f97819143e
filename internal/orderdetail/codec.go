package orderdetail

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	separator = "---"
	currency  = "€"

	prefixCustomer = "Cliente:"
	prefixAddress  = "Indirizzo:"
	prefixPhone    = "Tel:"
	prefixTime     = "Orario Richiesto:"
	prefixFee      = "Consegna:"
	prefixTotal    = "TOTALE:"

	extrasOpen = "(Extra:"
)

var itemPattern = regexp.MustCompile(`^(\d+)x\s+(.+)$`)

// Render produces the orderDetails text for s.
func Render(s Summary) string {
	var b strings.Builder

	b.WriteString(prefixCustomer + " " + s.Customer + "\n")
	b.WriteString(prefixAddress + " " + s.Address + ", " + s.City + "\n")
	b.WriteString(prefixPhone + " " + s.Phone + "\n")
	b.WriteString(prefixTime + " " + s.RequestedTime + "\n")
	b.WriteString(separator + "\n")

	for _, l := range s.Lines {
		b.WriteString(strconv.Itoa(l.Quantity) + "x " + l.Name)
		if len(l.Extras) > 0 {
			b.WriteString(" " + extrasOpen + " " + strings.Join(l.Extras, ", ") + ")")
		}
		b.WriteString(" - " + money(l.Amount) + "\n")
	}

	b.WriteString(separator + "\n")
	b.WriteString(prefixFee + " " + money(s.DeliveryFee) + "\n")
	b.WriteString(prefixTotal + " " + money(s.Total))

	return b.String()
}

func money(d decimal.Decimal) string {
	return currency + d.StringFixed(2)
}

// Parse recovers a summary from orderDetails text. Lines it does not
// recognise are skipped.
func Parse(text string) Summary {
	var s Summary

	for _, raw := range splitLines(text) {
		line := strings.TrimSpace(raw)
		switch {
		case line == "" || strings.HasPrefix(line, separator):
		case strings.HasPrefix(line, prefixCustomer):
			s.Customer = value(line, prefixCustomer)
		case strings.HasPrefix(line, prefixAddress):
			s.Address, s.City = splitAddress(value(line, prefixAddress))
		case strings.HasPrefix(line, prefixPhone):
			s.Phone = value(line, prefixPhone)
		case strings.HasPrefix(line, prefixTime):
			s.RequestedTime = value(line, prefixTime)
		case strings.HasPrefix(line, prefixFee):
			s.DeliveryFee, _ = amount(line)
		case strings.HasPrefix(line, prefixTotal):
			s.Total, _ = amount(line)
		default:
			if l, ok := parseLine(line); ok {
				s.Lines = append(s.Lines, l)
			}
		}
	}

	return s
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

func value(line, prefix string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, prefix))
}

// splitAddress splits "street, city" at the last comma.
func splitAddress(v string) (string, string) {
	i := strings.LastIndex(v, ",")
	if i < 0 {
		return v, ""
	}
	return strings.TrimSpace(v[:i]), strings.TrimSpace(v[i+1:])
}

// amount reads the number after the currency marker.
func amount(line string) (decimal.Decimal, bool) {
	i := strings.Index(line, currency)
	if i < 0 {
		return decimal.Zero, false
	}
	raw := strings.TrimSpace(line[i+len(currency):])
	raw = strings.ReplaceAll(raw, ",", ".")
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// parseLine reads "2x Name (Extra: a, b) - €12.00". The extras and price
// fragments are optional.
func parseLine(line string) (Line, bool) {
	m := itemPattern.FindStringSubmatch(line)
	if m == nil {
		return Line{}, false
	}
	qty, err := strconv.Atoi(m[1])
	if err != nil || qty < 1 {
		return Line{}, false
	}

	l := Line{Quantity: qty}
	l.Amount, _ = amount(m[2])

	rest := m[2]
	if i := strings.Index(rest, currency); i >= 0 {
		rest = rest[:i]
	}
	rest = strings.TrimSpace(rest)
	rest = strings.TrimSpace(strings.TrimSuffix(rest, "-"))

	if i := strings.Index(rest, extrasOpen); i >= 0 {
		extras := strings.TrimSuffix(strings.TrimSpace(rest[i+len(extrasOpen):]), ")")
		for _, e := range strings.Split(extras, ",") {
			if e = strings.TrimSpace(e); e != "" {
				l.Extras = append(l.Extras, e)
			}
		}
		rest = strings.TrimSpace(rest[:i])
	}

	if rest == "" {
		return Line{}, false
	}
	l.Name = rest
	return l, true
}
