// Package receipt renders printable till receipts from settled bills.
package receipt

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/example/pos-terminal/internal/infrastructure/store"
)

const width = 38

// Render builds the fixed-width text receipt for a settled bill, the form a
// thermal printer takes verbatim.
func Render(b store.Bill) string {
	var sb strings.Builder

	center(&sb, "SUPERMARKET")
	center(&sb, "*** RECEIPT ***")
	sb.WriteString(strings.Repeat("-", width) + "\n")
	fmt.Fprintf(&sb, "Bill:     %s\n", shortID(b.ID))
	fmt.Fprintf(&sb, "Terminal: %s\n", shortID(b.TerminalID))
	fmt.Fprintf(&sb, "Date:     %s\n", b.CreatedAt.Format("2006-01-02 15:04:05"))
	if b.MemberID != "" {
		fmt.Fprintf(&sb, "Member:   %s\n", shortID(b.MemberID))
	}
	sb.WriteString(strings.Repeat("-", width) + "\n")

	for _, it := range b.Items {
		name := it.Name
		if name == "" {
			name = it.ProductID
		}
		if len(name) > width {
			name = name[:width]
		}
		sb.WriteString(name + "\n")
		line := fmt.Sprintf("  %d x %s", it.Quantity, it.UnitPrice.StringFixed(2))
		amount := it.UnitPrice.Mul(qty(it.Quantity)).StringFixed(2)
		sb.WriteString(pad(line, amount) + "\n")
	}

	sb.WriteString(strings.Repeat("-", width) + "\n")
	sb.WriteString(pad("TOTAL", b.Total.StringFixed(2)) + "\n")
	sb.WriteString(pad("PAID BY", strings.ToUpper(b.PaymentMethod)) + "\n")
	sb.WriteString(strings.Repeat("-", width) + "\n")
	center(&sb, "Thank you for shopping!")

	return sb.String()
}

func qty(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func center(sb *strings.Builder, s string) {
	if len(s) >= width {
		sb.WriteString(s + "\n")
		return
	}
	left := (width - len(s)) / 2
	sb.WriteString(strings.Repeat(" ", left) + s + "\n")
}

// pad right-aligns value against label on one receipt line.
func pad(label, value string) string {
	gap := width - len(label) - len(value)
	if gap < 1 {
		gap = 1
	}
	return label + strings.Repeat(" ", gap) + value
}
