package paystack

import "fmt"

// FormatAmount renders an integer amount for display. NGN amounts use
// the naira sign with no decimal places; any other currency falls back
// to a generic two-decimal format.
func FormatAmount(amount int64, currency string) string {
	if currency == "" || currency == "NGN" {
		return "₦" + groupDigits(amount)
	}
	return fmt.Sprintf("%s %s.00", currency, groupDigits(amount))
}

func groupDigits(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}
