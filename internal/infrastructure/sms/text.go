package sms

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// đ has no canonical decomposition, so it is spelled out before folding.
var stroke = strings.NewReplacer("đ", "dj", "Đ", "Dj")

// FoldDiacritics turns Serbian Latin text into plain ASCII letters so a message
// fits the GSM-7 alphabet: "Čišćenje" becomes "Ciscenje".
func FoldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, stroke.Replace(s))
	if err != nil {
		return s
	}
	return out
}

// NormalizePhone converts local Serbian numbers to international form.
// "064 123-4567" and "+381641234567" both become "+381641234567".
func NormalizePhone(phone string) (string, error) {
	var digits strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == '+' && i == 0:
			digits.WriteRune(r)
		case r == ' ' || r == '-' || r == '/' || r == '(' || r == ')':
		default:
			return "", fmt.Errorf("invalid phone number %q", phone)
		}
	}

	n := digits.String()
	switch {
	case strings.HasPrefix(n, "+"):
	case strings.HasPrefix(n, "00"):
		n = "+" + n[2:]
	case strings.HasPrefix(n, "0"):
		n = "+381" + n[1:]
	case strings.HasPrefix(n, "381"):
		n = "+" + n
	}

	if len(n) < 9 || !strings.HasPrefix(n, "+") {
		return "", fmt.Errorf("invalid phone number %q", phone)
	}
	return n, nil
}
