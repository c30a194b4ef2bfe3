// Package whatsapp builds wa.me deep links. The format is interop-sensitive:
// WhatsApp's web and app handlers both parse it, so the output must stay
// exactly https://wa.me/<digits>?text=<encoded>.
package whatsapp

import (
	"net/url"
	"strings"
)

// Digits strips everything but ASCII digits from a free-form phone number.
func Digits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// needsIndiaCode reports whether the digits look like a bare Indian mobile
// number: exactly 10 digits starting with 6-9 and no country code yet.
func needsIndiaCode(digits string) bool {
	if len(digits) != 10 {
		return false
	}
	return digits[0] >= '6' && digits[0] <= '9'
}

// Link builds the deep link opening a WhatsApp chat with the given number
// and a pre-filled message.
func Link(phone, message string) string {
	digits := Digits(phone)
	if needsIndiaCode(digits) {
		digits = "91" + digits
	}
	return "https://wa.me/" + digits + "?text=" + encode(message)
}

// encode percent-encodes the message. Spaces become %20, not +: the link
// lands in a URL path context, where + is literal.
func encode(message string) string {
	return strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}
