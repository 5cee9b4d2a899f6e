package order

import (
	"fmt"
	"net/url"
	"strings"
)

// ConfigurationError marks a dispatch attempt that cannot proceed because the
// store is misconfigured. The cart itself stays untouched.
type ConfigurationError struct {
	Reason string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("store configuration: %s", e.Reason)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WhatsAppURL builds the wa.me deep link for a rendered order message. The
// destination number is stripped to digits defensively even when the stored
// settings value is already clean; an empty result fails fast instead of
// producing a malformed link.
func WhatsAppURL(message, whatsappNumber string) (string, error) {
	digits := digitsOnly(whatsappNumber)
	if digits == "" {
		return "", ConfigurationError{Reason: "whatsapp number not set"}
	}

	// url.QueryEscape encodes spaces as "+", which WhatsApp renders
	// literally; match encodeURIComponent instead.
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + digits + "?text=" + encoded, nil
}
