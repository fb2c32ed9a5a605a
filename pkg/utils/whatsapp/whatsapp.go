// Package whatsapp derives wa.me outreach links from the free-text phone
// numbers leads type into the form.
package whatsapp

import (
	"net/url"
	"strings"
)

// CountryCode is prefixed to every number; the agency only serves Brazil.
const CountryCode = "55"

const greeting = "Olá, vi seu interesse na criação de logo pela Agiliza Marketing. Podemos conversar?"

// Digits strips everything that is not 0-9.
func Digits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Link builds the deep link with the canned greeting pre-filled. Malformed
// or short numbers still produce a link; it is just not a usable one.
func Link(phone string) string {
	return "https://wa.me/" + CountryCode + Digits(phone) + "?text=" + url.QueryEscape(greeting)
}
