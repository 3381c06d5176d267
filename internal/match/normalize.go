// Package match implements fuzzy NAP comparison: normalization of the messy
// formatting conventions directories use, plus similarity-based field
// verdicts.
//
// The same business shows up as:
//
//	"St" vs "Street" vs "St."
//	"(310) 555-0123" vs "310-555-0123" vs "3105550123"
//	"Acme Plumbing" vs "Acme Plumbing Co." vs "ACME PLUMBING CO"
//	"Suite 100" vs "Ste 100" vs "Ste. 100" vs "#100"
package match

import (
	"regexp"
	"strings"
)

var (
	nonDigitRe    = regexp.MustCompile(`\D`)
	namePunctRe   = regexp.MustCompile(`[.,\-&]`)
	nameSuffixRe  = regexp.MustCompile(`\b(llc|inc|co|corp|company|ltd)\b`)
	suiteRe       = regexp.MustCompile(`\b(suite|ste|unit|apt)\b\.?\s*|#\s*`)
	directionalRe = regexp.MustCompile(`\b(north|south|east|west)\b`)
	addrPunctRe   = regexp.MustCompile(`[.,]`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// streetAbbr maps full street suffixes to their canonical abbreviation.
var streetAbbr = map[string]string{
	"street":    "st",
	"avenue":    "ave",
	"boulevard": "blvd",
	"drive":     "dr",
	"road":      "rd",
	"lane":      "ln",
	"court":     "ct",
	"circle":    "cir",
	"place":     "pl",
	"terrace":   "ter",
	"way":       "way",
}

// NormalizePhone reduces a phone number to its raw digit string. An 11-digit
// number with a leading 1 drops the US country code.
func NormalizePhone(phone string) string {
	digits := nonDigitRe.ReplaceAllString(phone, "")
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	return digits
}

// NormalizeName lowercases a business name, strips corporate suffixes and
// punctuation, and collapses whitespace.
func NormalizeName(name string) string {
	s := strings.ToLower(name)
	s = namePunctRe.ReplaceAllString(s, " ")
	s = nameSuffixRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeAddress lowercases an address, canonicalizes suite markers,
// directionals, and street suffixes, strips punctuation, and collapses
// whitespace. Idempotent: normalizing an already-normalized address is a
// no-op.
func NormalizeAddress(addr string) string {
	s := strings.ToLower(addr)
	s = suiteRe.ReplaceAllString(s, "ste ")
	s = directionalRe.ReplaceAllStringFunc(s, func(m string) string {
		return m[:1]
	})
	s = addrPunctRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")

	words := strings.Split(strings.TrimSpace(s), " ")
	for i, w := range words {
		if abbr, ok := streetAbbr[w]; ok {
			words[i] = abbr
		}
	}
	return strings.Join(words, " ")
}
