package classifier

import (
	"regexp"
	"strings"
)

// maxMessageLength caps inbound messages before any other processing.
const maxMessageLength = 2000

var (
	htmlTagRe = regexp.MustCompile(`<[^>]+>`)
	urlRe     = regexp.MustCompile(`https?://[^\s]+`)
	emailRe   = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	cardRe    = regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`)
	ssnRe     = regexp.MustCompile(`\b\d{3}-?\d{2}-?\d{4}\b`)
	phoneRe   = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
)

// Sanitize strips markup and redacts personal identifiers from an inbound
// message before it reaches classification or extraction. The original text
// is never stored. Redaction order matters: cards and SSNs are matched
// before the looser phone pattern.
func Sanitize(input string) string {
	s := input
	if len(s) > maxMessageLength {
		s = s[:maxMessageLength]
	}

	s = htmlTagRe.ReplaceAllString(s, "")
	s = urlRe.ReplaceAllString(s, "[URL_REMOVED]")
	s = emailRe.ReplaceAllString(s, "[EMAIL_REMOVED]")
	s = cardRe.ReplaceAllString(s, "[CARD_REMOVED]")
	s = ssnRe.ReplaceAllString(s, "[SSN_REMOVED]")
	s = phoneRe.ReplaceAllString(s, "[PHONE_REMOVED]")

	return strings.Join(strings.Fields(s), " ")
}
