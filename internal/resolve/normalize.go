// Package resolve implements entity resolution over dealer-locator records:
// key normalization, intra-source deduplication, cross-source matching,
// confidence scoring, and canonical merge.
package resolve

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/leadgrid/dealerxref/internal/model"
)

// KeySet holds the comparable identity keys derived from one record.
// An empty key means "no signal" and never matches anything.
type KeySet struct {
	Phone  string
	Domain string
	Name   string
}

// Keys derives the full key set for a record. Never fails: fields that
// cannot be parsed produce empty keys.
func Keys(r model.RawRecord) KeySet {
	return KeySet{
		Phone:  PhoneKey(r.Phone),
		Domain: DomainKey(r.Website),
		Name:   NameKey(r.Name),
	}
}

// PhoneKey reduces a free-text phone number to its 10-digit US form.
// An 11-digit number with a leading 1 has the country code stripped.
// Anything that does not land on exactly 10 digits yields an empty key;
// ambiguous and foreign numbers are not force-fit.
func PhoneKey(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return ""
	}
	return digits
}

// DomainKey reduces a URL or bare host to a lowercased registrable host:
// scheme, www prefix, port, path, and query are all dropped. Returns an
// empty key when no plausible host can be extracted.
func DomainKey(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil {
			return ""
		}
		s = u.Hostname()
	} else {
		// Bare host, possibly with a trailing path or query.
		if i := strings.IndexAny(s, "/?#"); i >= 0 {
			s = s[:i]
		}
		if i := strings.IndexByte(s, ':'); i >= 0 {
			s = s[:i]
		}
	}

	s = strings.TrimPrefix(s, "www.")
	s = strings.TrimSuffix(s, ".")

	// A host without a dot ("N/A", "none") is not a usable domain.
	if s == "" || !strings.Contains(s, ".") || strings.ContainsAny(s, " \t") {
		return ""
	}
	return s
}

// NameKey uppercases a business name, replaces punctuation with spaces, and
// collapses whitespace. Legal entity suffixes (LLC, INC, ...) are kept:
// they feed the fuzzy-name validation signal, and pre-stripping them
// over-merges unrelated businesses that share a short common name.
func NameKey(raw string) string {
	up := strings.ToUpper(strings.TrimSpace(raw))
	if up == "" {
		return ""
	}

	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, up)

	return strings.Join(strings.Fields(mapped), " ")
}
