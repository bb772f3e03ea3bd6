package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"
	"golang.org/x/net/publicsuffix"
)

// ContainsNonASCII checks if a string contains any non-ASCII characters (bytes > 127).
// Domains are queried as given, so a non-ASCII name is usually a missing
// IDNA conversion on the caller's side.
func ContainsNonASCII(s string) bool {
	for _, v := range s {
		if v >= utf8.RuneSelf {
			return true
		}
	}
	return false
}

// NewID returns a new ULID string. IDs sort by creation time.
func NewID() string {
	return ulid.Make().String()
}

// OrganizationalDomain returns the organizational domain for the given domain.
//
// The organizational domain is the domain directly under the public suffix.
// For example:
//   - example.com -> example.com
//   - _spf.example.com -> example.com
//   - spf.example.co.uk -> example.co.uk
//
// The input is lower-cased and a trailing dot is dropped for the Public
// Suffix List lookup only.
func OrganizationalDomain(domain string) string {
	domain = strings.TrimSuffix(strings.ToLower(domain), ".")
	if domain == "" {
		return ""
	}

	etld1, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		// "localhost", bare suffixes and malformed names
		return domain
	}
	return etld1
}

// IsPublicSuffix reports whether domain is itself a public suffix such as
// "com" or "co.uk". Nobody can publish an SPF record for those.
func IsPublicSuffix(domain string) bool {
	d := strings.TrimSuffix(strings.ToLower(domain), ".")
	if d == "" {
		return false
	}
	suffix, _ := publicsuffix.PublicSuffix(d)
	return suffix == d
}
