// Package dns is the lookup gateway used by the SPF walk. It only needs TXT
// data, but keeps NXDOMAIN and "no answer" apart so callers can report them
// separately.
package dns

import (
	"context"
	"errors"
)

// DNS lookup errors.
var (
	// ErrDNSNotFound is returned when the queried name does not exist (NXDOMAIN).
	ErrDNSNotFound = errors.New("dns: domain does not exist")

	// ErrDNSNoAnswer is returned when the name exists but carries no records
	// of the requested type (NOERROR with an empty answer section).
	ErrDNSNoAnswer = errors.New("dns: no answer")

	ErrDNSTimeout  = errors.New("dns: query timed out")
	ErrDNSServFail = errors.New("dns: server failure")
	ErrDNSRefused  = errors.New("dns: query refused")

	// ErrDNSBogus is returned when DNSSEC validation failed upstream.
	ErrDNSBogus = errors.New("dns: DNSSEC validation failed")
)

// Result holds the records returned by a lookup.
type Result[T any] struct {
	Records []T

	// Authentic indicates the response was DNSSEC-validated by the upstream resolver.
	Authentic bool
}

// Resolver is the capability the SPF walk depends on.
type Resolver interface {
	// LookupTXT returns the TXT records published for name.
	LookupTXT(ctx context.Context, name string) (Result[string], error)
}

// IsNotFound reports whether err is an NXDOMAIN error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDNSNotFound)
}

// IsNoAnswer reports whether err means the name had no records of the queried type.
func IsNoAnswer(err error) bool {
	return errors.Is(err, ErrDNSNoAnswer)
}

func IsTimeout(err error) bool {
	return errors.Is(err, ErrDNSTimeout)
}

func IsServFail(err error) bool {
	return errors.Is(err, ErrDNSServFail)
}

// IsTemporary reports whether a retry later could succeed.
func IsTemporary(err error) bool {
	return IsTimeout(err) || IsServFail(err)
}

// ensureAbsolute ensures the domain name ends with a dot (FQDN format).
func ensureAbsolute(name string) string {
	if len(name) == 0 || name[len(name)-1] != '.' {
		return name + "."
	}
	return name
}
