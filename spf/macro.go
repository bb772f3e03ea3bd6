package spf

import (
	"fmt"
	"net"
	"slices"
	"strings"
)

// Placeholder sender context. The tool inspects records without a real SMTP
// transaction, so macros expand against these fixed values.
const (
	// PlaceholderSenderIP is the sender address used for %{i}, %{c}, %{ir} and %{v}.
	// It is from the TEST-NET-1 documentation range.
	PlaceholderSenderIP = "192.0.2.1"

	// PlaceholderLocalPart is the sender local-part used for %{l} and %{s}.
	PlaceholderLocalPart = "user"

	// macroUnknown is used where RFC 7208 would need data we do not have.
	macroUnknown = "unknown"
)

// MacroContext is the synthetic sender context macros are expanded against.
type MacroContext struct {
	SenderIP  net.IP
	LocalPart string
	Domain    string
}

// NewMacroContext returns the placeholder context for baseDomain:
// sender "user@<baseDomain>" connecting from 192.0.2.1.
func NewMacroContext(baseDomain string) MacroContext {
	return MacroContext{
		SenderIP:  net.ParseIP(PlaceholderSenderIP),
		LocalPart: PlaceholderLocalPart,
		Domain:    baseDomain,
	}
}

// Sender returns the synthetic sender mailbox.
func (c MacroContext) Sender() string {
	return c.LocalPart + "@" + c.Domain
}

// macro returns the value of a single macro letter set, and false for
// letters we do not expand.
func (c MacroContext) macro(name string) (string, bool) {
	switch name {
	case "s":
		return c.Sender(), true
	case "l":
		return c.LocalPart, true
	case "d":
		return c.Domain, true
	case "i", "c":
		return c.SenderIP.String(), true
	case "p", "r":
		return macroUnknown, true
	case "h":
		return "mail." + c.Domain, true
	case "t":
		return "0", true
	case "ir":
		return reverseIP(c.SenderIP), true
	case "v":
		if c.SenderIP.To4() != nil {
			return "in-addr", true
		}
		return "ip6", true
	}
	return "", false
}

// Expand replaces the recognized %{x} tokens in template. Unrecognized tokens,
// transformer digits, the "r" suffix and delimiters are not interpreted and
// stay in the output verbatim.
func (c MacroContext) Expand(template string) string {
	if !strings.Contains(template, "%{") {
		return template
	}

	var b strings.Builder
	rest := template
	for {
		start := strings.Index(rest, "%{")
		if start < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			b.WriteString(rest)
			break
		}
		end += start

		b.WriteString(rest[:start])
		v, ok := c.macro(rest[start+2 : end])
		if !ok {
			// The span may hide a recognized token, as in %{%{s}}.
			b.WriteByte('%')
			rest = rest[start+1:]
			continue
		}
		b.WriteString(v)
		rest = rest[end+1:]
	}
	return b.String()
}

// Expand expands the macros of an include target against baseDomain.
func Expand(template, baseDomain string) string {
	return NewMacroContext(baseDomain).Expand(template)
}

// reverseIP returns the address in reverse-lookup order: octets for IPv4,
// nibbles for IPv6.
func reverseIP(ip net.IP) string {
	if ip4 := ip.To4(); ip4 != nil {
		return fmt.Sprintf("%d.%d.%d.%d", ip4[3], ip4[2], ip4[1], ip4[0])
	}

	ip6 := ip.To16()
	if ip6 == nil {
		return ""
	}
	nibbles := make([]string, 0, 32)
	for _, by := range ip6 {
		nibbles = append(nibbles, fmt.Sprintf("%x", by>>4), fmt.Sprintf("%x", by&0xf))
	}
	slices.Reverse(nibbles)
	return strings.Join(nibbles, ".")
}
