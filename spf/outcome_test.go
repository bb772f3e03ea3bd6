package spf

import (
	"errors"
	"testing"

	"github.com/synqronlabs/spftool/dns"
)

func TestOutcomeMessageAndErr(t *testing.T) {
	tests := []struct {
		name    string
		out     Outcome
		message string
		err     error
	}{
		{
			name:    "record",
			out:     Outcome{Kind: KindRecord, Domain: "example.com", Record: "v=spf1 -all"},
			message: "v=spf1 -all",
		},
		{
			name:    "not found",
			out:     Outcome{Kind: KindNotFound, Domain: "example.com"},
			message: "No SPF record found",
			err:     ErrNoRecord,
		},
		{
			name:    "no answer",
			out:     Outcome{Kind: KindNoAnswer, Domain: "example.com"},
			message: "No answer received for SPF record query",
			err:     ErrNoAnswer,
		},
		{
			name:    "nonexistent domain",
			out:     Outcome{Kind: KindNonexistentDomain, Domain: "example.com"},
			message: "Domain does not exist",
			err:     ErrDomainNotExist,
		},
		{
			name:    "already queried",
			out:     Outcome{Kind: KindAlreadyQueried, Domain: "example.com"},
			message: "Domain already looked up",
			err:     ErrDomainAlreadyVisited,
		},
		{
			name:    "recursion exceeded",
			out:     Outcome{Kind: KindRecursionExceeded, Domain: "example.com", Limit: 3},
			message: "Exceeded recursion limit of 3 for includes in domain example.com",
			err:     ErrRecursionLimit,
		},
		{
			name:    "resolver error",
			out:     Outcome{Kind: KindError, Domain: "example.com", Cause: dns.ErrDNSTimeout},
			message: "An error occurred: dns: query timed out",
			err:     dns.ErrDNSTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.out.Message(); got != tt.message {
				t.Errorf("Message() = %q, want %q", got, tt.message)
			}
			err := tt.out.Err()
			if tt.err == nil {
				if err != nil {
					t.Errorf("Err() = %v, want nil", err)
				}
				if tt.out.Failed() {
					t.Error("Failed() = true for a record")
				}
				return
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("Err() = %v, want %v", err, tt.err)
			}
			if !tt.out.Failed() {
				t.Error("Failed() = false for a failure")
			}
		})
	}
}

func TestKindString(t *testing.T) {
	for k := KindRecord; k <= KindError; k++ {
		parsed, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q) error = %v", k.String(), err)
		}
		if parsed != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k.String(), parsed, k)
		}
	}

	if _, err := ParseKind("bogus"); err == nil {
		t.Error("ParseKind(bogus) expected error")
	}
	if got := Kind(42).String(); got != "kind(42)" {
		t.Errorf("Kind(42).String() = %q", got)
	}
}
