package spftool

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/synqronlabs/spftool/dns"
	"github.com/synqronlabs/spftool/spf"
)

var discard = slog.New(slog.DiscardHandler)

func TestInspect_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		txt         map[string][]string
		opts        Options
		wantKind    spf.Kind
		wantMessage string
		wantLookups int
		wantFailed  string
	}{
		{
			name: "plain record",
			txt: map[string][]string{
				"example.com.": {"v=spf1 ip4:192.0.2.0/24 -all"},
			},
			opts:        Options{Domain: "example.com", RecursionLimit: 5},
			wantKind:    spf.KindRecord,
			wantMessage: "v=spf1 ip4:192.0.2.0/24 -all",
			wantLookups: 1,
		},
		{
			name: "process keeps includes",
			txt: map[string][]string{
				"a.com.": {"v=spf1 include:b.com -all"},
				"b.com.": {"v=spf1 ip4:203.0.113.0/24 -all"},
			},
			opts:        Options{Domain: "a.com", RecursionLimit: 5},
			wantKind:    spf.KindRecord,
			wantMessage: "v=spf1 include:b.com -all",
			wantLookups: 2,
		},
		{
			name: "flatten",
			txt: map[string][]string{
				"a.com.": {"v=spf1 include:b.com -all"},
				"b.com.": {"v=spf1 ip4:203.0.113.0/24 -all"},
			},
			opts:        Options{Domain: "a.com", RecursionLimit: 5, Flatten: true},
			wantKind:    spf.KindRecord,
			wantMessage: "v=spf1 ip4:203.0.113.0/24 -all -all",
			wantLookups: 2,
		},
		{
			name: "self include",
			txt: map[string][]string{
				"c.com.": {"v=spf1 include:c.com -all"},
			},
			opts:        Options{Domain: "c.com", RecursionLimit: 5, Flatten: true},
			wantKind:    spf.KindAlreadyQueried,
			wantMessage: "Domain already looked up",
			wantLookups: 1,
			wantFailed:  "c.com",
		},
		{
			name: "zero recursion limit",
			txt: map[string][]string{
				"a.com.": {"v=spf1 include:b.com -all"},
			},
			opts:        Options{Domain: "a.com"},
			wantKind:    spf.KindRecursionExceeded,
			wantMessage: "Exceeded recursion limit of 0 for includes in domain a.com",
			wantLookups: 1,
			wantFailed:  "a.com",
		},
		{
			name: "no txt records",
			txt: map[string][]string{
				"example.com.": {},
			},
			opts:        Options{Domain: "example.com", RecursionLimit: 5},
			wantKind:    spf.KindNoAnswer,
			wantMessage: "No answer received for SPF record query",
			wantLookups: 1,
			wantFailed:  "example.com",
		},
		{
			name:        "nonexistent domain",
			txt:         map[string][]string{},
			opts:        Options{Domain: "missing.example", RecursionLimit: 5},
			wantKind:    spf.KindNonexistentDomain,
			wantMessage: "Domain does not exist",
			wantLookups: 1,
			wantFailed:  "missing.example",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Logger = discard
			resolver := &dns.MockResolver{TXT: tt.txt}

			report, err := Inspect(context.Background(), resolver, tt.opts)
			if err != nil {
				t.Fatalf("Inspect failed: %v", err)
			}

			kind, err := report.Outcome()
			if err != nil {
				t.Fatalf("Outcome failed: %v", err)
			}
			if kind != tt.wantKind {
				t.Fatalf("Expected kind %v, got %v (%s)", tt.wantKind, kind, report.Message)
			}
			if report.Message != tt.wantMessage {
				t.Errorf("Expected message %q, got %q", tt.wantMessage, report.Message)
			}
			if report.Lookups != tt.wantLookups {
				t.Errorf("Expected %d lookups, got %d", tt.wantLookups, report.Lookups)
			}
			if report.FailedDomain != tt.wantFailed {
				t.Errorf("Expected failed domain %q, got %q", tt.wantFailed, report.FailedDomain)
			}
			if report.Failed() != (tt.wantKind != spf.KindRecord) {
				t.Errorf("Failed() = %v for kind %v", report.Failed(), kind)
			}
			if report.Failed() && report.Record != "" {
				t.Errorf("Failed report carries record %q", report.Record)
			}
			if len(report.Visited) != report.Lookups {
				t.Errorf("Visited %v does not match %d lookups", report.Visited, report.Lookups)
			}
		})
	}
}

func TestInspect_ReportFields(t *testing.T) {
	resolver := &dns.MockResolver{TXT: map[string][]string{
		"_spf.example.co.uk.": {"v=spf1 include:a.example.co.uk -all"},
		"a.example.co.uk.":    {"v=spf1 ip4:192.0.2.1"},
	}}

	report, err := Inspect(context.Background(), resolver, Options{
		Domain:         " _spf.example.co.uk ",
		RecursionLimit: 3,
		Flatten:        true,
		Logger:         discard,
	})
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}

	if report.Domain != "_spf.example.co.uk" {
		t.Errorf("Expected trimmed domain, got %q", report.Domain)
	}
	if report.OrganizationalDomain != "example.co.uk" {
		t.Errorf("Expected organizational domain example.co.uk, got %q", report.OrganizationalDomain)
	}
	if report.SessionID == "" {
		t.Error("Expected a session ID")
	}
	if !report.Flattened {
		t.Error("Expected Flattened to be set")
	}
	if report.RecursionLimit != 3 {
		t.Errorf("Expected recursion limit 3, got %d", report.RecursionLimit)
	}
	if report.Record != "v=spf1 ip4:192.0.2.1 -all" {
		t.Errorf("Unexpected flattened record %q", report.Record)
	}
	if diff := cmp.Diff([]string{"_spf.example.co.uk", "a.example.co.uk"}, report.Visited); diff != "" {
		t.Errorf("Visited mismatch (-want +got):\n%s", diff)
	}
	if report.Warning != "" || len(report.Notes) != 0 {
		t.Errorf("Unexpected warning %q or notes %v", report.Warning, report.Notes)
	}
}

func TestInspect_LookupWarning(t *testing.T) {
	txt := map[string][]string{
		"d0.example.": {"v=spf1 include:d1.example include:d2.example -all"},
		"d1.example.": {"v=spf1 include:d3.example"},
		"d2.example.": {"v=spf1 ip4:192.0.2.2"},
		"d3.example.": {"v=spf1 ip4:192.0.2.3"},
	}

	tests := []struct {
		threshold int
		want      string
	}{
		{threshold: 0, want: ""},
		{threshold: 4, want: ""},
		{threshold: 3, want: "More than 3 lookups were performed"},
	}

	for _, tt := range tests {
		report, err := Inspect(context.Background(), &dns.MockResolver{TXT: txt}, Options{
			Domain:         "d0.example",
			RecursionLimit: 5,
			WarnThreshold:  tt.threshold,
			Logger:         discard,
		})
		if err != nil {
			t.Fatalf("Inspect failed: %v", err)
		}
		if report.Lookups != 4 {
			t.Fatalf("Expected 4 lookups, got %d", report.Lookups)
		}
		if report.Warning != tt.want {
			t.Errorf("threshold %d: expected warning %q, got %q", tt.threshold, tt.want, report.Warning)
		}
	}
}

func TestInspect_DefaultWarnThreshold(t *testing.T) {
	// d0 includes d1..d11: twelve queries in total.
	txt := map[string][]string{}
	var root []string
	for i := 1; i <= 11; i++ {
		name := "d" + strings.Repeat("x", i) + ".example"
		root = append(root, "include:"+name)
		txt[name+"."] = []string{"v=spf1 -all"}
	}
	txt["d0.example."] = []string{"v=spf1 " + strings.Join(root, " ") + " -all"}

	report, err := Inspect(context.Background(), &dns.MockResolver{TXT: txt}, Options{
		Domain:         "d0.example",
		RecursionLimit: DefaultRecursionLimit,
		Logger:         discard,
	})
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if report.Lookups != 12 {
		t.Fatalf("Expected 12 lookups, got %d", report.Lookups)
	}
	if report.Warning != "More than 10 lookups were performed" {
		t.Errorf("Unexpected warning %q", report.Warning)
	}
}

func TestInspect_Notes(t *testing.T) {
	resolver := &dns.MockResolver{TXT: map[string][]string{}}

	report, err := Inspect(context.Background(), resolver, Options{Domain: "co.uk", Logger: discard})
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if len(report.Notes) != 1 || report.Notes[0] != "Domain is a public suffix" {
		t.Errorf("Unexpected notes %v", report.Notes)
	}

	report, err = Inspect(context.Background(), resolver, Options{Domain: "bücher.example", Logger: discard})
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if len(report.Notes) != 1 || !strings.Contains(report.Notes[0], "non-ASCII") {
		t.Errorf("Unexpected notes %v", report.Notes)
	}
}

func TestInspect_InvalidOptions(t *testing.T) {
	resolver := &dns.MockResolver{}

	tests := []struct {
		name string
		opts Options
		want error
	}{
		{"empty domain", Options{}, ErrEmptyDomain},
		{"blank domain", Options{Domain: "  "}, ErrEmptyDomain},
		{"negative limit", Options{Domain: "example.com", RecursionLimit: -1}, ErrInvalidRecursionLimit},
		{"negative threshold", Options{Domain: "example.com", WarnThreshold: -1}, ErrInvalidWarnThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Inspect(context.Background(), resolver, tt.opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
			if report != nil {
				t.Error("Expected nil report on error")
			}
		})
	}

	if _, err := Inspect(context.Background(), nil, Options{Domain: "example.com"}); !errors.Is(err, ErrNoResolver) {
		t.Errorf("Expected ErrNoResolver, got %v", err)
	}
}
