package spftool

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/synqronlabs/spftool/dns"
	"github.com/synqronlabs/spftool/spf"
	"github.com/synqronlabs/spftool/utils"
)

const (
	// DefaultRecursionLimit is the include depth allowed below the root record.
	DefaultRecursionLimit = 5

	// DefaultWarnThreshold is the lookup count above which a report warns.
	// RFC 7208 section 4.6.4 caps DNS-querying terms at 10.
	DefaultWarnThreshold = 10
)

// Options configures a single Inspect run.
type Options struct {
	// Domain is queried as given; callers convert IDNs to A-labels first.
	Domain string

	// RecursionLimit is the include depth allowed below the root record.
	// Zero rejects any include.
	RecursionLimit int

	// Flatten inlines every include of a successfully processed record.
	Flatten bool

	// WarnThreshold overrides DefaultWarnThreshold when positive.
	WarnThreshold int

	// Logger receives the session's log lines. Defaults to slog.Default().
	Logger *slog.Logger
}

// Validate checks the options for values Inspect cannot run with.
func (o Options) Validate() error {
	if strings.TrimSpace(o.Domain) == "" {
		return ErrEmptyDomain
	}
	if o.RecursionLimit < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRecursionLimit, o.RecursionLimit)
	}
	if o.WarnThreshold < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWarnThreshold, o.WarnThreshold)
	}
	return nil
}

func (o Options) warnThreshold() int {
	if o.WarnThreshold > 0 {
		return o.WarnThreshold
	}
	return DefaultWarnThreshold
}

// Inspect resolves the SPF record of opts.Domain, walks its includes and, when
// requested, flattens it. Resolution failures end up in the report; the
// returned error is reserved for invalid options.
func Inspect(ctx context.Context, resolver dns.Resolver, opts Options) (*Report, error) {
	if resolver == nil {
		return nil, ErrNoResolver
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	domain := strings.TrimSpace(opts.Domain)
	session := spf.NewSession(resolver, logger)

	report := &Report{
		Domain:               domain,
		OrganizationalDomain: utils.OrganizationalDomain(domain),
		SessionID:            session.ID(),
		RecursionLimit:       opts.RecursionLimit,
	}
	if utils.ContainsNonASCII(domain) {
		report.Notes = append(report.Notes, "Domain contains non-ASCII characters and is queried as given")
	}
	if utils.IsPublicSuffix(domain) {
		report.Notes = append(report.Notes, "Domain is a public suffix")
	}

	out := session.Lookup(ctx, domain)
	if out.OK() {
		out = session.Process(ctx, out.Record, domain, opts.RecursionLimit)
	}
	if out.OK() && opts.Flatten {
		out = session.Flatten(ctx, out.Record, domain, opts.RecursionLimit)
		report.Flattened = out.OK()
	}

	report.Kind = out.Kind.String()
	report.Message = out.Message()
	if out.OK() {
		report.Record = out.Record
	} else {
		report.FailedDomain = out.Domain
	}
	report.Lookups = session.TotalLookups()
	report.Visited = session.Visited()

	if threshold := opts.warnThreshold(); report.Lookups > threshold {
		report.Warning = fmt.Sprintf("More than %d lookups were performed", threshold)
	}

	logger.Info("SPF inspection finished",
		"session", report.SessionID,
		"domain", domain,
		"outcome", report.Kind,
		"lookups", report.Lookups,
	)
	return report, nil
}
