package spf

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/synqronlabs/spftool/dns"
	"github.com/synqronlabs/spftool/utils"
)

// Session holds the state shared by one top-level resolution: the domains
// already sent to the resolver, the number of queries issued, and the SPF
// records fetched so far.
//
// A Session is created per invocation and is not safe for concurrent use.
type Session struct {
	id       string
	resolver dns.Resolver
	logger   *slog.Logger

	visited []string
	seen    map[string]struct{}
	lookups int
	records map[string]string
}

// NewSession creates a session querying resolver. A nil logger discards output.
func NewSession(resolver dns.Resolver, logger *slog.Logger) *Session {
	id := utils.NewID()
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		id:       id,
		resolver: resolver,
		logger:   logger.With("session", id),
		seen:     make(map[string]struct{}),
		records:  make(map[string]string),
	}
}

// ID returns the session identifier attached to every log line.
func (s *Session) ID() string {
	return s.id
}

// ShouldQuery reports whether domain may be sent to the resolver. The first
// call for a domain marks it visited and counts one lookup; later calls
// return false and change nothing.
func (s *Session) ShouldQuery(domain string) bool {
	if _, ok := s.seen[domain]; ok {
		return false
	}
	s.seen[domain] = struct{}{}
	s.visited = append(s.visited, domain)
	s.lookups++
	return true
}

// TotalLookups returns the number of resolver queries issued so far.
func (s *Session) TotalLookups() int {
	return s.lookups
}

// Visited returns the queried domains in query order.
func (s *Session) Visited() []string {
	return append([]string(nil), s.visited...)
}

// Recall returns the SPF record fetched for domain earlier in this session.
func (s *Session) Recall(domain string) (string, bool) {
	record, ok := s.records[domain]
	return record, ok
}

// Lookup fetches the SPF record of domain. A domain already queried in this
// session yields KindAlreadyQueried without touching the resolver.
func (s *Session) Lookup(ctx context.Context, domain string) Outcome {
	return s.lookup(ctx, domain, 0)
}

func (s *Session) lookup(ctx context.Context, domain string, level int) Outcome {
	logger := s.logger.With("domain", domain)

	if !s.ShouldQuery(domain) {
		logger.Debug("Domain already looked up, skipping query")
		return Outcome{Kind: KindAlreadyQueried, Domain: domain}
	}

	logger.Info("Querying for SPF records", "lookups", s.lookups)
	result, err := s.resolver.LookupTXT(ctx, domain)
	switch {
	case err == nil:
	case errors.Is(err, dns.ErrDNSNoAnswer):
		logger.Error("No answer was received when querying for SPF records")
		return Outcome{Kind: KindNoAnswer, Domain: domain}
	case errors.Is(err, dns.ErrDNSNotFound):
		logger.Error("The domain does not exist")
		return Outcome{Kind: KindNonexistentDomain, Domain: domain}
	default:
		logger.Error("An error occurred", "error", err)
		return Outcome{Kind: KindError, Domain: domain, Cause: err}
	}

	record, ok := SelectRecord(result.Records)
	if !ok {
		logger.Info("No SPF record found")
		return Outcome{Kind: KindNotFound, Domain: domain}
	}

	logger.Debug(strings.Repeat("  ", level)+"SPF record found", "record", record, "authentic", result.Authentic)
	s.records[domain] = record
	return recordOutcome(domain, record)
}
