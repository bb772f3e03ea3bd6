package spf

import "context"

// Process walks record, resolving every include: mechanism through the
// session up to limit levels deep. domain is the owner of record and the base
// for macro expansion.
//
// On success the outcome carries record unchanged; the mechanism count
// gathered during the walk is only logged. The first failing include aborts
// the walk and its outcome is returned as is.
func (s *Session) Process(ctx context.Context, record, domain string, limit int) Outcome {
	out, count := s.process(ctx, record, domain, limit, 0)
	if out.OK() {
		s.logger.Debug("Processed SPF record", "domain", domain, "mechanisms", count)
	}
	return out
}

func (s *Session) process(ctx context.Context, record, domain string, limit, level int) (Outcome, int) {
	count := 0

	for _, mech := range Mechanisms(record) {
		target, ok := IncludeTarget(mech)
		if !ok {
			count++
			continue
		}

		if level >= limit {
			s.logger.Warn("Recursion limit exceeded", "domain", domain, "limit", limit, "level", level)
			return recursionExceeded(domain, limit), count
		}

		included := Expand(target, domain)
		s.logger.Debug("Expanded include target", "target", target, "domain", included)

		fetched := s.lookup(ctx, included, level+1)
		if fetched.Failed() {
			return fetched, count
		}

		nested, nestedCount := s.process(ctx, fetched.Record, included, limit, level+1)
		if nested.Failed() {
			return nested, count
		}
		s.logger.Debug("Processed include", "domain", included, "record", nested.Record, "level", level+1)
		count += nestedCount
	}

	return recordOutcome(domain, record), count
}
