package spf

import (
	"context"
	"strings"
)

// Flatten rewrites record into an include-free record: every include:
// mechanism is replaced in place by the mechanisms of the flattened target
// record. Other tokens, including the leading version tag of record, are
// copied verbatim. The version tag of an included record is not copied.
//
// Records already fetched by the session are reused; other targets are
// looked up through it. A target reached twice within one flatten walk
// yields KindAlreadyQueried. Failures abort the walk with no partial output.
func (s *Session) Flatten(ctx context.Context, record, domain string, limit int) Outcome {
	w := &flattenWalk{
		session: s,
		limit:   limit,
		seen:    map[string]struct{}{domain: {}},
	}

	tokens, out := w.flatten(ctx, record, domain, 0)
	if out.Failed() {
		return out
	}

	flat := strings.Join(tokens, " ")
	s.logger.Debug("Flattened SPF record", "domain", domain, "record", flat)
	return recordOutcome(domain, flat)
}

type flattenWalk struct {
	session *Session
	limit   int
	seen    map[string]struct{}
}

// flatten returns the flattened tokens of record. The zero Outcome means success.
func (w *flattenWalk) flatten(ctx context.Context, record, domain string, level int) ([]string, Outcome) {
	var flat []string

	for i, mech := range Mechanisms(record) {
		if level > 0 && i == 0 && isVersionTag(mech) {
			continue
		}

		target, ok := IncludeTarget(mech)
		if !ok {
			flat = append(flat, mech)
			continue
		}

		if level >= w.limit {
			w.session.logger.Warn("Recursion limit exceeded", "domain", domain, "limit", w.limit, "level", level)
			return nil, recursionExceeded(domain, w.limit)
		}

		included := Expand(target, domain)
		fetched := w.fetch(ctx, included, level+1)
		if fetched.Failed() {
			return nil, fetched
		}

		nested, out := w.flatten(ctx, fetched.Record, included, level+1)
		if out.Failed() {
			return nil, out
		}
		flat = append(flat, nested...)
	}

	return flat, Outcome{}
}

func (w *flattenWalk) fetch(ctx context.Context, domain string, level int) Outcome {
	if _, ok := w.seen[domain]; ok {
		w.session.logger.Debug("Include already expanded in this record, skipping", "domain", domain)
		return Outcome{Kind: KindAlreadyQueried, Domain: domain}
	}
	w.seen[domain] = struct{}{}

	if record, ok := w.session.Recall(domain); ok {
		return recordOutcome(domain, record)
	}
	return w.session.lookup(ctx, domain, level)
}
