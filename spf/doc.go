// Package spf resolves Sender Policy Framework (SPF) records and their
// include: chains, and flattens them into include-free records.
//
// It does not evaluate policy. Mechanisms other than include: are opaque
// tokens, and macros in include targets expand against a fixed placeholder
// sender (see MacroContext).
//
// Basic Usage:
//
//	resolver := dns.NewResolver(dns.ResolverConfig{
//	    Nameservers: []string{"8.8.8.8:53"},
//	})
//
//	session := spf.NewSession(resolver, logger)
//	out := session.Lookup(ctx, "example.com")
//	if out.OK() {
//	    out = session.Process(ctx, out.Record, "example.com", 5)
//	}
//	if out.OK() {
//	    out = session.Flatten(ctx, out.Record, "example.com", 5)
//	}
//
//	switch out.Kind {
//	case spf.KindRecord:
//	    fmt.Println(out.Record)
//	case spf.KindRecursionExceeded:
//	    // include chain deeper than the limit
//	default:
//	    fmt.Println(out.Message())
//	}
//	fmt.Println("Lookups:", session.TotalLookups())
//
// A Session sends each domain to the resolver at most once. Resolving the
// same domain twice, for example through an include loop, yields
// KindAlreadyQueried and aborts the walk.
//
// References:
//   - RFC 7208: Sender Policy Framework (SPF)
package spf
