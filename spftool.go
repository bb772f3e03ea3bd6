// Spftool resolves a domain's SPF record, walks its include tree within a
// recursion limit, and optionally flattens it into a single record.
//
// # Inspecting a Domain
//
// Inspect runs one session against a resolver and returns a Report:
//
//	resolver := dns.NewResolver(dns.ResolverConfig{
//	    Nameservers: []string{"1.1.1.1:53"},
//	})
//
//	report, err := spftool.Inspect(ctx, resolver, spftool.Options{
//	    Domain:         "example.com",
//	    RecursionLimit: 5,
//	    Flatten:        true,
//	    Logger:         logger,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Print(report.Text())
//
// The report carries either the resolved (or flattened) record or the
// message of the first failure met during the walk, along with the number
// of DNS queries the session issued.
//
// # Serialization
//
// JSON Serialization:
//
//	jsonData, err := report.ToJSON()
//
// JSON Deserialization:
//
//	report, err := spftool.FromJSON(jsonData)
//
// MessagePack Serialization:
//
//	msgpackData, err := report.ToMessagePack()
//
// MessagePack Deserialization:
//
//	report, err := spftool.FromMessagePack(msgpackData)
//
// # Lower-level Packages
//
// The spf package exposes the session, the include processor, the flattener
// and the macro expander. The dns package holds the resolver gateway and a
// mock for tests. The config package loads settings for the command in
// cmd/spftool.
package spftool
