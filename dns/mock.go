package dns

import (
	"context"
	"slices"
)

// MockResolver is a Resolver used for testing.
// TXT maps FQDNs (with trailing dot) to record values. A name missing from
// the map is NXDOMAIN; a name mapped to an empty slice exists without TXT data.
type MockResolver struct {
	TXT map[string][]string

	// Fail contains names that return a temporary error (SERVFAIL).
	// Format: "txt example.com."
	Fail []string

	// AllAuthentic sets the value of Authentic in responses.
	AllAuthentic bool
}

var _ Resolver = MockResolver{}

// mockReq represents a mock DNS request.
type mockReq struct {
	Type string
	Name string
}

func (mr mockReq) String() string {
	return mr.Type + " " + mr.Name
}

// LookupTXT returns TXT records for the given domain.
func (r MockResolver) LookupTXT(ctx context.Context, name string) (Result[string], error) {
	result := Result[string]{Authentic: r.AllAuthentic}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	fqdn := ensureAbsolute(name)
	mr := mockReq{"txt", fqdn}
	if slices.Contains(r.Fail, mr.String()) {
		return result, ErrDNSServFail
	}

	records, ok := r.TXT[fqdn]
	if !ok {
		return result, ErrDNSNotFound
	}
	if len(records) == 0 {
		return result, ErrDNSNoAnswer
	}

	result.Records = records
	return result, nil
}
