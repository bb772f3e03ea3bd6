package spf

import (
	"errors"
	"fmt"
)

// Resolution errors. Outcome.Err wraps one of these for every failing kind.
var (
	ErrDomainAlreadyVisited = errors.New("spf: domain already looked up")
	ErrNoAnswer             = errors.New("spf: no answer from resolver")
	ErrDomainNotExist       = errors.New("spf: domain does not exist")
	ErrNoRecord             = errors.New("spf: no SPF record found")
	ErrRecursionLimit       = errors.New("spf: recursion limit exceeded")
	ErrResolver             = errors.New("spf: resolver error")
)

// Kind tags an Outcome.
type Kind int

const (
	// KindRecord carries an SPF record (resolved, or flattened).
	KindRecord Kind = iota

	// KindNotFound means the domain publishes TXT records but none is SPF.
	KindNotFound

	// KindNoAnswer means the resolver answered without TXT data.
	KindNoAnswer

	// KindNonexistentDomain means NXDOMAIN.
	KindNonexistentDomain

	// KindAlreadyQueried means the domain was already sent to the resolver
	// in this session.
	KindAlreadyQueried

	// KindRecursionExceeded means an include was reached with no budget left.
	KindRecursionExceeded

	// KindError is any other resolver failure.
	KindError
)

var kindNames = map[Kind]string{
	KindRecord:            "record",
	KindNotFound:          "not_found",
	KindNoAnswer:          "no_answer",
	KindNonexistentDomain: "nonexistent_domain",
	KindAlreadyQueried:    "already_queried",
	KindRecursionExceeded: "recursion_exceeded",
	KindError:             "error",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("spf: unknown outcome kind %q", s)
}

// Outcome is the result of resolving, processing or flattening a record.
type Outcome struct {
	Kind Kind

	// Record is set for KindRecord.
	Record string

	// Domain is the domain the outcome refers to. For KindRecursionExceeded
	// it is the domain whose record held the include.
	Domain string

	// Limit is the recursion limit, set for KindRecursionExceeded.
	Limit int

	// Cause is the underlying resolver error, set for KindError.
	Cause error
}

// OK reports whether the outcome carries a record.
func (o Outcome) OK() bool {
	return o.Kind == KindRecord
}

// Failed reports whether the outcome must abort the enclosing walk.
func (o Outcome) Failed() bool {
	return o.Kind != KindRecord
}

// Err returns nil for KindRecord and a wrapped sentinel otherwise.
func (o Outcome) Err() error {
	switch o.Kind {
	case KindRecord:
		return nil
	case KindNotFound:
		return fmt.Errorf("%w for %s", ErrNoRecord, o.Domain)
	case KindNoAnswer:
		return fmt.Errorf("%w for %s", ErrNoAnswer, o.Domain)
	case KindNonexistentDomain:
		return fmt.Errorf("%w: %s", ErrDomainNotExist, o.Domain)
	case KindAlreadyQueried:
		return fmt.Errorf("%w: %s", ErrDomainAlreadyVisited, o.Domain)
	case KindRecursionExceeded:
		return fmt.Errorf("%w: limit %d reached in %s", ErrRecursionLimit, o.Limit, o.Domain)
	default:
		if o.Cause != nil {
			return fmt.Errorf("%w: %s: %w", ErrResolver, o.Domain, o.Cause)
		}
		return fmt.Errorf("%w: %s", ErrResolver, o.Domain)
	}
}

// Message returns the text printed for the outcome: the record itself, or a
// human-readable description of the failure.
func (o Outcome) Message() string {
	switch o.Kind {
	case KindRecord:
		return o.Record
	case KindNotFound:
		return "No SPF record found"
	case KindNoAnswer:
		return "No answer received for SPF record query"
	case KindNonexistentDomain:
		return "Domain does not exist"
	case KindAlreadyQueried:
		return "Domain already looked up"
	case KindRecursionExceeded:
		return fmt.Sprintf("Exceeded recursion limit of %d for includes in domain %s", o.Limit, o.Domain)
	default:
		if o.Cause != nil {
			return fmt.Sprintf("An error occurred: %v", o.Cause)
		}
		return "An error occurred"
	}
}

func (o Outcome) String() string {
	return o.Message()
}

func recordOutcome(domain, record string) Outcome {
	return Outcome{Kind: KindRecord, Domain: domain, Record: record}
}

func recursionExceeded(domain string, limit int) Outcome {
	return Outcome{Kind: KindRecursionExceeded, Domain: domain, Limit: limit}
}
