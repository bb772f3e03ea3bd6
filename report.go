package spftool

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/synqronlabs/spftool/spf"
)

// Report is the result of one Inspect run.
type Report struct {
	Domain               string `json:"domain"`
	OrganizationalDomain string `json:"organizational_domain,omitempty"`
	SessionID            string `json:"session_id"`

	// Kind is the outcome kind name, see spf.Kind.
	Kind string `json:"kind"`

	// Message is the record for a successful run, or the failure text.
	Message string `json:"message"`

	// Record is the resolved or flattened record. Empty on failure.
	Record string `json:"record,omitempty"`

	// FailedDomain is the domain the failure was met at.
	FailedDomain string `json:"failed_domain,omitempty"`

	Flattened      bool     `json:"flattened"`
	RecursionLimit int      `json:"recursion_limit"`
	Lookups        int      `json:"lookups"`
	Visited        []string `json:"visited,omitempty"`
	Warning        string   `json:"warning,omitempty"`
	Notes          []string `json:"notes,omitempty"`
}

// Failed reports whether the run ended without a record.
func (r *Report) Failed() bool {
	return r.Kind != spf.KindRecord.String()
}

// Outcome returns the kind of the report as an spf.Kind.
func (r *Report) Outcome() (spf.Kind, error) {
	return spf.ParseKind(r.Kind)
}

// Text renders the report the way the command prints it: the record or
// failure message, the lookup count, then any warning and notes.
func (r *Report) Text() string {
	var sb strings.Builder
	sb.WriteString(r.Message)
	sb.WriteString("\nLookups: ")
	sb.WriteString(strconv.Itoa(r.Lookups))
	sb.WriteByte('\n')
	if r.Warning != "" {
		sb.WriteString("Warning: ")
		sb.WriteString(r.Warning)
		sb.WriteByte('\n')
	}
	for _, note := range r.Notes {
		sb.WriteString("Note: ")
		sb.WriteString(note)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ToJSON serializes the report to JSON bytes.
func (r *Report) ToJSON() ([]byte, error) {
	return json.Marshal(r)
}

// ToJSONIndent serializes the report to pretty-printed JSON bytes.
func (r *Report) ToJSONIndent() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// FromJSON deserializes a report from JSON bytes.
func FromJSON(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ToMessagePack serializes the report to MessagePack bytes.
func (r *Report) ToMessagePack() ([]byte, error) {
	return r.MarshalMsg(nil)
}

// FromMessagePack deserializes a report from MessagePack bytes.
func FromMessagePack(data []byte) (*Report, error) {
	var r Report
	if _, err := r.UnmarshalMsg(data); err != nil {
		return nil, err
	}
	return &r, nil
}
