package spf

import "strings"

const (
	// versionTag starts every SPF record.
	versionTag = "v=spf1"

	// includePrefix is the only mechanism form the walk interprets.
	includePrefix = "include:"
)

// SelectRecord returns the first TXT string whose unquoted text starts with
// "v=spf1". Surrounding double quotes, as printed by zone-file tools, are
// stripped before the check and from the returned record.
func SelectRecord(txts []string) (string, bool) {
	for _, txt := range txts {
		txt = strings.Trim(txt, `"`)
		if strings.HasPrefix(txt, versionTag) {
			return txt, true
		}
	}
	return "", false
}

// Mechanisms splits a record into its whitespace-separated tokens.
// The version tag is returned as the first token when present.
func Mechanisms(record string) []string {
	return strings.Fields(record)
}

// IncludeTarget returns the domain-spec of an "include:" mechanism.
// Qualified forms such as "+include:x" are opaque tokens and return false.
func IncludeTarget(mechanism string) (string, bool) {
	if !strings.HasPrefix(mechanism, includePrefix) {
		return "", false
	}
	return mechanism[len(includePrefix):], true
}

// isVersionTag reports whether a token is the version tag.
func isVersionTag(token string) bool {
	return token == versionTag
}
