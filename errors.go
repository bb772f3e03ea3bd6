package spftool

import "errors"

var (
	ErrEmptyDomain           = errors.New("spftool: empty domain")
	ErrInvalidRecursionLimit = errors.New("spftool: recursion limit must not be negative")
	ErrInvalidWarnThreshold  = errors.New("spftool: warn threshold must not be negative")
	ErrNoResolver            = errors.New("spftool: no resolver configured")
)
