package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMissingSource means no topic-configuration source is configured.
	ErrMissingSource = errors.New("curriculum data source is not configured")
	// ErrNoConfig means the configuration list has no entry for a slug.
	ErrNoConfig = errors.New("no curriculum config found")
	// ErrNotCached is returned by read-only lookups when nothing has been generated yet.
	ErrNotCached = errors.New("not cached, please refresh")

	ErrUnsupportedAsset = errors.New("unsupported asset type")
)
