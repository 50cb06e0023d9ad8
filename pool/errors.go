package pool

import "errors"

var (
	errShortHeader        = errors.New("pool: file too small to hold a pool header")
	errBadMagic           = errors.New("pool: bad magic, not a pool file")
	errUnsupportedVersion = errors.New("pool: unsupported pool header version")
	errClosed             = errors.New("pool: operation on a nil or closed pool")
)
