package service

import "errors"

// ErrUpstreamTimeout wraps provider failures caused by the upstream deadline.
var ErrUpstreamTimeout = errors.New("upstream timeout")
