package domain

import "errors"

var (
	ErrCacheMiss        = errors.New("dependency info not cached")
	ErrUpstream         = errors.New("catalogue api request failed")
	ErrNoDependencyData = errors.New("no dependency data available")
)
