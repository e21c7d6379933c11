package nba

import "errors"

// Sentinel kinds for feed client errors.
var (
	ErrUpstreamStatus = errors.New("upstream returned non-200 status")
	ErrBadPayload     = errors.New("malformed upstream payload")
	ErrGameNotFound   = errors.New("game not found in feed")
)
