package repository

import "errors"

// Sentinel kinds for fingerprint store errors.
var (
	ErrDuplicateGame      = errors.New("game fingerprint already stored")
	ErrInvalidFingerprint = errors.New("invalid fingerprint")
)
