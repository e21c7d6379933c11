package runpredict

import "errors"

// Sentinel kinds for run-prediction errors.
var (
	ErrNoModel  = errors.New("no trained model")
	ErrBadModel = errors.New("malformed model weights")
)
