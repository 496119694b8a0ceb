package analyzer

import "errors"

// ErrInvalidArgument is returned when resume text or skills are malformed.
var ErrInvalidArgument = errors.New("invalid argument")
