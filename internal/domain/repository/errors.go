package repository

import "errors"

// ErrNotFound marks a missing reference entity. Callers test it with
// errors.Is; the compute path treats it as fatal for the scenario.
var ErrNotFound = errors.New("not found")
