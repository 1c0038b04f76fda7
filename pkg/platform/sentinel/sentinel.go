package sentinel

import "errors"

// Sentinel errors for infrastructure facts. The ledger and stores return these
// (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about accounts, not validation failures:
// - ErrNotFound: no account exists at the address
// - ErrAlreadyUsed: an account already occupies the address (exclusive create)
// - ErrInvalidState: stored data has the wrong kind for the requested read
// - ErrUndeclared: a write touched an account outside the declared write set
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrAlreadyUsed  = errors.New("already used")
	ErrInvalidState = errors.New("invalid state")
	ErrUndeclared   = errors.New("undeclared write")
)
