package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and clients return these
// (optionally wrapped) so services can translate them into domain faults.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist
// - ErrExpired: upload session outlived its TTL
// - ErrAlreadyUsed: single-use resource (upload session) already consumed
// - ErrInvalidState: entity in wrong state for requested operation
// - ErrUnavailable: upstream temporarily unavailable
//
// For validation errors (bad input, missing fields), use pkg/faults directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrExpired      = errors.New("expired")
	ErrAlreadyUsed  = errors.New("already used")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
