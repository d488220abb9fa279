// Package common defines the sentinel errors shared by the identity store's
// repositories and the adapter facade. Callers should use errors.Is to match
// these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks caller input that fails schema checks before it
	// ever reaches the store.
	ErrValidation = errors.New("validation failed")

	// ErrSchemaDrift marks a row returned by the store that does not match
	// the expected row schema. It wraps ErrValidation so generic validation
	// matching still works, but drift stays distinguishable: a bad stored
	// row is schema drift, not bad caller input.
	ErrSchemaDrift = fmt.Errorf("%w: stored row does not match schema", ErrValidation)

	// ErrNotFound is returned by keyed lookups that matched no row.
	// The adapter facade converts it to an absent result where the
	// framework contract treats absence as routine.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an insert violates a store uniqueness
	// constraint (unique email, session token, provider account pair,
	// verification token pair).
	ErrConflict = errors.New("already exists")

	// ErrStorage covers connectivity, timeout and any otherwise
	// unclassified store failure.
	ErrStorage = errors.New("storage failure")
)
