// Package errs defines the sentinel errors shared across drawset packages.
//
// Callers should compare with errors.Is since most call sites wrap these
// values with additional context via fmt.Errorf and %w.
package errs

import "errors"

var (
	// ErrChainLengthMismatch indicates that chains disagree on draw length
	// or column count.
	ErrChainLengthMismatch = errors.New("chain length mismatch")

	// ErrColumnCountMismatch indicates that a chain's column count differs
	// from the name table length.
	ErrColumnCountMismatch = errors.New("column count mismatch")

	// ErrColumnLengthMismatch indicates that a column's draw count differs
	// from the store's draw length.
	ErrColumnLengthMismatch = errors.New("column length mismatch")

	// ErrDuplicateName indicates that a parameter name appears more than once
	// in a name table.
	ErrDuplicateName = errors.New("duplicate parameter name")

	// ErrInvalidName indicates an empty or otherwise unusable parameter name.
	ErrInvalidName = errors.New("invalid parameter name")

	// ErrUnknownColumn indicates a lookup for a parameter name that is not in
	// the name table.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrInvalidPermutation indicates a permutation that is not a bijection
	// over the expected index range.
	ErrInvalidPermutation = errors.New("invalid permutation")

	// ErrEmptyStore indicates a store with no chains or no columns where at
	// least one is required.
	ErrEmptyStore = errors.New("empty sample store")

	// ErrInvalidMagicNumber indicates archive data that does not start with
	// the drawset magic number.
	ErrInvalidMagicNumber = errors.New("invalid magic number")

	// ErrInvalidHeaderSize indicates archive data too short to contain a
	// complete header.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrUnsupportedVersion indicates an archive written by an incompatible
	// format version.
	ErrUnsupportedVersion = errors.New("unsupported archive version")

	// ErrInvalidCompression indicates an unknown compression type flag.
	ErrInvalidCompression = errors.New("invalid compression type")

	// ErrHashCollision indicates two distinct parameter names hashing to the
	// same 64-bit ID.
	ErrHashCollision = errors.New("name hash collision")

	// ErrHashMismatch indicates that a decoded name does not hash to the ID
	// stored alongside it.
	ErrHashMismatch = errors.New("name hash mismatch")

	// ErrInvalidPayload indicates a truncated or structurally corrupt archive
	// payload section.
	ErrInvalidPayload = errors.New("invalid payload")
)
