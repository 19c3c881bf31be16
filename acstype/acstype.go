// Package acstype holds the shared primitive types, constants, and error
// helpers used across the multiacs packages: the on-disk symbol/position
// types, the GESA record, and the diagnostic-formatting helper shared by
// every component that can fail.
package acstype

import "github.com/grailbio/base/errors"

// Symbol is a single alphabet character stored in the BWT/text streams.
type Symbol = byte

// SeqId identifies a sequence (color) within a collection.
type SeqId = uint32

// Len represents a sequence length, suffix position, or LCP value.
type Len = uint32

// Count represents a GESA row position; it must be wide enough to address
// collections whose combined text exceeds 2^32 characters.
type Count = uint64

// Memory is a byte budget, e.g. the -Q flag's memory bound.
type Memory = uint64

// Terminate is the sentinel appended to every sequence before GESA
// construction. A NUL byte read back from a BWT/GESA stream is always
// canonicalised to Terminate; no on-disk stream is ever expected to store a
// literal NUL.
const Terminate Symbol = '$'

// GESARecordSize is the fixed width, in bytes, of one packed GESA record:
// text SeqId(4) | suff Len(4) | lcp Len(4) | bwt Symbol(1) | pad(1).
const GESARecordSize = 14

// GSA is one row of a Generalized Enhanced Suffix Array.
type GSA struct {
	Text SeqId // which sequence this suffix belongs to
	Suff Len   // starting position of the suffix within Text
	Lcp  Len   // LCP with the lexicographically preceding suffix
	Bwt  Symbol
}

// CanonicalizeBwt maps a NUL byte read from a GESA/BWT stream to Terminate;
// every other byte passes through unchanged.
func CanonicalizeBwt(b Symbol) Symbol {
	if b == 0 {
		return Terminate
	}
	return b
}

// Fail builds the "Component::operation ERROR: ..." diagnostic used
// throughout this module, wrapping err (which may be nil) and any extra
// detail values the way github.com/grailbio/base/errors.E composes them.
func Fail(component, operation string, err error, detail ...interface{}) error {
	args := make([]interface{}, 0, len(detail)+1)
	args = append(args, component+"::"+operation+" ERROR:")
	if err != nil {
		args = append(args, err)
	}
	args = append(args, detail...)
	return errors.E(args...)
}
