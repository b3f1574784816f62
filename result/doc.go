// Package result provides the typed result codes used by the time service.
//
// Operations in the clock and service packages return a plain Go error: nil
// marks success, and failures carry a *result.Error with the originating
// module and description code. Codes from lower layers pass through
// unchanged so callers can match them with errors.Is:
//
//	if errors.Is(err, result.Unimplemented) {
//	    // the variant does not support this operation
//	}
//
// The taxonomy here is deliberately small. Unimplemented is returned by
// clock operations a given variant intentionally does not support; anything
// a clock cannot recover from (a steady source without a raw reading) is an
// invariant violation and panics instead of returning a code.
package result
