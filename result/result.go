package result

import "fmt"

// Error is a service result code: a module number paired with a
// description code, matching the guest-visible result encoding.
type Error struct {
	Module      uint32
	Description uint32
}

// Unimplemented is returned by clock operations intentionally not supported
// by a given variant, such as mutating the composing user clock directly or
// querying an RTC with no backing hardware emulation.
var Unimplemented = &Error{Module: 116, Description: 990}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("timesrv: result 2%03d-%04d", e.Module, e.Description)
}

// Is reports whether target carries the same module and description code,
// so result values compare with errors.Is across wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Module == t.Module && e.Description == t.Description
}
