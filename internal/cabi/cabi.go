// Package cabi holds the session bookkeeping behind the C-ABI wrapper
// in cmd/libexath: cgo cannot pass a Go pointer to C and safely get it
// back, so sessions are tracked by a small integer handle instead of a
// raw pointer the way the host language would do it natively.
package cabi

import (
	"strings"
	"sync"

	"github.com/wildfunctions/exath/pkg/angle"
	"github.com/wildfunctions/exath/pkg/exath"
)

// Result mirrors the C ABI's result shape in pure Go, so cmd/libexath
// only has to translate it to C types, not compute it.
type Result struct {
	Re, Im   float64
	IsError  bool
	ErrorMsg string
}

func ok(re, im float64) Result { return Result{Re: re, Im: im} }

func fail(err error) Result { return Result{IsError: true, ErrorMsg: err.Error()} }

// Evaluate evaluates expr with no variables or functions in scope.
func Evaluate(expr string, mode angle.Mode) Result {
	r, err := exath.EvaluateComplex(expr, mode)
	if err != nil {
		return fail(err)
	}
	return ok(r.Re, r.Im)
}

// IsValid reports whether expr parses without error.
func IsValid(expr string) bool { return exath.IsValid(expr) }

// SupportedFunctions returns every built-in function name joined by
// commas, the flat string shape a C caller can consume without a
// length-prefixed array.
func SupportedFunctions() string {
	return strings.Join(exath.SupportedFunctions(), ",")
}

// Deriv, Integrate, Sum, and Prod mirror the library's numerical
// methods, wrapping their errors into Result instead of a Go error.

func Deriv(expr, v string, x float64, mode angle.Mode) Result {
	value, err := exath.Deriv(expr, v, x, mode)
	if err != nil {
		return fail(err)
	}
	return ok(value, 0)
}

func Integrate(expr, v string, a, b float64, mode angle.Mode) Result {
	value, err := exath.Integrate(expr, v, a, b, mode)
	if err != nil {
		return fail(err)
	}
	return ok(value, 0)
}

func Sum(expr, v string, from, to int64, mode angle.Mode) Result {
	value, err := exath.Sum(expr, v, from, to, mode)
	if err != nil {
		return fail(err)
	}
	return ok(value, 0)
}

func Prod(expr, v string, from, to int64, mode angle.Mode) Result {
	value, err := exath.Prod(expr, v, from, to, mode)
	if err != nil {
		return fail(err)
	}
	return ok(value, 0)
}

// Sessions tracks live *exath.Session values behind opaque integer
// handles for hosts that can't hold a Go pointer.
var sessions = struct {
	mu   sync.Mutex
	next int64
	live map[int64]*exath.Session
}{live: make(map[int64]*exath.Session)}

// SessionNew creates a session and returns its handle.
func SessionNew(mode angle.Mode) int64 {
	sessions.mu.Lock()
	defer sessions.mu.Unlock()
	sessions.next++
	h := sessions.next
	sessions.live[h] = exath.NewSession(mode)
	return h
}

// SessionFree releases a session handle. Freeing an unknown or
// already-freed handle is a no-op.
func SessionFree(handle int64) {
	sessions.mu.Lock()
	defer sessions.mu.Unlock()
	delete(sessions.live, handle)
}

func session(handle int64) *exath.Session {
	sessions.mu.Lock()
	defer sessions.mu.Unlock()
	return sessions.live[handle]
}

// SessionEval evaluates one line in the given session.
func SessionEval(handle int64, line string) Result {
	s := session(handle)
	if s == nil {
		return fail(unknownHandle(handle))
	}
	z, err := s.Eval(line)
	if err != nil {
		return fail(err)
	}
	return ok(real(z), imag(z))
}

// SessionSetVar assigns a variable in the given session.
func SessionSetVar(handle int64, name string, re, im float64) {
	if s := session(handle); s != nil {
		s.SetVar(name, complex(re, im))
	}
}

// SessionRemoveVar removes a variable from the given session.
func SessionRemoveVar(handle int64, name string) {
	if s := session(handle); s != nil {
		s.RemoveVar(name)
	}
}

// SessionClearVars removes every variable from the given session.
func SessionClearVars(handle int64) {
	if s := session(handle); s != nil {
		s.ClearVars()
	}
}

// SessionRemoveFn removes a user-defined function from the given session.
func SessionRemoveFn(handle int64, name string) {
	if s := session(handle); s != nil {
		s.RemoveFn(name)
	}
}

// SessionFnNames returns the given session's user-defined function
// names joined by commas.
func SessionFnNames(handle int64) string {
	s := session(handle)
	if s == nil {
		return ""
	}
	return strings.Join(s.FnNames(), ",")
}

type unknownHandleError struct{ handle int64 }

func (e unknownHandleError) Error() string { return "unknown session handle" }

func unknownHandle(handle int64) error { return unknownHandleError{handle} }
