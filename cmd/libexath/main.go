//go:build cgo

// Command libexath builds exath as a C-callable shared library:
//
//	go build -buildmode=c-shared -o libexath.so ./cmd/libexath
//
// Every exported function returns plain C types; ExathResult carries
// either a numeric result or an error string the caller must free
// with exath_free_string.
package main

/*
#include <stdlib.h>

typedef struct {
	double re;
	double im;
	int is_error;
	char* error_msg;
} ExathResult;
*/
import "C"

import (
	"unsafe"

	"github.com/wildfunctions/exath/internal/cabi"
	"github.com/wildfunctions/exath/pkg/angle"
)

func toAngleMode(mode C.int) angle.Mode {
	switch mode {
	case 0:
		return angle.Deg
	case 2:
		return angle.Grad
	default:
		return angle.Rad
	}
}

func toResult(r cabi.Result) C.ExathResult {
	out := C.ExathResult{re: C.double(r.Re), im: C.double(r.Im)}
	if r.IsError {
		out.is_error = 1
		out.error_msg = C.CString(r.ErrorMsg)
	}
	return out
}

//export exath_free_string
func exath_free_string(ptr *C.char) {
	if ptr != nil {
		C.free(unsafe.Pointer(ptr))
	}
}

//export exath_evaluate
func exath_evaluate(expr *C.char, mode C.int) C.ExathResult {
	return toResult(cabi.Evaluate(C.GoString(expr), toAngleMode(mode)))
}

//export exath_is_valid
func exath_is_valid(expr *C.char) C.int {
	if cabi.IsValid(C.GoString(expr)) {
		return 1
	}
	return 0
}

//export exath_supported_functions
func exath_supported_functions() *C.char {
	return C.CString(cabi.SupportedFunctions())
}

//export exath_deriv
func exath_deriv(expr, v *C.char, x C.double, mode C.int) C.ExathResult {
	return toResult(cabi.Deriv(C.GoString(expr), C.GoString(v), float64(x), toAngleMode(mode)))
}

//export exath_integrate
func exath_integrate(expr, v *C.char, a, b C.double, mode C.int) C.ExathResult {
	return toResult(cabi.Integrate(C.GoString(expr), C.GoString(v), float64(a), float64(b), toAngleMode(mode)))
}

//export exath_sum
func exath_sum(expr, v *C.char, from, to C.longlong, mode C.int) C.ExathResult {
	return toResult(cabi.Sum(C.GoString(expr), C.GoString(v), int64(from), int64(to), toAngleMode(mode)))
}

//export exath_prod
func exath_prod(expr, v *C.char, from, to C.longlong, mode C.int) C.ExathResult {
	return toResult(cabi.Prod(C.GoString(expr), C.GoString(v), int64(from), int64(to), toAngleMode(mode)))
}

//export exath_session_new
func exath_session_new(mode C.int) C.longlong {
	return C.longlong(cabi.SessionNew(toAngleMode(mode)))
}

//export exath_session_free
func exath_session_free(handle C.longlong) {
	cabi.SessionFree(int64(handle))
}

//export exath_session_eval
func exath_session_eval(handle C.longlong, line *C.char) C.ExathResult {
	return toResult(cabi.SessionEval(int64(handle), C.GoString(line)))
}

//export exath_session_set_var
func exath_session_set_var(handle C.longlong, name *C.char, re, im C.double) {
	cabi.SessionSetVar(int64(handle), C.GoString(name), float64(re), float64(im))
}

//export exath_session_remove_var
func exath_session_remove_var(handle C.longlong, name *C.char) {
	cabi.SessionRemoveVar(int64(handle), C.GoString(name))
}

//export exath_session_clear_vars
func exath_session_clear_vars(handle C.longlong) {
	cabi.SessionClearVars(int64(handle))
}

//export exath_session_remove_fn
func exath_session_remove_fn(handle C.longlong, name *C.char) {
	cabi.SessionRemoveFn(int64(handle), C.GoString(name))
}

//export exath_session_fn_names
func exath_session_fn_names(handle C.longlong) *C.char {
	return C.CString(cabi.SessionFnNames(int64(handle)))
}

func main() {}
