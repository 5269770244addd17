//go:build js && wasm

// Package wasmshim exposes exath to JavaScript via syscall/js: a
// stateless evaluate function plus a Session object, mirroring the
// shape a wasm-bindgen binding would present, built on top of
// internal/cabi so the host-facing logic is shared with cmd/libexath.
package wasmshim

import (
	"strings"
	"syscall/js"

	"github.com/wildfunctions/exath/internal/cabi"
	"github.com/wildfunctions/exath/pkg/angle"
)

func parseAngleMode(s string) angle.Mode {
	switch strings.ToLower(s) {
	case "deg":
		return angle.Deg
	case "grad":
		return angle.Grad
	default:
		return angle.Rad
	}
}

func resultToJS(r cabi.Result) js.Value {
	return js.ValueOf(map[string]interface{}{
		"re":           r.Re,
		"im":           r.Im,
		"isComplex":    r.Im != 0,
		"isError":      r.IsError,
		"errorMessage": r.ErrorMsg,
	})
}

func arg(args []js.Value, i int) string {
	if i >= len(args) {
		return ""
	}
	return args[i].String()
}

func jsEvaluate(this js.Value, args []js.Value) interface{} {
	return resultToJS(cabi.Evaluate(arg(args, 0), parseAngleMode(arg(args, 1))))
}

func jsIsValid(this js.Value, args []js.Value) interface{} {
	return cabi.IsValid(arg(args, 0))
}

func jsSupportedFunctions(this js.Value, args []js.Value) interface{} {
	names := cabi.SupportedFunctions()
	if names == "" {
		return js.ValueOf([]interface{}{})
	}
	parts := strings.Split(names, ",")
	out := make([]interface{}, len(parts))
	for i, p := range parts {
		out[i] = p
	}
	return js.ValueOf(out)
}

func jsDeriv(this js.Value, args []js.Value) interface{} {
	x := args[2].Float()
	return resultToJS(cabi.Deriv(arg(args, 0), arg(args, 1), x, parseAngleMode(arg(args, 3))))
}

func jsIntegrate(this js.Value, args []js.Value) interface{} {
	a, b := args[2].Float(), args[3].Float()
	return resultToJS(cabi.Integrate(arg(args, 0), arg(args, 1), a, b, parseAngleMode(arg(args, 4))))
}

func jsSum(this js.Value, args []js.Value) interface{} {
	from, to := int64(args[2].Int()), int64(args[3].Int())
	return resultToJS(cabi.Sum(arg(args, 0), arg(args, 1), from, to, parseAngleMode(arg(args, 4))))
}

func jsProd(this js.Value, args []js.Value) interface{} {
	from, to := int64(args[2].Int()), int64(args[3].Int())
	return resultToJS(cabi.Prod(arg(args, 0), arg(args, 1), from, to, parseAngleMode(arg(args, 4))))
}

// sessionMethods builds a JS object wrapping one session handle: a
// closure per method, since syscall/js has no notion of a "this"
// bound to Go state beyond what each Func closes over.
func sessionMethods(handle int64) js.Value {
	obj := map[string]interface{}{
		"eval": js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			return resultToJS(cabi.SessionEval(handle, arg(args, 0)))
		}),
		"setVar": js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			cabi.SessionSetVar(handle, arg(args, 0), args[1].Float(), args[2].Float())
			return nil
		}),
		"removeVar": js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			cabi.SessionRemoveVar(handle, arg(args, 0))
			return nil
		}),
		"clearVars": js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			cabi.SessionClearVars(handle)
			return nil
		}),
		"removeFn": js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			cabi.SessionRemoveFn(handle, arg(args, 0))
			return nil
		}),
		"fnNames": js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			names := cabi.SessionFnNames(handle)
			if names == "" {
				return js.ValueOf([]interface{}{})
			}
			parts := strings.Split(names, ",")
			out := make([]interface{}, len(parts))
			for i, p := range parts {
				out[i] = p
			}
			return js.ValueOf(out)
		}),
		"free": js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			cabi.SessionFree(handle)
			return nil
		}),
	}
	return js.ValueOf(obj)
}

func jsNewSession(this js.Value, args []js.Value) interface{} {
	handle := cabi.SessionNew(parseAngleMode(arg(args, 0)))
	return sessionMethods(handle)
}

// Register installs the exath API onto the given global object name
// (typically "exath") and returns. The caller must keep main running
// (cmd/exathwasm blocks on select {}), since a wasm_exec.js-hosted
// module otherwise exits as soon as main returns.
func Register(globalName string) {
	api := map[string]interface{}{
		"evaluate":            js.FuncOf(jsEvaluate),
		"isValid":             js.FuncOf(jsIsValid),
		"supportedFunctions":  js.FuncOf(jsSupportedFunctions),
		"deriv":               js.FuncOf(jsDeriv),
		"integrate":           js.FuncOf(jsIntegrate),
		"sum":                 js.FuncOf(jsSum),
		"prod":                js.FuncOf(jsProd),
		"newSession":          js.FuncOf(jsNewSession),
	}
	js.Global().Set(globalName, js.ValueOf(api))
}
