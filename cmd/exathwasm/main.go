//go:build js && wasm

// Command exathwasm builds exath as a WebAssembly module for the
// browser or Node's wasm_exec.js host:
//
//	GOOS=js GOARCH=wasm go build -o exath.wasm ./cmd/exathwasm
package main

import "github.com/wildfunctions/exath/internal/wasmshim"

func main() {
	wasmshim.Register("exath")
	select {} // keep the module alive so its registered functions stay callable
}
