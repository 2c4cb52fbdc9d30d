// Package internalcheck holds static-analysis tests that enforce policies on
// the reqrep packages.
//
// It has no exported API. The tests load the library packages with
// golang.org/x/tools/go/packages and fail on violations such as raw pointers
// in the public surface or direct printing from library code.
package internalcheck
