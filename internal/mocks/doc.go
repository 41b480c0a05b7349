// Package mocks provides centralized mock implementations for testing.
//
// This package contains mock implementations of interfaces used throughout
// the application, facilitating consistent and DRY testing across the
// codebase. Instead of defining inline mocks in individual test files,
// these standardized mock implementations can be reused.
//
// Each mock exposes optional function fields (CreateFn, GetByIDFn, ...)
// that override the default in-memory behavior when set, plus error fields
// for forcing failures on specific operations.
//
// Usage:
//
//	import "github.com/shaouxyz/mentormatch-sub003/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    requestStore := mocks.NewMockRequestStore()
//	    requestStore.UpdateError = errors.New("boom")
//
//	    // Use the mock in your test...
//	}
package mocks
