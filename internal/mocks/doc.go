// Package mocks provides centralized mock implementations for testing.
//
// This package contains mock implementations of interfaces used throughout
// the application, facilitating consistent testing across the codebase.
// Instead of defining inline mocks in individual test files, these
// standardized mock implementations can be reused.
//
// Each mock exposes function fields for customizable per-test behavior and
// falls back to simple in-memory defaults when no function is provided.
package mocks
