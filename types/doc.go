// Package types provides core types used across the flexsolve library.
// This package has ZERO dependencies on other flexsolve packages to avoid
// circular imports. All other packages should import types from here.
package types
