// Package errors provides standardized error types for the vsphere deploy hook.
//
// Every failure that reaches Certbot is a *DeployError carrying a code, so
// callers can tell an operator mistake (missing argument, bad config file)
// from a remote failure (rejected login, rejected certificate).
//
// # Error Types
//
// DeployError is the primary error type, containing:
//   - Code: Categorizes the error (VALIDATION, IO, AUTH, API, etc.)
//   - Message: Human-readable error description
//   - Target: The vCenter host involved (if applicable)
//   - Err: The underlying wrapped error (if any)
//
// # Sentinel Errors
//
//	errors.ErrArgumentRequired // required deployer argument absent
//	errors.ErrLineageMissing   // RENEWED_LINEAGE unset or unreadable
//	errors.ErrAuthFailed       // vCenter rejected the credentials
//	errors.ErrCertRejected     // vCenter rejected the certificate spec
//
// # Usage
//
//	return errors.ArgumentRequired("host")
//	return errors.Wrap(errors.ErrCodeIO, "failed to read certificate", err)
//	return errors.WrapTarget(errors.ErrCodeAuth, "vc.example.com", err)
//
// Use errors.Is for sentinel comparison; matching is by code, except that
// ErrLineageMissing only matches errors built with LineageMissing:
//
//	if errors.Is(err, errors.ErrAuthFailed) {
//	    // credentials problem
//	}
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodeValidation ErrorCode = "VALIDATION" // Argument or input validation failed
	ErrCodeConfig     ErrorCode = "CONFIG"     // Configuration file or env-file error
	ErrCodeIO         ErrorCode = "IO"         // Reading a lineage file failed
	ErrCodeAuth       ErrorCode = "AUTH"       // vCenter authentication failed
	ErrCodeConnection ErrorCode = "CONNECTION" // vCenter unreachable or TLS handshake failed
	ErrCodeAPI        ErrorCode = "API"        // vCenter rejected a request
	ErrCodeInternal   ErrorCode = "INTERNAL"   // Internal/unexpected error
)

// DeployError represents a structured error with context about the deployment.
type DeployError struct {
	Code    ErrorCode // Error category
	Message string    // Human-readable message
	Target  string    // vCenter host (if applicable)
	Err     error     // Underlying error (if any)

	// exact sentinels match only errors wrapping them, not their whole code
	exact bool
}

// Error implements the error interface.
func (e *DeployError) Error() string {
	switch {
	case e.Target != "" && e.Message != "" && e.Err != nil:
		return fmt.Sprintf("vsphere %s: %s: %v", e.Target, e.Message, e.Err)
	case e.Target != "" && e.Err != nil:
		return fmt.Sprintf("vsphere %s: %v", e.Target, e.Err)
	case e.Target != "":
		return fmt.Sprintf("vsphere %s: %s", e.Target, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain traversal.
func (e *DeployError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
// Comparison is based on error code, except for exact sentinels such as
// ErrLineageMissing, which match only through the wrap chain.
func (e *DeployError) Is(target error) bool {
	t, ok := target.(*DeployError)
	if !ok || t.exact {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors for common failure scenarios.
var (
	// ErrArgumentRequired indicates a required deployer argument was not supplied.
	ErrArgumentRequired = &DeployError{Code: ErrCodeValidation, Message: "argument required"}

	// ErrLineageMissing indicates the renewed lineage could not be resolved.
	ErrLineageMissing = &DeployError{Code: ErrCodeIO, Message: "renewed lineage not available", exact: true}

	// ErrConfigInvalid indicates the configuration file is invalid.
	ErrConfigInvalid = &DeployError{Code: ErrCodeConfig, Message: "invalid configuration"}

	// ErrAuthFailed indicates vCenter rejected the supplied credentials.
	ErrAuthFailed = &DeployError{Code: ErrCodeAuth, Message: "authentication failed"}

	// ErrUnreachable indicates the vCenter endpoint could not be reached.
	ErrUnreachable = &DeployError{Code: ErrCodeConnection, Message: "vcenter unreachable"}

	// ErrCertRejected indicates vCenter refused the certificate replacement.
	ErrCertRejected = &DeployError{Code: ErrCodeAPI, Message: "certificate rejected"}
)

// ArgumentRequired creates the error returned when a required argument is absent.
func ArgumentRequired(name string) error {
	return &DeployError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("argument `%s` is required either in the configuration file or on the command-line", name),
	}
}

// LineageMissing creates an IO error that matches ErrLineageMissing.
func LineageMissing(msg string, err error) error {
	if err == nil {
		err = ErrLineageMissing
	} else {
		err = fmt.Errorf("%w: %w", ErrLineageMissing, err)
	}
	return &DeployError{
		Code:    ErrCodeIO,
		Message: msg,
		Err:     err,
	}
}

// Validation creates a validation error with a custom message.
func Validation(msg string) error {
	return &DeployError{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &DeployError{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// WrapTarget creates an error with vCenter host context and underlying error.
func WrapTarget(code ErrorCode, target string, err error) error {
	return &DeployError{
		Code:   code,
		Target: target,
		Err:    err,
	}
}

// CodeOf returns the code of the first DeployError in err's chain,
// or ErrCodeInternal when there is none.
func CodeOf(err error) ErrorCode {
	var de *DeployError
	if errors.As(err, &de) {
		return de.Code
	}
	return ErrCodeInternal
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As
