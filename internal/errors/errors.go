// Package errors provides centralized error handling for exithook.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
var (
	// ErrFunnelRead indicates the saved funnel data file could not be read.
	ErrFunnelRead = errors.New("failed to read funnel data file")

	// ErrFunnelParse indicates the saved funnel data file does not hold a JSON object.
	ErrFunnelParse = errors.New("failed to parse funnel data")

	// ErrFunnelSendFailed indicates the telemetry endpoint rejected or never
	// received the funnel payload.
	ErrFunnelSendFailed = errors.New("funnel data send failed")

	// ErrStopBuildFailed indicates the remote stop-build request failed.
	ErrStopBuildFailed = errors.New("stop build request failed")

	// ErrUnexpectedStatus indicates a remote endpoint answered with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrInvalidLogLevel indicates an unknown log level in configuration.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidEndpoint indicates an endpoint URL that is not absolute http(s).
	ErrInvalidEndpoint = errors.New("invalid endpoint URL")

	// ErrInvalidEnvVarName indicates that an environment variable name is invalid.
	ErrInvalidEnvVarName = errors.New("invalid environment variable name")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrValueOutOfRange indicates that a value is outside the allowed range.
	ErrValueOutOfRange = errors.New("value out of range")
)
