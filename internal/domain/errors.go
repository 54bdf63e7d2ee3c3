package domain

import "errors"

// Domain errors represent business-level errors that can occur in the system.
// These errors are used across layers to communicate specific failure conditions.
var (
	// Workload errors
	ErrWorkloadNotFound = errors.New("workload not found")

	// Control plane errors
	ErrControlPlaneUnreachable = errors.New("control plane unreachable")
	ErrControlPlaneRejected    = errors.New("control plane rejected request")
	ErrRouteNotFound           = errors.New("route not found in live configuration")

	// Validation errors
	ErrValidationFailed = errors.New("compiled configuration failed validation")

	// Log source errors
	ErrLogSourceUnavailable = errors.New("proxy log source unavailable")

	// Config errors
	ErrInvalidConfig = errors.New("invalid configuration")
)
