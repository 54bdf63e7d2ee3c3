// Package in defines input ports implemented by use cases.
package in

import "time"

// ConfigService exposes reconciliation settings to other use cases.
// Values may change at runtime when the configuration file is reloaded.
type ConfigService interface {
	// ACMEEmail is the certificate-authority contact email override.
	// Empty when unset.
	ACMEEmail() string

	// PollInterval is the fixed inter-cycle delay of the reconciliation loop.
	PollInterval() time.Duration
}
