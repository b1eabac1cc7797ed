package gauntlet

import (
	"errors"
	"fmt"
)

// ConfigError represents a configuration problem surfaced before any suite
// executes: a malformed argument value or a suite name that does not resolve
// in the registry.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %v", e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(err error) *ConfigError {
	return &ConfigError{Err: err}
}

// IsConfigError checks if the error is or wraps a ConfigError
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return err != nil && errors.As(err, &cfgErr)
}

// EnvironmentError represents a failure of the mandatory environment sanity
// suite. It is always fatal regardless of the fail-fast setting.
type EnvironmentError struct {
	Failed int
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("the test environment is not configured correctly (%d check(s) failed)", e.Failed)
}

// NewEnvironmentError creates a new EnvironmentError
func NewEnvironmentError(failed int) *EnvironmentError {
	return &EnvironmentError{Failed: failed}
}

// IsEnvironmentError checks if the error is or wraps an EnvironmentError
func IsEnvironmentError(err error) bool {
	var envErr *EnvironmentError
	return err != nil && errors.As(err, &envErr)
}

// CampaignError represents a completed campaign with test failures. The
// failure count becomes the process exit code.
type CampaignError struct {
	Failed int
}

func (e *CampaignError) Error() string {
	return fmt.Sprintf("campaign finished with %d test failure(s)", e.Failed)
}

// NewCampaignError creates a new CampaignError
func NewCampaignError(failed int) *CampaignError {
	return &CampaignError{Failed: failed}
}

// IsCampaignError checks if the error is or wraps a CampaignError
func IsCampaignError(err error) bool {
	var campErr *CampaignError
	return err != nil && errors.As(err, &campErr)
}

// FailureCount extracts the failure count from a CampaignError, or 0.
func FailureCount(err error) int {
	var campErr *CampaignError
	if errors.As(err, &campErr) {
		return campErr.Failed
	}
	return 0
}
