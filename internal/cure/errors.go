package cure

import (
	"errors"
	"fmt"
)

// Error kinds shared by every property model.
var (
	// ErrInputDomain indicates an input outside the physical domain of a model.
	ErrInputDomain = errors.New("cure: input outside model domain")

	// ErrNumericOverflow indicates a result that overflowed to infinity.
	ErrNumericOverflow = errors.New("cure: numeric overflow")

	// ErrConfiguration indicates an unsupported model choice or malformed parameters.
	ErrConfiguration = errors.New("cure: invalid configuration")
)

// DomainError wraps an error kind with the operation and offending value.
type DomainError struct {
	Op      string
	Param   string
	Value   float64
	Wrapped error
}

func (e *DomainError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s=%g: %v", e.Op, e.Param, e.Value, e.Wrapped)
}

func (e *DomainError) Unwrap() error {
	return e.Wrapped
}

// ConfigError reports an unsupported discrete choice, listing what is allowed.
func ConfigError(what, got string, allowed []string) error {
	return fmt.Errorf("%w: unknown %s %q (available: %v)", ErrConfiguration, what, got, allowed)
}
