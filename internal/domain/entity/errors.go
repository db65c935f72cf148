package entity

import (
	"errors"
	"fmt"
)

// ErrNotConnected is returned by session actions that require an active
// wallet connection.
var ErrNotConnected = errors.New("wallet not connected")

// ProviderUnavailableError signals that the wallet extension is not
// installed. InstallURL points the user at the provider's install page.
type ProviderUnavailableError struct {
	InstallURL string
}

func (e *ProviderUnavailableError) Error() string {
	return fmt.Sprintf("wallet provider not found, install it from %s", e.InstallURL)
}

// IsProviderUnavailable reports whether err wraps a ProviderUnavailableError
// and returns the wrapped value when it does.
func IsProviderUnavailable(err error) (*ProviderUnavailableError, bool) {
	var target *ProviderUnavailableError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
