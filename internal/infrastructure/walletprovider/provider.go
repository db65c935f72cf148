// Package walletprovider contains server-side stand-ins for the browser
// wallet extension the session talks to. The extension itself lives outside
// this process; these implementations cover the "absent" case and a fixed
// address for headless operation and tests.
package walletprovider

import (
	"context"
	"errors"

	"solfolio/internal/domain/entity"
)

// ErrSigningUnsupported is returned by providers that cannot sign.
var ErrSigningUnsupported = errors.New("wallet provider does not support signing")

// Unavailable models an uninstalled wallet extension. Every call fails with
// a ProviderUnavailableError carrying the install page URL.
type Unavailable struct {
	InstallURL string
}

// NewUnavailable creates an Unavailable provider.
func NewUnavailable(installURL string) *Unavailable {
	return &Unavailable{InstallURL: installURL}
}

func (p *Unavailable) Connect(ctx context.Context) (string, error) {
	return "", &entity.ProviderUnavailableError{InstallURL: p.InstallURL}
}

func (p *Unavailable) Disconnect(ctx context.Context) error {
	return &entity.ProviderUnavailableError{InstallURL: p.InstallURL}
}

func (p *Unavailable) SignMessage(ctx context.Context, message []byte) ([]byte, error) {
	return nil, &entity.ProviderUnavailableError{InstallURL: p.InstallURL}
}

func (p *Unavailable) SignAndSendTransaction(ctx context.Context, tx []byte) (string, error) {
	return "", &entity.ProviderUnavailableError{InstallURL: p.InstallURL}
}

// Static always connects to a fixed address. It cannot sign anything.
type Static struct {
	Address string
}

// NewStatic creates a Static provider for the given address.
func NewStatic(address string) *Static {
	return &Static{Address: address}
}

func (p *Static) Connect(ctx context.Context) (string, error) {
	return p.Address, nil
}

func (p *Static) Disconnect(ctx context.Context) error {
	return nil
}

func (p *Static) SignMessage(ctx context.Context, message []byte) ([]byte, error) {
	return nil, ErrSigningUnsupported
}

func (p *Static) SignAndSendTransaction(ctx context.Context, tx []byte) (string, error) {
	return "", ErrSigningUnsupported
}
