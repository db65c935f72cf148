package port

import "context"

// WalletProvider defines the interface to the browser-extension wallet
// collaborator. Any call may fail: the extension can be absent entirely or
// the user can reject the request.
type WalletProvider interface {
	// Connect asks the provider for the active account and returns its address.
	Connect(ctx context.Context) (string, error)

	// Disconnect releases the provider session.
	Disconnect(ctx context.Context) error

	// SignMessage signs an arbitrary message with the active account.
	SignMessage(ctx context.Context, message []byte) ([]byte, error)

	// SignAndSendTransaction signs a serialized transaction and submits it,
	// returning the resulting signature.
	SignAndSendTransaction(ctx context.Context, tx []byte) (string, error)
}
