package service

import (
	"context"
	"testing"

	"solfolio/internal/domain/entity"
	"solfolio/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradeService_SubmitTrade(t *testing.T) {
	ctx := context.Background()
	provider := testutil.NewMockWalletProvider(testOwner)

	svc := NewTradeService(provider, testutil.NopLogger{})

	signature, err := svc.SubmitTrade(ctx, entity.NativeMint, usdcMint, 1.5)
	require.NoError(t, err)
	assert.Equal(t, "mock-signature", signature)
	assert.Equal(t, 1, provider.CallCount("SignAndSendTransaction"))
}

func TestTradeService_ValidatesInput(t *testing.T) {
	ctx := context.Background()
	provider := testutil.NewMockWalletProvider(testOwner)

	svc := NewTradeService(provider, testutil.NopLogger{})

	_, err := svc.SubmitTrade(ctx, "", usdcMint, 1)
	assert.Error(t, err)

	_, err = svc.SubmitTrade(ctx, entity.NativeMint, "", 1)
	assert.Error(t, err)

	_, err = svc.SubmitTrade(ctx, entity.NativeMint, usdcMint, 0)
	assert.Error(t, err)

	assert.Equal(t, 0, provider.CallCount("SignAndSendTransaction"))
}

func TestTradeService_ProviderUnavailable(t *testing.T) {
	ctx := context.Background()
	provider := testutil.NewMockWalletProvider("")
	provider.SignAndSendTransactionFunc = func(ctx context.Context, tx []byte) (string, error) {
		return "", &entity.ProviderUnavailableError{InstallURL: "https://phantom.app/"}
	}

	svc := NewTradeService(provider, testutil.NopLogger{})

	_, err := svc.SubmitTrade(ctx, entity.NativeMint, usdcMint, 1)
	require.Error(t, err)
	_, ok := entity.IsProviderUnavailable(err)
	assert.True(t, ok)
}
