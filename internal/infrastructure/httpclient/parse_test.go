package httpclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bonkMint = "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263"

func TestParseJupiterPriceResponse(t *testing.T) {
	t.Run("price present", func(t *testing.T) {
		body := []byte(`{"data":{"` + bonkMint + `":{"id":"` + bonkMint + `","price":0.000025}},"timeTaken":0.002}`)

		price, found, err := parseJupiterPriceResponse(body, bonkMint)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, 0.000025, price)
	})

	t.Run("mint absent", func(t *testing.T) {
		body := []byte(`{"data":{},"timeTaken":0.001}`)

		_, found, err := parseJupiterPriceResponse(body, bonkMint)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("zero price treated as missing", func(t *testing.T) {
		body := []byte(`{"data":{"` + bonkMint + `":{"id":"` + bonkMint + `","price":0}}}`)

		_, found, err := parseJupiterPriceResponse(body, bonkMint)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("malformed payload", func(t *testing.T) {
		_, _, err := parseJupiterPriceResponse([]byte(`<html>503</html>`), bonkMint)
		assert.Error(t, err)
	})
}

func TestParseDEXScreenerResponse(t *testing.T) {
	t.Run("picks deepest liquidity pair", func(t *testing.T) {
		body := []byte(`{"pairs":[
			{"pairAddress":"p1","baseToken":{"address":"` + bonkMint + `","symbol":"BONK"},"priceUsd":"0.000021","liquidity":{"usd":50000}},
			{"pairAddress":"p2","baseToken":{"address":"` + bonkMint + `","symbol":"BONK"},"priceUsd":"0.000025","liquidity":{"usd":900000}},
			{"pairAddress":"p3","baseToken":{"address":"OtherMint1111111111111111111111111111111111","symbol":"OTHER"},"priceUsd":"99","liquidity":{"usd":5000000}}
		]}`)

		price, found, err := parseDEXScreenerResponse(body, bonkMint)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, 0.000025, price)
	})

	t.Run("no pairs", func(t *testing.T) {
		_, found, err := parseDEXScreenerResponse([]byte(`{"pairs":[]}`), bonkMint)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("null pairs", func(t *testing.T) {
		_, found, err := parseDEXScreenerResponse([]byte(`{"pairs":null}`), bonkMint)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("no pair for mint", func(t *testing.T) {
		body := []byte(`{"pairs":[
			{"pairAddress":"p1","baseToken":{"address":"OtherMint1111111111111111111111111111111111","symbol":"OTHER"},"priceUsd":"99","liquidity":{"usd":100}}
		]}`)

		_, found, err := parseDEXScreenerResponse(body, bonkMint)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("missing liquidity treated as zero", func(t *testing.T) {
		body := []byte(`{"pairs":[
			{"pairAddress":"p1","baseToken":{"address":"` + bonkMint + `","symbol":"BONK"},"priceUsd":"0.00002"},
			{"pairAddress":"p2","baseToken":{"address":"` + bonkMint + `","symbol":"BONK"},"priceUsd":"0.00003","liquidity":{"usd":10}}
		]}`)

		price, found, err := parseDEXScreenerResponse(body, bonkMint)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, 0.00003, price)
	})

	t.Run("malformed payload", func(t *testing.T) {
		_, _, err := parseDEXScreenerResponse([]byte(`not json`), bonkMint)
		assert.Error(t, err)
	})
}
