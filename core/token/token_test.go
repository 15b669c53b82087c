package token

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gnosed/namada/core/storage"
	"github.com/gnosed/namada/core/types"
)

const (
	testToken types.Address = "tnam1q9testtoken"
	alice     types.Address = "tnam1q9alice"
	bob       types.Address = "tnam1q9bob"
)

func TestCreditGrowsSupply(t *testing.T) {
	wl := storage.NewWriteLog(storage.NewMemStore())

	require.NoError(t, Credit(wl, testToken, alice, types.NewAmount(100)))
	require.NoError(t, Credit(wl, testToken, bob, types.NewAmount(50)))

	balance, err := ReadBalance(wl, testToken, alice)
	require.NoError(t, err)
	require.Equal(t, "100", balance.String())

	supply, err := ReadTotalSupply(wl, testToken)
	require.NoError(t, err)
	require.Equal(t, "150", supply.String())
}

func TestTotalSupplyMissing(t *testing.T) {
	wl := storage.NewWriteLog(storage.NewMemStore())

	_, err := ReadTotalSupply(wl, testToken)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not in storage")
}

func TestBurnShrinksSupply(t *testing.T) {
	wl := storage.NewWriteLog(storage.NewMemStore())
	require.NoError(t, Credit(wl, testToken, alice, types.NewAmount(100)))

	require.NoError(t, Burn(wl, testToken, alice, types.NewAmount(40)))

	balance, err := ReadBalance(wl, testToken, alice)
	require.NoError(t, err)
	require.Equal(t, "60", balance.String())

	supply, err := ReadTotalSupply(wl, testToken)
	require.NoError(t, err)
	require.Equal(t, "60", supply.String())

	err = Burn(wl, testToken, alice, types.NewAmount(1000))
	require.Error(t, err)
	require.Contains(t, err.Error(), "insufficient")
}

func TestTransferMovesBalance(t *testing.T) {
	wl := storage.NewWriteLog(storage.NewMemStore())
	require.NoError(t, Credit(wl, testToken, alice, types.NewAmount(100)))

	require.NoError(t, Transfer(wl, testToken, alice, bob, types.NewAmount(30)))

	aliceBalance, err := ReadBalance(wl, testToken, alice)
	require.NoError(t, err)
	require.Equal(t, "70", aliceBalance.String())

	bobBalance, err := ReadBalance(wl, testToken, bob)
	require.NoError(t, err)
	require.Equal(t, "30", bobBalance.String())

	// supply is untouched by transfers
	supply, err := ReadTotalSupply(wl, testToken)
	require.NoError(t, err)
	require.Equal(t, "100", supply.String())

	err = Transfer(wl, testToken, bob, alice, types.NewAmount(1000))
	require.Error(t, err)
}

func TestDenomRoundTrip(t *testing.T) {
	wl := storage.NewWriteLog(storage.NewMemStore())

	denom, err := ReadDenom(wl, testToken)
	require.NoError(t, err)
	require.Nil(t, denom)

	require.NoError(t, WriteDenom(wl, testToken, types.NativeMaxDecimalPlaces))

	denom, err = ReadDenom(wl, testToken)
	require.NoError(t, err)
	require.NotNil(t, denom)
	require.Equal(t, types.NativeMaxDecimalPlaces, *denom)
}
