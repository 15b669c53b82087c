package ibc

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gnosed/namada/core/parameters"
	"github.com/gnosed/namada/core/pgf"
	"github.com/gnosed/namada/core/storage"
	"github.com/gnosed/namada/core/token"
	"github.com/gnosed/namada/core/types"
)

const minEpochDuration = 10 * time.Minute

func setupTransfer(t *testing.T) *storage.WriteLog {
	t.Helper()
	wl := storage.NewWriteLog(storage.NewMemStore())
	require.NoError(t, parameters.Init(wl, 10, parameters.EpochDuration{
		MinNumOfBlocks: 100,
		MinDuration:    minEpochDuration,
	}))
	require.NoError(t, token.Credit(wl, types.NativeTokenAddress, types.TreasuryAddress, types.NewAmount(5000)))
	return wl
}

func TestTransferOverIbc(t *testing.T) {
	wl := setupTransfer(t)
	before := time.Now()

	err := TransferOverIbc(wl, types.NativeTokenAddress, types.TreasuryAddress, pgf.IbcTarget{
		Target:    "cosmos1recipient",
		Amount:    types.NewAmount(1000),
		PortID:    "transfer",
		ChannelID: "channel-0",
	})
	require.NoError(t, err)

	treasury, err := token.ReadBalance(wl, types.NativeTokenAddress, types.TreasuryAddress)
	require.NoError(t, err)
	require.Equal(t, "4000", treasury.String())

	escrow, err := token.ReadBalance(wl, types.NativeTokenAddress, types.IbcEscrowAddress)
	require.NoError(t, err)
	require.Equal(t, "1000", escrow.String())

	events := wl.EventsByType(EventTypeSendPacket)
	require.Len(t, events, 1)
	attrs := events[0].Attributes
	require.Equal(t, "transfer", attrs["packet_src_port"])
	require.Equal(t, "channel-0", attrs["packet_src_channel"])
	require.Equal(t, types.TreasuryAddress.String(), attrs["packet_sender"])
	require.Equal(t, "cosmos1recipient", attrs["packet_receiver"])
	require.Equal(t, types.NativeTokenAddress.String(), attrs["packet_denom"])
	require.Equal(t, "1000", attrs["packet_amount"])
	// the height component of the timeout is unbounded
	require.Equal(t, "0-0", attrs["packet_timeout_height"])
	require.NotEmpty(t, attrs["tx_hash"])

	var timeout uint64
	_, err = fmt.Sscan(attrs["packet_timeout_timestamp"], &timeout)
	require.NoError(t, err)
	require.GreaterOrEqual(t, timeout, uint64(before.Add(minEpochDuration).UnixNano()))
}

// An end-to-end epoch pass: a persisted cross-chain funding is paid through
// the real dispatcher.
func TestDisbursementPaysIbcFunding(t *testing.T) {
	wl := setupTransfer(t)

	pgfRate, err := types.NewDecFromString("0.1")
	require.NoError(t, err)
	stewardsRate, err := types.NewDecFromString("0")
	require.NoError(t, err)
	require.NoError(t, pgf.InitParams(wl, pgf.Params{
		PgfInflationRate:      pgfRate,
		StewardsInflationRate: stewardsRate,
	}))

	_, err = pgf.AppendFunding(wl, pgf.FundingTarget{Ibc: &pgf.IbcTarget{
		Target:    "cosmos1recipient",
		Amount:    types.NewAmount(1000),
		PortID:    "transfer",
		ChannelID: "channel-0",
	}})
	require.NoError(t, err)

	require.NoError(t, pgf.ApplyInflation(wl, TransferOverIbc))

	escrow, err := token.ReadBalance(wl, types.NativeTokenAddress, types.IbcEscrowAddress)
	require.NoError(t, err)
	require.Equal(t, "1000", escrow.String())
	require.Len(t, wl.EventsByType(EventTypeSendPacket), 1)
}

func TestTransferOverIbcInsufficientFunds(t *testing.T) {
	wl := setupTransfer(t)

	err := TransferOverIbc(wl, types.NativeTokenAddress, types.TreasuryAddress, pgf.IbcTarget{
		Target:    "cosmos1recipient",
		Amount:    types.NewAmount(1_000_000),
		PortID:    "transfer",
		ChannelID: "channel-0",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "insufficient")
}

func TestTransferMsgEnvelopeRoundTrip(t *testing.T) {
	msg := MsgTransfer{
		PortID:    "transfer",
		ChannelID: "channel-7",
		PacketData: PacketData{
			Token:    PacketCoin{Denom: types.NativeTokenAddress.String(), Amount: "42"},
			Sender:   types.TreasuryAddress.String(),
			Receiver: "cosmos1recipient",
		},
		TimeoutHeight:    TimeoutHeightNever,
		TimeoutTimestamp: 1234567890,
	}

	data, err := EncodeTransferMsg(msg)
	require.NoError(t, err)

	decoded, err := DecodeTransferMsg(data)
	require.NoError(t, err)
	require.Equal(t, msg, *decoded)
}

func TestDecodeRejectsForeignEnvelope(t *testing.T) {
	_, err := DecodeTransferMsg([]byte(`{"type_url":"/other.Msg","value":{}}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected message type")
}

func TestProtocolContextMintRecordsMinter(t *testing.T) {
	wl := storage.NewWriteLog(storage.NewMemStore())
	ctx := NewProtocolContext(wl)

	target := types.Address("tnam1q9receiver")
	tok := types.Address("tnam1q9wrappedtoken")
	amount := types.DenominatedAmount{Amount: types.NewAmount(777), Denom: 6}
	require.NoError(t, ctx.Mint(target, tok, amount))

	balance, err := token.ReadBalance(wl, tok, target)
	require.NoError(t, err)
	require.Equal(t, "777", balance.String())

	var minter types.Address
	found, err := storage.Read(wl, token.MinterKey(tok), &minter)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, types.IbcAddress, minter)
}

func TestProtocolContextBurn(t *testing.T) {
	wl := storage.NewWriteLog(storage.NewMemStore())
	ctx := NewProtocolContext(wl)

	tok := types.Address("tnam1q9wrappedtoken")
	target := types.Address("tnam1q9receiver")
	require.NoError(t, ctx.Mint(target, tok, types.DenominatedAmount{Amount: types.NewAmount(100)}))
	require.NoError(t, ctx.Burn(target, tok, types.DenominatedAmount{Amount: types.NewAmount(60)}))

	balance, err := token.ReadBalance(wl, tok, target)
	require.NoError(t, err)
	require.Equal(t, "40", balance.String())
}

func TestProtocolContextShieldedTransferPanics(t *testing.T) {
	ctx := NewProtocolContext(storage.NewWriteLog(storage.NewMemStore()))
	require.Panics(t, func() { _ = ctx.HandleShieldedTransfer(nil) })
}
