package ibc

import (
	"crypto/sha256"
	"time"

	kwiltypes "github.com/kwilteam/kwil-db/core/types"
	"github.com/pkg/errors"

	"github.com/gnosed/namada/core/parameters"
	"github.com/gnosed/namada/core/pgf"
	"github.com/gnosed/namada/core/storage"
	"github.com/gnosed/namada/core/types"
)

// TransferOverIbc pays a funding target through the cross-chain transfer
// protocol. The message times out by timestamp only, one epoch's minimum
// duration from now; the height component is left unbounded. Matches
// pgf.TransferOverIbcFn.
func TransferOverIbc(wl *storage.WriteLog, tok, source types.Address, target pgf.IbcTarget) error {
	epochDuration, err := parameters.ReadEpochDuration(wl)
	if err != nil {
		return err
	}
	// sampled exactly once per dispatch so the timeout is replayable
	now := time.Now()

	msg := MsgTransfer{
		PortID:    target.PortID,
		ChannelID: target.ChannelID,
		PacketData: PacketData{
			Token: PacketCoin{
				Denom:  tok.String(),
				Amount: target.Amount.String(),
			},
			Sender:   source.String(),
			Receiver: target.Target,
			Memo:     "",
		},
		TimeoutHeight:    TimeoutHeightNever,
		TimeoutTimestamp: uint64(now.Add(epochDuration.MinDuration).UnixNano()),
	}
	data, err := EncodeTransferMsg(msg)
	if err != nil {
		return errors.Wrap(err, "building the transfer message")
	}

	wl.SetTxHash(kwiltypes.Hash(sha256.Sum256(data)))
	return NewActions(NewProtocolContext(wl)).Execute(data)
}
