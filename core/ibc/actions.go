package ibc

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/gnosed/namada/core/storage"
	"github.com/gnosed/namada/core/types"
)

// EventTypeSendPacket is emitted when an outgoing transfer packet is
// committed.
const EventTypeSendPacket = "send_packet"

// Actions executes encoded cross-chain messages against a capability
// context. Note that a protocol-internal context only carries the
// ActionContext subset; anything shielded never reaches here.
type Actions struct {
	ctx ActionContext
}

func NewActions(ctx ActionContext) *Actions {
	return &Actions{ctx: ctx}
}

// Execute decodes the enveloped message and runs it. For a transfer this
// escrows the sender's tokens and emits the send-packet event.
func (a *Actions) Execute(data []byte) error {
	msg, err := DecodeTransferMsg(data)
	if err != nil {
		return err
	}
	tok, err := types.NewAddress(msg.PacketData.Token.Denom)
	if err != nil {
		return errors.Wrap(err, "transfer denom is not a ledger token")
	}
	sender, err := types.NewAddress(msg.PacketData.Sender)
	if err != nil {
		return errors.Wrap(err, "transfer sender is not a ledger account")
	}
	amount, err := types.AmountFromString(msg.PacketData.Token.Amount)
	if err != nil {
		return err
	}
	denom, err := a.ctx.TokenDenom(tok)
	if err != nil {
		return err
	}

	escrowed := types.DenominatedAmount{Amount: amount, Denom: denom}
	if err := a.ctx.Transfer(sender, types.IbcEscrowAddress, tok, escrowed); err != nil {
		return errors.Wrap(err, "escrowing the transfer amount")
	}

	a.ctx.EmitEvent(storage.Event{
		Type: EventTypeSendPacket,
		Attributes: map[string]string{
			"packet_src_port":          msg.PortID,
			"packet_src_channel":       msg.ChannelID,
			"packet_sender":            msg.PacketData.Sender,
			"packet_receiver":          msg.PacketData.Receiver,
			"packet_denom":             msg.PacketData.Token.Denom,
			"packet_amount":            msg.PacketData.Token.Amount,
			"packet_timeout_height":    fmt.Sprintf("%d-%d", msg.TimeoutHeight.RevisionNumber, msg.TimeoutHeight.RevisionHeight),
			"packet_timeout_timestamp": fmt.Sprintf("%d", msg.TimeoutTimestamp),
		},
	})
	a.ctx.Log("executed cross-chain transfer for " + msg.PacketData.Receiver)
	return nil
}
