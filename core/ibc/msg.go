// Package ibc carries protocol-internal cross-chain transfers: it builds the
// transfer message for a funding payout and executes it through a
// capability-restricted storage context.
package ibc

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// transferMsgTypeURL tags the canonical envelope of a transfer message.
const transferMsgTypeURL = "/ibc.applications.transfer.v1.MsgTransfer"

// PacketCoin is the token carried by a transfer packet.
type PacketCoin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// PacketData is the application payload of a transfer packet.
type PacketData struct {
	Token    PacketCoin `json:"token"`
	Sender   string     `json:"sender"`
	Receiver string     `json:"receiver"`
	Memo     string     `json:"memo"`
}

// Height is a revisioned counterparty-chain height.
type Height struct {
	RevisionNumber uint64 `json:"revision_number"`
	RevisionHeight uint64 `json:"revision_height"`
}

// TimeoutHeightNever disables the height component of a packet timeout.
var TimeoutHeightNever = Height{}

// MsgTransfer is the ephemeral message built per funding payout. It only
// lives for the duration of a dispatch.
type MsgTransfer struct {
	PortID           string     `json:"port_id"`
	ChannelID        string     `json:"channel_id"`
	PacketData       PacketData `json:"packet_data"`
	TimeoutHeight    Height     `json:"timeout_height"`
	TimeoutTimestamp uint64     `json:"timeout_timestamp"`
}

type envelope struct {
	TypeURL string          `json:"type_url"`
	Value   json.RawMessage `json:"value"`
}

// EncodeTransferMsg wraps the message in its canonical binary envelope.
func EncodeTransferMsg(msg MsgTransfer) ([]byte, error) {
	value, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.Wrap(err, "encoding transfer message")
	}
	data, err := json.Marshal(envelope{TypeURL: transferMsgTypeURL, Value: value})
	if err != nil {
		return nil, errors.Wrap(err, "enveloping transfer message")
	}
	return data, nil
}

// DecodeTransferMsg unwraps a canonical envelope holding a transfer message.
func DecodeTransferMsg(data []byte) (*MsgTransfer, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(err, "decoding message envelope")
	}
	if env.TypeURL != transferMsgTypeURL {
		return nil, errors.Errorf("unexpected message type %q", env.TypeURL)
	}
	var msg MsgTransfer
	if err := json.Unmarshal(env.Value, &msg); err != nil {
		return nil, errors.Wrap(err, "decoding transfer message")
	}
	return &msg, nil
}
