package ibc

import (
	kwiltypes "github.com/kwilteam/kwil-db/core/types"

	"github.com/gnosed/namada/core/logging"
	"github.com/gnosed/namada/core/storage"
	"github.com/gnosed/namada/core/token"
	"github.com/gnosed/namada/core/types"
)

// ActionContext is the capability set a cross-chain action executor drives:
// event emission and token movement against the in-progress write log.
type ActionContext interface {
	// EmitEvent appends a protocol event. It never fails.
	EmitEvent(ev storage.Event)
	// QueryEvents returns the events of the given type buffered so far.
	QueryEvents(eventType string) []storage.Event
	Transfer(src, dest, tok types.Address, amount types.DenominatedAmount) error
	// Mint credits amount to target and records the cross-chain protocol as
	// the token's minter of record.
	Mint(target, tok types.Address, amount types.DenominatedAmount) error
	Burn(target, tok types.Address, amount types.DenominatedAmount) error
	// TokenDenom resolves the decimal precision a token is quoted in.
	// Tokens without a recorded denomination are undenominated.
	TokenDenom(tok types.Address) (types.Denomination, error)
	// Log is a best-effort diagnostic trace, never observable to consensus.
	Log(message string)
}

// TransactionContext is the full capability set of a user-submitted transfer,
// which additionally may carry a shielded transaction.
type TransactionContext interface {
	ActionContext
	HandleShieldedTransfer(shielded []byte) error
}

// ProtocolContext adapts a write log into the capabilities a
// protocol-internal (non-user) action may use. It is built fresh per
// dispatch, wraps exactly one write log and is discarded afterwards.
type ProtocolContext struct {
	wl *storage.WriteLog
}

var _ TransactionContext = (*ProtocolContext)(nil)

func NewProtocolContext(wl *storage.WriteLog) *ProtocolContext {
	return &ProtocolContext{wl: wl}
}

func (c *ProtocolContext) EmitEvent(ev storage.Event) {
	if h := c.wl.TxHash(); h != (kwiltypes.Hash{}) {
		if ev.Attributes == nil {
			ev.Attributes = make(map[string]string)
		}
		ev.Attributes["tx_hash"] = h.String()
	}
	c.wl.EmitEvent(ev)
}

func (c *ProtocolContext) QueryEvents(eventType string) []storage.Event {
	return c.wl.EventsByType(eventType)
}

func (c *ProtocolContext) Transfer(src, dest, tok types.Address, amount types.DenominatedAmount) error {
	return token.Transfer(c.wl, tok, src, dest, amount.Amount)
}

func (c *ProtocolContext) Mint(target, tok types.Address, amount types.DenominatedAmount) error {
	if err := token.Credit(c.wl, tok, target, amount.Amount); err != nil {
		return err
	}
	return storage.Write(c.wl, token.MinterKey(tok), types.IbcAddress)
}

func (c *ProtocolContext) Burn(target, tok types.Address, amount types.DenominatedAmount) error {
	return token.Burn(c.wl, tok, target, amount.Amount)
}

func (c *ProtocolContext) TokenDenom(tok types.Address) (types.Denomination, error) {
	denom, err := token.ReadDenom(c.wl, tok)
	if err != nil {
		return 0, err
	}
	if denom == nil {
		return 0, nil
	}
	return *denom, nil
}

// HandleShieldedTransfer is not part of the protocol-internal capability set:
// no protocol action may initiate a shielded transfer. Reaching it is a
// programming error.
func (c *ProtocolContext) HandleShieldedTransfer([]byte) error {
	panic("no shielded transfer in a protocol action")
}

func (c *ProtocolContext) Log(message string) {
	logging.Logger.Debug(message)
}
