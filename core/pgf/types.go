// Package pgf implements the public-goods-funding treasury: periodic
// inflation minting, ordered funding payouts and steward rewards.
package pgf

import (
	"github.com/pkg/errors"

	"github.com/gnosed/namada/core/types"
)

// Params are the per-epoch inflation knobs, stored as annualized rates.
type Params struct {
	PgfInflationRate      types.Dec `json:"pgf_inflation_rate"`
	StewardsInflationRate types.Dec `json:"stewards_inflation_rate"`
}

// InternalTarget is a funding recipient on this chain.
type InternalTarget struct {
	Target types.Address `json:"target"`
	Amount types.Amount  `json:"amount"`
}

// IbcTarget is a funding recipient on another chain, reached through the
// cross-chain transfer protocol.
type IbcTarget struct {
	Target    string       `json:"target"`
	Amount    types.Amount `json:"amount"`
	PortID    string       `json:"port_id"`
	ChannelID string       `json:"channel_id"`
}

// FundingTarget is the destination of a funding: exactly one of the variants
// is set.
type FundingTarget struct {
	Internal *InternalTarget `json:"internal,omitempty"`
	Ibc      *IbcTarget      `json:"ibc,omitempty"`
}

// Validate checks that exactly one variant is set.
func (t FundingTarget) Validate() error {
	if (t.Internal == nil) == (t.Ibc == nil) {
		return errors.New("a funding target must be either internal or ibc")
	}
	return nil
}

// Amount is the fixed amount the funding pays each epoch.
func (t FundingTarget) Amount() types.Amount {
	switch {
	case t.Internal != nil:
		return t.Internal.Amount
	case t.Ibc != nil:
		return t.Ibc.Amount
	}
	return types.Amount{}
}

// Target renders the recipient for diagnostics.
func (t FundingTarget) Target() string {
	switch {
	case t.Internal != nil:
		return t.Internal.Target.String()
	case t.Ibc != nil:
		return t.Ibc.Target
	}
	return ""
}

// Funding is a recurring funding obligation. IDs are assigned monotonically;
// the oldest funding is always paid first.
type Funding struct {
	ID     uint64        `json:"id"`
	Detail FundingTarget `json:"detail"`
}

// Steward is an entity entitled to split a share of the steward inflation
// pool among recipients of its choosing. Shares are not required to sum to
// one.
type Steward struct {
	Address            types.Address               `json:"address"`
	RewardDistribution map[types.Address]types.Dec `json:"reward_distribution"`
}
