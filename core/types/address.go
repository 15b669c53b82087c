package types

import (
	"strings"

	"github.com/pkg/errors"
)

// Address is a ledger account address.
type Address string

const addressPrefix = "tnam1"

// Established internal addresses. These accounts exist from genesis and are
// never controlled by a user key.
const (
	// NativeTokenAddress is the chain's native staking token.
	NativeTokenAddress Address = "tnam1q9nativetoken"
	// TreasuryAddress collects minted public-goods-funding inflation and is
	// the source of every funding payout.
	TreasuryAddress Address = "tnam1q9pgftreasury"
	// IbcAddress is the cross-chain protocol's internal identity. Tokens
	// minted by incoming transfers record it as their minter.
	IbcAddress Address = "tnam1q9ibc"
	// IbcEscrowAddress holds tokens locked for in-flight outgoing transfers.
	IbcEscrowAddress Address = "tnam1q9ibcescrow"
)

// NewAddress parses a ledger account address.
func NewAddress(s string) (Address, error) {
	if !strings.HasPrefix(s, addressPrefix) || len(s) <= len(addressPrefix) {
		return "", errors.Errorf("invalid address: %q", s)
	}
	return Address(s), nil
}

func (a Address) String() string {
	return string(a)
}
