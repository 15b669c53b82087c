package ebridge

import (
	"github.com/gnosed/namada/core/storage"
	"github.com/gnosed/namada/core/types"
	"github.com/gnosed/namada/core/util"
)

// IsWhitelisted reports whether the asset may flow over the bridge.
func IsWhitelisted(s storage.Store, asset util.EthereumAddress) (bool, error) {
	var whitelisted bool
	if _, err := storage.Read(s, whitelistKey(asset, suffixWhitelisted), &whitelisted); err != nil {
		return false, err
	}
	return whitelisted, nil
}

// ReadTokenCap returns the bridged-amount cap of the asset, or nil when the
// asset has none recorded.
func ReadTokenCap(s storage.Store, asset util.EthereumAddress) (*types.Amount, error) {
	var tokenCap types.Amount
	found, err := storage.Read(s, whitelistKey(asset, suffixCap), &tokenCap)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &tokenCap, nil
}

// ReadTokenDenom returns the decimal precision the asset was whitelisted
// with, or nil when the asset has none recorded.
func ReadTokenDenom(s storage.Store, asset util.EthereumAddress) (*types.Denomination, error) {
	var denom types.Denomination
	found, err := storage.Read(s, whitelistKey(asset, suffixDenom), &denom)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &denom, nil
}
