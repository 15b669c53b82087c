package ebridge

import (
	"fmt"

	"github.com/gnosed/namada/core/util"
)

// Storage keys of the bridge subspace. One encoded value per key.
const (
	activeKey           = "bridge/active"
	minConfirmationsKey = "bridge/min_confirmations"
	nativeErc20Key      = "bridge/native_erc20"
	bridgeContractKey   = "bridge/contract"
	ethStartHeightKey   = "bridge/eth_start_height"
)

type whitelistSuffix string

const (
	suffixWhitelisted whitelistSuffix = "whitelisted"
	suffixCap         whitelistSuffix = "cap"
	suffixDenom       whitelistSuffix = "denom"
)

func whitelistKey(asset util.EthereumAddress, suffix whitelistSuffix) string {
	return fmt.Sprintf("bridge/erc20/%s/%s", asset.Address(), suffix)
}
