// Package ebridge holds the configuration of the locked-asset bridge to
// Ethereum: the ERC20 whitelist, confirmation threshold and the bridge
// contracts validators must know about.
package ebridge

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/gnosed/namada/core/logging"
	"github.com/gnosed/namada/core/storage"
	"github.com/gnosed/namada/core/types"
	"github.com/gnosed/namada/core/util"
)

// MinimumConfirmations is the number of Ethereum confirmations an event must
// reach before it can be acted on. Never zero.
type MinimumConfirmations uint64

// DefaultMinimumConfirmations is the threshold used when genesis does not
// override it.
const DefaultMinimumConfirmations MinimumConfirmations = 100

// NewMinimumConfirmations rejects the zero threshold.
func NewMinimumConfirmations(v uint64) (MinimumConfirmations, error) {
	if v == 0 {
		return 0, errors.New("minimum confirmations must be at least one")
	}
	return MinimumConfirmations(v), nil
}

func (m *MinimumConfirmations) UnmarshalJSON(data []byte) error {
	var v uint64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := NewMinimumConfirmations(v)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ContractVersion is the version of an upgradeable bridge contract. Starts
// from 1 and only ever grows.
type ContractVersion uint64

// InitialContractVersion is the version a contract is deployed with.
const InitialContractVersion ContractVersion = 1

// NewContractVersion rejects the zero version.
func NewContractVersion(v uint64) (ContractVersion, error) {
	if v == 0 {
		return 0, errors.New("contract versions start from one")
	}
	return ContractVersion(v), nil
}

// Next returns the version after an upgrade.
func (c ContractVersion) Next() ContractVersion {
	return c + 1
}

func (c *ContractVersion) UnmarshalJSON(data []byte) error {
	var v uint64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := NewContractVersion(v)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Erc20WhitelistEntry is an ERC20 token whitelisted at genesis, with the cap
// on how much of it may flow over the bridge.
type Erc20WhitelistEntry struct {
	TokenAddress util.EthereumAddress    `toml:"token_address" json:"token_address"`
	TokenCap     types.DenominatedAmount `toml:"token_cap" json:"token_cap"`
}

// UpgradeableContract is an Ethereum contract that may be upgraded in place.
type UpgradeableContract struct {
	Address util.EthereumAddress `toml:"address" json:"address"`
	Version ContractVersion      `toml:"version" json:"version" validate:"required,min=1"`
}

// Contracts are the Ethereum contracts validators need to know directly.
type Contracts struct {
	// NativeErc20 is the ERC20 contract wrapping this chain's native token.
	NativeErc20 util.EthereumAddress `toml:"native_erc20" json:"native_erc20"`
	Bridge      UpgradeableContract  `toml:"bridge" json:"bridge"`
}

// Params is the genesis configuration of the bridge. Scalar fields are
// declared ahead of composite ones so the TOML form round-trips.
type Params struct {
	// EthStartHeight is the first Ethereum height events are extracted from.
	EthStartHeight   uint64                `toml:"eth_start_height" json:"eth_start_height"`
	MinConfirmations MinimumConfirmations  `toml:"min_confirmations" json:"min_confirmations" validate:"required,min=1"`
	Erc20Whitelist   []Erc20WhitelistEntry `toml:"erc20_whitelist" json:"erc20_whitelist"`
	Contracts        Contracts             `toml:"contracts" json:"contracts"`
}

// Validate checks the genesis-file form of the parameters.
func (p *Params) Validate() error {
	return validator.New().Struct(p)
}

// InitStorage writes the bridge configuration, enabling the bridge from
// genesis. Whitelisting the wrapped native token with a precision other than
// the chain's canonical one is a configuration-authoring bug and panics.
func (p *Params) InitStorage(wl *storage.WriteLog) {
	mustWrite(wl, activeKey, StatusEnabledAtGenesis())
	mustWrite(wl, minConfirmationsKey, p.MinConfirmations)
	mustWrite(wl, nativeErc20Key, p.Contracts.NativeErc20)
	mustWrite(wl, bridgeContractKey, p.Contracts.Bridge)
	mustWrite(wl, ethStartHeightKey, p.EthStartHeight)

	assets := make([]util.EthereumAddress, 0, len(p.Erc20Whitelist))
	for _, entry := range p.Erc20Whitelist {
		if entry.TokenAddress == p.Contracts.NativeErc20 && entry.TokenCap.Denom != types.NativeMaxDecimalPlaces {
			logging.Logger.Panic("the wrapped native token must carry the native decimal precision",
				zap.String("token", entry.TokenAddress.Address()),
				zap.Uint8("denom", uint8(entry.TokenCap.Denom)),
				zap.Uint8("native_denom", uint8(types.NativeMaxDecimalPlaces)),
			)
		}
		mustWrite(wl, whitelistKey(entry.TokenAddress, suffixWhitelisted), true)
		mustWrite(wl, whitelistKey(entry.TokenAddress, suffixCap), entry.TokenCap.Amount)
		mustWrite(wl, whitelistKey(entry.TokenAddress, suffixDenom), entry.TokenCap.Denom)
		assets = append(assets, entry.TokenAddress)
	}
	logging.Logger.Info("initialized the ethereum bridge subspace",
		zap.Uint64("eth_start_height", p.EthStartHeight),
		zap.Uint64("min_confirmations", uint64(p.MinConfirmations)),
		zap.Strings("whitelist", util.EthereumAddressesToStrings(assets)),
	)
}

// OracleConfig is the subset of Params the Ethereum event oracle needs. It is
// only ever derived, never constructed on its own.
type OracleConfig struct {
	EthStartHeight   uint64
	MinConfirmations MinimumConfirmations
	Contracts        Contracts
}

// OracleConfig projects the parameters onto what the oracle consumes.
func (p *Params) OracleConfig() OracleConfig {
	return OracleConfig{
		EthStartHeight:   p.EthStartHeight,
		MinConfirmations: p.MinConfirmations,
		Contracts:        p.Contracts,
	}
}

// ReadOracleConfig reads the oracle configuration from storage. It returns
// nil when the bridge has not been bootstrapped (no enabled-status key) or is
// disabled. Once the status key is present, every other key must be there and
// decodable; anything else is corrupt storage and panics.
func ReadOracleConfig(s storage.Store) *OracleConfig {
	hasActive, err := storage.HasKey(s, activeKey)
	if err != nil {
		logging.Logger.Panic("could not probe the bridge status", zap.Error(err))
	}
	if !hasActive {
		return nil
	}
	var status Status
	mustReadKey(s, activeKey, &status)
	if !status.Active() {
		return nil
	}

	var cfg OracleConfig
	mustReadKey(s, minConfirmationsKey, &cfg.MinConfirmations)
	mustReadKey(s, nativeErc20Key, &cfg.Contracts.NativeErc20)
	mustReadKey(s, bridgeContractKey, &cfg.Contracts.Bridge)
	mustReadKey(s, ethStartHeightKey, &cfg.EthStartHeight)
	return &cfg
}

// ErrBridgeNotInitialized reports a read against a bridge subspace that was
// never written.
var ErrBridgeNotInitialized = errors.New("the ethereum bridge storage is not initialized")

// ReadNativeErc20Address returns the ERC20 address wrapping the native token.
// Unlike ReadOracleConfig this is safe to call outside the privileged
// initialization path: failures come back as errors.
func ReadNativeErc20Address(s storage.Store) (util.EthereumAddress, error) {
	var addr util.EthereumAddress
	found, err := storage.Read(s, nativeErc20Key, &addr)
	if err != nil {
		return util.EthereumAddress{}, errors.Wrap(err, "failed to read the native ERC20 address")
	}
	if !found {
		return util.EthereumAddress{}, ErrBridgeNotInitialized
	}
	return addr, nil
}

// mustReadKey reads and decodes key or panics: with the bridge enabled, a
// missing or undecodable key means the subspace is only partially configured.
func mustReadKey(s storage.Store, key string, v any) {
	found, err := storage.Read(s, key, v)
	if err != nil {
		logging.Logger.Panic("could not read the bridge subspace",
			zap.String("key", key), zap.Error(err))
	}
	if !found {
		logging.Logger.Panic("the ethereum bridge appears to be only partially configured",
			zap.String("key", key))
	}
}

func mustWrite(wl *storage.WriteLog, key string, v any) {
	if err := storage.Write(wl, key, v); err != nil {
		logging.Logger.Panic("could not write the bridge subspace",
			zap.String("key", key), zap.Error(err))
	}
}
