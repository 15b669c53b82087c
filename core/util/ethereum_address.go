package util

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// EthereumAddress is the address of an account or contract on the bridged
// Ethereum chain.
type EthereumAddress struct {
	addr common.Address
}

// NewEthereumAddressFromString parses a 20-byte hex Ethereum address.
func NewEthereumAddressFromString(s string) (EthereumAddress, error) {
	if !common.IsHexAddress(s) {
		return EthereumAddress{}, errors.Errorf("invalid ethereum address: %q", s)
	}
	return EthereumAddress{addr: common.HexToAddress(s)}, nil
}

// NewEthereumAddressFromBytes builds an address from its raw 20 bytes.
func NewEthereumAddressFromBytes(b []byte) (EthereumAddress, error) {
	if len(b) != common.AddressLength {
		return EthereumAddress{}, errors.Errorf("ethereum address must be %d bytes, got %d", common.AddressLength, len(b))
	}
	return EthereumAddress{addr: common.BytesToAddress(b)}, nil
}

// Address returns the lowercase hex representation.
func (e EthereumAddress) Address() string {
	return strings.ToLower(e.addr.Hex())
}

func (e EthereumAddress) Bytes() []byte {
	return e.addr.Bytes()
}

func (e EthereumAddress) MarshalText() ([]byte, error) {
	return []byte(e.Address()), nil
}

func (e *EthereumAddress) UnmarshalText(text []byte) error {
	parsed, err := NewEthereumAddressFromString(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// EthereumAddressesToStrings converts a slice of EthereumAddress to their lowercase hex string representation.
func EthereumAddressesToStrings(addrs []EthereumAddress) []string {
	strs := make([]string, len(addrs))
	for i, a := range addrs {
		strs[i] = a.Address()
	}
	return strs
}
