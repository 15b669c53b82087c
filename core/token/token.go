// Package token implements the native-asset balance primitives every money
// movement in the ledger core goes through.
package token

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/gnosed/namada/core/storage"
	"github.com/gnosed/namada/core/types"
)

func balanceKey(token, owner types.Address) string {
	return fmt.Sprintf("token/%s/balance/%s", token, owner)
}

func mintedBalanceKey(token types.Address) string {
	return fmt.Sprintf("token/%s/balance/minted", token)
}

// MinterKey stores the account allowed to mint the given token.
func MinterKey(token types.Address) string {
	return fmt.Sprintf("token/%s/minter", token)
}

func denomKey(token types.Address) string {
	return fmt.Sprintf("token/%s/denom", token)
}

// ReadBalance returns the balance of owner. An absent balance reads as zero.
func ReadBalance(s storage.Store, token, owner types.Address) (types.Amount, error) {
	var balance types.Amount
	if _, err := storage.Read(s, balanceKey(token, owner), &balance); err != nil {
		return types.Amount{}, err
	}
	return balance, nil
}

// ReadTotalSupply returns the minted supply of the token. The minted balance
// must have been initialized for the token.
func ReadTotalSupply(s storage.Store, token types.Address) (types.Amount, error) {
	var supply types.Amount
	found, err := storage.Read(s, mintedBalanceKey(token), &supply)
	if err != nil {
		return types.Amount{}, err
	}
	if !found {
		return types.Amount{}, errors.Errorf("total supply of %s is not in storage", token)
	}
	return supply, nil
}

// ReadDenom returns the decimal precision of the token, or nil when the token
// has none recorded.
func ReadDenom(s storage.Store, token types.Address) (*types.Denomination, error) {
	var denom types.Denomination
	found, err := storage.Read(s, denomKey(token), &denom)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &denom, nil
}

// WriteDenom records the decimal precision of the token.
func WriteDenom(s storage.Store, token types.Address, denom types.Denomination) error {
	return storage.Write(s, denomKey(token), denom)
}

// Credit mints amount to target, growing the token's total supply.
func Credit(s storage.Store, token, target types.Address, amount types.Amount) error {
	if err := addBalance(s, token, balanceKey(token, target), amount); err != nil {
		return errors.Wrapf(err, "crediting %s", target)
	}
	if err := addBalance(s, token, mintedBalanceKey(token), amount); err != nil {
		return errors.Wrapf(err, "growing the minted supply of %s", token)
	}
	return nil
}

// Burn destroys amount held by target, shrinking the token's total supply.
func Burn(s storage.Store, token, target types.Address, amount types.Amount) error {
	if err := subBalance(s, token, balanceKey(token, target), amount); err != nil {
		return errors.Wrapf(err, "burning from %s", target)
	}
	if err := subBalance(s, token, mintedBalanceKey(token), amount); err != nil {
		return errors.Wrapf(err, "shrinking the minted supply of %s", token)
	}
	return nil
}

// Transfer moves amount from src to dest without touching the supply.
func Transfer(s storage.Store, token, src, dest types.Address, amount types.Amount) error {
	if src == dest || amount.IsZero() {
		return nil
	}
	if err := subBalance(s, token, balanceKey(token, src), amount); err != nil {
		return errors.Wrapf(err, "debiting %s", src)
	}
	if err := addBalance(s, token, balanceKey(token, dest), amount); err != nil {
		return errors.Wrapf(err, "crediting %s", dest)
	}
	return nil
}

func addBalance(s storage.Store, token types.Address, key string, amount types.Amount) error {
	var balance types.Amount
	if _, err := storage.Read(s, key, &balance); err != nil {
		return err
	}
	updated, err := balance.Add(amount)
	if err != nil {
		return err
	}
	return storage.Write(s, key, updated)
}

func subBalance(s storage.Store, token types.Address, key string, amount types.Amount) error {
	var balance types.Amount
	if _, err := storage.Read(s, key, &balance); err != nil {
		return err
	}
	updated, err := balance.Sub(amount)
	if err != nil {
		return errors.Errorf("insufficient %s balance", token)
	}
	return storage.Write(s, key, updated)
}
