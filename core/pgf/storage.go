package pgf

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/gnosed/namada/core/storage"
	"github.com/gnosed/namada/core/types"
)

const (
	paramsKey          = "pgf/params"
	fundingsPrefix     = "pgf/fundings/"
	fundingsCounterKey = "pgf/fundings_counter"
	stewardsPrefix     = "pgf/stewards/"
)

// IDs are zero-padded so lexicographic key order matches numeric order.
func fundingKey(id uint64) string {
	return fmt.Sprintf("%s%020d", fundingsPrefix, id)
}

func stewardKey(addr types.Address) string {
	return stewardsPrefix + addr.String()
}

// InitParams writes the inflation parameters. Used at genesis and by
// governance.
func InitParams(s storage.Store, p Params) error {
	return storage.Write(s, paramsKey, p)
}

// GetParams reads the inflation parameters, which must exist.
func GetParams(s storage.Store) (Params, error) {
	var p Params
	found, err := storage.Read(s, paramsKey, &p)
	if err != nil {
		return Params{}, err
	}
	if !found {
		return Params{}, errors.New("pgf parameters are not in storage")
	}
	return p, nil
}

// AppendFunding persists a new funding under the next monotonic id.
func AppendFunding(s storage.Store, detail FundingTarget) (Funding, error) {
	if err := detail.Validate(); err != nil {
		return Funding{}, err
	}
	var counter uint64
	if _, err := storage.Read(s, fundingsCounterKey, &counter); err != nil {
		return Funding{}, err
	}
	counter++
	funding := Funding{ID: counter, Detail: detail}
	if err := writeFunding(s, funding); err != nil {
		return Funding{}, err
	}
	if err := storage.Write(s, fundingsCounterKey, counter); err != nil {
		return Funding{}, err
	}
	return funding, nil
}

func writeFunding(s storage.Store, funding Funding) error {
	return storage.Write(s, fundingKey(funding.ID), funding)
}

// RemoveFunding drops a funding, ending its recurring payout.
func RemoveFunding(s storage.Store, id uint64) error {
	return s.Delete(fundingKey(id))
}

// GetFundings lists every persisted funding.
func GetFundings(s storage.Store) ([]Funding, error) {
	var fundings []Funding
	err := s.Iterate(fundingsPrefix, func(key string, value []byte) (bool, error) {
		var funding Funding
		if err := json.Unmarshal(value, &funding); err != nil {
			return false, errors.Wrapf(err, "decoding %s", key)
		}
		fundings = append(fundings, funding)
		return false, nil
	})
	return fundings, err
}

// WriteSteward records a steward and its reward distribution.
func WriteSteward(s storage.Store, steward Steward) error {
	return storage.Write(s, stewardKey(steward.Address), steward)
}

// RemoveSteward drops a steward.
func RemoveSteward(s storage.Store, addr types.Address) error {
	return s.Delete(stewardKey(addr))
}

// GetStewards lists every steward.
func GetStewards(s storage.Store) ([]Steward, error) {
	var stewards []Steward
	err := s.Iterate(stewardsPrefix, func(key string, value []byte) (bool, error) {
		var steward Steward
		if err := json.Unmarshal(value, &steward); err != nil {
			return false, errors.Wrapf(err, "decoding %s", key)
		}
		stewards = append(stewards, steward)
		return false, nil
	})
	return stewards, err
}
