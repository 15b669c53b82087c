// Package parameters reads the ledger-wide protocol parameters this core
// consumes. Writing them is the business of genesis and governance.
package parameters

import (
	"time"

	"github.com/pkg/errors"

	"github.com/gnosed/namada/core/storage"
)

const (
	epochsPerYearKey = "parameters/epochs_per_year"
	epochDurationKey = "parameters/epoch_duration"
)

// EpochDuration is the lower bound on the length of an epoch.
type EpochDuration struct {
	MinNumOfBlocks uint64        `json:"min_num_of_blocks"`
	MinDuration    time.Duration `json:"min_duration"`
}

// Init writes the parameters consumed by this core. Used at genesis and in
// tests.
func Init(s storage.Store, epochsPerYear uint64, epochDuration EpochDuration) error {
	if epochsPerYear == 0 {
		return errors.New("epochs per year must be positive")
	}
	if err := storage.Write(s, epochsPerYearKey, epochsPerYear); err != nil {
		return err
	}
	return storage.Write(s, epochDurationKey, epochDuration)
}

// ReadEpochsPerYear returns the annualized-to-per-epoch conversion factor.
func ReadEpochsPerYear(s storage.Store) (uint64, error) {
	var epochsPerYear uint64
	found, err := storage.Read(s, epochsPerYearKey, &epochsPerYear)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, errors.New("epochs per year is not in storage")
	}
	return epochsPerYear, nil
}

// ReadEpochDuration returns the configured epoch duration lower bound.
func ReadEpochDuration(s storage.Store) (EpochDuration, error) {
	var duration EpochDuration
	found, err := storage.Read(s, epochDurationKey, &duration)
	if err != nil {
		return EpochDuration{}, err
	}
	if !found {
		return EpochDuration{}, errors.New("epoch duration is not in storage")
	}
	return duration, nil
}
