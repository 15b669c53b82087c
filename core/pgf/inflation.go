package pgf

import (
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/gnosed/namada/core/logging"
	"github.com/gnosed/namada/core/parameters"
	"github.com/gnosed/namada/core/storage"
	"github.com/gnosed/namada/core/token"
	"github.com/gnosed/namada/core/types"
)

// TransferOverIbcFn routes a funding payment through the cross-chain
// transfer protocol.
type TransferOverIbcFn func(wl *storage.WriteLog, tok, source types.Address, target IbcTarget) error

// ApplyInflation runs one epoch's treasury disbursement: it mints inflation
// into the treasury, pays every funding oldest-first and then credits steward
// rewards. A single funding or reward failing is rolled back and logged
// without disturbing its siblings; only treasury bookkeeping failures abort
// the pass.
func ApplyInflation(wl *storage.WriteLog, transferOverIbc TransferOverIbcFn) error {
	pgfParams, err := GetParams(wl)
	if err != nil {
		return err
	}
	epochsPerYear, err := parameters.ReadEpochsPerYear(wl)
	if err != nil {
		return err
	}
	nativeToken := types.NativeTokenAddress
	totalSupply, err := token.ReadTotalSupply(wl, nativeToken)
	if err != nil {
		return err
	}

	inflationAmount, err := perEpochShare(pgfParams.PgfInflationRate, epochsPerYear, totalSupply)
	if err != nil {
		return errors.Wrap(err, "computing the pgf inflation")
	}
	if err := token.Credit(wl, nativeToken, types.TreasuryAddress, inflationAmount); err != nil {
		return errors.Wrap(err, "minting pgf inflation into the treasury")
	}
	logging.Logger.Info("minted pgf inflation into the treasury",
		zap.String("amount", inflationAmount.String()))

	fundings, err := GetFundings(wl)
	if err != nil {
		return err
	}
	// the oldest funding commitment is paid first
	sort.Slice(fundings, func(i, j int) bool { return fundings[i].ID < fundings[j].ID })
	for _, funding := range fundings {
		err := wl.WithBatch(func(batch *storage.WriteLog) error {
			switch {
			case funding.Detail.Internal != nil:
				t := funding.Detail.Internal
				return token.Transfer(batch, nativeToken, types.TreasuryAddress, t.Target, t.Amount)
			case funding.Detail.Ibc != nil:
				return transferOverIbc(batch, nativeToken, types.TreasuryAddress, *funding.Detail.Ibc)
			default:
				return errors.Errorf("funding %d has no target", funding.ID)
			}
		})
		if err != nil {
			logging.Logger.Warn("failed to pay funding",
				zap.Uint64("id", funding.ID),
				zap.String("target", funding.Detail.Target()),
				zap.String("amount", funding.Detail.Amount().String()),
				zap.Error(err))
			continue
		}
		logging.Logger.Info("paid funding",
			zap.Uint64("id", funding.ID),
			zap.String("target", funding.Detail.Target()),
			zap.String("amount", funding.Detail.Amount().String()))
	}

	stewards, err := GetStewards(wl)
	if err != nil {
		return err
	}
	stewardRate, err := pgfParams.StewardsInflationRate.DivUint64(epochsPerYear)
	if err != nil {
		return errors.Wrap(err, "computing the per-epoch steward rate")
	}
	stewardPool := types.DecFromAmount(totalSupply).CheckedMul(stewardRate)
	for _, steward := range stewards {
		for recipient, share := range steward.RewardDistribution {
			reward := rewardAmount(stewardPool, share)
			err := wl.WithBatch(func(batch *storage.WriteLog) error {
				return token.Credit(batch, nativeToken, recipient, reward)
			})
			if err != nil {
				logging.Logger.Warn("failed to mint steward reward",
					zap.String("steward", steward.Address.String()),
					zap.String("recipient", recipient.String()),
					zap.String("amount", reward.String()),
					zap.Error(err))
				continue
			}
			logging.Logger.Info("minted steward reward",
				zap.String("steward", steward.Address.String()),
				zap.String("recipient", recipient.String()),
				zap.String("amount", reward.String()))
		}
	}
	return nil
}

// perEpochShare converts an annualized rate into this epoch's slice of the
// total supply.
func perEpochShare(annualRate types.Dec, epochsPerYear uint64, totalSupply types.Amount) (types.Amount, error) {
	perEpochRate, err := annualRate.DivUint64(epochsPerYear)
	if err != nil {
		return types.Amount{}, err
	}
	share, err := types.DecFromAmount(totalSupply).Mul(perEpochRate)
	if err != nil {
		return types.Amount{}, err
	}
	return share.ToAmount()
}

// rewardAmount is a steward recipient's cut of the pool. A share that cannot
// be represented pays out zero rather than failing.
func rewardAmount(pool, share types.Dec) types.Amount {
	amount, err := pool.CheckedMul(share).ToAmount()
	if err != nil {
		return types.Amount{}
	}
	return amount
}
