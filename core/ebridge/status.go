package ebridge

// Status records whether the bridge is live and since when.
type Status struct {
	Enabled bool `json:"enabled"`
	// EnabledAtEpoch is set when the bridge came on line via governance
	// rather than at genesis.
	EnabledAtEpoch *uint64 `json:"enabled_at_epoch,omitempty"`
}

func StatusDisabled() Status {
	return Status{}
}

func StatusEnabledAtGenesis() Status {
	return Status{Enabled: true}
}

func StatusEnabledAtEpoch(epoch uint64) Status {
	return Status{Enabled: true, EnabledAtEpoch: &epoch}
}

// Active reports whether bridged-chain events may be acted on.
func (s Status) Active() bool {
	return s.Enabled
}
