package descriptioncmd

// FeatureGates exposes runtime toggles read by description handlers. Callers
// supply closures over Config.Features.Commands so handlers stay decoupled
// from configuration.
type FeatureGates struct {
	CommandsEnabled func() bool
}

func (g FeatureGates) commandsEnabled() bool {
	if g.CommandsEnabled == nil {
		return true
	}
	return g.CommandsEnabled()
}
