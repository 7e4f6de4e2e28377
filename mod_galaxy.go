package spiral

import (
	"github.com/gekko3d/spiral/galaxy"
)

// GalaxyModule generates the initial galaxy and owns regeneration.
// G regenerates with the next seed, F1 toggles debug logging, Escape or
// closing the window quits. With ConfigPath set, saving the file regenerates.
type GalaxyModule struct {
	Config     galaxy.Config
	Seed       uint64
	ConfigPath string
}

type regenerateRequest struct {
	config galaxy.Config
	seed   uint64
}

// GalaxyState holds the snapshot currently on screen.
// Requests are applied between the camera update and the draw, never mid-frame.
type GalaxyState struct {
	current *galaxy.Snapshot
	pending *regenerateRequest
}

func NewGalaxyState(cfg galaxy.Config, seed uint64) *GalaxyState {
	return &GalaxyState{
		current: galaxy.NewSnapshot(cfg, seed, 1),
	}
}

func (s *GalaxyState) Current() *galaxy.Snapshot {
	return s.current
}

// Regenerate requests a new galaxy with cfg, keeping the current seed.
func (s *GalaxyState) Regenerate(cfg galaxy.Config) {
	s.RegenerateWithSeed(cfg, s.current.Seed)
}

// RegenerateWithSeed requests a new galaxy. A later request replaces an earlier one.
func (s *GalaxyState) RegenerateWithSeed(cfg galaxy.Config, seed uint64) {
	s.pending = &regenerateRequest{config: cfg, seed: seed}
}

func (s *GalaxyState) Pending() bool {
	return s.pending != nil
}

// apply runs a pending request and swaps the snapshot in one assignment.
func (s *GalaxyState) apply(logger Logger) bool {
	if s.pending == nil {
		return false
	}
	req := s.pending
	s.pending = nil

	if err := req.config.Validate(); err != nil {
		logger.Warnf("Galaxy config invalid, generating empty galaxy: %v", err)
	}
	next := galaxy.NewSnapshot(req.config, req.seed, s.current.Version+1)
	s.current = next
	logSnapshot(logger, next)
	return true
}

func logSnapshot(logger Logger, snap *galaxy.Snapshot) {
	logger.Infof("Galaxy v%d: %d stars, seed %d, radius %.0f, generated in %v",
		snap.Version, snap.Count(), snap.Seed, snap.Radius, snap.Elapsed)
	logger.Debugf("Galaxy v%d config: %s", snap.Version, snap.Config)
}

func (m GalaxyModule) Install(app *App, cmd *Commands) {
	if err := m.Config.Validate(); err != nil {
		cmd.Logger().Warnf("Galaxy config invalid, generating empty galaxy: %v", err)
	}
	state := NewGalaxyState(m.Config, m.Seed)
	logSnapshot(cmd.Logger(), state.current)
	cmd.AddResources(state)

	if m.ConfigPath != "" {
		watcher, err := NewConfigWatcher(m.ConfigPath, cmd.Logger())
		if err != nil {
			cmd.Logger().Warnf("Config hot reload disabled: %v", err)
		} else {
			cmd.AddResources(watcher)
			app.UseSystem(
				System(configReloadSystem).
					InStage(PreUpdate).
					RunAlways(),
			)
		}
	}

	app.UseSystem(
		System(galaxyInputSystem).
			InStage(Update).
			RunAlways(),
	)
	app.UseSystem(
		System(galaxyRegenerateSystem).
			InStage(PostUpdate).
			RunAlways(),
	)
}

func configReloadSystem(watcher *ConfigWatcher, state *GalaxyState) {
	if cfg, ok := watcher.Poll(); ok {
		state.RegenerateWithSeed(cfg.Galaxy.Generator(), cfg.Galaxy.Seed)
	}
}

func galaxyInputSystem(input *Input, state *GalaxyState, cmd *Commands) {
	if input.JustPressed[KeyEscape] || input.CloseRequested {
		cmd.Logger().Infof("Quit requested")
		cmd.Quit()
		return
	}

	if input.JustPressed[KeyF1] {
		logger := cmd.Logger()
		logger.SetDebug(!logger.DebugEnabled())
		logger.Infof("Debug logging: %v", logger.DebugEnabled())
	}

	if input.JustPressed[KeyG] {
		snap := state.Current()
		state.RegenerateWithSeed(snap.Config, snap.Seed+1)
	}
}

func galaxyRegenerateSystem(state *GalaxyState, cmd *Commands) {
	state.apply(cmd.Logger())
}
