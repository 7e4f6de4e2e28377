package spiral

type Commands struct {
	app *App
}

func (cmd *Commands) ChangeState(newState State) *Commands {
	cmd.app.changeState(newState)
	return cmd
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) UseSystem(system systemScheduleBuilder) *Commands {
	cmd.app.UseSystem(system)
	return cmd
}

// Quit stops the App after the current frame completes.
func (cmd *Commands) Quit() {
	cmd.app.quitPending = true
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
