package spiral

// RendererName identifies a concrete renderer module.
type RendererName string

const (
	RendererStars RendererName = "stars"
)

// UseRenderer installs exactly one renderer module on a shared window
// created with default size if missing.
func (app *App) UseRenderer(name RendererName, mod Module) *App {
	return app.UseRendererWithWindow(name, mod, 0, 0, "")
}

func (app *App) UseRendererWithWindow(name RendererName, mod Module, width, height int, title string) *App {
	ensureSingleRenderer(app, string(name))
	ensureWindowResource(app, width, height, title)
	app.Logger().Infof("Renderer selected: %s", name)
	app.UseModules(mod)
	return app
}

// UseStars selects the instanced star renderer.
func (app *App) UseStars(width, height int, title string, sprite SpriteConfig) *App {
	return app.UseRendererWithWindow(RendererStars, StarRendererModule{
		SpritePath: sprite.Path,
		SpriteSize: sprite.Size,
	}, width, height, title)
}
