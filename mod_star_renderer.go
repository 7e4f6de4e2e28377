package spiral

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/spiral/core"
	"github.com/gekko3d/spiral/galaxy"
	"github.com/gekko3d/spiral/shaders"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// StarRendererModule draws the current galaxy snapshot as instanced sprites.
// An empty SpritePath, or one that fails to load, uses the procedural flare.
type StarRendererModule struct {
	SpritePath string
	SpriteSize int
}

type starRenderState struct {
	gpu *GpuState

	pipeline     *wgpu.RenderPipeline
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	cameraBuffer *wgpu.Buffer
	spriteView   *wgpu.TextureView
	sampler      *wgpu.Sampler
	bindGroup    *wgpu.BindGroup

	instanceBuffer *wgpu.Buffer
	instanceCount  uint32
	snapshotID     uuid.UUID
}

func (mod StarRendererModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, string(RendererStars))
	ensureWindowResource(app, 0, 0, "")
	windowState, _ := Resource[WindowState](app)

	assets, ok := Resource[AssetServer](app)
	if !ok {
		assets = NewAssetServer()
		cmd.AddResources(assets)
	}
	sprite := mod.loadSprite(assets, cmd.Logger())
	spriteAsset, _ := assets.Texture(sprite)

	gpuState := createGpuState(windowState)

	pipeline := createRenderPipeline("Stars", shaders.StarsWGSL, gpuState,
		createVertexBufferLayout(quadVertex{}, wgpu.VertexStepModeVertex),
		createVertexBufferLayout(starInstance{}, wgpu.VertexStepModeInstance),
	)
	vertexBuffer, indexBuffer := createVertexIndexBuffers(starQuadVertices, starQuadIndices, gpuState.device)
	cameraBuffer := createBuffer("Camera Uniform", cameraUniform{ViewProjMx: mgl32.Ident4()}, gpuState,
		wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
	spriteView := createTextureFromAsset(spriteAsset, gpuState)
	sampler := createSampler(gpuState)

	layout := pipeline.GetBindGroupLayout(0)
	defer layout.Release()
	bindGroup, err := gpuState.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: cameraBuffer, Size: wgpu.WholeSize},
			{Binding: 1, TextureView: spriteView},
			{Binding: 2, Sampler: sampler},
		},
	})
	if err != nil {
		panic(err)
	}

	cmd.AddResources(gpuState, &starRenderState{
		gpu:          gpuState,
		pipeline:     pipeline,
		vertexBuffer: vertexBuffer,
		indexBuffer:  indexBuffer,
		cameraBuffer: cameraBuffer,
		spriteView:   spriteView,
		sampler:      sampler,
		bindGroup:    bindGroup,
	})
	cmd.Logger().Infof("Star renderer ready (surface %v, sprite %dpx)", gpuState.surfaceConfig.Format, spriteAsset.width)

	app.UseSystem(
		System(starRenderSystem).
			InStage(Render).
			RunAlways(),
	)
}

func (mod StarRendererModule) loadSprite(assets *AssetServer, logger Logger) AssetId {
	size := mod.SpriteSize
	if size <= 0 {
		size = 64
	}
	if mod.SpritePath != "" {
		id, err := assets.LoadSprite(mod.SpritePath, size)
		if err == nil {
			return id
		}
		logger.Warnf("Star sprite unavailable, using flare: %v", err)
	}
	return assets.FlareSprite(size)
}

func starRenderSystem(state *starRenderState, gpuState *GpuState, windowState *WindowState, galaxyState *GalaxyState, cam *core.Camera2d, cmd *Commands) {
	state.syncInstances(galaxyState.Current(), cmd.Logger())

	if !gpuState.resize(windowState.WindowWidth, windowState.WindowHeight) {
		return
	}

	err := gpuState.queue.WriteBuffer(state.cameraBuffer, 0, toBufferBytes(cameraUniform{ViewProjMx: cam.ViewProjection()}))
	if err != nil {
		panic(err)
	}

	state.draw(cmd.Logger())
}

// stale reports whether snap differs from the uploaded instance buffer.
func (state *starRenderState) stale(snap *galaxy.Snapshot) bool {
	return snap != nil && snap.ID != state.snapshotID
}

// syncInstances replaces the instance buffer wholesale when the snapshot changed.
func (state *starRenderState) syncInstances(snap *galaxy.Snapshot, logger Logger) {
	if !state.stale(snap) {
		return
	}
	if state.instanceBuffer != nil {
		state.instanceBuffer.Release()
		state.instanceBuffer = nil
	}
	state.instanceBuffer = createInstanceBuffer(snap.Instances, state.gpu.device)
	state.instanceCount = uint32(snap.Count())
	state.snapshotID = snap.ID
	logger.Debugf("Uploaded %d star instances (snapshot v%d)", state.instanceCount, snap.Version)
}

func (state *starRenderState) draw(logger Logger) {
	gpuState := state.gpu

	nextTexture, err := gpuState.surface.GetCurrentTexture()
	if err != nil {
		logger.Warnf("GetCurrentTexture failed: %v", err)
		return
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}
	defer view.Release()

	encoder, err := gpuState.device.CreateCommandEncoder(nil)
	if err != nil {
		panic(err)
	}
	defer encoder.Release()

	renderPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1.0},
			},
		},
	})
	defer renderPass.Release()

	if state.instanceBuffer != nil && state.instanceCount > 0 {
		renderPass.SetPipeline(state.pipeline)
		renderPass.SetBindGroup(0, state.bindGroup, nil)
		renderPass.SetVertexBuffer(0, state.vertexBuffer, 0, wgpu.WholeSize)
		renderPass.SetVertexBuffer(1, state.instanceBuffer, 0, wgpu.WholeSize)
		renderPass.SetIndexBuffer(state.indexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
		renderPass.DrawIndexed(uint32(len(starQuadIndices)), state.instanceCount, 0, 0, 0)
	}

	err = renderPass.End()
	if err != nil {
		panic(err)
	}

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		panic(err)
	}
	defer cmdBuffer.Release()

	gpuState.queue.Submit(cmdBuffer)
	gpuState.surface.Present()
}

func (state *starRenderState) release() {
	if state.instanceBuffer != nil {
		state.instanceBuffer.Release()
		state.instanceBuffer = nil
	}
	state.bindGroup.Release()
	state.sampler.Release()
	state.spriteView.Release()
	state.cameraBuffer.Release()
	state.indexBuffer.Release()
	state.vertexBuffer.Release()
	state.pipeline.Release()
	state.gpu.destroy()
}
