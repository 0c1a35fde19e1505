package world

import (
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio3d/internal/assets"
	"portfolio3d/internal/config"
	"portfolio3d/internal/engine"
)

const shadowTextureSlot = int32(10)

// RenderStats counts what the last color pass drew.
type RenderStats struct {
	Drawn  int
	Culled int
}

type shaderLocs struct {
	lightDir      int32
	lightColor    int32
	ambient       int32
	viewPos       int32
	matLightVP    int32
	shadowMap     int32
	shadowMapSize int32
	shadowBias    int32
	receiveShadow int32
	exposure      int32
}

type Renderer struct {
	Shader     rl.Shader
	ShadowMap  rl.RenderTexture2D
	Light      *DirectionalLight
	MatLightVP rl.Matrix
	Background rl.Color
	Stats      RenderStats

	cfg    config.Lighting
	locs   shaderLocs
	bounds map[*engine.Node]rl.BoundingBox
}

func NewRenderer(cfg config.Lighting) *Renderer {
	return &Renderer{
		cfg:        cfg,
		Light:      NewDirectionalLight(cfg),
		Background: rgb(cfg.Background),
		bounds:     make(map[*engine.Node]rl.BoundingBox),
	}
}

// Initialize needs a live GL context.
func (r *Renderer) Initialize(shaderDir string) {
	r.Shader = rl.LoadShader(
		filepath.Join(shaderDir, "lighting.vs"),
		filepath.Join(shaderDir, "lighting.fs"),
	)

	r.locs = shaderLocs{
		lightDir:      rl.GetShaderLocation(r.Shader, "lightDir"),
		lightColor:    rl.GetShaderLocation(r.Shader, "lightColor"),
		ambient:       rl.GetShaderLocation(r.Shader, "ambient"),
		viewPos:       rl.GetShaderLocation(r.Shader, "viewPos"),
		matLightVP:    rl.GetShaderLocation(r.Shader, "matLightVP"),
		shadowMap:     rl.GetShaderLocation(r.Shader, "shadowMap"),
		shadowMapSize: rl.GetShaderLocation(r.Shader, "shadowMapSize"),
		shadowBias:    rl.GetShaderLocation(r.Shader, "shadowBias"),
		receiveShadow: rl.GetShaderLocation(r.Shader, "receiveShadow"),
		exposure:      rl.GetShaderLocation(r.Shader, "exposure"),
	}

	r.ShadowMap = loadShadowmapRenderTexture(r.cfg.ShadowMapSize, r.cfg.ShadowMapSize)
	r.updateShaderUniforms()
}

func (r *Renderer) updateShaderUniforms() {
	dir := r.Light.Direction()
	rl.SetShaderValue(r.Shader, r.locs.lightDir, []float32{dir.X, dir.Y, dir.Z}, rl.ShaderUniformVec3)
	rl.SetShaderValue(r.Shader, r.locs.lightColor, r.Light.ColorFloat(), rl.ShaderUniformVec4)
	rl.SetShaderValue(r.Shader, r.locs.ambient, r.Light.AmbientFloat(), rl.ShaderUniformVec4)
	rl.SetShaderValue(r.Shader, r.locs.shadowMapSize, []float32{float32(r.cfg.ShadowMapSize)}, rl.ShaderUniformFloat)
	rl.SetShaderValue(r.Shader, r.locs.shadowBias, []float32{r.cfg.ShadowBias}, rl.ShaderUniformFloat)
	rl.SetShaderValue(r.Shader, r.locs.exposure, []float32{r.cfg.Exposure}, rl.ShaderUniformFloat)
}

// DrawShadowMap renders shadow casters into the depth map from the light.
func (r *Renderer) DrawShadowMap(meshes []*engine.Node, models *assets.Manager) {
	rl.BeginTextureMode(r.ShadowMap)
	rl.ClearBackground(rl.White)

	rl.BeginMode3D(r.Light.Camera(r.cfg.ShadowExtent))

	e := r.cfg.ShadowExtent
	rl.SetMatrixProjection(rl.MatrixOrtho(-e, e, -e, e, r.cfg.ShadowNear, r.cfg.ShadowFar))

	lightView := rl.GetMatrixModelview()
	lightProj := rl.GetMatrixProjection()

	rl.DisableBackfaceCulling()
	for _, n := range meshes {
		if !n.CastShadow {
			continue
		}
		r.drawNode(n, models)
	}
	rl.EnableBackfaceCulling()

	rl.EndMode3D()
	rl.EndTextureMode()

	rl.Viewport(0, 0, int32(rl.GetRenderWidth()), int32(rl.GetRenderHeight()))

	r.MatLightVP = rl.MatrixMultiply(lightView, lightProj)
}

// DrawWithShadows is the color pass; call it between BeginMode3D and EndMode3D.
func (r *Renderer) DrawWithShadows(viewPos rl.Vector3, frustum Frustum, meshes []*engine.Node, models *assets.Manager) {
	rl.SetShaderValue(r.Shader, r.locs.viewPos, []float32{viewPos.X, viewPos.Y, viewPos.Z}, rl.ShaderUniformVec3)
	rl.SetShaderValueMatrix(r.Shader, r.locs.matLightVP, r.MatLightVP)

	rl.EnableShader(r.Shader.ID)
	rl.ActiveTextureSlot(shadowTextureSlot)
	rl.EnableTexture(r.ShadowMap.Depth.ID)
	rl.SetUniform(r.locs.shadowMap, []int32{shadowTextureSlot}, int32(rl.ShaderUniformInt), 1)

	r.Stats = RenderStats{}
	for _, n := range meshes {
		if !frustum.ContainsBox(r.nodeBounds(n)) {
			r.Stats.Culled++
			continue
		}

		receive := float32(0)
		if n.ReceiveShadow {
			receive = 1
		}
		rl.SetShaderValue(r.Shader, r.locs.receiveShadow, []float32{receive}, rl.ShaderUniformFloat)

		doubleSided := n.Mesh.Material != nil && n.Mesh.Material.DoubleSided
		if doubleSided {
			rl.DisableBackfaceCulling()
		}
		r.drawNode(n, models)
		if doubleSided {
			rl.EnableBackfaceCulling()
		}
		r.Stats.Drawn++
	}
}

func (r *Renderer) drawNode(n *engine.Node, models *assets.Manager) {
	model, ok := models.Model(n)
	if !ok {
		return
	}
	model.Transform = n.WorldMatrix()
	rl.DrawModel(model, rl.Vector3Zero(), 1.0, rl.White)
}

// nodeBounds caches world bounds; the model does not move once placed.
func (r *Renderer) nodeBounds(n *engine.Node) rl.BoundingBox {
	if box, ok := r.bounds[n]; ok {
		return box
	}
	box, _ := engine.Bounds(n)
	r.bounds[n] = box
	return box
}

func (r *Renderer) Unload() {
	rl.UnloadShader(r.Shader)
	rl.UnloadRenderTexture(r.ShadowMap)
	r.bounds = make(map[*engine.Node]rl.BoundingBox)
}

// loadShadowmapRenderTexture creates a framebuffer with only a depth attachment.
func loadShadowmapRenderTexture(width, height int32) rl.RenderTexture2D {
	target := rl.RenderTexture2D{}

	target.ID = rl.LoadFramebuffer()
	target.Texture.Width = width
	target.Texture.Height = height

	if target.ID > 0 {
		rl.EnableFramebuffer(target.ID)

		target.Depth.ID = rl.LoadTextureDepth(width, height, false)
		target.Depth.Width = width
		target.Depth.Height = height
		target.Depth.Format = 19
		target.Depth.Mipmaps = 1

		rl.FramebufferAttach(target.ID, target.Depth.ID, rl.AttachmentDepth, rl.AttachmentTexture2d, 0)

		rl.DisableFramebuffer()
	}

	return target
}
