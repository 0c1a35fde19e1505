package assets

import (
	"log/slog"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio3d/internal/engine"
)

// Manager owns the GPU copies of loaded meshes and textures. Every method must
// run on the thread that owns the raylib context.
type Manager struct {
	models   map[*engine.Node]rl.Model
	textures map[*engine.Image]rl.Texture2D
	shader   rl.Shader
}

func NewManager() *Manager {
	return &Manager{
		models:   make(map[*engine.Node]rl.Model),
		textures: make(map[*engine.Image]rl.Texture2D),
	}
}

// SetShader is applied to models uploaded afterwards and to those already cached.
func (m *Manager) SetShader(shader rl.Shader) {
	m.shader = shader
	for _, model := range m.models {
		model.Materials.Shader = shader
	}
}

// Upload creates a GPU model for every mesh node under root that is not cached yet.
func (m *Manager) Upload(root *engine.Node) int {
	uploaded := 0
	root.Walk(func(n *engine.Node) bool {
		if !n.IsMesh() {
			return true
		}
		if _, exists := m.models[n]; exists {
			return true
		}
		m.models[n] = m.loadModel(n.Mesh)
		uploaded++
		return true
	})
	slog.Debug("meshes uploaded", "count", uploaded, "textures", len(m.textures))
	return uploaded
}

// Model returns the cached GPU model for a mesh node.
func (m *Manager) Model(n *engine.Node) (rl.Model, bool) {
	model, ok := m.models[n]
	return model, ok
}

func (m *Manager) loadModel(src *engine.Mesh) rl.Model {
	mesh := uploadMesh(src)
	model := rl.LoadModelFromMesh(mesh)
	if m.shader.ID > 0 {
		model.Materials.Shader = m.shader
	}

	mat := src.Material
	if mat == nil {
		mat = engine.DefaultMaterial()
	}
	model.Materials.Maps.Color = mat.BaseColor
	if mat.Texture != nil {
		if tex, ok := m.loadTexture(mat.Texture); ok {
			rl.SetMaterialTexture(model.Materials, rl.MapDiffuse, tex)
		}
	}
	return model
}

func (m *Manager) loadTexture(img *engine.Image) (rl.Texture2D, bool) {
	if tex, exists := m.textures[img]; exists {
		return tex, tex.ID > 0
	}

	image := rl.LoadImageFromMemory(img.FileType(), img.Data, int32(len(img.Data)))
	tex := rl.LoadTextureFromImage(image)
	rl.UnloadImage(image)
	if tex.ID > 0 {
		rl.GenTextureMipmaps(&tex)
		rl.SetTextureFilter(tex, rl.FilterTrilinear)
	} else {
		slog.Warn("failed to decode texture", "image", img.Name, "mime", img.MimeType)
	}
	m.textures[img] = tex
	return tex, tex.ID > 0
}

// flatten expands the indexed mesh into a plain triangle list. Meshes without
// per-vertex normals get the face normal on all three corners.
func flatten(src *engine.Mesh) (verts, normals, uvs []float32) {
	tris := src.TriangleCount()
	verts = make([]float32, 0, tris*9)
	normals = make([]float32, 0, tris*9)
	uvs = make([]float32, 0, tris*6)
	smooth := len(src.Normals) == len(src.Positions)
	textured := len(src.TexCoords) == len(src.Positions)

	for i, idx := range src.Indices[:tris*3] {
		p := src.Positions[idx]
		verts = append(verts, p.X, p.Y, p.Z)

		var n rl.Vector3
		if smooth {
			n = src.Normals[idx]
		} else {
			n = src.FaceNormal(i / 3)
		}
		normals = append(normals, n.X, n.Y, n.Z)

		if textured {
			uv := src.TexCoords[idx]
			uvs = append(uvs, uv.X, uv.Y)
		} else {
			uvs = append(uvs, 0, 0)
		}
	}
	return verts, normals, uvs
}

// uploadMesh sends the flattened mesh to the GPU (raylib indices are 16-bit).
// The CPU-side pointers are cleared after upload so raylib never frees Go memory.
func uploadMesh(src *engine.Mesh) rl.Mesh {
	tris := src.TriangleCount()
	verts, normals, uvs := flatten(src)

	mesh := rl.Mesh{
		VertexCount:   int32(tris * 3),
		TriangleCount: int32(tris),
	}

	var pinner runtime.Pinner
	defer pinner.Unpin()
	pinner.Pin(&verts[0])
	pinner.Pin(&normals[0])
	pinner.Pin(&uvs[0])

	mesh.Vertices = &verts[0]
	mesh.Normals = &normals[0]
	mesh.Texcoords = &uvs[0]
	rl.UploadMesh(&mesh, false)

	mesh.Vertices = nil
	mesh.Normals = nil
	mesh.Texcoords = nil
	return mesh
}

func (m *Manager) Unload() {
	for _, model := range m.models {
		rl.UnloadModel(model)
	}
	for _, tex := range m.textures {
		if tex.ID > 0 {
			rl.UnloadTexture(tex)
		}
	}
	m.models = make(map[*engine.Node]rl.Model)
	m.textures = make(map[*engine.Image]rl.Texture2D)
}
