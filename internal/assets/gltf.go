package assets

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"portfolio3d/internal/engine"
)

const defaultRootName = "Scene"

var identity16 = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

type builder struct {
	doc       *gltf.Document
	dir       string
	materials map[int]*engine.Material
	images    map[int]*engine.Image
	visiting  map[int]bool
}

// BuildHierarchy converts the document's default scene into a node tree under a
// synthetic root. dir resolves relative image URIs; it may be empty.
func BuildHierarchy(doc *gltf.Document, dir string) (*engine.Node, error) {
	b := &builder{
		doc:       doc,
		dir:       dir,
		materials: make(map[int]*engine.Material),
		images:    make(map[int]*engine.Image),
		visiting:  make(map[int]bool),
	}

	name, roots, err := b.sceneRoots()
	if err != nil {
		return nil, err
	}

	root := engine.NewNode(name)
	for _, idx := range roots {
		child, err := b.node(idx)
		if err != nil {
			return nil, err
		}
		root.AddChild(child)
	}
	return root, nil
}

func (b *builder) sceneRoots() (string, []int, error) {
	if len(b.doc.Scenes) == 0 {
		return defaultRootName, b.parentless(), nil
	}
	idx := 0
	if b.doc.Scene != nil {
		idx = *b.doc.Scene
	}
	if idx < 0 || idx >= len(b.doc.Scenes) {
		return "", nil, invalidf("scene index %d out of range", idx)
	}
	scene := b.doc.Scenes[idx]
	name := scene.Name
	if name == "" {
		name = defaultRootName
	}
	return name, scene.Nodes, nil
}

// parentless lists nodes nobody references as a child, for scene-less documents.
func (b *builder) parentless() []int {
	referenced := make(map[int]bool)
	for _, n := range b.doc.Nodes {
		for _, c := range n.Children {
			referenced[c] = true
		}
	}
	var roots []int
	for i := range b.doc.Nodes {
		if !referenced[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func (b *builder) node(idx int) (*engine.Node, error) {
	if idx < 0 || idx >= len(b.doc.Nodes) {
		return nil, invalidf("node index %d out of range", idx)
	}
	if b.visiting[idx] {
		return nil, invalidf("node %d is its own ancestor", idx)
	}
	b.visiting[idx] = true
	defer delete(b.visiting, idx)

	src := b.doc.Nodes[idx]
	n := engine.NewNode(src.Name)
	n.Transform = transformOf(src)

	if src.Mesh != nil {
		meshes, err := b.meshes(*src.Mesh)
		if err != nil {
			return nil, err
		}
		switch len(meshes) {
		case 0:
		case 1:
			n.Mesh = meshes[0]
		default:
			// One child per primitive, the way three.js GLTFLoader groups them.
			base := meshes[0].Name
			if base == "" {
				base = src.Name
			}
			for i, m := range meshes {
				n.AddChild(engine.NewMeshNode(fmt.Sprintf("%s_%d", base, i), m))
			}
		}
	}

	for _, c := range src.Children {
		child, err := b.node(c)
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}

func transformOf(src *gltf.Node) engine.Transform {
	t := engine.IdentityTransform()
	if m := src.MatrixOrDefault(); m != identity16 {
		mat := rl.Matrix{
			M0: float32(m[0]), M1: float32(m[1]), M2: float32(m[2]), M3: float32(m[3]),
			M4: float32(m[4]), M5: float32(m[5]), M6: float32(m[6]), M7: float32(m[7]),
			M8: float32(m[8]), M9: float32(m[9]), M10: float32(m[10]), M11: float32(m[11]),
			M12: float32(m[12]), M13: float32(m[13]), M14: float32(m[14]), M15: float32(m[15]),
		}
		t.Matrix = &mat
		return t
	}
	tr := src.TranslationOrDefault()
	r := src.RotationOrDefault()
	s := src.ScaleOrDefault()
	t.Position = rl.Vector3{X: float32(tr[0]), Y: float32(tr[1]), Z: float32(tr[2])}
	t.Rotation = rl.Quaternion{X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3])}
	t.Scale = rl.Vector3{X: float32(s[0]), Y: float32(s[1]), Z: float32(s[2])}
	return t
}

func (b *builder) meshes(idx int) ([]*engine.Mesh, error) {
	if idx < 0 || idx >= len(b.doc.Meshes) {
		return nil, invalidf("mesh index %d out of range", idx)
	}
	src := b.doc.Meshes[idx]
	result := make([]*engine.Mesh, 0, len(src.Primitives))
	for i, prim := range src.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			slog.Warn("skipping non-triangle primitive", "mesh", src.Name, "primitive", i, "mode", prim.Mode)
			continue
		}
		m, err := b.primitive(prim)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: %w", src.Name, i, err)
		}
		m.Name = src.Name
		result = append(result, m)
	}
	return result, nil
}

func (b *builder) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(b.doc.Accessors) {
		return nil, invalidf("accessor index %d out of range", idx)
	}
	return b.doc.Accessors[idx], nil
}

func (b *builder) primitive(prim *gltf.Primitive) (*engine.Mesh, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, invalidf("primitive has no POSITION attribute")
	}
	acr, err := b.accessor(posIdx)
	if err != nil {
		return nil, err
	}
	positions, err := modeler.ReadPosition(b.doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: positions: %w", ErrInvalidAsset, err)
	}

	m := &engine.Mesh{
		Positions: make([]rl.Vector3, len(positions)),
		Material:  b.material(prim.Material),
	}
	for i, p := range positions {
		m.Positions[i] = rl.Vector3{X: p[0], Y: p[1], Z: p[2]}
	}

	if prim.Indices != nil {
		acr, err := b.accessor(*prim.Indices)
		if err != nil {
			return nil, err
		}
		if m.Indices, err = modeler.ReadIndices(b.doc, acr, nil); err != nil {
			return nil, fmt.Errorf("%w: indices: %w", ErrInvalidAsset, err)
		}
	} else {
		m.Indices = make([]uint32, len(positions))
		for i := range m.Indices {
			m.Indices[i] = uint32(i)
		}
	}
	m.Indices = m.Indices[:len(m.Indices)/3*3]
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Positions) {
			return nil, invalidf("index %d out of range for %d vertices", idx, len(m.Positions))
		}
	}

	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if acr, err := b.accessor(idx); err == nil {
			if normals, err := modeler.ReadNormal(b.doc, acr, nil); err == nil && len(normals) == len(positions) {
				m.Normals = make([]rl.Vector3, len(normals))
				for i, n := range normals {
					m.Normals[i] = rl.Vector3{X: n[0], Y: n[1], Z: n[2]}
				}
			}
		}
	}
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if acr, err := b.accessor(idx); err == nil {
			if uvs, err := modeler.ReadTextureCoord(b.doc, acr, nil); err == nil && len(uvs) == len(positions) {
				m.TexCoords = make([]rl.Vector2, len(uvs))
				for i, uv := range uvs {
					m.TexCoords[i] = rl.Vector2{X: uv[0], Y: uv[1]}
				}
			}
		}
	}
	return m, nil
}

func (b *builder) material(idx *int) *engine.Material {
	if idx == nil || *idx < 0 || *idx >= len(b.doc.Materials) {
		return engine.DefaultMaterial()
	}
	if m, ok := b.materials[*idx]; ok {
		return m
	}

	src := b.doc.Materials[*idx]
	mat := &engine.Material{
		Name:        src.Name,
		BaseColor:   rl.White,
		DoubleSided: src.DoubleSided,
	}
	if pbr := src.PBRMetallicRoughness; pbr != nil {
		if f := pbr.BaseColorFactor; f != nil {
			mat.BaseColor = rl.NewColor(unitToByte(f[0]), unitToByte(f[1]), unitToByte(f[2]), unitToByte(f[3]))
		}
		if tex := pbr.BaseColorTexture; tex != nil {
			mat.Texture = b.texture(tex.Index)
		}
	}
	b.materials[*idx] = mat
	return mat
}

func unitToByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// texture resolves a texture's image bytes. Failures are logged and leave the
// material untextured.
func (b *builder) texture(idx int) *engine.Image {
	if idx < 0 || idx >= len(b.doc.Textures) || b.doc.Textures[idx].Source == nil {
		return nil
	}
	src := *b.doc.Textures[idx].Source
	if img, ok := b.images[src]; ok {
		return img
	}
	if src < 0 || src >= len(b.doc.Images) {
		return nil
	}

	gimg := b.doc.Images[src]
	data, err := b.imageData(gimg)
	if err != nil {
		slog.Warn("skipping texture", "image", gimg.Name, "error", err)
		return nil
	}
	img := &engine.Image{Name: gimg.Name, MimeType: gimg.MimeType, Data: data}
	if img.MimeType == "" && strings.HasSuffix(strings.ToLower(gimg.URI), ".jpg") {
		img.MimeType = "image/jpeg"
	}
	b.images[src] = img
	return img
}

func (b *builder) imageData(img *gltf.Image) ([]byte, error) {
	if img.BufferView != nil {
		bvIdx := *img.BufferView
		if bvIdx < 0 || bvIdx >= len(b.doc.BufferViews) {
			return nil, invalidf("buffer view %d out of range", bvIdx)
		}
		bv := b.doc.BufferViews[bvIdx]
		if bv.Buffer < 0 || bv.Buffer >= len(b.doc.Buffers) {
			return nil, invalidf("buffer %d out of range", bv.Buffer)
		}
		data := b.doc.Buffers[bv.Buffer].Data
		end := bv.ByteOffset + bv.ByteLength
		if bv.ByteOffset < 0 || end > len(data) {
			return nil, invalidf("buffer view %d exceeds buffer", bvIdx)
		}
		return data[bv.ByteOffset:end], nil
	}

	uri := img.URI
	if uri == "" {
		return nil, invalidf("image has neither buffer view nor uri")
	}
	if strings.HasPrefix(uri, "data:") {
		comma := strings.IndexByte(uri, ',')
		if comma < 0 || !strings.Contains(uri[:comma], ";base64") {
			return nil, invalidf("unsupported data uri")
		}
		return base64.StdEncoding.DecodeString(uri[comma+1:])
	}
	return os.ReadFile(filepath.Join(b.dir, filepath.FromSlash(uri)))
}
