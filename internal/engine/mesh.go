package engine

import rl "github.com/gen2brain/raylib-go/raylib"

// Image is an encoded texture image kept in memory until it is uploaded.
type Image struct {
	Name     string
	MimeType string
	Data     []byte
}

// FileType maps the MIME type to the extension raylib expects when decoding.
func (i *Image) FileType() string {
	switch i.MimeType {
	case "image/jpeg":
		return ".jpg"
	default:
		return ".png"
	}
}

type Material struct {
	Name        string
	BaseColor   rl.Color
	Texture     *Image
	DoubleSided bool
}

func DefaultMaterial() *Material {
	return &Material{Name: "default", BaseColor: rl.White}
}

// Mesh is an indexed triangle list in the owning node's local space.
type Mesh struct {
	Name      string
	Positions []rl.Vector3
	Normals   []rl.Vector3
	TexCoords []rl.Vector2
	Indices   []uint32
	Material  *Material
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the three local-space corners of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c rl.Vector3) {
	return m.Positions[m.Indices[i*3]], m.Positions[m.Indices[i*3+1]], m.Positions[m.Indices[i*3+2]]
}

// FaceNormal is the unit normal of triangle i, wound counter-clockwise.
func (m *Mesh) FaceNormal(i int) rl.Vector3 {
	a, b, c := m.Triangle(i)
	return rl.Vector3Normalize(rl.Vector3CrossProduct(rl.Vector3Subtract(b, a), rl.Vector3Subtract(c, a)))
}
