package scene

import "fmt"

// PrimitiveKind identifies a canonical shared mesh. Branches instance the
// cylinder, leaves the sphere; rocks reuse the cube.
type PrimitiveKind string

const (
	PrimitiveCube     PrimitiveKind = "cube"
	PrimitiveSphere   PrimitiveKind = "sphere"
	PrimitiveCylinder PrimitiveKind = "cylinder"
	PrimitiveCone     PrimitiveKind = "cone"
)

// PrimitiveSource produces the interleaved vertex data for a primitive at
// the requested tessellation. Implementations live at the renderer boundary.
type PrimitiveSource interface {
	Primitive(kind PrimitiveKind, param1, param2 int) ([]float32, error)
}

type primitiveKey struct {
	kind   PrimitiveKind
	p1, p2 int
}

// MeshCache memoizes primitive lookups. Instancing depends on one key
// always resolving to the same buffer, so hits return the cached slice.
type MeshCache struct {
	source PrimitiveSource
	meshes map[primitiveKey][]float32
}

// NewMeshCache wraps a primitive source.
func NewMeshCache(source PrimitiveSource) *MeshCache {
	return &MeshCache{
		source: source,
		meshes: make(map[primitiveKey][]float32),
	}
}

// Primitive returns the cached buffer for (kind, param1, param2), asking
// the source once per distinct key. Tessellation below 1 is pinned to 1.
func (c *MeshCache) Primitive(kind PrimitiveKind, param1, param2 int) ([]float32, error) {
	if param1 < 1 {
		param1 = 1
	}
	if param2 < 1 {
		param2 = 1
	}

	key := primitiveKey{kind: kind, p1: param1, p2: param2}
	if mesh, ok := c.meshes[key]; ok {
		return mesh, nil
	}

	mesh, err := c.source.Primitive(kind, param1, param2)
	if err != nil {
		return nil, fmt.Errorf("primitive %s(%d, %d): %w", kind, param1, param2, err)
	}
	c.meshes[key] = mesh
	return mesh, nil
}

// Len reports the number of distinct cached primitives.
func (c *MeshCache) Len() int {
	return len(c.meshes)
}
