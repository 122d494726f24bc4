package heightfield

import "math"

// VertexStride is the float count per terrain vertex: position (3),
// normal (3) and a color slot carrying tiled texture coordinates (2 + pad).
const VertexStride = 9

// uvTiling repeats the ground textures across the unit terrain patch.
const uvTiling = 30.0

// MinResolution is the smallest usable grid; below it the patch degenerates.
const MinResolution = 2

// Mesh is the interleaved triangle soup for the terrain patch.
type Mesh struct {
	Resolution int
	Vertices   []float32
}

// VertexCount reports the number of vertices in the buffer.
func (m Mesh) VertexCount() int {
	return len(m.Vertices) / VertexStride
}

type gridPoint struct {
	x, y, z float64
}

func (g *Generator) gridPosition(row, col, res int) gridPoint {
	u := float64(row) / float64(res)
	v := float64(col) / float64(res)
	return gridPoint{u, g.height(u, v), v}
}

// ringOffsets walks the 8 neighbors counterclockwise; Normal pairs
// consecutive entries into cross products.
var ringOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0},
}

// Normal estimates the surface normal at a grid vertex by averaging cross
// products over the 8-neighbor ring. Degenerate sums fall back to straight
// up, and the result is flipped if it ever points below the horizon.
func (g *Generator) Normal(row, col, res int) (float64, float64, float64) {
	center := g.gridPosition(row, col, res)

	var nx, ny, nz float64
	for i := 0; i < 8; i++ {
		p1 := g.gridPosition(row+ringOffsets[i][0], col+ringOffsets[i][1], res)
		p2 := g.gridPosition(row+ringOffsets[(i+1)%8][0], col+ringOffsets[(i+1)%8][1], res)

		ax := p1.x - center.x
		ay := p1.y - center.y
		az := p1.z - center.z
		bx := p2.x - center.x
		by := p2.y - center.y
		bz := p2.z - center.z

		nx += ay*bz - az*by
		ny += az*bx - ax*bz
		nz += ax*by - ay*bx
	}

	l := math.Sqrt(nx*nx + ny*ny + nz*nz)
	if l < 1e-12 {
		return 0, 1, 0
	}
	nx, ny, nz = nx/l, ny/l, nz/l
	if ny < 0 {
		nx, ny, nz = -nx, -ny, -nz
	}
	return nx, ny, nz
}

// BuildMesh tessellates the unit patch into res x res quads, two triangles
// each, with per-vertex ring normals and tiled UVs in the color slot.
func (g *Generator) BuildMesh(res int) Mesh {
	if res < MinResolution {
		res = MinResolution
	}

	verts := make([]float32, 0, res*res*6*VertexStride)
	push := func(row, col int) {
		p := g.gridPosition(row, col, res)
		nx, ny, nz := g.Normal(row, col, res)
		u := float64(row) / float64(res) * uvTiling
		v := float64(col) / float64(res) * uvTiling
		verts = append(verts,
			float32(p.x), float32(p.y), float32(p.z),
			float32(nx), float32(ny), float32(nz),
			float32(u), float32(v), 0,
		)
	}

	for x := 0; x < res; x++ {
		for y := 0; y < res; y++ {
			// quad corners, counterclockwise seen from above
			push(x, y)
			push(x+1, y)
			push(x+1, y+1)

			push(x, y)
			push(x+1, y+1)
			push(x, y+1)
		}
	}

	return Mesh{Resolution: res, Vertices: verts}
}
