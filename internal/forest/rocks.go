package forest

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"terrascape/internal/heightfield"
)

// RockParams controls the boulder scatter. It runs on its own seed so the
// rock layout survives vegetation parameter changes.
type RockParams struct {
	Count int
	Seed  int64
}

// DefaultRockParams matches a lightly littered shoreline.
func DefaultRockParams() RockParams {
	return RockParams{Count: 300, Seed: 5678}
}

// RockInstance places the shared rock mesh.
type RockInstance struct {
	Model mgl32.Mat4
}

// RockResult pairs the instances with their surface sites for checks and
// diagnostics.
type RockResult struct {
	Rocks []RockInstance
	Sites []mgl32.Vec3
}

// rockScale folds the render-side terrain model scale into local units.
const rockScale = 0.1

// ScatterRocks drops boulders near shorelines and on moderate slopes.
// Candidates elsewhere survive with a 10% chance, so lone rocks still show
// up on open grassland.
func ScatterRocks(gen *heightfield.Generator, p RockParams) *RockResult {
	rng := rand.New(rand.NewSource(p.Seed))

	heightScale := gen.Params().HeightScale
	seaLevel := gen.Params().SeaLevel
	seaLimit := seaLevel + 0.02*heightScale

	out := &RockResult{}
	for i := 0; i < p.Count; i++ {
		u := rng.Float64()
		v := rng.Float64()

		y := gen.SurfaceHeight(u, v)
		if y <= seaLimit {
			continue
		}
		slope := SurfaceSlope(gen, u, v)

		beach := y < seaLevel+0.1*heightScale
		scree := slope > 0.3 && slope < 0.8
		if !beach && !scree && rng.Float64() > 0.1 {
			continue
		}

		base := (0.5 + 1.5*rng.Float64()) * rockScale
		sx := base * (0.8 + 0.4*rng.Float64())
		sy := base * (0.6 + 0.4*rng.Float64())
		sz := base * (0.8 + 0.4*rng.Float64())

		yaw := 2 * math.Pi * rng.Float64()
		pitch := 2 * math.Pi * rng.Float64()
		roll := 2 * math.Pi * rng.Float64()

		// sink a fifth of the height so the rock reads as bedded in
		model := mgl32.Translate3D(float32(u), float32(y-0.2*sy), float32(v)).
			Mul4(mgl32.HomogRotate3D(float32(yaw), mgl32.Vec3{0, 1, 0})).
			Mul4(mgl32.HomogRotate3D(float32(pitch), mgl32.Vec3{1, 0, 0})).
			Mul4(mgl32.HomogRotate3D(float32(roll), mgl32.Vec3{0, 0, 1})).
			Mul4(mgl32.Scale3D(float32(sx), float32(sy), float32(sz)))

		out.Rocks = append(out.Rocks, RockInstance{Model: model})
		out.Sites = append(out.Sites, mgl32.Vec3{float32(u), float32(y), float32(v)})
	}
	return out
}
