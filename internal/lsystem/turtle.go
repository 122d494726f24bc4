package lsystem

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// BranchInstance places the shared unit cylinder (axis +Y, unit height,
// centered at the origin) as one branch segment.
type BranchInstance struct {
	Model  mgl32.Mat4
	Radius float32
}

// LeafInstance places one leaf ellipsoid over the shared unit sphere.
type LeafInstance struct {
	Model mgl32.Mat4
}

// Tree is the geometry emitted for one plant, in its local frame with the
// trunk base at the origin growing along +Y.
type Tree struct {
	Branches []BranchInstance
	Leaves   []LeafInstance
}

// turtle is copied whole on push, so pop is plain assignment.
type turtle struct {
	pos     mgl32.Vec3
	forward mgl32.Vec3
	up      mgl32.Vec3
	right   mgl32.Vec3
	radius  float64
}

var worldUp = mgl32.Vec3{0, 1, 0}

// Generate rewrites the axiom and interprets the result. The caller owns
// rng; a forest build threads one stream through every tree so the whole
// layout replays from a single seed.
func Generate(p Params, axiom string, rules Rules, rng *rand.Rand) *Tree {
	if p.Iterations < 0 {
		p.Iterations = 0
	}
	if p.RadiusDecay > 1 {
		p.RadiusDecay = 1
	}
	tree := &Tree{}
	tree.interpret(Rewrite(axiom, rules, p.Iterations), p, rng)
	return tree
}

func (t *Tree) interpret(s string, p Params, rng *rand.Rand) {
	cur := turtle{
		forward: mgl32.Vec3{0, 1, 0},
		up:      mgl32.Vec3{0, 0, 1},
		right:   mgl32.Vec3{1, 0, 0},
		radius:  p.BaseRadius,
	}
	var stack []turtle

	baseAngle := mgl32.DegToRad(float32(p.BaseAngleDeg))
	jitterMax := mgl32.DegToRad(float32(p.AngleJitterDeg))

	rotate := func(sign float32, axis mgl32.Vec3) {
		angle := sign * (baseAngle + jitterMax*float32(jitter(rng)))
		m := mgl32.HomogRotate3D(angle, axis)
		cur.forward = mgl32.TransformNormal(cur.forward, m).Normalize()
		cur.right = cur.forward.Cross(cur.up).Normalize()
		cur.up = cur.right.Cross(cur.forward).Normalize()
	}

	for _, c := range s {
		switch c {
		case 'F':
			from := cur.pos
			cur.pos = cur.pos.Add(cur.forward.Mul(float32(p.StepLength)))

			if cur.radius < p.BaseRadius*0.7 {
				// thin branches drift upward, the trunk stays straight
				rNorm := clamp(cur.radius/p.BaseRadius, 0.2, 1)
				k := 0.05 * (1 - rNorm)
				cur.forward = cur.forward.Add(worldUp.Mul(float32(k))).Normalize()
				cur.right = cur.forward.Cross(cur.up).Normalize()
				cur.up = cur.right.Cross(cur.forward).Normalize()
			}

			if m, ok := segmentMatrix(from, cur.pos, float32(cur.radius)); ok {
				t.Branches = append(t.Branches, BranchInstance{Model: m, Radius: float32(cur.radius)})
			}

			if cur.radius < p.BaseRadius*0.8 && 0.5*(jitter(rng)+1) < 0.9 {
				t.leafCluster(&cur, p, rng)
			}
		case 'X':
			t.leafCluster(&cur, p, rng)
		case '+':
			rotate(1, cur.up)
		case '-':
			rotate(-1, cur.up)
		case '&':
			rotate(1, cur.right)
		case '^':
			rotate(-1, cur.right)
		case '[':
			stack = append(stack, cur)
			cur.radius *= p.RadiusDecay
			roll := jitterMax * 0.7 * float32(jitter(rng))
			m := mgl32.HomogRotate3D(roll, cur.forward)
			cur.up = mgl32.TransformNormal(cur.up, m).Normalize()
			cur.right = cur.forward.Cross(cur.up).Normalize()
		case ']':
			if n := len(stack); n > 0 {
				cur = stack[n-1]
				stack = stack[:n-1]
			}
		}
	}
}

// segmentMatrix aligns the canonical cylinder with the segment from a to b.
// Degenerate segments report ok=false and are skipped.
func segmentMatrix(a, b mgl32.Vec3, radius float32) (mgl32.Mat4, bool) {
	dir := b.Sub(a)
	length := dir.Len()
	if length < 1e-4 {
		return mgl32.Ident4(), false
	}
	w := dir.Mul(1 / length)

	rot := mgl32.Ident4()
	axis := worldUp.Cross(w)
	if axisLen := axis.Len(); axisLen < 1e-4 {
		if worldUp.Dot(w) < 0 {
			rot = mgl32.HomogRotate3D(math.Pi, mgl32.Vec3{1, 0, 0})
		}
	} else {
		cos := clamp(float64(worldUp.Dot(w)), -1, 1)
		rot = mgl32.HomogRotate3D(float32(math.Acos(cos)), axis.Mul(1/axisLen))
	}

	// slight overgrowth hides seams between consecutive segments
	scale := mgl32.Scale3D(radius, length*1.05, radius)
	mid := a.Add(b).Mul(0.5)
	return mgl32.Translate3D(mid.X(), mid.Y(), mid.Z()).Mul4(rot).Mul4(scale), true
}

// leafCluster sprouts a short twig off the current position and scatters
// leaf ellipsoids around the twig tip. Thinner branches carry more leaves.
func (t *Tree) leafCluster(cur *turtle, p Params, rng *rand.Rand) {
	twigDir := cur.forward.Mul(0.4).Add(cur.up.Mul(0.8)).Normalize()
	jig := mgl32.Vec3{float32(jitter(rng)), float32(jitter(rng)), float32(jitter(rng))}
	if jig.Len() > 1e-6 {
		jig = jig.Normalize()
	}
	twigDir = twigDir.Add(jig.Mul(0.4)).Normalize()

	twigLen := 0.25 * p.StepLength * (0.7 + 0.6*unit(rng))
	tip := cur.pos.Add(twigDir.Mul(float32(twigLen)))
	twigRadius := cur.radius * 0.5
	if m, ok := segmentMatrix(cur.pos, tip, float32(twigRadius)); ok {
		t.Branches = append(t.Branches, BranchInstance{Model: m, Radius: float32(twigRadius)})
	}

	rNorm := clamp(cur.radius/p.BaseRadius, 0.2, 1)
	count := int(float64(26+int((1-rNorm)*32)) * p.LeafDensity)
	radiusScale := 0.6 + 0.5*(1-rNorm)

	for i := 0; i < count; i++ {
		u := unit(rng)
		v := unit(rng)
		angle := 2 * math.Pi * u
		rr := (0.01 + 0.02*v) * radiusScale
		along := 0.01 + 0.03*v
		upBias := 0.2 + 0.8*v

		offset := cur.forward.Mul(float32(along)).
			Add(cur.right.Mul(float32(math.Cos(angle) * rr * 1.1))).
			Add(cur.up.Mul(float32(math.Sin(angle) * rr * upBias)))
		pos := tip.Add(offset)

		s := 0.010 * (0.7 + 0.8*v) * (0.85 + 0.3*jitter(rng))
		yaw := 2 * math.Pi * unit(rng)

		m := mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).
			Mul4(mgl32.HomogRotate3D(float32(yaw), cur.up)).
			Mul4(mgl32.Scale3D(float32(s), float32(s*0.55), float32(s)))
		t.Leaves = append(t.Leaves, LeafInstance{Model: m})
	}
}

// jitter draws from [-1, 1), unit from [0, 1).
func jitter(rng *rand.Rand) float64 {
	return rng.Float64()*2 - 1
}

func unit(rng *rand.Rand) float64 {
	return rng.Float64()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
