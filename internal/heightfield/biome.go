package heightfield

import (
	"fmt"
	"math"
)

// Biome weight thresholds. BiomeGLSL renders these same constants into the
// fragment shader snippet so the CPU and GPU sides cannot drift apart.
const (
	biomeBeachLow  = 0.02
	biomeBeachHigh = 0.12

	biomeGrassLow  = 0.05
	biomeGrassHigh = 0.80

	biomeSlopeLow  = 0.75
	biomeSlopeHigh = 0.90

	biomeSlopeGrassPenalty = 0.7
	biomeRockDamp          = 0.7
	biomeGrassBoost        = 1.4
	biomeEps               = 1e-6
)

// GrassWeight blends grass against rock. hNorm is height above sea level
// normalized to [0,1], slope runs 0 flat to 1 vertical. The returned grass
// share is in [0,1]; rock wins near beaches and on steep faces.
func GrassWeight(hNorm, slope float64) float64 {
	rockBeach := 1 - smoothstep(biomeBeachLow, biomeBeachHigh, hNorm)
	grassBand := smoothstep(biomeGrassLow, biomeGrassHigh, hNorm)
	rockSlope := smoothstep(biomeSlopeLow, biomeSlopeHigh, slope)

	wRock := math.Max(rockBeach, rockSlope) * biomeRockDamp
	wGrass := grassBand * (1 - biomeSlopeGrassPenalty*rockSlope) * biomeGrassBoost

	return wGrass / (wGrass + wRock + biomeEps)
}

// BiomeGLSL returns the shader-side grass weight function, generated from
// the constants above.
func BiomeGLSL() string {
	return fmt.Sprintf(`float grassWeight(float hNorm, float slope) {
    float rockBeach = 1.0 - smoothstep(%g, %g, hNorm);
    float grassBand = smoothstep(%g, %g, hNorm);
    float rockSlope = smoothstep(%g, %g, slope);
    float wRock = max(rockBeach, rockSlope) * %g;
    float wGrass = grassBand * (1.0 - %g * rockSlope) * %g;
    return wGrass / (wGrass + wRock + %g);
}
`,
		biomeBeachLow, biomeBeachHigh,
		biomeGrassLow, biomeGrassHigh,
		biomeSlopeLow, biomeSlopeHigh,
		biomeRockDamp,
		biomeSlopeGrassPenalty, biomeGrassBoost,
		biomeEps)
}
