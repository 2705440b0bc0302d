// Package stroke expands a polygon outline to account for stroke
// thickness and join geometry. The projected points are consumed by the
// shape geometry recompute to derive exact bounding dimensions.
package stroke

import (
	"github.com/vectorlab/vectorlab/backend-go/internal/geom"
)

// LineJoin selects the corner geometry used when stroking a polygon.
type LineJoin string

const (
	JoinMiter LineJoin = "miter"
	JoinRound LineJoin = "round"
	JoinBevel LineJoin = "bevel"
)

// MiterLimit is the ratio at which miter joins fall back to bevels,
// matching the SVG default.
const MiterLimit = 4.0

// ProjectedPoint pairs an outline point with the vertex it was
// projected from.
type ProjectedPoint struct {
	ProjectedPoint geom.Point
	OriginPoint    geom.Point
}

// Project expands the closed polygon described by points into outline
// points that cover the stroked silhouette. The result contains at
// least one element whenever points is non-empty.
//
// When scaleAware is true the stroke is painted at constant screen
// width after the object transform, so the local-space outline is not
// expanded; the caller's stroke correction term accounts for the
// thickness instead. Duplicate and collinear vertices are permitted and
// contribute their half-width disc.
func Project(points []geom.Point, width float64, join LineJoin, scaleAware bool) []ProjectedPoint {
	if len(points) == 0 {
		return nil
	}

	if scaleAware || width == 0 {
		out := make([]ProjectedPoint, len(points))
		for i, p := range points {
			out[i] = ProjectedPoint{ProjectedPoint: p, OriginPoint: p}
		}
		return out
	}

	half := width / 2
	out := make([]ProjectedPoint, 0, len(points)*4)

	for i, p := range points {
		prev := points[(i+len(points)-1)%len(points)]
		next := points[(i+1)%len(points)]

		inDir := p.Sub(prev).Normalize()
		outDir := next.Sub(p).Normalize()

		// Degenerate neighborhood (duplicate points, or a 1–2 point
		// polygon): cover the half-width disc around the vertex.
		if (inDir == geom.Point{}) || (outDir == geom.Point{}) || len(points) < 3 {
			out = append(out, discPoints(p, half)...)
			continue
		}

		switch join {
		case JoinRound:
			out = append(out, discPoints(p, half)...)
		case JoinBevel:
			out = append(out, bevelPoints(p, inDir, outDir, half)...)
		default: // miter
			out = append(out, miterPoints(p, inDir, outDir, half)...)
		}
	}

	return out
}

// discPoints bounds the circle of radius half around p. Four axis
// extremes are enough for bounding-box purposes.
func discPoints(p geom.Point, half float64) []ProjectedPoint {
	return []ProjectedPoint{
		{ProjectedPoint: p.Add(geom.Pt(half, 0)), OriginPoint: p},
		{ProjectedPoint: p.Add(geom.Pt(-half, 0)), OriginPoint: p},
		{ProjectedPoint: p.Add(geom.Pt(0, half)), OriginPoint: p},
		{ProjectedPoint: p.Add(geom.Pt(0, -half)), OriginPoint: p},
	}
}

// bevelPoints projects the two edge-normal offsets on both sides of the
// corner.
func bevelPoints(p, inDir, outDir geom.Point, half float64) []ProjectedPoint {
	nIn := geom.Pt(-inDir.Y, inDir.X).Scale(half)
	nOut := geom.Pt(-outDir.Y, outDir.X).Scale(half)
	return []ProjectedPoint{
		{ProjectedPoint: p.Add(nIn), OriginPoint: p},
		{ProjectedPoint: p.Sub(nIn), OriginPoint: p},
		{ProjectedPoint: p.Add(nOut), OriginPoint: p},
		{ProjectedPoint: p.Sub(nOut), OriginPoint: p},
	}
}

// miterPoints projects the miter tip along the corner bisector, falling
// back to a bevel when the miter length exceeds the limit.
func miterPoints(p, inDir, outDir geom.Point, half float64) []ProjectedPoint {
	bisector := inDir.Sub(outDir).Normalize()
	if (bisector == geom.Point{}) {
		// Straight-through vertex: only the edge normals matter.
		return bevelPoints(p, inDir, outDir, half)
	}

	// sin(theta/2) where theta is the interior angle between the edges.
	sinHalf := bisector.X*inDir.Y - bisector.Y*inDir.X
	if sinHalf < 0 {
		sinHalf = -sinHalf
	}
	if sinHalf == 0 || half/sinHalf > MiterLimit*half {
		return bevelPoints(p, inDir, outDir, half)
	}

	tip := bisector.Scale(half / sinHalf)
	pts := bevelPoints(p, inDir, outDir, half)
	pts = append(pts,
		ProjectedPoint{ProjectedPoint: p.Add(tip), OriginPoint: p},
		ProjectedPoint{ProjectedPoint: p.Sub(tip), OriginPoint: p},
	)
	return pts
}
