package session

import "math"

// Cube is the wireframe cube spinning on the title screen.
type Cube struct {
	AngleX, AngleY, AngleZ float64
}

func NewCube() Cube {
	return Cube{AngleX: 0.4, AngleY: 0.6}
}

// Tick advances the rotation by one animation frame.
func (c *Cube) Tick() {
	c.AngleX = math.Mod(c.AngleX+0.05, 2*math.Pi)
	c.AngleY = math.Mod(c.AngleY+0.08, 2*math.Pi)
	c.AngleZ = math.Mod(c.AngleZ+0.03, 2*math.Pi)
}

// Point is a projected cube point in cell coordinates.
type Point struct {
	X, Y  int
	Depth float64
}

var cubeEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Points samples the cube's edges and projects them onto a w×h cell grid.
// Cells are about twice as tall as wide, so x is stretched.
func (c Cube) Points(w, h int) []Point {
	if w <= 0 || h <= 0 {
		return nil
	}
	var verts [8][3]float64
	for i := range verts {
		v := [3]float64{-1, -1, -1}
		if i&1 != 0 {
			v[0] = 1
		}
		if i&2 != 0 {
			v[1] = 1
		}
		if i&4 != 0 {
			v[2] = 1
		}
		verts[i] = c.rotate(v)
	}

	scale := math.Min(float64(w)/2, float64(h)) * 0.22
	const steps = 12
	out := make([]Point, 0, len(cubeEdges)*(steps+1))
	for _, e := range cubeEdges {
		a, b := verts[e[0]], verts[e[1]]
		for s := 0; s <= steps; s++ {
			t := float64(s) / steps
			x := a[0] + (b[0]-a[0])*t
			y := a[1] + (b[1]-a[1])*t
			z := a[2] + (b[2]-a[2])*t
			persp := 4 / (5 - z)
			out = append(out, Point{
				X:     int(math.Round(float64(w)/2 + x*persp*scale*2)),
				Y:     int(math.Round(float64(h)/2 + y*persp*scale)),
				Depth: z,
			})
		}
	}
	return out
}

func (c Cube) rotate(v [3]float64) [3]float64 {
	x, y, z := v[0], v[1], v[2]
	sx, cx := math.Sincos(c.AngleX)
	y, z = y*cx-z*sx, y*sx+z*cx
	sy, cy := math.Sincos(c.AngleY)
	x, z = x*cy+z*sy, -x*sy+z*cy
	sz, cz := math.Sincos(c.AngleZ)
	x, y = x*cz-y*sz, x*sz+y*cz
	return [3]float64{x, y, z}
}
