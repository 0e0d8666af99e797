package sim

// TreeAxis is the axis a tree leans around.
type TreeAxis uint8

const (
	TreeAxisX TreeAxis = iota
	TreeAxisZ
)

type Tree struct {
	X, Z        float64 // relative to the forest origin
	TiltDeg     float64
	Axis        TreeAxis
	TrunkRadius float64
	Height      float64
	Green       float64
}

func (t Tree) TrunkHeight() float64   { return t.Height * 0.2 }
func (t Tree) FoliageHeight() float64 { return t.Height * 0.8 }

// FoliageLayers is the number of stacked pyramids, at least two.
func (t Tree) FoliageLayers() int {
	n := int(t.FoliageHeight() + 0.5)
	if n < 2 {
		n = 2
	}
	return n
}

type Forest struct {
	Origin Vec3
	Trees  []Tree
}

// NewForest lays out rows*cols trees on a jittered grid covering
// areaW x areaD around the origin.
func NewForest(origin Vec3, rows, cols int, areaW, areaD float64, seed uint64) *Forest {
	f := &Forest{Origin: origin}
	if rows <= 0 || cols <= 0 {
		return f
	}
	r := NewRand(seed)
	cellW := areaW / float64(cols)
	cellD := areaD / float64(rows)
	f.Trees = make([]Tree, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			axis := TreeAxisX
			if r.Float64() >= 0.5 {
				axis = TreeAxisZ
			}
			t := Tree{
				TiltDeg:     r.RangeF(-5, 5),
				Axis:        axis,
				TrunkRadius: r.RangeF(0.3, 0.5),
				Height:      r.RangeF(4, 7),
				Green:       r.RangeF(0.4, 0.8),
			}
			t.X = -areaW/2 + float64(j)*cellW + cellW/2 + r.RangeF(-0.2, 0.2)
			t.Z = -areaD/2 + float64(i)*cellD + cellD/2 + r.RangeF(-0.2, 0.2)
			f.Trees = append(f.Trees, t)
		}
	}
	return f
}
