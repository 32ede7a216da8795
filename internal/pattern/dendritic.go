package pattern

import (
	"math"
	"math/rand"

	"ScaffoldGen/internal/logger"
	"ScaffoldGen/internal/params"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

func init() {
	RegisterRasterizer(params.Dendritic, drawDendritic)
}

// MaxDendriteDepth bounds the branching recursion; 2^16-1 segments.
const MaxDendriteDepth = 16

// Branch is one segment of a dendrite. PathID is 1 for the trunk and
// 2*id / 2*id+1 for the left / right child of id.
type Branch struct {
	Start, End mgl64.Vec2
	Thickness  float64
	PathID     int
	Depth      int
	Parent     int    // arena index, -1 for the trunk
	Children   [2]int // arena indices, -1 for leaves
}

// Dendrite is a branching tree stored as an arena.
type Dendrite struct {
	Branches []Branch
}

// GrowDendrite builds the full tree before anything is drawn. Angles are in
// degrees, 0 pointing along +x; the trunk points up (-90).
func GrowDendrite(root mgl64.Vec2, length, thickness, spread, factor float64, depth int) *Dendrite {
	if depth <= 0 {
		return &Dendrite{}
	}
	tree := &Dendrite{Branches: make([]Branch, 0, (1<<depth)-1)}

	type pending struct {
		start              mgl64.Vec2
		angle, length      float64
		thickness          float64
		pathID, depth      int
		parent, parentSlot int
	}

	stack := []pending{{start: root, angle: -90, length: length, thickness: thickness, pathID: 1, depth: 1, parent: -1}}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		rad := mgl64.DegToRad(n.angle)
		end := n.start.Add(mgl64.Vec2{math.Cos(rad), math.Sin(rad)}.Mul(n.length))

		idx := len(tree.Branches)
		tree.Branches = append(tree.Branches, Branch{
			Start:     n.start,
			End:       end,
			Thickness: n.thickness,
			PathID:    n.pathID,
			Depth:     n.depth,
			Parent:    n.parent,
			Children:  [2]int{-1, -1},
		})
		if n.parent >= 0 {
			tree.Branches[n.parent].Children[n.parentSlot] = idx
		}

		if n.depth == depth {
			continue
		}
		child := pending{
			start:     end,
			length:    n.length * factor,
			thickness: n.thickness * factor,
			depth:     n.depth + 1,
			parent:    idx,
		}
		right := child
		right.angle = n.angle + spread
		right.pathID = n.pathID*2 + 1
		right.parentSlot = 1
		left := child
		left.angle = n.angle - spread
		left.pathID = n.pathID * 2
		left.parentSlot = 0
		// left is popped first
		stack = append(stack, right, left)
	}
	return tree
}

func drawDendritic(d *Drawer, p *params.ScaffoldParams, _ *rand.Rand) error {
	depth := int(math.Floor(p.DendriteIterations))
	if depth > MaxDendriteDepth {
		logger.Log.Warn("Dendrite depth capped",
			zap.Int("requested", depth),
			zap.Int("max", MaxDendriteDepth))
		depth = MaxDendriteDepth
	}

	tree := GrowDendrite(
		mgl64.Vec2{d.W / 2, d.H},
		d.H/4,
		p.BranchThickness*d.ScaleX,
		p.BranchAngle,
		p.BranchLengthFactor,
		depth,
	)

	for _, b := range tree.Branches {
		if !d.Layer().Owns(b.PathID) {
			continue
		}
		d.SetLineWidth(math.Max(1, b.Thickness))
		if err := d.Stroke(b.PathID, segment(b.Start, b.End), false); err != nil {
			return err
		}
	}
	return nil
}
