// Package scene binds the machine's state to the static node tree and
// produces the per-frame draw list.
package scene

import (
	"fmt"

	"github.com/Faultbox/emoji-vend/internal/assets"
	"github.com/Faultbox/emoji-vend/internal/engine/picking"
	"github.com/Faultbox/emoji-vend/internal/vending"
	"github.com/Faultbox/emoji-vend/pkg/math"
)

// Face parts a node can bind to.
const (
	FaceLeftGlimmer  = "left_glimmer"
	FaceRightGlimmer = "right_glimmer"
	FaceLeftEyebrow  = "left_eyebrow"
	FaceRightEyebrow = "right_eyebrow"
	FaceArms         = "arms"
)

var faceParts = map[string]func(vending.Face) math.Vec3{
	FaceLeftGlimmer:  func(f vending.Face) math.Vec3 { return f.Eyes.Left },
	FaceRightGlimmer: func(f vending.Face) math.Vec3 { return f.Eyes.Right },
	FaceLeftEyebrow:  func(f vending.Face) math.Vec3 { return f.LeftEyebrow },
	FaceRightEyebrow: func(f vending.Face) math.Vec3 { return f.RightEyebrow },
	FaceArms:         func(f vending.Face) math.Vec3 { return f.Arms },
}

// Widget is the machine state the composer reads each frame.
type Widget interface {
	ItemPosition(id vending.ItemID) (math.Vec3, bool)
	Face() vending.Face
	Hovered() vending.Button
	Selected() vending.ItemID
}

// DrawItem is one box ready for the renderer, in world space.
type DrawItem struct {
	Name     string
	Position math.Vec3
	Size     math.Vec3
	Material assets.Material
}

// Model returns the box's model matrix.
func (d DrawItem) Model() math.Mat4 {
	return math.Box(d.Position, d.Size)
}

// Composer maps widget state onto scene nodes.
type Composer struct {
	scene  *assets.Scene
	offset math.Vec3
}

// NewComposer checks every binding in s against the catalog.
func NewComposer(s *assets.Scene) (*Composer, error) {
	for _, n := range s.Nodes {
		if n.Item != "" {
			if _, ok := vending.Lookup(vending.ItemID(n.Item)); !ok {
				return nil, fmt.Errorf("node %s: %w: %q", n.Name, vending.ErrUnknownItem, n.Item)
			}
		}
		if n.Button != "" && !vending.Button(n.Button).Valid() {
			return nil, fmt.Errorf("node %s: %w: %q", n.Name, vending.ErrUnknownButton, n.Button)
		}
		if n.Face != "" {
			if _, ok := faceParts[n.Face]; !ok {
				return nil, fmt.Errorf("node %s: unknown face part %q", n.Name, n.Face)
			}
		}
	}
	return &Composer{scene: s, offset: s.RootOffset()}, nil
}

// Compose returns the draw list for the widget's current state.
func (c *Composer) Compose(w Widget) []DrawItem {
	face := w.Face()
	hovered := w.Hovered()
	selected := w.Selected()

	out := make([]DrawItem, 0, len(c.scene.Nodes))
	for _, n := range c.scene.Nodes {
		pos := n.Pos()
		mat := c.scene.Material(n.Material)

		switch {
		case n.Item != "":
			if p, ok := w.ItemPosition(vending.ItemID(n.Item)); ok {
				pos = p
			}
		case n.Face != "":
			pos = faceParts[n.Face](face)
		case n.Button != "":
			b := vending.Button(n.Button)
			id, isItem := b.Item()
			active := isItem && id == selected
			if n.HoverX != nil && (b == hovered || active) {
				pos.X = *n.HoverX
			}
			mat = assets.WithGlow(mat, active)
		}

		out = append(out, DrawItem{
			Name:     n.Name,
			Position: pos.Add(c.offset),
			Size:     n.Extent(),
			Material: mat,
		})
	}
	return out
}

// Pick returns the nearest button whose box the ray hits, or ButtonNone.
// Buttons are tested at their rest position so a pressed button stays
// under the pointer.
func (c *Composer) Pick(ray picking.Ray) vending.Button {
	best := vending.ButtonNone
	var bestT float32
	for _, n := range c.scene.Nodes {
		if n.Button == "" {
			continue
		}
		box := picking.BoxAABB(n.Pos().Add(c.offset), n.Extent())
		t, hit := ray.IntersectAABB(box)
		if !hit {
			continue
		}
		if best == vending.ButtonNone || t < bestT {
			best, bestT = vending.Button(n.Button), t
		}
	}
	return best
}
