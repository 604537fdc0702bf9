// Package vending implements the vending machine character's behavior layer:
// item selection, the confirm-and-dispense animation, face tracking and reset.
//
// Everything here is driven by a single Machine. The host calls event methods
// (Click, HoverEnter, SetPointer) and ticks Update once per rendered frame.
// No method blocks and nothing runs on another goroutine.
package vending

import (
	"time"

	"github.com/Faultbox/emoji-vend/pkg/math"
)

// ItemID identifies one of the dispensable emoji items.
type ItemID string

// Catalog item identifiers.
const (
	ItemNone         ItemID = ""
	ItemSmiley       ItemID = "smiley"
	ItemSparkleHeart ItemID = "sparkle_heart"
	ItemHeartSmiley  ItemID = "heart_smiley"
	ItemSadSmiley    ItemID = "sad_smiley"
	ItemThreeHearts  ItemID = "three_hearts"
)

// Item is a fixed catalog entry.
type Item struct {
	ID           ItemID
	Shelf        math.Vec3 // resting position
	CornerOffset math.Vec3 // end of the first (sideways) segment, relative to Shelf
	EndOffset    math.Vec3 // end of the drop, relative to Shelf
	FallDuration time.Duration
}

// Corner returns the absolute position at the end of the first segment.
func (it Item) Corner() math.Vec3 {
	return it.Shelf.Add(it.CornerOffset)
}

// End returns the absolute position the item drops to.
func (it Item) End() math.Vec3 {
	return it.Shelf.Add(it.EndOffset)
}

var pushOut = math.V3(0.5, 0, 0)

// catalog is ordered the way items sit in the machine; Items returns it in this order.
var catalog = []Item{
	{ID: ItemSmiley, Shelf: math.V3(1.081, 2.554, 0.368), CornerOffset: pushOut, EndOffset: math.V3(0.5, -1.6, 0), FallDuration: 600 * time.Millisecond},
	{ID: ItemSparkleHeart, Shelf: math.V3(1.111, 4.965, -0.64), CornerOffset: pushOut, EndOffset: math.V3(0.5, -4, 0), FallDuration: 1200 * time.Millisecond},
	{ID: ItemHeartSmiley, Shelf: math.V3(1.139, 3.738, -0.643), CornerOffset: pushOut, EndOffset: math.V3(0.5, -2.8, 0), FallDuration: 900 * time.Millisecond},
	{ID: ItemSadSmiley, Shelf: math.V3(1.096, 4.948, 1.38), CornerOffset: pushOut, EndOffset: math.V3(0.5, -4, 0), FallDuration: 1200 * time.Millisecond},
	{ID: ItemThreeHearts, Shelf: math.V3(1.086, 3.756, 0.368), CornerOffset: pushOut, EndOffset: math.V3(0.5, -2.8, 0), FallDuration: 900 * time.Millisecond},
}

// Items returns a copy of the catalog.
func Items() []Item {
	out := make([]Item, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry for id.
func Lookup(id ItemID) (Item, bool) {
	for _, it := range catalog {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Button identifies a clickable button on the machine.
// Emoji buttons share their item's id.
type Button string

// Non-item buttons.
const (
	ButtonNone   Button = ""
	ButtonOK     Button = "ok"
	ButtonCancel Button = "cancel"
)

// Buttons returns every clickable button: the five emoji selectors, then OK and Cancel.
func Buttons() []Button {
	out := make([]Button, 0, len(catalog)+2)
	for _, it := range catalog {
		out = append(out, Button(it.ID))
	}
	return append(out, ButtonOK, ButtonCancel)
}

// Item returns the item an emoji button selects.
func (b Button) Item() (ItemID, bool) {
	if _, ok := Lookup(ItemID(b)); ok {
		return ItemID(b), true
	}
	return ItemNone, false
}

// Valid reports whether b is a known button.
func (b Button) Valid() bool {
	if b == ButtonOK || b == ButtonCancel {
		return true
	}
	_, ok := b.Item()
	return ok
}

// Cue names one of the feedback clips.
type Cue string

// Feedback clips.
const (
	CueEmoji  Cue = "emoji"
	CueCheck  Cue = "check"
	CueCancel Cue = "cancel"
)

// Cues lists every clip the machine may play.
func Cues() []Cue {
	return []Cue{CueEmoji, CueCheck, CueCancel}
}

// CursorStyle is the pointer style the host should show.
type CursorStyle string

// Cursor styles.
const (
	CursorAuto    CursorStyle = "auto"
	CursorPointer CursorStyle = "pointer"
)
