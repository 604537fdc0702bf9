package game

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/emoji-vend/internal/engine/window"
	"github.com/Faultbox/emoji-vend/internal/logger"
	"github.com/Faultbox/emoji-vend/internal/vending"
)

// Surface is the part of the window the host writes to.
type Surface interface {
	SetTitle(title string)
	SetCursor(c window.Cursor)
}

// Host shows the machine's feedback on the window: messages and the
// dispense popup go to the title bar, cursor styles to the system cursor.
type Host struct {
	surface Surface
	base    string
	log     *zap.Logger

	loading  bool
	message  string
	selected vending.ItemID
	popup    bool
}

// NewHost creates a host writing to s. base is the plain window title.
func NewHost(s Surface, base string) *Host {
	h := &Host{
		surface: s,
		base:    base,
		log:     logger.Named("host"),
		loading: true,
	}
	h.refresh()
	return h
}

// SetLoading implements vending.Host.
func (h *Host) SetLoading(loading bool) {
	h.loading = loading
	h.log.Debug("loading", zap.Bool("loading", loading))
	h.refresh()
}

// SetMessage implements vending.Host.
func (h *Host) SetMessage(msg string) {
	if msg != "" {
		h.log.Info("message", zap.String("text", msg))
	}
	h.message = msg
	h.refresh()
}

// SetCursorStyle implements vending.Host.
func (h *Host) SetCursorStyle(style vending.CursorStyle) {
	if style == vending.CursorPointer {
		h.surface.SetCursor(window.CursorHand)
		return
	}
	h.surface.SetCursor(window.CursorArrow)
}

// SelectionChanged implements vending.Host.
func (h *Host) SelectionChanged(id vending.ItemID) {
	h.selected = id
	h.log.Debug("selection", zap.String("item", string(id)))
}

// HoverChanged implements vending.Host.
func (h *Host) HoverChanged(b vending.Button) {
	h.log.Debug("hover", zap.String("button", string(b)))
}

// AnimationComplete implements vending.Host by opening the popup.
func (h *Host) AnimationComplete() {
	h.popup = true
	h.log.Info("dispensed", zap.String("item", string(h.selected)))
	h.refresh()
}

// PopupOpen reports whether the dispense popup is showing.
func (h *Host) PopupOpen() bool {
	return h.popup
}

// ClosePopup hides the dispense popup.
func (h *Host) ClosePopup() {
	h.popup = false
	h.refresh()
}

// Title returns the window title for the current state.
func (h *Host) Title() string {
	switch {
	case h.loading:
		return h.base + " | Loading..."
	case h.popup:
		return fmt.Sprintf("%s | Here is your %s! Click to continue", h.base, itemName(h.selected))
	case h.message != "":
		return h.base + " | " + h.message
	default:
		return h.base
	}
}

func (h *Host) refresh() {
	h.surface.SetTitle(h.Title())
}

// itemName turns an item id into display text.
func itemName(id vending.ItemID) string {
	if id == vending.ItemNone {
		return "emoji"
	}
	return strings.ReplaceAll(string(id), "_", " ")
}
