package game

import (
	"github.com/Faultbox/emoji-vend/internal/engine/audio"
	"github.com/Faultbox/emoji-vend/internal/vending"
)

// cuePlayer plays machine cues through the audio manager. Clips are
// registered under the cue's name.
type cuePlayer struct {
	audio *audio.Manager
}

func (p cuePlayer) Play(c vending.Cue) error {
	return p.audio.Play(string(c))
}
