package notify

import (
	"io"
	"strings"

	"github.com/sadopc/upfocus/internal/engine"
)

// Bell plays cues as terminal bells: one for a focus start, two when focus
// ends and three when a break ends.
type Bell struct {
	w     io.Writer
	Muted bool
}

func NewBell(w io.Writer) *Bell { return &Bell{w: w} }

func (b *Bell) Cue(kind engine.CueKind) {
	if b.Muted || b.w == nil {
		return
	}
	n := 1
	switch kind {
	case engine.CueFocusEnd:
		n = 2
	case engine.CueBreakEnd:
		n = 3
	}
	_, _ = io.WriteString(b.w, strings.Repeat("\a", n))
}

var (
	_ engine.Notifier = (*Scheduler)(nil)
	_ engine.Presence = (*Status)(nil)
	_ engine.Cues     = (*Bell)(nil)
)
