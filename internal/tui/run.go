package tui

import (
	"fmt"
	"os"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/sadopc/upfocus/internal/engine"
	"github.com/sadopc/upfocus/internal/notify"
	"github.com/sadopc/upfocus/internal/store"
)

// Run builds the engine with terminal collaborators and blocks until the
// user quits.
func Run(s *store.Store, log zerolog.Logger) error {
	// Notifications fire on timer goroutines, possibly before the program
	// exists.
	var prog atomic.Pointer[tea.Program]

	clock := engine.NewLoopClock(nil)
	status := notify.NewStatus()
	scheduler := notify.NewScheduler(func(n notify.Notification) {
		if p := prog.Load(); p != nil {
			p.Send(n)
		}
	}, log)
	defer scheduler.CancelAll()

	eng := engine.New(s,
		engine.WithClock(clock),
		engine.WithNotifier(scheduler),
		engine.WithPresence(status),
		engine.WithCues(notify.NewBell(os.Stderr)),
		engine.WithLogger(log),
	)

	p := tea.NewProgram(NewApp(eng, s, clock, status, log), tea.WithAltScreen())
	prog.Store(p)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
