package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keycancel/internal/cancel"
	"github.com/dshills/keycancel/internal/input/key"
	"github.com/dshills/keycancel/internal/report"
	"github.com/dshills/keycancel/internal/sched"
	"github.com/dshills/keycancel/internal/turbo"
)

// Demo key bindings.
const (
	tickInterval = 5 * time.Millisecond
	historySize  = 8
)

// simulator drives the full pipeline from simulated matrix events: terminal
// keys toggle a simulated held/released state, and every resulting event runs
// through turbo, then the engine, then host-report assembly. All engine and
// scheduler access happens on the Run goroutine, preserving the single-writer
// contract.
type simulator struct {
	engine *cancel.Engine
	report *report.State
	rules  cancel.Rules
	sched  *sched.Scheduler
	turbo  *turbo.Clicker
	log    *slog.Logger

	screen  tcell.Screen
	held    map[key.Key]bool
	history []string
}

func newSimulator(engine *cancel.Engine, rep *report.State, rules cancel.Rules, log *slog.Logger) *simulator {
	s := sched.New()
	return &simulator{
		engine: engine,
		report: rep,
		rules:  rules,
		sched:  s,
		turbo:  turbo.New(key.KeyF5, key.KeySpace, s, rep, turbo.WithPeriod(200*time.Millisecond)),
		log:    log,
		held:   make(map[key.Key]bool),
	}
}

// Run owns the terminal until the user quits.
func (s *simulator) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	s.screen = screen

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	s.draw()
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return nil
				}
				s.handleKey(ev)
			case *tcell.EventResize:
				screen.Sync()
			}
		case now := <-ticker.C:
			s.sched.Tick(now)
		}
		s.draw()
	}
}

// handleKey translates a terminal key into simulated matrix events.
func (s *simulator) handleKey(ev *tcell.EventKey) {
	now := ev.When()

	// Administrative and feature triggers fire a press immediately; the
	// simulated board never holds them.
	switch ev.Key() {
	case tcell.KeyF1:
		s.feed(key.NewPress(key.CancelToggle), now)
		return
	case tcell.KeyF2:
		s.feed(key.NewPress(key.CancelRecoveryToggle), now)
		return
	case tcell.KeyF5:
		s.feed(key.NewPress(key.KeyF5), now)
		s.feed(key.NewRelease(key.KeyF5), now)
		return
	}

	k := simKey(ev)
	if k == key.KeyNone {
		return
	}

	// Toggle the simulated switch: first strike presses, second releases.
	if s.held[k] {
		delete(s.held, k)
		s.feed(key.NewRelease(k), now)
	} else {
		s.held[k] = true
		s.feed(key.NewPress(k), now)
	}
}

// feed runs one event through the pipeline: turbo, engine, report assembly.
func (s *simulator) feed(ev key.Event, now time.Time) {
	s.remember(ev)
	s.log.Debug("matrix event", "key", ev.Key, "action", ev.Action)

	if !s.turbo.Process(ev, now) {
		return
	}
	if !s.engine.Process(ev) {
		return
	}
	if !ev.Key.IsBasic() {
		return
	}
	if ev.Pressed() {
		s.report.Press(ev.Key)
	} else {
		s.report.Release(ev.Key)
	}
}

func (s *simulator) remember(ev key.Event) {
	s.history = append(s.history, ev.String())
	if len(s.history) > historySize {
		s.history = s.history[1:]
	}
}

// simKey maps a terminal key event to a simulated matrix keycode.
func simKey(ev *tcell.EventKey) key.Key {
	switch ev.Key() {
	case tcell.KeyRune:
		return key.FromRune(ev.Rune())
	case tcell.KeyUp:
		return key.KeyUp
	case tcell.KeyDown:
		return key.KeyDown
	case tcell.KeyLeft:
		return key.KeyLeft
	case tcell.KeyRight:
		return key.KeyRight
	case tcell.KeyEnter:
		return key.KeyEnter
	case tcell.KeyTab:
		return key.KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.KeyBackspace
	default:
		return key.KeyNone
	}
}

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Bold(true)
	styleOn      = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleOff     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleReport  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

func (s *simulator) draw() {
	sc := s.screen
	sc.Clear()

	row := 0
	drawText(sc, 0, row, styleTitle, "keycancel — keys toggle hold · F1 cancellation · F2 recovery · F5 turbo · Esc quit")
	row += 2

	drawText(sc, 0, row, styleDefault, "Cancellation: ")
	drawText(sc, 14, row, onOff(s.engine.Enabled()), label(s.engine.Enabled()))
	drawText(sc, 20, row, styleDefault, "Recovery: ")
	drawText(sc, 30, row, onOff(s.engine.RecoveryEnabled()), label(s.engine.RecoveryEnabled()))
	drawText(sc, 36, row, styleDefault, "Turbo: ")
	drawText(sc, 43, row, onOff(s.turbo.Active()), label(s.turbo.Active()))
	row += 2

	drawText(sc, 0, row, styleDefault, "Rules:   "+ruleList(s.rules))
	row++
	drawText(sc, 0, row, styleDefault, "Held:    "+keyList(heldKeys(s.held)))
	row++
	drawText(sc, 0, row, styleDefault, "Tracked: "+keyList(s.engine.Tracked()))
	row++
	drawText(sc, 0, row, styleDefault, "Report:  ")
	drawText(sc, 9, row, styleReport, keyList(s.report.Keys()))
	row += 2

	drawText(sc, 0, row, styleDefault, "Recent events:")
	row++
	for i := len(s.history) - 1; i >= 0; i-- {
		drawText(sc, 2, row, styleOff, s.history[i])
		row++
	}

	sc.Show()
}

func drawText(sc tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		sc.SetContent(x, y, r, nil, style)
		x++
	}
}

func onOff(v bool) tcell.Style {
	if v {
		return styleOn
	}
	return styleOff
}

func label(v bool) string {
	if v {
		return "ON"
	}
	return "off"
}

func ruleList(rules cancel.Rules) string {
	parts := make([]string, 0, rules.Len())
	for i := 0; i < rules.Len(); i++ {
		r := rules.At(i)
		parts = append(parts, r.Press.String()+"→"+r.Unpress.String())
	}
	return strings.Join(parts, "  ")
}

func keyList(keys []key.Key) string {
	if len(keys) == 0 {
		return "-"
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, " ")
}

func heldKeys(held map[key.Key]bool) []key.Key {
	keys := make([]key.Key, 0, len(held))
	for k := key.KeyNone; k < key.Key(512); k++ {
		if held[k] {
			keys = append(keys, k)
		}
	}
	return keys
}
