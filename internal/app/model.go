package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/jwulff/strata/internal/catalog"
	"github.com/jwulff/strata/internal/config"
	"github.com/jwulff/strata/internal/feed"
	"github.com/jwulff/strata/internal/log"
	"github.com/jwulff/strata/internal/motion"
	"github.com/jwulff/strata/internal/timeline"

	tea "github.com/charmbracelet/bubbletea"
)

const maxHistoryEntries = 50

// HistoryEntry is one notification shown in the recent list.
type HistoryEntry struct {
	Kind string // "period", "event", "motion", "catalog"
	Time float64
	Text string
}

// history collects notifications fired from inside State and Controller
// callbacks. It is shared by pointer across Model copies.
type history struct {
	entries  []HistoryEntry
	finished int
}

func (h *history) add(e HistoryEntry) {
	h.entries = append(h.entries, e)
	if len(h.entries) > maxHistoryEntries {
		h.entries = h.entries[len(h.entries)-maxHistoryEntries:]
	}
}

// Model is the root bubbletea model for the timeline TUI.
type Model struct {
	state *timeline.State
	ctl   *motion.Controller
	pub   *feed.Publisher
	hist  *history
	keys  KeyMap

	catalogPath   string
	frameInterval time.Duration
	barMargin     int
	extraMotion   []motion.Option

	// UI state
	width  int
	height int
	loaded bool

	statusText     string
	errorMessage   string
	errorTransient bool
}

// Option configures a Model.
type Option func(*Model)

// WithPublisher mirrors notifications onto a feed.
func WithPublisher(p *feed.Publisher) Option {
	return func(m *Model) { m.pub = p }
}

// WithMotionOptions adds controller options, e.g. a fake clock in tests.
func WithMotionOptions(opts ...motion.Option) Option {
	return func(m *Model) { m.extraMotion = append(m.extraMotion, opts...) }
}

// New creates a Model from cfg. The catalog is loaded by Init.
func New(cfg *config.Config, opts ...Option) (Model, error) {
	m := Model{
		state:         timeline.New(),
		hist:          &history{},
		keys:          DefaultKeyMap(),
		catalogPath:   cfg.Catalog,
		frameInterval: cfg.FrameInterval(),
		barMargin:     cfg.BarMargin,
		statusText:    "Loading catalog...",
	}
	for _, opt := range opts {
		opt(&m)
	}

	motionOpts, err := cfg.MotionOptions()
	if err != nil {
		return Model{}, err
	}

	state, hist, pub := m.state, m.hist, m.pub
	var ctl *motion.Controller
	motionOpts = append(motionOpts,
		motion.OnValue(state.SetCurrentTime),
		motion.OnFinished(func() {
			hist.finished++
			hist.add(HistoryEntry{Kind: "motion", Time: ctl.Value(), Text: "Indicator stopped at " + formatTime(ctl.Value())})
			log.Infow("motion finished", "value", ctl.Value())
			if pub != nil {
				pub.MotionFinished(ctl.Value())
			}
		}),
	)
	motionOpts = append(motionOpts, m.extraMotion...)
	ctl = motion.New(motionOpts...)
	m.ctl = ctl
	m.extraMotion = nil

	state.AddListener(timeline.ListenerFuncs{
		OnPeriodChanged: func(i int) {
			p, _ := state.Period(i)
			hist.add(HistoryEntry{Kind: "period", Time: p.Begin, Text: "Entered " + p.Name})
			log.Infow("period changed", "index", i, "name", p.Name)
		},
		OnEventReached: func(i int) {
			e, _ := state.Event(i)
			hist.add(HistoryEntry{Kind: "event", Time: e.Time, Text: e.Title})
			log.Infow("event reached", "index", i, "title", e.Title, "time", e.Time)
		},
	})
	if pub != nil {
		pub.Bind(state)
	}

	return m, nil
}

// Init loads the catalog.
func (m Model) Init() tea.Cmd {
	return loadCatalogCmd(m.catalogPath)
}

// loadCatalogCmd reads the configured catalog.
func loadCatalogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		c, err := catalog.Load(path)
		if err != nil {
			return CatalogErrorMsg{Err: err}
		}
		return CatalogLoadedMsg{Catalog: c, Source: sourceName(path)}
	}
}

func sourceName(path string) string {
	if path == "" {
		return "built-in catalog"
	}
	return filepath.Base(path)
}

// motionTickCmd schedules the next indicator frame.
func motionTickCmd(gen uint64, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return MotionTickMsg{Generation: gen, At: t}
	})
}

// clearTransientErrorCmd fires after a delay to clear transient errors.
func clearTransientErrorCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return ClearTransientErrorMsg{}
	})
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case CatalogLoadedMsg:
		return m.attach(msg)

	case CatalogErrorMsg:
		log.Errorw("catalog load failed", "error", msg.Err)
		m.errorMessage = msg.Err.Error()
		if m.loaded {
			// Keep showing the previous snapshot.
			m.errorTransient = true
			return m, clearTransientErrorCmd()
		}
		m.statusText = "No catalog"
		return m, nil

	case MotionTickMsg:
		if msg.Generation != m.ctl.Generation() || !m.ctl.Running() {
			return m, nil
		}
		m.ctl.Tick(msg.At)
		if m.ctl.Running() {
			return m, motionTickCmd(m.ctl.Generation(), m.frameInterval)
		}
		return m, nil

	case ClearTransientErrorMsg:
		if m.errorTransient {
			m.errorMessage = ""
			m.errorTransient = false
		}
		return m, nil
	}

	return m, nil
}

// attach swaps in a new catalog and rewinds the indicator.
func (m Model) attach(msg CatalogLoadedMsg) (tea.Model, tea.Cmd) {
	c := msg.Catalog
	if err := c.Attach(m.state); err != nil {
		return m.Update(CatalogErrorMsg{Err: fmt.Errorf("attach %s: %w", msg.Source, err)})
	}

	m.ctl.Stop()
	if err := m.ctl.SetHistory(m.state.HistoryBegin(), m.state.HistoryLength()); err != nil {
		return m.Update(CatalogErrorMsg{Err: err})
	}
	m.ctl.SetValue(m.state.CurrentTime())

	m.loaded = true
	if !m.errorTransient {
		m.errorMessage = ""
	}
	m.statusText = fmt.Sprintf("%d periods, %d events from %s", len(c.Periods), len(c.Events), msg.Source)
	m.hist.add(HistoryEntry{Kind: "catalog", Time: m.state.CurrentTime(), Text: "Loaded " + msg.Source})
	log.Infow("catalog attached", "source", msg.Source, "periods", len(c.Periods), "events", len(c.Events))
	if m.pub != nil {
		m.pub.CatalogLoaded(len(c.Periods), len(c.Events))
	}
	return m, nil
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctl.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.ToStart):
		if !m.loaded {
			return m, nil
		}
		return m, m.startMotion(m.ctl.MoveToStart())

	case key.Matches(msg, m.keys.ToEnd):
		if !m.loaded {
			return m, nil
		}
		return m, m.startMotion(m.ctl.MoveToEnd())

	case key.Matches(msg, m.keys.Stop):
		if m.ctl.Running() {
			m.ctl.Stop()
			log.Debugw("motion stopped", "value", m.ctl.Value())
		}
		return m, nil

	case key.Matches(msg, m.keys.StepBack):
		if m.loaded {
			m.seek(m.state.CurrentTime() - m.state.Tolerance())
		}
		return m, nil

	case key.Matches(msg, m.keys.StepForward):
		if m.loaded {
			m.seek(m.state.CurrentTime() + m.state.Tolerance())
		}
		return m, nil

	case key.Matches(msg, m.keys.Rewind):
		if m.loaded {
			m.seek(m.state.HistoryBegin())
		}
		return m, nil

	case key.Matches(msg, m.keys.FastForward):
		if m.loaded {
			m.seek(m.state.HistoryLength())
		}
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		m.statusText = "Reloading catalog..."
		return m, loadCatalogCmd(m.catalogPath)
	}

	return m, nil
}

// startMotion schedules ticks for a motion that just started. Repeated
// presses in the same direction are no-ops and schedule nothing.
func (m Model) startMotion(started bool) tea.Cmd {
	if !started {
		return nil
	}
	log.Debugw("motion started", "direction", m.ctl.Direction().String(), "target", m.ctl.Target(), "duration", m.ctl.Duration())
	if m.pub != nil {
		m.pub.MotionStarted(m.ctl.Direction(), m.ctl.Target())
	}
	return motionTickCmd(m.ctl.Generation(), m.frameInterval)
}

// seek jumps the indicator to t, cancelling any motion.
func (m Model) seek(t float64) {
	m.ctl.Stop()
	m.state.SetCurrentTime(t)
	m.ctl.SetValue(t)
}

// State exposes the timeline for callers that render or inspect it.
func (m Model) State() *timeline.State { return m.state }

// Controller exposes the indicator motion controller.
func (m Model) Controller() *motion.Controller { return m.ctl }
