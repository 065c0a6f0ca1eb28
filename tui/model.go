package tui

import (
	"io"
	"log"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/marginalia/annotate"
	"github.com/iw2rmb/marginalia/buffer"
	"github.com/iw2rmb/marginalia/dualpane"
	"github.com/iw2rmb/marginalia/layout"
	"github.com/iw2rmb/marginalia/sched"
	"github.com/iw2rmb/marginalia/theme"
)

// Config configures a Model. Zero values select defaults.
type Config struct {
	Text     string
	Messages []buffer.Message

	DualPane    dualpane.Config
	Decorations annotate.Options
	Theme       theme.Theme
	KeyMap      KeyMap

	Logger *log.Logger

	// Width and Height size the model until the first WindowSizeMsg.
	Width, Height int
}

func normalizeConfig(cfg Config) Config {
	if cfg.DualPane == (dualpane.Config{}) {
		cfg.DualPane = dualpane.DefaultConfig()
	}
	if cfg.Theme.Name == "" {
		cfg.Theme = theme.Default()
	}
	if len(cfg.KeyMap.Quit.Keys()) == 0 {
		cfg.KeyMap = DefaultKeyMap()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard, "", 0)
	}
	if cfg.Width <= 0 {
		cfg.Width = 80
	}
	if cfg.Height <= 0 {
		cfg.Height = 24
	}
	return cfg
}

// ReportMsg reports messages from outside the program loop.
type ReportMsg struct {
	Messages []buffer.Message
}

// RetractMsg retracts the messages of a line range.
type RetractMsg struct {
	Lines buffer.LineRange
}

// Model is a Bubble Tea model hosting a primary text pane and its minimap.
type Model struct {
	cfg Config
	log *log.Logger

	buf       *buffer.Buffer
	st        *layout.Storage
	primary   *layout.Engine
	secondary *layout.Engine
	queue     *sched.Queue

	reg       *annotate.Registry
	policy    *annotate.LineFragmentPolicy
	mirror    *annotate.MirrorPolicy
	bridge    *annotate.EditBridge
	highlight *annotate.SelectionHighlight
	sync      *dualpane.Sync

	surface *overlay
	dmg     *damage
	styles  theme.Styles
	pal     *palette

	viewport      viewport.Model
	width, height int

	caret, anchor int
}

func New(cfg Config) Model {
	cfg = normalizeConfig(cfg)
	m := Model{
		cfg:      cfg,
		log:      cfg.Logger,
		buf:      buffer.New(cfg.Text),
		queue:    sched.New(),
		dmg:      &damage{},
		styles:   cfg.Theme.Styles(),
		viewport: viewport.New(0, 0),
	}
	m.pal = newPalette(m.styles)
	m.surface = &overlay{d: m.dmg}
	m.st = layout.NewStorage(m.buf)

	engineOpt := layout.Options{Logger: cfg.Logger}
	m.primary = layout.NewEngine(m.st, CellMetrics.FontAt(1), layout.Container{}, engineOpt)
	m.secondary = layout.NewEngine(m.st, BrailleMetrics.FontAt(0.5), layout.Container{}, engineOpt)
	display := paneDisplay{d: m.dmg}
	m.primary.SetDisplay(display)
	m.secondary.SetDisplay(display)

	opt := cfg.Decorations
	opt.Logger = cfg.Logger
	m.reg = annotate.NewRegistry(m.buf, m.primary, m.queue, m.surface, cfg.Theme, opt)
	m.policy = annotate.NewLineFragmentPolicy(m.reg)
	m.primary.SetDelegate(m.policy)
	m.mirror = annotate.NewMirrorPolicy(m.reg)
	m.secondary.SetDelegate(m.mirror)
	m.reg.AddMirror(m.secondary)

	gutter := paneGutter{d: m.dmg}
	m.reg.AddGutter(gutter)
	m.bridge = annotate.NewEditBridge(m.reg, gutter)
	m.primary.AddObserver(m.bridge)
	m.highlight = annotate.NewSelectionHighlight(m.reg, []annotate.HighlightPane{
		{Engine: m.primary, Targets: []annotate.RectInvalidator{display}},
		{Engine: m.secondary, Targets: []annotate.RectInvalidator{display}},
	}, gutter)

	m.sync = dualpane.New(
		dualpane.Side{Pane: m.primary, Metrics: CellMetrics},
		dualpane.Side{Pane: m.secondary, Metrics: BrailleMetrics},
		m.mirror,
		cfg.DualPane,
	)

	for _, msg := range cfg.Messages {
		m.reg.Report(msg)
	}
	return m.SetSize(cfg.Width, cfg.Height)
}

func (m Model) Buffer() *buffer.Buffer { return m.buf }

func (m Model) Registry() *annotate.Registry { return m.reg }

func (m Model) Sync() *dualpane.Sync { return m.sync }

func (m Model) Queue() *sched.Queue { return m.queue }

func (m Model) Primary() *layout.Engine { return m.primary }

func (m Model) Secondary() *layout.Engine { return m.secondary }

// Caret returns the caret offset.
func (m Model) Caret() int { return m.caret }

// Selection returns the selected range; it is empty for a caret.
func (m Model) Selection() buffer.CharRange {
	lo, hi := m.anchor, m.caret
	if lo > hi {
		lo, hi = hi, lo
	}
	return buffer.CharRange{Location: lo, Length: hi - lo}
}

func (m Model) Init() tea.Cmd { return m.queue.Cmd() }

// SetSize tiles both panes for a terminal of width x height cells. The last
// row holds the status line.
func (m Model) SetSize(width, height int) Model {
	m.width = max(width, 0)
	m.height = max(height, 0)

	t := m.sync.Tile(float64(m.width))
	m.viewport.Width = cellOf(t.PrimaryWidth)
	m.viewport.Height = max(m.height-1, 0)
	m.log.Printf("[TUI] tiled %dx%d: %d columns, primary %v, minimap %v", m.width, m.height, t.Columns, t.PrimaryWidth, t.SecondaryWidth)

	m.refresh()
	return m
}

// refresh brings layout up to date, redraws the primary pane and places
// the minimap.
func (m *Model) refresh() {
	m.primary.EnsureLayout()
	m.secondary.EnsureLayout()
	m.viewport.SetContent(m.renderPrimary())
	m.followCaret()
	m.sync.AdjustScroll(float64(m.viewport.YOffset), float64(m.viewport.Height))
	m.dmg.reset()
}

func (m *Model) followCaret() {
	h := m.viewport.Height
	if h <= 0 {
		return
	}
	y, ok := m.caretRow()
	if !ok {
		return
	}
	switch top := m.viewport.YOffset; {
	case y < top:
		m.viewport.SetYOffset(y)
	case y >= top+h:
		m.viewport.SetYOffset(y - h + 1)
	}
}

// caretRow returns the primary pane row holding the caret.
func (m Model) caretRow() (int, bool) {
	line, ok := m.buf.LineOf(m.caret)
	if !ok {
		return 0, false
	}
	frags, ok := m.primary.Fragments(line)
	if !ok || len(frags) == 0 {
		return 0, false
	}
	f := frags[len(frags)-1]
	for _, fr := range frags {
		if fr.Chars.Contains(m.caret) && m.caret < fr.Chars.End() {
			f = fr
			break
		}
	}
	return cellOf(f.Rect.MinY()), true
}

func (m Model) caretLine() int {
	line, _ := m.buf.LineOf(m.caret)
	return line
}
