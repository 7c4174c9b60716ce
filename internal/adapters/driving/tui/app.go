// Package tui is the interactive terminal frontend. It shows the
// remote activity feed, the local capture log and the unified view of
// both, and doubles as the input source that feeds interactions to the
// capture recorder.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pulsefeed-labs/pulse-cli/internal/adapters/driving/tui/keymap"
	"github.com/pulsefeed-labs/pulse-cli/internal/adapters/driving/tui/messages"
	"github.com/pulsefeed-labs/pulse-cli/internal/adapters/driving/tui/styles"
	"github.com/pulsefeed-labs/pulse-cli/internal/core/domain"
	"github.com/pulsefeed-labs/pulse-cli/internal/core/ports/driven"
	"github.com/pulsefeed-labs/pulse-cli/internal/core/ports/driving"
)

// DefaultExportPath is where the capture log lands when exported from
// the TUI.
const DefaultExportPath = "pulse-capture.json"

// Options configures the TUI session.
type Options struct {
	// Username is the GitHub login whose activity is shown.
	Username string

	// IncludeReceived also fetches events received by the user.
	IncludeReceived bool

	// PerPage is the upstream page size.
	PerPage int

	// Token is the optional bearer credential for upstream calls.
	Token string

	// ExportPath overrides where the capture log is exported.
	ExportPath string
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// feed produces the remote feed and the unified merge.
	feed driving.FeedService

	// recorder is the local capture state machine.
	recorder driving.CaptureRecorder

	// bus is where observed interactions are published.
	bus *Bus

	// opts holds the session configuration.
	opts Options

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keys holds the keybindings.
	keys *keymap.KeyMap

	// tab is the active feed tab.
	tab messages.Tab

	// cursor is the selected row in the active tab.
	cursor int

	// seq is the sequence number of the most recent fetch issued.
	// Results carrying an older sequence are discarded, so a slow
	// response can never overwrite a newer one.
	seq uint64

	// events is the last accepted remote feed snapshot.
	events []domain.NormalizedEvent

	// rate is the metadata from the last accepted fetch.
	rate domain.RateInfo

	// loading reports whether a fetch is in flight.
	loading bool

	// status is a transient message for the status bar.
	status string

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application.
func NewApp(feed driving.FeedService, recorder driving.CaptureRecorder, bus *Bus, opts Options) (*App, error) {
	if feed == nil {
		return nil, fmt.Errorf("creating app: feed service is required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("creating app: capture recorder is required")
	}
	if bus == nil {
		bus = NewBus()
	}
	if opts.PerPage == 0 {
		opts.PerPage = domain.DefaultPerPage
	}
	if opts.ExportPath == "" {
		opts.ExportPath = DefaultExportPath
	}

	return &App{
		feed:     feed,
		recorder: recorder,
		bus:      bus,
		opts:     opts,
		ctx:      context.Background(),
		styles:   styles.DefaultStyles(),
		keys:     keymap.DefaultKeyMap(),
		tab:      messages.TabUnified,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Bus returns the input bus the app publishes interactions on.
func (a *App) Bus() *Bus {
	return a.bus
}

// Init implements tea.Model.
// It starts the first fetch alongside terminal setup.
func (a *App) Init() tea.Cmd {
	a.seq++
	a.loading = true
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("pulse - Activity Feed"),
		a.fetchCmd(a.seq),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.FocusMsg:
		a.bus.Emit(driven.InputEvent{Kind: domain.CaptureVisibility, Label: "focus"})
		return a, nil

	case tea.BlurMsg:
		a.bus.Emit(driven.InputEvent{Kind: domain.CaptureVisibility, Label: "blur"})
		return a, nil

	case messages.FeedLoaded:
		// A stale response must not clobber a newer one.
		if msg.Seq != a.seq {
			return a, nil
		}
		a.loading = false
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.err = nil
		a.events = msg.Events
		a.rate = msg.Rate
		a.clampCursor()
		return a, nil

	case messages.CaptureToggled:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		if msg.Capturing {
			a.status = "capture started"
		} else {
			a.status = "capture stopped"
		}
		return a, nil

	case messages.CaptureExported:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.status = fmt.Sprintf("exported to %s", msg.Path)
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, a.quit()
	}

	return a, nil
}

// handleKey processes one keypress. Every key is also published as a
// key interaction so the recorder sees it while capturing.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	a.bus.Emit(driven.InputEvent{Kind: domain.CaptureKey, Label: keyStr})
	a.status = ""

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, a.quit()

	case key.Matches(msg, a.keys.Refresh):
		a.seq++
		a.loading = true
		return a, a.fetchCmd(a.seq)

	case key.Matches(msg, a.keys.ToggleCapture):
		return a, a.toggleCaptureCmd()

	case key.Matches(msg, a.keys.Export):
		return a, a.exportCmd()

	case key.Matches(msg, a.keys.NextTab):
		a.switchTab((a.tab + 1) % 3)
		return a, nil

	case key.Matches(msg, a.keys.PrevTab):
		a.switchTab((a.tab + 2) % 3)
		return a, nil

	case key.Matches(msg, a.keys.Up):
		a.moveCursor(-1)
		return a, nil

	case key.Matches(msg, a.keys.Down):
		a.moveCursor(1)
		return a, nil

	case key.Matches(msg, a.keys.Open):
		if label := a.selectedLabel(); label != "" {
			a.bus.Emit(driven.InputEvent{Kind: domain.CaptureClick, Label: label})
		}
		return a, nil

	case key.Matches(msg, a.keys.Yank):
		if label := a.selectedLabel(); label != "" {
			a.bus.Emit(driven.InputEvent{Kind: domain.CaptureCopy, Label: label})
		}
		return a, nil
	}

	return a, nil
}

// quit tears down capture before exiting so subscriptions never
// outlive the session.
func (a *App) quit() tea.Cmd {
	if a.recorder.Capturing() {
		if err := a.recorder.Stop(); err != nil {
			a.err = err
		}
	}
	return tea.Quit
}

// switchTab activates tab and publishes a route interaction.
func (a *App) switchTab(tab messages.Tab) {
	if tab == a.tab {
		return
	}
	a.tab = tab
	a.cursor = 0
	a.bus.Emit(driven.InputEvent{Kind: domain.CaptureRoute, Label: tab.String()})
}

// moveCursor shifts the selection by delta and publishes the reached
// scroll depth as a fraction of the active list.
func (a *App) moveCursor(delta int) {
	n := a.rowCount()
	if n == 0 {
		a.cursor = 0
		return
	}

	a.cursor += delta
	if a.cursor < 0 {
		a.cursor = 0
	}
	if a.cursor > n-1 {
		a.cursor = n - 1
	}

	depth := 0.0
	if n > 1 {
		depth = float64(a.cursor) / float64(n-1)
	}
	a.bus.Emit(driven.InputEvent{
		Kind:        domain.CaptureScroll,
		Label:       a.tab.String(),
		ScrollDepth: depth,
	})
}

// clampCursor keeps the selection inside the active list after a
// refresh shrinks it.
func (a *App) clampCursor() {
	if n := a.rowCount(); a.cursor > n-1 {
		a.cursor = 0
	}
}

// fetchCmd fetches the remote feed, tagged with seq for staleness
// checks on arrival.
func (a *App) fetchCmd(seq uint64) tea.Cmd {
	opts := domain.FetchOptions{
		Username:        a.opts.Username,
		IncludeReceived: a.opts.IncludeReceived,
		PerPage:         a.opts.PerPage,
		Token:           a.opts.Token,
	}
	return func() tea.Msg {
		feed, err := a.feed.Fetch(a.ctx, opts)
		if err != nil {
			return messages.FeedLoaded{Seq: seq, Err: err}
		}
		return messages.FeedLoaded{Seq: seq, Events: feed.Events, Rate: feed.Rate}
	}
}

// toggleCaptureCmd flips the capture state machine.
func (a *App) toggleCaptureCmd() tea.Cmd {
	return func() tea.Msg {
		if a.recorder.Capturing() {
			if err := a.recorder.Stop(); err != nil {
				return messages.CaptureToggled{Capturing: true, Err: err}
			}
			return messages.CaptureToggled{Capturing: false}
		}
		if err := a.recorder.Start(a.ctx); err != nil {
			return messages.CaptureToggled{Capturing: false, Err: err}
		}
		return messages.CaptureToggled{Capturing: true}
	}
}

// exportCmd writes the capture log to the configured export path.
func (a *App) exportCmd() tea.Cmd {
	path := a.opts.ExportPath
	return func() tea.Msg {
		data, err := a.recorder.Export()
		if err != nil {
			return messages.CaptureExported{Err: err}
		}
		if err := os.WriteFile(path, data, 0600); err != nil {
			return messages.CaptureExported{Err: err}
		}
		return messages.CaptureExported{Path: path}
	}
}

// rowCount returns the number of rows in the active tab.
func (a *App) rowCount() int {
	switch a.tab {
	case messages.TabRemote:
		return len(a.events)
	case messages.TabLocal:
		return len(a.recorder.Events())
	default:
		return len(a.events) + len(a.recorder.Events())
	}
}

// selectedLabel returns the display text of the selected row.
func (a *App) selectedLabel() string {
	rows := a.rows()
	if a.cursor < 0 || a.cursor >= len(rows) {
		return ""
	}
	return rows[a.cursor].label
}

// row is one renderable feed line.
type row struct {
	source domain.ItemSource
	label  string
	when   string
}

// rows materialises the active tab's list, newest first.
func (a *App) rows() []row {
	switch a.tab {
	case messages.TabRemote:
		out := make([]row, 0, len(a.events))
		for _, ev := range a.events {
			out = append(out, remoteRow(ev))
		}
		return out

	case messages.TabLocal:
		local := a.recorder.Events()
		out := make([]row, 0, len(local))
		for _, ev := range local {
			out = append(out, localRow(ev))
		}
		return out

	default:
		items := a.feed.Unified(a.events, a.recorder.Events())
		out := make([]row, 0, len(items))
		for _, it := range items {
			if it.Remote != nil {
				out = append(out, remoteRow(*it.Remote))
			} else if it.Local != nil {
				out = append(out, localRow(*it.Local))
			}
		}
		return out
	}
}

func remoteRow(ev domain.NormalizedEvent) row {
	return row{
		source: domain.SourceRemote,
		label:  ev.ActionText,
		when:   ev.CreatedAt.Format("Jan 02 15:04"),
	}
}

func localRow(ev domain.CaptureEvent) row {
	label := string(ev.Kind)
	if ev.Label != "" {
		label = fmt.Sprintf("%s %s", ev.Kind, ev.Label)
	}
	return row{
		source: domain.SourceLocal,
		label:  label,
		when:   ev.CreatedAt.Format("Jan 02 15:04"),
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(a.viewTabs())
	b.WriteString("\n\n")
	b.WriteString(a.viewList())
	b.WriteString("\n")
	b.WriteString(a.viewStatus())
	return b.String()
}

// viewTabs renders the tab header.
func (a *App) viewTabs() string {
	tabs := make([]string, 0, 3)
	for _, t := range []messages.Tab{messages.TabUnified, messages.TabRemote, messages.TabLocal} {
		style := a.styles.Tab
		if t == a.tab {
			style = a.styles.ActiveTab
		}
		tabs = append(tabs, style.Render(t.String()))
	}
	title := a.styles.Title.Render("pulse")
	return title + "  " + strings.Join(tabs, " ")
}

// viewList renders the visible window of the active tab.
func (a *App) viewList() string {
	rows := a.rows()
	if len(rows) == 0 {
		if a.loading {
			return a.styles.Muted.Render("  fetching...")
		}
		return a.styles.Muted.Render("  nothing here yet")
	}

	visible := a.height - 5
	if visible < 1 {
		visible = len(rows)
	}
	start := 0
	if a.cursor >= visible {
		start = a.cursor - visible + 1
	}
	end := start + visible
	if end > len(rows) {
		end = len(rows)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		r := rows[i]

		tag := a.styles.Remote.Render(string(domain.SourceRemote))
		if r.source == domain.SourceLocal {
			tag = a.styles.Local.Render(string(domain.SourceLocal))
		}

		line := fmt.Sprintf("  %s  %s  %s",
			a.styles.Muted.Render(r.when), tag, r.label)
		if i == a.cursor {
			line = a.styles.Selected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// viewStatus renders the bottom status bar.
func (a *App) viewStatus() string {
	parts := make([]string, 0, 4)

	if a.recorder.Capturing() {
		parts = append(parts, a.styles.Recording.Render("● rec"))
	}
	if a.loading {
		parts = append(parts, "fetching...")
	}
	if a.rate.Remaining != nil && a.rate.Limit != nil {
		parts = append(parts, fmt.Sprintf("rate %d/%d", *a.rate.Remaining, *a.rate.Limit))
	}
	if a.err != nil {
		parts = append(parts, a.styles.Error.Render(a.err.Error()))
	} else if a.status != "" {
		parts = append(parts, a.status)
	}

	help := make([]string, 0, 4)
	for _, binding := range a.keys.ShortHelp() {
		h := binding.Help()
		help = append(help, fmt.Sprintf("%s %s", h.Key, h.Desc))
	}
	parts = append(parts, a.styles.Help.Render(strings.Join(help, " · ")))

	return a.styles.StatusBar.Render(strings.Join(parts, "  "))
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithReportFocus())
	_, err := p.Run()
	return err
}

// CurrentTab returns the active tab.
func (a *App) CurrentTab() messages.Tab {
	return a.tab
}

// Cursor returns the selected row index.
func (a *App) Cursor() int {
	return a.cursor
}

// Events returns the last accepted remote feed snapshot.
func (a *App) Events() []domain.NormalizedEvent {
	return a.events
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
}
