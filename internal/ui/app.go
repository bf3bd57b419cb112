package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/five82/foodbites/internal/api"
	"github.com/five82/foodbites/internal/assets"
	"github.com/five82/foodbites/internal/cart"
	"github.com/five82/foodbites/internal/prefs"
	"github.com/five82/foodbites/internal/route"
	"github.com/five82/foodbites/internal/session"
	"github.com/five82/foodbites/internal/state"
	"github.com/five82/foodbites/internal/storefront"
)

// SessionStore is the credential surface the shell needs.
type SessionStore interface {
	SignedIn() bool
	Set(token string) error
	Clear() error
	Claims() (session.Claims, error)
	Subscribe() (<-chan session.Event, func())
}

// CartStore is the local cart the shell reads and edits.
type CartStore interface {
	storefront.CartWriter
	Items(ctx context.Context) ([]cart.Item, error)
	Total(ctx context.Context) (float64, error)
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// Refresher asks the account poller for an immediate refresh.
type Refresher interface {
	Kick()
}

// Options configures the UI.
type Options struct {
	Context    context.Context
	Backend    api.Backend
	Store      *state.Store
	Session    SessionStore
	Cart       CartStore
	Poller     Refresher
	Catalog    *assets.Catalog
	Timings    storefront.Timings
	Scheduler  storefront.Scheduler
	PollTick   time.Duration // negative disables the snapshot tick
	ThemeName  string
	SearchType string
	PrefsPath  string
	LogPath    string
	Logger     zerolog.Logger
	Start      route.Location
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx         context.Context
	store       *state.Store
	session     SessionStore
	cart        CartStore
	poller      Refresher
	log         zerolog.Logger
	prefsPath   string
	logPath     string
	pollTick    time.Duration
	events      <-chan session.Event
	unsubscribe func()
	initCmd     tea.Cmd

	// UI state
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool
	navOpen  bool
	modal    Modal

	// Storefront
	history *route.History
	menu    *storefront.Menu
	dash    *storefront.Dashboard
	notices *storefront.Notices

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time

	// Per-screen state
	foods    foodsState
	home     homeState
	basket   cartState
	orders   ordersState
	login    loginState
	activity activityState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themeOrder[0]
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	sched := opts.Scheduler
	if sched == nil {
		sched = storefront.TeaScheduler{}
	}
	notices := storefront.NewNotices(sched, opts.Timings.NoticeTTL)

	// A nil Backend must stay a nil interface for the storefront's
	// "not configured" checks.
	var (
		menuSource   storefront.MenuSource
		searchSource storefront.SearchSource
	)
	if opts.Backend != nil {
		menuSource = opts.Backend
		searchSource = opts.Backend
	}
	var cartWriter storefront.CartWriter
	if opts.Cart != nil {
		cartWriter = opts.Cart
	}

	menu := storefront.NewMenu(storefront.MenuDeps{
		Context:   ctx,
		Source:    menuSource,
		Cart:      cartWriter,
		Catalog:   opts.Catalog,
		Scheduler: sched,
		Notices:   notices,
		Timings:   opts.Timings,
		Logger:    opts.Logger,
	})
	dash := storefront.NewDashboard(storefront.DashboardDeps{
		Context: ctx,
		Source:  searchSource,
		Catalog: opts.Catalog,
		Logger:  opts.Logger,
	})
	dash.SetSearch("", opts.SearchType)

	start := opts.Start
	if !route.Known(start.Path) {
		start = route.New(route.Home)
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		session:   opts.Session,
		cart:      opts.Cart,
		poller:    opts.Poller,
		log:       opts.Logger,
		prefsPath: prefsPath,
		logPath:   opts.LogPath,
		pollTick:  pollTick,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
		theme:     GetTheme(themeName),
		history:   route.NewHistory(start),
		menu:      menu,
		dash:      dash,
		notices:   notices,
		foods:     newFoodsState(),
		home:      newHomeState(),
		login:     newLoginState(),
		activity:  newActivityState(),
	}
	if opts.Session != nil {
		m.events, m.unsubscribe = opts.Session.Subscribe()
	}
	m.initCmd = m.enter(route.Location{}, start)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
		fetchSnapshotCmd(m.store),
		loadCartCmd(m.ctx, m.cart),
		waitForSessionEvent(m.events),
		m.spinner.Tick,
		m.initCmd,
	)
}

// Close releases the session subscription.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.resizeActivity()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		return m, nil

	case cartLoadedMsg:
		m.basket.apply(msg)
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("load cart failed")
		}
		return m, nil

	case cartMutatedMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Str("action", msg.action).Msg("cart update failed")
			return m, m.notices.Push(storefront.NoticeError, "Failed to update cart")
		}
		return m, loadCartCmd(m.ctx, m.cart)

	case sessionExpiredMsg:
		return m.handleSessionExpired(msg)

	case signOutMsg:
		return m.handleSignOut()

	case logLinesMsg:
		m.applyLogLines(msg)
		return m, nil

	case storefront.LocationMsg:
		cmd := m.navigate(msg.Loc, msg.Replace)
		return m, cmd

	case storefront.CartChangedMsg:
		return m, loadCartCmd(m.ctx, m.cart)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.notices.Handle(msg) {
		return m, nil
	}
	cmd := tea.Batch(m.menu.Update(msg), m.dash.Update(msg))
	m.followScrollTarget()
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		next, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = next
		}
		return m, cmd
	}

	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.inputFocused() {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ToggleMenu):
		m.navOpen = !m.navOpen
		return m, nil

	case key.Matches(msg, m.keys.Back):
		prev := m.history.Current()
		if loc, ok := m.history.Back(); ok {
			cmd := m.enter(prev, loc)
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.SignOut):
		if m.session == nil || !m.session.SignedIn() {
			return m, nil
		}
		m.modal = newConfirmModal("Sign out?", "The stored token will be removed from this machine.",
			func() tea.Msg { return signOutMsg{} })
		return m, nil
	}

	if path, ok := m.routeForKey(msg); ok {
		cmd := m.navigate(route.New(path), false)
		return m, cmd
	}

	switch m.history.Current().Path {
	case route.Home:
		return m.handleHomeKey(msg)
	case route.Foods:
		return m.handleFoodsKey(msg)
	case route.Cart:
		return m.handleCartKey(msg)
	case route.Orders:
		return m.handleOrdersKey(msg)
	case route.Login:
		return m.handleLoginKey(msg)
	case route.Activity:
		return m.handleActivityKey(msg)
	}
	return m, nil
}

// routeForKey maps the route shortcuts to their paths.
func (m Model) routeForKey(msg tea.KeyMsg) (string, bool) {
	switch {
	case key.Matches(msg, m.keys.GoHome):
		return route.Home, true
	case key.Matches(msg, m.keys.GoFoods):
		return route.Foods, true
	case key.Matches(msg, m.keys.GoCart):
		return route.Cart, true
	case key.Matches(msg, m.keys.GoOrders):
		return route.Orders, true
	case key.Matches(msg, m.keys.GoProfile):
		return route.Profile, true
	case key.Matches(msg, m.keys.GoActivity):
		return route.Activity, true
	case key.Matches(msg, m.keys.GoLogin):
		return route.Login, true
	}
	return "", false
}

// inputFocused reports whether the current screen's text input has focus.
func (m Model) inputFocused() bool {
	switch m.history.Current().Path {
	case route.Home:
		return m.home.input.Focused()
	case route.Foods:
		return m.foods.input.Focused()
	case route.Login:
		return m.login.input.Focused()
	}
	return false
}

// handleInputKey routes keys to the focused input.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.history.Current().Path {
	case route.Home:
		return m.handleHomeInput(msg)
	case route.Foods:
		return m.handleFoodsInput(msg)
	case route.Login:
		return m.handleLoginInput(msg)
	}
	return m, nil
}

// navigate moves to loc, pushing a history entry or replacing the current
// one.
func (m *Model) navigate(loc route.Location, replace bool) tea.Cmd {
	prev := m.history.Current()
	if replace {
		m.history.Replace(loc)
	} else {
		m.history.Push(loc)
	}
	return m.enter(prev, loc)
}

// enter prepares the screen at loc. Inputs keep their focus when only the
// query changed, as during a debounced search.
func (m *Model) enter(prev, loc route.Location) tea.Cmd {
	if prev.Path != loc.Path {
		m.navOpen = false
		m.home.input.Blur()
		m.foods.input.Blur()
		m.login.input.Blur()
	}
	if prev.Path == route.Foods && loc.Path != route.Foods {
		m.menu.Leave()
	}

	switch loc.Path {
	case route.Foods:
		cmd := m.menu.Navigate(loc)
		if !m.foods.input.Focused() {
			m.foods.input.SetValue(m.menu.Draft())
		}
		return cmd
	case route.Cart:
		return loadCartCmd(m.ctx, m.cart)
	case route.Orders, route.Profile:
		return fetchSnapshotCmd(m.store)
	case route.Login:
		m.login.input.SetValue("")
		if m.session == nil || !m.session.SignedIn() {
			return m.login.input.Focus()
		}
	case route.Activity:
		m.activity.follow = true
		return readLogCmd(m.logPath)
	}
	return nil
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{fetchSnapshotCmd(m.store)}
	if m.history.Current().Path == route.Activity && m.activity.follow {
		cmds = append(cmds, readLogCmd(m.logPath))
	}
	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// handleSessionExpired routes to the login screen once per expiry.
func (m Model) handleSessionExpired(msg sessionExpiredMsg) (tea.Model, tea.Cmd) {
	m.log.Info().Str("reason", msg.Reason).Msg("session invalidated, redirecting to login")
	if m.store != nil {
		m.store.Reset()
	}
	m.snapshot = state.Snapshot{}
	m.login.reason = msg.Reason

	cmds := []tea.Cmd{waitForSessionEvent(m.events)}
	if m.history.Current().Path != route.Login {
		cmds = append(cmds,
			m.notices.Push(storefront.NoticeError, msgSessionExpired),
			m.navigate(route.New(route.Login), false),
		)
	}
	return m, tea.Batch(cmds...)
}

// handleSignOut forgets the token and the account data.
func (m Model) handleSignOut() (tea.Model, tea.Cmd) {
	if m.session != nil {
		if err := m.session.Clear(); err != nil {
			m.log.Warn().Err(err).Msg("clear token failed")
			return m, m.notices.Push(storefront.NoticeError, "Failed to sign out")
		}
	}
	if m.store != nil {
		m.store.Reset()
	}
	m.snapshot = state.Snapshot{}
	if m.poller != nil {
		m.poller.Kick()
	}
	m.log.Info().Msg("signed out")
	return m, m.notices.Push(storefront.NoticeInfo, "Signed out")
}

// savePrefs persists the theme and search type.
func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, SearchType: m.dash.Kind()}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.log.Warn().Err(err).Msg("save prefs failed")
	}
}

// contentHeight is the room left for the active screen.
func (m Model) contentHeight() int {
	h := m.height - navRows - footerRows
	if m.compact() && m.navOpen {
		h -= len(navLinks)
	}
	return max(h, 3)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderNav())
	b.WriteString("\n")
	if m.compact() && m.navOpen {
		b.WriteString(m.renderNavMenu())
		b.WriteString("\n")
	}
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return overlayRight(b.String(), m.renderToasts(), m.width, footerRows)
}

// renderContent renders the active screen.
func (m Model) renderContent() string {
	switch m.history.Current().Path {
	case route.Foods:
		return m.renderFoods()
	case route.Cart:
		return m.renderCart()
	case route.Orders:
		return m.renderOrders()
	case route.Profile:
		return m.renderProfile()
	case route.Login:
		return m.renderLogin()
	case route.Activity:
		return m.renderActivity()
	default:
		return m.renderHome()
	}
}

// renderFooter shows short help on the left and freshness on the right.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	right := ""
	switch {
	case m.snapshot.IsOffline():
		right = bg.Render("backend unreachable", styles.DangerText)
	case !m.lastUpdated.IsZero():
		right = bg.Render("updated "+m.lastUpdated.Format("15:04:05"), styles.FaintText)
	}
	m.help.Width = max(m.width-len("backend unreachable")-4, 0)
	left := m.help.View(m.keys)

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return styles.Footer.Width(m.width).Render(left + bg.Spaces(gap) + right)
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type cartLoadedMsg struct {
	items []cart.Item
	total float64
	err   error
}

type cartMutatedMsg struct {
	action string
	err    error
}

type sessionExpiredMsg session.Event

type signOutMsg struct{}

type logLinesMsg struct {
	lines []string
	err   error
}

const msgSessionExpired = "Session expired. Please sign in again."

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	if d < 0 {
		return nil
	}
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func loadCartCmd(ctx context.Context, store CartStore) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		items, err := store.Items(ctx)
		if err != nil {
			return cartLoadedMsg{err: err}
		}
		total, err := store.Total(ctx)
		return cartLoadedMsg{items: items, total: total, err: err}
	}
}

// waitForSessionEvent blocks until the session store announces that the
// backend rejected the token. A closed channel ends the wait.
func waitForSessionEvent(events <-chan session.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return sessionExpiredMsg(ev)
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	defer m.Close()

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
