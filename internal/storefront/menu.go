package storefront

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/foodbites/internal/api"
	"github.com/five82/foodbites/internal/assets"
	"github.com/five82/foodbites/internal/cart"
	"github.com/five82/foodbites/internal/metrics"
	"github.com/five82/foodbites/internal/route"
)

// User-facing messages.
const (
	MsgMenuFailed     = "Failed to load menu"
	MsgAddFailed      = "Failed to add item to cart"
	MsgNoItems        = "No items found. Try a different search."
	MsgAccountFailed  = "Failed to load profile data"
	MsgSearchFailed   = "Failed to fetch search results"
	addedNoticeFormat = "%s added to cart!"
)

// MenuSource is the backend surface the menu needs.
type MenuSource interface {
	FetchFoods(ctx context.Context, query api.FoodQuery) ([]api.Food, error)
	ImageURL(path string) string
}

// CartWriter commits items to the cart.
type CartWriter interface {
	Add(ctx context.Context, item cart.Item) error
}

// Point is a screen cell.
type Point struct {
	X, Y int
}

// Flight describes the fly-to-cart trail for one add.
type Flight struct {
	ItemID string
	Emoji  string
	From   Point
	To     Point
}

// LocationMsg asks the shell to move to Loc. Replace overwrites the current
// history entry instead of pushing a new one.
type LocationMsg struct {
	Loc     route.Location
	Replace bool
}

// CartChangedMsg is emitted after an item was committed to the cart.
type CartChangedMsg struct{}

type menuFetchedMsg struct {
	gen   int
	foods []api.Food
	err   error
}

type menuRevealMsg struct {
	gen   int
	items []FoodView
}

type menuScrollMsg struct {
	gen int
	id  string
}

type cartCommitMsg struct {
	seq  int
	item FoodView
}

type cartCommittedMsg struct {
	seq  int
	item FoodView
	err  error
}

type flightClearMsg struct{ seq int }

// MenuDeps wires a Menu.
type MenuDeps struct {
	Context   context.Context
	Source    MenuSource
	Cart      CartWriter
	Catalog   *assets.Catalog
	Scheduler Scheduler
	Notices   *Notices
	Timings   Timings
	Logger    zerolog.Logger
}

// Menu is the foods screen controller: it fetches for the current location,
// reveals results after a short delay, highlights an exact name match, runs
// the add-to-cart choreography, and derives the visible list on demand.
type Menu struct {
	ctx     context.Context
	source  MenuSource
	cart    CartWriter
	catalog *assets.Catalog
	sched   Scheduler
	notices *Notices
	timings Timings
	log     zerolog.Logger

	location    route.Location
	search      SearchSync
	away        bool
	started     bool
	gen         int
	items       []FoodView
	loading     bool
	initialLoad bool
	highlighted string
	scrollTo    string

	flightSeq int
	loadingID string
	flight    *Flight
}

// NewMenu builds a Menu. No fetch happens until Navigate.
func NewMenu(deps MenuDeps) *Menu {
	ctx := deps.Context
	if ctx == nil {
		ctx = context.Background()
	}
	sched := deps.Scheduler
	if sched == nil {
		sched = TeaScheduler{}
	}
	timings := deps.Timings.withDefaults()
	notices := deps.Notices
	if notices == nil {
		notices = NewNotices(sched, timings.NoticeTTL)
	}
	return &Menu{
		ctx:         ctx,
		source:      deps.Source,
		cart:        deps.Cart,
		catalog:     deps.Catalog,
		sched:       sched,
		notices:     notices,
		timings:     timings,
		log:         deps.Logger,
		location:    route.New(route.Foods),
		search:      NewSearchSync(route.New(route.Foods), sched, timings.Debounce),
		initialLoad: true,
	}
}

// Navigate points the menu at loc. A fetch starts whenever the query portion
// differs from the last one fetched.
func (m *Menu) Navigate(loc route.Location) tea.Cmd {
	m.away = false
	if loc.Get(route.ParamSearch) != m.search.Draft() && !m.search.Pending() {
		m.search.Adopt(loc)
	}
	if m.started && loc.QueryString() == m.location.QueryString() {
		m.location = loc
		return nil
	}
	m.started = true
	m.location = loc
	return m.fetch()
}

// Leave is called when the shell moves off the foods screen. A pending
// search write is dropped so it cannot replace another screen's entry.
func (m *Menu) Leave() {
	m.away = true
	m.search.Cancel()
}

// Refresh re-fetches the current location.
func (m *Menu) Refresh() tea.Cmd {
	m.started = true
	return m.fetch()
}

func (m *Menu) fetch() tea.Cmd {
	m.gen++
	m.loading = true
	gen := m.gen
	query := api.FoodQuery{
		Cuisine: m.location.Get(route.ParamCuisine),
		Search:  m.location.Get(route.ParamSearch),
	}
	ctx, source, timeout := m.ctx, m.source, m.timings.FetchTimeout
	m.log.Debug().Int("gen", gen).Str("cuisine", query.Cuisine).Str("search", query.Search).Msg("fetching menu")
	return func() tea.Msg {
		if source == nil {
			return menuFetchedMsg{gen: gen, err: fmt.Errorf("menu source not configured")}
		}
		fetchCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		foods, err := source.FetchFoods(fetchCtx, query)
		return menuFetchedMsg{gen: gen, foods: foods, err: err}
	}
}

// Edit updates the search draft and schedules the debounced location write.
func (m *Menu) Edit(text string) tea.Cmd {
	return m.search.Edit(text)
}

// SelectCuisine moves to the same location with cuisine set, or cleared when
// empty.
func (m *Menu) SelectCuisine(cuisine string) tea.Cmd {
	loc := m.location.With(route.ParamCuisine, cuisine)
	return func() tea.Msg { return LocationMsg{Loc: loc} }
}

// NextCuisine returns the cuisine after the current one in Cuisines, cycling
// through "" (all).
func (m *Menu) NextCuisine() string {
	options := append([]string{""}, m.Cuisines()...)
	current := strings.ToLower(m.location.Get(route.ParamCuisine))
	for i, c := range options {
		if strings.ToLower(c) == current {
			return options[(i+1)%len(options)]
		}
	}
	return ""
}

// AddToCart starts the add choreography for item. from and to are the
// item's cell and the cart badge's cell for the trail. A second add of the
// item already in flight is ignored.
func (m *Menu) AddToCart(item FoodView, from, to Point) tea.Cmd {
	if item.ID != "" && item.ID == m.loadingID {
		return nil
	}
	m.flightSeq++
	m.loadingID = item.ID
	m.flight = &Flight{ItemID: item.ID, Emoji: item.Emoji, From: from, To: to}
	return m.sched.After(m.timings.AddLatency, cartCommitMsg{seq: m.flightSeq, item: item})
}

// Update handles the menu's own messages and ignores the rest.
func (m *Menu) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case searchSettleMsg:
		loc, ok := m.search.Settle(msg, m.location)
		if !ok || m.away {
			return nil
		}
		return func() tea.Msg { return LocationMsg{Loc: loc, Replace: true} }

	case menuFetchedMsg:
		if msg.gen != m.gen {
			m.log.Debug().Int("gen", msg.gen).Int("current", m.gen).Msg("dropping stale menu response")
			return nil
		}
		if msg.err != nil {
			m.loading = false
			m.initialLoad = false
			m.log.Warn().Err(msg.err).Msg("menu fetch failed")
			return m.notices.Push(NoticeError, api.MessageOf(msg.err, MsgMenuFailed))
		}
		views := Project(msg.foods, m.source, m.catalog)
		return m.sched.After(m.timings.Reveal, menuRevealMsg{gen: msg.gen, items: views})

	case menuRevealMsg:
		if msg.gen != m.gen {
			return nil
		}
		m.items = msg.items
		m.loading = false
		m.initialLoad = false
		m.scrollTo = ""
		id, ok := ExactMatch(m.items, m.location.Get(route.ParamSearch))
		if !ok {
			m.highlighted = ""
			return nil
		}
		m.highlighted = id
		return m.sched.After(m.timings.Scroll, menuScrollMsg{gen: msg.gen, id: id})

	case menuScrollMsg:
		if msg.gen == m.gen && msg.id == m.highlighted {
			m.scrollTo = msg.id
		}
		return nil

	case cartCommitMsg:
		ctx, writer, item, seq := m.ctx, m.cart, msg.item, msg.seq
		return func() tea.Msg {
			if writer == nil {
				return cartCommittedMsg{seq: seq, item: item, err: fmt.Errorf("cart not configured")}
			}
			err := writer.Add(ctx, cart.Item{
				FoodID:   item.ID,
				Name:     item.Name,
				Price:    item.Price,
				Emoji:    item.Emoji,
				Image:    item.Image,
				Quantity: 1,
			})
			return cartCommittedMsg{seq: seq, item: item, err: err}
		}

	case cartCommittedMsg:
		metrics.RecordCartAdd(msg.err == nil)
		clearCmd := m.sched.After(m.timings.FlightClear, flightClearMsg{seq: msg.seq})
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Str("food_id", msg.item.ID).Msg("add to cart failed")
			return tea.Batch(m.notices.Push(NoticeError, MsgAddFailed), clearCmd)
		}
		m.log.Info().Str("food_id", msg.item.ID).Str("name", msg.item.Name).Msg("added to cart")
		return tea.Batch(
			m.notices.Push(NoticeSuccess, fmt.Sprintf(addedNoticeFormat, msg.item.Name)),
			clearCmd,
			func() tea.Msg { return CartChangedMsg{} },
		)

	case flightClearMsg:
		if msg.seq == m.flightSeq {
			m.loadingID = ""
			m.flight = nil
		}
		return nil
	}
	return nil
}

// Visible derives the list to show from the fetched items, the live draft
// and the location's cuisine.
func (m *Menu) Visible() []FoodView {
	return Derive(m.items, m.Filters())
}

// Filters returns the current client-side filters.
func (m *Menu) Filters() Filters {
	return Filters{Search: m.search.Draft(), Cuisine: m.location.Get(route.ParamCuisine)}
}

// Cuisines lists the distinct cuisines among fetched items, sorted.
func (m *Menu) Cuisines() []string {
	seen := map[string]string{}
	for _, item := range m.items {
		c := strings.TrimSpace(item.Cuisine)
		if c == "" {
			continue
		}
		key := strings.ToLower(c)
		if _, ok := seen[key]; !ok {
			seen[key] = c
		}
	}
	out := make([]string, 0, len(seen))
	for _, c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Location returns the location the menu last navigated to.
func (m *Menu) Location() route.Location { return m.location }

// Draft returns the search box text.
func (m *Menu) Draft() string { return m.search.Draft() }

// Items returns the fetched, unfiltered list.
func (m *Menu) Items() []FoodView { return m.items }

// Loading reports whether a fetch is outstanding.
func (m *Menu) Loading() bool { return m.loading }

// InitialLoad reports whether nothing has been shown yet.
func (m *Menu) InitialLoad() bool { return m.initialLoad }

// Highlighted returns the id matched by the search parameter, if any.
func (m *Menu) Highlighted() string { return m.highlighted }

// ScrollTarget returns the id to bring into view once the scroll delay has
// passed.
func (m *Menu) ScrollTarget() string { return m.scrollTo }

// ClearScroll marks the scroll target as handled.
func (m *Menu) ClearScroll() { m.scrollTo = "" }

// LoadingID returns the id of the item being added.
func (m *Menu) LoadingID() string { return m.loadingID }

// Flight returns the active trail, or nil.
func (m *Menu) Flight() *Flight { return m.flight }
