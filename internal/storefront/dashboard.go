package storefront

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/five82/foodbites/internal/api"
	"github.com/five82/foodbites/internal/assets"
	"github.com/five82/foodbites/internal/route"
)

// AccountSource fetches the signed-in user's data.
type AccountSource interface {
	FetchProfile(ctx context.Context) (api.Profile, error)
	FetchMyOrders(ctx context.Context) ([]api.Order, error)
}

// Account is the dashboard's profile summary.
type Account struct {
	Profile     api.Profile
	Orders      []api.Order
	OrdersCount int
}

// LoadAccount fetches the profile and orders concurrently. Both must
// succeed; the first failure cancels the other and is returned.
func LoadAccount(ctx context.Context, src AccountSource) (Account, error) {
	var (
		profile api.Profile
		orders  []api.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := src.FetchProfile(gctx)
		if err != nil {
			return fmt.Errorf("fetch profile: %w", err)
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		o, err := src.FetchMyOrders(gctx)
		if err != nil {
			return fmt.Errorf("fetch orders: %w", err)
		}
		orders = o
		return nil
	})
	if err := g.Wait(); err != nil {
		return Account{}, err
	}
	return Account{Profile: profile, Orders: orders, OrdersCount: len(orders)}, nil
}

// AccountError is the banner text for a LoadAccount failure.
func AccountError(err error) string {
	if err == nil {
		return ""
	}
	return api.MessageOf(err, MsgAccountFailed)
}

// SearchSource is the backend surface for dashboard search.
type SearchSource interface {
	FetchFoods(ctx context.Context, query api.FoodQuery) ([]api.Food, error)
	SearchRestaurants(ctx context.Context, term string) ([]api.Restaurant, error)
}

// SearchResult is one dashboard search hit.
type SearchResult struct {
	ID     string
	Name   string
	Detail string
	Emoji  string
}

type dashboardResultsMsg struct {
	gen     int
	results []SearchResult
	err     error
}

// DashboardDeps wires a Dashboard.
type DashboardDeps struct {
	Context context.Context
	Source  SearchSource
	Catalog *assets.Catalog
	Logger  zerolog.Logger
}

// Dashboard runs the home screen's ad hoc search. Every change of term or
// kind issues a fresh call; only the latest call's results are kept.
type Dashboard struct {
	ctx     context.Context
	source  SearchSource
	catalog *assets.Catalog
	log     zerolog.Logger

	term    string
	kind    string
	gen     int
	loading bool
	results []SearchResult
	err     string
}

// NewDashboard builds a Dashboard searching for food.
func NewDashboard(deps DashboardDeps) *Dashboard {
	ctx := deps.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return &Dashboard{
		ctx:     ctx,
		source:  deps.Source,
		catalog: deps.Catalog,
		log:     deps.Logger,
		kind:    route.TypeFood,
	}
}

// SetSearch updates the term and kind. An empty term clears the results
// without a call.
func (d *Dashboard) SetSearch(term, kind string) tea.Cmd {
	if kind != route.TypeRestaurant {
		kind = route.TypeFood
	}
	if term == d.term && kind == d.kind {
		return nil
	}
	d.term = term
	d.kind = kind
	d.gen++
	if term == "" {
		d.results = nil
		d.loading = false
		return nil
	}
	d.loading = true
	gen, ctx, source, catalog := d.gen, d.ctx, d.source, d.catalog
	return func() tea.Msg {
		if source == nil {
			return dashboardResultsMsg{gen: gen, err: fmt.Errorf("search source not configured")}
		}
		results, err := runSearch(ctx, source, catalog, term, kind)
		return dashboardResultsMsg{gen: gen, results: results, err: err}
	}
}

// ToggleKind flips between food and restaurant search.
func (d *Dashboard) ToggleKind() tea.Cmd {
	next := route.TypeRestaurant
	if d.kind == route.TypeRestaurant {
		next = route.TypeFood
	}
	return d.SetSearch(d.term, next)
}

func runSearch(ctx context.Context, source SearchSource, catalog *assets.Catalog, term, kind string) ([]SearchResult, error) {
	if kind == route.TypeRestaurant {
		restaurants, err := source.SearchRestaurants(ctx, term)
		if err != nil {
			return nil, err
		}
		out := make([]SearchResult, 0, len(restaurants))
		for _, r := range restaurants {
			out = append(out, SearchResult{ID: r.ID, Name: r.Name, Detail: r.Location, Emoji: "🏪"})
		}
		return out, nil
	}
	foods, err := source.FetchFoods(ctx, api.FoodQuery{Search: term})
	if err != nil {
		return nil, err
	}
	out := make([]SearchResult, 0, len(foods))
	for _, f := range foods {
		out = append(out, SearchResult{
			ID:     f.ID(),
			Name:   f.Name,
			Detail: fmt.Sprintf("$%.2f", f.Price),
			Emoji:  catalog.Lookup(f.Name, f.Cuisine, f.Category).Emoji,
		})
	}
	return out, nil
}

// Update handles search responses, dropping any that are not the latest.
func (d *Dashboard) Update(msg tea.Msg) tea.Cmd {
	res, ok := msg.(dashboardResultsMsg)
	if !ok || res.gen != d.gen {
		return nil
	}
	d.loading = false
	if res.err != nil {
		d.log.Warn().Err(res.err).Str("term", d.term).Str("type", d.kind).Msg("dashboard search failed")
		d.err = api.MessageOf(res.err, MsgSearchFailed)
		return nil
	}
	d.err = ""
	d.results = res.results
	return nil
}

// SubmitLocation is where the search form leads: the foods screen with the
// term and kind. ok is false for an empty term.
func (d *Dashboard) SubmitLocation() (route.Location, bool) {
	if d.term == "" {
		return route.Location{}, false
	}
	return route.New(route.Foods).
		With(route.ParamSearch, d.term).
		With(route.ParamType, d.kind), true
}

// ResultLocation is where result i leads.
func (d *Dashboard) ResultLocation(i int) (route.Location, bool) {
	if i < 0 || i >= len(d.results) {
		return route.Location{}, false
	}
	return route.New(route.Foods).
		With(route.ParamSearch, d.results[i].Name).
		With(route.ParamType, d.kind), true
}

// Term returns the current search term.
func (d *Dashboard) Term() string { return d.term }

// Kind returns the search domain, food or restaurant.
func (d *Dashboard) Kind() string { return d.kind }

// Results returns the latest results.
func (d *Dashboard) Results() []SearchResult { return d.results }

// Loading reports whether a search is outstanding.
func (d *Dashboard) Loading() bool { return d.loading }

// Err returns the search error banner, if any.
func (d *Dashboard) Err() string { return d.err }
