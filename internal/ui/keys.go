package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Back       key.Binding
	ToggleMenu key.Binding

	// Routes
	GoHome     key.Binding
	GoFoods    key.Binding
	GoCart     key.Binding
	GoOrders   key.Binding
	GoProfile  key.Binding
	GoActivity key.Binding
	GoLogin    key.Binding

	// Lists
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Search
	Search  key.Binding
	Confirm key.Binding
	Escape  key.Binding

	// Foods
	AddToCart   key.Binding
	NextCuisine key.Binding
	Refresh     key.Binding

	// Home
	ToggleType key.Binding

	// Cart
	Remove    key.Binding
	ClearCart key.Binding

	// Session
	SignOut key.Binding

	// Activity
	ToggleFollow key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "backspace"),
			key.WithHelp("b", "Back"),
		),
		ToggleMenu: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Menu"),
		),

		GoHome: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Home"),
		),
		GoFoods: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Foods"),
		),
		GoCart: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Cart"),
		),
		GoOrders: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "Orders"),
		),
		GoProfile: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "Profile"),
		),
		GoActivity: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Activity log"),
		),
		GoLogin: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Sign in"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open / add"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Leave input"),
		),

		AddToCart: key.NewBinding(
			key.WithKeys("a", "+"),
			key.WithHelp("a/+", "Add to cart"),
		),
		NextCuisine: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Next cuisine"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload"),
		),

		ToggleType: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Food/restaurant"),
		),

		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "Remove item"),
		),
		ClearCart: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "Empty cart"),
		),

		SignOut: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Sign out"),
		),

		ToggleFollow: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "Toggle follow"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.GoHome, k.GoFoods, k.GoCart, k.Search, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.GoHome, k.GoFoods, k.GoCart, k.GoOrders, k.GoProfile, k.GoActivity, k.GoLogin},
		{k.Up, k.Down, k.Top, k.Bottom, k.Back, k.ToggleMenu},
		{k.Search, k.Confirm, k.Escape},
		{k.AddToCart, k.NextCuisine, k.Refresh, k.ToggleType},
		{k.Remove, k.ClearCart, k.SignOut, k.ToggleFollow},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
