package storefront

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/foodbites/internal/api"
	"github.com/five82/foodbites/internal/assets"
	"github.com/five82/foodbites/internal/route"
)

type fakeAccount struct {
	profileErr error
	ordersErr  error
	calls      atomic.Int32
}

func (f *fakeAccount) FetchProfile(ctx context.Context) (api.Profile, error) {
	f.calls.Add(1)
	if f.profileErr != nil {
		return api.Profile{}, f.profileErr
	}
	return api.Profile{ID: "u1", Username: "ada"}, nil
}

func (f *fakeAccount) FetchMyOrders(ctx context.Context) ([]api.Order, error) {
	f.calls.Add(1)
	if f.ordersErr != nil {
		return nil, f.ordersErr
	}
	return []api.Order{{ID: "o1"}, {ID: "o2"}, {ID: "o3"}}, nil
}

func TestLoadAccount_CombinesProfileAndOrderCount(t *testing.T) {
	src := &fakeAccount{}
	acct, err := LoadAccount(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, "ada", acct.Profile.Username)
	assert.Equal(t, 3, acct.OrdersCount)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestLoadAccount_EitherFailureIsOneError(t *testing.T) {
	tests := []struct {
		name string
		src  *fakeAccount
		want string
	}{
		{name: "profile server message", src: &fakeAccount{profileErr: &api.APIError{Status: 500, Message: "profile down"}}, want: "profile down"},
		{name: "orders transport", src: &fakeAccount{ordersErr: errors.New("dial tcp")}, want: MsgAccountFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acct, err := LoadAccount(context.Background(), tt.src)
			require.Error(t, err)
			assert.Equal(t, Account{}, acct)
			assert.Equal(t, tt.want, AccountError(err))
		})
	}
	assert.Empty(t, AccountError(nil))
}

func newDashboardFixture(source *fakeMenuSource) (*Dashboard, *harness) {
	d := NewDashboard(DashboardDeps{
		Context: context.Background(),
		Source:  source,
		Catalog: assets.Default(),
		Logger:  zerolog.Nop(),
	})
	return d, &harness{sched: &queueScheduler{}, model: d}
}

func TestDashboard_SearchFoodsAndRestaurants(t *testing.T) {
	source := pizzaSource()
	d, h := newDashboardFixture(source)

	h.exec(d.SetSearch("pizza", route.TypeFood))
	require.Len(t, d.Results(), 1)
	assert.Equal(t, "Pizza", d.Results()[0].Name)
	assert.Equal(t, "🍕", d.Results()[0].Emoji)

	h.exec(d.ToggleKind())
	assert.Equal(t, route.TypeRestaurant, d.Kind())
	require.Len(t, d.Results(), 1)
	assert.Equal(t, "Taco Town", d.Results()[0].Name)
	assert.Len(t, source.calls, 2, "every term or type change issues a call")
}

func TestDashboard_EmptyTermClearsWithoutCall(t *testing.T) {
	source := pizzaSource()
	d, h := newDashboardFixture(source)

	h.exec(d.SetSearch("pizza", route.TypeFood))
	require.NotEmpty(t, d.Results())

	assert.Nil(t, d.SetSearch("", route.TypeFood))
	assert.Empty(t, d.Results())
	assert.Len(t, source.calls, 1)
}

func TestDashboard_StaleResultsDropped(t *testing.T) {
	source := pizzaSource()
	d, h := newDashboardFixture(source)

	first := d.SetSearch("pizza", route.TypeFood)
	second := d.SetSearch("taco", route.TypeFood)
	h.exec(second)
	h.exec(first)
	assert.Empty(t, d.Results(), "the earlier pizza response must not land")
	assert.False(t, d.Loading())
}

func TestDashboard_SearchErrorFallsBack(t *testing.T) {
	d, h := newDashboardFixture(&fakeMenuSource{err: errBoom})
	h.exec(d.SetSearch("x", route.TypeFood))
	assert.Equal(t, MsgSearchFailed, d.Err())
}

func TestDashboard_Locations(t *testing.T) {
	d, h := newDashboardFixture(pizzaSource())

	_, ok := d.SubmitLocation()
	assert.False(t, ok, "empty term does not navigate")

	h.exec(d.SetSearch("pizza", route.TypeFood))
	loc, ok := d.SubmitLocation()
	require.True(t, ok)
	assert.Equal(t, "/foods?search=pizza&type=food", loc.String())

	loc, ok = d.ResultLocation(0)
	require.True(t, ok)
	assert.Equal(t, "/foods?search=Pizza&type=food", loc.String())

	_, ok = d.ResultLocation(5)
	assert.False(t, ok)
}
