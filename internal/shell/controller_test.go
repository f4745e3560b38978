package shell

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tienda-mobile/storectl/internal/domain/cart"
	"github.com/tienda-mobile/storectl/internal/domain/order"
	"github.com/tienda-mobile/storectl/internal/domain/product"
	"github.com/tienda-mobile/storectl/internal/session"
)

// --- Mock implementations ---

type mockAPI struct {
	registerErr error
	loginResp   session.Session
	loginErr    error

	catalog    product.Catalog
	catalogErr error
	orderResp  order.Order
	orderErr   error
	history    []order.Order
	historyErr error

	registerCalls    int
	loginCalls       int
	createOrderCalls int
	lastOrderToken   string
	lastOrderLines   []cart.Line
}

func (m *mockAPI) Register(_ context.Context, _, _, _ string) error {
	m.registerCalls++
	return m.registerErr
}

func (m *mockAPI) Login(_ context.Context, _, _ string) (session.Session, error) {
	m.loginCalls++
	return m.loginResp, m.loginErr
}

func (m *mockAPI) ListProducts(_ context.Context) (product.Catalog, error) {
	return m.catalog, m.catalogErr
}

func (m *mockAPI) CreateOrder(_ context.Context, token string, lines []cart.Line) (order.Order, error) {
	m.createOrderCalls++
	m.lastOrderToken = token
	m.lastOrderLines = lines
	return m.orderResp, m.orderErr
}

func (m *mockAPI) ListMyOrders(_ context.Context, _ string) ([]order.Order, error) {
	return m.history, m.historyErr
}

// memStore is an in-memory session.Store test double.
type memStore struct {
	current session.Session
	subs    []func(session.Session)

	saveErr error
}

func (m *memStore) Save(s session.Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.current = s
	m.notify()
	return nil
}

func (m *memStore) Clear() error {
	m.current = session.Session{}
	m.notify()
	return nil
}

func (m *memStore) Current() session.Session { return m.current }

func (m *memStore) Subscribe(fn func(session.Session)) { m.subs = append(m.subs, fn) }

func (m *memStore) notify() {
	for _, fn := range m.subs {
		fn(m.current)
	}
}

// --- Helpers ---

func testSession() session.Session {
	return session.Session{Token: "t1", User: session.User{Name: "x"}}
}

func testCatalog() product.Catalog {
	return product.Catalog{
		{ID: "A", Title: "Coffee", Price: decimal.NewFromInt(1000)},
		{ID: "B", Title: "Beans", Price: decimal.NewFromInt(2000)},
	}
}

func newShopController(t *testing.T, api *mockAPI) *Controller {
	t.Helper()
	c := NewController(api, &memStore{current: testSession()})
	require.Equal(t, ModeShop, c.Mode())
	c.RefreshCatalog(context.Background())
	require.Empty(t, c.Message())
	return c
}

// --- Tests ---

func TestNewController_ModeFollowsPersistedSession(t *testing.T) {
	c := NewController(&mockAPI{}, &memStore{})
	assert.Equal(t, ModeAuth, c.Mode())

	c = NewController(&mockAPI{}, &memStore{current: testSession()})
	assert.Equal(t, ModeShop, c.Mode())
}

func TestSubmitAuth_LoginSavesSessionAndEntersShop(t *testing.T) {
	store := &memStore{}
	api := &mockAPI{loginResp: testSession()}
	c := NewController(api, store)
	c.SetAuthMode(AuthLogin)

	c.SubmitAuth(context.Background(), "", "x@example.com", "secret")

	assert.Equal(t, 0, api.registerCalls)
	assert.Equal(t, testSession(), store.Current())
	assert.Equal(t, ModeShop, c.Mode())
	assert.Equal(t, "signed in as x", c.Message())
}

func TestSubmitAuth_RegisterThenLogin(t *testing.T) {
	store := &memStore{}
	api := &mockAPI{loginResp: testSession()}
	c := NewController(api, store)
	require.Equal(t, AuthRegister, c.AuthMode())

	c.SubmitAuth(context.Background(), "x", "x@example.com", "secret")

	assert.Equal(t, 1, api.registerCalls)
	assert.Equal(t, 1, api.loginCalls)
	assert.Equal(t, testSession(), store.Current())
	assert.Equal(t, ModeShop, c.Mode())
}

func TestSubmitAuth_RegisterFailureSavesNothing(t *testing.T) {
	store := &memStore{}
	api := &mockAPI{registerErr: errors.New("email already taken")}
	c := NewController(api, store)

	c.SubmitAuth(context.Background(), "x", "x@example.com", "secret")

	assert.Equal(t, 0, api.loginCalls)
	assert.False(t, store.Current().Present())
	assert.Equal(t, ModeAuth, c.Mode())
	assert.Equal(t, "email already taken", c.Message())
}

func TestSubmitAuth_LoginFailureAfterRegisterSavesNothing(t *testing.T) {
	store := &memStore{}
	api := &mockAPI{loginErr: errors.New("account not activated")}
	c := NewController(api, store)

	c.SubmitAuth(context.Background(), "x", "x@example.com", "secret")

	assert.Equal(t, 1, api.registerCalls)
	assert.False(t, store.Current().Present())
	assert.Equal(t, ModeAuth, c.Mode())
	// The account exists server-side, so the panel drops to the login form
	// with a message saying so.
	assert.Equal(t, AuthLogin, c.AuthMode())
	assert.Contains(t, c.Message(), "account created, but sign-in failed")
}

func TestLogout_ForcesAuthAndDropsCart(t *testing.T) {
	api := &mockAPI{catalog: testCatalog()}
	c := newShopController(t, api)
	c.Add(testCatalog()[0])
	_ = c.Message()

	c.Logout()

	assert.Equal(t, ModeAuth, c.Mode())
	assert.False(t, c.Session().Present())
	assert.True(t, c.Cart().Empty())
	assert.Equal(t, "signed out", c.Message())
}

func TestRefreshCatalog_FailureKeepsSnapshot(t *testing.T) {
	api := &mockAPI{catalog: testCatalog()}
	c := newShopController(t, api)

	api.catalogErr = errors.New("service unavailable")
	c.RefreshCatalog(context.Background())

	assert.Equal(t, "service unavailable", c.Message())
	assert.Len(t, c.Catalog(), 2)
}

func TestResolve(t *testing.T) {
	c := newShopController(t, &mockAPI{catalog: testCatalog()})

	p, ok := c.Resolve("1")
	require.True(t, ok)
	assert.Equal(t, "A", p.ID)

	p, ok = c.Resolve("B")
	require.True(t, ok)
	assert.Equal(t, "Beans", p.Title)

	_, ok = c.Resolve("7")
	assert.False(t, ok)
	_, ok = c.Resolve("ghost")
	assert.False(t, ok)
}

func TestPay_EmptyCartIssuesNoRequest(t *testing.T) {
	api := &mockAPI{catalog: testCatalog()}
	c := newShopController(t, api)

	c.Pay(context.Background())

	assert.Equal(t, 0, api.createOrderCalls)
	assert.Equal(t, "cart is empty", c.Message())
}

func TestPay_NoSessionIssuesNoRequest(t *testing.T) {
	api := &mockAPI{catalog: testCatalog()}
	c := NewController(api, &memStore{})
	c.Cart().Add("A")

	c.Pay(context.Background())

	assert.Equal(t, 0, api.createOrderCalls)
	assert.Equal(t, "sign in to pay", c.Message())
}

func TestPay_SuccessClearsCart(t *testing.T) {
	api := &mockAPI{
		catalog:   testCatalog(),
		orderResp: order.Order{ID: "o1", Total: decimal.NewFromInt(4000)},
	}
	c := newShopController(t, api)
	c.Add(testCatalog()[0])
	c.Add(testCatalog()[0])
	c.Add(testCatalog()[1])
	_ = c.Message()

	c.Pay(context.Background())

	assert.Equal(t, 1, api.createOrderCalls)
	assert.Equal(t, "t1", api.lastOrderToken)
	assert.Equal(t, []cart.Line{
		{ProductID: "A", Quantity: 2},
		{ProductID: "B", Quantity: 1},
	}, api.lastOrderLines)
	assert.True(t, c.Cart().Empty())
	assert.Equal(t, "order o1 created, total $4.000", c.Message())
}

func TestPay_FailureLeavesCartIntact(t *testing.T) {
	api := &mockAPI{
		catalog:  testCatalog(),
		orderErr: errors.New("insufficient stock"),
	}
	c := newShopController(t, api)
	c.Add(testCatalog()[0])
	_ = c.Message()

	c.Pay(context.Background())

	assert.Equal(t, "insufficient stock", c.Message())
	assert.Equal(t, 1, c.Cart().Quantity("A"))
	assert.False(t, c.Cart().Empty())
}

func TestRefreshOrders_PreservesServerOrder(t *testing.T) {
	api := &mockAPI{
		catalog: testCatalog(),
		history: []order.Order{{ID: "o2"}, {ID: "o1"}},
	}
	c := newShopController(t, api)
	c.EnterOrders()
	require.Equal(t, ModeOrders, c.Mode())

	c.RefreshOrders(context.Background())

	require.Len(t, c.Orders(), 2)
	assert.Equal(t, "o2", c.Orders()[0].ID)
	assert.Equal(t, "o1", c.Orders()[1].ID)
}

func TestRefreshOrders_FailureShowsMessage(t *testing.T) {
	api := &mockAPI{catalog: testCatalog(), historyErr: errors.New("boom")}
	c := newShopController(t, api)

	c.RefreshOrders(context.Background())

	assert.Equal(t, "boom", c.Message())
	assert.Empty(t, c.Orders())
}
