// Package shell is the interactive front of the client: a three-panel view
// state (auth, shop, orders) over the session store, the local cart, and
// the remote API. All state transitions happen here; rendering and command
// parsing live alongside in Shell.
package shell

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tienda-mobile/storectl/internal/domain/cart"
	"github.com/tienda-mobile/storectl/internal/domain/order"
	"github.com/tienda-mobile/storectl/internal/domain/product"
	"github.com/tienda-mobile/storectl/internal/session"
	"github.com/tienda-mobile/storectl/pkg/money"
)

// Mode selects the active panel.
type Mode string

const (
	ModeAuth   Mode = "auth"
	ModeShop   Mode = "shop"
	ModeOrders Mode = "orders"
)

// AuthMode selects which form the auth panel shows. In register mode a
// submission runs register-then-login, so a fresh account is immediately
// authenticated.
type AuthMode string

const (
	AuthLogin    AuthMode = "login"
	AuthRegister AuthMode = "register"
)

// API is the slice of the storefront service the controller needs.
// *api.Client satisfies it; tests substitute a fake.
type API interface {
	Register(ctx context.Context, name, email, password string) error
	Login(ctx context.Context, email, password string) (session.Session, error)
	ListProducts(ctx context.Context) (product.Catalog, error)
	CreateOrder(ctx context.Context, token string, lines []cart.Line) (order.Order, error)
	ListMyOrders(ctx context.Context, token string) ([]order.Order, error)
}

// Controller owns the client-side state: view mode, cart, catalog and order
// snapshots, and the one-line status message. It follows the session store
// through its subscription: gaining a session forces the shop panel, losing
// it forces auth and drops the cart (the shop panel's state goes with it).
//
// Controller is single-goroutine, like the command loop that drives it.
type Controller struct {
	api      API
	sessions session.Store
	cart     *cart.Cart

	catalog product.Catalog
	orders  []order.Order

	mode     Mode
	authMode AuthMode
	msg      string
}

// NewController wires a controller to the API and session store. The
// initial mode comes from the persisted session: present means shop.
func NewController(api API, sessions session.Store) *Controller {
	c := &Controller{
		api:      api,
		sessions: sessions,
		cart:     cart.New(),
		authMode: AuthRegister,
	}
	c.followSession(sessions.Current())
	sessions.Subscribe(c.followSession)
	return c
}

// followSession applies the mode transition rule: a present session forces
// shop, an absent one forces auth. The cart never outlives the session.
func (c *Controller) followSession(s session.Session) {
	if s.Present() {
		c.mode = ModeShop
		return
	}
	c.mode = ModeAuth
	c.cart.Clear()
}

func (c *Controller) Mode() Mode               { return c.mode }
func (c *Controller) AuthMode() AuthMode       { return c.authMode }
func (c *Controller) Catalog() product.Catalog { return c.catalog }
func (c *Controller) Orders() []order.Order    { return c.orders }
func (c *Controller) Cart() *cart.Cart         { return c.cart }
func (c *Controller) Session() session.Session { return c.sessions.Current() }

// Message returns and clears the pending status line.
func (c *Controller) Message() string {
	m := c.msg
	c.msg = ""
	return m
}

// SetAuthMode switches the auth panel between the login and register forms.
func (c *Controller) SetAuthMode(m AuthMode) { c.authMode = m }

// SubmitAuth runs the auth saga for the current sub-mode. In register mode
// it performs register-then-login; the session is saved only once the whole
// sequence has succeeded, so no partial session is ever persisted. If the
// account is created but the follow-up login fails, the user is told the
// account exists and the panel drops to the login form; nothing is saved.
func (c *Controller) SubmitAuth(ctx context.Context, name, email, password string) {
	if c.authMode == AuthRegister {
		if err := c.api.Register(ctx, name, email, password); err != nil {
			c.msg = err.Error()
			return
		}
		s, err := c.api.Login(ctx, email, password)
		if err != nil {
			c.msg = fmt.Sprintf("account created, but sign-in failed: %s. Use signin to continue.", err)
			c.authMode = AuthLogin
			return
		}
		c.finishAuth(s)
		return
	}

	s, err := c.api.Login(ctx, email, password)
	if err != nil {
		c.msg = err.Error()
		return
	}
	c.finishAuth(s)
}

func (c *Controller) finishAuth(s session.Session) {
	if err := c.sessions.Save(s); err != nil {
		c.msg = err.Error()
		return
	}
	c.msg = fmt.Sprintf("signed in as %s", s.User.Name)
}

// Logout clears the session; the store subscription flips the mode back to
// auth and drops the cart.
func (c *Controller) Logout() {
	if err := c.sessions.Clear(); err != nil {
		c.msg = err.Error()
		return
	}
	c.msg = "signed out"
}

// RefreshCatalog replaces the catalog snapshot with the server's current
// active products.
func (c *Controller) RefreshCatalog(ctx context.Context) {
	catalog, err := c.api.ListProducts(ctx)
	if err != nil {
		c.msg = err.Error()
		return
	}
	c.catalog = catalog
}

// Resolve maps a command argument to a catalog product: a 1-based list
// position first, then a raw product ID.
func (c *Controller) Resolve(arg string) (product.Product, bool) {
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(c.catalog) {
		return c.catalog[n-1], true
	}
	return c.catalog.ByID(arg)
}

// Add puts one more unit of the product in the cart.
func (c *Controller) Add(p product.Product) {
	c.cart.Add(p.ID)
	c.msg = fmt.Sprintf("%s x%d in cart", p.Title, c.cart.Quantity(p.ID))
}

// Remove takes one unit of the product out of the cart.
func (c *Controller) Remove(p product.Product) {
	c.cart.Remove(p.ID)
	if q := c.cart.Quantity(p.ID); q > 0 {
		c.msg = fmt.Sprintf("%s x%d in cart", p.Title, q)
		return
	}
	c.msg = fmt.Sprintf("%s removed from cart", p.Title)
}

// Pay submits the cart as one order. Local preconditions (a session, a
// non-empty cart) are checked before any network call. Exactly one request
// is issued per invocation, and the cart is cleared only after the request
// succeeds: a failed submission leaves the cart intact so the user can
// retry.
func (c *Controller) Pay(ctx context.Context) {
	s := c.sessions.Current()
	if !s.Present() {
		c.msg = "sign in to pay"
		return
	}
	if c.cart.Empty() {
		c.msg = "cart is empty"
		return
	}

	total := c.cart.Total(c.catalog)
	o, err := c.api.CreateOrder(ctx, s.Token, c.cart.Lines())
	if err != nil {
		c.msg = err.Error()
		return
	}

	c.cart.Clear()
	c.msg = fmt.Sprintf("order %s created, total %s", o.ID, money.Format(total))
}

// RefreshOrders replaces the order history snapshot, preserving the
// server's ordering.
func (c *Controller) RefreshOrders(ctx context.Context) {
	s := c.sessions.Current()
	if !s.Present() {
		c.msg = "sign in to see your orders"
		return
	}
	orders, err := c.api.ListMyOrders(ctx, s.Token)
	if err != nil {
		c.msg = err.Error()
		return
	}
	c.orders = orders
}

// EnterShop switches to the shop panel.
func (c *Controller) EnterShop() { c.mode = ModeShop }

// EnterOrders switches to the orders panel.
func (c *Controller) EnterOrders() { c.mode = ModeOrders }
