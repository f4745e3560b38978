// Package api is the stateless HTTP client for the remote storefront
// service. Each operation is a single round trip: no retries, no local
// timeouts beyond what the caller's context and the injected http.Client
// impose. The server is the sole authority on pricing, stock, and order
// validity; this client only moves requests and decodes responses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-faster/errors"

	"github.com/tienda-mobile/storectl/internal/domain/cart"
	"github.com/tienda-mobile/storectl/internal/domain/order"
	"github.com/tienda-mobile/storectl/internal/domain/product"
	"github.com/tienda-mobile/storectl/internal/session"
)

// StatusError is a non-2xx response from the service. The server reports
// failures as raw body text, not a structured error object, so Error()
// returns the body verbatim for display to the user.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return http.StatusText(e.StatusCode)
	}
	return e.Body
}

// Client talks to the storefront API at a fixed base URL. It holds no
// session state; operations that need authentication take the bearer token
// explicitly.
type Client struct {
	base string
	http *http.Client
}

// New creates a Client for the given base URL. A trailing slash on the base
// URL is tolerated and trimmed. When httpClient is nil, http.DefaultClient
// is used.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: httpClient,
	}
}

// BaseURL returns the configured base URL without its trailing slash.
func (c *Client) BaseURL() string {
	return c.base
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type orderItemRequest struct {
	Product string `json:"product"`
	Qty     int    `json:"qty"`
}

type createOrderRequest struct {
	Items []orderItemRequest `json:"items"`
}

// Register creates an account server-side. It changes no local state; a
// subsequent Login is required to obtain a session.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register", "", registerRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, nil)
}

// Login exchanges credentials for a session (bearer token plus user record).
func (c *Client) Login(ctx context.Context, email, password string) (session.Session, error) {
	var s session.Session
	err := c.do(ctx, http.MethodPost, "/api/auth/login", "", loginRequest{
		Email:    email,
		Password: password,
	}, &s)
	return s, err
}

// ListProducts fetches the active product catalog. Inactive products are
// filtered server-side; everything returned is purchasable.
func (c *Client) ListProducts(ctx context.Context) (product.Catalog, error) {
	var catalog product.Catalog
	err := c.do(ctx, http.MethodGet, "/api/products", "", nil, &catalog)
	return catalog, err
}

// CreateOrder submits the cart lines as a new order. The returned order
// carries the server-assigned identity and total.
func (c *Client) CreateOrder(ctx context.Context, token string, lines []cart.Line) (order.Order, error) {
	req := createOrderRequest{Items: make([]orderItemRequest, len(lines))}
	for i, l := range lines {
		req.Items[i] = orderItemRequest{Product: l.ProductID, Qty: l.Quantity}
	}
	var o order.Order
	err := c.do(ctx, http.MethodPost, "/api/orders", token, req, &o)
	return o, err
}

// ListMyOrders fetches the caller's order history in the order the server
// returns it; the client does not reorder.
func (c *Client) ListMyOrders(ctx context.Context, token string) ([]order.Order, error) {
	var orders []order.Order
	err := c.do(ctx, http.MethodGet, "/api/orders/mine", token, nil, &orders)
	return orders, err
}

// do performs one round trip: encode body, attach headers (bearer token
// when present), send, map non-2xx to *StatusError, decode into out.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "send request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		return &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(data)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}
