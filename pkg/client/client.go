package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/ashwinpillay/voltcart/pkg/domain"
)

// Client is the Voltcart API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter

	// mu guards token: login/logout swap it while load requests are in flight
	// on other goroutines.
	mu    sync.Mutex
	token string
}

// New creates a new API client. token may be empty for unauthenticated use;
// login/register set it via SetToken.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		// Polling views and pagination can fire bursts of requests;
		// keep the client polite toward the backend.
		limiter: rate.NewLimiter(rate.Limit(10), 20),
	}
}

// SetToken replaces the bearer token used for subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// bearer returns the current token.
func (c *Client) bearer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// AuthSession is the validated result of a login or register call.
type AuthSession struct {
	Token string
	User  domain.User
}

// authResponse is the flat wire shape of the auth endpoints: token plus the
// user profile embedded at the top level.
type authResponse struct {
	Token   string `json:"token"`
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// validate rejects success responses that are missing required fields.
func (r authResponse) validate() (*AuthSession, error) {
	if r.Token == "" || r.ID == "" || r.Email == "" {
		return nil, fmt.Errorf("%w: auth response missing token, _id, or email", ErrMalformedResponse)
	}
	return &AuthSession{
		Token: r.Token,
		User: domain.User{
			ID:      r.ID,
			Name:    r.Name,
			Email:   r.Email,
			IsAdmin: r.IsAdmin,
		},
	}, nil
}

// Login exchanges credentials for a token and profile.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthSession, error) {
	var resp authResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.post(ctx, "/api/users/login", body, &resp); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	sess, err := resp.validate()
	if err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return sess, nil
}

// Register creates an account. A successful register is an implicit login:
// the response carries a ready-to-use token.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthSession, error) {
	var resp authResponse
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.post(ctx, "/api/users", body, &resp); err != nil {
		return nil, fmt.Errorf("client.Register: %w", err)
	}
	sess, err := resp.validate()
	if err != nil {
		return nil, fmt.Errorf("client.Register: %w", err)
	}
	return sess, nil
}

// UpdateProfile persists profile changes server-side and returns the updated user.
func (c *Client) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (*domain.User, error) {
	var u domain.User
	if err := c.doRequest(ctx, http.MethodPut, "/api/users/profile", patch, &u); err != nil {
		return nil, fmt.Errorf("client.UpdateProfile: %w", err)
	}
	return &u, nil
}

// --- Catalog ---

// ListProducts fetches one page of the catalog with an optional keyword filter.
func (c *Client) ListProducts(ctx context.Context, keyword string, page int) (*domain.ProductPage, error) {
	params := url.Values{}
	if keyword != "" {
		params.Set("keyword", keyword)
	}
	params.Set("page", strconv.Itoa(page))

	var pp domain.ProductPage
	if err := c.get(ctx, "/api/products?"+params.Encode(), &pp); err != nil {
		return nil, fmt.Errorf("client.ListProducts: %w", err)
	}
	return &pp, nil
}

// GetProduct fetches a single product by ID.
func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	if err := c.get(ctx, "/api/products/"+url.PathEscape(id), &p); err != nil {
		return nil, fmt.Errorf("client.GetProduct: %w", err)
	}
	return &p, nil
}

// --- Deals ---

// ListDeals fetches all deals, running and scheduled.
func (c *Client) ListDeals(ctx context.Context) ([]domain.Deal, error) {
	var deals []domain.Deal
	if err := c.get(ctx, "/api/deals", &deals); err != nil {
		return nil, fmt.Errorf("client.ListDeals: %w", err)
	}
	return deals, nil
}

// CreateDealRequest is the payload for creating a new deal.
type CreateDealRequest struct {
	Title     string    `json:"title"`
	ProductID string    `json:"product,omitempty"`
	Category  string    `json:"category,omitempty"`
	Discount  int       `json:"discount"`
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
}

// CreateDeal creates a new deal (admin).
func (c *Client) CreateDeal(ctx context.Context, req CreateDealRequest) (*domain.Deal, error) {
	var created domain.Deal
	if err := c.post(ctx, "/api/deals", req, &created); err != nil {
		return nil, fmt.Errorf("client.CreateDeal: %w", err)
	}
	return &created, nil
}

// DeleteDeal removes a deal by ID (admin).
func (c *Client) DeleteDeal(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/deals/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteDeal: %w", err)
	}
	return nil
}

// --- Content ---

// ListBlogs fetches blog posts, newest first.
func (c *Client) ListBlogs(ctx context.Context) ([]domain.Blog, error) {
	var blogs []domain.Blog
	if err := c.get(ctx, "/api/blogs", &blogs); err != nil {
		return nil, fmt.Errorf("client.ListBlogs: %w", err)
	}
	return blogs, nil
}

// GetBlog fetches a single blog post with its full body.
func (c *Client) GetBlog(ctx context.Context, id string) (*domain.Blog, error) {
	var b domain.Blog
	if err := c.get(ctx, "/api/blogs/"+url.PathEscape(id), &b); err != nil {
		return nil, fmt.Errorf("client.GetBlog: %w", err)
	}
	return &b, nil
}

// ListEvents fetches upcoming events.
func (c *Client) ListEvents(ctx context.Context) ([]domain.Event, error) {
	var events []domain.Event
	if err := c.get(ctx, "/api/events", &events); err != nil {
		return nil, fmt.Errorf("client.ListEvents: %w", err)
	}
	return events, nil
}

// ListSlides fetches the home carousel slides in display order.
func (c *Client) ListSlides(ctx context.Context) ([]domain.Slide, error) {
	var slides []domain.Slide
	if err := c.get(ctx, "/api/slides", &slides); err != nil {
		return nil, fmt.Errorf("client.ListSlides: %w", err)
	}
	return slides, nil
}

// DeleteSlide removes a carousel slide by ID (admin).
func (c *Client) DeleteSlide(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/slides/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteSlide: %w", err)
	}
	return nil
}

// --- Orders ---

// CreateOrderRequest is the payload for placing an order.
type CreateOrderRequest struct {
	Items         []domain.OrderItem `json:"orderItems"`
	ItemsPrice    float64            `json:"itemsPrice"`
	ShippingPrice float64            `json:"shippingPrice"`
	TotalPrice    float64            `json:"totalPrice"`
}

// CreateOrder places a new order for the authenticated user.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	var created domain.Order
	if err := c.post(ctx, "/api/orders", req, &created); err != nil {
		return nil, fmt.Errorf("client.CreateOrder: %w", err)
	}
	return &created, nil
}

// ListMyOrders fetches the authenticated user's orders.
func (c *Client) ListMyOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.get(ctx, "/api/orders/mine", &orders); err != nil {
		return nil, fmt.Errorf("client.ListMyOrders: %w", err)
	}
	return orders, nil
}

// ListOrders fetches all orders (admin).
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.get(ctx, "/api/orders", &orders); err != nil {
		return nil, fmt.Errorf("client.ListOrders: %w", err)
	}
	return orders, nil
}

// DeliverOrder marks an order as delivered (admin).
func (c *Client) DeliverOrder(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodPut, "/api/orders/"+url.PathEscape(id)+"/deliver", nil, nil); err != nil {
		return fmt.Errorf("client.DeliverOrder: %w", err)
	}
	return nil
}

// --- Admin users ---

// ListUsers fetches all registered users (admin).
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.get(ctx, "/api/users", &users); err != nil {
		return nil, fmt.Errorf("client.ListUsers: %w", err)
	}
	return users, nil
}

// DeleteUser removes a user account by ID (admin).
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteUser: %w", err)
	}
	return nil
}

// SetUserAdmin grants or revokes admin rights on a user (admin).
func (c *Client) SetUserAdmin(ctx context.Context, id string, isAdmin bool) error {
	body := map[string]bool{"isAdmin": isAdmin}
	if err := c.doRequest(ctx, http.MethodPut, "/api/users/"+url.PathEscape(id), body, nil); err != nil {
		return fmt.Errorf("client.SetUserAdmin: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Message}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}
