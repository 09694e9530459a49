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
	"strings"
	"time"
)

// Client talks to the contenthub HTTP API. All bearer handling and the
// reaction to 401 live in do.
type Client struct {
	BaseURL      string
	MediaBaseURL string
	HTTP         *http.Client
	// OnUnauthorized runs after a 401 has cleared the session, typically to
	// send the user back to the login screen.
	OnUnauthorized func(message string)
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.HTTP = h } }

func WithMediaBaseURL(u string) Option { return func(c *Client) { c.MediaBaseURL = strings.TrimRight(u, "/") } }

func WithUnauthorizedHandler(fn func(message string)) Option {
	return func(c *Client) { c.OnUnauthorized = fn }
}

func New(baseURL string, opts ...Option) *Client {
	base := strings.TrimRight(baseURL, "/")
	c := &Client{
		BaseURL:      base,
		MediaBaseURL: base,
		HTTP:         &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Status        int             `json:"status"`
	Message       string          `json:"message"`
	Token         string          `json:"token"`
	Data          json.RawMessage `json:"data"`
	Ratings       json.RawMessage `json:"ratings"`
	AverageRating *float64        `json:"averageRating"`
	TotalRatings  int64           `json:"totalRatings"`
}

func (c *Client) do(ctx context.Context, s *Session, method, path string, body any) (*envelope, error) {
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rdr = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+"/api"+path, rdr)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s != nil {
		if tok := s.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	env := &envelope{Status: resp.StatusCode}
	if resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(env); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode response: %w", err)
		}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if s != nil {
			s.Clear()
		}
		if c.OnUnauthorized != nil {
			c.OnUnauthorized(env.Message)
		}
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	return env, nil
}

func decodeData(env *envelope, out any) error {
	if len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

func (c *Client) Register(ctx context.Context, s *Session, name, email, password string) (*User, error) {
	return c.authenticate(ctx, s, "/auth/register/v1", map[string]string{"name": name, "email": email, "password": password})
}

func (c *Client) Login(ctx context.Context, s *Session, email, password string) (*User, error) {
	return c.authenticate(ctx, s, "/auth/login/v1", map[string]string{"email": email, "password": password})
}

func (c *Client) authenticate(ctx context.Context, s *Session, path string, body any) (*User, error) {
	env, err := c.do(ctx, nil, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	var u User
	if err := decodeData(env, &u); err != nil {
		return nil, err
	}
	s.Set(env.Token, &u)
	return &u, nil
}

// Logout clears the session even when the server call fails.
func (c *Client) Logout(ctx context.Context, s *Session) error {
	_, err := c.do(ctx, s, http.MethodPost, "/user/logout/v1", nil)
	s.Clear()
	return err
}

func (c *Client) ListFeed(ctx context.Context, s *Session, search string, pageIndex, pageSize int) ([]FeedItem, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(pageIndex))
	q.Set("limit", strconv.Itoa(pageSize))
	q.Set("search", search)

	env, err := c.do(ctx, s, http.MethodGet, "/contents/v1?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	var items []FeedItem
	if err := decodeData(env, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetContent(ctx context.Context, s *Session, id string) (*ContentDetail, error) {
	env, err := c.do(ctx, s, http.MethodGet, "/content/"+url.PathEscape(id)+"/v1", nil)
	if err != nil {
		return nil, err
	}
	var d ContentDetail
	if err := decodeData(env, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Client) ListRatings(ctx context.Context, s *Session, contentID string) (*RatingList, error) {
	env, err := c.do(ctx, s, http.MethodGet, "/list/rating/"+url.PathEscape(contentID)+"/v1", nil)
	if err != nil {
		return nil, err
	}
	list := &RatingList{AverageRating: env.AverageRating, TotalRatings: env.TotalRatings}
	if len(env.Ratings) > 0 {
		if err := json.Unmarshal(env.Ratings, &list.Ratings); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (c *Client) AddRating(ctx context.Context, s *Session, contentID string, score int, comment string) (*Rating, error) {
	env, err := c.do(ctx, s, http.MethodPost, "/create/rating/"+url.PathEscape(contentID)+"/v1",
		map[string]any{"rating": score, "comment": comment})
	if err != nil {
		return nil, err
	}
	var r Rating
	if err := decodeData(env, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) DeleteContent(ctx context.Context, s *Session, contentID string) error {
	_, err := c.do(ctx, s, http.MethodDelete, "/content/"+url.PathEscape(contentID)+"/v1", nil)
	return err
}

// MediaURL resolves a relative media path against the media base URL.
func (c *Client) MediaURL(rel string) string {
	if rel == "" || strings.HasPrefix(rel, "http://") || strings.HasPrefix(rel, "https://") {
		return rel
	}
	return c.MediaBaseURL + "/" + strings.TrimLeft(rel, "/")
}
