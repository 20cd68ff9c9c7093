// Package apiclient talks to the storefront HTTP API.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/phenrril/bfguitars/internal/domain"
)

const maxBody = 4 << 20

// StatusError is any non-2xx answer. Its text follows the page's error panel.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return "Request error: " + http.StatusText(e.Code)
}

type Client struct {
	base       *url.URL
	httpClient *http.Client
}

// New builds a client for the API rooted at base, for example
// "http://localhost:8000/guitar/".
func New(base string, hc *http.Client) (*Client, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("api base: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.New("api base must be an absolute URL")
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{base: u, httpClient: hc}, nil
}

func (c *Client) Category(ctx context.Context, category string) ([]domain.Product, error) {
	var out []domain.Product
	err := c.getJSON(ctx, c.endpoint(category), &out)
	return out, err
}

func (c *Client) Product(ctx context.Context, id int) ([]domain.Product, error) {
	var out []domain.Product
	err := c.getJSON(ctx, c.endpoint("product", strconv.Itoa(id)), &out)
	return out, err
}

func (c *Client) FAQ(ctx context.Context) ([]domain.FAQEntry, error) {
	var out []domain.FAQEntry
	err := c.getJSON(ctx, c.endpoint("faq"), &out)
	return out, err
}

func (c *Client) PostDIY(ctx context.Context, form url.Values) (string, error) {
	return c.postForm(ctx, c.endpoint("diy"), form)
}

func (c *Client) PostFeedback(ctx context.Context, form url.Values) (string, error) {
	return c.postForm(ctx, c.endpoint("feedback"), form)
}

func (c *Client) endpoint(elem ...string) string {
	return c.base.JoinPath(elem...).String()
}

func (c *Client) getJSON(ctx context.Context, target string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	body, err := c.do(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode %s: %w", target, err)
	}
	return nil
}

func (c *Client) postForm(ctx context.Context, target string, form url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	body, err := c.do(req)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}
