// Package client talks to the shortener API the same way the browser
// client does.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/imroc/req/v3"
)

const (
	defaultTimeout   = 10 * time.Second
	userAgent        = "url-shortener-cli"
	fallbackMessage  = "Failed to shorten URL"
	emptyInputPrompt = "Please enter a URL"
)

// ErrEmptyInput is returned before any request is made when the input is blank.
var ErrEmptyInput = errors.New("empty input")

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Message renders err the way the browser client displays it.
func Message(err error) string {
	if errors.Is(err, ErrEmptyInput) {
		return emptyInputPrompt
	}

	return "Error: " + err.Error()
}

// NormalizeInput trims input and prefixes https:// unless it already starts
// with http:// or https://.
func NormalizeInput(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrEmptyInput
	}

	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return input, nil
	}

	return "https://" + input, nil
}

// Client calls a shortener API.
type Client struct {
	origin   string
	http     *req.Client
	noFollow *req.Client
}

// New creates a client for the API at baseURL. Only the scheme, host and port
// of baseURL are used.
func New(baseURL string) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("api url must be an absolute http(s) url: %q", baseURL)
	}

	origin := u.Scheme + "://" + u.Host

	newHTTP := func() *req.Client {
		return req.C().
			SetBaseURL(origin).
			SetTimeout(defaultTimeout).
			SetUserAgent(userAgent).
			SetCommonHeader("Accept", "application/json")
	}

	return &Client{
		origin: origin,
		http:   newHTTP(),
		noFollow: newHTTP().SetRedirectPolicy(func(_ *http.Request, _ []*http.Request) error {
			return http.ErrUseLastResponse
		}),
	}, nil
}

// Origin is the scheme, host and port every short URL is resolved against.
func (c *Client) Origin() string {
	return c.origin
}

type shortenResponse struct {
	ShortURL string `json:"short_url"`
}

type problem struct {
	Detail string `json:"detail"`
}

// Shorten sends input to POST /shorten and returns the absolute short URL.
func (c *Client) Shorten(ctx context.Context, input string) (string, error) {
	longURL, err := NormalizeInput(input)
	if err != nil {
		return "", err
	}

	var (
		result shortenResponse
		p      problem
	)

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"long_url": longURL}).
		SetSuccessResult(&result).
		SetErrorResult(&p).
		Post("/shorten")
	if failed(resp, err) {
		return "", err
	}

	if !resp.IsSuccessState() {
		return "", apiError(resp, &p)
	}

	return c.origin + result.ShortURL, nil
}

// Expand returns the URL a short URL redirects to, without following it.
// shortURL may be absolute or just the code.
func (c *Client) Expand(ctx context.Context, shortURL string) (string, error) {
	shortURL = strings.TrimSpace(shortURL)
	if shortURL == "" {
		return "", ErrEmptyInput
	}

	path := shortURL
	if u, err := url.Parse(shortURL); err == nil && u.IsAbs() {
		path = u.EscapedPath()
	} else if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var p problem

	resp, err := c.noFollow.R().SetContext(ctx).SetErrorResult(&p).Get(path)
	if failed(resp, err) {
		return "", err
	}

	switch resp.StatusCode {
	case http.StatusFound, http.StatusMovedPermanently, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return resp.Header.Get("Location"), nil
	}

	return "", apiError(resp, &p)
}

// failed reports whether err should be returned as is. An error response
// whose body is not a problem document still becomes an APIError.
func failed(resp *req.Response, err error) bool {
	if err == nil {
		return false
	}

	return resp == nil || resp.Response == nil || resp.IsSuccessState()
}

func apiError(resp *req.Response, p *problem) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: fallbackMessage}
	if p.Detail != "" {
		apiErr.Message = p.Detail
	}

	return apiErr
}
