// Package client is a typed REST client for the catalog service. One
// Collection handle per resource exposes the five generic operations and
// parses the service's envelope and error shapes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Record is the untyped entity representation exchanged with the service.
type Record = map[string]interface{}

// Page is one page of a collection listing.
type Page struct {
	Items      []Record `json:"data"`
	PageNumber int      `json:"page"`
	TotalPages int      `json:"total_pages"`
	Total      int64    `json:"total"`
}

// Client talks to one catalog service instance.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sets the bearer token attached to every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for the service at baseURL (e.g. "http://host:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collection returns the handle for one resource collection.
func (c *Client) Collection(area, name string) *Collection {
	return &Collection{client: c, area: area, name: name}
}

// Collection exposes the generic CRUD operations of one resource.
type Collection struct {
	client *Client
	area   string
	name   string
}

func (col *Collection) path(segments ...string) string {
	p := col.client.baseURL + "/v1/" + col.area + "/" + col.name
	for _, s := range segments {
		p += "/" + s
	}
	return p
}

// List fetches one page of the collection. page is 1-based; 0 means the
// first page.
func (col *Collection) List(ctx context.Context, page int) (*Page, error) {
	url := col.path()
	if page > 0 {
		url += "?page=" + strconv.Itoa(page)
	}

	var envelope struct {
		Data []Record `json:"data"`
		Meta struct {
			Page       int   `json:"page"`
			TotalPages int   `json:"total_pages"`
			Total      int64 `json:"total"`
		} `json:"meta"`
	}
	if err := col.client.do(ctx, http.MethodGet, url, nil, &envelope); err != nil {
		return nil, err
	}

	return &Page{
		Items:      envelope.Data,
		PageNumber: envelope.Meta.Page,
		TotalPages: envelope.Meta.TotalPages,
		Total:      envelope.Meta.Total,
	}, nil
}

// Get fetches one record by id.
func (col *Collection) Get(ctx context.Context, id uint) (Record, error) {
	var envelope struct {
		Data Record `json:"data"`
	}
	url := col.path(strconv.FormatUint(uint64(id), 10))
	if err := col.client.do(ctx, http.MethodGet, url, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// Create posts a new record and returns the created representation.
func (col *Collection) Create(ctx context.Context, payload Record) (Record, error) {
	var envelope struct {
		Data Record `json:"data"`
	}
	if err := col.client.do(ctx, http.MethodPost, col.path(), payload, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// Update applies a partial payload to an existing record.
func (col *Collection) Update(ctx context.Context, id uint, payload Record) (Record, error) {
	var envelope struct {
		Data Record `json:"data"`
	}
	url := col.path(strconv.FormatUint(uint64(id), 10))
	if err := col.client.do(ctx, http.MethodPut, url, payload, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// Delete removes a record.
func (col *Collection) Delete(ctx context.Context, id uint) error {
	url := col.path(strconv.FormatUint(uint64(id), 10))
	return col.client.do(ctx, http.MethodDelete, url, nil, nil)
}

func (c *Client) do(ctx context.Context, method, url string, payload interface{}, out interface{}) error {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
