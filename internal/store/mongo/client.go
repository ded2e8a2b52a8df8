// Package mongo talks to a MongoDB Atlas Data API compatible endpoint:
// POST-style action calls carrying dataSource/database/collection plus a
// filter, authenticated with an api-key header.
package mongo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zapinvo/zapinvo/internal/entity"
	"github.com/zapinvo/zapinvo/internal/settings"
	"github.com/zapinvo/zapinvo/internal/store"
)

// loadLimit bounds LoadAll result sets.
const loadLimit = 50

// ConfigSource yields the settings in effect at call time, so edits made
// in the settings form apply without rebuilding the client.
type ConfigSource interface {
	Current() settings.Config
}

type Client struct {
	source ConfigSource
	http   *http.Client
	logger *slog.Logger
}

// NewClient builds a Data API client. A nil httpClient gets a 30s-timeout
// default; tests inject a counting transport.
func NewClient(source ConfigSource, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{source: source, http: httpClient, logger: logger}
}

// Save upserts the record keyed by its id (updateOne with upsert:true),
// so saving the same id twice can never create a duplicate document.
func (c *Client) Save(ctx context.Context, rec entity.InvoiceRecord) error {
	cfg := c.source.Current()
	if !cfg.IsConfigured() {
		return store.ErrNotConfigured
	}
	body := map[string]any{
		"dataSource": cfg.DataSource,
		"database":   cfg.Database,
		"collection": cfg.Collection,
		"filter":     map[string]any{"id": rec.ID},
		"update":     map[string]any{"$set": rec},
		"upsert":     true,
	}
	_, err := c.post(ctx, cfg, "updateOne", body)
	return err
}

// LoadAll fetches up to loadLimit records, newest by date first. An empty
// documents array is a successful, empty result.
func (c *Client) LoadAll(ctx context.Context) ([]entity.InvoiceRecord, error) {
	cfg := c.source.Current()
	if !cfg.IsConfigured() {
		return nil, store.ErrNotConfigured
	}
	body := map[string]any{
		"dataSource": cfg.DataSource,
		"database":   cfg.Database,
		"collection": cfg.Collection,
		"filter":     map[string]any{},
		"limit":      loadLimit,
		"sort":       map[string]any{"date": -1},
	}
	raw, err := c.post(ctx, cfg, "find", body)
	if err != nil {
		return nil, err
	}
	var out struct {
		Documents []entity.InvoiceRecord `json:"documents"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &store.RemoteError{Op: "find", Message: fmt.Sprintf("decode response: %v", err)}
	}
	return out.Documents, nil
}

func (c *Client) post(ctx context.Context, cfg settings.Config, action string, body map[string]any) ([]byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	bs, err := json.Marshal(body)
	if err != nil {
		return nil, &store.RemoteError{Op: action, Message: fmt.Sprintf("encode request: %v", err)}
	}
	url := strings.TrimRight(cfg.Endpoint, "/") + "/action/" + action
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bs))
	if err != nil {
		return nil, &store.RemoteError{Op: action, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", cfg.APIKey)

	c.logger.Info("store.request", "req_id", rid, "action", action, "content_length", len(bs))

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("store.send_error",
			"req_id", rid, "action", action, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, &store.RemoteError{Op: action, Message: err.Error()}
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.logger.Warn("store.response_body_close_error", "req_id", rid, "error", err)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)

	c.logger.Info("store.response",
		"req_id", rid,
		"action", action,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &store.RemoteError{Op: action, Status: resp.StatusCode, Message: string(raw)}
	}
	return raw, nil
}
