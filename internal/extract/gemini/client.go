package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zapinvo/zapinvo/internal/extract"
)

// ExtractFields implements extract.FieldExtractor against the Gemini
// generateContent API. Per the extraction contract it never fails across
// the boundary: a missing key, transport error, non-2xx status, malformed
// or schema-violating JSON all degrade to the zero ExtractedFields, so
// Magic Fill simply finds nothing.
func (c *Client) ExtractFields(ctx context.Context, freeText string) extract.ExtractedFields {
	rid := uuid.New().String()
	start := time.Now()

	if c.cfg.APIKey == "" {
		c.logger.Warn("extract.skipped", "req_id", rid, "reason", "missing api key")
		return extract.ExtractedFields{}
	}

	c.logger.Info("extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"text_len", len(freeText),
	)

	schema := extract.BuildFieldsJSONSchema()
	body := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]any{{"text": buildPrompt(freeText)}}},
		},
		"generationConfig": map[string]any{
			"responseMimeType": "application/json",
			"responseSchema":   schema,
		},
	}

	raw, err := c.post(ctx, body)
	if err != nil {
		c.logger.Error("extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return extract.ExtractedFields{}
	}

	var gc struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &gc); err != nil {
		c.logger.Error("extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return extract.ExtractedFields{}
	}
	if len(gc.Candidates) == 0 || len(gc.Candidates[0].Content.Parts) == 0 {
		c.logger.Warn("extract.no_candidates",
			"req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return extract.ExtractedFields{}
	}
	content := []byte(strings.TrimSpace(gc.Candidates[0].Content.Parts[0].Text))

	if err := extract.ValidateJSONAgainstSchema(schema, content); err != nil {
		c.logger.Error("extract.schema_validation_failed",
			"req_id", rid, "error", err, "content", string(content),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return extract.ExtractedFields{}
	}

	var out extract.ExtractedFields
	if err := json.Unmarshal(content, &out); err != nil {
		c.logger.Error("extract.unmarshal_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return extract.ExtractedFields{}
	}

	c.logger.Info("extract.ok",
		"req_id", rid,
		"has_business", out.Business != nil,
		"has_customer", out.Customer != nil,
		"invoice_number", out.InvoiceNumber,
		"date", out.Date,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out
}

func (c *Client) post(ctx context.Context, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/models/" + c.cfg.Model + ":generateContent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini http error: %w", err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.logger.Warn("gemini response body close error", "error", err)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gemini status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}

func buildPrompt(text string) string {
	var b strings.Builder
	b.WriteString("Extract invoice details from the following text. ")
	b.WriteString("The text might contain business details (sender) and customer details (receiver). ")
	b.WriteString("Extract as much as possible. Use ISO-8601 dates (YYYY-MM-DD). ")
	b.WriteString("Omit fields you cannot find; never output null.\n\nText: \"")
	b.WriteString(text)
	b.WriteString("\"")
	return b.String()
}
