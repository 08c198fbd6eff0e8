package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tmorel/studyextract/internal/llm"
)

// remoteFile is the slice of the Files API resource we care about.
type remoteFile struct {
	Name  string `json:"name"`
	URI   string `json:"uri"`
	State string `json:"state"`
}

// Extract implements llm.Extractor: upload the PDF to the Files API, wait
// for it to become ACTIVE, run generateContent with a JSON response type,
// and decode the returned record. The uploaded file is deleted best-effort
// afterwards regardless of outcome.
func (c *Client) Extract(ctx context.Context, pdfPath, promptText string) (map[string]any, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("gemini.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"file", filepath.Base(pdfPath),
		"prompt_len", len(promptText),
	)

	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	file, err := c.uploadFile(ctx, rid, data)
	if err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}
	defer c.tryCleanup(ctx, rid, file.Name)

	file, err = c.waitActive(ctx, rid, file)
	if err != nil {
		return nil, err
	}

	text, err := c.generate(ctx, rid, file.URI, promptText)
	if err != nil {
		return nil, err
	}

	record, err := llm.DecodeRecord(text)
	if err != nil {
		c.log.Warn("gemini.extract.invalid_json",
			"req_id", rid, "error", err, "raw_prefix", prefix(text, 100),
		)
		return nil, err
	}

	c.log.Info("gemini.extract.ok",
		"req_id", rid,
		"keys", len(record),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return record, nil
}

// uploadFile pushes the PDF bytes through the raw media upload protocol.
func (c *Client) uploadFile(ctx context.Context, rid string, data []byte) (remoteFile, error) {
	url := c.cfg.BaseURL + "/upload/v1beta/files"
	headers := map[string]string{
		"x-goog-api-key":         c.cfg.APIKey,
		"X-Goog-Upload-Protocol": "raw",
		"Content-Type":           "application/pdf",
	}
	raw, status, err := llm.SendRaw(ctx, c.httpClient, http.MethodPost, url, data, headers, c.log)
	if err != nil {
		return remoteFile{}, c.serviceError(rid, "upload", status, raw, err)
	}

	var resp struct {
		File remoteFile `json:"file"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return remoteFile{}, fmt.Errorf("decode upload response: %w", err)
	}
	if resp.File.Name == "" {
		return remoteFile{}, fmt.Errorf("upload response missing file name")
	}
	return resp.File, nil
}

// waitActive polls the file resource until it leaves PROCESSING.
func (c *Client) waitActive(ctx context.Context, rid string, file remoteFile) (remoteFile, error) {
	for file.State == "PROCESSING" {
		select {
		case <-ctx.Done():
			return file, ctx.Err()
		case <-time.After(c.cfg.PollInterval):
		}

		url := c.cfg.BaseURL + "/v1beta/" + file.Name
		headers := map[string]string{"x-goog-api-key": c.cfg.APIKey}
		raw, status, err := llm.SendRaw(ctx, c.httpClient, http.MethodGet, url, nil, headers, c.log)
		if err != nil {
			return file, c.serviceError(rid, "poll", status, raw, err)
		}
		if err := json.Unmarshal(raw, &file); err != nil {
			return file, fmt.Errorf("decode file state: %w", err)
		}
	}
	if file.State == "FAILED" {
		return file, fmt.Errorf("file processing failed: %s", file.Name)
	}
	return file, nil
}

// generate runs generateContent against the uploaded file and returns the
// first candidate's text.
func (c *Client) generate(ctx context.Context, rid, fileURI, promptText string) (string, error) {
	url := c.cfg.BaseURL + "/v1beta/models/" + c.cfg.Model + ":generateContent"
	body := map[string]any{
		"contents": []map[string]any{{
			"parts": []map[string]any{
				{"file_data": map[string]any{
					"mime_type": "application/pdf",
					"file_uri":  fileURI,
				}},
				{"text": promptText},
			},
		}},
		"generationConfig": map[string]any{
			"responseMimeType": "application/json",
		},
	}
	headers := map[string]string{"x-goog-api-key": c.cfg.APIKey}

	raw, status, err := llm.SendJSON(ctx, c.httpClient, url, body, headers, c.log)
	if err != nil {
		return "", c.serviceError(rid, "generate", status, raw, err)
	}

	var resp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", llm.ErrInvalidResponse)
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String(), nil
}

// tryCleanup deletes the uploaded file. Failure is logged at debug level and
// never propagated; leftover uploads expire on the service side anyway.
func (c *Client) tryCleanup(ctx context.Context, rid, name string) {
	if name == "" {
		return
	}
	url := c.cfg.BaseURL + "/v1beta/" + name
	headers := map[string]string{"x-goog-api-key": c.cfg.APIKey}
	if _, _, err := llm.SendRaw(ctx, c.httpClient, http.MethodDelete, url, nil, headers, c.log); err != nil {
		c.log.Debug("gemini.cleanup.failed", "req_id", rid, "file", name, "error", err)
	}
}

// serviceError maps HTTP failures onto the service error taxonomy.
func (c *Client) serviceError(rid, op string, status int, raw []byte, err error) error {
	if status == http.StatusTooManyRequests {
		c.log.Warn("gemini.quota_exceeded", "req_id", rid, "op", op)
		return fmt.Errorf("%s: %w", op, llm.ErrQuotaExceeded)
	}
	c.log.Error("gemini.http_error",
		"req_id", rid, "op", op, "status", status,
		"body_prefix", prefix(string(raw), 200), "error", err,
	)
	return fmt.Errorf("%s: %w", op, err)
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
