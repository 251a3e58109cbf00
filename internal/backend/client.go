package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/liliang-cn/docchat/internal/domain"
)

// credentialHeader is the header the backend reads the access credential
// from. The credential travels only in this header, never in the URL or
// the request body, and is never logged.
const credentialHeader = "gemini-api-key"

// Client talks to the remote RAG backend.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// APIError is a structured rejection from the backend.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// ListDocuments fetches the full document list. The listing endpoint is
// not credential-gated.
func (c *Client) ListDocuments(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/documents/", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.decodeError(resp)
	}

	var names []string
	if err := json.NewDecoder(resp.Body).Decode(&names); err != nil {
		return nil, fmt.Errorf("failed to decode document list: %w", err)
	}

	c.logger.Debug("fetched document list", zap.Int("count", len(names)))
	return names, nil
}

// Upload sends a document to the backend as a multipart form. The
// credential is required by the backend for ingestion.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader, credential string) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("failed to read upload payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload/", &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set(credentialHeader, credential)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to upload %q: %w", filename, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return c.decodeError(resp)
	}

	c.logger.Info("uploaded document", zap.String("filename", filename))
	return nil
}

// Delete removes the named document and its vectors from the backend.
func (c *Client) Delete(ctx context.Context, name string) error {
	endpoint := c.baseURL + "/documents/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete %q: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.decodeError(resp)
	}

	c.logger.Info("deleted document", zap.String("filename", name))
	return nil
}

// Query asks the backend a question about the named document and returns
// the answer text.
func (c *Client) Query(ctx context.Context, name, query, credential string) (string, error) {
	endpoint := fmt.Sprintf("%s/query/%s?query=%s",
		c.baseURL, url.PathEscape(name), url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(credentialHeader, credential)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to query %q: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.decodeError(resp)
	}

	var parsed domain.QueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode query response: %w", err)
	}

	c.logger.Debug("query answered",
		zap.String("filename", name),
		zap.Int("answer_len", len(parsed.Answer)),
	)
	return parsed.Answer, nil
}

// decodeError turns a non-2xx response into an APIError, pulling the
// backend's human-readable detail field when present.
func (c *Client) decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(raw) > 0 {
		var parsed struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(raw, &parsed) == nil && parsed.Detail != "" {
			apiErr.Detail = parsed.Detail
		}
	}

	return apiErr
}
