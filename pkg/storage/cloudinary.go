package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client talks to a Cloudinary-compatible media API. It implements
// service.MediaStore.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	cloudName    string
	uploadPreset string
}

type Config struct {
	BaseURL      string // e.g. https://api.cloudinary.com
	CloudName    string
	UploadPreset string
	Timeout      time.Duration
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		cloudName:    cfg.CloudName,
		uploadPreset: cfg.UploadPreset,
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	publicID := uuid.NewString()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("copy file content: %w", err)
	}
	_ = mw.WriteField("upload_preset", c.uploadPreset)
	_ = mw.WriteField("public_id", publicID)
	if err := mw.Close(); err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1_1/%s/image/upload", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("media upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("media upload: status %d: %s", resp.StatusCode, body)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("media upload: decode response: %w", err)
	}
	return out.SecureURL, nil
}

// Remove deletes the object behind url. A missing object is not an error; the
// compensating-delete paths call this for artifacts that may already be gone.
func (c *Client) Remove(ctx context.Context, fileURL string) error {
	publicID := publicIDFromURL(fileURL)
	if publicID == "" {
		return nil
	}

	form := strings.NewReader("public_id=" + publicID)
	endpoint := fmt.Sprintf("%s/v1_1/%s/image/destroy", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, form)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("media remove: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("media remove: status %d: %s", resp.StatusCode, body)
	}
	return nil
}

func publicIDFromURL(fileURL string) string {
	base := path.Base(fileURL)
	return strings.TrimSuffix(base, path.Ext(base))
}
