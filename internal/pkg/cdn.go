package pkg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

const uploadTimeout = 30 * time.Second

// Uploader 文件CDN端口，返回可公开访问的URL与public_id（便于后续删除）
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (url, publicID string, err error)
}

// HTTPUploader 把文件转发到外部上传服务
type HTTPUploader struct {
	BaseURL string
	APIKey  string
	client  *http.Client
}

func NewHTTPUploader(baseURL, apiKey string) *HTTPUploader {
	return &HTTPUploader{
		BaseURL: baseURL,
		APIKey:  apiKey,
		client:  &http.Client{Timeout: uploadTimeout},
	}
}

func (u *HTTPUploader) Upload(ctx context.Context, filename string, r io.Reader) (string, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", "", err
	}
	if _, err = io.Copy(part, r); err != nil {
		return "", "", err
	}
	if err = mw.Close(); err != nil {
		return "", "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.BaseURL+"/upload", &buf)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+u.APIKey)

	resp, err := u.client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("upload status %d", resp.StatusCode)
	}

	var result struct {
		URL      string `json:"url"`
		PublicID string `json:"public_id"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", "", err
	}
	return result.URL, result.PublicID, nil
}
