package pkg

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const billingTimeout = 10 * time.Second

// BillingClient 订阅网关端口，订阅门控中间件只依赖这个接口
type BillingClient interface {
	// HasActiveSubscription 查询客户是否有至少一个生效中的订阅
	HasActiveSubscription(ctx context.Context, customerID string) (bool, error)
	// CheckoutURL 生成订阅购买页链接
	CheckoutURL(ctx context.Context, customerID string) (string, error)
}

// HTTPBillingClient 调用外部计费系统的实现
type HTTPBillingClient struct {
	BaseURL string
	APIKey  string
	client  *http.Client
}

func NewHTTPBillingClient(baseURL, apiKey string) *HTTPBillingClient {
	return &HTTPBillingClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		client:  &http.Client{Timeout: billingTimeout},
	}
}

func (b *HTTPBillingClient) doGet(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+b.APIKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("billing request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("billing status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (b *HTTPBillingClient) HasActiveSubscription(ctx context.Context, customerID string) (bool, error) {
	if customerID == "" {
		return false, nil
	}
	var result struct {
		Data []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	path := fmt.Sprintf("/v1/customers/%s/subscriptions?status=active", customerID)
	if err := b.doGet(ctx, path, &result); err != nil {
		return false, err
	}
	return len(result.Data) > 0, nil
}

func (b *HTTPBillingClient) CheckoutURL(ctx context.Context, customerID string) (string, error) {
	var result struct {
		URL string `json:"url"`
	}
	path := fmt.Sprintf("/v1/customers/%s/checkout", customerID)
	if err := b.doGet(ctx, path, &result); err != nil {
		return "", err
	}
	return result.URL, nil
}
