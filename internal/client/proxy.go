// Package client talks to the Nova proxy over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"nova-chat/internal/models"
)

const aiResponsePath = "/api/ai-response"

// Reply is a decoded proxy body. Status may be non-2xx: the proxy still sends a reply string then.
type Reply struct {
	Text   string
	Status int
}

type ProxyClient struct {
	http *resty.Client
}

// NewProxyClient targets baseURL. A zero timeout waits for the proxy indefinitely.
func NewProxyClient(baseURL string, timeout time.Duration) *ProxyClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &ProxyClient{http: c}
}

// Ask posts a single message. Only the message is sent; model and sampling settings stay client-side.
func (c *ProxyClient) Ask(ctx context.Context, message string) (Reply, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(models.ProxyRequest{Message: message}).
		Post(aiResponsePath)
	if err != nil {
		return Reply{}, fmt.Errorf("proxy request failed: %w", err)
	}

	var body *struct {
		Reply json.RawMessage `json:"reply"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return Reply{}, fmt.Errorf("failed to decode proxy reply (status %d): %w", resp.StatusCode(), err)
	}
	if body == nil {
		return Reply{}, fmt.Errorf("failed to decode proxy reply (status %d): body is null", resp.StatusCode())
	}

	return Reply{Text: replyText(body.Reply), Status: resp.StatusCode()}, nil
}

// replyText renders any JSON reply value as display text. Null, false, 0 and "" count as no reply.
func replyText(raw json.RawMessage) string {
	var v interface{}
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil {
		return ""
	}
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if !t {
			return ""
		}
		return "true"
	case float64:
		if t == 0 {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		var compact bytes.Buffer
		if err := json.Compact(&compact, raw); err != nil {
			return string(raw)
		}
		return compact.String()
	}
}
