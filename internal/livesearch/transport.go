package livesearch

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Poster sends a JSON body and returns the response status and body.
type Poster interface {
	PostJSON(ctx context.Context, url string, headers map[string]string, body []byte) (int, []byte, error)
}

// RestyPoster is the Poster used in production.
type RestyPoster struct {
	client *resty.Client
}

var _ Poster = (*RestyPoster)(nil)

// NewRestyPoster returns a Poster with the given request timeout. A
// non-positive timeout leaves requests bounded only by their context.
func NewRestyPoster(timeout time.Duration) *RestyPoster {
	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &RestyPoster{client: client}
}

func (p *RestyPoster) PostJSON(ctx context.Context, url string, headers map[string]string, body []byte) (int, []byte, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeaders(headers).
		SetBody(body).
		Post(url)
	if err != nil {
		return 0, nil, fmt.Errorf("post %s: %w", url, err)
	}
	return resp.StatusCode(), resp.Body(), nil
}
