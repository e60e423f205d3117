package pokedex

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/kiosk404/pokedex/internal/pkg/middleware"
	"github.com/kiosk404/pokedex/internal/pkg/tool"
	"github.com/kiosk404/pokedex/pkg/logger"
	"github.com/kiosk404/pokedex/pkg/utils/json"
)

const (
	DefaultRESTTimeout  = 60 * time.Second
	DefaultRESTRetryMax = 3
)

// RESTConfig configures RESTBackend.
type RESTConfig struct {
	BaseURL string
	Timeout time.Duration
	// RetryMax of 0 means DefaultRESTRetryMax; negative disables retries.
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// RESTBackend reads the catalog through the pokeapi HTTP API. Timeouts,
// connection errors and 500/502/503/504 are retried with exponential backoff.
type RESTBackend struct {
	baseURL string
	client  *retryablehttp.Client
}

var _ Backend = (*RESTBackend)(nil)

func NewRESTBackend(cfg RESTConfig) *RESTBackend {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultRESTTimeout
	}
	switch {
	case cfg.RetryMax == 0:
		cfg.RetryMax = DefaultRESTRetryMax
	case cfg.RetryMax < 0:
		cfg.RetryMax = 0
	}
	if cfg.RetryWaitMin <= 0 {
		cfg.RetryWaitMin = time.Second
	}
	if cfg.RetryWaitMax <= 0 {
		cfg.RetryWaitMax = 8 * time.Second
	}

	client := retryablehttp.NewClient()
	client.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	client.RetryMax = cfg.RetryMax
	client.RetryWaitMin = cfg.RetryWaitMin
	client.RetryWaitMax = cfg.RetryWaitMax
	client.Backoff = retryablehttp.DefaultBackoff
	client.CheckRetry = retryOnServerError
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.Logger = logger.NewKV("[REST] ")

	return &RESTBackend{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  client,
	}
}

func retryOnServerError(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	switch resp.StatusCode {
	case http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true, nil
	}
	return false, nil
}

func (b *RESTBackend) GetPokemon(ctx context.Context, nameOrID string) tool.Result {
	return b.get(ctx, "/v1/pokemons/"+url.PathEscape(nameOrID), nil)
}

func (b *RESTBackend) ListByType(ctx context.Context, typeName string) tool.Result {
	return b.get(ctx, "/v1/pokemons", url.Values{"type": {typeName}})
}

func (b *RESTBackend) TopByStat(ctx context.Context, stat string, n int) tool.Result {
	return b.get(ctx, "/v1/stats/ranking", url.Values{"stat": {stat}, "limit": {strconv.Itoa(n)}})
}

func (b *RESTBackend) get(ctx context.Context, path string, params url.Values) tool.Result {
	target := b.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	logger.CtxInfo(ctx, "[REST] GET %s", target)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return tool.Errorf(msgConnectFailed, err)
	}
	if id := logger.CorrelationID(ctx); id != "" {
		req.Header.Set(middleware.XRequestIDKey, id)
	}

	start := time.Now()
	resp, err := b.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			logger.CtxError(ctx, "[REST] timeout calling %s", target)
			return tool.Errorf("%s", MsgTimeout)
		}
		logger.CtxError(ctx, "[REST] network error calling %s: %v", target, err)
		return tool.Errorf(msgConnectFailed, err)
	}
	defer resp.Body.Close()
	logger.CtxInfo(ctx, "[REST] %d in %s", resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		var payload any
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			logger.CtxError(ctx, "[REST] undecodable body from %s: %v", target, err)
			return tool.Errorf("%s", MsgUnexpected)
		}
		return tool.OK(payload)
	case http.StatusNotFound:
		logger.CtxWarn(ctx, "[REST] resource not found: %s", target)
		return tool.Errorf("%s", MsgNotFound)
	default:
		logger.CtxError(ctx, "[REST] api error %d from %s", resp.StatusCode, target)
		return tool.Errorf(msgAPIError, resp.StatusCode)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
