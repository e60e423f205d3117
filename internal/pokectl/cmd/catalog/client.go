package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/domain/entity"
	"github.com/kiosk404/pokedex/pkg/utils/json"
)

// APIError is the error body returned by pokeapi.
type APIError struct {
	Status  int    `json:"-"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("pokeapi returned %d", e.Status)
	}
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

// Client calls the pokeapi catalog endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, http: httpClient}
}

func (c *Client) Get(ctx context.Context, nameOrID string) (*entity.PokemonDetail, error) {
	var p entity.PokemonDetail
	if err := c.getJSON(ctx, "/v1/pokemons/"+url.PathEscape(nameOrID), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) List(ctx context.Context, typeName string) ([]string, error) {
	q := url.Values{}
	if typeName != "" {
		q.Set("type", typeName)
	}
	var names []string
	if err := c.getJSON(ctx, "/v1/pokemons", q, &names); err != nil {
		return nil, err
	}
	return names, nil
}

func (c *Client) Ranking(ctx context.Context, stat string, limit int) ([]*entity.RankEntry, error) {
	q := url.Values{}
	q.Set("stat", stat)
	q.Set("limit", strconv.Itoa(limit))
	var entries []*entity.RankEntry
	if err := c.getJSON(ctx, "/v1/stats/ranking", q, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.Unmarshal(body, apiErr)
		return apiErr
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
