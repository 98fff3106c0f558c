// Package dogapi consulta raças e imagens em api.thedogapi.com.
package dogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultTimeout = 10 * time.Second

type Measure struct {
	Imperial string `json:"imperial"`
	Metric   string `json:"metric"`
}

type DogInfo struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	LifeSpan    string  `json:"life_span"`
	Temperament string  `json:"temperament"`
	Weight      Measure `json:"weight"`
	Height      Measure `json:"height"`
}

type DogImage struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type Config struct {
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Client é criado uma vez no startup e compartilhado.
// Falhas do upstream viram lista vazia.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string

	cache Cache
	ttl   time.Duration
}

func New(cfg Config, cache Cache) (*Client, error) {
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid dog api url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		cache:   cache,
		ttl:     cfg.CacheTTL,
	}, nil
}

func (c *Client) ListBreeds(ctx context.Context) []DogInfo {
	return fetchList[DogInfo](ctx, c, "/v1/breeds?limit=5")
}

func (c *Client) SearchBreeds(ctx context.Context, name string) []DogInfo {
	return fetchList[DogInfo](ctx, c, "/v1/breeds/search?q="+url.QueryEscape(name))
}

// ListImages não passa pelo cache: a API devolve imagens aleatórias.
func (c *Client) ListImages(ctx context.Context) []DogImage {
	raw, err := c.get(ctx, "/v1/images/search?limit=5")
	if err != nil {
		return []DogImage{}
	}
	out, _ := decodeList[DogImage](raw)
	return out
}

// fetchList tenta o cache, depois o upstream. Só payload válido vai para o cache.
func fetchList[T any](ctx context.Context, c *Client, path string) []T {
	key := "dogapi:" + path

	if c.cache != nil {
		if raw, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			if out, ok := decodeList[T](raw); ok {
				return out
			}
		}
	}

	raw, err := c.get(ctx, path)
	if err != nil {
		return []T{}
	}
	out, ok := decodeList[T](raw)
	if !ok {
		return out
	}

	if c.cache != nil && c.ttl > 0 {
		if err := c.cache.Set(ctx, key, raw, c.ttl); err != nil {
			slog.WarnContext(ctx, "dog api cache set failed", "key", key, "err", err)
		}
	}
	return out
}

// decodeList decodifica num valor novo: payload inválido nunca devolve
// itens parciais, sempre lista vazia.
func decodeList[T any](raw []byte) ([]T, bool) {
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		slog.Warn("dog api: invalid payload", "err", err)
		return []T{}, false
	}
	if out == nil {
		out = []T{}
	}
	return out, true
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "dog api unavailable", "path", path, "err", err)
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1MB max
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.WarnContext(ctx, "dog api error", "path", path, "status", resp.StatusCode)
		return nil, fmt.Errorf("dog api: status=%d", resp.StatusCode)
	}

	return raw, nil
}
