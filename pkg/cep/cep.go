// Package cep resolves Brazilian postal codes through ViaCEP.
package cep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	ErrInvalidCEP = errors.New("CEP must have 8 digits")
	ErrNotFound   = errors.New("CEP not found")
)

type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// Cache is the optional read-through store for resolved addresses.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

type Client struct {
	BaseURL  string
	HTTP     *http.Client
	Cache    Cache
	CacheTTL time.Duration
	Logger   *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, cache Cache, cacheTTL time.Duration, logger *zap.Logger) *Client {
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		HTTP:     &http.Client{Timeout: timeout},
		Cache:    cache,
		CacheTTL: cacheTTL,
		Logger:   logger,
	}
}

// Clean strips everything but digits from a CEP.
func Clean(cep string) string {
	var b strings.Builder
	for _, r := range cep {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type viaCEPResponse struct {
	CEP        string   `json:"cep"`
	Logradouro string   `json:"logradouro"`
	Bairro     string   `json:"bairro"`
	Localidade string   `json:"localidade"`
	UF         string   `json:"uf"`
	Erro       boolFlag `json:"erro"`
}

// boolFlag accepts both true and "true".
type boolFlag bool

func (f *boolFlag) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	*f = boolFlag(s == "true")
	return nil
}

func (c *Client) Lookup(ctx context.Context, cep string) (*Address, error) {
	digits := Clean(cep)
	if len(digits) != 8 {
		return nil, ErrInvalidCEP
	}

	key := "cep:" + digits
	if c.Cache != nil {
		var cached Address
		if err := c.Cache.GetJSON(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/ws/%s/json/", c.BaseURL, digits), nil)
	if err != nil {
		return nil, err
	}
	hc := c.HTTP
	if hc == nil {
		hc = &http.Client{Timeout: 8 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("CEP lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		return nil, ErrInvalidCEP
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("CEP lookup returned %d", resp.StatusCode)
	}

	var out viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode CEP response: %w", err)
	}
	if out.Erro {
		return nil, ErrNotFound
	}

	addr := &Address{
		CEP:          digits,
		Street:       out.Logradouro,
		Neighborhood: out.Bairro,
		City:         out.Localidade,
		State:        out.UF,
	}
	if c.Cache != nil {
		if err := c.Cache.SetJSON(ctx, key, addr, c.CacheTTL); err != nil && c.Logger != nil {
			c.Logger.Warn("Failed to cache CEP", zap.String("cep", digits), zap.Error(err))
		}
	}
	return addr, nil
}
