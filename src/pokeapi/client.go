package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	DefaultBaseUrl = "https://pokeapi.co/api/v2/"
	DefaultTimeout = 10 * time.Second
	userAgent      = "poke-data/1.0"
)

var (
	ErrNotFound         = errors.New("resource not found")
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// StatusError carries the HTTP status of a failed request.
type StatusError struct {
	Url    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.Url, e.Status)
}

func (e *StatusError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return ErrNotFound
	}
	return ErrUnexpectedStatus
}

type Cache interface {
	// Set stores value, marshalled, under endpoint.
	Set(endpoint string, value any) error
	// Get unmarshals the entry for endpoint into value and reports whether it was found.
	Get(endpoint string, value any) (bool, error)
}

type Options struct {
	BaseUrl    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Cache      Cache
}

type Client struct {
	http  *resty.Client
	cache Cache
	sugar *zap.SugaredLogger
}

func NewClient(sugar *zap.SugaredLogger, opts Options) *Client {
	var client *resty.Client
	if opts.HTTPClient != nil {
		client = resty.NewWithClient(opts.HTTPClient)
	} else {
		client = resty.New()
	}
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	client.SetBaseURL(baseUrl)
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Accept", "application/json")
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client.SetTimeout(timeout)
	return &Client{
		http:  client,
		cache: opts.Cache,
		sugar: sugar,
	}
}

func getAndDecode[T any](ctx context.Context, c *Client, endpoint string) (*T, error) {
	value := new(T)
	if c.cache != nil {
		found, err := c.cache.Get(endpoint, value)
		if err != nil {
			c.sugar.Warnf("Cache lookup for %s failed: %s", endpoint, err)
		} else if found {
			return value, nil
		}
	}

	resp, err := c.http.R().SetContext(ctx).Get(endpoint)
	if err != nil {
		c.sugar.Errorf("Error fetching %s: %s", endpoint, err)
		return nil, fmt.Errorf("GET %s: %w", endpoint, err)
	}
	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusNotFound:
		c.sugar.Warnf("%s not found", endpoint)
		return nil, &StatusError{Url: endpoint, Status: resp.StatusCode()}
	default:
		c.sugar.Warnf("Failed to fetch %s: HTTP %d", endpoint, resp.StatusCode())
		return nil, &StatusError{Url: endpoint, Status: resp.StatusCode()}
	}

	if err := json.Unmarshal(resp.Body(), value); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", endpoint, err)
	}
	if c.cache != nil {
		if err := c.cache.Set(endpoint, value); err != nil {
			c.sugar.Warnf("Cache store for %s failed: %s", endpoint, err)
		}
	}
	return value, nil
}

func (c *Client) Pokemon(ctx context.Context, id int) (*PokemonResponse, error) {
	return getAndDecode[PokemonResponse](ctx, c, fmt.Sprintf("pokemon/%d", id))
}

func (c *Client) Species(ctx context.Context, id int) (*PokemonSpecies, error) {
	return getAndDecode[PokemonSpecies](ctx, c, fmt.Sprintf("pokemon-species/%d", id))
}

// EvolutionChain accepts either a numeric id or the absolute url a species
// payload links to.
func (c *Client) EvolutionChain(ctx context.Context, idOrUrl string) (*EvolutionChain, error) {
	endpoint := idOrUrl
	if _, err := strconv.Atoi(idOrUrl); err == nil {
		endpoint = "evolution-chain/" + idOrUrl
	}
	return getAndDecode[EvolutionChain](ctx, c, endpoint)
}

func (c *Client) Move(ctx context.Context, url string) (*Move, error) {
	return getAndDecode[Move](ctx, c, url)
}

func (c *Client) Form(ctx context.Context, url string) (*PokemonForm, error) {
	return getAndDecode[PokemonForm](ctx, c, url)
}

// IdFromUrl extracts the trailing numeric id of a resource url such as
// https://pokeapi.co/api/v2/pokemon/10033/.
func IdFromUrl(url string) (int, bool) {
	trimmed := strings.TrimRight(url, "/")
	last := trimmed[strings.LastIndex(trimmed, "/")+1:]
	id, err := strconv.Atoi(last)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
