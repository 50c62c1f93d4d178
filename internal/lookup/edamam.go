// Package lookup implements the client side of the external nutrition
// lookup service (Edamam food-database v2). The core only depends on the
// gateway contract defined in the service layer; this package is the
// concrete collaborator. Transport and payload failures are classified as
// transient here so the normalizer is never handed data it cannot read.
package lookup

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/remi/mealtrack/internal/config"
	"github.com/remi/mealtrack/internal/logger"
)

// Edamam nutrient codes carried in parser responses.
const (
	NutrientEnergy  = "ENERC_KCAL"
	NutrientProtein = "PROCNT"
	NutrientCarbs   = "CHOCDF"
	NutrientFat     = "FAT"
)

// ParserResponse is the raw shape of a text or barcode parser lookup.
// Both lookups share this shape: an empty Hints list means no result and
// is not an error.
type ParserResponse struct {
	Text  string `json:"text"`
	Hints []Hint `json:"hints"`
}

// Hint wraps one matched food in a parser response.
type Hint struct {
	Food Food `json:"food"`
}

// Food is the raw food object inside a parser hint. Nutrients is keyed by
// Edamam nutrient codes; any code may be absent.
type Food struct {
	FoodID    string             `json:"foodId"`
	Label     string             `json:"label"`
	Image     string             `json:"image,omitempty"`
	Nutrients map[string]float64 `json:"nutrients"`
}

// TransientError marks a lookup failure the caller may retry or degrade
// on: network errors, non-2xx statuses, undecodable payloads. The core
// never sees the underlying cause as anything else.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient lookup failure during %s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// Client is a resty-based Edamam food-database client.
type Client struct {
	http    *resty.Client
	baseURL string
	appID   string
	appKey  string
}

// NewClient creates a new Edamam lookup client.
// Parameters:
//   - cfg: Edamam configuration including base URL and credentials.
// Returns:
//   - *Client: initialized client.
func NewClient(cfg *config.EdamamConfig) *Client {
	client := resty.New()
	client.SetHeader("Accept", "application/json")
	// Timeout belongs to the gateway, not the core
	client.SetTimeout(cfg.Timeout)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.edamam.com"
	}

	return &Client{
		http:    client,
		baseURL: strings.TrimRight(baseURL, "/"),
		appID:   cfg.AppID,
		appKey:  cfg.AppKey,
	}
}

// SearchByText looks up foods matching a free-text query via the parser
// endpoint.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - query: ingredient text to search for.
// Returns:
//   - *ParserResponse: raw parser response; Hints may be empty.
//   - error: *TransientError on transport or payload failure.
func (c *Client) SearchByText(ctx context.Context, query string) (*ParserResponse, error) {
	return c.parser(ctx, "ingr", query)
}

// SearchByBarcode looks up a food by UPC barcode via the parser endpoint.
// A blank or malformed barcode yields an empty response without touching
// the network, keeping the "no hard failure on empty result" contract.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - code: UPC barcode string.
// Returns:
//   - *ParserResponse: raw parser response; Hints may be empty.
//   - error: *TransientError on transport or payload failure.
func (c *Client) SearchByBarcode(ctx context.Context, code string) (*ParserResponse, error) {
	return c.parser(ctx, "upc", code)
}

// parser performs a food-database parser lookup keyed by the given query
// parameter (ingr for text, upc for barcodes). Both flows share one
// response shape and one decode path.
func (c *Client) parser(ctx context.Context, param, value string) (*ParserResponse, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return &ParserResponse{}, nil
	}

	var out ParserResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			param:     value,
			"app_id":  c.appID,
			"app_key": c.appKey,
		}).
		SetResult(&out).
		Get(c.baseURL + "/api/food-database/v2/parser")
	if err != nil {
		return nil, &TransientError{Op: "parser", Err: err}
	}
	if resp.IsError() {
		logger.CtxWarn(ctx, "Parser lookup returned status %d for %s=%q", resp.StatusCode(), param, value)
		return nil, &TransientError{Op: "parser", Err: fmt.Errorf("unexpected status %d", resp.StatusCode())}
	}

	return &out, nil
}

// Autocomplete returns label suggestions for a text prefix. The response
// is a bare list of strings with no nutrient data.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - prefix: text prefix typed by the user.
// Returns:
//   - []string: suggested labels; may be empty.
//   - error: *TransientError on transport or payload failure.
func (c *Client) Autocomplete(ctx context.Context, prefix string) ([]string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, nil
	}

	var out []string
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":       prefix,
			"app_id":  c.appID,
			"app_key": c.appKey,
		}).
		SetResult(&out).
		Get(c.baseURL + "/auto-complete")
	if err != nil {
		return nil, &TransientError{Op: "autocomplete", Err: err}
	}
	if resp.IsError() {
		return nil, &TransientError{Op: "autocomplete", Err: fmt.Errorf("unexpected status %d", resp.StatusCode())}
	}

	return out, nil
}
