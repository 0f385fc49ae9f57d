// =============================================================================
// Shift Reconciliation - Seed Data Client
// =============================================================================
//
// This package fetches the optional seed data a new session starts
// from: the prior shift's fuel prices and closing readings (which
// become the new shift's opening readings), the lubricant catalog, and
// the customer list for the indent step's autocomplete.
//
// FAILURE POLICY:
//   Every fetch is fail-open. A timeout, transport error or bad payload
//   is logged and the corresponding Data field stays empty; the session
//   then proceeds on the built-in config defaults. Seed failures are
//   never surfaced to the attendant as a blocking error.
//
// =============================================================================

package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trinityfuels/shift-recon/internal/domain"
	"github.com/trinityfuels/shift-recon/pkg/logger"
)

// DefaultTimeout bounds each seed request. The session must not hang
// on a slow backend, so the window is deliberately short.
const DefaultTimeout = 5 * time.Second

// =============================================================================
// SEED PAYLOAD
// =============================================================================

// Data is the merged seed payload. Nil / empty fields mean the
// corresponding fetch failed or returned nothing, and defaults apply.
type Data struct {
	// FuelPrices are the prior shift's prices, carried forward.
	FuelPrices *domain.FuelPrices

	// PriorClosings maps nozzle number to the prior shift's closing
	// reading; merged as the new shift's opening reading.
	PriorClosings map[int]decimal.Decimal

	// Lubricants is the catalog with quantities reset to zero.
	Lubricants []domain.LubricantLine

	// Customers feeds the indent step's autocomplete only.
	Customers []string
}

// lastShiftPayload is the wire shape of GET /shifts/last.
type lastShiftPayload struct {
	FuelPrices struct {
		HSD decimal.Decimal `json:"hsd"`
		MS  decimal.Decimal `json:"ms"`
	} `json:"fuel_prices"`
	Readings []struct {
		Nozzle  int             `json:"nozzle"`
		Closing decimal.Decimal `json:"closing"`
	} `json:"readings"`
}

// catalogItem is the wire shape of one GET /lubricants element.
type catalogItem struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client fetches seed data from the station backend.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates a seed client for the given base URL. A zero
// timeout falls back to DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.Default()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log.WithComponent("seed"),
	}
}

// Fetch retrieves all three seed feeds. It always returns a usable
// Data value; individual failures are logged and leave their field
// empty.
func (c *Client) Fetch(ctx context.Context) *Data {
	data := &Data{}

	var last lastShiftPayload
	if err := c.getJSON(ctx, "/shifts/last", &last); err != nil {
		c.log.Warnw("last shift fetch failed, using defaults", "error", err)
	} else {
		prices := domain.FuelPrices{HSD: last.FuelPrices.HSD, MS: last.FuelPrices.MS}
		if prices.HSD.IsPositive() && prices.MS.IsPositive() {
			data.FuelPrices = &prices
		}
		if len(last.Readings) > 0 {
			data.PriorClosings = make(map[int]decimal.Decimal, len(last.Readings))
			for _, r := range last.Readings {
				data.PriorClosings[r.Nozzle] = r.Closing
			}
		}
	}

	var catalog []catalogItem
	if err := c.getJSON(ctx, "/lubricants", &catalog); err != nil {
		c.log.Warnw("lubricant catalog fetch failed, using defaults", "error", err)
	} else {
		for _, item := range catalog {
			data.Lubricants = append(data.Lubricants, domain.LubricantLine{
				Name:  item.Name,
				Price: item.Price,
			})
		}
	}

	var customers []string
	if err := c.getJSON(ctx, "/customers", &customers); err != nil {
		c.log.Warnw("customer list fetch failed, using defaults", "error", err)
	} else {
		data.Customers = customers
	}

	return data
}

// getJSON performs one GET against the backend and decodes the JSON
// body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
