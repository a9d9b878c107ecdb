// Package investidor10 pushes wallet events to the investidor10.com.br
// private API, the same endpoints the site's own wallet page talks to.
//
// The API is authenticated with the site's laravel_session cookie; there is
// no public token scheme. Users log in with a browser, copy the cookie value
// once, and `carteira login` stores it for later runs.
package investidor10

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/carteira-cli/carteira"
)

const defaultBaseURL = "https://investidor10.com.br"

// ErrTickerNotFound reports a code that neither the ticker nor the fii search
// could resolve.
var ErrTickerNotFound = errors.New("ticker not found")

// AssetType discriminates the two kinds of assets the site tracks in a
// wallet: common tickers and FIIs (Brazilian real estate funds), which live
// under different search endpoints.
type AssetType string

const (
	Ticker AssetType = "Ticker"
	Fii    AssetType = "fii"
)

// Asset is the site's identity for an instrument code, resolved through the
// search API. Trades are posted against the numeric ID, not the code.
type Asset struct {
	ID   int
	Name string
	Type AssetType
}

// Client talks to the investidor10 private API on behalf of one user wallet.
type Client struct {
	// BaseURL lets tests point the client at a local server. Empty means the
	// real site.
	BaseURL string

	session  string
	walletID int
	http     *http.Client
	search   *http.Client // daily-cached, ticker ids are stable
}

// NewClient creates a client for the given laravel_session cookie value and
// numeric wallet id.
func NewClient(session string, walletID int) *Client {
	return &Client{
		session:  session,
		walletID: walletID,
		http:     new(http.Client),
		search:   newDailyCachingClient(),
	}
}

// NewClientFromEnv creates a client from the I10_SESSION and I10_WALLET_ID
// environment variables, falling back to the session file saved by
// `carteira login` when I10_SESSION is unset.
func NewClientFromEnv() (*Client, error) {
	session := os.Getenv("I10_SESSION")
	if session == "" {
		var err error
		session, err = LoadSession()
		if err != nil {
			return nil, err
		}
	}

	idStr := os.Getenv("I10_WALLET_ID")
	if idStr == "" {
		return nil, errors.New("I10_WALLET_ID is not set")
	}
	walletID, err := strconv.Atoi(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid I10_WALLET_ID %q: %w", idStr, err)
	}

	return NewClient(session, walletID), nil
}

func (c *Client) base() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return defaultBaseURL
}

// do executes a request with the session headers set.
func (c *Client) do(client *http.Client, req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", "carteira")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cookie", "laravel_session="+c.session)
	return client.Do(req)
}

// searchResult matches one item of the search API response.
type searchResult struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (c *Client) searchAsset(ctx context.Context, kind AssetType, code string) (Asset, error) {
	var path string
	switch kind {
	case Fii:
		path = "/api/buscar/fii/"
	default:
		path = "/api/buscar/ticker/"
	}
	addr := fmt.Sprintf("%s%s?_type=query&q=%s", c.base(), path, url.QueryEscape(code))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return Asset{}, fmt.Errorf("cannot create search request for %q: %w", code, err)
	}
	resp, err := c.do(c.search, req)
	if err != nil {
		return Asset{}, fmt.Errorf("cannot search %q: %w", code, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Asset{}, fmt.Errorf("cannot search %q: %s", code, resp.Status)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Asset{}, fmt.Errorf("cannot decode search response for %q: %w", code, err)
	}
	if len(results) == 0 {
		return Asset{}, fmt.Errorf("%w: %q", ErrTickerNotFound, code)
	}
	return Asset{ID: results[0].ID, Name: results[0].Name, Type: kind}, nil
}

// Resolve finds the site's asset for an instrument code, trying the ticker
// search first and the fii search as a fallback. Results are cached for a day
// on disk, ids do not move.
func (c *Client) Resolve(ctx context.Context, code string) (Asset, error) {
	asset, err := c.searchAsset(ctx, Ticker, code)
	if err == nil {
		return asset, nil
	}
	return c.searchAsset(ctx, Fii, code)
}

// trade is the payload of the wallet entry form.
type trade struct {
	TickerType   string  `json:"ticker_type"`
	UserWalletID int     `json:"user_wallet_id"`
	TradeType    string  `json:"type"`
	Source       string  `json:"source"`
	Token        string  `json:"_token"`
	Date         string  `json:"date"`
	Qty          int64   `json:"qty"`
	Ticker       int     `json:"ticker"`
	Price        string  `json:"price"`
	Cost         float32 `json:"cost"`
}

// formatPrice renders a price the way the site's form posts it: two decimals
// with a comma separator, padded with six zeros.
func formatPrice(price carteira.Money) string {
	s := fmt.Sprintf("%.2f", price.InexactFloat64())
	return strings.Replace(s, ".", ",", 1) + "000000"
}

func (c *Client) newTrade(ctx context.Context, event carteira.Event) (trade, error) {
	asset, err := c.Resolve(ctx, event.Code())
	if err != nil {
		return trade{}, err
	}

	tradeType := "BUY"
	if event.What() == carteira.EventSell {
		tradeType = "SELL"
	}

	tx := event.Transaction()
	return trade{
		TickerType:   string(asset.Type),
		UserWalletID: c.walletID,
		TradeType:    tradeType,
		Source:       "Manual",
		Date:         tx.Date().Format(carteira.B3DateFormat),
		Qty:          tx.Amount(),
		Ticker:       asset.ID,
		Price:        formatPrice(tx.Price()),
	}, nil
}

// AddTrade replicates one wallet event as a trade entry in the remote wallet.
// The API has no idempotency: posting the same event twice records it twice,
// retry policy belongs to the caller.
func (c *Client) AddTrade(ctx context.Context, event carteira.Event) error {
	t, err := c.newTrade(ctx, event)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("cannot encode trade for %s: %w", event.Code(), err)
	}

	addr := fmt.Sprintf("%s/api/minhas-carteiras/lancamentos/%d/", c.base(), c.walletID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, addr, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("cannot create trade request for %s: %w", event.Code(), err)
	}
	resp, err := c.do(c.http, req)
	if err != nil {
		return fmt.Errorf("cannot post trade for %s: %w", event.Code(), err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("cannot post trade for %s: %s", event.Code(), resp.Status)
	}
	return nil
}
