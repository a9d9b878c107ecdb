package investidor10

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/carteira-cli/carteira"
)

// newTestClient points a client at a test server, with the search cache
// disabled so every request reaches the handler.
func newTestClient(serverURL string) *Client {
	c := NewClient("test-session", 194632)
	c.BaseURL = serverURL
	c.search = c.http
	return c
}

func testEvent() carteira.Event {
	return carteira.NewBuy("PETR4", carteira.NewTransactionInfo(
		carteira.NewDate(2025, time.March, 14), 200, carteira.R(14)))
}

func TestFormatPrice(t *testing.T) {
	testCases := []struct {
		price float64
		want  string
	}{
		{price: 14.0, want: "14,00000000"},
		{price: 20.5, want: "20,50000000"},
		{price: 15.229, want: "15,23000000"},
		{price: 0, want: "0,00000000"},
	}
	for _, tc := range testCases {
		if got := formatPrice(carteira.R(tc.price)); got != tc.want {
			t.Errorf("formatPrice(%v) = %q, want %q", tc.price, got, tc.want)
		}
	}
}

func TestResolve_FiiFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/buscar/ticker/":
			io.WriteString(w, `[]`) // not a common ticker
		case "/api/buscar/fii/":
			if got := r.URL.Query().Get("q"); got != "MXRF11" {
				t.Errorf("fii search q = %q, want MXRF11", got)
			}
			io.WriteString(w, `[{"id":77,"name":"Maxi Renda"}]`)
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	asset, err := newTestClient(server.URL).Resolve(context.Background(), "MXRF11")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	want := Asset{ID: 77, Name: "Maxi Renda", Type: Fii}
	if asset != want {
		t.Errorf("Resolve() = %+v, want %+v", asset, want)
	}
}

func TestResolve_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Resolve(context.Background(), "NONEXISTENT")
	if !errors.Is(err, ErrTickerNotFound) {
		t.Errorf("Resolve() error = %v, want ErrTickerNotFound", err)
	}
}

func TestAddTrade(t *testing.T) {
	var gotTrade map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie := r.Header.Get("Cookie"); cookie != "laravel_session=test-session" {
			t.Errorf("Cookie = %q, want the laravel_session", cookie)
		}
		switch r.URL.Path {
		case "/api/buscar/ticker/":
			io.WriteString(w, `[{"id":42,"name":"Petrobras"}]`)
		case "/api/minhas-carteiras/lancamentos/194632/":
			if r.Method != http.MethodPost {
				t.Errorf("method = %s, want POST", r.Method)
			}
			if err := json.NewDecoder(r.Body).Decode(&gotTrade); err != nil {
				t.Errorf("cannot decode trade payload: %v", err)
			}
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	if err := newTestClient(server.URL).AddTrade(context.Background(), testEvent()); err != nil {
		t.Fatalf("AddTrade() error: %v", err)
	}

	wantFields := map[string]any{
		"ticker_type":    "Ticker",
		"user_wallet_id": float64(194632),
		"type":           "BUY",
		"source":         "Manual",
		"date":           "14/03/2025",
		"qty":            float64(200),
		"ticker":         float64(42),
		"price":          "14,00000000",
	}
	for key, want := range wantFields {
		if got := gotTrade[key]; got != want {
			t.Errorf("trade[%q] = %v, want %v", key, got, want)
		}
	}
}

func TestAddTrade_SellType(t *testing.T) {
	var gotType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/buscar/ticker/":
			io.WriteString(w, `[{"id":42,"name":"Petrobras"}]`)
		default:
			var tr map[string]any
			json.NewDecoder(r.Body).Decode(&tr)
			gotType, _ = tr["type"].(string)
		}
	}))
	defer server.Close()

	sellEvent := carteira.NewSell("PETR4", carteira.NewTransactionInfo(
		carteira.NewDate(2025, time.March, 14), 50, carteira.R(15)))
	if err := newTestClient(server.URL).AddTrade(context.Background(), sellEvent); err != nil {
		t.Fatalf("AddTrade() error: %v", err)
	}
	if gotType != "SELL" {
		t.Errorf("trade type = %q, want SELL", gotType)
	}
}

func TestAddTrade_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/buscar/ticker/":
			io.WriteString(w, `[{"id":42,"name":"Petrobras"}]`)
		default:
			http.Error(w, "expired session", http.StatusUnauthorized)
		}
	}))
	defer server.Close()

	if err := newTestClient(server.URL).AddTrade(context.Background(), testEvent()); err == nil {
		t.Error("AddTrade() = nil error, want error on 401")
	}
}

func TestLatest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/cotacoes/acao/chart/PETR4/1/real/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		io.WriteString(w, `{"real":[{"created_at":"10:32","price":38.54},{"created_at":"10:47","price":38.60}]}`)
	}))
	defer server.Close()

	got, err := newTestClient(server.URL).Latest(context.Background(), "PETR4")
	if err != nil {
		t.Fatalf("Latest() error: %v", err)
	}
	if got != 38.60 {
		t.Errorf("Latest() = %v, want 38.60", got)
	}
}

func TestSession_RoundTrip(t *testing.T) {
	if err := SaveSession("  abc123\n"); err != nil {
		t.Fatalf("SaveSession() error: %v", err)
	}
	got, err := LoadSession()
	if err != nil {
		t.Fatalf("LoadSession() error: %v", err)
	}
	if got != "abc123" {
		t.Errorf("LoadSession() = %q, want %q", got, "abc123")
	}

	if err := SaveSession("   "); err == nil {
		t.Error("SaveSession(blank) = nil error, want error")
	}
}
