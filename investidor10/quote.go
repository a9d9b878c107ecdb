package investidor10

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
)

/*
	Quote chart payload, heavily truncated:
	{
	    "real": [
	        {"created_at": "10:32", "price": 38.54},
	        {"created_at": "10:47", "price": 38.60}
	    ]
	}
*/

// Latest returns the most recent traded price the site knows for a code. The
// payload is a chart series, so the quote is picked from the tail with a
// jsonpath instead of modeling the whole structure.
func (c *Client) Latest(ctx context.Context, code string) (float64, error) {
	addr := fmt.Sprintf("%s/api/cotacoes/acao/chart/%s/1/real/", c.base(), url.PathEscape(code))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return math.NaN(), fmt.Errorf("cannot create quote request for %q: %w", code, err)
	}
	resp, err := c.do(c.http, req)
	if err != nil {
		return math.NaN(), fmt.Errorf("cannot fetch quote for %q: %w", code, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return math.NaN(), fmt.Errorf("cannot fetch quote for %q: %s", code, resp.Status)
	}

	var jobj any
	if err := json.NewDecoder(resp.Body).Decode(&jobj); err != nil {
		return math.NaN(), fmt.Errorf("cannot decode quote for %q: %w", code, err)
	}

	path := "$.real[-1:].price"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("error parsing quote for %q: %q %w", code, path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	val, ok := jval.(float64)
	if !ok {
		return math.NaN(), fmt.Errorf("error parsing quote for %q: %q %s %v", code, path, "not a float", jval)
	}
	return val, nil
}
