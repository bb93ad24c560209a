package marketdata

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mfortier/tsx-data/internal/model"
)

// ErrNoData means the provider returned zero usable rows for the
// requested range. This is a normal outcome (new listing, delisting,
// data lag), not a failure.
var ErrNoData = errors.New("no price data for range")

// FetchError wraps a transport or provider failure for one ticker.
type FetchError struct {
	Ticker string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Ticker, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Bar is one daily close from the provider.
type Bar struct {
	Date  time.Time
	Close decimal.Decimal
}

// ProviderSymbol maps a registry ticker to the provider's symbol
// convention: class-share dots become dashes and the Toronto exchange
// suffix is appended. "SHOP" -> "SHOP.TO", "BIP.UN" -> "BIP-UN.TO".
func ProviderSymbol(ticker string) string {
	return strings.ReplaceAll(ticker, ".", "-") + ".TO"
}

// chartResponse is the provider's wire format for history requests.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchDailyHistory fetches daily closes for a registry ticker over
// [start, end], both bounds inclusive (the provider is queried with
// unix-second bounds [midnight(start), midnight(end)+24h)).
//
// Rows with a null or NaN close are discarded; missing values are never
// fabricated. Returns ErrNoData when no usable rows remain, and a
// *FetchError on any transport or provider failure.
func (c *Client) FetchDailyHistory(ctx context.Context, ticker string, start, end time.Time) ([]Bar, error) {
	symbol := ProviderSymbol(ticker)

	query := url.Values{}
	query.Set("period1", strconv.FormatInt(model.Day(start).Unix(), 10))
	query.Set("period2", strconv.FormatInt(model.Day(end).Add(24*time.Hour).Unix(), 10))
	query.Set("interval", "1d")
	query.Set("events", "history")

	var resp chartResponse
	if err := c.get(ctx, "/v8/finance/chart/"+url.PathEscape(symbol), query, &resp); err != nil {
		return nil, &FetchError{Ticker: ticker, Err: err}
	}

	if resp.Chart.Error != nil {
		return nil, &FetchError{
			Ticker: ticker,
			Err:    fmt.Errorf("%s: %s", resp.Chart.Error.Code, resp.Chart.Error.Description),
		}
	}

	if len(resp.Chart.Result) == 0 {
		return nil, ErrNoData
	}

	result := resp.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil, ErrNoData
	}

	closes := result.Indicators.Quote[0].Close
	bars := make([]Bar, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		price := *closes[i]
		if math.IsNaN(price) || math.IsInf(price, 0) {
			continue
		}
		bars = append(bars, Bar{
			Date:  model.Day(time.Unix(ts, 0)),
			Close: decimal.NewFromFloat(price),
		})
	}

	if len(bars) == 0 {
		return nil, ErrNoData
	}

	return bars, nil
}
