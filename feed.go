package returns

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/returns/date"
)

// FeedSpec describes where prices are in a JSON document, using JSONPath expressions.
//
// Records selects the list of price records in the document, the other paths are
// evaluated against each record.
type FeedSpec struct {
	Records string `yaml:"records"` // e.g. "$.prices[*]"
	Ticker  string `yaml:"ticker"`  // e.g. "$.symbol", unused if Symbol is set
	Symbol  string `yaml:"symbol"`  // fixed ticker for single ticker feeds
	Date    string `yaml:"date"`    // e.g. "$.date"
	Close   string `yaml:"close"`   // e.g. "$.close"
}

// DecodePriceFeed reads the price records of a JSON document.
func DecodePriceFeed(r io.Reader, spec FeedSpec) ([]PriceRecord, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot decode price feed: %w", err)
	}
	jval, err := jsonpath.Get(spec.Records, doc)
	if err != nil {
		return nil, fmt.Errorf("cannot select records %q: %w", spec.Records, err)
	}
	list, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("records %q: not a list: %v", spec.Records, jval)
	}

	records := make([]PriceRecord, 0, len(list))
	for i, item := range list {
		rec := PriceRecord{Ticker: spec.Symbol}
		if rec.Ticker == "" {
			if rec.Ticker, err = feedString(spec.Ticker, item); err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
		}
		day, err := feedString(spec.Date, item)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if rec.Date, err = date.Parse(day); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if rec.Close, err = feedFloat(spec.Close, item); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// feedValue evaluates path on obj.
func feedValue(path string, obj any) (any, error) {
	jval, err := jsonpath.Get(path, obj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %w", path, err)
	}
	// jsonpath returns either a single value or a list of answers: keep the first one.
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return nil, fmt.Errorf("error parsing %q: no value", path)
		}
		jval = jlist[0]
	}
	return jval, nil
}

func feedString(path string, obj any) (string, error) {
	jval, err := feedValue(path, obj)
	if err != nil {
		return "", err
	}
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("error parsing %q: not a string %v", path, jval)
	}
	return s, nil
}

func feedFloat(path string, obj any) (float64, error) {
	jval, err := feedValue(path, obj)
	if err != nil {
		return 0, err
	}
	switch v := jval.(type) {
	case float64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("error parsing %q: not a number %q", path, v)
		}
		return f, nil
	}
	return 0, fmt.Errorf("error parsing %q: not a number %v", path, jval)
}

// FetchPriceFeed downloads and decodes a JSON price feed.
func FetchPriceFeed(ctx context.Context, client *http.Client, addr string, spec FeedSpec) ([]PriceRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	return DecodePriceFeed(resp.Body, spec)
}

// diskCache stores successful GET responses on disk, one entry per URL and per day.
type diskCache struct {
	dir  string
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return c.base.RoundTrip(req)
	}
	key := fmt.Sprintf("%s %s %s", time.Now().Format(date.DateFormat), req.Method, req.URL.String())
	file := filepath.Join(c.dir, fmt.Sprintf("%x", sha1.Sum([]byte(key))))

	if content, err := os.ReadFile(file); err == nil {
		if resp, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req); err == nil {
			return resp, nil
		}
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		return resp, err
	}
	// a failed write only disables the cache for this entry.
	if content, err := httputil.DumpResponse(resp, true); err == nil {
		_ = os.WriteFile(file, content, 0o600)
	}
	return resp, nil
}

// DailyClient returns an HTTP client caching GET responses in dir for the day.
func DailyClient(dir string) *http.Client {
	if dir == "" {
		dir = os.TempDir()
	}
	return &http.Client{Transport: &diskCache{dir: dir, base: http.DefaultTransport}}
}
