package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/untoldecay/entitylink/internal/debug"
	"github.com/untoldecay/entitylink/internal/storage"
	"github.com/untoldecay/entitylink/internal/types"
	"golang.org/x/time/rate"
)

const (
	// DefaultHubEndpoint is the Hugging Face dataset viewer API.
	DefaultHubEndpoint = "https://datasets-server.huggingface.co"

	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 30 * time.Second

	// MaxPageSize is the largest page the rows endpoint serves.
	MaxPageSize = 100
)

// HubSource reads datasets through the Hugging Face dataset viewer API.
// Requests are paced by Limiter; nothing is retried.
type HubSource struct {
	Endpoint   string
	HTTPClient *http.Client
	Limiter    *rate.Limiter
	Cache      storage.PageCache
	PageSize   int
}

// NewHubSource creates a source for endpoint. requestsPerSecond <= 0 disables pacing.
func NewHubSource(endpoint string, timeout time.Duration, requestsPerSecond float64) *HubSource {
	if endpoint == "" {
		endpoint = DefaultHubEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	return &HubSource{
		Endpoint:   strings.TrimRight(endpoint, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		Limiter:    rate.NewLimiter(limit, 1),
		PageSize:   MaxPageSize,
	}
}

// WithCache returns a copy of the source that reads and fills cache.
func (h *HubSource) WithCache(cache storage.PageCache) *HubSource {
	c := *h
	c.Cache = cache
	return &c
}

type splitsResponse struct {
	Splits []struct {
		Dataset string `json:"dataset"`
		Config  string `json:"config"`
		Split   string `json:"split"`
	} `json:"splits"`
}

type rowsResponse struct {
	Rows []struct {
		RowIdx int             `json:"row_idx"`
		Row    json.RawMessage `json:"row"`
	} `json:"rows"`
	NumRowsTotal int `json:"num_rows_total"`
}

// Open implements Source.
func (h *HubSource) Open(ctx context.Context, req Request) (Iterator, error) {
	if err := h.checkSplit(ctx, req); err != nil {
		return nil, err
	}

	it := &hubIterator{src: h, req: req, total: -1}
	if req.Streaming {
		return it, nil
	}

	records, err := Collect(ctx, it)
	if err != nil {
		return nil, err
	}
	debug.Logf("Debug: materialized %d records from %s", len(records), req)
	return NewSliceIterator(records), nil
}

func (h *HubSource) pageSize() int {
	if h.PageSize <= 0 || h.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return h.PageSize
}

// checkSplit verifies the subset/split pair exists. A cached first page
// counts as proof so cached reruns work offline.
func (h *HubSource) checkSplit(ctx context.Context, req Request) error {
	if h.Cache != nil {
		key := storage.PageKey{Dataset: req.Dataset, Config: req.Subset, Split: req.Split, Offset: 0, Length: h.pageSize()}
		if _, ok, err := h.Cache.GetPage(ctx, key); err == nil && ok {
			return nil
		}
	}

	q := url.Values{}
	q.Set("dataset", req.Dataset)
	body, err := h.get(ctx, "/splits", q)
	if err != nil {
		return err
	}
	var resp splitsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("failed to parse splits response: %w", err)
	}

	available := make([]string, 0, len(resp.Splits))
	for _, s := range resp.Splits {
		if s.Config == req.Subset && s.Split == req.Split {
			return nil
		}
		available = append(available, s.Config+"/"+s.Split)
	}
	return fmt.Errorf("%w: %s/%s (available: %s)", ErrUnknownSplit, req.Subset, req.Split, strings.Join(available, ", "))
}

func (h *HubSource) fetchPage(ctx context.Context, req Request, offset int) (*rowsResponse, error) {
	key := storage.PageKey{Dataset: req.Dataset, Config: req.Subset, Split: req.Split, Offset: offset, Length: h.pageSize()}

	var body []byte
	if h.Cache != nil {
		if cached, ok, err := h.Cache.GetPage(ctx, key); err != nil {
			debug.Logf("Debug: page cache read failed: %v", err)
		} else if ok {
			body = cached
		}
	}
	if body == nil {
		q := url.Values{}
		q.Set("dataset", req.Dataset)
		q.Set("config", req.Subset)
		q.Set("split", req.Split)
		q.Set("offset", strconv.Itoa(offset))
		q.Set("length", strconv.Itoa(key.Length))
		var err error
		body, err = h.get(ctx, "/rows", q)
		if err != nil {
			return nil, err
		}
		if h.Cache != nil {
			if err := h.Cache.PutPage(ctx, key, body); err != nil {
				debug.Logf("Debug: page cache write failed: %v", err)
			}
		}
	}

	var resp rowsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse rows response: %w", err)
	}
	return &resp, nil
}

func (h *HubSource) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	if h.Limiter != nil {
		if err := h.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	u := h.Endpoint + path + "?" + q.Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	debug.Logf("Debug: GET %s", u)
	resp, err := h.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("API error: %s (status %d)", apiErr.Error, resp.StatusCode)
		}
		return nil, fmt.Errorf("API error: %s (status %d)", strings.TrimSpace(string(body)), resp.StatusCode)
	}
	return body, nil
}

// hubIterator fetches the next page whenever its buffer runs dry.
type hubIterator struct {
	src    *HubSource
	req    Request
	buf    []types.QARecord
	pos    int
	offset int
	total  int
	done   bool
	cur    types.QARecord
	err    error
}

func (it *hubIterator) Next(ctx context.Context) bool {
	if it.err != nil {
		return false
	}
	if it.pos >= len(it.buf) {
		if it.done {
			return false
		}
		if err := it.fill(ctx); err != nil {
			it.err = err
			return false
		}
		if len(it.buf) == 0 {
			return false
		}
	}
	it.cur = it.buf[it.pos]
	it.pos++
	return true
}

func (it *hubIterator) fill(ctx context.Context) error {
	page, err := it.src.fetchPage(ctx, it.req, it.offset)
	if err != nil {
		return err
	}
	it.buf = it.buf[:0]
	it.pos = 0
	for _, r := range page.Rows {
		rec, err := decodeRecord(r.Row)
		if err != nil {
			return fmt.Errorf("row %d: %w", r.RowIdx, err)
		}
		it.buf = append(it.buf, rec)
	}
	it.offset += len(page.Rows)
	it.total = page.NumRowsTotal
	if len(page.Rows) == 0 || it.offset >= it.total {
		it.done = true
	}
	return nil
}

func (it *hubIterator) Record() types.QARecord { return it.cur }
func (it *hubIterator) Err() error             { return it.err }
func (it *hubIterator) Close() error           { it.done = true; return nil }
