package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/untoldecay/entitylink/internal/storage/memory"
)

// fakeHub serves /splits and /rows for a dataset of n synthetic questions.
type fakeHub struct {
	n        int
	rowsHits atomic.Int32
	fail     atomic.Bool
}

func (f *fakeHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if f.fail.Load() {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "The dataset viewer is down"}`))
		return
	}
	switch r.URL.Path {
	case "/splits":
		if r.URL.Query().Get("dataset") != "hotpotqa/hotpot_qa" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error": "The dataset does not exist."}`))
			return
		}
		_, _ = w.Write([]byte(`{"splits": [
			{"dataset": "hotpotqa/hotpot_qa", "config": "distractor", "split": "train"},
			{"dataset": "hotpotqa/hotpot_qa", "config": "distractor", "split": "validation"},
			{"dataset": "hotpotqa/hotpot_qa", "config": "fullwiki", "split": "train"}
		]}`))
	case "/rows":
		f.rowsHits.Add(1)
		q := r.URL.Query()
		offset, _ := strconv.Atoi(q.Get("offset"))
		length, _ := strconv.Atoi(q.Get("length"))
		type row struct {
			RowIdx int                    `json:"row_idx"`
			Row    map[string]interface{} `json:"row"`
		}
		var rows []row
		for i := offset; i < offset+length && i < f.n; i++ {
			rows = append(rows, row{RowIdx: i, Row: map[string]interface{}{
				"id":       fmt.Sprintf("q%d", i),
				"question": fmt.Sprintf("Question %d?", i),
				"answer":   "yes",
				"type":     "comparison",
				"level":    "hard",
				"context":  map[string]interface{}{"title": []string{"T"}, "sentences": [][]string{{"S."}}},
			}})
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"rows":           rows,
			"num_rows_total": f.n,
		})
	default:
		http.NotFound(w, r)
	}
}

func newTestHub(t *testing.T, hub *fakeHub) *HubSource {
	t.Helper()
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)
	src := NewHubSource(srv.URL, 0, 0)
	src.PageSize = 2
	return src
}

var trainReq = Request{Dataset: "hotpotqa/hotpot_qa", Subset: "distractor", Split: "train", Streaming: true}

func TestHubStreamingIsLazy(t *testing.T) {
	hub := &fakeHub{n: 1000}
	src := newTestHub(t, hub)
	ctx := context.Background()

	it, err := src.Open(ctx, trainReq)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer it.Close()
	if hub.rowsHits.Load() != 0 {
		t.Fatalf("streaming open fetched %d pages up front", hub.rowsHits.Load())
	}

	for i := 0; i < 5; i++ {
		if !it.Next(ctx) {
			t.Fatalf("Next returned false at %d: %v", i, it.Err())
		}
		rec := it.Record()
		if rec.ID != fmt.Sprintf("q%d", i) {
			t.Errorf("record %d has id %q, want source order", i, rec.ID)
		}
		if rec.Question == "" || rec.Answer != "yes" || len(rec.Context) == 0 {
			t.Errorf("record %d not fully decoded: %+v", i, rec)
		}
	}
	// 5 records at 2 per page.
	if got := hub.rowsHits.Load(); got != 3 {
		t.Errorf("expected 3 page fetches, got %d", got)
	}
}

func TestHubStreamingEnd(t *testing.T) {
	hub := &fakeHub{n: 3}
	src := newTestHub(t, hub)

	it, err := src.Open(context.Background(), trainReq)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	records, err := Collect(context.Background(), it)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("expected 3 records, got %d", len(records))
	}
	if it.Next(context.Background()) {
		t.Error("Next after end should stay false")
	}
}

func TestHubEager(t *testing.T) {
	hub := &fakeHub{n: 7}
	src := newTestHub(t, hub)
	req := trainReq
	req.Streaming = false

	it, err := src.Open(context.Background(), req)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if got := hub.rowsHits.Load(); got != 4 {
		t.Errorf("eager open should fetch all 4 pages, got %d", got)
	}
	records, _ := Collect(context.Background(), it)
	if len(records) != 7 {
		t.Errorf("expected 7 records, got %d", len(records))
	}
	if got := hub.rowsHits.Load(); got != 4 {
		t.Errorf("iterating a materialized dataset must not fetch, got %d fetches", got)
	}
}

func TestHubEmptySplit(t *testing.T) {
	src := newTestHub(t, &fakeHub{n: 0})
	it, err := src.Open(context.Background(), trainReq)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if it.Next(context.Background()) {
		t.Error("expected no records")
	}
	if it.Err() != nil {
		t.Errorf("empty dataset is not an error: %v", it.Err())
	}
}

func TestHubUnknownSplit(t *testing.T) {
	src := newTestHub(t, &fakeHub{n: 10})
	req := trainReq
	req.Subset = "nonexistent"

	_, err := Load(context.Background(), src, req, nil)
	if !errors.Is(err, ErrUnknownSplit) {
		t.Fatalf("expected ErrUnknownSplit, got %v", err)
	}
	if !strings.Contains(err.Error(), "distractor/train") {
		t.Errorf("error should list available splits: %v", err)
	}
}

func TestHubUnknownDataset(t *testing.T) {
	src := newTestHub(t, &fakeHub{n: 10})
	req := trainReq
	req.Dataset = "nobody/nothing"

	_, err := src.Open(context.Background(), req)
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("expected API error, got %v", err)
	}
}

func TestHubServerError(t *testing.T) {
	hub := &fakeHub{n: 10}
	hub.fail.Store(true)
	src := newTestHub(t, hub)
	_, err := src.Open(context.Background(), trainReq)
	if err == nil || !strings.Contains(err.Error(), "status 500") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestHubCache(t *testing.T) {
	hub := &fakeHub{n: 10}
	src := newTestHub(t, hub).WithCache(memory.New())
	ctx := context.Background()

	read := func() []string {
		it, err := src.Open(ctx, trainReq)
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		var ids []string
		for len(ids) < 3 && it.Next(ctx) {
			ids = append(ids, it.Record().ID)
		}
		return ids
	}

	first := read()
	hits := hub.rowsHits.Load()
	if hits != 2 {
		t.Fatalf("expected 2 page fetches on cold cache, got %d", hits)
	}

	hub.fail.Store(true) // the network is gone; the cache must carry the rerun
	second := read()
	if hub.rowsHits.Load() != hits {
		t.Errorf("warm cache still fetched pages")
	}
	if strings.Join(first, ",") != strings.Join(second, ",") {
		t.Errorf("cached rerun returned %v, want %v", second, first)
	}
}

func TestLoadAnnounces(t *testing.T) {
	src := newTestHub(t, &fakeHub{n: 1})
	var out strings.Builder
	if _, err := Load(context.Background(), src, trainReq, &out); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := "Loading hotpotqa/hotpot_qa dataset (distractor, train)...\n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}
