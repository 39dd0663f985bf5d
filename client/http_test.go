package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Fake catalog server
// ---------------------------------------------------------------------------

type fakeCatalog struct {
	mu         sync.Mutex
	pages      map[Kind][][]Item
	auth       []string
	requestIDs []string
	status     int
}

func (f *fakeCatalog) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.auth = append(f.auth, r.Header.Get("Authorization"))
	f.requestIDs = append(f.requestIDs, r.Header.Get("X-Request-ID"))
	status := f.status
	f.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "catalog unavailable", Details: "maintenance"})
		return
	}

	kind := Kind(strings.TrimPrefix(r.URL.Path, "/api/v1/catalog/"))
	pages, ok := f.pages[kind]
	if !ok {
		http.NotFound(w, r)
		return
	}
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 1 || n > len(pages) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(CatalogPage{Items: pages[n-1], Page: n, TotalPages: len(pages)})
}

func items(kind Kind, ids ...string) []Item {
	out := make([]Item, len(ids))
	for i, id := range ids {
		out[i] = Item{ID: id, Title: strings.ToUpper(id), Kind: kind}
	}
	return out
}

func newFake(t *testing.T) (*fakeCatalog, *Client) {
	t.Helper()
	f := &fakeCatalog{pages: map[Kind][][]Item{
		KindMovie: {items(KindMovie, "m1", "m2"), items(KindMovie, "m3", "m4"), items(KindMovie, "m5")},
		KindShow:  {items(KindShow, "s1", "s2")},
	}}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, New(srv.URL)
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

// ---------------------------------------------------------------------------
// FetchPage
// ---------------------------------------------------------------------------

func TestFetchPage_DecodesPage(t *testing.T) {
	_, c := newFake(t)
	p, err := c.FetchPage(context.Background(), KindMovie, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, []string{"m3", "m4"}, ids(p.Items))
}

func TestFetchPage_SendsHeaders(t *testing.T) {
	f, c := newFake(t)
	c.SetToken("secret")
	_, err := c.FetchPage(context.Background(), KindShow, 1)
	require.NoError(t, err)

	require.Len(t, f.auth, 1)
	assert.Equal(t, "Bearer secret", f.auth[0])
	_, err = uuid.Parse(f.requestIDs[0])
	assert.NoError(t, err, "request id should be a uuid")
}

func TestFetchPage_NoTokenNoAuthHeader(t *testing.T) {
	f, c := newFake(t)
	_, err := c.FetchPage(context.Background(), KindShow, 1)
	require.NoError(t, err)
	assert.Equal(t, "", f.auth[0])
}

func TestFetchPage_APIError(t *testing.T) {
	f, c := newFake(t)
	f.status = http.StatusServiceUnavailable
	_, err := c.FetchPage(context.Background(), KindMovie, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API 503")
	assert.Contains(t, err.Error(), "catalog unavailable: maintenance")
}

func TestFetchPage_UnknownKind(t *testing.T) {
	_, c := newFake(t)
	_, err := c.FetchPage(context.Background(), Kind("podcast"), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API 404")
}

// ---------------------------------------------------------------------------
// FetchCatalog
// ---------------------------------------------------------------------------

func TestFetchCatalog_MergesInKindAndPageOrder(t *testing.T) {
	f, c := newFake(t)
	got, err := c.FetchCatalog(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "m2", "m3", "m4", "m5", "s1", "s2"}, ids(got))

	// 3 movie pages + 1 show page, each with its own request id.
	require.Len(t, f.requestIDs, 4)
	seen := map[string]bool{}
	for _, id := range f.requestIDs {
		assert.False(t, seen[id], "request id %s reused", id)
		seen[id] = true
	}
}

func TestFetchCatalog_SelectedKinds(t *testing.T) {
	_, c := newFake(t)
	got, err := c.FetchCatalog(context.Background(), []Kind{KindShow})
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, ids(got))
}

func TestFetchCatalog_DropsDuplicatesAcrossPages(t *testing.T) {
	f, c := newFake(t)
	f.pages[KindMovie][1] = items(KindMovie, "m2", "m3")
	got, err := c.FetchCatalog(context.Background(), []Kind{KindMovie})
	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "m2", "m3", "m5"}, ids(got))
}

func TestFetchCatalog_SerialWhenConcurrencyIsOne(t *testing.T) {
	_, c := newFake(t)
	c.Concurrency = 1
	got, err := c.FetchCatalog(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, got, 7)
}

func TestFetchCatalog_ErrorIsWrapped(t *testing.T) {
	f, c := newFake(t)
	f.status = http.StatusInternalServerError
	_, err := c.FetchCatalog(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "fetch catalog: "), err.Error())
}

func TestFetchCatalog_CancelledContext(t *testing.T) {
	_, c := newFake(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.FetchCatalog(ctx, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchCatalog_FillsMissingKind(t *testing.T) {
	f, c := newFake(t)
	f.pages[KindShow] = [][]Item{{{ID: "bare", Title: "Bare"}}}
	got, err := c.FetchCatalog(context.Background(), []Kind{KindShow})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, KindShow, got[0].Kind)
}

func ExampleClient_FetchCatalog() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(CatalogPage{
			Items:      []Item{{ID: "1", Title: "Paper Harbor"}},
			Page:       1,
			TotalPages: 1,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	got, err := c.FetchCatalog(context.Background(), []Kind{KindMovie})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(got[0].Title, got[0].Kind)
	// Output: Paper Harbor movie
}
