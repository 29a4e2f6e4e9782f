package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morningdesk/morningdesk/pkg/domain"
)

type fakeSearchAPI struct {
	mu    sync.Mutex
	calls []apiCall
	times []time.Time
	pages map[string][][]searchItem // query -> pages
	fail  map[string]bool
}

type apiCall struct {
	query string
	start int
	disp  int
}

func (f *fakeSearchAPI) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "id", r.Header.Get("X-Naver-Client-Id"))
		assert.Equal(t, "secret", r.Header.Get("X-Naver-Client-Secret"))
		assert.Equal(t, "date", r.URL.Query().Get("sort"))

		q := r.URL.Query().Get("query")
		start, _ := strconv.Atoi(r.URL.Query().Get("start"))
		disp, _ := strconv.Atoi(r.URL.Query().Get("display"))

		f.mu.Lock()
		f.calls = append(f.calls, apiCall{query: q, start: start, disp: disp})
		f.times = append(f.times, time.Now())
		f.mu.Unlock()

		if f.fail[q] {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"errorMessage":"rate limited"}`))
			return
		}
		pages := f.pages[q]
		page := (start - 1) / disp
		var items []searchItem
		if page < len(pages) {
			items = pages[page]
		}
		_ = json.NewEncoder(w).Encode(searchResponse{Total: 1000, Start: start, Items: items})
	}
}

func items(prefix string, n int) []searchItem {
	res := make([]searchItem, 0, n)
	for i := 0; i < n; i++ {
		res = append(res, searchItem{
			Title:        fmt.Sprintf("<b>%s</b> 뉴스 %d &amp; 속보", prefix, i),
			OriginalLink: fmt.Sprintf("https://press.example.com/%s/%d", prefix, i),
			Link:         fmt.Sprintf("https://n.news.example.com/%s/%d", prefix, i),
			Description:  "설명 &quot;인용&quot;",
			PubDate:      "Mon, 02 Jun 2025 09:00:00 +0900",
		})
	}
	return res
}

func TestSearchCollector_Collect(t *testing.T) {
	api := &fakeSearchAPI{
		pages: map[string][][]searchItem{
			"반도체": {items("semi", 2), items("semi2", 1)},
			"증시":  {append(items("semi", 1), searchItem{Title: "no original", Link: "https://n.news.example.com/fallback"})},
		},
		fail: map[string]bool{"실패": true},
	}
	ts := httptest.NewServer(api.handler(t))
	defer ts.Close()

	c := NewSearchCollector(SearchParams{Endpoint: ts.URL, ClientID: "id", ClientSecret: "secret", SourceName: "네이버뉴스",
		Display: 2, MaxPages: 3, Delay: 20 * time.Millisecond})
	require.True(t, c.Enabled())

	results := c.Collect(context.Background(), []string{"반도체", "실패", "반도체", " ", "증시"})
	require.Len(t, results, 3, "duplicate and blank queries are skipped")

	assert.Equal(t, "search:반도체", results[0].Source)
	require.NoError(t, results[0].Err)
	require.Len(t, results[0].Articles, 3, "two full pages then a short page ends pagination")
	a := results[0].Articles[0]
	assert.Equal(t, "semi 뉴스 0 & 속보", a.Title)
	assert.Equal(t, "https://press.example.com/semi/0", a.URL, "original link preferred")
	assert.Equal(t, `설명 "인용"`, a.Summary)
	assert.Equal(t, "네이버뉴스", a.SourceName)
	assert.Equal(t, domain.RegionKR, a.Region)
	require.NotNil(t, a.PublishedAt)
	assert.True(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC).Equal(*a.PublishedAt))

	assert.Equal(t, "search:실패", results[1].Source)
	require.Error(t, results[1].Err)
	assert.Contains(t, results[1].Err.Error(), "429")
	assert.Empty(t, results[1].Articles)

	// url already seen in the run is dropped, link used when original link is missing
	require.NoError(t, results[2].Err)
	require.Len(t, results[2].Articles, 1)
	assert.Equal(t, "https://n.news.example.com/fallback", results[2].Articles[0].URL)

	api.mu.Lock()
	defer api.mu.Unlock()
	require.Len(t, api.calls, 5)
	assert.Equal(t, apiCall{query: "반도체", start: 1, disp: 2}, api.calls[0])
	assert.Equal(t, apiCall{query: "반도체", start: 3, disp: 2}, api.calls[1])
	assert.Equal(t, apiCall{query: "실패", start: 1, disp: 2}, api.calls[2])
	assert.Equal(t, apiCall{query: "증시", start: 1, disp: 2}, api.calls[3])
	assert.Equal(t, apiCall{query: "증시", start: 3, disp: 2}, api.calls[4], "full page asks for the next one")
	for i := 1; i < len(api.times); i++ {
		assert.GreaterOrEqual(t, api.times[i].Sub(api.times[i-1]), 15*time.Millisecond, "calls are throttled")
	}
}

func TestSearchCollector_Limits(t *testing.T) {
	t.Run("display capped at provider limit", func(t *testing.T) {
		c := NewSearchCollector(SearchParams{Display: 500})
		assert.Equal(t, maxDisplay, c.params.Display)
		assert.Equal(t, 1, c.params.MaxPages)
	})

	t.Run("pagination stops at provider start cap", func(t *testing.T) {
		full := items("p", maxDisplay)
		api := &fakeSearchAPI{pages: map[string][][]searchItem{"q": {}}}
		for i := 0; i < 12; i++ {
			page := make([]searchItem, len(full))
			for j := range full {
				page[j] = full[j]
				page[j].OriginalLink = fmt.Sprintf("https://press.example.com/%d/%d", i, j)
			}
			api.pages["q"] = append(api.pages["q"], page)
		}
		ts := httptest.NewServer(api.handler(t))
		defer ts.Close()

		c := NewSearchCollector(SearchParams{Endpoint: ts.URL, ClientID: "id", ClientSecret: "secret", MaxPages: 12})
		results := c.Collect(context.Background(), []string{"q"})
		require.Len(t, results, 1)
		assert.Len(t, results[0].Articles, 10*maxDisplay)

		api.mu.Lock()
		defer api.mu.Unlock()
		require.Len(t, api.calls, 10)
		assert.Equal(t, 901, api.calls[9].start)
	})

	t.Run("disabled without credentials", func(t *testing.T) {
		c := NewSearchCollector(SearchParams{Endpoint: "http://127.0.0.1:1", ClientID: "id"})
		assert.False(t, c.Enabled())
		assert.Empty(t, c.Collect(context.Background(), []string{"q"}))
	})

	t.Run("canceled context stops throttled run", func(t *testing.T) {
		api := &fakeSearchAPI{pages: map[string][][]searchItem{"a": {items("a", 1)}, "b": {items("b", 1)}}}
		ts := httptest.NewServer(api.handler(t))
		defer ts.Close()

		ctx, cancel := context.WithCancel(context.Background())
		c := NewSearchCollector(SearchParams{Endpoint: ts.URL, ClientID: "id", ClientSecret: "secret", Delay: time.Hour})
		go func() {
			time.Sleep(50 * time.Millisecond)
			cancel()
		}()
		results := c.Collect(ctx, []string{"a", "b"})
		require.Len(t, results, 2)
		require.NoError(t, results[0].Err)
		require.ErrorIs(t, results[1].Err, context.Canceled)
	})
}
