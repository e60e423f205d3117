package etl

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kiosk404/pokedex/internal/pokeapi/service/catalog/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bulbasaurJSON = `{
	"id": 1, "name": "bulbasaur", "height": 7, "weight": 69,
	"types": [
		{"slot": 2, "type": {"name": "poison", "url": ""}},
		{"slot": 1, "type": {"name": "grass", "url": ""}}
	],
	"stats": [
		{"base_stat": 45, "stat": {"name": "hp"}},
		{"base_stat": 49, "stat": {"name": "attack"}},
		{"base_stat": 49, "stat": {"name": "defense"}},
		{"base_stat": 65, "stat": {"name": "special-attack"}},
		{"base_stat": 65, "stat": {"name": "special-defense"}},
		{"base_stat": 45, "stat": {"name": "speed"}}
	]
}`

const pikachuJSON = `{
	"id": 25, "name": "pikachu", "height": 4, "weight": 60,
	"types": [{"slot": 1, "type": {"name": "electric"}}],
	"stats": [
		{"base_stat": 35, "stat": {"name": "hp"}},
		{"base_stat": 55, "stat": {"name": "attack"}},
		{"base_stat": 40, "stat": {"name": "defense"}},
		{"base_stat": 50, "stat": {"name": "special-attack"}},
		{"base_stat": 50, "stat": {"name": "special-defense"}},
		{"base_stat": 90, "stat": {"name": "speed"}}
	]
}`

// pokeAPIStub serves a list of the given names; details come from the map,
// and names without an entry answer 500.
func pokeAPIStub(t *testing.T, details map[string]string, names ...string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var listCalls atomic.Int32
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/v2/pokemon":
			listCalls.Add(1)
			assert.Equal(t, fmt.Sprint(len(names)), r.URL.Query().Get("limit"))
			items := make([]string, len(names))
			for i, n := range names {
				items[i] = fmt.Sprintf(`{"name":%q,"url":"%s/api/v2/pokemon/%s/"}`, n, srv.URL, n)
			}
			_, _ = fmt.Fprintf(w, `{"count":%d,"results":[%s]}`, len(names), strings.Join(items, ","))
		case strings.HasPrefix(r.URL.Path, "/api/v2/pokemon/"):
			name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/v2/pokemon/"), "/")
			body, ok := details[name]
			if !ok {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &listCalls
}

func newTestExtractor(url string) *Extractor {
	return NewExtractor(ExtractConfig{
		SourceURL:    url + "/api/v2/pokemon",
		Timeout:      2 * time.Second,
		RetryMax:     1,
		Concurrency:  4,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 5 * time.Millisecond,
	})
}

func TestExtractMapsDetails(t *testing.T) {
	srv, _ := pokeAPIStub(t, map[string]string{"bulbasaur": bulbasaurJSON, "pikachu": pikachuJSON}, "bulbasaur", "pikachu")

	records, err := newTestExtractor(srv.URL).Extract(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, &entity.PokemonDetail{
		ID: 1, Name: "bulbasaur", Height: 7, Weight: 69,
		Types: []string{"grass", "poison"},
		Stats: entity.PokemonStats{HP: 45, Attack: 49, Defense: 49, SpecialAttack: 65, SpecialDefense: 65, Speed: 45},
	}, records[0], "types follow slot order and hyphenated stats are mapped")
	assert.Equal(t, "pikachu", records[1].Name)
	assert.Equal(t, 90, records[1].Stats.Speed)
}

func TestExtractSkipsFailedDetails(t *testing.T) {
	srv, _ := pokeAPIStub(t, map[string]string{
		"bulbasaur": bulbasaurJSON,
		"pikachu":   pikachuJSON,
		"broken":    `{"id": 99, "name": "broken", "stats": []}`,
	}, "bulbasaur", "missingno", "broken", "pikachu")

	records, err := newTestExtractor(srv.URL).Extract(context.Background(), 4)
	require.NoError(t, err)

	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"bulbasaur", "pikachu"}, names, "failed fetches and incomplete stats are skipped, order kept")
}

func TestExtractFailsOnListError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	records, err := newTestExtractor(srv.URL).Extract(context.Background(), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch pokemon list")
	assert.Nil(t, records)
}

func TestExtractHonorsCancellation(t *testing.T) {
	srv, _ := pokeAPIStub(t, map[string]string{"pikachu": pikachuJSON}, "pikachu")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestExtractor(srv.URL).Extract(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
