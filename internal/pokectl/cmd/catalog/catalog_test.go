package catalog

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fatih/color"
	"github.com/kiosk404/pokedex/internal/pokectl/cmd/util"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/pokemons/pikachu", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":25,"name":"pikachu","height":4,"weight":60,"types":["electric"],
			"stats":{"hp":35,"attack":55,"defense":40,"special_attack":50,"special_defense":50,"speed":90}}`))
	})
	mux.HandleFunc("/v1/pokemons/missingno", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":110101,"message":"Pokémon não encontrado!"}`))
	})
	mux.HandleFunc("/v1/pokemons", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("type") == "electric" {
			_, _ = w.Write([]byte(`["pikachu","raichu"]`))
			return
		}
		_, _ = w.Write([]byte(`["bulbasaur","pikachu","raichu"]`))
	})
	mux.HandleFunc("/v1/stats/ranking", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("stat") != "speed" || q.Get("limit") != "2" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"code":110002,"message":"Validation failed"}`))
			return
		}
		_, _ = w.Write([]byte(`[{"rank":1,"name":"raichu","value":110},{"rank":2,"name":"pikachu","value":90}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, newCmd func(*util.Factory, util.IOStreams) *cobra.Command, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	srv := catalogServer(t)
	f := util.NewDefaultFactory()
	f.APIServer = srv.URL

	var out bytes.Buffer
	cmd := newCmd(f, util.IOStreams{Out: &out, ErrOut: &out})
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.Execute()
	return out.String(), err
}

func TestGet(t *testing.T) {
	out, err := run(t, NewCmdGet, "pikachu")
	require.NoError(t, err)
	assert.Contains(t, out, "PIKACHU #25")
	assert.Contains(t, out, "electric")
	assert.Regexp(t, `speed\s+90`, out)

	out, err = run(t, NewCmdGet, "pikachu", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"special_attack": 50`)
}

func TestGetNotFound(t *testing.T) {
	_, err := run(t, NewCmdGet, "missingno")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Pokémon não encontrado!", apiErr.Message)
}

func TestList(t *testing.T) {
	out, err := run(t, NewCmdList, "--type", "electric")
	require.NoError(t, err)
	assert.Contains(t, out, "pikachu, raichu")
	assert.Contains(t, out, "2 Pokémon")
}

func TestRanking(t *testing.T) {
	out, err := run(t, NewCmdRanking, "--stat", "speed", "--limit", "2")
	require.NoError(t, err)
	assert.Regexp(t, `RANK\s+NAME\s+SPEED`, out)
	assert.Regexp(t, `1\s+raichu\s+110`, out)

	_, err = run(t, NewCmdRanking, "--stat", "luck")
	assert.ErrorContains(t, err, "Validation failed")

	_, err = run(t, NewCmdRanking, "-o", "yaml")
	assert.ErrorContains(t, err, "unsupported output format")
}
