package pokedex

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/kiosk404/pokedex/internal/pkg/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) GetPokemon(ctx context.Context, nameOrID string) tool.Result {
	return m.Called(ctx, nameOrID).Get(0).(tool.Result)
}

func (m *mockBackend) ListByType(ctx context.Context, typeName string) tool.Result {
	return m.Called(ctx, typeName).Get(0).(tool.Result)
}

func (m *mockBackend) TopByStat(ctx context.Context, stat string, n int) tool.Result {
	return m.Called(ctx, stat, n).Get(0).(tool.Result)
}

func run(t *testing.T, b Backend, name, args string) string {
	t.Helper()
	reg, err := NewRegistry(b)
	require.NoError(t, err)
	out := tool.NewExecutor(reg).Execute(context.Background(), []schema.ToolCall{{
		ID:       "call_1",
		Function: schema.FunctionCall{Name: name, Arguments: args},
	}}, nil)
	require.Len(t, out, 1)
	return out[0].Content
}

func TestRegistryAdvertisesFourTools(t *testing.T) {
	reg, err := NewRegistry(new(mockBackend))
	require.NoError(t, err)

	defs := reg.Describe()
	require.Len(t, defs, 4)
	assert.Equal(t, NameBuscarPokemon, defs[0].Name)
	assert.Equal(t, []string{"nome_ou_id"}, defs[0].Required)
	assert.Equal(t, NameListarPorTipo, defs[1].Name)
	assert.Equal(t, []string{"tipo"}, defs[1].Required)
	assert.Equal(t, NameTopNPorStat, defs[2].Name)
	assert.Equal(t, []string{"stat"}, defs[2].Required)
	assert.Equal(t, NameCompararPokemons, defs[3].Name)
	assert.Equal(t, []string{"pokemon_a", "pokemon_b"}, defs[3].Required)

	stat, ok := defs[2].Schema.Parameters.Properties.Get("stat")
	require.True(t, ok)
	assert.Len(t, stat.Enum, 6)
}

func TestBuscarPokemonNormalizesName(t *testing.T) {
	b := new(mockBackend)
	b.On("GetPokemon", mock.Anything, "pikachu").Return(tool.OK(map[string]any{"name": "pikachu", "type": "electric"}))

	content := run(t, b, NameBuscarPokemon, `{"nome_ou_id":"  Pikachu "}`)
	assert.JSONEq(t, `{"name":"pikachu","type":"electric"}`, content)
	b.AssertExpectations(t)
}

func TestListarPorTipo(t *testing.T) {
	b := new(mockBackend)
	b.On("ListByType", mock.Anything, "fire").Return(tool.OK([]string{"charmander"}))

	assert.JSONEq(t, `["charmander"]`, run(t, b, NameListarPorTipo, `{"tipo":"Fire"}`))
}

func TestTopNPorStatDefaultsToFive(t *testing.T) {
	b := new(mockBackend)
	b.On("TopByStat", mock.Anything, "attack", DefaultTopN).Return(tool.OK([]any{}))
	b.On("TopByStat", mock.Anything, "speed", 3).Return(tool.OK([]any{}))

	run(t, b, NameTopNPorStat, `{"stat":"attack"}`)
	run(t, b, NameTopNPorStat, `{"stat":"speed","n":3}`)
	b.AssertExpectations(t)
}

func TestTopNPorStatRejectsUnknownStat(t *testing.T) {
	b := new(mockBackend)
	content := run(t, b, NameTopNPorStat, `{"stat":"luck"}`)
	assert.Contains(t, content, `"error"`)
	b.AssertNotCalled(t, "TopByStat", mock.Anything, mock.Anything, mock.Anything)
}

func TestCompararPokemonsCombinesBothLookups(t *testing.T) {
	b := new(mockBackend)
	b.On("GetPokemon", mock.Anything, "pikachu").Return(tool.OK(map[string]any{"id": 25}))
	b.On("GetPokemon", mock.Anything, "missingno").Return(tool.Errorf("%s", MsgNotFound))

	content := run(t, b, NameCompararPokemons, `{"pokemon_a":"Pikachu","pokemon_b":"missingno"}`)
	assert.JSONEq(t, `{"pokemon_a":{"id":25},"pokemon_b":{"error":"Recurso não encontrado."}}`, content)
}
