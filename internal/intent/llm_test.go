package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeIntent_PlainObject(t *testing.T) {
	in, err := decodeIntent(`{"kind":"snapshot","address":"` + testAddress + `","date":"2025-09-30"}`)
	require.NoError(t, err)
	assert.Equal(t, KindSnapshot, in.Kind)
	assert.Equal(t, "2025-09-30", in.Date)
}

func TestDecodeIntent_FencedObject(t *testing.T) {
	reply := "```json\n{\"kind\":\"comparison\",\"address\":\"" + testAddress + "\",\"date1\":\"2025-09-30\",\"date2\":\"2025-12-31\"}\n```"
	in, err := decodeIntent(reply)
	require.NoError(t, err)
	assert.Equal(t, KindComparison, in.Kind)
	assert.Equal(t, "2025-09-30", in.Date1)
	assert.Equal(t, "2025-12-31", in.Date2)
}

func TestDecodeIntent_Rejections(t *testing.T) {
	cases := []struct {
		name  string
		reply string
	}{
		{"surrounding prose", `Sure! Here is the intent: {"kind":"help"}`},
		{"unknown kind", `{"kind":"forecast","address":"x"}`},
		{"unknown field", `{"kind":"help","confidence":0.9}`},
		{"not json", "SELECT * FROM positions"},
		{"empty", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeIntent(tc.reply)
			assert.Error(t, err)
		})
	}
}

type stubParser struct {
	in  Intent
	err error
}

func (s stubParser) Parse(context.Context, string) (Intent, error) {
	return s.in, s.err
}

func TestChainParser_PrimarySuccess(t *testing.T) {
	chain := &ChainParser{
		Primary:  stubParser{in: Intent{Kind: KindHelp}},
		Fallback: FallbackParser{},
	}
	in, err := chain.Parse(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, KindHelp, in.Kind)
}

func TestChainParser_FallsBackOnPrimaryError(t *testing.T) {
	chain := &ChainParser{
		Primary:  stubParser{err: errors.New("rate limited")},
		Fallback: FallbackParser{},
	}
	in, err := chain.Parse(context.Background(), "What did "+testAddress+" hold on 2025-09-30?")
	require.NoError(t, err)
	assert.Equal(t, KindSnapshot, in.Kind)
}

func TestChainParser_DisabledPrimaryIsSkipped(t *testing.T) {
	chain := &ChainParser{
		Primary:  stubParser{in: Intent{Kind: KindHelp}},
		Fallback: FallbackParser{},
		PrimaryEnabled: func(context.Context) bool {
			return false
		},
	}
	in, err := chain.Parse(context.Background(), "What did "+testAddress+" hold on 2025-09-30?")
	require.NoError(t, err)
	assert.Equal(t, KindSnapshot, in.Kind, "fallback should have answered")
}

func TestChainParser_NoPrimary(t *testing.T) {
	chain := &ChainParser{Fallback: FallbackParser{}}
	in, err := chain.Parse(context.Background(), "help")
	require.NoError(t, err)
	assert.Equal(t, KindHelp, in.Kind)
}
