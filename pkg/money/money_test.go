package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Money
		wantErr bool
	}{
		{name: "whole units", input: "12", want: 1200},
		{name: "one decimal", input: "12.5", want: 1250},
		{name: "two decimals", input: "12.50", want: 1250},
		{name: "zero", input: "0", want: 0},
		{name: "cents only", input: ".99", want: 99},
		{name: "negative", input: "-3.25", want: -325},
		{name: "explicit plus", input: "+1.00", want: 100},
		{name: "surrounding spaces", input: " 7.10 ", want: 710},
		{name: "sub-cent precision", input: "1.005", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "lone dot", input: ".", wantErr: true},
		{name: "bad fraction", input: "1.x5", wantErr: true},
		{name: "signed fraction", input: "1.-5", wantErr: true},
		{name: "plus in fraction", input: "1.+5", wantErr: true},
		{name: "double dot", input: "1..5", wantErr: true},
		{name: "sign inside units", input: "1-2.00", wantErr: true},
		{name: "units overflow", input: "92233720368547758.08", wantErr: true},
		{name: "huge digit run", input: "99999999999999999999.00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArithmeticIsExact(t *testing.T) {
	// 0.10 + 0.20 must be exactly 0.30, the classic float failure case.
	a, err := Parse("0.10")
	require.NoError(t, err)
	b, err := Parse("0.20")
	require.NoError(t, err)
	assert.Equal(t, FromCents(30), a.Add(b))

	// Summing a price over many lines never drifts.
	price, err := Parse("19.99")
	require.NoError(t, err)
	var total Money
	for i := 0; i < 1000; i++ {
		total = total.Add(price)
	}
	assert.Equal(t, price.MulInt(1000), total)
	assert.Equal(t, "19990.00", total.String())
}

func TestString(t *testing.T) {
	assert.Equal(t, "12.50", FromCents(1250).String())
	assert.Equal(t, "0.05", FromCents(5).String())
	assert.Equal(t, "-0.05", FromCents(-5).String())
	assert.Equal(t, "0.00", Zero.String())
	assert.Equal(t, "100.00", FromUnits(100).String())
}

func TestJSONRoundTrip(t *testing.T) {
	type payload struct {
		Price Money `json:"price"`
	}

	out, err := json.Marshal(payload{Price: FromCents(1250)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":12.50}`, string(out))

	var in payload
	require.NoError(t, json.Unmarshal([]byte(`{"price":12.5}`), &in))
	assert.Equal(t, FromCents(1250), in.Price)

	// Quoted decimal strings are accepted too.
	require.NoError(t, json.Unmarshal([]byte(`{"price":"3.99"}`), &in))
	assert.Equal(t, FromCents(399), in.Price)

	// Sub-cent payloads are rejected, not rounded.
	assert.Error(t, json.Unmarshal([]byte(`{"price":1.005}`), &in))
}
