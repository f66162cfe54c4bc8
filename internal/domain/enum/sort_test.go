package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		in      string
		want    SortOrder
		wantErr bool
	}{
		{"", SortAsc, false},
		{"asc", SortAsc, false},
		{"ASC", SortAsc, false},
		{"ascending", SortAsc, false},
		{"desc", SortDesc, false},
		{"DESC", SortDesc, false},
		{"descending", SortDesc, false},
		{"sideways", "", true},
		{"asc; DROP TABLE sales", "", true},
	}

	for _, tt := range tests {
		got, err := ParseSortOrder(tt.in, SortAsc)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestParseSortOrderFallback(t *testing.T) {
	got, err := ParseSortOrder("", SortDesc)
	require.NoError(t, err)
	assert.Equal(t, SortDesc, got)
}

func TestParseProductSortField(t *testing.T) {
	got, err := ParseProductSortField("")
	require.NoError(t, err)
	assert.Equal(t, ProductSortName, got)

	for _, valid := range []string{"name", "stock", "price", "created_at"} {
		_, err := ParseProductSortField(valid)
		assert.NoError(t, err, "input %q", valid)
	}

	_, err = ParseProductSortField("sku")
	assert.Error(t, err)
}

func TestProductSortFieldColumn(t *testing.T) {
	assert.Equal(t, "name", ProductSortName.Column())
	assert.Equal(t, "stock_in_sale_units", ProductSortStock.Column())
	assert.Equal(t, "price_per_sale_unit", ProductSortPrice.Column())
	assert.Equal(t, "created_at", ProductSortCreatedAt.Column())
}

func TestParseSaleSortField(t *testing.T) {
	got, err := ParseSaleSortField("")
	require.NoError(t, err)
	assert.Equal(t, SaleSortDate, got)

	_, err = ParseSaleSortField("seller")
	assert.Error(t, err)
}

func TestSaleSortFieldColumn(t *testing.T) {
	assert.Equal(t, "date", SaleSortDate.Column())
	assert.Equal(t, "total_amount", SaleSortAmount.Column())
	assert.Equal(t, "sale_number", SaleSortSaleNumber.Column())
}

func TestParseUserSortField(t *testing.T) {
	got, err := ParseUserSortField("")
	require.NoError(t, err)
	assert.Equal(t, UserSortName, got)

	_, err = ParseUserSortField("password")
	assert.Error(t, err)
}
