package enum

import "fmt"

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// ParseSortOrder validates a sort direction. The empty string falls back to
// the given default.
func ParseSortOrder(s string, fallback SortOrder) (SortOrder, error) {
	switch s {
	case "":
		return fallback, nil
	case "asc", "ASC", "ascending":
		return SortAsc, nil
	case "desc", "DESC", "descending":
		return SortDesc, nil
	default:
		return "", fmt.Errorf("unknown sort order %q", s)
	}
}

func (o SortOrder) String() string {
	return string(o)
}

// Sortable fields form a closed set per entity, validated once at the HTTP
// boundary instead of passing raw column strings into the query layer.

// ProductSortField selects the product listing sort key.
type ProductSortField string

const (
	ProductSortName      ProductSortField = "name"
	ProductSortStock     ProductSortField = "stock"
	ProductSortPrice     ProductSortField = "price"
	ProductSortCreatedAt ProductSortField = "created_at"
)

// ParseProductSortField validates a product sort field. The empty string
// defaults to sorting by name.
func ParseProductSortField(s string) (ProductSortField, error) {
	switch ProductSortField(s) {
	case "":
		return ProductSortName, nil
	case ProductSortName, ProductSortStock, ProductSortPrice, ProductSortCreatedAt:
		return ProductSortField(s), nil
	default:
		return "", fmt.Errorf("unknown product sort field %q", s)
	}
}

// Column maps the field to its SQL column.
func (f ProductSortField) Column() string {
	switch f {
	case ProductSortStock:
		return "stock_in_sale_units"
	case ProductSortPrice:
		return "price_per_sale_unit"
	case ProductSortCreatedAt:
		return "created_at"
	default:
		return "name"
	}
}

// SaleSortField selects the sale listing sort key.
type SaleSortField string

const (
	SaleSortDate       SaleSortField = "date"
	SaleSortAmount     SaleSortField = "amount"
	SaleSortSaleNumber SaleSortField = "sale_number"
)

// ParseSaleSortField validates a sale sort field. The empty string defaults
// to sorting by date.
func ParseSaleSortField(s string) (SaleSortField, error) {
	switch SaleSortField(s) {
	case "":
		return SaleSortDate, nil
	case SaleSortDate, SaleSortAmount, SaleSortSaleNumber:
		return SaleSortField(s), nil
	default:
		return "", fmt.Errorf("unknown sale sort field %q", s)
	}
}

// Column maps the field to its SQL column.
func (f SaleSortField) Column() string {
	switch f {
	case SaleSortAmount:
		return "total_amount"
	case SaleSortSaleNumber:
		return "sale_number"
	default:
		return "date"
	}
}

// UserSortField selects the user listing sort key.
type UserSortField string

const (
	UserSortName      UserSortField = "name"
	UserSortRole      UserSortField = "role"
	UserSortCreatedAt UserSortField = "created_at"
)

// ParseUserSortField validates a user sort field. The empty string defaults
// to sorting by name.
func ParseUserSortField(s string) (UserSortField, error) {
	switch UserSortField(s) {
	case "":
		return UserSortName, nil
	case UserSortName, UserSortRole, UserSortCreatedAt:
		return UserSortField(s), nil
	default:
		return "", fmt.Errorf("unknown user sort field %q", s)
	}
}

// Column maps the field to its SQL column.
func (f UserSortField) Column() string {
	switch f {
	case UserSortRole:
		return "role"
	case UserSortCreatedAt:
		return "created_at"
	default:
		return "name"
	}
}
