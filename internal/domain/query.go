package domain

import "github.com/shopspring/decimal"

// Direction restricts a transaction query to one side of the transfer.
type Direction string

const (
	DirectionAny      Direction = "any"
	DirectionSent     Direction = "sent"
	DirectionReceived Direction = "received"
)

// SortField is the key a transaction query orders by.
type SortField string

const (
	SortByCreatedAt SortField = "created_at"
	SortByAmount    SortField = "amount"
	SortByLikes     SortField = "likes"
)

// SortOrder is the direction a transaction query orders in.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Page is 1-indexed pagination. Pages past the end of a result set are
// empty, never an error.
type Page struct {
	Number int
	Size   int
}

// Bounds returns the half-open slice bounds for a result set of n items.
func (p Page) Bounds(n int) (lo, hi int) {
	lo = (p.Number - 1) * p.Size
	if lo >= n {
		return 0, 0
	}
	hi = lo + p.Size
	if hi > n {
		hi = n
	}
	return lo, hi
}

// Valid reports whether the page coordinates are usable.
func (p Page) Valid() bool {
	return p.Number >= 1 && p.Size >= 1
}

// TransactionQuery filters, orders and paginates the acting user's
// transactions. Nil pointer fields mean "no constraint". SortBy and Order
// are required: the engine never assumes a default ordering.
type TransactionQuery struct {
	Counterparty  string
	Description   string // case-insensitive substring match
	CreatedAfter  string // inclusive, lexicographic on RFC3339 strings
	CreatedBefore string // inclusive
	MinLikes      *int
	MaxLikes      *int
	MinAmount     *decimal.Decimal
	MaxAmount     *decimal.Decimal
	Private       *bool
	Direction     Direction
	SortBy        SortField
	Order         SortOrder
	Page          Page
}

// NotificationQuery filters and paginates a recipient's notification feed.
// Read=nil returns both read and unread entries.
type NotificationQuery struct {
	Read *bool
	Page Page
}
