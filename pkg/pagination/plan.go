package pagination

import (
	"fmt"
	"strings"
)

// SortOrder is the direction of a listing.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

func ParseSortOrder(s string) (SortOrder, error) {
	if s == "" {
		return SortDesc, nil
	}
	so := SortOrder(strings.ToUpper(s))
	switch so {
	case SortAsc, SortDesc:
		return so, nil
	default:
		return "", fmt.Errorf("invalid sort order: %q", s)
	}
}

// Request is the caller-supplied pagination input. Every field is
// optional; absent fields fall back to the listing's defaults.
type Request struct {
	Limit        int    `json:"limit,omitempty" query:"limit"`
	After        string `json:"after,omitempty" query:"after"`
	OrderByField string `json:"orderByField,omitempty" query:"orderByField"`
	SortOrder    string `json:"sortOrder,omitempty" query:"sortOrder"`
}

// Plan is the normalized (order field, direction, limit, cursor) tuple
// handed verbatim to the primary store.
type Plan struct {
	OrderByField string
	SortOrder    SortOrder
	Limit        int
	Cursor       string
}

// Defaults is the per-listing default set a request is merged over.
type Defaults struct {
	OrderByField string
	SortOrder    SortOrder
	Limit        int
}

// PublishedAtDesc orders listings by publish date, newest first. This
// is the default for every article listing.
var PublishedAtDesc = Defaults{
	OrderByField: "publishedAt",
	SortOrder:    SortDesc,
	Limit:        DefaultLimit,
}

// Build merges a request over the defaults field by field: any field
// present in the request wins. A nil request yields the defaults.
func Build(req *Request, def Defaults) (Plan, error) {
	plan := Plan{
		OrderByField: def.OrderByField,
		SortOrder:    def.SortOrder,
		Limit:        def.Limit,
	}
	if req == nil {
		return plan, nil
	}

	if req.OrderByField != "" {
		plan.OrderByField = req.OrderByField
	}
	if req.SortOrder != "" {
		so, err := ParseSortOrder(req.SortOrder)
		if err != nil {
			return Plan{}, err
		}
		plan.SortOrder = so
	}
	if req.Limit != 0 {
		if req.Limit < 0 {
			return Plan{}, fmt.Errorf("limit must be positive, got %d", req.Limit)
		}
		plan.Limit = req.Limit
	}
	plan.Cursor = req.After

	return plan, nil
}
