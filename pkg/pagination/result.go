package pagination

// Result is a cursor-paginated page of items.
// Generic type T allows reuse across different entity types.
type Result[T any] struct {
	Items      []T     `json:"items"`
	NextCursor *string `json:"next_cursor,omitempty"`
	HasMore    bool    `json:"has_more"`
}

// NewResult builds a page from items fetched with limit+1:
// the extra item, when present, is trimmed and marks HasMore, and
// NextCursor is derived from the last returned item.
func NewResult[T any](items []T, limit int, cursorFn func(T) (string, error)) (*Result[T], error) {
	hasMore := len(items) > limit

	if hasMore {
		items = items[:limit]
	}

	result := &Result[T]{
		Items:   items,
		HasMore: hasMore,
	}

	if hasMore && len(items) > 0 {
		cursor, err := cursorFn(items[len(items)-1])
		if err != nil {
			return nil, err
		}
		result.NextCursor = &cursor
	}

	return result, nil
}

// Map converts a page of one item type into another, preserving the
// pagination info.
func Map[T, U any](in *Result[T], fn func(T) U) *Result[U] {
	out := &Result[U]{
		NextCursor: in.NextCursor,
		HasMore:    in.HasMore,
		Items:      make([]U, len(in.Items)),
	}
	for i, item := range in.Items {
		out.Items[i] = fn(item)
	}
	return out
}
