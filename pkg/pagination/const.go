package pagination

// DefaultLimit is the page size used when a listing does not ask for one.
const DefaultLimit = 25

// MaxLimit is the ceiling the primary store applies to a requested
// limit. The planner itself never clamps; capping is the store's
// contract.
const MaxLimit = 1_000
