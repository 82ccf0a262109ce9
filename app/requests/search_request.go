package requests

// SearchRequest holds the query parameters of the lookup routes.
type SearchRequest struct {
	Query            string `form:"q"`
	MultipleAssigned string `form:"ma" binding:"omitempty,oneof=0 1"` // "1" lists postal codes assigned to several districts
	State            string `form:"st"` // state id prefix, e.g. "09"
	Format           string `form:"format"`
}

// WantsMultipleAssigned reports whether ma=1 was given.
func (r SearchRequest) WantsMultipleAssigned() bool {
	return r.MultipleAssigned == "1"
}

// WantsJSON reports whether format=json was given.
func (r SearchRequest) WantsJSON() bool {
	return r.Format == "json"
}

// InvalidateCacheRequest selects the cache entries to drop.
type InvalidateCacheRequest struct {
	Query string `json:"query"` // empty clears the whole cache
}
