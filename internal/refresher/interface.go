package refresher

// IRefresher triggers a refresh cycle across all upstream sources.
// RefreshAll is idempotent and safe to invoke while a prior cycle is still
// in flight; overlapping cycles rely on the price cache's write atomicity.
type IRefresher interface {
	RefreshAll()
}
