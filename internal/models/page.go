package models

// ListState is the loading state of the order list.
type ListState string

const (
	ListIdle             ListState = "Idle"
	ListLoadingFirstPage ListState = "LoadingFirstPage"
	ListLoadingNextPage  ListState = "LoadingNextPage"
	ListReady            ListState = "Ready"
	ListError            ListState = "Error"
)

// PageState is a snapshot of the paginated order list.
type PageState struct {
	VendorID   string
	Selection  FilterSelection
	Items      []Order
	PageNumber int
	HasMore    bool
	State      ListState
	Refreshing bool
	LastError  error
}

// Loading reports whether a page request is in flight.
func (p PageState) Loading() bool {
	return p.State == ListLoadingFirstPage || p.State == ListLoadingNextPage
}
