package dashboard

import "inventory-dashboard/internal/models"

// State is the lifecycle of a view: Loading until the one fetch resolves,
// then Ready for good.
type State interface {
	isState()
}

// Loading is the initial state. Nothing has been fetched yet.
type Loading struct{}

// Ready is terminal. Err is set when the fetch failed; Items then holds the
// collection the view had before the attempt, which is empty on first load.
type Ready struct {
	Items []models.Item
	Err   error
}

func (Loading) isState() {}
func (Ready) isState()   {}

// Failed reports whether the load ended in an error.
func (r Ready) Failed() bool {
	return r.Err != nil
}
