package catalog

import "errors"

// ErrNotReady is returned by a TablesProvider whose database has not been
// loaded yet. Callers retry; see WaitForTables.
var ErrNotReady = errors.New("database tables not ready")

// TablesProvider gives access to the host's database. This is the
// abstraction point between magpatch and whatever process owns the data.
type TablesProvider interface {
	// Tables returns the host tables, or ErrNotReady (or any other error)
	// while they are unavailable.
	Tables() (*Tables, error)
}
