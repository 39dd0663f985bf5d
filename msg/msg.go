// Package msg defines the tea.Msg types dispatched between the marquee app
// and the commands it starts.
package msg

import (
	"time"

	"github.com/miosa/marquee/client"
)

// -- Catalog --

// CatalogLoaded carries the result of a catalog load. Source names where it
// came from ("sample", a file path or the server URL).
type CatalogLoaded struct {
	Items   []client.Item
	Source  string
	Elapsed time.Duration
	Err     error
}

// -- Config --

// ConfigSaved reports the outcome of persisting marquee.toml.
type ConfigSaved struct {
	Err error
}
