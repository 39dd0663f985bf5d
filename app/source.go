package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/miosa/marquee/client"
	"github.com/miosa/marquee/msg"
)

// loadTimeout bounds a full catalog fetch from the server.
const loadTimeout = 2 * time.Minute

var errNoSource = errors.New("no catalog source configured")

// Source says where the catalog comes from. The first non-zero field wins:
// Sample, then File, then Client.
type Source struct {
	Sample int
	File   string
	Client *client.Client
	Kinds  []client.Kind
}

// String names the source for the header and toasts.
func (s Source) String() string {
	switch {
	case s.Sample > 0:
		return fmt.Sprintf("sample (%d)", s.Sample)
	case s.File != "":
		return s.File
	case s.Client != nil:
		return s.Client.BaseURL
	default:
		return "none"
	}
}

// Load reads the whole catalog.
func (s Source) Load(ctx context.Context) ([]client.Item, error) {
	switch {
	case s.Sample > 0:
		return client.Sample(s.Sample), nil
	case s.File != "":
		return client.LoadFile(s.File)
	case s.Client != nil:
		return s.Client.FetchCatalog(ctx, s.Kinds)
	default:
		return nil, errNoSource
	}
}

// loadCmd loads the catalog off the UI goroutine.
func loadCmd(src Source) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		start := time.Now()
		items, err := src.Load(ctx)
		return msg.CatalogLoaded{
			Items:   items,
			Source:  src.String(),
			Elapsed: time.Since(start),
			Err:     err,
		}
	}
}
