package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
)

// LoadFile reads a catalog from disk. The file holds either a JSON array of
// items or a single catalog page object. Items without an ID get one derived
// from their position.
func LoadFile(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	var items []Item
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		var page CatalogPage
		if err := json.Unmarshal(trimmed, &page); err != nil {
			return nil, fmt.Errorf("decode catalog %s: %w", path, err)
		}
		items = page.Items
	} else if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = fmt.Sprintf("file-%05d", i)
		}
		if items[i].Kind == "" {
			items[i].Kind = KindMovie
		}
	}
	return items, nil
}

var (
	sampleAdjectives = []string{
		"Silent", "Crimson", "Hollow", "Electric", "Last", "Midnight", "Broken",
		"Golden", "Distant", "Savage", "Quiet", "Northern", "Burning", "Paper",
	}
	sampleNouns = []string{
		"Harbor", "Frontier", "Orchard", "Signal", "Empire", "Tide", "Witness",
		"Garden", "Machine", "River", "Kingdom", "Lantern", "Circuit", "Summer",
	}
	sampleGenres = []string{
		"Drama", "Comedy", "Thriller", "Sci-Fi", "Documentary", "Animation",
		"Horror", "Romance", "Crime", "Adventure",
	}
)

// Sample returns n generated items. The output depends only on n, so demo
// sessions and tests see the same catalog every run.
func Sample(n int) []Item {
	r := rand.New(rand.NewPCG(0x6d61727175656500, uint64(n)))
	items := make([]Item, 0, max(n, 0))
	for i := range max(n, 0) {
		title := sampleAdjectives[r.IntN(len(sampleAdjectives))] + " " + sampleNouns[r.IntN(len(sampleNouns))]
		if r.IntN(4) == 0 {
			title += fmt.Sprintf(" %d", 2+r.IntN(3))
		}
		it := Item{
			ID:     fmt.Sprintf("sample-%05d", i),
			Title:  title,
			Kind:   KindMovie,
			Year:   1960 + r.IntN(66),
			Rating: float64(10+r.IntN(91)) / 10,
		}
		g := r.IntN(len(sampleGenres))
		it.Genres = []string{sampleGenres[g], sampleGenres[(g+1+r.IntN(3))%len(sampleGenres)]}
		if r.IntN(3) == 0 {
			it.Kind = KindShow
			it.Seasons = 1 + r.IntN(9)
		} else {
			it.Runtime = 80 + r.IntN(90)
		}
		it.Overview = sampleOverview(it)
		items = append(items, it)
	}
	return items
}

func sampleOverview(it Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A %s about the **%s**", strings.ToLower(it.Genres[0]), strings.ToLower(it.Title))
	fmt.Fprintf(&b, ", with a streak of %s.\n\n", strings.ToLower(it.Genres[1]))
	b.WriteString("- Released " + fmt.Sprint(it.Year) + "\n")
	if it.Kind == KindShow {
		fmt.Fprintf(&b, "- %d seasons\n", it.Seasons)
	} else {
		fmt.Fprintf(&b, "- %d minutes\n", it.Runtime)
	}
	return b.String()
}
