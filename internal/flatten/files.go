package flatten

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"football-xg-lab/internal/domain"
)

// ProcessPlayerFile reads one cached player statistics file and flattens
// every player entry. The file carries a {"players": [...]} document.
func (f *PlayerFlattener) ProcessPlayerFile(path string) ([]*domain.PlayerMatchStat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read player file: %w", err)
	}

	var doc struct {
		Players []map[string]any `json:"players"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode player file %s: %w", filepath.Base(path), err)
	}

	rows := make([]*domain.PlayerMatchStat, 0, len(doc.Players))
	for _, p := range doc.Players {
		row, err := f.Flatten(p)
		if err != nil {
			return nil, fmt.Errorf("flatten player in %s: %w", filepath.Base(path), err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// ProcessPlayerDir flattens every JSON file in a directory of cached player
// statistics, in lexical file order.
func (f *PlayerFlattener) ProcessPlayerDir(dir string) ([]*domain.PlayerMatchStat, error) {
	files, err := listJSONFiles(dir)
	if err != nil {
		return nil, err
	}

	var rows []*domain.PlayerMatchStat
	for _, file := range files {
		fileRows, err := f.ProcessPlayerFile(filepath.Join(dir, file))
		if err != nil {
			return nil, err
		}
		rows = append(rows, fileRows...)
	}

	return rows, nil
}

// ProcessFixtureFile reads one cached fixtures file and flattens every
// fixture entry. The file carries a {"fixtures": [...]} document.
func ProcessFixtureFile(path string) ([]*domain.Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture file: %w", err)
	}

	var doc struct {
		Fixtures []map[string]any `json:"fixtures"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode fixture file %s: %w", filepath.Base(path), err)
	}

	rows := make([]*domain.Fixture, 0, len(doc.Fixtures))
	for _, fx := range doc.Fixtures {
		row, err := FlattenFixture(fx)
		if err != nil {
			return nil, fmt.Errorf("flatten fixture in %s: %w", filepath.Base(path), err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func listJSONFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}
