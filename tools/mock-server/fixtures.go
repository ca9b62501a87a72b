package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	domain "github.com/donaldgifford/searchselect/pkg/types"
)

// record is one fixture row, kept as raw JSON so it is replayed byte for byte.
type record struct {
	raw    string
	id     string
	name   string
	search string // lowercased nome, descricao and codigo
	active bool
}

// category holds the fixture rows served under one /api/search/{endpoint}.
type category struct {
	info    domain.TypeInfo
	records []record
}

// fixtures maps an endpoint segment (empresas, tarefas, ...) to its rows.
type fixtures map[string]*category

// loadFixtures reads <endpoint>.json for every known search type from dir.
func loadFixtures(dir string) (fixtures, error) {
	out := make(fixtures)
	for _, info := range domain.KnownTypes() {
		path := filepath.Join(dir, info.Endpoint+".json")
		data, err := os.ReadFile(path) //nolint:gosec // fixture dir from trusted CLI flag
		if err != nil {
			return nil, fmt.Errorf("reading fixture %s: %w", path, err)
		}

		records, err := parseRecords(data)
		if err != nil {
			return nil, fmt.Errorf("parsing fixture %s: %w", path, err)
		}
		out[info.Endpoint] = &category{info: info, records: records}
	}
	return out, nil
}

func parseRecords(data []byte) ([]record, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("fixture must be a JSON array")
	}

	var records []record
	var parseErr error
	root.ForEach(func(_, v gjson.Result) bool {
		id := v.Get("id")
		if !id.Exists() {
			parseErr = fmt.Errorf("record %d has no id", len(records))
			return false
		}
		active := v.Get("ativo")
		records = append(records, record{
			raw:  v.Raw,
			id:   id.String(),
			name: v.Get("nome").String(),
			search: strings.ToLower(strings.Join([]string{
				v.Get("nome").String(),
				v.Get("descricao").String(),
				v.Get("codigo").String(),
			}, " ")),
			active: !active.Exists() || active.Bool(),
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	sort.SliceStable(records, func(i, j int) bool { return records[i].name < records[j].name })
	return records, nil
}

// byType finds the category for a search type name (empresa, setor, ...).
func (f fixtures) byType(t string) (*category, bool) {
	info, ok := domain.Lookup(domain.SearchType(t))
	if !ok {
		return nil, false
	}
	c, ok := f[info.Endpoint]
	return c, ok
}

// match returns the rows containing q (case-insensitive) that pass the
// active filter when it is on.
func (c *category) match(q string, activeOnly bool) []record {
	q = strings.ToLower(strings.TrimSpace(q))
	var out []record
	for _, r := range c.records {
		if activeOnly && !r.active {
			continue
		}
		if q != "" && !strings.Contains(r.search, q) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (c *category) countActive() int {
	n := 0
	for _, r := range c.records {
		if r.active {
			n++
		}
	}
	return n
}
