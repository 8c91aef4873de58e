// Package geo serves country, state and city names from an embedded dataset.
package geo

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed locations.yaml
var embedded []byte

type State struct {
	Name   string   `yaml:"name"`
	Cities []string `yaml:"cities"`
}

type Country struct {
	Name   string  `yaml:"name"`
	Code   string  `yaml:"code"`
	States []State `yaml:"states"`
}

// Dataset is immutable after Parse and safe for concurrent readers.
type Dataset struct {
	countries []Country
	byName    map[string]*Country
}

func Load() (*Dataset, error) { return Parse(embedded) }

func Parse(b []byte) (*Dataset, error) {
	var doc struct {
		Countries []Country `yaml:"countries"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("geo: parse dataset: %w", err)
	}
	d := &Dataset{countries: doc.Countries, byName: make(map[string]*Country, len(doc.Countries))}
	for i := range d.countries {
		c := &d.countries[i]
		if c.Name == "" {
			return nil, fmt.Errorf("geo: country #%d has no name", i)
		}
		if _, dup := d.byName[c.Name]; dup {
			return nil, fmt.Errorf("geo: duplicate country %q", c.Name)
		}
		d.byName[c.Name] = c
	}
	return d, nil
}

func (d *Dataset) Countries() []string {
	out := make([]string, 0, len(d.countries))
	for _, c := range d.countries {
		out = append(out, c.Name)
	}
	return out
}

// States matches country by exact, case-sensitive name. Unknown countries yield an empty list.
func (d *Dataset) States(country string) []string {
	c, ok := d.byName[country]
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(c.States))
	for _, s := range c.States {
		out = append(out, s.Name)
	}
	return out
}

func (d *Dataset) Cities(country, state string) []string {
	c, ok := d.byName[country]
	if !ok {
		return []string{}
	}
	i := slices.IndexFunc(c.States, func(s State) bool { return s.Name == state })
	if i < 0 {
		return []string{}
	}
	return append([]string{}, c.States[i].Cities...)
}
