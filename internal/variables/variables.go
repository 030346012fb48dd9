// Package variables loads the variable dictionary describing every known
// dataset column: its display name, the raw spreadsheet column name(s) it
// may appear under, its value kind, and its grouping in the variable tree.
// The dictionary is loaded once at startup and read-only afterwards.
package variables

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ValueKind classifies what a variable's cells hold
type ValueKind int

const (
	KindText ValueKind = iota
	KindNumeric
	KindDate
)

// String returns the dictionary's Spanish label for the kind
func (k ValueKind) String() string {
	switch k {
	case KindNumeric:
		return "Numérica"
	case KindDate:
		return "Fecha"
	default:
		return "Texto"
	}
}

// Definition describes one variable from the dictionary
type Definition struct {
	CanonicalName string
	SourceAliases []string
	Kind          ValueKind
	GroupLabel    string
	SubHierarchy  []string
}

// Dictionary is the ordered, immutable set of variable definitions
type Dictionary struct {
	defs []Definition
}

// record mirrors one entry of the YAML resource. excel_name may be a single
// scalar or a list of raw column names.
type record struct {
	Origin       string    `yaml:"origin"`
	Name         string    `yaml:"name"`
	Type         string    `yaml:"type"`
	ExcelName    aliasList `yaml:"excel_name"`
	SubHierarchy []string  `yaml:"subhierarchy"`
}

type fileFormat struct {
	Variables []record `yaml:"variables"`
}

type aliasList []string

// UnmarshalYAML accepts either a scalar or a sequence of strings
func (a *aliasList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*a = aliasList{s}
		return nil
	case yaml.SequenceNode:
		var ss []string
		if err := value.Decode(&ss); err != nil {
			return err
		}
		*a = aliasList(ss)
		return nil
	default:
		return fmt.Errorf("excel_name must be a string or a list of strings")
	}
}

// Load reads the variable dictionary from a YAML file
func Load(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read variables file %s: %w", path, err)
	}

	dict, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse variables file %s: %w", path, err)
	}
	return dict, nil
}

// Parse decodes a variable dictionary from YAML bytes
func Parse(data []byte) (*Dictionary, error) {
	var file fileFormat
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid variables YAML: %w", err)
	}

	defs := make([]Definition, 0, len(file.Variables))
	for i, rec := range file.Variables {
		if rec.Name == "" {
			return nil, fmt.Errorf("variable %d has no name", i)
		}
		defs = append(defs, Definition{
			CanonicalName: rec.Name,
			SourceAliases: rec.ExcelName,
			Kind:          parseKind(rec.Type),
			GroupLabel:    rec.Origin,
			SubHierarchy:  rec.SubHierarchy,
		})
	}
	return &Dictionary{defs: defs}, nil
}

func parseKind(label string) ValueKind {
	switch label {
	case "Numérica":
		return KindNumeric
	case "Fecha":
		return KindDate
	default:
		return KindText
	}
}

// Definitions returns the definitions in dictionary order
func (d *Dictionary) Definitions() []Definition {
	return d.defs
}

// Len returns the number of definitions
func (d *Dictionary) Len() int {
	return len(d.defs)
}

// Find returns the definition with the given canonical name
func (d *Dictionary) Find(canonicalName string) (Definition, bool) {
	for _, def := range d.defs {
		if def.CanonicalName == canonicalName {
			return def, true
		}
	}
	return Definition{}, false
}

// AliasMap maps every source alias to its canonical name. When two
// definitions claim the same alias, the first one in dictionary order wins.
func (d *Dictionary) AliasMap() map[string]string {
	mapping := make(map[string]string)
	for _, def := range d.defs {
		for _, alias := range def.SourceAliases {
			if _, taken := mapping[alias]; !taken {
				mapping[alias] = def.CanonicalName
			}
		}
	}
	return mapping
}

// NumericNames returns the canonical names of all numeric variables, in
// dictionary order
func (d *Dictionary) NumericNames() []string {
	var names []string
	for _, def := range d.defs {
		if def.Kind == KindNumeric {
			names = append(names, def.CanonicalName)
		}
	}
	return names
}
