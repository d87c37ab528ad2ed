package importer

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// MappingConfig is the YAML header mapping for spreadsheet and CSV sources.
//
//	version: 1
//	sheet: Inventory
//	columns:
//	  product_name: ["Product Name", "Name"]
//	  last_updated: ["Last Updated", "Updated"]
//
// Every field matches its own name case-insensitively; aliases add more
// accepted header texts.
type MappingConfig struct {
	Version int                 `yaml:"version"`
	Sheet   string              `yaml:"sheet"`
	Columns map[string][]string `yaml:"columns"`
}

// LoadMapping reads a mapping file.
func LoadMapping(path string) (*MappingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping config: %w", err)
	}
	return ParseMapping(data)
}

// ParseMapping decodes and checks a mapping document.
func ParseMapping(data []byte) (*MappingConfig, error) {
	var m MappingConfig
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse mapping config: %w", err)
	}
	if m.Version == 0 {
		m.Version = 1
	}
	if m.Version != 1 {
		return nil, fmt.Errorf("unsupported mapping version %d", m.Version)
	}
	for name := range m.Columns {
		if !knownField(name) {
			return nil, fmt.Errorf("mapping names unknown field %q", name)
		}
	}
	return &m, nil
}

func knownField(name string) bool {
	for _, f := range fieldNames {
		if f == name {
			return true
		}
	}
	return false
}

// resolve locates every field in a header row.
func (m *MappingConfig) resolve(header []string) (columnIndex, error) {
	byHeader := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToUpper(strings.TrimSpace(h))
		if key == "" {
			continue
		}
		if _, dup := byHeader[key]; !dup {
			byHeader[key] = i
		}
	}

	var cols columnIndex
	var missing []string
	for f := field(0); f < numFields; f++ {
		name := fieldNames[f]
		candidates := append([]string{name}, m.Columns[name]...)
		found := -1
		for _, c := range candidates {
			if i, ok := byHeader[strings.ToUpper(strings.TrimSpace(c))]; ok {
				found = i
				break
			}
		}
		if found < 0 {
			missing = append(missing, name)
			continue
		}
		cols[f] = found
	}
	if len(missing) > 0 {
		return columnIndex{}, fmt.Errorf("header is missing columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}
