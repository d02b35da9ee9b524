package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mechbay/mechtbl/pkg/codec"
	"github.com/mechbay/mechtbl/pkg/tbl"
)

// FieldDef is one schema field of a record table. Definition order is the
// on-disk field order.
type FieldDef struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// TableDef describes one table file. Kind selects the container: "record"
// (schema-driven, the default), "string", or "voice". Magic is hex-encoded;
// string and voice tables fall back to their well-known magic when it is
// omitted.
type TableDef struct {
	File       string     `yaml:"file"`
	Kind       string     `yaml:"kind"`
	Magic      string     `yaml:"magic"`
	CountWidth int        `yaml:"count_width"`
	Fields     []FieldDef `yaml:"fields"`
}

// LoadTables reads a table-definition file.
func LoadTables(path string) ([]TableDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table definitions: %w", err)
	}
	var defs []TableDef
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("failed to parse table definitions: %w", err)
	}
	for i, def := range defs {
		if def.File == "" {
			return nil, fmt.Errorf("table definition %d has no file name", i)
		}
	}
	return defs, nil
}

// FindTable returns the definition whose file name matches.
func FindTable(defs []TableDef, file string) (TableDef, error) {
	for _, def := range defs {
		if def.File == file {
			return def, nil
		}
	}
	return TableDef{}, fmt.Errorf("no table definition for %q", file)
}

// Build resolves the definition into a table codec. Field type tags are
// parsed here, once, so a bad definition fails before any file is touched.
func (d TableDef) Build() (tbl.Format, error) {
	layout, err := d.layout()
	if err != nil {
		return nil, err
	}

	switch d.Kind {
	case "string":
		if layout.Magic == nil {
			layout.Magic = tbl.StringTBLMagic
		}
		return &tbl.StringTable{Layout: layout}, nil
	case "voice":
		if layout.Magic == nil {
			layout.Magic = tbl.StageVoiceMagic
		}
		return &tbl.VoiceTable{StringTable: tbl.StringTable{Layout: layout}}, nil
	case "", "record":
		if layout.Magic == nil {
			return nil, fmt.Errorf("table %q: record tables need a magic header", d.File)
		}
		if len(d.Fields) == 0 {
			return nil, fmt.Errorf("table %q: record tables need fields", d.File)
		}
		schema := make(codec.Schema, 0, len(d.Fields))
		for _, f := range d.Fields {
			ft, err := codec.ParseFieldType(f.Type)
			if err != nil {
				return nil, fmt.Errorf("table %q field %q: %w", d.File, f.Name, err)
			}
			schema = append(schema, codec.Field{Name: f.Name, Type: ft})
		}
		return &tbl.Table{Layout: layout, Schema: schema}, nil
	default:
		return nil, fmt.Errorf("table %q: unknown kind %q", d.File, d.Kind)
	}
}

func (d TableDef) layout() (tbl.Layout, error) {
	layout := tbl.Layout{CountWidth: d.CountWidth}
	if d.Magic == "" {
		return layout, nil
	}
	magic, err := hex.DecodeString(strings.ReplaceAll(d.Magic, " ", ""))
	if err != nil {
		return tbl.Layout{}, fmt.Errorf("table %q: bad magic %q: %w", d.File, d.Magic, err)
	}
	layout.Magic = magic
	return layout, nil
}
