package config

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mechbay/mechtbl/pkg/tbl"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "./data", config.DataDir)
	assert.Equal(t, 8080, config.Port)
	assert.Equal(t, "127.0.0.1", config.Bind)
	assert.Equal(t, "auto", config.APIKey)
	assert.Equal(t, "./tables.yaml", config.Tables)
}

func TestGenerateAPIKey(t *testing.T) {
	key, err := GenerateAPIKey(32)
	require.NoError(t, err)
	assert.Len(t, key, 64) // 32 bytes = 64 hex characters

	_, err = hex.DecodeString(key)
	assert.NoError(t, err)

	other, err := GenerateAPIKey(32)
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestSaveLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	original := &Config{
		DataDir: "/srv/gdata",
		Port:    9000,
		Bind:    "0.0.0.0",
		APIKey:  "secret",
		Tables:  "/srv/gdata/tables.yaml",
	}
	require.NoError(t, SaveConfig(original, configPath))

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestBootstrapConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	config, err := BootstrapConfig(configPath, "/srv/gdata")
	require.NoError(t, err)
	assert.Equal(t, "/srv/gdata", config.DataDir)
	assert.NotEqual(t, "auto", config.APIKey)
	assert.True(t, ConfigExists(configPath))
}

const sampleTables = `
- file: MachineSpec.cdb
  magic: "4d53544200010100"
  fields:
    - name: unit_id
      type: guid
    - name: series
      type: series_guid
    - name: cost
      type: uint4
    - name: name
      type: len_string
- file: StageList.tbl
  kind: string
- file: StageVoice.tbl
  kind: voice
`

func TestLoadTables(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTables), 0644))

	defs, err := LoadTables(path)
	require.NoError(t, err)
	require.Len(t, defs, 3)

	assert.Equal(t, "MachineSpec.cdb", defs[0].File)
	require.Len(t, defs[0].Fields, 4)
	// Definition order is the on-disk field order.
	assert.Equal(t, "unit_id", defs[0].Fields[0].Name)
	assert.Equal(t, "name", defs[0].Fields[3].Name)

	def, err := FindTable(defs, "StageVoice.tbl")
	require.NoError(t, err)
	assert.Equal(t, "voice", def.Kind)

	_, err = FindTable(defs, "missing.tbl")
	require.Error(t, err)
}

func TestTableDefBuild(t *testing.T) {
	record := TableDef{
		File:  "MachineSpec.cdb",
		Magic: "4d 53 54 42 00 01 01 00",
		Fields: []FieldDef{
			{Name: "unit_id", Type: "guid"},
			{Name: "cost", Type: "uint4"},
		},
	}
	format, err := record.Build()
	require.NoError(t, err)
	table, ok := format.(*tbl.Table)
	require.True(t, ok)
	assert.Equal(t, []byte{0x4d, 0x53, 0x54, 0x42, 0x00, 0x01, 0x01, 0x00}, table.Magic)
	require.Len(t, table.Schema, 2)
	assert.Equal(t, "unit_id", table.Schema[0].Name)

	str, err := TableDef{File: "Strings.tbl", Kind: "string"}.Build()
	require.NoError(t, err)
	st, ok := str.(*tbl.StringTable)
	require.True(t, ok)
	assert.Equal(t, tbl.StringTBLMagic, st.Magic)

	voice, err := TableDef{File: "StageVoice.tbl", Kind: "voice"}.Build()
	require.NoError(t, err)
	vt, ok := voice.(*tbl.VoiceTable)
	require.True(t, ok)
	assert.Equal(t, tbl.StageVoiceMagic, vt.Magic)
}

func TestTableDefBuildErrors(t *testing.T) {
	cases := []struct {
		name string
		def  TableDef
	}{
		{"no magic", TableDef{File: "x.cdb", Fields: []FieldDef{{Name: "a", Type: "uint4"}}}},
		{"no fields", TableDef{File: "x.cdb", Magic: "00"}},
		{"bad magic", TableDef{File: "x.cdb", Magic: "zz", Fields: []FieldDef{{Name: "a", Type: "uint4"}}}},
		{"bad type", TableDef{File: "x.cdb", Magic: "00", Fields: []FieldDef{{Name: "a", Type: "float4"}}}},
		{"bad kind", TableDef{File: "x.cdb", Kind: "blob"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.def.Build()
			require.Error(t, err)
		})
	}
}
