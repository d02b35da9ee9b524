package datafile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mechbay/mechtbl/pkg/codec"
	"github.com/mechbay/mechtbl/pkg/tbl"
)

func unitTable(t *testing.T) *tbl.Table {
	t.Helper()
	var schema codec.Schema
	for _, f := range [][2]string{
		{"unit_id", "guid"},
		{"series", "series_guid"},
		{"cost", "uint4"},
		{"hp", "int2"},
		{"name", "len_string"},
	} {
		ft, err := codec.ParseFieldType(f[1])
		require.NoError(t, err)
		schema = append(schema, codec.Field{Name: f[0], Type: ft})
	}
	return &tbl.Table{
		Layout: tbl.Layout{Magic: []byte{0x4d, 0x53, 0x54, 0x42, 0x00, 0x01, 0x01, 0x00}},
		Schema: schema,
	}
}

func TestJSONName(t *testing.T) {
	assert.Equal(t, "MachineSpec.json", JSONName("MachineSpec.cdb"))
	assert.Equal(t, filepath.Join("data", "StageList.json"), JSONName(filepath.Join("data", "StageList.tbl")))
}

func TestDumpLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	table := unitTable(t)

	records := []codec.Record{
		{"unit_id": "G0079M01205", "series": "G0079", "cost": uint64(2800), "hp": int64(-120), "name": "Gundam"},
		{"unit_id": nil, "series": "W0195", "cost": uint64(4294967295), "hp": int64(0), "name": ""},
	}

	dataPath := filepath.Join(dir, "MachineSpec.cdb")
	require.NoError(t, WriteFile(dataPath, table, records))
	original, err := os.ReadFile(dataPath)
	require.NoError(t, err)

	// Dump to JSON, wipe the binary, load it back.
	require.NoError(t, Dump(table, dataPath, ""))
	jsonPath := filepath.Join(dir, "MachineSpec.json")
	assert.FileExists(t, jsonPath)

	require.NoError(t, os.Remove(dataPath))
	require.NoError(t, Load(table, "", dataPath))

	rebuilt, err := os.ReadFile(dataPath)
	require.NoError(t, err)
	assert.Equal(t, original, rebuilt, "load(dump(x)) must be byte-exact")
}

func TestDumpLoadStringTable(t *testing.T) {
	dir := t.TempDir()
	table := tbl.NewStringTable()

	records := []codec.Record{
		{"index": uint64(1), "string": "A"},
		{"index": uint64(2), "string": "BB"},
	}

	dataPath := filepath.Join(dir, "Strings.tbl")
	require.NoError(t, WriteFile(dataPath, table, records))
	original, err := os.ReadFile(dataPath)
	require.NoError(t, err)

	require.NoError(t, Dump(table, dataPath, ""))
	require.NoError(t, Load(table, "", dataPath))

	rebuilt, err := os.ReadFile(dataPath)
	require.NoError(t, err)
	assert.Equal(t, original, rebuilt)

	decoded, err := ReadFile(dataPath, table)
	require.NoError(t, err)
	assert.Equal(t, records, decoded)
}

func TestLoadMissingEntry(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "Strings.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"Other.tbl": []}`), 0644))

	err := Load(tbl.NewStringTable(), jsonPath, filepath.Join(dir, "Strings.tbl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Strings.tbl")
}

func TestReadFileTruncated(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "Strings.tbl")
	require.NoError(t, os.WriteFile(dataPath, tbl.StringTBLMagic[:4], 0644))

	_, err := ReadFile(dataPath, tbl.NewStringTable())
	require.ErrorIs(t, err, codec.ErrTruncatedInput)
}
