// Package datafile moves whole tables between disk and the JSON exchange
// shape. A dumped file is a single JSON object keyed by the data file's name,
// holding the array of decoded records; loading reverses it back into the
// binary layout.
package datafile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mechbay/mechtbl/pkg/codec"
	"github.com/mechbay/mechtbl/pkg/tbl"
)

// ReadFile reads and decodes one binary table file in a single pass.
func ReadFile(path string, format tbl.Format) ([]codec.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	records, err := format.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return records, nil
}

// WriteFile encodes records and writes the binary table file.
func WriteFile(path string, format tbl.Format, records []codec.Record) error {
	data, err := format.Encode(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// JSONName derives the dump path for a data file: the same path with its
// extension replaced by .json.
func JSONName(dataPath string) string {
	return strings.TrimSuffix(dataPath, filepath.Ext(dataPath)) + ".json"
}

// Dump decodes dataPath and writes its records as JSON to jsonPath (derived
// with JSONName when empty). The object is keyed by the data file's base
// name so a dump remains self-describing.
func Dump(format tbl.Format, dataPath, jsonPath string) error {
	if jsonPath == "" {
		jsonPath = JSONName(dataPath)
	}
	records, err := ReadFile(dataPath, format)
	if err != nil {
		return err
	}
	payload := map[string][]codec.Record{filepath.Base(dataPath): records}
	out, err := json.MarshalIndent(payload, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", jsonPath, err)
	}
	if err := os.WriteFile(jsonPath, append(out, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", jsonPath, err)
	}
	return nil
}

// Load reads a JSON dump and writes the binary table back to dataPath
// (jsonPath derived with JSONName when empty). Numbers are decoded as
// json.Number and coerced to the codec's integer vocabulary so widths
// survive the round trip.
func Load(format tbl.Format, jsonPath, dataPath string) error {
	if jsonPath == "" {
		jsonPath = JSONName(dataPath)
	}
	f, err := os.Open(jsonPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", jsonPath, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()
	var payload map[string][]codec.Record
	if err := dec.Decode(&payload); err != nil {
		return fmt.Errorf("parse %s: %w", jsonPath, err)
	}

	name := filepath.Base(dataPath)
	records, ok := payload[name]
	if !ok {
		return fmt.Errorf("%s has no entry for %q", jsonPath, name)
	}
	for i, rec := range records {
		for k, v := range rec {
			n, isNum := v.(json.Number)
			if !isNum {
				continue
			}
			coerced, err := coerceNumber(n)
			if err != nil {
				return fmt.Errorf("record %d field %q: %w", i, k, err)
			}
			rec[k] = coerced
		}
	}
	return WriteFile(dataPath, format, records)
}

// coerceNumber maps a JSON number to int64, or uint64 when it only fits
// unsigned. Fractional values are rejected; the formats carry integers only.
func coerceNumber(n json.Number) (any, error) {
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
		return u, nil
	}
	return nil, fmt.Errorf("%w: %s is not an integer", codec.ErrOutOfRange, n.String())
}
