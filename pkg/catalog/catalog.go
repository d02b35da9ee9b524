// Package catalog persists decoded table records in a local pebble store so
// units can be looked up across files without re-decoding the binaries.
// Records are kept under their table name and decode order; unit GUIDs get
// secondary keys so a unit can be found in every table that references it.
package catalog

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/mechbay/mechtbl/pkg/codec"
)

// Catalog is a pebble-backed index of decoded records.
type Catalog struct {
	db *pebble.DB
}

// Ref locates one record: the table it came from and its decode order.
type Ref struct {
	Table string `json:"table"`
	Order int    `json:"order"`
}

// Batch describes one import.
type Batch struct {
	ID         string    `json:"id"`
	Table      string    `json:"table"`
	Records    int       `json:"records"`
	ImportedAt time.Time `json:"imported_at"`
}

// Open opens (or creates) a catalog at path.
func Open(path string) (*Catalog, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Close closes the underlying store.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// ImportTable stores every record of a decoded table and returns the import's
// batch ID. The schema is used to find guid fields for the secondary index;
// pass nil for string tables (their records carry no guid fields).
func (c *Catalog) ImportTable(table string, schema codec.Schema, records []codec.Record) (string, error) {
	id := ksuid.New()
	b := c.db.NewBatch()
	defer b.Close()

	for i, rec := range records {
		val, err := json.Marshal(rec)
		if err != nil {
			return "", fmt.Errorf("record %d: %w", i, err)
		}
		if err := b.Set(recKey(table, i), val, nil); err != nil {
			return "", err
		}
		for _, f := range schema {
			if f.Type != codec.GUID {
				continue
			}
			guid, ok := rec[f.Name].(string)
			if !ok || guid == "" {
				continue
			}
			if err := b.Set(guidKey(guid, table, i), nil, nil); err != nil {
				return "", err
			}
		}
	}

	meta, err := json.Marshal(Batch{
		ID:         id.String(),
		Table:      table,
		Records:    len(records),
		ImportedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", err
	}
	if err := b.Set(batchKey(id.String()), meta, nil); err != nil {
		return "", err
	}

	if err := b.Commit(pebble.NoSync); err != nil {
		return "", fmt.Errorf("failed to commit import: %w", err)
	}
	return id.String(), nil
}

// Record fetches one stored record by table and decode order.
func (c *Catalog) Record(table string, order int) (codec.Record, error) {
	data, closer, err := c.db.Get(recKey(table, order))
	if err != nil {
		return nil, fmt.Errorf("record %s/%d: %w", table, order, err)
	}
	defer closer.Close()

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var rec codec.Record
	if err := dec.Decode(&rec); err != nil {
		return nil, err
	}
	for k, v := range rec {
		if n, ok := v.(json.Number); ok {
			rec[k] = coerceNumber(n)
		}
	}
	return rec, nil
}

// LookupGUID returns every stored record that references the unit.
func (c *Catalog) LookupGUID(guid string) ([]Ref, error) {
	lower := guidPrefix(guid)
	upper := append(append([]byte{}, lower...), 0xff)
	iter, err := c.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var refs []Ref
	for iter.First(); iter.Valid(); iter.Next() {
		ref, err := parseGUIDKey(iter.Key(), lower)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, iter.Error()
}

// Batches lists all imports, newest last (ksuid order is creation order).
func (c *Catalog) Batches() ([]Batch, error) {
	lower := []byte("batch\x00")
	upper := []byte("batch\x01")
	iter, err := c.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var batches []Batch
	for iter.First(); iter.Valid(); iter.Next() {
		var b Batch
		if err := json.Unmarshal(iter.Value(), &b); err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, iter.Error()
}

func recKey(table string, order int) []byte {
	key := make([]byte, 0, 4+len(table)+5)
	key = append(key, "rec\x00"...)
	key = append(key, table...)
	key = append(key, 0)
	return binary.BigEndian.AppendUint32(key, uint32(order))
}

func guidKey(guid, table string, order int) []byte {
	key := guidPrefix(guid)
	key = append(key, table...)
	key = append(key, 0)
	return binary.BigEndian.AppendUint32(key, uint32(order))
}

func guidPrefix(guid string) []byte {
	key := make([]byte, 0, 5+len(guid)+1)
	key = append(key, "guid\x00"...)
	key = append(key, guid...)
	return append(key, 0)
}

func batchKey(id string) []byte {
	return append([]byte("batch\x00"), id...)
}

func parseGUIDKey(key, prefix []byte) (Ref, error) {
	rest := key[len(prefix):]
	if len(rest) < 5 {
		return Ref{}, fmt.Errorf("malformed catalog key % x", key)
	}
	sep := bytes.IndexByte(rest, 0)
	if sep < 0 || len(rest) != sep+5 {
		return Ref{}, fmt.Errorf("malformed catalog key % x", key)
	}
	return Ref{
		Table: string(rest[:sep]),
		Order: int(binary.BigEndian.Uint32(rest[sep+1:])),
	}, nil
}

// coerceNumber undoes JSON's number typing for stored records: int64 when it
// fits, uint64 for larger unsigned values, otherwise the raw string.
func coerceNumber(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
		return u
	}
	return n.String()
}
