// Package tbl implements the on-disk table containers: a fixed magic header
// plus little-endian record count, wrapping either schema-driven records
// (Table) or the out-of-line string layout (StringTable, and the derived
// VoiceTable). Magic bytes and count width are per-table constants supplied
// by the table definition, not universal.
package tbl
