package tbl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mechbay/mechtbl/pkg/codec"
)

// VoiceCue is one stage-voice entry: the table stores each cue as a single
// comma-separated string "voice_id,val1,val2,val3".
type VoiceCue struct {
	Order   int
	Index   uint32
	VoiceID string
	Val1    int64
	Val2    int64
	Val3    int64
}

// VoiceTable is the stage-voice table: string-table layout with a post-decode
// transform that splits each string into its four cue fields.
type VoiceTable struct {
	StringTable
}

// NewStageVoiceTable returns a voice table with the stage-voice magic.
func NewStageVoiceTable() *VoiceTable {
	return &VoiceTable{StringTable{Layout{Magic: StageVoiceMagic}}}
}

// DecodeCues decodes the underlying string table and parses every entry.
func (t *VoiceTable) DecodeCues(data []byte) ([]VoiceCue, error) {
	records, err := t.DecodeStrings(data)
	if err != nil {
		return nil, err
	}
	cues := make([]VoiceCue, len(records))
	for i, r := range records {
		cue, err := parseCue(r.String)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		cue.Order = r.Order
		cue.Index = r.Index
		cues[i] = cue
	}
	return cues, nil
}

// EncodeCues joins each cue back into its comma-separated form and encodes
// the string table.
func (t *VoiceTable) EncodeCues(cues []VoiceCue) ([]byte, error) {
	records := make([]StringRecord, len(cues))
	for i, cue := range cues {
		records[i] = StringRecord{
			Order:  i,
			Index:  cue.Index,
			String: joinCue(cue),
		}
	}
	return t.EncodeStrings(records)
}

// Decode implements Format, keeping the raw string alongside the parsed cue
// fields.
func (t *VoiceTable) Decode(data []byte) ([]codec.Record, error) {
	records, err := t.DecodeStrings(data)
	if err != nil {
		return nil, err
	}
	out := make([]codec.Record, len(records))
	for i, r := range records {
		cue, err := parseCue(r.String)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out[i] = codec.Record{
			"index":    uint64(r.Index),
			"string":   r.String,
			"voice_id": cue.VoiceID,
			"val1":     cue.Val1,
			"val2":     cue.Val2,
			"val3":     cue.Val3,
		}
	}
	return out, nil
}

func parseCue(s string) (VoiceCue, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return VoiceCue{}, fmt.Errorf("%w: voice cue %q has %d parts, want 4", codec.ErrMalformedField, s, len(parts))
	}
	cue := VoiceCue{VoiceID: parts[0]}
	for i, dst := range []*int64{&cue.Val1, &cue.Val2, &cue.Val3} {
		v, err := strconv.ParseInt(parts[i+1], 10, 64)
		if err != nil {
			return VoiceCue{}, fmt.Errorf("%w: voice cue %q part %d is not an integer", codec.ErrMalformedField, s, i+1)
		}
		*dst = v
	}
	return cue, nil
}

func joinCue(cue VoiceCue) string {
	return fmt.Sprintf("%s,%d,%d,%d", cue.VoiceID, cue.Val1, cue.Val2, cue.Val3)
}
