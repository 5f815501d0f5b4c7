package schema

import (
	"bytes"
	"maps"
	"slices"

	"github.com/goccy/go-json"
)

// Categories returns the category names present in the row, sorted.
func (r AlignedRow) Categories() []string {
	return slices.Sorted(maps.Keys(r.Values))
}

// MarshalJSON flattens the row into {"ts_utc": ..., "<category>": value, ...}
// with categories in sorted order.
func (r AlignedRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"ts_utc":`)
	ts, err := json.Marshal(string(r.Timestamp))
	if err != nil {
		return nil, err
	}
	buf.Write(ts)
	for _, category := range r.Categories() {
		key, err := json.Marshal(category)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.Values[category])
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reverses MarshalJSON. Non-numeric category values are skipped.
func (r *AlignedRow) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	row := AlignedRow{Values: make(map[string]float64, len(raw))}
	for key, val := range raw {
		if key == "ts_utc" {
			var ts string
			if err := json.Unmarshal(val, &ts); err != nil {
				return err
			}
			row.Timestamp = BucketKey(ts)
			continue
		}
		var v float64
		if err := json.Unmarshal(val, &v); err == nil {
			row.Values[key] = v
		}
	}
	*r = row
	return nil
}
