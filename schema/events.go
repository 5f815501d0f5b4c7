package schema

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Detail decodes CauseDetail. A missing or undecodable payload yields an empty detail.
func (e EventItem) Detail() CauseDetail {
	var detail CauseDetail
	data := bytes.TrimSpace(e.CauseDetail)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return detail
	}
	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return CauseDetail{}
		}
		data = []byte(inner)
	}
	if err := json.Unmarshal(data, &detail); err != nil {
		return CauseDetail{}
	}
	return detail
}

// IsAdoption reports whether the event is a category adoption.
func (e EventItem) IsAdoption() bool {
	return e.EventType == EventCategoryAdoption
}
