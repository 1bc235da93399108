package content

import (
	"encoding/json"
	"time"
)

// Document is one editable section of the site: the whole JSON payload
// stored under its section key. There is exactly one per key.
type Document struct {
	Key       string          `json:"key"`
	Payload   json.RawMessage `json:"payload"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
