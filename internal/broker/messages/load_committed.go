package messages

import (
	"strconv"
	"time"
)

// LoadCommitted is published after an import was committed as a production load.
type LoadCommitted struct {
	ImportID     int64     `json:"import_id"`
	LoadID       int64     `json:"id_load"`
	LoadDetailID int64     `json:"id_load_detail"`
	State        string    `json:"state,omitempty"`
	CommittedAt  time.Time `json:"committed_at"`
}

// Key partitions messages by import.
func (m LoadCommitted) Key() []byte {
	return []byte(strconv.FormatInt(m.ImportID, 10))
}
