package models

// SessionEntry is one key of a client's persisted preferences.
type SessionEntry struct {
	Base
	ClientID string `gorm:"not null;uniqueIndex:idx_session_entries_client_key" json:"client_id"`
	Key      string `gorm:"not null;uniqueIndex:idx_session_entries_client_key" json:"key"`
	Value    string `gorm:"not null" json:"value"`
}
