package storage

import "time"

// Fixed keys of the persisted collections.
const (
	KeyTasks              = "tasks"
	KeyCustomAchievements = "customAchievements"
	KeyReflectionEntries  = "reflectionEntries"
	KeyLastCheckInDate    = "lastCheckInDate"
	KeyCheckInHistory     = "checkInHistory"
)

// Keys lists every collection key the stores write.
var Keys = []string{KeyTasks, KeyCustomAchievements, KeyReflectionEntries, KeyLastCheckInDate, KeyCheckInHistory}

// Document is one serialized JSON value stored under a fixed key.
type Document struct {
	Key       string
	Value     []byte
	Revision  int
	UpdatedAt time.Time
}

// DocumentListFilter narrows List to keys starting with Prefix, matched literally.
type DocumentListFilter struct {
	Prefix string
}
