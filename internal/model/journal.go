package model

import (
	"errors"
	"sort"
	"strings"
	"time"
)

var ErrEmptyJournalEntry = errors.New("model: entry cannot be empty")

type JournalEntry struct {
	Date    string
	Content string
}

// Journal holds at most one entry per calendar day.
type Journal struct {
	entries map[string]string
}

func NewJournal(seed ...JournalEntry) *Journal {
	j := &Journal{entries: make(map[string]string, len(seed))}
	for _, e := range seed {
		j.entries[e.Date] = e.Content
	}
	return j
}

// Save replaces the entry for day or creates one. Blank content is rejected.
func (j *Journal) Save(day time.Time, content string) (created bool, err error) {
	if strings.TrimSpace(content) == "" {
		return false, ErrEmptyJournalEntry
	}
	key := DayKey(day)
	_, existed := j.entries[key]
	j.entries[key] = content
	return !existed, nil
}

func (j *Journal) EntryFor(day time.Time) (JournalEntry, bool) {
	key := DayKey(day)
	content, ok := j.entries[key]
	if !ok {
		return JournalEntry{}, false
	}
	return JournalEntry{Date: key, Content: content}, true
}

// DatesWithEntries returns the day keys that carry an entry, oldest first.
func (j *Journal) DatesWithEntries() []string {
	out := make([]string, 0, len(j.entries))
	for k := range j.entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (j *Journal) Len() int { return len(j.entries) }

// SeedJournal returns the example entries for the two days before now.
func SeedJournal(now time.Time) *Journal {
	return NewJournal(
		JournalEntry{
			Date:    DayKey(now.AddDate(0, 0, -2)),
			Content: "Today was a productive day. I completed my physics assignment and had a great workout session. Feeling motivated to keep going!",
		},
		JournalEntry{
			Date:    DayKey(now.AddDate(0, 0, -1)),
			Content: "Struggled a bit with calculus today, but I'm not giving up. My workout was shorter than planned, but at least I did something. Tomorrow will be better.",
		},
	)
}
