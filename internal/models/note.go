package models

import (
	"fmt"
	"strings"
	"time"
)

// FormatNote renders a session note as "[<RFC3339>] <author>: <text>".
func FormatNote(at time.Time, author, text string) string {
	return fmt.Sprintf("[%s] %s: %s", at.UTC().Format(time.RFC3339), author, text)
}

// NoteText returns the text a participant wrote, without the timestamp and author
// prefix added by FormatNote. Notes without that prefix are returned unchanged.
func NoteText(note string) string {
	if !strings.HasPrefix(note, "[") {
		return note
	}
	end := strings.Index(note, "] ")
	if end < 0 {
		return note
	}
	rest := note[end+2:]
	sep := strings.Index(rest, ": ")
	if sep < 0 {
		return note
	}
	return rest[sep+2:]
}
