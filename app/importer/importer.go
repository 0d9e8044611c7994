package importer

import (
	"time"

	"github.com/boostaproject/bap-api/app/database"
)

// Importer reconciles externally authored records with stored articles and
// projects. It never reads files and never deletes rows.
type Importer struct {
	sessions database.SessionFactory
	now      func() time.Time
}

func New(sessions database.SessionFactory) *Importer {
	return &Importer{
		sessions: sessions,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// titleOf is the label used for records that were not stored under a slug.
// A non-string title is rendered as written.
func titleOf(rec Record) string {
	switch v := rec["title"].(type) {
	case nil:
		return unknownTitle
	case string:
		if v == "" {
			return unknownTitle
		}
		return v
	default:
		return toText(v)
	}
}
