package community

import (
	"fmt"
	"strings"
	"time"
)

// timestampFormat renders a watch date as e.g. "Mon Jan 01 16:23:42 2024".
const timestampFormat = "Mon Jan 02 15:04:05 2006"

// HistoryEntry is one watch history record: one playback event for a media
// item, as tracked by the account service. The ID is the opaque identifier
// used to remove the entry.
type HistoryEntry struct {
	Date time.Time    `json:"date"`
	ID   string       `json:"id"`
	Item MetadataItem `json:"metadataItem"`
}

// String formats the entry as "<watch date>: <title>".
func (e HistoryEntry) String() string {
	return e.Date.Format(timestampFormat) + ": " + e.Item.String()
}

// MetadataItem describes the media item of a watch history entry. For seasons
// and episodes, Parent and Grandparent link to the season and show.
type MetadataItem struct {
	Parent      *MetadataItem `json:"parent"`
	Grandparent *MetadataItem `json:"grandparent"`
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Type        string        `json:"type"`
	Year        int           `json:"year"`
	Index       int           `json:"index"`
}

// String returns the display title of the item: "Title (Year)" for movies,
// "Show: Season N" for seasons and "Show: Season N: Episode NN - Title" for
// episodes.
func (m MetadataItem) String() string {
	switch strings.ToLower(m.Type) {
	case "season":
		var show string
		if m.Parent != nil {
			show = m.Parent.Title
		}
		return fmt.Sprintf("%s: Season %d", show, m.Index)
	case "episode":
		var show string
		var season int
		if m.Grandparent != nil {
			show = m.Grandparent.Title
		}
		if m.Parent != nil {
			season = m.Parent.Index
		}
		return fmt.Sprintf("%s: Season %d: Episode %2d - %s", show, season, m.Index, m.Title)
	default:
		return fmt.Sprintf("%s (%d)", m.Title, m.Year)
	}
}
