package domain

import "time"

// Event is one parsed IRC line. Parse fills it once; nothing mutates it after.
type Event struct {
	Prefix      string
	User        string
	Channel     string
	IRCCommand  string
	IRCArgs     []string
	Text        string
	TextCommand string
	TextArgs    []string
}

// Stats is the per-identity record held in the graph store. Points are scoped
// to the (identity, channel) watches relation.
type Stats struct {
	CreatedOn  time.Time
	QueryCount int
	Points     int
}

// GenreCount is one row of the watcher-per-genre aggregation, ordered by the
// repository descending by Count.
type GenreCount struct {
	Genre string
	Count int
}
