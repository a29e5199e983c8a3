package participant

import "sync"

const defaultPrefix = "$"

// Streamer is the channel owner: a Viewer plus runtime settings. The command
// prefix lives only in memory and resets on restart; the points name is a
// display label used in every points answer.
type Streamer struct {
	*Viewer

	settingsMu sync.RWMutex
	prefix     string
	pointsName string
}

func NewStreamer(v *Viewer, prefix, pointsName string) *Streamer {
	if prefix == "" {
		prefix = defaultPrefix
	}
	if pointsName == "" {
		pointsName = "points"
	}

	return &Streamer{
		Viewer:     v,
		prefix:     prefix,
		pointsName: pointsName,
	}
}

func (s *Streamer) Prefix() string {
	s.settingsMu.RLock()
	defer s.settingsMu.RUnlock()

	return s.prefix
}

func (s *Streamer) SetPrefix(prefix string) {
	s.settingsMu.Lock()
	defer s.settingsMu.Unlock()

	s.prefix = prefix
}

func (s *Streamer) PointsName() string {
	s.settingsMu.RLock()
	defer s.settingsMu.RUnlock()

	return s.pointsName
}

func (s *Streamer) SetPointsName(name string) {
	s.settingsMu.Lock()
	defer s.settingsMu.Unlock()

	s.pointsName = name
}
