package parser

import (
	"strings"

	"chat4g/internal/app/domain"
)

const serverSuffix = ".tmi.twitch.tv"

// Parse turns one raw IRC line into an Event. Empty input yields nil.
// The command prefix is passed per call because the streamer can change it
// at runtime.
func Parse(line, prefix string) *domain.Event {
	if line == "" {
		return nil
	}

	ev := &domain.Event{}
	parts := strings.Split(line, " ")

	if strings.HasPrefix(parts[0], ":") {
		ev.Prefix = strings.TrimPrefix(parts[0], ":")
		ev.User = userFromPrefix(ev.Prefix)
		parts = parts[1:]
	}

	textStart := -1
	for i, part := range parts {
		if strings.HasPrefix(part, ":") {
			textStart = i
			break
		}
	}
	if textStart != -1 {
		textParts := append([]string(nil), parts[textStart:]...)
		textParts[0] = textParts[0][1:]
		ev.Text = strings.Join(textParts, " ")
		if prefix != "" && strings.HasPrefix(textParts[0], prefix) {
			ev.TextCommand = strings.TrimPrefix(textParts[0], prefix)
			ev.TextArgs = textParts[1:]
		}
		parts = parts[:textStart]
	}

	if len(parts) > 0 {
		ev.IRCCommand = parts[0]
		ev.IRCArgs = parts[1:]
	}

	for _, arg := range ev.IRCArgs {
		if strings.HasPrefix(arg, "#") {
			ev.Channel = arg[1:]
			break
		}
	}

	return ev
}

// userFromPrefix strips the host part of an origin prefix. Server pseudo-users
// arrive as "<name>.tmi.twitch.tv" without the bang.
func userFromPrefix(prefix string) string {
	name := prefix
	if idx := strings.IndexByte(prefix, '!'); idx != -1 {
		name = prefix[:idx]
	}
	if strings.HasSuffix(name, serverSuffix) {
		return strings.TrimSuffix(name, serverSuffix)
	}
	return name
}
