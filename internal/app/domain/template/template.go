package template

import (
	"fmt"
	"strconv"
	"strings"

	"chat4g/internal/app/domain"
)

// Template expands streamer-defined command templates. Placeholders are
// brace-delimited: {user} and {channel} reference the triggering event,
// {0}..{n} reference text arguments by position. Anything unresolvable is a
// render failure, never silently left in place.
type Template struct{}

func New() *Template {
	return &Template{}
}

func (t *Template) Render(tmpl string, ev *domain.Event) (string, error) {
	var sb strings.Builder
	s := tmpl

	for {
		open := strings.IndexByte(s, '{')
		if open == -1 {
			sb.WriteString(s)
			break
		}
		sb.WriteString(s[:open])

		closing := strings.IndexByte(s[open+1:], '}')
		if closing == -1 {
			return "", fmt.Errorf("unterminated placeholder in %q", tmpl)
		}
		closing += open + 1

		key := strings.TrimSpace(s[open+1 : closing])
		replacement, err := t.resolve(key, ev)
		if err != nil {
			return "", err
		}
		sb.WriteString(replacement)

		s = s[closing+1:]
	}

	return sb.String(), nil
}

func (t *Template) resolve(key string, ev *domain.Event) (string, error) {
	switch key {
	case "user":
		return ev.User, nil
	case "channel":
		return ev.Channel, nil
	}

	idx, err := strconv.Atoi(key)
	if err != nil {
		return "", fmt.Errorf("unknown placeholder {%s}", key)
	}
	if idx < 0 || idx >= len(ev.TextArgs) {
		return "", fmt.Errorf("placeholder {%d} has no matching argument", idx)
	}

	return ev.TextArgs[idx], nil
}
