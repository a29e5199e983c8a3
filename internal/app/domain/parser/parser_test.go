package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat4g/internal/app/domain"
	"chat4g/internal/app/domain/parser"
)

func TestParsePrivmsg(t *testing.T) {
	t.Parallel()

	ev := parser.Parse(":alice!alice@alice.tmi.twitch.tv PRIVMSG #bobstream :$help foo", "$")
	require.NotNil(t, ev)

	assert.Equal(t, "alice", ev.User)
	assert.Equal(t, "bobstream", ev.Channel)
	assert.Equal(t, "PRIVMSG", ev.IRCCommand)
	assert.Equal(t, "$help foo", ev.Text)
	assert.Equal(t, "help", ev.TextCommand)
	assert.Equal(t, []string{"foo"}, ev.TextArgs)
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		line   string
		prefix string
		want   func(t *testing.T, ev *domain.Event)
	}{
		{
			name:   "ping has no prefix and no payload user",
			line:   "PING :tmi.twitch.tv",
			prefix: "$",
			want: func(t *testing.T, ev *domain.Event) {
				assert.Equal(t, "PING", ev.IRCCommand)
				assert.Equal(t, "tmi.twitch.tv", ev.Text)
				assert.Empty(t, ev.TextCommand)
			},
		},
		{
			name:   "join extracts channel",
			line:   ":carol!carol@carol.tmi.twitch.tv JOIN #bobstream",
			prefix: "$",
			want: func(t *testing.T, ev *domain.Event) {
				assert.Equal(t, "JOIN", ev.IRCCommand)
				assert.Equal(t, "carol", ev.User)
				assert.Equal(t, "bobstream", ev.Channel)
				assert.Empty(t, ev.Text)
			},
		},
		{
			name:   "server pseudo user keeps name after suffix strip",
			line:   ":tmi.twitch.tv 001 chat4g :Welcome, GLHF!",
			prefix: "$",
			want: func(t *testing.T, ev *domain.Event) {
				assert.Equal(t, "tmi.twitch.tv", ev.Prefix)
				assert.Equal(t, "tmi.twitch.tv", ev.User)
				assert.Equal(t, "001", ev.IRCCommand)
				assert.Equal(t, "Welcome, GLHF!", ev.Text)
			},
		},
		{
			name:   "payload without command prefix leaves text command empty",
			line:   ":alice!alice@alice.tmi.twitch.tv PRIVMSG #bobstream :hello there",
			prefix: "$",
			want: func(t *testing.T, ev *domain.Event) {
				assert.Equal(t, "hello there", ev.Text)
				assert.Empty(t, ev.TextCommand)
				assert.Empty(t, ev.TextArgs)
			},
		},
		{
			name:   "changed prefix is honoured",
			line:   ":alice!alice@alice.tmi.twitch.tv PRIVMSG #bobstream :!gamble 50",
			prefix: "!",
			want: func(t *testing.T, ev *domain.Event) {
				assert.Equal(t, "gamble", ev.TextCommand)
				assert.Equal(t, []string{"50"}, ev.TextArgs)
			},
		},
		{
			name:   "command without args",
			line:   ":alice!alice@alice.tmi.twitch.tv PRIVMSG #bobstream :$querycommands",
			prefix: "$",
			want: func(t *testing.T, ev *domain.Event) {
				assert.Equal(t, "querycommands", ev.TextCommand)
				assert.Empty(t, ev.TextArgs)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ev := parser.Parse(tt.line, tt.prefix)
			require.NotNil(t, ev)
			tt.want(t, ev)
		})
	}
}

func TestParseEmptyLine(t *testing.T) {
	t.Parallel()

	assert.Nil(t, parser.Parse("", "$"))
}

func TestParseDeterministic(t *testing.T) {
	t.Parallel()

	line := ":alice!alice@alice.tmi.twitch.tv PRIVMSG #bobstream :$donate bob 10"
	first := parser.Parse(line, "$")
	second := parser.Parse(line, "$")

	assert.Equal(t, first, second)
}
