package irc

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat4g/pkg/logger"
)

type fakeConn struct {
	written []string
	batches [][]string
}

func (f *fakeConn) WriteLine(line string) error {
	f.written = append(f.written, line)
	return nil
}

func (f *fakeConn) ReadBatch() ([]string, error) {
	if len(f.batches) == 0 {
		return nil, io.EOF
	}
	batch := f.batches[0]
	f.batches = f.batches[1:]
	return batch, nil
}

func (f *fakeConn) Close() error { return nil }

type recordingDispatch struct {
	batches [][]string
}

func (r *recordingDispatch) HandleBatch(lines []string) {
	r.batches = append(r.batches, lines)
}

func TestHandshakeSequence(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{}
	c := newClient(logger.NewNop(), conn, Options{
		Username: "chat4g",
		OAuth:    "oauth:secret",
		Channel:  "bobstream",
	})
	require.NoError(t, c.handshake())

	require.Len(t, conn.written, 5)
	assert.Equal(t, "CAP REQ :twitch.tv/membership", conn.written[0])
	assert.Equal(t, "PASS oauth:secret", conn.written[1])
	assert.Equal(t, "NICK chat4g", conn.written[2])
	assert.Equal(t, "JOIN #bobstream", conn.written[3])
	assert.Contains(t, conn.written[4], "PRIVMSG #bobstream :Hello, I am a bot.")
}

func TestSayWrapsPrivmsg(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{}
	c := newClient(logger.NewNop(), conn, Options{Channel: "bobstream"})

	c.Say("bobstream", "hi chat")
	require.Len(t, conn.written, 1)
	assert.Equal(t, "PRIVMSG #bobstream :hi chat", conn.written[0])
}

func TestRunFeedsBatchesUntilEOF(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{batches: [][]string{
		{"PING :tmi.twitch.tv"},
		{":alice!alice@alice.tmi.twitch.tv JOIN #bobstream", ""},
	}}
	c := newClient(logger.NewNop(), conn, Options{Channel: "bobstream"})

	dispatch := &recordingDispatch{}
	err := c.Run(dispatch)
	require.Error(t, err)
	assert.Len(t, dispatch.batches, 2)
}

func TestSplitLines(t *testing.T) {
	t.Parallel()

	lines := splitLines("PING :tmi.twitch.tv\r\n:alice!a@a.tmi.twitch.tv JOIN #bobstream\r\n")
	assert.Equal(t, []string{
		"PING :tmi.twitch.tv",
		":alice!a@a.tmi.twitch.tv JOIN #bobstream",
	}, lines)
}

func TestRedactHidesToken(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "PASS <redacted>", redact("PASS oauth:secret"))
	assert.Equal(t, "NICK chat4g", redact("NICK chat4g"))
}
