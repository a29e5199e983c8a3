package ports

import "fmt"

// ChatPort is the outbound side of the transport. Say wraps text into
// "PRIVMSG #channel :text" and applies the per-process send delay for every
// channel except the operator's own; SendRaw writes a protocol line as-is.
type ChatPort interface {
	Say(channel, text string)
	SendRaw(line string)
}

// DispatchPort consumes one receive-buffer batch of lines. The call returns
// only after every line's task has finished, so the transport never reads
// ahead of an unfinished batch.
type DispatchPort interface {
	HandleBatch(lines []string)
}

// Answer is what a command handler sends back to the channel, one chat line
// per entry.
type Answer struct {
	Text []string
}

// Reply builds a single-line answer.
func Reply(format string, args ...any) *Answer {
	if len(args) == 0 {
		return &Answer{Text: []string{format}}
	}
	return &Answer{Text: []string{fmt.Sprintf(format, args...)}}
}
