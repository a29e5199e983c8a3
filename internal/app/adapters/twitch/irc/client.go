package irc

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"chat4g/internal/app/adapters/metrics"
	"chat4g/internal/app/ports"
	"chat4g/pkg/logger"
)

// Options configures one chat connection.
type Options struct {
	// Transport is "tcp" for the TLS socket or "ws" for the websocket
	// endpoint.
	Transport string

	Username string
	OAuth    string
	Channel  string

	// OperatorChannel is exempt from the send delay.
	OperatorChannel string

	// SendDelay spaces outbound chat lines per process, not per channel.
	SendDelay time.Duration
}

// Client holds the chat connection and implements the outbound side. Sends
// to every channel but the operator's own pass through a shared rate limiter.
type Client struct {
	log  logger.Logger
	conn Conn
	opts Options

	limiter *rate.Limiter
	writeMu sync.Mutex
}

// Connect dials the selected transport and runs the startup sequence:
// capability request, authentication, join, hello line.
func Connect(log logger.Logger, opts Options) (*Client, error) {
	var conn Conn
	var err error
	switch opts.Transport {
	case "ws":
		conn, err = dialWS()
	default:
		conn, err = dialTCP()
	}
	if err != nil {
		return nil, err
	}

	c := newClient(log, conn, opts)
	if err := c.handshake(); err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

func newClient(log logger.Logger, conn Conn, opts Options) *Client {
	var limiter *rate.Limiter
	if opts.SendDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(opts.SendDelay), 1)
	}

	return &Client{
		log:     log,
		conn:    conn,
		opts:    opts,
		limiter: limiter,
	}
}

func (c *Client) handshake() error {
	lines := []string{
		"CAP REQ :twitch.tv/membership",
		"PASS " + c.opts.OAuth,
		"NICK " + c.opts.Username,
		"JOIN #" + c.opts.Channel,
	}
	for _, line := range lines {
		if err := c.writeLine(line); err != nil {
			return fmt.Errorf("handshake: %w", err)
		}
	}

	c.log.Info("Joined channel", slog.String("channel", c.opts.Channel))
	c.Say(c.opts.Channel, "Hello, I am a bot. You may access my commands with \"$querycommands\".")
	return nil
}

// Run reads batches and hands them to the dispatcher until the connection
// drops. Each batch finishes dispatching before the next read.
func (c *Client) Run(dispatch ports.DispatchPort) error {
	for {
		batch, err := c.conn.ReadBatch()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		dispatch.HandleBatch(batch)
	}
}

// Say sends one chat line, waiting out the send delay for every channel
// except the operator's own.
func (c *Client) Say(channel, text string) {
	if c.limiter != nil && channel != c.opts.OperatorChannel {
		_ = c.limiter.Wait(context.Background())
	}

	c.SendRaw(fmt.Sprintf("PRIVMSG #%s :%s", channel, text))
	metrics.MessagesSent.Inc()
}

func (c *Client) SendRaw(line string) {
	if err := c.writeLine(line); err != nil {
		c.log.Error("Send failed", err, slog.String("line", redact(line)))
	}
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) writeLine(line string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.log.Trace("Line sent", slog.String("line", redact(line)))
	return c.conn.WriteLine(line)
}

// redact keeps the oauth token out of logs.
func redact(line string) string {
	if strings.HasPrefix(line, "PASS ") {
		return "PASS <redacted>"
	}
	return line
}
