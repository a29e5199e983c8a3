package irc

import (
	"bufio"
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/gorilla/websocket"
)

const (
	tcpAddr = "irc.chat.twitch.tv:6697"
	wsURL   = "wss://irc-ws.chat.twitch.tv:443"
)

// Conn is one IRC connection. ReadBatch returns every complete line the
// transport currently has buffered, so one socket read maps to one dispatch
// batch.
type Conn interface {
	WriteLine(line string) error
	ReadBatch() ([]string, error)
	Close() error
}

type tcpConn struct {
	conn   *tls.Conn
	reader *bufio.Reader
}

func dialTCP() (*tcpConn, error) {
	conn, err := tls.Dial("tcp", tcpAddr, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", tcpAddr, err)
	}
	return &tcpConn{conn: conn, reader: bufio.NewReader(conn)}, nil
}

func (c *tcpConn) WriteLine(line string) error {
	_, err := c.conn.Write([]byte(line + "\r\n"))
	return err
}

// ReadBatch blocks for one line, then drains whatever else already sits in
// the read buffer without blocking again.
func (c *tcpConn) ReadBatch() ([]string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return nil, err
	}

	batch := []string{strings.TrimRight(line, "\r\n")}
	for c.reader.Buffered() > 0 {
		line, err := c.reader.ReadString('\n')
		if err != nil {
			break
		}
		batch = append(batch, strings.TrimRight(line, "\r\n"))
	}
	return batch, nil
}

func (c *tcpConn) Close() error {
	return c.conn.Close()
}

type wsConn struct {
	conn *websocket.Conn
}

func dialWS() (*wsConn, error) {
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", wsURL, err)
	}
	return &wsConn{conn: conn}, nil
}

func (c *wsConn) WriteLine(line string) error {
	return c.conn.WriteMessage(websocket.TextMessage, []byte(line+"\r\n"))
}

// ReadBatch maps one websocket frame, which may carry several lines, to one
// batch.
func (c *wsConn) ReadBatch() ([]string, error) {
	_, payload, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	return splitLines(string(payload)), nil
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}

func splitLines(payload string) []string {
	var lines []string
	for _, line := range strings.Split(payload, "\r\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
