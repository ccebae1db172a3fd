// Package femto speaks the ASCII line protocol of the Arduino controller
// that fronts a Femto DLPCA-200 current amplifier. Commands and replies
// are single newline-terminated lines over a UDP association; write
// commands are acknowledged with a reply containing "DONE".
package femto

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Transport error taxonomy. Both mean "this exchange failed"; callers
// caching replies must keep their last-known-good values and retry on
// their next access rather than honoring a throttle window.
var (
	ErrTimeout    = errors.New("reply timeout")
	ErrIO         = errors.New("transport failure")
	ErrBadCommand = errors.New("command must be a single line")
)

// Protocol commands. Gain/coupling/speed writes are built with the
// helpers below.
const (
	CmdIdentify = "ID?"
	CmdStatus   = "STATUS?"
	CmdClimate  = "TEMP?"
)

const (
	ackToken      = "DONE"
	readChunkSize = 1024
)

// GainCommand builds the write command for a gain step (0..7).
func GainCommand(value int) string {
	return fmt.Sprintf("GAIN=%d", value)
}

// CouplingCommand builds the write command for input coupling (0=AC, 1=DC).
func CouplingCommand(value int) string {
	return fmt.Sprintf("ACDC=%d", value)
}

// SpeedCommand builds the write command for the speed mode (0=High, 1=Low).
func SpeedCommand(value int) string {
	return fmt.Sprintf("SPEED=%d", value)
}

// Session owns the single datagram association with the controller.
// The protocol is strictly half-duplex and replies carry no correlation
// id, so at most one exchange may be in flight; the session serializes
// Exchange with a mutex.
type Session struct {
	mu      sync.Mutex
	conn    net.Conn
	timeout time.Duration
}

// Dial opens the UDP association to the controller. The association is
// never re-established: connectivity loss surfaces as failed exchanges
// until the process restarts.
func Dial(address string, port int, timeout time.Duration) (*Session, error) {
	conn, err := net.Dial("udp", net.JoinHostPort(address, strconv.Itoa(port)))
	if err != nil {
		return nil, fmt.Errorf("dial %s:%d: %w", address, port, err)
	}
	return NewSession(conn, timeout), nil
}

// NewSession wraps an established connection. Used by Dial and by tests.
func NewSession(conn net.Conn, timeout time.Duration) *Session {
	return &Session{conn: conn, timeout: timeout}
}

// Exchange performs one command/reply round trip: write the command with
// a trailing newline, then read until the accumulated reply contains a
// newline or the read times out. A reply containing "DONE" is a write
// acknowledgement and yields an empty payload; any other reply is
// returned with the trailing delimiter trimmed. No retry on failure.
func (s *Session) Exchange(cmd string) (string, error) {
	if strings.ContainsAny(cmd, "\r\n") {
		return "", fmt.Errorf("%w: %q", ErrBadCommand, cmd)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.conn.Write([]byte(cmd + "\n")); err != nil {
		return "", fmt.Errorf("%w: write %q: %v", ErrIO, cmd, err)
	}

	var reply strings.Builder
	buf := make([]byte, readChunkSize)
	for !strings.Contains(reply.String(), "\n") {
		if err := s.conn.SetReadDeadline(time.Now().Add(s.timeout)); err != nil {
			return "", fmt.Errorf("%w: set read deadline: %v", ErrIO, err)
		}
		n, err := s.conn.Read(buf)
		reply.Write(buf[:n])
		if err != nil {
			var nerr net.Error
			if errors.As(err, &nerr) && nerr.Timeout() {
				return "", fmt.Errorf("%w: no reply to %q within %s", ErrTimeout, cmd, s.timeout)
			}
			return "", fmt.Errorf("%w: read after %q: %v", ErrIO, cmd, err)
		}
	}

	text := reply.String()
	if strings.Contains(text, ackToken) {
		// Write command acknowledged; there is no payload.
		return "", nil
	}
	return strings.TrimRight(text, "\r\n"), nil
}

// Identify asks the controller for its identification string. Used once
// at startup to confirm connectivity.
func (s *Session) Identify() (string, error) {
	return s.Exchange(CmdIdentify)
}

// Close tears down the association.
func (s *Session) Close() error {
	return s.conn.Close()
}
