package femto

import (
	"bufio"
	"errors"
	"net"
	"testing"
	"time"
)

// pipeSession wires a Session to an in-memory peer. The returned reply
// function reads one command line from the peer side and writes back
// the given chunks with optional pauses between them.
func pipeSession(t *testing.T, timeout time.Duration) (*Session, net.Conn) {
	t.Helper()
	client, peer := net.Pipe()
	t.Cleanup(func() {
		_ = client.Close()
		_ = peer.Close()
	})
	return NewSession(client, timeout), peer
}

// serveOnce reads one command line and answers with the given chunks.
func serveOnce(t *testing.T, peer net.Conn, wantCmd string, chunks ...string) <-chan struct{} {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		line, err := bufio.NewReader(peer).ReadString('\n')
		if err != nil {
			t.Errorf("peer read: %v", err)
			return
		}
		if line != wantCmd+"\n" {
			t.Errorf("peer got command %q, want %q", line, wantCmd+"\n")
			return
		}
		for _, c := range chunks {
			if _, err := peer.Write([]byte(c)); err != nil {
				t.Errorf("peer write: %v", err)
				return
			}
		}
	}()
	return done
}

func TestExchange_AppendsNewlineAndTrimsReply(t *testing.T) {
	s, peer := pipeSession(t, time.Second)
	done := serveOnce(t, peer, "ID?", "FEMTO DLPCA-200 CTRL v1.2\r\n")

	got, err := s.Exchange("ID?")
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	if got != "FEMTO DLPCA-200 CTRL v1.2" {
		t.Fatalf("payload %q, want trimmed identification string", got)
	}
	<-done
}

func TestExchange_DoneReplyYieldsEmptyPayload(t *testing.T) {
	s, peer := pipeSession(t, time.Second)
	done := serveOnce(t, peer, "GAIN=3", "GAIN SET DONE\n")

	got, err := s.Exchange(GainCommand(3))
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	if got != "" {
		t.Fatalf("acknowledgement payload %q, want empty", got)
	}
	<-done
}

func TestExchange_AccumulatesChunkedReply(t *testing.T) {
	s, peer := pipeSession(t, time.Second)
	done := serveOnce(t, peer, "TEMP?", "T=23.", "5;H=45.2\n")

	got, err := s.Exchange(CmdClimate)
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	if got != "T=23.5;H=45.2" {
		t.Fatalf("payload %q, want reassembled reply", got)
	}
	<-done
}

func TestExchange_TimeoutWhenPeerSilent(t *testing.T) {
	s, peer := pipeSession(t, 30*time.Millisecond)

	// Drain the command but never reply.
	go func() {
		buf := make([]byte, 64)
		_, _ = peer.Read(buf)
	}()

	got, err := s.Exchange(CmdStatus)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
	if got != "" {
		t.Fatalf("payload %q on timeout, want empty", got)
	}
}

func TestExchange_TimeoutOnPartialReply(t *testing.T) {
	// A reply without the delimiter must keep accumulating until the
	// deadline, not be returned as-is.
	s, peer := pipeSession(t, 30*time.Millisecond)
	go func() {
		buf := make([]byte, 64)
		_, _ = peer.Read(buf)
		_, _ = peer.Write([]byte("001"))
	}()

	if _, err := s.Exchange(CmdStatus); !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
}

func TestExchange_IOErrorWhenPeerCloses(t *testing.T) {
	s, peer := pipeSession(t, time.Second)
	go func() {
		buf := make([]byte, 64)
		_, _ = peer.Read(buf)
		_ = peer.Close()
	}()

	if _, err := s.Exchange(CmdStatus); !errors.Is(err, ErrIO) {
		t.Fatalf("err = %v, want ErrIO", err)
	}
}

func TestExchange_RejectsEmbeddedNewline(t *testing.T) {
	s, _ := pipeSession(t, time.Second)
	if _, err := s.Exchange("GAIN=1\nGAIN=2"); !errors.Is(err, ErrBadCommand) {
		t.Fatalf("err = %v, want ErrBadCommand", err)
	}
}

func TestCommandBuilders(t *testing.T) {
	cases := []struct {
		got, want string
	}{
		{GainCommand(0), "GAIN=0"},
		{GainCommand(7), "GAIN=7"},
		{CouplingCommand(0), "ACDC=0"},
		{CouplingCommand(1), "ACDC=1"},
		{SpeedCommand(0), "SPEED=0"},
		{SpeedCommand(1), "SPEED=1"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Fatalf("command %q, want %q", c.got, c.want)
		}
	}
}
