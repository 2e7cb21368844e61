package feed

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jwulff/strata/internal/motion"
	"github.com/jwulff/strata/internal/timeline"
)

func TestPublishAndRead(t *testing.T) {
	var buf bytes.Buffer
	p := NewPublisher(&buf)

	if err := p.Publish(Notification{Event: EventPeriodChanged, Index: IntPtr(1), Name: "B"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := p.Publish(Notification{Event: EventReached, Index: IntPtr(0), Time: FloatPtr(50)}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if got := strings.Count(buf.String(), "\n"); got != 2 {
		t.Errorf("lines = %d, want 2", got)
	}

	r := NewReader(&buf)
	n1, err := r.Next()
	if err != nil {
		t.Fatalf("read 1: %v", err)
	}
	if n1.Event != EventPeriodChanged || n1.Index == nil || *n1.Index != 1 || n1.Name != "B" {
		t.Errorf("n1 = %+v", n1)
	}
	n2, err := r.Next()
	if err != nil {
		t.Fatalf("read 2: %v", err)
	}
	if n2.Time == nil || *n2.Time != 50 {
		t.Errorf("n2 = %+v", n2)
	}
	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("err = %v, want EOF", err)
	}
}

func TestReaderRejectsGarbage(t *testing.T) {
	r := NewReader(strings.NewReader("not json\n"))
	if _, err := r.Next(); err == nil {
		t.Error("expected unmarshal error")
	}
}

func TestBindPublishesStateNotifications(t *testing.T) {
	var buf bytes.Buffer
	p := NewPublisher(&buf)

	s := timeline.New()
	if err := s.AttachPeriods([]timeline.Period{
		{Name: "A", Begin: 0, End: 100},
		{Name: "B", Begin: 100, End: 300},
	}); err != nil {
		t.Fatalf("AttachPeriods: %v", err)
	}
	if err := s.AttachEvents([]timeline.HistoricalEvent{{Time: 150, Title: "mid B"}}); err != nil {
		t.Fatalf("AttachEvents: %v", err)
	}

	unbind := p.Bind(s)
	s.SetCurrentTime(148)
	unbind()
	s.SetCurrentTime(0)

	r := NewReader(&buf)
	n, err := r.Next()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n.Event != EventPeriodChanged || n.Name != "B" || *n.Index != 1 || *n.Time != 100 {
		t.Errorf("period notification = %+v", n)
	}
	n, err = r.Next()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n.Event != EventReached || n.Name != "mid B" || *n.Index != 0 {
		t.Errorf("event notification = %+v", n)
	}
	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("unbound publisher kept writing: %v", err)
	}
}

func TestMotionNotifications(t *testing.T) {
	var buf bytes.Buffer
	p := NewPublisher(&buf)
	p.MotionStarted(motion.TowardEnd, 600)
	p.MotionFinished(600)
	p.CatalogLoaded(3, 2)

	r := NewReader(&buf)
	n, _ := r.Next()
	if n.Event != EventMotionStarted || n.Direction != "toward-end" {
		t.Errorf("started = %+v", n)
	}
	n, _ = r.Next()
	if n.Event != EventMotionFinished || *n.Time != 600 {
		t.Errorf("finished = %+v", n)
	}
	n, _ = r.Next()
	if n.Event != EventCatalogLoaded || *n.Periods != 3 || *n.Events != 2 {
		t.Errorf("catalog = %+v", n)
	}
}

func TestDialFailure(t *testing.T) {
	if _, err := Dial("/nonexistent/path/strata.sock"); err == nil {
		t.Error("expected error connecting to nonexistent socket")
	}
}

func TestServeReceivesFromDial(t *testing.T) {
	sockPath := filepath.Join(t.TempDir(), "feed.sock")
	ln, err := Listen(sockPath)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Notification, 4)
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, ln, func(n Notification) { got <- n })
	}()

	p, err := Dial(sockPath)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer p.Close()

	if err := p.Publish(Notification{Event: EventReached, Index: IntPtr(2)}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case n := <-got:
		if n.Event != EventReached || *n.Index != 2 {
			t.Errorf("received %+v", n)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for notification")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

// flakyListener fails every Accept after the first.
type flakyListener struct {
	net.Listener
	accepted int
}

func (l *flakyListener) Accept() (net.Conn, error) {
	if l.accepted > 0 {
		return nil, errors.New("too many open files")
	}
	l.accepted++
	return l.Listener.Accept()
}

func TestServeReturnsOnAcceptError(t *testing.T) {
	sockPath := filepath.Join(t.TempDir(), "feed.sock")
	ln, err := Listen(sockPath)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- Serve(context.Background(), &flakyListener{Listener: ln}, func(Notification) {})
	}()

	p, err := Dial(sockPath)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer p.Close()

	select {
	case err := <-done:
		if err == nil || !strings.Contains(err.Error(), "too many open files") {
			t.Errorf("Serve err = %v, want accept error", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after Accept failed")
	}

	// The connected publisher was closed by the server.
	buf := make([]byte, 1)
	p.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, err := p.conn.Read(buf); !errors.Is(err, io.EOF) {
		t.Errorf("read after shutdown err = %v, want EOF", err)
	}
}

func TestListenReplacesStaleSocket(t *testing.T) {
	sockPath := filepath.Join(t.TempDir(), "feed.sock")
	ln, err := Listen(sockPath)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ln.Close()

	ln, err = Listen(sockPath)
	if err != nil {
		t.Fatalf("second listen: %v", err)
	}
	ln.Close()
}
