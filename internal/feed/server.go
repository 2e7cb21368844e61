package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
)

// Listen opens a Unix socket for publishers to connect to, replacing a
// stale socket file left by a previous run.
func Listen(socketPath string) (net.Listener, error) {
	if err := os.Remove(socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("remove stale socket: %w", err)
	}
	ln, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("listen on feed: %w", err)
	}
	return ln, nil
}

// Serve accepts publishers on ln and passes every notification to fn until
// ctx is done or Accept fails. fn may be called from several goroutines;
// calls are serialized. On return the listener and every accepted connection
// are closed.
func Serve(ctx context.Context, ln net.Listener, fn func(Notification)) error {
	ctx, cancel := context.WithCancel(ctx)

	var mu sync.Mutex
	var wg sync.WaitGroup
	var conns sync.Map

	closeAll := func() {
		ln.Close()
		conns.Range(func(k, _ any) bool {
			k.(net.Conn).Close()
			return true
		})
	}

	watcher := make(chan struct{})
	go func() {
		defer close(watcher)
		<-ctx.Done()
		closeAll()
	}()

	defer func() {
		cancel()
		<-watcher
		wg.Wait()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		conns.Store(conn, struct{}{})
		if ctx.Err() != nil {
			// The watcher may have swept conns before this Store.
			conn.Close()
			conns.Delete(conn)
			return nil
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer conns.Delete(conn)
			defer conn.Close()

			r := NewReader(conn)
			for {
				n, err := r.Next()
				if err != nil {
					if !errors.Is(err, io.EOF) && ctx.Err() == nil {
						mu.Lock()
						fn(Notification{Event: EventError, Name: err.Error()})
						mu.Unlock()
					}
					return
				}
				mu.Lock()
				fn(n)
				mu.Unlock()
			}
		}()
	}
}
