package sqlwire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/tuannm99/novaparse/pkg/cache"
)

type ServerConfig struct {
	Addr  string
	Debug bool

	// CacheSize bounds the number of distinct statement texts whose responses
	// are kept; 0 disables the cache.
	CacheSize int
}

// Handler answers parse requests, reusing responses for repeated texts.
type Handler struct {
	cache *cache.LRU[string, ParseResponse]
}

func NewHandler(cacheSize int) *Handler {
	return &Handler{cache: cache.NewLRU[string, ParseResponse](cacheSize)}
}

func (h *Handler) Handle(req ParseRequest) ParseResponse {
	if resp, ok := h.cache.Get(req.SQL); ok {
		resp.ID = req.ID
		return resp
	}
	resp := Handle(req)
	h.cache.Put(req.SQL, resp)
	return resp
}

// Run listens on sc.Addr and serves until ctx is canceled.
func Run(ctx context.Context, sc ServerConfig) error {
	ln, err := net.Listen("tcp", sc.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	slog.Info("novaparse tcp server listening", "addr", ln.Addr().String())
	return Serve(ctx, ln, sc)
}

// Serve accepts connections on ln until ctx is canceled, then waits for open
// connections to finish.
func Serve(ctx context.Context, ln net.Listener, sc ServerConfig) error {
	defer func() { _ = ln.Close() }()

	h := NewHandler(sc.CacheSize)

	var wg sync.WaitGroup
	defer func() {
		wg.Wait()
		hits, misses := h.cache.Stats()
		slog.Info("server stopped", "cache_hits", hits, "cache_misses", misses)
	}()

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			slog.Warn("accept failed", "err", err)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			handleConn(ctx, conn, h, sc.Debug)
		}()
	}
}

func handleConn(ctx context.Context, conn net.Conn, h *Handler, debug bool) {
	defer func() { _ = conn.Close() }()

	// No global deadline; you can set per-request deadline if needed.
	_ = conn.SetDeadline(time.Time{})

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	remote := conn.RemoteAddr().String()
	for {
		var req ParseRequest
		if err := ReadFrame(conn, &req); err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				slog.Debug("read frame", "remote", remote, "err", err)
			}
			return
		}

		resp := h.Handle(req)
		if debug {
			slog.Debug("parsed", "remote", remote, "id", req.ID, "ok", resp.Error == nil)
		}
		if err := WriteFrame(conn, resp); err != nil {
			slog.Debug("write frame", "remote", remote, "err", err)
			return
		}
	}
}
