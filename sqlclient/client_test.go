package sqlclient

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novaparse/server/sqlwire"
)

func startServer(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = sqlwire.Serve(ctx, ln, sqlwire.ServerConfig{})
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return ln.Addr().String()
}

func TestClient_Parse(t *testing.T) {
	addr := startServer(t)

	c, err := Dial(addr, time.Second)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()
	c.SetRWTimeout(5 * time.Second)

	resp, err := c.Parse(context.Background(), "CREATE TABLE t (id INT PRIMARY KEY);")
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE t (id INT PRIMARY KEY);", resp.SQL)
	assert.Contains(t, resp.Tree, "Column id INT")

	_, err = c.Parse(context.Background(), "SELECT a FROM t")
	require.Error(t, err)
	var werr *sqlwire.WireError
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, "syntax error", werr.Kind)
	assert.Equal(t, "';'", werr.Expected)

	// the connection stays usable after a failed statement
	resp, err = c.Parse(context.Background(), "SELECT a FROM t;")
	require.NoError(t, err)
	assert.Equal(t, "SELECT a FROM t;", resp.SQL)
}

func TestClient_ContextDeadline(t *testing.T) {
	server, client := net.Pipe()
	defer func() { _ = server.Close() }()

	c := NewClient(client)
	defer func() { _ = c.Close() }()

	// nobody reads the server side, so the write blocks until the deadline
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Parse(ctx, "SELECT a FROM t;")
	require.Error(t, err)
	var nerr net.Error
	require.True(t, errors.As(err, &nerr))
	assert.True(t, nerr.Timeout())
}

func TestClient_Nil(t *testing.T) {
	var c *Client
	_, err := c.Parse(context.Background(), "SELECT a FROM t;")
	require.Error(t, err)
	assert.NoError(t, c.Close())
}
