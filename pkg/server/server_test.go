package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidzel/vidzel/pkg/blob"
	"github.com/vidzel/vidzel/pkg/config"
)

type closeCountingStore struct {
	closed int
}

func (c *closeCountingStore) Backend() string { return "test" }
func (c *closeCountingStore) Put(context.Context, string, io.Reader, int64, string) error {
	return nil
}
func (c *closeCountingStore) Get(context.Context, string) (*blob.Object, error) {
	return nil, blob.ErrNotFound
}
func (c *closeCountingStore) URL(key string) string { return key }
func (c *closeCountingStore) Close() error {
	c.closed++
	return nil
}

func newTestServer(t *testing.T, port string) (*Server, *closeCountingStore) {
	t.Helper()
	blobs := &closeCountingStore{}
	s := NewServer(Options{
		Config: config.Default(),
		Blob:   blobs,
		Host:   "127.0.0.1",
		Port:   port,
	})
	return s, blobs
}

func TestStartListenFailureClosesServer(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	port := strconv.Itoa(ln.Addr().(*net.TCPAddr).Port)

	s, blobs := newTestServer(t, port)

	err = s.Start()
	require.Error(t, err)
	assert.NotErrorIs(t, err, http.ErrServerClosed)

	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Fatal("limiter sweep still running after a failed start")
	}
	assert.Equal(t, 1, blobs.closed)

	// a later Close from the caller is a no-op
	require.NoError(t, s.Close())
	assert.Equal(t, 1, blobs.closed)
}

func TestShutdownClosesOnce(t *testing.T) {
	s, blobs := newTestServer(t, "0")

	require.NoError(t, s.Shutdown(context.Background()))
	require.NoError(t, s.Close())
	assert.Equal(t, 1, blobs.closed)
}
