package uiapi

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/awaistahir/sunquote/internal/leads"
	"github.com/awaistahir/sunquote/internal/rates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := NewServer(rates.Default(), leads.NewLogSubmitter(zap.NewNop()), WithLogger(zap.NewNop()), WithRequestTimeout(5*time.Second))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/status")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestListenAndServe_BadAddr(t *testing.T) {
	s := NewServer(rates.Default(), leads.NewLogSubmitter(zap.NewNop()), WithLogger(zap.NewNop()))
	err := s.ListenAndServe(context.Background(), "not-an-address")
	assert.Error(t, err)
}
