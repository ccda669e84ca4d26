// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"
)

func okHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, body)
	})
}

func TestRouterAddRoute(t *testing.T) {
	require := require.New(t)

	r := newRouter()
	require.NoError(r.AddRouter("/ext/hellovm", "", okHandler("rpc")))
	require.NoError(r.AddRouter("/ext/hellovm", "/ws", okHandler("ws")))
	require.Error(r.AddRouter("/ext/hellovm", "/ws", okHandler("ws")))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ext/hellovm/ws", nil))
	require.Equal("ws", rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ext/missing", nil))
	require.Equal(http.StatusNotFound, rec.Code)
}

func TestFilterInvalidHosts(t *testing.T) {
	for _, tt := range []struct {
		name    string
		allowed []string
		host    string
		code    int
	}{
		{name: "wildcard", allowed: []string{"*"}, host: "evil.com", code: http.StatusOK},
		{name: "allowed", allowed: []string{"localhost"}, host: "LOCALHOST:9650", code: http.StatusOK},
		{name: "ip", allowed: []string{"localhost"}, host: "127.0.0.1:9650", code: http.StatusOK},
		{name: "missing host", allowed: []string{"localhost"}, host: "", code: http.StatusOK},
		{name: "rejected", allowed: []string{"localhost"}, host: "evil.com", code: http.StatusForbidden},
	} {
		t.Run(tt.name, func(t *testing.T) {
			h := filterInvalidHosts(okHandler("ok"), tt.allowed)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Host = tt.host
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			require.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestServerDispatchShutdown(t *testing.T) {
	require := require.New(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)
	s := New(logging.NoLog{}, listener, NewDefaultHTTPConfig(), []string{"*"}, []string{"*"}, time.Second)
	require.NoError(s.AddRoute(okHandler("pong"), "ping", ""))

	done := make(chan error, 1)
	go func() {
		done <- s.Dispatch()
	}()

	resp, err := http.Get("http://" + listener.Addr().String() + "/ext/ping")
	require.NoError(err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(err)
	require.NoError(resp.Body.Close())
	require.Equal("pong", string(body))

	require.NoError(s.Shutdown())
	require.NoError(<-done)
}

type echoService struct{}

type EchoArgs struct {
	Text string `json:"text"`
}

type EchoReply struct {
	Text string `json:"text"`
}

func (*echoService) Echo(_ *http.Request, args *EchoArgs, reply *EchoReply) error {
	reply.Text = args.Text
	return nil
}

func TestNewHandler(t *testing.T) {
	require := require.New(t)

	handler, err := NewHandler(&echoService{}, "test")
	require.NoError(err)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	for _, contentType := range jsonContentTypes {
		resp, err := http.Post(
			srv.URL,
			contentType,
			strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"test.echo","params":{"text":"hi"}}`),
		)
		require.NoError(err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(err)
		require.NoError(resp.Body.Close())
		require.Equal(http.StatusOK, resp.StatusCode)
		require.Contains(string(body), `"text":"hi"`)
	}

	// no exported rpc methods
	_, err = NewHandler(&struct{}{}, "empty")
	require.Error(err)
}
