package fritzbox

import (
	"context"
	"errors"
	"io"
	"net"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyTransport(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind Kind
	}{
		{"deadline exceeded", context.DeadlineExceeded, KindTimeout},
		{"wrapped deadline", &url.Error{Op: "Post", URL: "http://fritz.box", Err: context.DeadlineExceeded}, KindTimeout},
		{"dns timeout", &net.DNSError{Err: "i/o timeout", Name: "fritz.box", IsTimeout: true}, KindTimeout},
		{"dial failure", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, KindConnection},
		{"wrapped dial failure", &url.Error{Op: "Post", URL: "http://fritz.box", Err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}}, KindConnection},
		{"dns failure", &net.DNSError{Err: "no such host", Name: "fritz.box"}, KindConnection},
		{"dropped connection", &url.Error{Op: "Post", URL: "http://fritz.box", Err: io.EOF}, KindConnection},
		{"anything else", errors.New("mystery failure"), KindOther},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reqErr := classifyTransport("GetStatusInfo", tc.err)
			require.NotNil(t, reqErr)
			assert.Equal(t, tc.kind, reqErr.Kind)
			assert.Equal(t, "GetStatusInfo", reqErr.Op)
		})
	}
}

func TestRequestErrorMessage(t *testing.T) {
	httpErr := &RequestError{Kind: KindHTTP, Op: "ForceTermination", Status: 500}
	assert.Equal(t, "http error (ForceTermination): unexpected status 500", httpErr.Error())

	connErr := &RequestError{Kind: KindConnection, Op: "GetStatusInfo", Err: errors.New("connection refused")}
	assert.Equal(t, "connection error (GetStatusInfo): connection refused", connErr.Error())
}

func TestRequestErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	reqErr := &RequestError{Kind: KindOther, Op: "GetStatusInfo", Err: cause}
	assert.True(t, errors.Is(reqErr, cause))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Kind(0), KindOf(nil))
	assert.Equal(t, Kind(0), KindOf(errors.New("not a request error")))
	assert.Equal(t, KindHTTP, KindOf(&RequestError{Kind: KindHTTP, Op: "GetStatusInfo", Status: 500}))

	// Kinds survive wrapping.
	wrapped := &url.Error{Op: "Post", Err: &RequestError{Kind: KindTimeout, Op: "GetStatusInfo"}}
	assert.Equal(t, KindTimeout, KindOf(wrapped))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "http", KindHTTP.String())
	assert.Equal(t, "connection", KindConnection.String())
	assert.Equal(t, "timeout", KindTimeout.String())
	assert.Equal(t, "timed-out", KindTimedOut.String())
	assert.Equal(t, "other", KindOther.String())
}
