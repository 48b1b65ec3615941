package googlebooks

import (
	"context"
	stdErrors "errors"
	"net"
	"syscall"

	"github.com/lepinkainen/bookbot/internal/errors"
)

// classifyError maps a failed HTTP exchange onto a transport error kind.
func classifyError(err error) *errors.TransportError {
	var transportErr *errors.TransportError
	if stdErrors.As(err, &transportErr) {
		return transportErr
	}

	return errors.NewTransportError(transportKind(err), err)
}

func transportKind(err error) errors.TransportKind {
	if stdErrors.Is(err, context.DeadlineExceeded) {
		return errors.KindTimeout
	}

	var netErr net.Error
	if stdErrors.As(err, &netErr) && netErr.Timeout() {
		return errors.KindTimeout
	}

	if stdErrors.Is(err, syscall.ECONNREFUSED) ||
		stdErrors.Is(err, syscall.ECONNRESET) ||
		stdErrors.Is(err, syscall.EHOSTUNREACH) ||
		stdErrors.Is(err, syscall.ENETUNREACH) {
		return errors.KindConnection
	}

	var dnsErr *net.DNSError
	if stdErrors.As(err, &dnsErr) {
		return errors.KindConnection
	}

	var opErr *net.OpError
	if stdErrors.As(err, &opErr) && opErr.Op == "dial" {
		return errors.KindConnection
	}

	return errors.KindOther
}
