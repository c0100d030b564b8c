package base

import (
	"errors"
	"net"
	"syscall"
)

// DescribeAcceptError returns a short category for an error returned by
// net.Listener.Accept. Accept errors concern a single connection attempt and
// are never fatal to the server.
func DescribeAcceptError(err error) string {
	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return "connection refused"
	case errors.Is(err, syscall.ECONNRESET), errors.Is(err, syscall.ECONNABORTED):
		return "connection reset"
	case isTimeout(err):
		return "timed out"
	default:
		return "unexpected error"
	}
}

// DescribeBindError returns a short category for an error returned while
// creating the listening socket.
func DescribeBindError(err error) string {
	switch {
	case errors.Is(err, syscall.EADDRINUSE):
		return "address already in use"
	case errors.Is(err, syscall.EADDRNOTAVAIL):
		return "address not available"
	case errors.Is(err, syscall.EACCES), errors.Is(err, syscall.EPERM):
		return "permission denied"
	default:
		return "unexpected error"
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
