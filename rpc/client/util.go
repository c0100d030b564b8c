package client

import (
	"errors"
	"fmt"

	"github.com/ValentinKolb/sKV/rpc/frame"
	"github.com/lni/dragonboat/v4/logger"
)

var (
	Logger = logger.GetLogger("client")

	// ErrClosed is returned for requests submitted to (or pending in) a closed client
	ErrClosed = errors.New("client is closed")
)

// ServerError is an error frame received from the server
type ServerError struct {
	Msg string
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: %s", e.Msg)
}

// optionalBulk interprets the response of GET and SET: a bulk value, null
// for no value or an error frame
func optionalBulk(resp frame.Frame) ([]byte, bool, error) {
	switch resp.Type {
	case frame.TypeNull:
		return nil, false, nil
	case frame.TypeBulk:
		return resp.Bulk, true, nil
	case frame.TypeError:
		return nil, false, &ServerError{Msg: resp.Str}
	default:
		return nil, false, fmt.Errorf("unexpected response frame %s", resp)
	}
}
