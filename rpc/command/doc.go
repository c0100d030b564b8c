// Package command maps decoded request frames to the closed set of commands
// the server understands: GET key and SET key value.
//
// The package draws a line between two kinds of bad requests:
//
//   - A frame with the wrong shape (not an array, non-string elements, wrong
//     argument count) fails to decode. FromFrame returns an error wrapping
//     ErrDecode.
//   - A well-formed request with an unknown verb decodes successfully as
//     CommandTUnrecognized and is rejected later by the dispatcher.
//
// Both end up as error replies on the wire, but they are logged differently.
//
// ToFrame is the inverse used by clients: it builds the array of bulk strings
// for a command.
package command
