// Package frame implements the wire codec of the sKV line protocol, a
// RESP-style encoding of simple strings, errors, integers, bulk strings,
// null and arrays. The package performs no I/O: it works on in-memory byte
// slices and leaves buffering to the transport layer.
//
// Wire Format:
//
//	Simple(s)   +s\r\n
//	Error(s)    -s\r\n
//	Integer(n)  :n\r\n            (signed 64 bit)
//	Null        $-1\r\n           (*-1\r\n is accepted on input)
//	Bulk(b)     $len(b)\r\nb\r\n
//	Array(xs)   *len(xs)\r\nxs...
//
// Every length and integer is written as ASCII decimal terminated by CRLF.
//
// Decoding is split in two steps so that a streaming reader can decide
// cheaply whether it has to read more bytes:
//
//   - Check scans a buffer without building values and either returns the
//     length of the first complete frame, ErrIncomplete, or a *ProtocolError.
//   - Parse builds the Frame from a buffer that passed Check.
//
// Limits (MaxBulkLength, MaxArrayLength, MaxLineLength, MaxDepth) turn
// oversized announcements into protocol errors, so a peer cannot force the
// reader to buffer without bound.
//
// The server never answers with an Array frame, but arrays are encoded since
// clients send every request as an array of bulk strings.
package frame
