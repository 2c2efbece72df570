package pylaunch

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Serializer defines the interface for handoff record encoding and decoding.
// Implementations convert between Go values and byte slices for transport.
// The default implementation uses MessagePack, which the Python side decodes
// with the msgpack package bundled in the runtime layer.
type Serializer interface {
	// Marshal encodes a Go value to bytes.
	Marshal(v interface{}) ([]byte, error)

	// Unmarshal decodes bytes into a Go value.
	Unmarshal(data []byte, v interface{}) error
}

// MsgpackSerializer is the default Serializer.
type MsgpackSerializer struct{}

// Marshal encodes v as MessagePack.
func (MsgpackSerializer) Marshal(v interface{}) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal decodes MessagePack data into v.
func (MsgpackSerializer) Unmarshal(data []byte, v interface{}) error {
	return msgpack.Unmarshal(data, v)
}

// maxFrameSize bounds a single handoff frame. A manifest is a few hundred
// bytes; anything near this limit indicates a corrupt length prefix.
const maxFrameSize = 1 << 20

// FrameTransport sends and receives discrete messages over a byte stream
// using a 4-byte big-endian length prefix. The Python side reads the same
// framing from the inherited descriptor.
//
// Either side of the transport may be nil when only one direction is used;
// the launcher only ever sends, the child only ever receives.
type FrameTransport struct {
	reader io.Reader
	writer io.Writer
	pool   *BufferPool
}

// NewFrameTransport creates a transport over the given stream ends.
func NewFrameTransport(reader io.Reader, writer io.Writer) *FrameTransport {
	return &FrameTransport{
		reader: reader,
		writer: writer,
		pool:   NewBufferPool(4096, 4),
	}
}

// Send writes one length-prefixed frame.
func (t *FrameTransport) Send(data []byte) error {
	if len(data) > maxFrameSize {
		return fmt.Errorf("frame too large: %d bytes", len(data))
	}

	header := t.pool.Get()[:4]
	binary.BigEndian.PutUint32(header, uint32(len(data)))
	if _, err := t.writer.Write(header); err != nil {
		t.pool.Put(header)
		return err
	}
	t.pool.Put(header)

	_, err := t.writer.Write(data)
	return err
}

// Receive reads one length-prefixed frame and returns its payload.
func (t *FrameTransport) Receive() ([]byte, error) {
	header := t.pool.Get()[:4]
	if _, err := io.ReadFull(t.reader, header); err != nil {
		t.pool.Put(header)
		return nil, err
	}
	length := binary.BigEndian.Uint32(header)
	t.pool.Put(header)

	if length > maxFrameSize {
		return nil, fmt.Errorf("frame too large: %d bytes", length)
	}

	// Small frames go through the pool; the payload is copied out so the
	// buffer can be returned.
	if int(length) <= t.pool.bufSize {
		buf := t.pool.Get()[:length]
		if _, err := io.ReadFull(t.reader, buf); err != nil {
			t.pool.Put(buf)
			return nil, err
		}
		payload := make([]byte, length)
		copy(payload, buf)
		t.pool.Put(buf)
		return payload, nil
	}

	payload := make([]byte, length)
	_, err := io.ReadFull(t.reader, payload)
	return payload, err
}
