package protocol

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// ErrUnexpectedMessage is returned by Expect when the stream holds a
// message of another type
var ErrUnexpectedMessage = errors.New("unexpected message")

// Codec reads or writes one recording: a gob stream holding a single
// MsgReplayHeader message followed by one MsgReplayFrame per tick, in tick
// order. Gob sends type information once per stream, so a recording must be
// read with the same Codec from its first message.
type Codec struct {
	enc *gob.Encoder
	dec *gob.Decoder
}

// NewEncoder creates a codec that writes a recording to w
func NewEncoder(w io.Writer) *Codec {
	return &Codec{enc: gob.NewEncoder(w)}
}

// NewDecoder creates a codec that reads a recording from r
func NewDecoder(r io.Reader) *Codec {
	return &Codec{dec: gob.NewDecoder(r)}
}

// Encode writes a message
func (c *Codec) Encode(msg *Message) error {
	return c.enc.Encode(msg)
}

// Send wraps payload in a message of the given type and writes it
func (c *Codec) Send(t MessageType, payload interface{}) error {
	return c.enc.Encode(&Message{Type: t, Payload: payload})
}

// Decode reads a message. It returns io.EOF unwrapped at a clean end of stream.
func (c *Codec) Decode() (*Message, error) {
	var msg Message
	if err := c.dec.Decode(&msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Expect reads the next message and returns its payload if the message has
// type t. io.EOF is passed through unwrapped.
func (c *Codec) Expect(t MessageType) (interface{}, error) {
	msg, err := c.Decode()
	if err != nil {
		return nil, err
	}
	if msg.Type != t {
		return nil, errors.Wrapf(ErrUnexpectedMessage, "got %v, want %v", msg.Type, t)
	}
	return msg.Payload, nil
}

func (t MessageType) String() string {
	switch t {
	case MsgReplayHeader:
		return "header"
	case MsgReplayFrame:
		return "frame"
	}
	return fmt.Sprintf("message(%d)", int(t))
}
