// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package parcel

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/tochemey/applier/action"
	"github.com/tochemey/applier/address"
	"github.com/tochemey/applier/component"
	"github.com/tochemey/applier/errors"
	"github.com/tochemey/applier/internal/brotli"
	"github.com/tochemey/applier/internal/registry"
)

const (
	frameMagic      byte = 0xA7
	frameHeaderSize      = 2

	frameRaw    byte = 0
	frameZstd   byte = 1
	frameBrotli byte = 2
)

// Compression names the algorithm applied to encoded frames.
type Compression string

const (
	NoCompression     Compression = "none"
	ZstdCompression   Compression = "zstd"
	BrotliCompression Compression = "brotli"
)

// IsValid reports whether c is a known algorithm. The empty value means none.
func (c Compression) IsValid() bool {
	switch c {
	case "", NoCompression, ZstdCompression, BrotliCompression:
		return true
	default:
		return false
	}
}

var (
	cborEncOpts = cbor.EncOptions{
		Sort:        cbor.SortNone,
		IndefLength: cbor.IndefLengthForbidden,
		Time:        cbor.TimeUnixDynamic,
	}
	cborDecOpts = cbor.DecOptions{
		MaxNestedLevels: 64,
		IndefLength:     cbor.IndefLengthForbidden,
		UTF8:            cbor.UTF8DecodeInvalid,
	}
)

type wireArgument struct {
	Type  string          `cbor:"1,keyasint,omitempty"`
	Value cbor.RawMessage `cbor:"2,keyasint,omitempty"`
}

type wireParcel struct {
	ID           string         `cbor:"1,keyasint"`
	Destination  []byte         `cbor:"2,keyasint"`
	Locality     string         `cbor:"3,keyasint,omitempty"`
	Type         uint32         `cbor:"4,keyasint,omitempty"`
	Action       string         `cbor:"5,keyasint"`
	Arguments    []wireArgument `cbor:"6,keyasint,omitempty"`
	Continuation []byte         `cbor:"7,keyasint,omitempty"`
	Source       string         `cbor:"8,keyasint,omitempty"`
	Hops         int            `cbor:"9,keyasint,omitempty"`
}

// Codec turns parcels into bytes and back. Actions are rebuilt by name from
// the catalog and arguments keep their Go types through the types registry.
// Address handles never leave the node and a FullAddress continuation travels
// as its GID. A Codec is safe for concurrent use.
type Codec struct {
	catalog  *action.Catalog
	types    registry.Registry
	encMode  cbor.EncMode
	decMode  cbor.DecMode
	compress Compression
	encoder  *zstd.Encoder
	decoder  *zstd.Decoder
}

// CodecOption configures a Codec
type CodecOption func(*Codec)

// WithCompression sets the algorithm used on encoded frames. Decoding
// accepts frames of every algorithm either way.
func WithCompression(compression Compression) CodecOption {
	return func(c *Codec) {
		c.compress = compression
	}
}

// WithTypes registers argument types in addition to the builtin scalars.
func WithTypes(values ...any) CodecOption {
	return func(c *Codec) {
		c.types.Register(values...)
	}
}

// NewCodec creates a Codec resolving action names through catalog.
func NewCodec(catalog *action.Catalog, opts ...CodecOption) (*Codec, error) {
	encMode, err := cborEncOpts.EncMode()
	if err != nil {
		return nil, err
	}

	decMode, err := cborDecOpts.DecMode()
	if err != nil {
		return nil, err
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, err
	}

	decoder, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(64<<20))
	if err != nil {
		return nil, err
	}

	codec := &Codec{
		catalog:  catalog,
		types:    registry.New(),
		encMode:  encMode,
		decMode:  decMode,
		compress: NoCompression,
		encoder:  encoder,
		decoder:  decoder,
	}

	for _, opt := range opts {
		opt(codec)
	}

	if !codec.compress.IsValid() {
		return nil, fmt.Errorf("unknown compression %q", codec.compress)
	}

	return codec, nil
}

// Compression returns the algorithm applied to encoded frames.
func (c *Codec) Compression() Compression {
	return c.compress
}

// Register makes the dynamic types of values encodable as arguments.
func (c *Codec) Register(values ...any) {
	c.types.Register(values...)
}

// Encode serializes p.
func (c *Codec) Encode(p *Parcel) ([]byte, error) {
	if p == nil || p.action == nil {
		return nil, errors.ErrUndefinedAction
	}

	wire := wireParcel{
		ID:          p.id,
		Destination: p.destination.Bytes(),
		Locality:    string(p.addr.Locality),
		Type:        uint32(p.addr.Type),
		Action:      p.action.Name(),
		Source:      string(p.source),
		Hops:        p.hops,
	}

	if cont := p.continuation; cont != nil {
		wire.Continuation = cont.GID().Bytes()
	}

	args := p.action.Arguments()
	if args.Len() > 0 {
		wire.Arguments = make([]wireArgument, args.Len())
		for i := range args.Len() {
			arg, err := c.encodeArgument(args.At(i))
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			wire.Arguments[i] = arg
		}
	}

	payload, err := c.encMode.Marshal(&wire)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	switch c.compress {
	case ZstdCompression:
		out := make([]byte, frameHeaderSize, frameHeaderSize+len(payload)/2)
		out[0], out[1] = frameMagic, frameZstd
		return c.encoder.EncodeAll(payload, out), nil
	case BrotliCompression:
		out := bytes.NewBuffer(make([]byte, 0, frameHeaderSize+len(payload)/2))
		out.Write([]byte{frameMagic, frameBrotli})
		if err := brotli.Compress(out, payload); err != nil {
			return nil, errors.NewInternalError(err)
		}
		return out.Bytes(), nil
	default:
		return append([]byte{frameMagic, frameRaw}, payload...), nil
	}
}

// Decode rebuilds a parcel from data.
func (c *Codec) Decode(data []byte) (*Parcel, error) {
	if len(data) < frameHeaderSize || data[0] != frameMagic {
		return nil, errors.NewErrInvalidParcel(stderrors.New("malformed frame"))
	}

	payload := data[frameHeaderSize:]
	switch data[1] {
	case frameRaw:
	case frameZstd:
		decompressed, err := c.decoder.DecodeAll(payload, nil)
		if err != nil {
			return nil, errors.NewErrInvalidParcel(err)
		}
		payload = decompressed
	case frameBrotli:
		decompressed, err := brotli.Decompress(payload)
		if err != nil {
			return nil, errors.NewErrInvalidParcel(err)
		}
		payload = decompressed
	default:
		return nil, errors.NewErrInvalidParcel(fmt.Errorf("unknown frame kind %d", data[1]))
	}

	var wire wireParcel
	if err := c.decMode.Unmarshal(payload, &wire); err != nil {
		return nil, errors.NewErrInvalidParcel(err)
	}

	destination, err := address.GIDFromBytes(wire.Destination)
	if err != nil {
		return nil, errors.NewErrInvalidParcel(err)
	}

	def, err := c.catalog.Lookup(wire.Action)
	if err != nil {
		return nil, err
	}

	values := make([]any, len(wire.Arguments))
	for i, arg := range wire.Arguments {
		value, err := c.decodeArgument(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		values[i] = value
	}

	// the sender already enforced its arity bound
	act, err := action.Bind(def, len(values), values...)
	if err != nil {
		return nil, err
	}

	var cont *action.Continuation
	if len(wire.Continuation) > 0 {
		gid, err := address.GIDFromBytes(wire.Continuation)
		if err != nil {
			return nil, errors.NewErrInvalidParcel(err)
		}
		cont = action.NewContinuation(gid)
	}

	return &Parcel{
		id:          wire.ID,
		destination: destination,
		addr: address.Address{
			Locality: address.Locality(wire.Locality),
			Type:     component.Type(wire.Type),
		},
		action:       act,
		continuation: cont,
		source:       address.Locality(wire.Source),
		hops:         wire.Hops,
	}, nil
}

func (c *Codec) encodeArgument(value any) (wireArgument, error) {
	if value == nil {
		return wireArgument{}, nil
	}

	name := registry.Name(value)
	if !c.types.Exists(value) {
		return wireArgument{}, errors.NewErrArgumentTypeNotRegistered(name)
	}

	raw, err := c.encMode.Marshal(value)
	if err != nil {
		return wireArgument{}, errors.NewInternalError(err)
	}

	return wireArgument{Type: name, Value: raw}, nil
}

func (c *Codec) decodeArgument(arg wireArgument) (any, error) {
	if arg.Type == "" {
		return nil, nil
	}

	rtype, ok := c.types.TypeOf(arg.Type)
	if !ok {
		return nil, errors.NewErrArgumentTypeNotRegistered(arg.Type)
	}

	ptr := reflect.New(rtype)
	if err := c.decMode.Unmarshal(arg.Value, ptr.Interface()); err != nil {
		return nil, errors.NewErrInvalidParcel(err)
	}
	return ptr.Elem().Interface(), nil
}

// Close releases the compression resources.
func (c *Codec) Close() error {
	c.decoder.Close()
	return c.encoder.Close()
}
