// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package sample

import (
	"fmt"

	"github.com/Davidwarchy/robolog/lib/codec"
)

// Kind identifies the shape of a payload. Every stream declares its
// kind at setup; all envelopes on that stream carry payloads of the
// declared kind.
type Kind uint8

const (
	// KindScalar is a single float64: distance sensors, bumpers,
	// force magnitudes.
	KindScalar Kind = 0

	// KindVector3 is a fixed 3-axis reading: accelerometer, gyro,
	// compass, 3-D force.
	KindVector3 Kind = 1

	// KindPoints is a variable-length list of (x, y, z) points: lidar
	// point clouds. May legitimately be empty on ticks where the
	// device has not produced a cloud yet.
	KindPoints Kind = 2

	// KindBuffer is a variable-length flat value row: depth image
	// rows, actuator command pairs.
	KindBuffer Kind = 3
)

var kindNames = map[Kind]string{
	KindScalar:  "scalar",
	KindVector3: "vector3",
	KindPoints:  "points",
	KindBuffer:  "buffer",
}

// String returns the lowercase name of the kind, or "unknown(n)" for
// values outside the defined set.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler so kinds serialize as
// their names in log headers and manifests.
func (k Kind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("invalid payload kind %d", uint8(k))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(data []byte) error {
	parsed, err := ParseKind(string(data))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind converts a kind name to its Kind value.
func ParseKind(name string) (Kind, error) {
	for kind, kindName := range kindNames {
		if kindName == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown payload kind %q", name)
}

// Payload is one sensor reading in its canonical shape. Exactly the
// variant named by Kind is populated; use the constructors rather than
// struct literals so the tag and variant stay consistent.
type Payload struct {
	Kind Kind

	// Scalar holds the value for KindScalar payloads.
	Scalar float64

	// Vec holds the value for KindVector3 payloads.
	Vec [3]float64

	// Points holds the value for KindPoints payloads. Non-nil, may be
	// empty.
	Points [][3]float64

	// Buffer holds the value for KindBuffer payloads. Non-nil, may be
	// empty.
	Buffer []float64
}

// Scalar returns a scalar payload.
func Scalar(v float64) Payload {
	return Payload{Kind: KindScalar, Scalar: v}
}

// Vector returns a 3-vector payload.
func Vector(v [3]float64) Payload {
	return Payload{Kind: KindVector3, Vec: v}
}

// PointCloud returns a point-list payload. A nil argument yields an
// empty (not nil) point list: an absent cloud is an empty reading,
// never an invalid one.
func PointCloud(points [][3]float64) Payload {
	if points == nil {
		points = [][3]float64{}
	}
	return Payload{Kind: KindPoints, Points: points}
}

// Buffer returns a flat-buffer payload. A nil argument yields an
// empty buffer.
func Buffer(values []float64) Payload {
	if values == nil {
		values = []float64{}
	}
	return Payload{Kind: KindBuffer, Buffer: values}
}

// Width returns the number of float64 values the payload flattens to.
func (p Payload) Width() int {
	switch p.Kind {
	case KindScalar:
		return 1
	case KindVector3:
		return 3
	case KindPoints:
		return 3 * len(p.Points)
	case KindBuffer:
		return len(p.Buffer)
	}
	return 0
}

// Flatten returns the payload as a flat row of float64 values, in the
// order the CSV exporter writes them: scalar as one element, vectors
// axis by axis, point lists point by point.
func (p Payload) Flatten() []float64 {
	switch p.Kind {
	case KindScalar:
		return []float64{p.Scalar}
	case KindVector3:
		return []float64{p.Vec[0], p.Vec[1], p.Vec[2]}
	case KindPoints:
		flat := make([]float64, 0, 3*len(p.Points))
		for _, point := range p.Points {
			flat = append(flat, point[0], point[1], point[2])
		}
		return flat
	case KindBuffer:
		flat := make([]float64, len(p.Buffer))
		copy(flat, p.Buffer)
		return flat
	}
	return nil
}

// Empty reports whether a variable-length payload holds no values.
// Scalar and vector payloads are never empty.
func (p Payload) Empty() bool {
	switch p.Kind {
	case KindPoints:
		return len(p.Points) == 0
	case KindBuffer:
		return len(p.Buffer) == 0
	}
	return false
}

// payloadWire is the CBOR shape of a payload: the kind tag plus only
// the active variant. Pointer fields with omitempty keep inactive
// variants off the wire entirely.
type payloadWire struct {
	Kind   Kind         `cbor:"kind"`
	Scalar *float64     `cbor:"scalar,omitempty"`
	Vec    *[3]float64  `cbor:"vec,omitempty"`
	Points [][3]float64 `cbor:"points,omitempty"`
	Buffer []float64    `cbor:"buffer,omitempty"`
}

// MarshalCBOR implements cbor.Marshaler, encoding only the variant
// named by Kind.
func (p Payload) MarshalCBOR() ([]byte, error) {
	wire := payloadWire{Kind: p.Kind}
	switch p.Kind {
	case KindScalar:
		wire.Scalar = &p.Scalar
	case KindVector3:
		wire.Vec = &p.Vec
	case KindPoints:
		wire.Points = p.Points
	case KindBuffer:
		wire.Buffer = p.Buffer
	default:
		return nil, fmt.Errorf("marshal payload: invalid kind %d", uint8(p.Kind))
	}
	return codec.Marshal(wire)
}

// UnmarshalCBOR implements cbor.Unmarshaler. Empty point lists and
// buffers are restored as empty, not nil, so an empty reading survives
// the round trip as an empty reading.
func (p *Payload) UnmarshalCBOR(data []byte) error {
	var wire payloadWire
	if err := codec.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	decoded := Payload{Kind: wire.Kind}
	switch wire.Kind {
	case KindScalar:
		if wire.Scalar != nil {
			decoded.Scalar = *wire.Scalar
		}
	case KindVector3:
		if wire.Vec != nil {
			decoded.Vec = *wire.Vec
		}
	case KindPoints:
		decoded.Points = wire.Points
		if decoded.Points == nil {
			decoded.Points = [][3]float64{}
		}
	case KindBuffer:
		decoded.Buffer = wire.Buffer
		if decoded.Buffer == nil {
			decoded.Buffer = []float64{}
		}
	default:
		return fmt.Errorf("unmarshal payload: invalid kind %d", uint8(wire.Kind))
	}
	*p = decoded
	return nil
}

// Envelope pairs a simulation timestamp with one payload. Timestamps
// are monotonically non-decreasing within a single stream; streams are
// not synchronized with each other.
type Envelope struct {
	// Time is the simulation clock at acquisition, in seconds.
	Time float64 `cbor:"t"`

	// Payload is the reading.
	Payload Payload `cbor:"p"`
}
