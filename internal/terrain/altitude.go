package terrain

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/Faultbox/isocore/internal/slope"
)

// Altitude table errors.
var (
	ErrInvalidAltitudeMagic       = errors.New("invalid altitude table magic: expected 'ISOA'")
	ErrUnsupportedAltitudeVersion = errors.New("unsupported altitude table version")
	ErrTruncatedAltitudeData      = errors.New("truncated altitude table data")
)

// Binary altitude table, little endian:
//
//	magic   "ISOA"
//	version minor, major (1 byte each)
//	width   uint32
//	height  uint32
//	tiles   width*height records of absolute corner heights n, e, s, w (1 byte each)
var altitudeMagic = []byte("ISOA")

const (
	altitudeMajor  = 1
	altitudeMinor  = 0
	altitudeHeader = 14
)

// IsAltitudeTable reports whether data starts with the altitude table magic.
func IsAltitudeTable(data []byte) bool {
	return bytes.HasPrefix(data, altitudeMagic)
}

// ParseAltitude builds a map from a binary altitude table.
func ParseAltitude(data []byte, table slope.Table) (*Map, error) {
	if len(data) < altitudeHeader {
		return nil, ErrTruncatedAltitudeData
	}
	if !IsAltitudeTable(data) {
		return nil, ErrInvalidAltitudeMagic
	}
	// Version is stored as [minor, major]
	if major := data[5]; major != altitudeMajor {
		return nil, fmt.Errorf("%w: %d.%d", ErrUnsupportedAltitudeVersion, major, data[4])
	}

	r := bytes.NewReader(data[6:])

	var width, height uint32
	if err := binary.Read(r, binary.LittleEndian, &width); err != nil {
		return nil, fmt.Errorf("%w: reading width", ErrTruncatedAltitudeData)
	}
	if err := binary.Read(r, binary.LittleEndian, &height); err != nil {
		return nil, fmt.Errorf("%w: reading height", ErrTruncatedAltitudeData)
	}

	m, err := New(int(width), int(height))
	if err != nil {
		return nil, err
	}

	var corners [4]uint8
	for y := range m.Height {
		for x := range m.Width {
			if err := binary.Read(r, binary.LittleEndian, &corners); err != nil {
				return nil, fmt.Errorf("%w: tile (%d,%d)", ErrTruncatedAltitudeData, x, y)
			}
			n, e, s, w := int(corners[0]), int(corners[1]), int(corners[2]), int(corners[3])
			if err := m.SetCorners(x, y, n, e, s, w, table); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// MarshalAltitude encodes m as a binary altitude table.
func (m *Map) MarshalAltitude(table slope.Table) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, altitudeHeader+4*len(m.Tiles)))
	buf.Write(altitudeMagic)
	buf.WriteByte(altitudeMinor)
	buf.WriteByte(altitudeMajor)
	_ = binary.Write(buf, binary.LittleEndian, uint32(m.Width))
	_ = binary.Write(buf, binary.LittleEndian, uint32(m.Height))

	for i, tile := range m.Tiles {
		if int(tile.Shape) >= len(table) {
			return nil, fmt.Errorf("tile %d: unknown shape %d", i, tile.Shape)
		}
		c := table[tile.Shape]
		for _, h := range [4]int{c.N, c.E, c.S, c.W} {
			h += tile.Height
			if h < 0 || h > 255 {
				return nil, fmt.Errorf("tile %d: corner height %d out of range", i, h)
			}
			buf.WriteByte(uint8(h))
		}
	}
	return buf.Bytes(), nil
}
