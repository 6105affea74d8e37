package geoimage

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// fileHeader is the fixed-width prefix of the binary encoding. It is
// followed by DataLength little-endian float64 samples.
type fileHeader struct {
	Size       uint64
	Zoom       uint64
	XOffset    uint64
	YOffset    uint64
	X0         float64
	Y0         float64
	PixelScale float64
	DataLength uint64
}

var headerLength = binary.Size(fileHeader{})

func (img *Image) header() fileHeader {
	return fileHeader{
		Size:       uint64(img.size),
		Zoom:       uint64(img.zoom),
		XOffset:    uint64(img.xOffset),
		YOffset:    uint64(img.yOffset),
		X0:         img.x0,
		Y0:         img.y0,
		PixelScale: img.pixelScale,
		DataLength: uint64(len(img.data)),
	}
}

// WriteTo writes the binary encoding of img to w.
func (img *Image) WriteTo(w io.Writer) (int64, error) {
	header := img.header()
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return 0, err
	}
	if err := binary.Write(w, binary.LittleEndian, img.data); err != nil {
		return int64(headerLength), err
	}
	return int64(headerLength + 8*len(img.data)), nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (img *Image) MarshalBinary() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.Grow(headerLength + 8*len(img.data))
	if _, err := img.WriteTo(&buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. The decoded
// parameters must describe a valid tile, and the stored derived fields
// must match the ones computed from them.
func (img *Image) UnmarshalBinary(data []byte) error {
	reader := bytes.NewReader(data)

	var header fileHeader
	if err := binary.Read(reader, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidData, err)
	}
	if header.Size == 0 || header.Size > math.MaxInt32 ||
		header.Zoom > math.MaxUint32 || header.XOffset > math.MaxUint32 || header.YOffset > math.MaxUint32 {
		return fmt.Errorf("%w: bad header %+v", ErrInvalidData, header)
	}
	if header.DataLength != header.Size*header.Size {
		return fmt.Errorf("%w: %d samples for size %d", ErrInvalidData, header.DataLength, header.Size)
	}
	if reader.Len()%8 != 0 || uint64(reader.Len()/8) != header.DataLength {
		return fmt.Errorf("%w: %d bytes of samples, want %d", ErrInvalidData, reader.Len(), 8*header.DataLength)
	}

	decoded, err := New(int(header.Size), uint32(header.Zoom), uint32(header.XOffset), uint32(header.YOffset))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidData, err)
	}
	if decoded.x0 != header.X0 || decoded.y0 != header.Y0 || decoded.pixelScale != header.PixelScale {
		return fmt.Errorf("%w: derived fields do not match tile parameters", ErrInvalidData)
	}
	if err := binary.Read(reader, binary.LittleEndian, decoded.data); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidData, err)
	}

	*img = *decoded
	return nil
}

// Save writes the binary encoding of img to path, replacing any existing
// file. The data goes to a temporary file first, which is renamed over
// path once it has been written completely.
func (img *Image) Save(path string) error {
	tmpPath := path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("geoimage: save: %w", err)
	}

	writer := bufio.NewWriter(file)
	_, err = img.WriteTo(writer)
	if err == nil {
		err = writer.Flush()
	}
	if err == nil {
		err = file.Sync()
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpPath, path)
	}
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("geoimage: save: %w", err)
	}
	return nil
}

// Load reads an Image written by Save.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("geoimage: load: %w", err)
	}
	img := &Image{}
	if err := img.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("geoimage: load %s: %w", path, err)
	}
	return img, nil
}
