package spec_test

import (
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/eak1mov/go-geoimage/pm/spec"
	"github.com/stretchr/testify/require"
)

func TestHeaderLength(t *testing.T) {
	require.Equal(t, binary.Size(spec.Header{}), spec.HeaderLength)
}

func TestHeaderSerializer(t *testing.T) {
	header1 := spec.Header{HeaderMagic: spec.HeaderMagicV3}
	headerData := spec.SerializeHeader(&header1)
	header2, err := spec.DeserializeHeader(headerData)
	require.Nil(t, err)
	require.Equal(t, header1, *header2)
}

func TestHeaderErrors(t *testing.T) {
	buf := []byte("foobar")
	_, err := spec.DeserializeHeader(buf)
	require.Truef(t, errors.Is(err, spec.ErrInvalidHeader), "%v", err)
	require.Truef(t, errors.Is(err, io.ErrUnexpectedEOF), "%v", err)
}

func TestHeaderVersion(t *testing.T) {
	headerData := spec.SerializeHeader(&spec.Header{HeaderMagic: spec.HeaderMagicV3})
	headerData[7] = 0x02 // version byte follows the "PMTiles" magic
	_, err := spec.DeserializeHeader(headerData)
	require.ErrorIs(t, err, spec.ErrInvalidVersion)

	headerData[0] = 'X'
	_, err = spec.DeserializeHeader(headerData)
	require.ErrorIs(t, err, spec.ErrInvalidHeader)
}

func TestNames(t *testing.T) {
	require.Equal(t, "png", spec.TileTypePng.String())
	for _, c := range []spec.Compression{spec.CompressionNone, spec.CompressionGzip, spec.CompressionBrotli, spec.CompressionZstd} {
		parsed, err := spec.ParseCompression(c.String())
		require.NoError(t, err)
		require.Equal(t, c, parsed)
	}
	_, err := spec.ParseCompression("lzma")
	require.Error(t, err)
}
