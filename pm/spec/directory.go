package spec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
)

var ErrInvalidDirectory = errors.New("invalid directory")

type Entry struct {
	TileCode  uint64 // PMTiles v3: TileID
	Offset    uint64
	Length    uint32
	RunLength uint32
}

func SerializeDirectory(entries []Entry) []byte {
	buffer := make([]byte, 0)

	buffer = binary.AppendUvarint(buffer, uint64(len(entries)))

	lastCode := uint64(0)
	for _, entry := range entries {
		buffer = binary.AppendUvarint(buffer, uint64(entry.TileCode)-lastCode)
		lastCode = uint64(entry.TileCode)
	}

	for _, entry := range entries {
		buffer = binary.AppendUvarint(buffer, uint64(entry.RunLength))
	}

	for _, entry := range entries {
		buffer = binary.AppendUvarint(buffer, uint64(entry.Length))
	}

	nextOffset := uint64(0)
	for i, entry := range entries {
		if i > 0 && entry.Offset == nextOffset {
			buffer = binary.AppendUvarint(buffer, 0)
		} else {
			buffer = binary.AppendUvarint(buffer, uint64(entry.Offset)+1)
		}
		nextOffset = entry.Offset + uint64(entry.Length)
	}

	return buffer
}

func DeserializeDirectory(data []byte) ([]Entry, error) {
	byteReader := bytes.NewReader(data)

	var err error
	readUvarint := func() uint64 {
		if err != nil {
			return 0
		}
		var value uint64
		value, err = binary.ReadUvarint(byteReader)
		return value
	}

	// Every entry takes at least four bytes, one per column.
	numEntries := readUvarint()
	if err != nil || numEntries > uint64(len(data))/4 {
		return nil, fmt.Errorf("%w: bad entry count %d", ErrInvalidDirectory, numEntries)
	}
	entries := make([]Entry, numEntries)

	lastCode := uint64(0)
	for i := range numEntries {
		value := readUvarint()
		entries[i].TileCode = lastCode + value
		lastCode += value
	}

	for i := range numEntries {
		entries[i].RunLength = uint32(readUvarint())
	}

	for i := range numEntries {
		entries[i].Length = uint32(readUvarint())
	}

	for i := range numEntries {
		value := readUvarint()
		if value == 0 && i > 0 {
			entries[i].Offset = entries[i-1].Offset + uint64(entries[i-1].Length)
		} else {
			entries[i].Offset = value - 1
		}
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDirectory, err)
	}
	return entries, nil
}

func CompactEntries(entries []Entry) []Entry {
	if len(entries) == 0 {
		return entries
	}
	wi := 0
	for ri := 1; ri < len(entries); ri++ {
		if entries[ri].Offset == entries[wi].Offset &&
			entries[ri].TileCode == entries[wi].TileCode+uint64(entries[wi].RunLength) {
			entries[wi].RunLength++
		} else {
			wi++
			entries[wi] = entries[ri]
		}
	}
	return entries[:wi+1]
}

func FindEntry(entries []Entry, tileCode uint64) (Entry, bool) {
	idx := sort.Search(len(entries), func(i int) bool {
		return entries[i].TileCode > tileCode
	})

	if idx == 0 {
		return Entry{}, false
	}

	entry := &entries[idx-1]
	if entry.RunLength == 0 {
		// should continue search in leaf directory
		return *entry, true
	}
	if tileCode < entry.TileCode+uint64(entry.RunLength) {
		// found in root directory
		return *entry, true
	}

	return Entry{}, false
}

// SerializeAll serializes and compresses the root directory and, if the
// root would not fit into RootDirMaxLength, a set of leaf directories.
func SerializeAll(entries []Entry, compression Compression) (root []byte, leaves []byte, err error) {
	rootEntries := entries
	rootCompressed, err := Compress(SerializeDirectory(rootEntries), compression)
	if err != nil {
		return nil, nil, err
	}
	leavesCompressed := make([]byte, 0)

	if len(entries) == 0 {
		return rootCompressed, leavesCompressed, nil
	}

	entriesCount := float64(len(entries))
	entrySize := float64(len(rootCompressed)) / entriesCount
	targetRootSize := float64(RootDirMaxLength) * 0.9

	maxRootEntries := targetRootSize / entrySize
	minLeafEntries := max(entriesCount/maxRootEntries, 4096)
	leafNumEntries := max(minLeafEntries, math.Sqrt(entriesCount))

	for len(rootCompressed) > RootDirMaxLength {
		rootEntries = make([]Entry, 0, len(entries)/int(leafNumEntries)+1)
		leavesCompressed = leavesCompressed[:0]

		for leafEntries := range slices.Chunk(entries, int(leafNumEntries)) {
			leafCompressed, err := Compress(SerializeDirectory(leafEntries), compression)
			if err != nil {
				return nil, nil, err
			}

			rootEntries = append(rootEntries, Entry{
				TileCode:  leafEntries[0].TileCode,
				Offset:    uint64(len(leavesCompressed)),
				Length:    uint32(len(leafCompressed)),
				RunLength: 0,
			})

			leavesCompressed = append(leavesCompressed, leafCompressed...)
		}

		rootCompressed, err = Compress(SerializeDirectory(rootEntries), compression)
		if err != nil {
			return nil, nil, err
		}

		leafNumEntries *= 1.1
	}

	return rootCompressed, leavesCompressed, nil
}
