package tile

import (
	"errors"
	"iter"
)

var errVisitCancelled = errors.New("visit cancelled")

// IterTiles returns an iterator over all tiles in the tileset.
// It yields tile IDs and their data. Iteration panics on unrecoverable errors.
func IterTiles(r Visitor) iter.Seq2[ID, []byte] {
	return visitSeq(r.VisitTiles)
}

// IterLocations returns an iterator over the locations of all tiles in the tileset.
func IterLocations(r LocationVisitor) iter.Seq2[ID, Location] {
	return visitSeq(r.VisitLocations)
}

func visitSeq[V any](visit func(func(ID, V) error) error) iter.Seq2[ID, V] {
	return func(yield func(ID, V) bool) {
		err := visit(func(tileID ID, value V) error {
			if !yield(tileID, value) {
				return errVisitCancelled
			}
			return nil
		})
		if err != nil && err != errVisitCancelled {
			panic(err)
		}
	}
}
