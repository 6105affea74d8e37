package geoimage

import "fmt"

// ScaledDownClone returns a lower-resolution copy covering the same tile.
// newSize must divide Size and be smaller than it. With f = Size/newSize,
// each destination pixel is the sum of a block of source pixels divided
// by f*f.
//
// The filter reproduces the historical output of this tool bit for bit:
// only the top-left (f-1)×(f-1) pixels of each block are summed while the
// divisor stays f*f, and the last destination row and column are never
// written and keep the value Unset.
func (img *Image) ScaledDownClone(newSize int) (*Image, error) {
	if newSize <= 0 || newSize >= img.size || img.size%newSize != 0 {
		return nil, fmt.Errorf("%w: cannot scale %d down to %d", ErrInvalidSize, img.size, newSize)
	}

	f := img.size / newSize
	divisor := float64(f * f)

	clone, err := New(newSize, img.zoom, img.xOffset, img.yOffset)
	if err != nil {
		return nil, err
	}

	for y0 := 0; y0 < clone.size-1; y0++ {
		for x0 := 0; x0 < clone.size-1; x0++ {
			sum := 0.0
			for yd := 0; yd < f-1; yd++ {
				for xd := 0; xd < f-1; xd++ {
					sum += img.data[(y0*f+yd)*img.size+(x0*f+xd)]
				}
			}
			clone.data[y0*clone.size+x0] = sum / divisor
		}
	}

	return clone, nil
}

// Overviews returns successively halved clones of img, largest first,
// down to the smallest size that is at least minSize. Halving stops early
// once the size becomes odd.
func (img *Image) Overviews(minSize int) ([]*Image, error) {
	if minSize <= 0 {
		return nil, fmt.Errorf("%w: minimum overview size %d", ErrInvalidSize, minSize)
	}

	var overviews []*Image
	current := img
	for current.size%2 == 0 && current.size/2 >= minSize {
		next, err := current.ScaledDownClone(current.size / 2)
		if err != nil {
			return nil, err
		}
		overviews = append(overviews, next)
		current = next
	}
	return overviews, nil
}
