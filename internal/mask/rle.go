// Package mask implements the binary run-length-encoding codec the
// annotation engine uses for brush-canvas segmentation, matching the COCO
// RLE convention: a column-major bit stream split into alternating runs of
// 0s and 1s, always starting with a (possibly zero-length) run of 0s.
package mask

import (
	"github.com/bertiqwerty/rvimage-sub001/internal/rverr"
)

// Encode converts a dense row-major boolean mask (non-zero is foreground)
// of size w x h into a COCO-style RLE: run lengths counted while scanning
// column-major (down each column, then moving to the next column), starting
// with a run of 0s (length zero if the first pixel is foreground).
func Encode(dense []uint8, w, h int) ([]int, error) {
	const op = "mask.Encode"
	if len(dense) != w*h {
		return nil, rverr.New(rverr.Invariant, op, rverr.ErrLengthMismatch)
	}
	if w == 0 || h == 0 {
		return []int{}, nil
	}

	counts := []int{}
	current := uint8(0)
	run := 0
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			v := dense[y*w+x]
			bit := uint8(0)
			if v != 0 {
				bit = 1
			}
			if bit == current {
				run++
			} else {
				counts = append(counts, run)
				current = bit
				run = 1
			}
		}
	}
	counts = append(counts, run)
	return counts, nil
}

// Decode inverts Encode, expanding an RLE counts stream back into a dense
// row-major boolean mask of size w x h.
func Decode(counts []int, w, h int) ([]uint8, error) {
	const op = "mask.Decode"
	total := 0
	for _, c := range counts {
		if c < 0 {
			return nil, rverr.Newf(rverr.Invariant, op, "negative run length %d", c)
		}
		total += c
	}
	if total != w*h {
		return nil, rverr.Newf(rverr.Invariant, op, "rle covers %d pixels, want %d", total, w*h)
	}

	dense := make([]uint8, w*h)
	bit := uint8(0)
	idx := 0
	for _, c := range counts {
		if bit == 1 {
			for i := 0; i < c; i++ {
				x := idx / h
				y := idx % h
				dense[y*w+x] = 1
				idx++
			}
		} else {
			idx += c
		}
		bit ^= 1
	}
	return dense, nil
}

// BBToImage expands an RLE counts stream defined relative to a bounding box
// of size (bw, bh) at offset (bx, by) into RLE counts covering a full image
// of size (iw, ih), the way a brush canvas's local mask is reframed for
// COCO export.
func BBToImage(counts []int, bx, by, bw, bh, iw, ih int) ([]int, error) {
	local, err := Decode(counts, bw, bh)
	if err != nil {
		return nil, rverr.New(rverr.Invariant, "mask.BBToImage", err)
	}
	full := make([]uint8, iw*ih)
	for y := 0; y < bh; y++ {
		for x := 0; x < bw; x++ {
			if local[y*bw+x] != 0 {
				ix, iy := bx+x, by+y
				if ix >= 0 && ix < iw && iy >= 0 && iy < ih {
					full[iy*iw+ix] = 1
				}
			}
		}
	}
	return Encode(full, iw, ih)
}

// ImageToBB inverts BBToImage: it decodes an image-frame RLE, crops out the
// (bx, by, bw, bh) window, and re-encodes it relative to that window.
func ImageToBB(counts []int, bx, by, bw, bh, iw, ih int) ([]int, error) {
	full, err := Decode(counts, iw, ih)
	if err != nil {
		return nil, rverr.New(rverr.Invariant, "mask.ImageToBB", err)
	}
	local := make([]uint8, bw*bh)
	for y := 0; y < bh; y++ {
		for x := 0; x < bw; x++ {
			ix, iy := bx+x, by+y
			if ix >= 0 && ix < iw && iy >= 0 && iy < ih {
				local[y*bw+x] = full[iy*iw+ix]
			}
		}
	}
	return Encode(local, bw, bh)
}
