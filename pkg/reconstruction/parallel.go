package reconstruction

import (
	"golang.org/x/sync/errgroup"
)

// angleRange is a contiguous block of angle indices owned by one worker.
type angleRange struct {
	lo, hi int
}

// splitAngles partitions numAngles indices into at most workers contiguous
// ranges of near-equal length, in ascending order.
func splitAngles(numAngles, workers int) []angleRange {
	if numAngles <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > numAngles {
		workers = numAngles
	}

	ranges := make([]angleRange, workers)
	base := numAngles / workers
	extra := numAngles % workers
	lo := 0
	for i := range ranges {
		n := base
		if i < extra {
			n++
		}
		ranges[i] = angleRange{lo: lo, hi: lo + n}
		lo += n
	}
	return ranges
}

// forEachRange runs fn once per range, concurrently when there is more than
// one. fn receives the range's position so it can address a private buffer.
func forEachRange(ranges []angleRange, fn func(idx int, r angleRange) error) error {
	if len(ranges) == 1 {
		return fn(0, ranges[0])
	}

	var g errgroup.Group
	for i, r := range ranges {
		i, r := i, r
		g.Go(func() error {
			return fn(i, r)
		})
	}
	return g.Wait()
}
