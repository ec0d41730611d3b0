package compare

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// progressRows is how many DP rows a worker processes between progress reports
const progressRows = 256

// SimilarityIndex estimates how alike two byte sequences are, in [0, 1].
//
// The first sequence is split into numThreads contiguous chunks and each
// chunk's longest common subsequence with the whole second sequence is
// computed in parallel. The index is 2*sum(LCS)/(len(a)+len(b)). Summing
// per-chunk LCS can overcount, so the result is clamped to 1.
func SimilarityIndex(ctx context.Context, a, b []byte, numThreads int, progress ProgressFunc) (float64, error) {
	if len(a) == 0 && len(b) == 0 {
		return 1.0, nil
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0, nil
	}

	common, err := chunkedLCS(ctx, a, b, numThreads, progress)
	if err != nil {
		return 0, err
	}

	ratio := 2 * float64(common) / float64(len(a)+len(b))
	if ratio > 1 {
		ratio = 1
	}
	return ratio, nil
}

func chunkedLCS(ctx context.Context, a, b []byte, workers int, progress ProgressFunc) (int, error) {
	if workers < 1 {
		workers = 1
	}
	if workers > len(a) {
		workers = len(a)
	}
	chunk := (len(a) + workers - 1) / workers

	total := int64(len(a))
	var done atomic.Int64
	report := func(rows int) {
		n := done.Add(int64(rows))
		if progress != nil {
			progress(n, total)
		}
	}

	partials := make([]int, workers)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < workers; i++ {
		lo := i * chunk
		hi := min(lo+chunk, len(a))
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			n, err := lcsLength(gctx, a[lo:hi], b, report)
			if err != nil {
				return err
			}
			partials[i] = n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	sum := 0
	for _, n := range partials {
		sum += n
	}
	return sum, nil
}

// lcsLength computes the LCS length of a and b with a single rolling row.
// Cancellation is checked between rows.
func lcsLength(ctx context.Context, a, b []byte, report func(rows int)) (int, error) {
	row := make([]int, len(b)+1)
	pending := 0

	for i := 0; i < len(a); i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		diag := 0
		for j := 1; j <= len(b); j++ {
			above := row[j]
			if a[i] == b[j-1] {
				row[j] = diag + 1
			} else if row[j-1] > row[j] {
				row[j] = row[j-1]
			}
			diag = above
		}

		pending++
		if pending == progressRows {
			report(pending)
			pending = 0
		}
	}

	if pending > 0 {
		report(pending)
	}
	return row[len(b)], nil
}
