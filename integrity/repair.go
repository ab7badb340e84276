package integrity

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Target is one file to check during repair.
type Target struct {
	Path      string
	Length    int64
	BlockSize int64
	HashType  string
	Hashes    []string
}

// VerifyAll checks every target with at most workers files in flight and
// returns the broken ones in input order.
func (v *Verifier) VerifyAll(ctx context.Context, targets []Target, workers int) ([]Target, error) {
	if workers <= 0 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	broken := make([]bool, len(targets))

	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, err := v.Check(target.Path, target.Length, target.BlockSize, target.HashType, target.Hashes)
			if err != nil {
				return err
			}
			if !res.Passed {
				log.Info().Str("path", target.Path).Stringer("reason", res.Reason).Int("block", res.Block).Msg("file is broken")
				broken[i] = true
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Target
	for i, b := range broken {
		if b {
			out = append(out, targets[i])
		}
	}
	return out, nil
}
