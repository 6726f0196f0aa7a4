package train

import (
	"context"

	"github.com/born-ml/neuralviz/internal/data"
	"github.com/pkg/errors"
)

// Train runs every epoch over train, evaluating on test after each one, and
// calls hook (if non-nil) at every yield point.
//
// Cancelling ctx stops the run at the next yield point; Train then returns an
// error matching ErrStopped. The network keeps its last update.
func (t *Trainer) Train(ctx context.Context, train, test data.Set, hook func(Progress)) error {
	s, err := t.Begin(train, test)
	if err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			s.Stop()
		}
		y, err := s.Step()
		if err != nil {
			if errors.Is(err, ErrStopped) && ctx.Err() != nil {
				return errors.Wrap(err, context.Cause(ctx).Error())
			}
			return err
		}
		if hook != nil {
			hook(s.Progress(y))
		}
		if y == YieldDone {
			return nil
		}
	}
}
