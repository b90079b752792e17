package simpleblog

import (
	"context"
	"errors"
)

// resolveUpdateConflict classifies a rejected write. When err signals an
// update conflict it re-checks the target: a vanished target downgrades to
// notFound (recoverable, the caller presents a 404-equivalent); a target
// that still exists means a genuine concurrent modification, and the
// conflict propagates unchanged. Conflicts are never retried here.
func resolveUpdateConflict(ctx context.Context, err error, exists func(context.Context) (bool, error), notFound error) error {
	if !errors.Is(err, ErrUpdateConflict) {
		return err
	}
	ok, checkErr := exists(ctx)
	if checkErr != nil {
		return checkErr
	}
	if !ok {
		return notFound
	}
	return err
}
