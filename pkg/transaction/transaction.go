// Package transaction queues file operations and applies them in order.
package transaction

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/punkt/pkg/errors"
	"github.com/arthur-debert/punkt/pkg/filesystem"
	"github.com/arthur-debert/punkt/pkg/logging"
	"github.com/arthur-debert/punkt/pkg/paths"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Kind is the operation a transaction performs
type Kind int

const (
	// CopyToLocal copies an active path to its local counterpart
	CopyToLocal Kind = iota
	// CopyToActive copies a local path to its active counterpart
	CopyToActive
	// MakeDirectories creates a directory and its parents. Path is the
	// destination itself, already mapped by the caller: sync creates local
	// directories and activate active ones, so no single mapping fits both.
	MakeDirectories
	// Delete removes a path below the local root recursively. Path is the
	// local destination as given.
	Delete
)

func (k Kind) String() string {
	switch k {
	case CopyToLocal:
		return "copy-to-local"
	case CopyToActive:
		return "copy-to-active"
	case MakeDirectories:
		return "mkdir"
	case Delete:
		return "delete"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Transaction is one pending operation. Two transactions are equal when
// their kind and path are equal.
type Transaction struct {
	Kind Kind
	Path string
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s %s", t.Kind, t.Path)
}

// Report lists what a commit applied
type Report struct {
	Applied []Transaction
	DryRun  bool
}

// Log accumulates transactions in insertion order without duplicates.
type Log struct {
	fs     afero.Fs
	mapper *paths.Mapper
	logger zerolog.Logger

	pending []Transaction
	index   map[Transaction]struct{}

	// DryRun reports transactions without touching the filesystem
	DryRun bool
}

// New creates an empty Log
func New(fs afero.Fs, mapper *paths.Mapper) *Log {
	return &Log{
		fs:     fs,
		mapper: mapper,
		logger: logging.GetLogger(logging.ComponentTransaction),
		index:  make(map[Transaction]struct{}),
	}
}

// Enqueue adds tx unless an equal transaction is already pending.
// It reports whether tx was added.
func (l *Log) Enqueue(tx Transaction) bool {
	if _, ok := l.index[tx]; ok {
		return false
	}
	l.index[tx] = struct{}{}
	l.pending = append(l.pending, tx)
	l.logger.Trace().Str("tx", tx.String()).Msg("Enqueued")
	return true
}

// Pending returns a copy of the queued transactions in insertion order
func (l *Log) Pending() []Transaction {
	out := make([]Transaction, len(l.pending))
	copy(out, l.pending)
	return out
}

// Len returns the number of queued transactions
func (l *Log) Len() int {
	return len(l.pending)
}

// Commit applies the queued transactions in insertion order. The first
// failure stops the commit; transactions applied before it stay applied.
// The queue is empty afterwards in every case.
func (l *Log) Commit() (Report, error) {
	pending := l.pending
	l.pending = nil
	l.index = make(map[Transaction]struct{})

	done := logging.LogOperationStart(l.logger, "commit")
	defer done()

	report := Report{DryRun: l.DryRun, Applied: make([]Transaction, 0, len(pending))}
	for _, tx := range pending {
		if l.DryRun {
			l.logger.Info().Str("tx", tx.String()).Msg("Dry run")
			report.Applied = append(report.Applied, tx)
			continue
		}
		if err := l.apply(tx); err != nil {
			l.logger.Error().Err(err).Str("tx", tx.String()).
				Int("applied", len(report.Applied)).
				Msg("Commit aborted")
			return report, err
		}
		l.logger.Debug().Str("tx", tx.String()).Msg("Applied")
		report.Applied = append(report.Applied, tx)
	}
	return report, nil
}

func (l *Log) apply(tx Transaction) error {
	switch tx.Kind {
	case CopyToLocal:
		return l.copy(tx, tx.Path, l.mapper.ToLocal(tx.Path))
	case CopyToActive:
		return l.copy(tx, tx.Path, l.mapper.ToActive(tx.Path))
	case MakeDirectories:
		if !l.mapper.IsLocal(tx.Path) && !l.mapper.IsActive(tx.Path) {
			return refuse(tx, "outside both trees")
		}
		if err := l.fs.MkdirAll(tx.Path, filesystem.DirPerm); err != nil {
			return annotate(errors.FromOS(tx.Path, err), tx)
		}
		return nil
	case Delete:
		if !l.mapper.IsLocal(tx.Path) || filepath.Clean(tx.Path) == l.mapper.LocalRoot() {
			return refuse(tx, "delete is limited to entries below the local root")
		}
		if err := l.fs.RemoveAll(tx.Path); err != nil {
			return annotate(errors.FromOS(tx.Path, err), tx)
		}
		return nil
	default:
		return errors.Newf(errors.ErrInternal, "unknown transaction kind %d", int(tx.Kind))
	}
}

func (l *Log) copy(tx Transaction, src, dst string) error {
	l.logger.Trace().Str("from", src).Str("to", dst).Msg("Copying")
	return annotate(filesystem.CopyFile(l.fs, src, dst), tx)
}

func refuse(tx Transaction, reason string) error {
	return errors.PathError(errors.ErrInvalidInput, tx.Path, nil).
		WithDetail("transaction", tx.String()).
		WithDetail("reason", reason)
}

func annotate(err error, tx Transaction) error {
	if err == nil {
		return nil
	}
	var punktErr *errors.PunktError
	if errors.As(err, &punktErr) {
		return punktErr.WithDetail("transaction", tx.String())
	}
	return errors.PathError(errors.ErrIO, tx.Path, err).WithDetail("transaction", tx.String())
}
