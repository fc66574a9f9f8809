package organizer

import (
	"path/filepath"
	"sync"

	"github.com/arthur-debert/dirsort/pkg/errors"
	"github.com/arthur-debert/dirsort/pkg/filesystem"
	"github.com/arthur-debert/dirsort/pkg/logging"
	"github.com/arthur-debert/dirsort/pkg/rules"
	"github.com/arthur-debert/dirsort/pkg/types"
	"github.com/rs/zerolog"
)

const dirPerm = 0755

// Organizer moves files into rule and date subdirectories
type Organizer struct {
	fs      types.FS
	workers int
	policy  ConflictPolicy
	logger  zerolog.Logger

	// dirLocks holds one *sync.Mutex per destination directory
	dirLocks sync.Map
}

// Option configures an Organizer
type Option func(*Organizer)

// WithFS sets the filesystem implementation (defaults to the OS filesystem)
func WithFS(fsys types.FS) Option {
	return func(o *Organizer) {
		o.fs = fsys
	}
}

// WithWorkers sets how many files are processed concurrently.
// Values below 2 process files sequentially.
func WithWorkers(n int) Option {
	return func(o *Organizer) {
		o.workers = n
	}
}

// WithConflictPolicy sets what happens when a destination file exists
func WithConflictPolicy(p ConflictPolicy) Option {
	return func(o *Organizer) {
		o.policy = p
	}
}

// New creates an Organizer
func New(opts ...Option) *Organizer {
	o := &Organizer{
		fs:      filesystem.NewOS(),
		workers: 1,
		policy:  ConflictSkip,
		logger:  logging.GetLogger("organizer"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Organize sorts directory with the given rules. Errors never reach the
// caller: a missing directory is logged and an empty report returned.
func Organize(directory string, table rules.Table, opts ...Option) *Report {
	return New(opts...).Organize(directory, table)
}

// Organize sorts directory, logging instead of returning the precondition error
func (o *Organizer) Organize(directory string, table rules.Table) *Report {
	report, err := o.Run(directory, table)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrNotADirectory) {
			o.logger.Error().Err(err).Str("directory", directory).
				Msgf("Error: Directory '%s' does not exist.", directory)
		} else {
			o.logger.Error().Err(err).Str("directory", directory).
				Msg("Cannot organize directory")
		}
	}
	return report
}

// Run sorts directory and returns the precondition error, if any.
// Per-file failures are recorded in the report, never returned.
func (o *Organizer) Run(directory string, table rules.Table) (*Report, error) {
	done := logging.LogOperationStart(o.logger, "organize")
	defer done()

	report := &Report{Directory: directory}

	info, err := o.fs.Stat(directory)
	if err != nil || !info.IsDir() {
		dsErr := errors.Newf(errors.ErrNotADirectory,
			"directory '%s' does not exist or is not a directory", directory).
			WithDetail("directory", directory)
		if err != nil {
			dsErr.Wrapped = err
		}
		return report, dsErr
	}

	entries, failed, err := o.scan(directory)
	if err != nil {
		return report, err
	}
	report.Results = append(report.Results, failed...)

	o.logger.Debug().
		Str("directory", directory).
		Int("files", len(entries)).
		Int("rules", table.Len()).
		Int("workers", o.workers).
		Str("onConflict", string(o.policy)).
		Msg("Scanned directory")

	report.Results = append(report.Results, o.processAll(directory, table, entries)...)
	report.sortResults()
	return report, nil
}

// processAll runs the per-file pipeline over entries, sequentially or on
// a bounded pool of workers. Each task captures its own error.
func (o *Organizer) processAll(directory string, table rules.Table, entries []Entry) []Result {
	results := make([]Result, len(entries))

	if o.workers < 2 || len(entries) < 2 {
		for i, e := range entries {
			results[i] = o.processFile(directory, table, e)
		}
		return results
	}

	workers := o.workers
	if workers > len(entries) {
		workers = len(entries)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = o.processFile(directory, table, entries[i])
			}
		}()
	}
	for i := range entries {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// processFile classifies one file, creates its destination and moves it
func (o *Organizer) processFile(directory string, table rules.Table, e Entry) Result {
	res := Result{Name: e.Name, Source: e.Path}

	subdir, ok := table.Resolve(e.Name)
	if !ok {
		o.logger.Warn().Str("file", e.Name).
			Msgf("No rule found for file '%s'. Skipping.", e.Name)
		res.Status = StatusUnmatched
		return res
	}
	res.Subdir = subdir

	fail := func(err error) Result {
		o.logger.Error().Err(err).Str("file", e.Name).
			Fields(errors.GetErrorDetails(err)).
			Msgf("Error processing '%s': %v", e.Name, err)
		res.Status = StatusFailed
		res.Err = err
		return res
	}

	targetDir := filepath.Join(directory, subdir)
	if err := o.fs.MkdirAll(targetDir, dirPerm); err != nil {
		return fail(errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", targetDir))
	}

	dateDir := filepath.Join(targetDir, DateFolder(e.ModTime))
	if err := o.fs.MkdirAll(dateDir, dirPerm); err != nil {
		return fail(errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dateDir))
	}

	dest, err := o.claimAndMove(dateDir, e)
	res.Destination = dest
	if err != nil {
		return fail(err)
	}

	o.logger.Info().
		Str("source", e.Path).
		Str("destination", dest).
		Msgf("Moved '%s' to '%s'", e.Name, dest)
	res.Status = StatusMoved
	return res
}

// claimAndMove picks the destination inside dateDir and moves the file
// there. Both steps run under the directory's lock so that two workers
// cannot claim the same free name.
func (o *Organizer) claimAndMove(dateDir string, e Entry) (string, error) {
	unlock := o.lockDir(dateDir)
	defer unlock()

	dest, err := resolveDestination(o.fs, o.policy, dateDir, e.Name)
	if err != nil {
		return "", err
	}
	if err := moveFile(o.fs, e.Path, dest); err != nil {
		return dest, err
	}
	return dest, nil
}

func (o *Organizer) lockDir(dir string) func() {
	m, _ := o.dirLocks.LoadOrStore(dir, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
