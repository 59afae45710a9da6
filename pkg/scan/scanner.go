package scan

import (
	"context"
	"sort"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/sdejongh/foldermatch/pkg/fingerprint"
	"github.com/sdejongh/foldermatch/pkg/logging"
	"github.com/sdejongh/foldermatch/pkg/models"
	"github.com/sdejongh/foldermatch/pkg/storage"
)

// DefaultWorkers is the fingerprinting parallelism used when none is set
const DefaultWorkers = 4

// Options configures a Scanner
type Options struct {
	// Workers bounds concurrent fingerprinting. Values below 1 mean 1.
	Workers int

	// Exclude holds glob patterns matched against snapshot keys
	Exclude []string
}

// Result is a snapshot plus the files that could not be fingerprinted
type Result struct {
	Snapshot *models.DirectorySnapshot
	Errors   []*models.FileError
	Duration time.Duration
}

// Scanner walks a directory tree and fingerprints every regular file
type Scanner struct {
	fs      afero.Fs
	hasher  *fingerprint.Hasher
	logger  logging.Logger
	options Options
}

// NewScanner creates a scanner over fsys. A nil fsys uses the OS filesystem.
func NewScanner(fsys afero.Fs, logger logging.Logger, options Options) *Scanner {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if options.Workers < 1 {
		options.Workers = 1
	}
	return &Scanner{
		fs:      fsys,
		hasher:  fingerprint.NewHasher(fsys),
		logger:  logging.OrNull(logger),
		options: options,
	}
}

// fingerprintJob is one file awaiting a fingerprint
type fingerprintJob struct {
	info storage.FileInfo
	fp   models.FileFingerprint
	err  error
}

// Scan builds a snapshot of root. A missing or non-directory root is a
// *models.FilesystemError. Files that vanish or cannot be read are skipped,
// logged, and returned in Result.Errors. The scan is not cancellable; ctx
// only carries logging context.
func (s *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	start := time.Now()

	backend, err := storage.NewLocal(s.fs, root)
	if err != nil {
		s.logger.Error(ctx, "scan failed", err, logging.Fields{"root": root})
		return nil, err
	}
	defer backend.Close()

	log := s.logger.WithFields(logging.Fields{"root": backend.Root()})
	log.Info(ctx, "scan started", logging.Fields{"workers": s.options.Workers})

	files, listErrs, err := backend.List(ctx)
	if err != nil {
		log.Error(ctx, "scan failed", err, nil)
		return nil, err
	}

	jobs := make([]fingerprintJob, 0, len(files))
	for _, f := range files {
		if shouldExclude(f.RelativePath, s.options.Exclude) {
			log.Debug(ctx, "file excluded", logging.Fields{"path": f.RelativePath})
			continue
		}
		jobs = append(jobs, fingerprintJob{info: f})
	}

	// Each job writes only its own slot, so no lock is needed and the
	// snapshot is assembled in walk order afterwards. Per-file errors travel
	// through job.err; the group only bounds and joins the workers.
	var g errgroup.Group
	g.SetLimit(s.options.Workers)
	for i := range jobs {
		job := &jobs[i]
		g.Go(func() error {
			job.fp, job.err = s.hasher.Fingerprint(job.info.Path)
			return nil
		})
	}
	_ = g.Wait() // workers never return an error

	entries := make(map[string]models.FileFingerprint, len(jobs))
	fileErrs := append([]*models.FileError(nil), listErrs...)
	for _, job := range jobs {
		if job.err != nil {
			fileErrs = append(fileErrs, toFileError(job.info.Path, job.err))
			continue
		}
		entries[job.info.RelativePath] = job.fp
	}

	sort.Slice(fileErrs, func(i, j int) bool {
		return fileErrs[i].Path < fileErrs[j].Path
	})
	for _, fe := range fileErrs {
		log.Warn(ctx, "file skipped", logging.Fields{"path": fe.Path, "op": fe.Op, "error": fe.Err.Error()})
	}

	snapshot := models.NewDirectorySnapshot(backend.Root(), entries)
	duration := time.Since(start)

	log.Info(ctx, "scan completed", logging.Fields{
		"files":    snapshot.Len(),
		"skipped":  len(fileErrs),
		"bytes":    snapshot.TotalBytes(),
		"duration": duration.String(),
	})

	return &Result{Snapshot: snapshot, Errors: fileErrs, Duration: duration}, nil
}

func toFileError(path string, err error) *models.FileError {
	if fe, ok := err.(*models.FileError); ok {
		return fe
	}
	return &models.FileError{Path: path, Op: "fingerprint", Err: err}
}
