package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/openkraft/csvcheck/internal/domain"
	"github.com/openkraft/csvcheck/internal/domain/validator"
)

const defaultConcurrency = 4

// ValidateService runs the column validators over CSV files and collects
// their results into a report.
type ValidateService struct {
	oracle domain.LocaleOracle
	fsys   domain.FileSystem
	opener domain.SourceOpener
	logger *zap.Logger
	now    func() time.Time
}

// NewValidateService creates a ValidateService. A nil logger disables logging.
func NewValidateService(
	oracle domain.LocaleOracle,
	fsys domain.FileSystem,
	opener domain.SourceOpener,
	logger *zap.Logger,
) *ValidateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ValidateService{
		oracle: oracle, fsys: fsys, opener: opener,
		logger: logger, now: time.Now,
	}
}

// ValidateFiles validates each CSV file with its own validator set and
// returns one report for the run, in input order.
//
// The digital object folder is enumerated once before any file is read.
// Files are validated concurrently; rows within a file are not.
func (s *ValidateService) ValidateFiles(ctx context.Context, cfg domain.CheckConfig, paths []string) (*domain.Report, error) {
	if cfg.Source == "" {
		cfg.Source = domain.SourceInformationObject
	}

	report := domain.NewReport(uuid.NewString(), s.now())
	log := s.logger.With(zap.String("run_id", report.RunID), zap.String("source", string(cfg.Source)))

	opts := cfg.Options()
	if cfg.IsSkipped("digital_object_path") || cfg.Source != domain.SourceInformationObject {
		// The folder would be enumerated for a validator that never runs.
		opts.PathToDigitalObjects = ""
	}

	prototype := validator.NewDefaultSet(s.oracle, s.fsys, opts)
	if dv := prototype.DigitalObjects(); dv != nil && opts.PathToDigitalObjects != "" {
		if listing := dv.Listing(); listing != nil {
			log.Info("digital object folder enumerated",
				zap.String("root", listing.Root),
				zap.Int("files", len(listing.Files)),
				zap.String("size", humanize.Bytes(uint64(listing.TotalBytes))))
		} else {
			log.Warn("digital object folder unavailable", zap.String("path", opts.PathToDigitalObjects))
		}
	}

	limit := cfg.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	files := make([]*domain.FileReport, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fr, err := s.validatePath(path, cfg, prototype.Clone())
			if err != nil {
				return err
			}
			files[i] = fr
			log.Debug("file validated",
				zap.String("file", path),
				zap.Int("rows", fr.Rows),
				zap.String("status", string(fr.Status())))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, f := range files {
		report.Add(f)
	}
	log.Info("validation finished",
		zap.Int("files", len(files)),
		zap.String("status", string(report.Status())))
	return report, nil
}

func (s *ValidateService) validatePath(path string, cfg domain.CheckConfig, set *validator.Set) (*domain.FileReport, error) {
	src, err := s.opener.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if c, ok := src.(io.Closer); ok {
		defer c.Close()
	}

	return s.ValidateSource(path, cfg.Source, src, set.Active(cfg.Source, cfg.IsSkipped))
}

// ValidateSource streams every row of src through validators and returns
// their finalized results. Each validator is reset before the first row.
func (s *ValidateService) ValidateSource(
	filename string,
	source domain.SourceType,
	src domain.RowSource,
	validators []domain.RowValidator,
) (*domain.FileReport, error) {
	header, err := src.Header()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading %s: file has no header row", filename)
		}
		return nil, fmt.Errorf("reading %s header: %w", filename, err)
	}

	for _, v := range validators {
		v.Reset()
		v.ObserveHeader(header)
	}

	rows := 0
	for {
		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s row %d: %w", filename, rows+1, err)
		}
		rows++
		for _, v := range validators {
			v.TestRow(header, row)
		}
	}

	fr := domain.NewFileReport(filename, source)
	fr.Rows = rows
	for _, v := range validators {
		fr.Add(v.TestResult())
	}
	return fr, nil
}
