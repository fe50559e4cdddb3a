package download

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	domain "ytdlapi/internal/domain/download"
)

const defaultConcurrency = 2

// Service tracks download jobs and runs them in the background.
type Service struct {
	store     ArtifactStore
	extractor Extractor
	logger    *log.Logger
	jobs      *jobRegistry

	slots chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewService creates a download service. maxConcurrent caps how many jobs
// talk to the extractor at once; values below 1 fall back to the default.
func NewService(store ArtifactStore, extractor Extractor, logger *log.Logger, maxConcurrent int) *Service {
	if maxConcurrent < 1 {
		maxConcurrent = defaultConcurrency
	}
	if logger == nil {
		logger = log.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		store:     store,
		extractor: extractor,
		logger:    logger,
		jobs:      newJobRegistry(),
		slots:     make(chan struct{}, maxConcurrent),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Formats lists the downloadable formats of url.
func (s *Service) Formats(ctx context.Context, url string) (domain.VideoInfo, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return domain.VideoInfo{}, domain.ErrMissingURL
	}
	info, err := s.extractor.Info(ctx, url)
	if err != nil {
		return domain.VideoInfo{}, err
	}
	info.Formats = domain.NormalizeFormats(info.Formats)
	return info, nil
}

// Submit registers a job and schedules it. The returned job is pending.
func (s *Service) Submit(url string, req domain.FormatRequest) (domain.Job, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return domain.Job{}, domain.ErrMissingURL
	}

	job := s.jobs.Create(url, req.Selector())
	s.logger.Printf("Download queued: %s %s [%s]", job.ID, job.URL, job.Format)

	s.wg.Add(1)
	go s.run(job)

	return job, nil
}

// Status returns a snapshot of the job.
func (s *Service) Status(id string) (domain.Job, error) {
	job, ok := s.jobs.Get(id)
	if !ok {
		return domain.Job{}, domain.ErrJobNotFound
	}
	return job, nil
}

// Artifact resolves the file of a completed job and the name to offer clients.
func (s *Service) Artifact(id string) (string, string, error) {
	job, ok := s.jobs.Get(id)
	if !ok {
		return "", "", domain.ErrJobNotFound
	}
	if job.Status != domain.StatusCompleted || job.Result == nil {
		return "", "", domain.ErrNotReady
	}

	fullPath, err := s.store.ArtifactPath(job.Result.Filename)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", job.Result.Filename, domain.ErrArtifactMissing)
	}
	return fullPath, domain.AttachmentName(job.Result.Title, job.Result.Filename), nil
}

// Count returns the number of jobs tracked since start.
func (s *Service) Count() int {
	return s.jobs.Count()
}

// Shutdown cancels running downloads and waits for their goroutines.
func (s *Service) Shutdown(ctx context.Context) error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) run(job domain.Job) {
	defer s.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("Download panicked: %s: %v", job.ID, r)
			s.fail(job.ID, fmt.Errorf("internal error: %v", r))
		}
	}()

	select {
	case s.slots <- struct{}{}:
	case <-s.ctx.Done():
		s.jobs.Start(job.ID)
		s.fail(job.ID, fmt.Errorf("download aborted: %w", s.ctx.Err()))
		return
	}
	defer func() { <-s.slots }()

	s.jobs.Start(job.ID)
	s.logger.Printf("Download started: %s", job.ID)

	if err := s.store.EnsureDir(); err != nil {
		s.fail(job.ID, fmt.Errorf("prepare downloads dir: %w", err))
		return
	}

	title, err := s.extractor.Download(s.ctx, job.URL, job.Format, s.store.OutputTemplate(job.ID), func(progress float64) {
		s.jobs.Progress(job.ID, progress)
	})
	if err != nil {
		s.fail(job.ID, err)
		return
	}

	artifact, err := s.store.FindArtifact(job.ID)
	if err != nil {
		s.fail(job.ID, fmt.Errorf("output file not found: %w", err))
		return
	}

	s.jobs.Complete(job.ID, domain.Result{Filename: artifact.Name, Title: title, Size: artifact.Size})
	s.logger.Printf("Download finished: %s -> %s (%d bytes)", job.ID, artifact.Name, artifact.Size)
}

func (s *Service) fail(id string, err error) {
	kind := domain.KindOf(err)
	s.logger.Printf("Download failed: %s: [%s] %v", id, kind, err)
	s.jobs.Fail(id, domain.Failure{Message: err.Error(), Kind: kind})
}
