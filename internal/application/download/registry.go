package download

import (
	"sync"
	"time"

	"github.com/google/uuid"

	domain "ytdlapi/internal/domain/download"
)

type jobRegistry struct {
	mu   sync.RWMutex
	jobs map[string]*domain.Job
	now  func() time.Time
}

func newJobRegistry() *jobRegistry {
	return &jobRegistry{jobs: make(map[string]*domain.Job), now: time.Now}
}

// Create inserts a pending job under a fresh id.
func (j *jobRegistry) Create(url, format string) domain.Job {
	j.mu.Lock()
	defer j.mu.Unlock()

	id := uuid.NewString()
	for {
		if _, taken := j.jobs[id]; !taken {
			break
		}
		id = uuid.NewString()
	}

	job := &domain.Job{
		ID:        id,
		Status:    domain.StatusPending,
		URL:       url,
		Format:    format,
		CreatedAt: j.now(),
	}
	j.jobs[id] = job
	return job.Clone()
}

func (j *jobRegistry) Get(id string) (domain.Job, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	job, ok := j.jobs[id]
	if !ok {
		return domain.Job{}, false
	}
	return job.Clone(), true
}

func (j *jobRegistry) Count() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.jobs)
}

func (j *jobRegistry) Start(id string) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	job, ok := j.jobs[id]
	if !ok || job.Status != domain.StatusPending {
		return false
	}
	job.Status = domain.StatusDownloading
	job.Progress = 0
	return true
}

// Progress records the latest reported value. Regressions are kept as
// reported; only the 0..100 range is enforced.
func (j *jobRegistry) Progress(id string, value float64) bool {
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	job, ok := j.jobs[id]
	if !ok || job.Status != domain.StatusDownloading {
		return false
	}
	job.Progress = value
	return true
}

func (j *jobRegistry) Complete(id string, result domain.Result) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	job, ok := j.jobs[id]
	if !ok || job.Status != domain.StatusDownloading {
		return false
	}
	job.Status = domain.StatusCompleted
	job.Progress = 100
	job.Result = &result
	job.Error = nil
	return true
}

func (j *jobRegistry) Fail(id string, failure domain.Failure) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	job, ok := j.jobs[id]
	if !ok || job.Status != domain.StatusDownloading {
		return false
	}
	job.Status = domain.StatusError
	job.Error = &failure
	job.Result = nil
	return true
}
