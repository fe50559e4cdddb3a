package download

import "time"

// Status describes where a job is in its lifecycle.
type Status string

const (
	StatusPending     Status = "pending"
	StatusDownloading Status = "downloading"
	StatusCompleted   Status = "completed"
	StatusError       Status = "error"
)

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// Result is the outcome of a completed job.
type Result struct {
	Filename string `json:"filename"`
	Title    string `json:"title"`
	Size     int64  `json:"filesize"`
}

// Failure is the outcome of a failed job.
type Failure struct {
	Message string    `json:"message"`
	Kind    ErrorKind `json:"kind"`
}

// Job is one tracked download request.
type Job struct {
	ID        string    `json:"id"`
	Status    Status    `json:"status"`
	URL       string    `json:"url"`
	Format    string    `json:"format"`
	Progress  float64   `json:"progress"`
	CreatedAt time.Time `json:"created_at"`
	Result    *Result   `json:"result,omitempty"`
	Error     *Failure  `json:"error,omitempty"`
}

// Clone returns a copy that shares no pointers with j.
func (j Job) Clone() Job {
	out := j
	if j.Result != nil {
		r := *j.Result
		out.Result = &r
	}
	if j.Error != nil {
		f := *j.Error
		out.Error = &f
	}
	return out
}
