package pipeline

import (
	"sync"
	"time"
)

// JobStatus represents the state of a transcription job.
type JobStatus string

const (
	StatusQueued       JobStatus = "queued"
	StatusRasterizing  JobStatus = "rasterizing"
	StatusTranscribing JobStatus = "transcribing"
	StatusAssembling   JobStatus = "assembling"
	StatusRendering    JobStatus = "rendering"
	StatusCompiling    JobStatus = "compiling"
	StatusCompleted    JobStatus = "completed"
	StatusFailed       JobStatus = "failed"
	StatusPartial      JobStatus = "partial"
)

// Job tracks the state of a single homework transcription.
type Job struct {
	mu sync.Mutex

	ID string `json:"job_id"`

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`
	Title    string    `json:"title"`
	Author   string    `json:"author"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	pdfData []byte
	errors  []string
}

// Progress tracks processing progress.
type Progress struct {
	TotalPages       int      `json:"total_pages"`
	PagesTranscribed int      `json:"pages_transcribed"`
	Problems         int      `json:"problems"`
	Errors           []string `json:"errors"`
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// IncrPagesTranscribed atomically increments the transcribed-page count.
func (j *Job) IncrPagesTranscribed() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.PagesTranscribed++
	j.UpdatedAt = time.Now()
}

// SetTotalPages records the page count discovered at rasterization.
func (j *Job) SetTotalPages(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalPages = n
	j.UpdatedAt = time.Now()
}

// SetProblems records how many problems the assembler recognized.
func (j *Job) SetProblems(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Problems = n
	j.UpdatedAt = time.Now()
}

// SetPDFData sets the raw upload bytes for processing.
func (j *Job) SetPDFData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.pdfData = data
}

// PDFData returns the raw upload bytes.
func (j *Job) PDFData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.pdfData
}

// ReleasePDFData drops the upload bytes once processing no longer needs
// them, so finished jobs don't pin large scans in memory until TTL.
func (j *Job) ReleasePDFData() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.pdfData = nil
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string    `json:"job_id"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`
	Title    string    `json:"title"`
	Progress Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:       j.ID,
		Status:   j.Status,
		Phase:    j.Phase,
		Filename: j.Filename,
		Title:    j.Title,
		Progress: Progress{
			TotalPages:       j.Progress.TotalPages,
			PagesTranscribed: j.Progress.PagesTranscribed,
			Problems:         j.Progress.Problems,
			Errors:           errs,
		},
	}
}
