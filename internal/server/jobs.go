package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Tapu45/Wekeyar-dashboard-sub000/internal/importer"
)

// Job 异步导入任务快照
// Status 直接沿用事件状态：progress / completed / error
type Job struct {
	ID        string                `json:"id"`
	Status    string                `json:"status"`
	Progress  float64               `json:"progress"`
	Stats     *importer.IngestStats `json:"stats,omitempty"`
	Error     string                `json:"error,omitempty"`
	CreatedAt time.Time             `json:"createdAt"`
}

// JobRegistry 进程内任务表
// 任务一旦启动就跑到终态，注册表只做状态镜像，不提供取消
type JobRegistry struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewJobRegistry 创建任务表
func NewJobRegistry() *JobRegistry {
	return &JobRegistry{jobs: make(map[string]*Job)}
}

// Create 登记新任务，返回任务号
func (r *JobRegistry) Create() *Job {
	job := &Job{
		ID:        uuid.NewString(),
		Status:    importer.StatusProgress,
		CreatedAt: time.Now(),
	}
	r.mu.Lock()
	r.jobs[job.ID] = job
	r.mu.Unlock()
	return job
}

// Apply 把一条进度事件落到任务快照上
func (r *JobRegistry) Apply(id string, ev importer.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return
	}
	job.Status = ev.Status
	switch ev.Status {
	case importer.StatusProgress:
		job.Progress = ev.Progress
	case importer.StatusCompleted:
		job.Progress = 100
		job.Stats = ev.Stats
	case importer.StatusError:
		job.Error = ev.Error
	}
}

// Get 取任务快照副本
func (r *JobRegistry) Get(id string) (Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}
