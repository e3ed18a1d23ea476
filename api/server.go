package api

import (
	"context"
	"log"
	"net/http"
	"sort"
	"sync"

	"econoshorts/config"
	"econoshorts/pipeline"
	"econoshorts/video"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newJobID() string { return uuid.NewString()[:8] }

// Server exposes the render pipeline over HTTP. Jobs run asynchronously;
// job state lives in memory for the life of the process.
type Server struct {
	cfg    *config.Config
	runner *pipeline.Runner

	mu   sync.RWMutex
	jobs map[string]*pipeline.JobResult
}

func NewServer(cfg *config.Config, runner *pipeline.Runner) *Server {
	return &Server{cfg: cfg, runner: runner, jobs: make(map[string]*pipeline.JobResult)}
}

// Router builds the gin engine. Minimal middleware: recovery only.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/health", s.handleHealth)
	r.POST("/api/jobs", s.handleCreateJob)
	r.GET("/api/jobs", s.handleListJobs)
	r.GET("/api/jobs/:id", s.handleGetJob)
	return r
}

// CreateJobRequest triggers a render. An empty script requests a full
// autopilot run (collect news, generate script).
type CreateJobRequest struct {
	Topic          string  `json:"topic"`
	Script         string  `json:"script"`
	TargetDuration float64 `json:"target_duration"`
}

type CreateJobResponse struct {
	JobID   string `json:"job_id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) handleCreateJob(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload: " + err.Error()})
		return
	}
	target := req.TargetDuration
	if target == 0 {
		target = s.cfg.Scheduler.TargetDuration
	}
	if err := video.ValidateTargetDuration(target); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Script == "" && req.Topic == "" {
		// fine: a fully automatic run picks its own topic
		log.Println("[api] 📥 autopilot job requested")
	}

	placeholder := &pipeline.JobResult{Topic: req.Topic}
	jobID := s.track(placeholder)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), config.JobWallTimeout)
		defer cancel()

		var res *pipeline.JobResult
		if req.Script != "" {
			res = s.runner.RunManual(ctx, pipeline.ManualJob{
				Topic:          req.Topic,
				ScriptText:     req.Script,
				TargetDuration: target,
			})
		} else {
			res = s.runner.RunAuto(ctx, target)
		}
		s.update(jobID, res)
	}()

	c.JSON(http.StatusAccepted, CreateJobResponse{
		JobID:   jobID,
		Status:  "running",
		Message: "job started",
	})
}

func (s *Server) handleGetJob(c *gin.Context) {
	s.mu.RLock()
	job, ok := s.jobs[c.Param("id")]
	s.mu.RUnlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	c.JSON(http.StatusOK, job)
}

func (s *Server) handleListJobs(c *gin.Context) {
	s.mu.RLock()
	list := make([]*pipeline.JobResult, 0, len(s.jobs))
	for _, j := range s.jobs {
		list = append(list, j)
	}
	s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		return list[i].StartedAt.After(list[j].StartedAt)
	})
	if len(list) > 50 {
		list = list[:50]
	}
	c.JSON(http.StatusOK, gin.H{"jobs": list})
}

// track stores a placeholder under a stable ID before the goroutine starts,
// so a client can poll immediately.
func (s *Server) track(placeholder *pipeline.JobResult) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := newJobID()
	placeholder.ID = id
	s.jobs[id] = placeholder
	return id
}

func (s *Server) update(jobID string, res *pipeline.JobResult) {
	res.ID = jobID
	s.mu.Lock()
	s.jobs[jobID] = res
	s.mu.Unlock()
}
