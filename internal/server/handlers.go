package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Tapu45/Wekeyar-dashboard-sub000/internal/importer"
)

// Health 健康检查
// GET /api/health
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ingest 上传对账单并以 SSE 流式返回导入进度
// POST /api/ingest
func (s *Server) Ingest(c *gin.Context) {
	tempPath, filename, ok := s.saveUpload(c)
	if !ok {
		return
	}
	defer os.Remove(tempPath)

	// SSE 响应头
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok2 := c.Writer.(http.Flusher)
	if !ok2 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	events := s.coordinator.Ingest(importer.IngestOptions{
		FilePath: tempPath,
		Filename: filename,
	})

	for ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			continue
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", data)
		flusher.Flush()
	}
}

// asyncRequest 远端对账单的任务描述
type asyncRequest struct {
	URL string `json:"url" binding:"required"`
}

// IngestAsync 启动后台导入任务，立即返回任务号
// POST /api/ingest/async
// 请求体二选一：multipart 文件上传，或 JSON {"url": "..."}
func (s *Server) IngestAsync(c *gin.Context) {
	var opts importer.IngestOptions

	if _, err := c.FormFile("file"); err == nil {
		tempPath, filename, ok := s.saveUpload(c)
		if !ok {
			return
		}
		opts = importer.IngestOptions{FilePath: tempPath, Filename: filename}
	} else {
		var req asyncRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file or url required"})
			return
		}
		opts = importer.IngestOptions{SourceURL: req.URL}
	}

	job := s.jobs.Create()

	go func() {
		// 上传落盘的临时文件在任务结束后清理
		if opts.FilePath != "" {
			defer os.Remove(opts.FilePath)
		}
		for ev := range s.coordinator.Ingest(opts) {
			s.jobs.Apply(job.ID, ev)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"jobId": job.ID})
}

// JobStatus 查询后台任务状态
// GET /api/ingest/jobs/:id
func (s *Server) JobStatus(c *gin.Context) {
	job, ok := s.jobs.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	c.JSON(http.StatusOK, job)
}

// saveUpload 把 multipart 上传落到临时路径
func (s *Server) saveUpload(c *gin.Context) (tempPath, filename string, ok bool) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "upload file missing"})
		return "", "", false
	}

	tempPath = filepath.Join(os.TempDir(),
		fmt.Sprintf("wekeyar_upload_%d_%s", time.Now().UnixNano(), filepath.Base(file.Filename)))
	if err := c.SaveUploadedFile(file, tempPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save upload"})
		return "", "", false
	}
	return tempPath, file.Filename, true
}
