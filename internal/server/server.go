package server

import (
	"log"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/Tapu45/Wekeyar-dashboard-sub000/internal/config"
	"github.com/Tapu45/Wekeyar-dashboard-sub000/internal/importer"
	"github.com/Tapu45/Wekeyar-dashboard-sub000/internal/store"
)

// Server 导入任务宿主 HTTP 服务
type Server struct {
	router      *gin.Engine
	store       *store.Store
	cfg         *config.AppConfig
	coordinator *importer.Coordinator
	jobs        *JobRegistry
}

// NewServer 创建服务器并初始化 SQLite 存储
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}

	st, err := store.New(filepath.Join(dataDir, "wekeyar.db"))
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	return newServer(cfg, st)
}

// newServer 以现成存储组装服务器，测试从这里进
func newServer(cfg *config.AppConfig, st *store.Store) *Server {
	s := &Server{
		router:      gin.Default(),
		store:       st,
		cfg:         cfg,
		coordinator: importer.NewCoordinator(st, cfg),
		jobs:        NewJobRegistry(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		api.GET("/health", s.Health)
		api.POST("/ingest", s.Ingest)
		api.POST("/ingest/async", s.IngestAsync)
		api.GET("/ingest/jobs/:id", s.JobStatus)
	}
}

// Run 启动服务
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close 释放存储
func (s *Server) Close() error {
	return s.store.Close()
}
