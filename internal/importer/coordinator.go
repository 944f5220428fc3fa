package importer

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/Tapu45/Wekeyar-dashboard-sub000/internal/config"
	"github.com/Tapu45/Wekeyar-dashboard-sub000/internal/parser"
	"github.com/Tapu45/Wekeyar-dashboard-sub000/internal/reader"
	"github.com/Tapu45/Wekeyar-dashboard-sub000/internal/store"
	"github.com/Tapu45/Wekeyar-dashboard-sub000/internal/util"
)

// 事件状态
const (
	StatusProgress  = "progress"
	StatusCompleted = "completed"
	StatusError     = "error"
)

// IngestStats 导入完成统计
type IngestStats struct {
	TotalProcessed int `json:"totalProcessed"` // 已处理行数
	BillsExtracted int `json:"billsExtracted"` // 重建出的账单数
	BillsCreated   int `json:"billsCreated"`   // 新入库账单数
	ItemsCreated   int `json:"itemsCreated"`   // 新入库明细数
}

// ProgressEvent 导入过程中推给调用方的消息
// progress 零到多条且单调不减；completed / error 互斥、恰好一条收尾
type ProgressEvent struct {
	Status   string       `json:"status"`
	Progress float64      `json:"progress,omitempty"`
	Stats    *IngestStats `json:"stats,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// IngestOptions 一次导入的任务描述
// SourceURL 与 FilePath 二选一：远端地址先下载到临时文件，读完即删
type IngestOptions struct {
	SourceURL string
	FilePath  string
	Filename  string
}

// Coordinator 导入协调器：取件 → 读表 → 提取门店 → 重建账单 → 付款回填 → 落盘
// 单次导入内严格单线程，行序即状态机推进顺序
type Coordinator struct {
	store        *store.Store
	defaults     parser.StoreInfo
	fetchTimeout time.Duration
}

// NewCoordinator 创建导入协调器
func NewCoordinator(st *store.Store, cfg *config.AppConfig) *Coordinator {
	return &Coordinator{
		store: st,
		defaults: parser.StoreInfo{
			Name:    cfg.Ingest.DefaultStoreName,
			Address: cfg.Ingest.DefaultStoreAddress,
		},
		fetchTimeout: time.Duration(cfg.Ingest.FetchTimeoutSeconds) * time.Second,
	}
}

// Ingest 启动一次导入，返回进度通道
// 任务一旦启动就跑到终态，没有取消语义；调用方读完通道即结束
func (c *Coordinator) Ingest(opts IngestOptions) <-chan ProgressEvent {
	ch := make(chan ProgressEvent, 100)

	go func() {
		defer close(ch)
		c.doIngest(opts, ch)
	}()

	return ch
}

// doIngest 执行导入
func (c *Coordinator) doIngest(opts IngestOptions, ch chan ProgressEvent) {
	filePath := opts.FilePath

	// 远端任务先落临时文件，读完即删
	if opts.SourceURL != "" {
		tmp, err := FetchToTemp(opts.SourceURL, c.fetchTimeout)
		if err != nil {
			c.sendTerminal(ch, ProgressEvent{Status: StatusError, Error: err.Error()})
			return
		}
		defer os.Remove(tmp)
		filePath = tmp
	}

	logID := c.createLog(opts, filePath)

	rows, err := reader.ReadFile(filePath)
	if err != nil {
		c.finishLog(logID, IngestStats{}, "error", err.Error())
		c.sendTerminal(ch, ProgressEvent{Status: StatusError, Error: err.Error()})
		return
	}

	info := parser.ExtractStoreInfo(rows, c.defaults)

	tracker := NewTracker(len(rows), func(pct float64) {
		c.sendProgress(ch, ProgressEvent{Status: StatusProgress, Progress: pct})
	})

	bills := parser.Build(rows, tracker.Advance)
	parser.Reconcile(rows, bills)

	res := NewLoader(c.store).Load(bills, info)

	stats := IngestStats{
		TotalProcessed: len(rows),
		BillsExtracted: len(bills),
		BillsCreated:   res.BillsCreated,
		ItemsCreated:   res.ItemsCreated,
	}

	c.finishLog(logID, stats, "completed", "")
	c.sendTerminal(ch, ProgressEvent{Status: StatusCompleted, Stats: &stats})
}

// createLog 写导入日志，失败不影响导入本身
func (c *Coordinator) createLog(opts IngestOptions, filePath string) int64 {
	filename := opts.Filename
	if filename == "" {
		filename = filepath.Base(filePath)
	}

	var size int64
	if fi, err := os.Stat(filePath); err == nil {
		size = fi.Size()
	}
	hash, err := util.FileSHA256(filePath)
	if err != nil {
		hash = ""
	}

	id, err := c.store.CreateIngestLog(filename, filePath, size, hash)
	if err != nil {
		log.Printf("写导入日志失败: %v", err)
		return 0
	}
	return id
}

// finishLog 写导入日志终态
func (c *Coordinator) finishLog(id int64, stats IngestStats, status, errMsg string) {
	if id == 0 {
		return
	}
	err := c.store.FinishIngestLog(id, stats.TotalProcessed, stats.BillsExtracted,
		stats.BillsCreated, stats.ItemsCreated, status, errMsg)
	if err != nil {
		log.Printf("更新导入日志失败: %v", err)
	}
}

// sendProgress 发送进度事件，通道满时丢弃
func (c *Coordinator) sendProgress(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
	}
}

// sendTerminal 发送终态事件，必须送达恰好一条，阻塞等待
func (c *Coordinator) sendTerminal(ch chan ProgressEvent, event ProgressEvent) {
	ch <- event
}
