package store

import "fmt"

// CreateIngestLog 创建导入日志，返回 ingest_log_id
func (s *Store) CreateIngestLog(filename, filePath string, fileSize int64, fileHash string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO ingest_logs (filename, file_path, file_size, file_hash, status)
		VALUES (?, ?, ?, ?, 'processing')
	`, filename, filePath, fileSize, fileHash)
	if err != nil {
		return 0, fmt.Errorf("failed to create ingest log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get ingest log id: %w", err)
	}
	return id, nil
}

// FinishIngestLog 写入终态与统计
func (s *Store) FinishIngestLog(id int64, totalRows, billsExtracted, billsCreated, itemsCreated int, status, errorMessage string) error {
	_, err := s.db.Exec(`
		UPDATE ingest_logs SET
			total_rows = ?,
			bills_extracted = ?,
			bills_created = ?,
			items_created = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, totalRows, billsExtracted, billsCreated, itemsCreated, status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to update ingest log: %w", err)
	}
	return nil
}
