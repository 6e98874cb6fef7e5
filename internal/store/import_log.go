package store

import "fmt"

// CreateImportLog 创建上传日志，返回 import_log_id
func (s *Store) CreateImportLog(filename string, fileSize int64) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO import_logs (filename, file_size, status)
		VALUES (?, ?, 'processing')
	`, filename, fileSize)
	if err != nil {
		return 0, fmt.Errorf("failed to create import log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get import log id: %w", err)
	}
	return id, nil
}

// UpdateImportLog 完成上传日志更新（status: done/rejected/error）
func (s *Store) UpdateImportLog(id int64, sheetName, status, analysisID, errorMessage string) error {
	_, err := s.db.Exec(`
		UPDATE import_logs SET
			sheet_name = ?,
			status = ?,
			analysis_id = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, sheetName, status, analysisID, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to update import log: %w", err)
	}
	return nil
}

// ImportLog 上传日志
type ImportLog struct {
	ID           int64  `json:"id"`
	Filename     string `json:"filename"`
	SheetName    string `json:"sheetName"`
	Status       string `json:"status"`
	AnalysisID   string `json:"analysisId"`
	ErrorMessage string `json:"errorMessage"`
}

// GetImportLog 读取上传日志
func (s *Store) GetImportLog(id int64) (*ImportLog, error) {
	var l ImportLog
	err := s.db.QueryRow(`
		SELECT id, filename, sheet_name, status, analysis_id, error_message
		FROM import_logs WHERE id = ?
	`, id).Scan(&l.ID, &l.Filename, &l.SheetName, &l.Status, &l.AnalysisID, &l.ErrorMessage)
	if err != nil {
		return nil, fmt.Errorf("failed to query import log: %w", err)
	}
	return &l, nil
}
