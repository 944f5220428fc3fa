package importer

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"time"
)

// FetchToTemp 把远端对账单下载到临时文件，返回落盘路径
// 扩展名沿用 URL 路径里的后缀（决定 xlsx/xls 读取方式），调用方负责删除
func FetchToTemp(rawURL string, timeout time.Duration) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid statement url: %w", err)
	}
	ext := path.Ext(parsed.Path)
	if ext == "" {
		ext = ".xlsx"
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch statement: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch statement: status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "wekeyar_statement_*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to save statement: %w", err)
	}

	return tmp.Name(), nil
}
