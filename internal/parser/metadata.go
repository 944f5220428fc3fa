package parser

import (
	"regexp"
	"strings"
)

// 表头区扫描范围：前 10 行
const metadataScanRows = 10

var (
	phoneFieldRe = regexp.MustCompile(`Phone\s*:\s*(\d+)`)
	emailFieldRe = regexp.MustCompile(`E-Mail\s*:\s*(\S+)`)

	// 出现这些关键词的首列单元格不可能是门店名称
	notStoreName = []string{"SALES STATEMENT", "PLOT NO", "Phone :"}
	// 地址行特征
	addressMarkers = []string{"PLOT NO", "AT.PLOT", "PIN CODE"}
)

// ExtractStoreInfo 从前 10 行提取门店名称/地址/电话/邮箱
// 任一字段缺失时回退到 defaults（电话/邮箱回退为空），绝不中断导入
func ExtractStoreInfo(rows []RawRow, defaults StoreInfo) StoreInfo {
	info := StoreInfo{}

	limit := len(rows)
	if limit > metadataScanRows {
		limit = metadataScanRows
	}

	for i := 0; i < limit; i++ {
		row := rows[i]
		if len(row.Cells) == 0 {
			continue
		}
		first := strings.TrimSpace(row.Cells[0].Value)

		if info.Name == "" && first != "" && !containsAny(first, notStoreName) {
			info.Name = first
		}
		if info.Address == "" && containsAny(first, addressMarkers) {
			info.Address = first
		}
		if info.Phone == "" && info.Email == "" {
			text := rowText(row)
			if strings.Contains(text, "Phone :") && strings.Contains(text, "E-Mail :") {
				if m := phoneFieldRe.FindStringSubmatch(text); m != nil {
					info.Phone = m[1]
				}
				if m := emailFieldRe.FindStringSubmatch(text); m != nil {
					info.Email = m[1]
				}
			}
		}
	}

	if info.Name == "" {
		info.Name = defaults.Name
	}
	if info.Address == "" {
		info.Address = defaults.Address
	}
	return info
}
