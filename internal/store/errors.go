package store

import "errors"

var (
	// ErrNotFound 表示没有任何可操作的简历文档（正常流程下不会出现，
	// 读路径会自动播种，这里仅作兜底）。
	ErrNotFound = errors.New("resume document not found")

	// ErrParse 表示导入载荷不是合法 JSON。
	ErrParse = errors.New("invalid json payload")
)
