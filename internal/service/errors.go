package service

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrAuthorNotFound  = errors.New("author not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrMessageNotFound = errors.New("message not found")
)

// 校验失败时使用的违规代码
const (
	CodeRequired  = "required"
	CodeInvalid   = "invalid"
	CodeDuplicate = "duplicate"
)

// ValidationError 表示输入违反了实体不变量。
// Fields 是 "点分字段路径 -> 违规代码" 的映射，多个字段的失败会聚合在一个错误里。
type ValidationError struct {
	Fields map[string]string
}

// Error 实现 error 接口，按违规字段数量返回单/复数消息。
func (e *ValidationError) Error() string {
	if len(e.Fields) > 1 {
		return "Invalid fields."
	}
	return "Invalid field."
}

// Paths 返回排序后的违规字段路径，便于日志输出稳定。
func (e *ValidationError) Paths() []string {
	paths := make([]string, 0, len(e.Fields))
	for p := range e.Fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// violations 在校验过程中累积字段违规，最后一次性转换为 ValidationError。
type violations map[string]string

func (v violations) add(path, code string) {
	v[path] = code
}

func (v violations) addIndexed(prefix string, index int, field, code string) {
	path := fmt.Sprintf("%s.%d", prefix, index)
	if field != "" {
		path += "." + field
	}
	v[path] = code
}

// err 在存在违规时返回 *ValidationError，否则返回 nil。
func (v violations) err() error {
	if len(v) == 0 {
		return nil
	}
	return &ValidationError{Fields: v}
}
