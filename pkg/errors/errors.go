package errors

import "errors"

// ErrDuplicateKey 唯一约束冲突：记录已存在
// 依赖 gorm 的 TranslateError，由各 repository 在写入时翻译
var ErrDuplicateKey = errors.New("记录已存在")
