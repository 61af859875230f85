package mysql

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateError 判断是否为MySQL唯一索引冲突错误
// 用于把ISBN唯一索引冲突(错误码1062)转换为业务错误
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 兼容检查:错误信息包含"Duplicate entry"
	return strings.Contains(err.Error(), "Duplicate entry")
}
