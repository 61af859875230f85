package borrow

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 借阅领域错误定义
var (
	// ErrInvalidQuantity 借阅数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "借阅数量必须大于0")

	// ErrDueDateNotFuture 应还日期必须在未来
	ErrDueDateNotFuture = apperrors.New(apperrors.ErrCodeInvalidParams, "应还日期必须晚于当前时间")

	// ErrRecordNotFound 借阅记录不存在
	ErrRecordNotFound = apperrors.New(apperrors.ErrCodeBorrowNotFound, "借阅记录不存在")
)
