package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "ISBN号已存在")

	// ErrInvalidISBN ISBN格式不正确
	ErrInvalidISBN = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN格式不正确")

	// ErrInvalidGenre 分类不在枚举范围内
	ErrInvalidGenre = apperrors.New(apperrors.ErrCodeInvalidParams, "图书分类不合法")

	// ErrInvalidCopies 无效的副本数
	ErrInvalidCopies = apperrors.New(apperrors.ErrCodeInvalidParams, "副本数不能为负数")

	// ErrInvalidQuantity 无效的数量
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")

	// ErrInsufficientCopies 可借副本不足
	ErrInsufficientCopies = apperrors.New(apperrors.ErrCodeInsufficientCopies, "可借副本不足")
)
