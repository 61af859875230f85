package borrow

import (
	"time"
)

// Record 借阅记录实体
// 设计说明:
// 1. 借阅记录是不可变的台账条目:创建后没有更新/删除操作
// 2. 只保存BookID,不直接引用Book对象(避免跨聚合引用)
// 3. 一本图书可以对应多条借阅记录,Book上不存反向引用
type Record struct {
	ID        uint
	BookID    uint      // 所借图书ID(创建时图书必须存在)
	Quantity  int       // 借阅数量(>=1)
	DueDate   time.Time // 应还日期(必须严格晚于创建时间)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRecord 创建借阅记录(工厂方法)
// 业务规则:
// - quantity >= 1
// - dueDate必须严格晚于当前时间
func NewRecord(bookID uint, quantity int, dueDate time.Time) (*Record, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	now := time.Now()
	if !dueDate.After(now) {
		return nil, ErrDueDateNotFuture
	}

	return &Record{
		BookID:    bookID,
		Quantity:  quantity,
		DueDate:   dueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
