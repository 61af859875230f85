package borrow

import (
	"context"
)

// BookSummary 单本图书的借阅汇总(只读投影)
// 只投影书名和ISBN,不携带完整Book实体
type BookSummary struct {
	BookID        uint   // 图书ID(分组键)
	Title         string // 书名
	ISBN          string // ISBN号
	TotalQuantity int64  // 累计借出数量(SUM(quantity))
}

// Repository 借阅记录仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. Create支持事务操作(事务DB通过context传递)
// 3. 借阅记录不可变,没有Update/Delete
type Repository interface {
	// Create 创建借阅记录
	// 必须与图书副本扣减在同一事务中调用
	Create(ctx context.Context, record *Record) error

	// ListByBookID 查询某本图书的借阅记录(台账审计用)
	ListByBookID(ctx context.Context, bookID uint, page, pageSize int) ([]*Record, int64, error)

	// SummarizeByBook 按图书分组汇总借阅数量
	// 实现要求:
	// 1. 对所有借阅记录按book_id分组,对quantity求和
	// 2. JOIN图书表投影title/isbn
	// 3. 引用的图书已不存在(被删除)的分组直接丢弃,不报错
	// 4. 返回顺序由实现决定,调用方不得依赖
	SummarizeByBook(ctx context.Context) ([]BookSummary, error)
}
