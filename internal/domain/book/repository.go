package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
// 3. LockByID/UpdateCopies必须在同一事务内配对使用
//    (事务DB通过context传递,见mysql.TxManager)
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByISBN 根据ISBN查找图书
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// Update 更新图书信息(全量保存)
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(软删除)
	Delete(ctx context.Context, id uint) error

	// List 分页查询图书列表
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// LockByID 悲观锁查询图书(用于借阅时锁定库存)
	// 使用SELECT FOR UPDATE锁定行,防止并发借阅超扣
	LockByID(ctx context.Context, id uint) (*Book, error)

	// UpdateCopies 持久化副本数与派生的可借状态
	// 写入实体上已经过recalcAvailable()的Copies/Available,
	// 并以copies >= 0作为兜底守卫(正常路径由行锁保证)
	UpdateCopies(ctx context.Context, book *Book) error
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量(上限100)
	Keyword  string // 搜索关键词(搜索标题、作者)
	Genre    Genre  // 按分类过滤(空表示不过滤)
}
