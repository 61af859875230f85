package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/borrow"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// borrowRepository 借阅记录仓储实现(MySQL)
// 设计说明:
// 1. 借阅记录是不可变台账,只有Create和只读查询
// 2. Create通过context参与借阅事务
// 3. SummarizeByBook用JOIN+GROUP BY一次完成分组、求和、投影
type borrowRepository struct {
	db *gorm.DB
}

// NewBorrowRepository 创建借阅记录仓储
func NewBorrowRepository(db *gorm.DB) borrow.Repository {
	return &borrowRepository{db: db}
}

// Create 创建借阅记录
// 必须与图书副本扣减在同一事务中调用(通过TxManager)
func (r *borrowRepository) Create(ctx context.Context, rec *borrow.Record) error {
	model := &BorrowRecordModel{
		BookID:    rec.BookID,
		Quantity:  rec.Quantity,
		DueDate:   rec.DueDate,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}

	db := dbFromContext(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建借阅记录失败")
	}

	// 回填自增ID
	rec.ID = model.ID
	return nil
}

// ListByBookID 查询某本图书的借阅记录
func (r *borrowRepository) ListByBookID(ctx context.Context, bookID uint, page, pageSize int) ([]*borrow.Record, int64, error) {
	var models []BorrowRecordModel
	var total int64

	query := r.db.WithContext(ctx).Model(&BorrowRecordModel{}).Where("book_id = ?", bookID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询借阅记录总数失败")
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&models).Error

	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询借阅记录失败")
	}

	records := make([]*borrow.Record, len(models))
	for i := range models {
		records[i] = toBorrowEntity(&models[i])
	}

	return records, total, nil
}

// SummarizeByBook 按图书分组汇总借阅数量
// SQL逻辑:
//
//	SELECT br.book_id, b.title, b.isbn, SUM(br.quantity) AS total_quantity
//	FROM borrow_records br
//	JOIN books b ON b.id = br.book_id AND b.deleted_at IS NULL
//	GROUP BY br.book_id, b.title, b.isbn
//
// 要点:
// 1. INNER JOIN天然丢弃图书已被删除的分组(防御性要求:不报错不崩溃)
// 2. books有软删除,JOIN条件必须显式排除deleted_at非空的行
// 3. 不加ORDER BY:顺序由存储引擎决定,调用方按集合语义消费
func (r *borrowRepository) SummarizeByBook(ctx context.Context) ([]borrow.BookSummary, error) {
	var rows []borrow.BookSummary

	err := r.db.WithContext(ctx).
		Table("borrow_records AS br").
		Select("br.book_id AS book_id, b.title AS title, b.isbn AS isbn, SUM(br.quantity) AS total_quantity").
		Joins("JOIN books b ON b.id = br.book_id AND b.deleted_at IS NULL").
		Group("br.book_id, b.title, b.isbn").
		Scan(&rows).Error

	if err != nil {
		return nil, apperrors.Wrap(err, "汇总借阅记录失败")
	}

	return rows, nil
}

// toBorrowEntity GORM模型 → 领域实体
func toBorrowEntity(model *BorrowRecordModel) *borrow.Record {
	return &borrow.Record{
		ID:        model.ID,
		BookID:    model.BookID,
		Quantity:  model.Quantity,
		DueDate:   model.DueDate,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
