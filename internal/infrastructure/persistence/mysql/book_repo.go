package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如ISBN重复),转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	model.ID = 0 // 由数据库生成

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	// 回填自增ID与时间戳
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// FindByISBN 根据ISBN查找图书
func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).Where("isbn = ?", isbn).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// Update 更新图书信息(全量保存)
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "更新图书失败")
	}

	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除图书(软删除)
// 注意:不检查借阅记录引用,孤儿记录由汇总查询的JOIN过滤
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&BookModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// List 分页查询图书列表
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	query := r.db.WithContext(ctx).Model(&BookModel{})

	// 关键词搜索(搜索标题、作者)
	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("title LIKE ? OR author LIKE ?", keyword, keyword)
	}

	// 分类过滤
	if params.Genre != "" {
		query = query.Where("genre = ?", string(params.Genre))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	offset := (params.Page - 1) * params.PageSize
	err := query.Order("created_at DESC").
		Limit(params.PageSize).
		Offset(offset).
		Find(&models).Error

	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}

	return books, total, nil
}

// LockByID 悲观锁查询图书(用于借阅事务)
// SELECT * FROM books WHERE id = ? FOR UPDATE
// 必须在TxManager.Transaction内调用,否则锁立即释放失去意义
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	db := dbFromContext(ctx, r.db)
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "锁定图书失败")
	}

	return toBookEntity(&model), nil
}

// UpdateCopies 持久化副本数与派生的可借状态
// 实体上的Copies/Available已经过recalcAvailable(),这里原样写入,
// 并带copies >= 0守卫作为兜底(正常路径由FOR UPDATE行锁保证不会触发)
func (r *bookRepository) UpdateCopies(ctx context.Context, b *book.Book) error {
	if b.Copies < 0 {
		return book.ErrInvalidCopies
	}

	db := dbFromContext(ctx, r.db)
	result := db.Model(&BookModel{}).
		Where("id = ?", b.ID).
		Updates(map[string]interface{}{
			"copies":     b.Copies,
			"available":  b.Available,
			"updated_at": b.UpdatedAt,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新副本数失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookModel 领域实体 → GORM模型
func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Genre:       string(b.Genre),
		ISBN:        b.ISBN,
		Description: b.Description,
		Copies:      b.Copies,
		Available:   b.Available,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:          model.ID,
		Title:       model.Title,
		Author:      model.Author,
		Genre:       book.Genre(model.Genre),
		ISBN:        model.ISBN,
		Description: model.Description,
		Copies:      model.Copies,
		Available:   model.Available,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
