package book

import (
	"context"
	"errors"
	"regexp"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装编目(catalog)的业务规则校验
// 2. 不依赖具体的Repository实现(依赖倒置)
// 3. 副本扣减不在这里:借阅路径的扣减由借阅事务协调器
//    (application/borrow)在事务内完成
type Service interface {
	// CreateBook 编目新图书
	// 业务规则:
	// - ISBN格式必须合法(10位或13位数字)
	// - 分类必须是合法枚举值
	// - 副本数必须>=0
	// - ISBN不能重复
	CreateBook(ctx context.Context, title, author string, genre Genre, isbn, description string, copies int) (*Book, error)

	// GetBookByID 根据ID获取图书详情
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// UpdateBook 更新图书信息
	// copies为nil表示不修改副本数;非nil时直接设置(并重算可借状态)
	UpdateBook(ctx context.Context, id uint, title, author string, genre Genre, description string, copies *int) (*Book, error)

	// DeleteBook 删除图书
	// 注意:不检查是否存在引用该图书的借阅记录(见汇总查询的防御性JOIN)
	DeleteBook(ctx context.Context, id uint) error

	// ListBooks 分页查询图书列表
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateBook 编目新图书
func (s *service) CreateBook(ctx context.Context, title, author string, genre Genre, isbn, description string, copies int) (*Book, error) {
	// 1. ISBN格式校验
	if !isValidISBN(isbn) {
		return nil, ErrInvalidISBN
	}

	// 2. 检查ISBN是否已存在(数据库唯一索引兜底)
	existing, err := s.repo.FindByISBN(ctx, isbn)
	if err == nil && existing != nil {
		return nil, ErrISBNDuplicate
	}
	if err != nil && !errors.Is(err, ErrBookNotFound) {
		return nil, err
	}

	// 3. 创建实体(分类、副本数校验在工厂方法内)
	b, err := NewBook(title, author, genre, isbn, description, copies)
	if err != nil {
		return nil, err
	}

	// 4. 持久化
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateBook 更新图书信息
func (s *service) UpdateBook(ctx context.Context, id uint, title, author string, genre Genre, description string, copies *int) (*Book, error) {
	// 1. 查询图书
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 更新基本信息
	if err := b.UpdateInfo(title, author, genre, description); err != nil {
		return nil, err
	}

	// 3. 副本数变更:SetCopies内部会重算Available,
	//    保证派生字段在持久化前已经一致
	if copies != nil {
		if err := b.SetCopies(*copies); err != nil {
			return nil, err
		}
	}

	// 4. 持久化
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// ListBooks 分页查询图书列表
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	return s.repo.List(ctx, params)
}

// isValidISBN 校验ISBN格式
// 支持:
// - ISBN-10: 10位数字
// - ISBN-13: 13位数字
// 简化实现:去除分隔符后只检查位数(生产环境应校验校验位)
func isValidISBN(isbn string) bool {
	re := regexp.MustCompile(`[^0-9Xx]`)
	clean := re.ReplaceAllString(isbn, "")

	length := len(clean)
	return length == 10 || length == 13
}
