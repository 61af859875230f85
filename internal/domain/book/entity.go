package book

import (
	"time"
)

// Genre 图书分类（固定枚举）
// 设计说明：
// 1. 使用string类型存储（可读性好，便于直接在API中透传）
// 2. 枚举值在实体创建/更新时校验，数据库层不做约束
type Genre string

const (
	GenreFiction    Genre = "FICTION"     // 小说
	GenreNonFiction Genre = "NON_FICTION" // 非虚构
	GenreScience    Genre = "SCIENCE"     // 科学
	GenreHistory    Genre = "HISTORY"     // 历史
	GenreBiography  Genre = "BIOGRAPHY"   // 传记
	GenreFantasy    Genre = "FANTASY"     // 奇幻
)

// Valid 校验分类是否为合法枚举值
func (g Genre) Valid() bool {
	switch g {
	case GenreFiction, GenreNonFiction, GenreScience, GenreHistory, GenreBiography, GenreFantasy:
		return true
	}
	return false
}

// Book 图书实体(聚合根)
// 设计说明:
// 1. Book是图书聚合的根实体,包含馆藏的核心属性
// 2. ISBN作为业务唯一标识(数据库层保证唯一性)
// 3. Available是派生字段:Available == (Copies > 0)
//    不变式由recalcAvailable()维护,所有修改Copies的代码路径
//    必须在持久化前调用它(显式调用,不依赖存储层钩子)
type Book struct {
	ID          uint
	Title       string // 书名
	Author      string // 作者
	Genre       Genre  // 分类
	ISBN        string // ISBN号(国际标准书号)
	Description string // 图书描述(可选)
	Copies      int    // 可借副本数
	Available   bool   // 是否可借(派生字段)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBook 创建新图书(工厂方法)
// 业务规则:
// - genre必须是合法枚举值
// - copies不能为负数
// - Available在创建时即按Copies派生
func NewBook(title, author string, genre Genre, isbn, description string, copies int) (*Book, error) {
	if !genre.Valid() {
		return nil, ErrInvalidGenre
	}
	if copies < 0 {
		return nil, ErrInvalidCopies
	}

	now := time.Now()
	b := &Book{
		Title:       title,
		Author:      author,
		Genre:       genre,
		ISBN:        isbn,
		Description: description,
		Copies:      copies,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	b.recalcAvailable()
	return b, nil
}

// recalcAvailable 重算派生字段Available
// 这是维护"available == (copies > 0)"不变式的唯一入口,
// 任何修改Copies的方法都必须在返回前调用它
func (b *Book) recalcAvailable() {
	b.Available = b.Copies > 0
}

// Borrow 借出副本(领域行为)
// 业务规则:
// - quantity必须>0
// - 图书必须可借且剩余副本充足
// 注意:检查与扣减在同一个方法内完成,调用方只需持有行锁
// 保证读-改之间无并发写入即可
func (b *Book) Borrow(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !b.Available || b.Copies < quantity {
		return ErrInsufficientCopies
	}
	b.Copies -= quantity
	b.recalcAvailable()
	b.UpdatedAt = time.Now()
	return nil
}

// Restock 增加副本(用于补充馆藏)
func (b *Book) Restock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	b.Copies += quantity
	b.recalcAvailable()
	b.UpdatedAt = time.Now()
	return nil
}

// SetCopies 直接设置副本数(用于编目更新)
// 业务规则:副本数不能为负数
func (b *Book) SetCopies(copies int) error {
	if copies < 0 {
		return ErrInvalidCopies
	}
	b.Copies = copies
	b.recalcAvailable()
	b.UpdatedAt = time.Now()
	return nil
}

// UpdateInfo 更新图书基本信息
// 空字段表示不修改(部分更新语义)
func (b *Book) UpdateInfo(title, author string, genre Genre, description string) error {
	if genre != "" && !genre.Valid() {
		return ErrInvalidGenre
	}
	if title != "" {
		b.Title = title
	}
	if author != "" {
		b.Author = author
	}
	if genre != "" {
		b.Genre = genre
	}
	if description != "" {
		b.Description = description
	}
	b.UpdatedAt = time.Now()
	return nil
}
