package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 连接池配置
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 注意：AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&BookModel{},
		&BorrowRecordModel{},
	)
}

// BookModel GORM图书模型
// 设计说明:
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/book/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
// 4. available是派生列:值由领域实体重算后写入,数据库不做计算
type BookModel struct {
	ID          uint           `gorm:"primaryKey"`
	Title       string         `gorm:"index:idx_search;size:200;not null;comment:书名"`
	Author      string         `gorm:"index:idx_search;size:100;not null;comment:作者"`
	Genre       string         `gorm:"index;size:20;not null;comment:分类"`
	ISBN        string         `gorm:"uniqueIndex;size:20;not null;comment:ISBN号"`
	Description string         `gorm:"type:text;comment:图书描述"`
	Copies      int            `gorm:"not null;default:0;comment:可借副本数"`
	Available   bool           `gorm:"not null;default:false;comment:是否可借(派生)"`
	CreatedAt   time.Time      `gorm:"index;comment:创建时间"`
	UpdatedAt   time.Time      `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// BorrowRecordModel GORM借阅记录模型
// 设计说明:
// 1. 不可变台账:只插入,不更新不删除
// 2. BookID有普通索引,支撑按图书分组的汇总查询
// 3. 不设外键约束:删除图书不级联(孤儿记录由汇总查询的JOIN过滤)
type BorrowRecordModel struct {
	ID        uint      `gorm:"primaryKey"`
	BookID    uint      `gorm:"index;not null;comment:图书ID"`
	Quantity  int       `gorm:"not null;comment:借阅数量"`
	DueDate   time.Time `gorm:"not null;comment:应还日期"`
	CreatedAt time.Time `gorm:"index;comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BorrowRecordModel) TableName() string {
	return "borrow_records"
}
