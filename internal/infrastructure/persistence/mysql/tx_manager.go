package mysql

import (
	"context"

	"gorm.io/gorm"
)

// TxManager 事务管理器
// 设计说明:
// 1. 封装GORM的Transaction方法
// 2. 通过context传递事务DB(避免全局变量)
// 3. fn返回error时自动ROLLBACK,返回nil时自动COMMIT
//    所有退出路径(包括panic)都保证事务被提交或回滚,
//    不会留下悬挂的未提交状态
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
// 使用示例:
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    // 1. 锁定图书行
//	    b, err := bookRepo.LockByID(ctx, bookID)
//	    if err != nil {
//	        return err
//	    }
//	    // 2. 扣减副本并创建借阅记录
//	    ...
//	    return nil // nil则提交,非nil则回滚
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 将事务DB注入到Context中
		// Repository的getDB方法会从context提取事务DB
		txCtx := context.WithValue(ctx, txKey, tx)
		return fn(txCtx)
	})
}

// txKey 事务DB在context中的键
type txKeyType struct{}

var txKey = txKeyType{}

// dbFromContext 从context获取事务DB,没有则返回fallback
// 各Repository共享的事务传递机制
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return fallback
}
