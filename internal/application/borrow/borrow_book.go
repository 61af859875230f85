package borrow

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/borrow"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
	"github.com/xiebiao/library/pkg/tracing"
)

// tracerName 本包Span的来源标识
const tracerName = "library.borrow"

// EventBorrowCreated 借阅成功事件的路由键
const EventBorrowCreated = "borrow.created"

// TxManager 事务管理接口
// 由mysql.TxManager实现,fn内通过context拿到同一事务
type TxManager interface {
	Transaction(ctx context.Context, fn func(txCtx context.Context) error) error
}

// SummaryCache 借阅汇总缓存接口
// 由redis.SummaryCache实现
type SummaryCache interface {
	GetSummary(ctx context.Context) ([]borrow.BookSummary, bool, error)
	SetSummary(ctx context.Context, rows []borrow.BookSummary) error
	InvalidateSummary(ctx context.Context) error
}

// BorrowCreatedEvent 借阅成功事件
// 发布到MQ,通知进程订阅后做催还提醒等慢操作
type BorrowCreatedEvent struct {
	RecordID  uint      `json:"record_id"`
	BookID    uint      `json:"book_id"`
	Title     string    `json:"title"`
	Quantity  int       `json:"quantity"`
	DueDate   time.Time `json:"due_date"`
	CreatedAt time.Time `json:"created_at"`
}

// BorrowBookUseCase 借书用例
// 这是整个系统最核心的用例,涉及事务处理和并发控制
//
// 核心问题:副本超借
// 场景:某书剩2个副本,10人同时借
// 错误实现:先查副本数,判断够,再扣减
// → 10个请求都通过了判断,最后借出10本(超借8本!)
//
// 正确实现:悲观锁
// 1. SELECT FOR UPDATE 锁定图书行
// 2. 锁内校验可借状态和副本数
// 3. 写入借阅记录
// 4. 扣减副本数(SQL带copies>=?兜底条件)
// 5. COMMIT释放锁
// 任何一步失败整个事务回滚,不会出现"记录已写但副本没扣"的中间态
type BorrowBookUseCase struct {
	bookRepo   book.Repository
	borrowRepo borrow.Repository
	txManager  TxManager
	cache      SummaryCache
	publisher  mq.EventPublisher
}

// NewBorrowBookUseCase 创建借书用例
func NewBorrowBookUseCase(
	bookRepo book.Repository,
	borrowRepo borrow.Repository,
	txManager TxManager,
	cache SummaryCache,
	publisher mq.EventPublisher,
) *BorrowBookUseCase {
	return &BorrowBookUseCase{
		bookRepo:   bookRepo,
		borrowRepo: borrowRepo,
		txManager:  txManager,
		cache:      cache,
		publisher:  publisher,
	}
}

// BorrowBookRequest 借书请求DTO
type BorrowBookRequest struct {
	BookID   uint      // 图书ID
	Quantity int       // 借阅数量
	DueDate  time.Time // 应还日期
}

// BorrowBookResponse 借书响应DTO
type BorrowBookResponse struct {
	ID        uint   `json:"id"`
	BookID    uint   `json:"book_id"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	DueDate   string `json:"due_date"`
	CreatedAt string `json:"created_at"`
}

// Execute 执行借书用例
//
// 业务规则:
// 1. 图书不存在 → ErrBookNotFound
// 2. 不可借或副本不足 → ErrInsufficientCopies
// 3. 借出后copies=0时available同步翻为false
// 4. 事务提交后才做缓存失效和事件发布,均为尽力而为:
//    失败只记日志,不影响已提交的借阅
func (uc *BorrowBookUseCase) Execute(ctx context.Context, req BorrowBookRequest) (*BorrowBookResponse, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "BorrowBook")
	defer span.End()

	start := time.Now()

	var (
		record *borrow.Record
		title  string
	)
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 步骤1:锁定图书行(SELECT ... FOR UPDATE)
		// 其他借阅事务必须等本事务COMMIT/ROLLBACK后才能拿到锁
		b, err := uc.bookRepo.LockByID(txCtx, req.BookID)
		if err != nil {
			return err
		}
		title = b.Title

		// 步骤2:锁内扣减(实体方法校验可借状态和副本数)
		if err := b.Borrow(req.Quantity); err != nil {
			return err
		}

		// 步骤3:写入借阅台账
		rec, err := borrow.NewRecord(req.BookID, req.Quantity, req.DueDate)
		if err != nil {
			return err
		}
		if err := uc.borrowRepo.Create(txCtx, rec); err != nil {
			return err
		}

		// 步骤4:持久化扣减结果(UPDATE带copies>=?兜底)
		if err := uc.bookRepo.UpdateCopies(txCtx, b); err != nil {
			return err
		}

		record = rec
		return nil
	})

	metrics.BorrowDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		metrics.BorrowsRejectedTotal.WithLabelValues(rejectReason(err)).Inc()
		return nil, err
	}

	metrics.BorrowsCreatedTotal.Inc()

	// 事务已提交,以下均为尽力而为
	if err := uc.cache.InvalidateSummary(ctx); err != nil {
		log.Printf("失效借阅汇总缓存失败(TTL兜底): %v", err)
	}

	event := BorrowCreatedEvent{
		RecordID:  record.ID,
		BookID:    record.BookID,
		Title:     title,
		Quantity:  record.Quantity,
		DueDate:   record.DueDate,
		CreatedAt: record.CreatedAt,
	}
	if err := uc.publisher.Publish(ctx, EventBorrowCreated, event); err != nil {
		log.Printf("发布借阅事件失败: %v", err)
	} else {
		metrics.MessagesPublishedTotal.WithLabelValues("library.events", EventBorrowCreated).Inc()
	}

	return &BorrowBookResponse{
		ID:        record.ID,
		BookID:    record.BookID,
		Title:     title,
		Quantity:  record.Quantity,
		DueDate:   record.DueDate.Format("2006-01-02 15:04:05"),
		CreatedAt: record.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// rejectReason 借阅失败原因 → 指标标签
// 只用有限枚举值,不把错误文本放进标签
func rejectReason(err error) string {
	switch {
	case errors.Is(err, book.ErrBookNotFound):
		return "not_found"
	case errors.Is(err, book.ErrInsufficientCopies):
		return "insufficient_copies"
	case errors.Is(err, book.ErrInvalidQuantity),
		errors.Is(err, borrow.ErrInvalidQuantity),
		errors.Is(err, borrow.ErrDueDateNotFuture):
		return "invalid_input"
	default:
		return "persistence"
	}
}
