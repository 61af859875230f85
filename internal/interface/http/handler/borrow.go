package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	appborrow "github.com/xiebiao/library/internal/application/borrow"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// BorrowHandler 借阅HTTP处理器
type BorrowHandler struct {
	borrowBookUseCase       *appborrow.BorrowBookUseCase
	summarizeBorrowsUseCase *appborrow.SummarizeBorrowsUseCase
}

// NewBorrowHandler 创建借阅处理器
func NewBorrowHandler(
	borrowBookUseCase *appborrow.BorrowBookUseCase,
	summarizeBorrowsUseCase *appborrow.SummarizeBorrowsUseCase,
) *BorrowHandler {
	return &BorrowHandler{
		borrowBookUseCase:       borrowBookUseCase,
		summarizeBorrowsUseCase: summarizeBorrowsUseCase,
	}
}

// BorrowBook 借书
// @Summary      借书
// @Description  原子借阅:锁定图书行、校验副本、写台账、扣减副本,整体一个事务
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Param        request body dto.BorrowBookRequest true "借阅信息"
// @Success      201 {object} response.Response{data=dto.BorrowBookResponse}
// @Failure      400 {object} response.Response "参数错误或副本不足"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/borrows [post]
func (h *BorrowHandler) BorrowBook(c *gin.Context) {
	var req dto.BorrowBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	dueDate, err := time.Parse(time.RFC3339, req.DueDate)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "无效的应还日期,应为RFC3339格式")
		return
	}

	result, err := h.borrowBookUseCase.Execute(c.Request.Context(), appborrow.BorrowBookRequest{
		BookID:   req.BookID,
		Quantity: req.Quantity,
		DueDate:  dueDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, &dto.BorrowBookResponse{
		ID:        result.ID,
		BookID:    result.BookID,
		Title:     result.Title,
		Quantity:  result.Quantity,
		DueDate:   result.DueDate,
		CreatedAt: result.CreatedAt,
	})
}

// SummarizeBorrows 借阅汇总
// @Summary      借阅汇总
// @Description  按图书统计累计借阅数量,已下架图书的记录不产生条目
// @Tags         借阅
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.BorrowSummaryItem}
// @Router       /api/v1/borrows [get]
func (h *BorrowHandler) SummarizeBorrows(c *gin.Context) {
	result, err := h.summarizeBorrowsUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.BorrowSummaryItem, len(result))
	for i, item := range result {
		items[i] = dto.BorrowSummaryItem{
			Book: dto.BorrowSummaryBook{
				Title: item.Book.Title,
				ISBN:  item.Book.ISBN,
			},
			TotalQuantity: item.TotalQuantity,
		}
	}

	response.Success(c, items)
}
