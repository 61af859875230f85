package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/library/internal/application/book"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	createBookUseCase *appbook.CreateBookUseCase
	getBookUseCase    *appbook.GetBookUseCase
	listBooksUseCase  *appbook.ListBooksUseCase
	updateBookUseCase *appbook.UpdateBookUseCase
	deleteBookUseCase *appbook.DeleteBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	createBookUseCase *appbook.CreateBookUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	listBooksUseCase *appbook.ListBooksUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
) *BookHandler {
	return &BookHandler{
		createBookUseCase: createBookUseCase,
		getBookUseCase:    getBookUseCase,
		listBooksUseCase:  listBooksUseCase,
		updateBookUseCase: updateBookUseCase,
		deleteBookUseCase: deleteBookUseCase,
	}
}

// CreateBook 图书入馆
// @Summary      图书入馆
// @Description  新书入馆建档,ISBN全馆唯一
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误或ISBN已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.createBookUseCase.Execute(c.Request.Context(), appbook.CreateBookRequest{
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		ISBN:        req.ISBN,
		Description: req.Description,
		Copies:      req.Copies,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toBookDTO(result))
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.getBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookDTO(result))
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  分页查询馆藏图书,支持按书名/作者搜索和分类过滤
// @Tags         图书
// @Produce      json
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页条数" default(10)
// @Param        keyword query string false "书名/作者关键字"
// @Param        genre query string false "分类"
// @Success      200 {object} response.Response{data=dto.ListBooksResponse}
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
		Genre:    req.Genre,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.BookResponse, len(result.Items))
	for i, item := range result.Items {
		list[i] = *toBookDTO(item)
	}

	response.Success(c, &dto.ListBooksResponse{
		List:  list,
		Total: result.Total,
		Page:  result.Page,
		Size:  result.Size,
	})
}

// UpdateBook 图书信息维护
// @Summary      图书信息维护
// @Description  修改书目信息或调整馆藏副本数,省略的字段不修改
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "修改内容"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.updateBookUseCase.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		ID:          id,
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Description: req.Description,
		Copies:      req.Copies,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookDTO(result))
}

// DeleteBook 图书下架
// @Summary      图书下架
// @Description  软删除,历史借阅记录保留
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.deleteBookUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// parseIDParam 解析路径中的图书ID
// 解析失败时已写入错误响应,调用方直接return
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "无效的图书ID")
		return 0, false
	}
	return uint(id), true
}

// toBookDTO 应用层DTO → HTTP DTO
func toBookDTO(b *appbook.BookResponse) *dto.BookResponse {
	return &dto.BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Genre:       b.Genre,
		ISBN:        b.ISBN,
		Description: b.Description,
		Copies:      b.Copies,
		Available:   b.Available,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
