package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// Response 统一响应结构
// 设计说明：
// 1. Code是业务错误码（非HTTP状态码），方便客户端判断错误类型
// 2. Message是用户友好的提示信息
// 3. Data是业务数据，成功时返回，失败时为null
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应（Code=0表示成功）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功响应（HTTP 201）
// 用于POST创建资源成功的场景（如创建图书、借阅成功）
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应（自动处理AppError）
// 设计说明：
// 业务错误码按区间映射到HTTP状态码，客户端既可以看HTTP状态，
// 也可以看业务码做更细的判断：
// - 404xx → 404 Not Found
// - 400xx/409xx → 400 Bad Request（业务规则失败、参数错误）
// - 其他（5xxxx） → 500 Internal Server Error
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	c.JSON(httpStatus(appErr.Code), Response{
		Code:    appErr.Code,
		Message: appErr.Message,
		Data:    nil,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(httpStatus(code), Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// httpStatus 业务错误码 → HTTP状态码
func httpStatus(code int) int {
	switch {
	case code >= 40400 && code < 40500:
		return http.StatusNotFound
	case code >= 40000 && code < 41000:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// =========================================
// 分页响应结构
// =========================================

// PageData 分页数据封装
type PageData struct {
	List       interface{} `json:"list"`        // 数据列表
	Total      int64       `json:"total"`       // 总记录数
	Page       int         `json:"page"`        // 当前页码
	PageSize   int         `json:"page_size"`   // 每页大小
	TotalPages int         `json:"total_pages"` // 总页数
}

// NewPageData 创建分页数据
func NewPageData(list interface{}, total int64, page, pageSize int) *PageData {
	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}

	return &PageData{
		List:       list,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, list interface{}, total int64, page, pageSize int) {
	Success(c, NewPageData(list, total, page, pageSize))
}
