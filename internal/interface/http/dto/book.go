package dto

// CreateBookRequest HTTP图书入馆请求
// validator tag说明:
// - required: 必填字段
// - oneof: 枚举校验(六个预定义分类)
// - min/max: 数值/长度范围校验
type CreateBookRequest struct {
	Title       string `json:"title" binding:"required,max=200" example:"Go语言实战"`
	Author      string `json:"author" binding:"required,max=100" example:"威廉·肯尼迪"`
	Genre       string `json:"genre" binding:"required,oneof=FICTION NON_FICTION SCIENCE HISTORY BIOGRAPHY FANTASY" example:"SCIENCE"`
	ISBN        string `json:"isbn" binding:"required,max=20" example:"9787115428028"`
	Description string `json:"description" binding:"max=5000" example:"一本关于Go语言的实战书籍"`
	Copies      int    `json:"copies" binding:"min=0" example:"5"`
}

// UpdateBookRequest HTTP图书维护请求
// 省略的字段不修改;copies用指针区分"不传"和"传0"
// ISBN入馆后不允许修改,故不在此DTO中
type UpdateBookRequest struct {
	Title       string `json:"title" binding:"omitempty,max=200" example:"Go语言实战(第2版)"`
	Author      string `json:"author" binding:"omitempty,max=100" example:"威廉·肯尼迪"`
	Genre       string `json:"genre" binding:"omitempty,oneof=FICTION NON_FICTION SCIENCE HISTORY BIOGRAPHY FANTASY" example:"SCIENCE"`
	Description string `json:"description" binding:"omitempty,max=5000" example:"更新后的简介"`
	Copies      *int   `json:"copies" binding:"omitempty,min=0" example:"8"`
}

// BookResponse HTTP图书响应
type BookResponse struct {
	ID          uint   `json:"id" example:"1"`
	Title       string `json:"title" example:"Go语言实战"`
	Author      string `json:"author" example:"威廉·肯尼迪"`
	Genre       string `json:"genre" example:"SCIENCE"`
	ISBN        string `json:"isbn" example:"9787115428028"`
	Description string `json:"description,omitempty" example:"一本关于Go语言的实战书籍"`
	Copies      int    `json:"copies" example:"5"`
	Available   bool   `json:"available" example:"true"`
	CreatedAt   string `json:"created_at" example:"2026-01-15 10:30:00"`
	UpdatedAt   string `json:"updated_at" example:"2026-01-15 10:30:00"`
}

// ListBooksRequest HTTP图书列表请求
type ListBooksRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Keyword  string `form:"keyword" binding:"omitempty,max=100" example:"Go"`
	Genre    string `form:"genre" binding:"omitempty,oneof=FICTION NON_FICTION SCIENCE HISTORY BIOGRAPHY FANTASY" example:"SCIENCE"`
}

// ListBooksResponse HTTP图书列表响应
type ListBooksResponse struct {
	List  []BookResponse `json:"list"`
	Total int64          `json:"total" example:"42"`
	Page  int            `json:"page" example:"1"`
	Size  int            `json:"size" example:"20"`
}
