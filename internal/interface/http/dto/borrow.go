package dto

// BorrowBookRequest HTTP借书请求
// due_date用RFC3339格式,gin的time.Time绑定默认按该格式解析
type BorrowBookRequest struct {
	BookID   uint   `json:"book_id" binding:"required" example:"1"`
	Quantity int    `json:"quantity" binding:"required,min=1,max=999" example:"2"`
	DueDate  string `json:"due_date" binding:"required" example:"2026-09-15T00:00:00Z"`
}

// BorrowBookResponse HTTP借书响应
type BorrowBookResponse struct {
	ID        uint   `json:"id" example:"1"`
	BookID    uint   `json:"book_id" example:"1"`
	Title     string `json:"title" example:"Go语言实战"`
	Quantity  int    `json:"quantity" example:"2"`
	DueDate   string `json:"due_date" example:"2026-09-15 00:00:00"`
	CreatedAt string `json:"created_at" example:"2026-08-20 10:30:00"`
}

// BorrowSummaryItem HTTP借阅汇总条目
type BorrowSummaryItem struct {
	Book          BorrowSummaryBook `json:"book"`
	TotalQuantity int64             `json:"total_quantity" example:"7"`
}

// BorrowSummaryBook 汇总条目中的图书信息
type BorrowSummaryBook struct {
	Title string `json:"title" example:"Go语言实战"`
	ISBN  string `json:"isbn" example:"9787115428028"`
}
