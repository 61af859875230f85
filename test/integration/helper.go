package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 黑盒测试:直接向运行中的服务发HTTP请求,覆盖完整链路
// (路由 → 参数绑定 → 用例 → MySQL/Redis)
//
// 前置条件:服务已在localhost:8080启动(依赖MySQL/Redis)
// 服务不可达时自动跳过,不阻塞纯单元测试流水线

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// BookData 图书响应数据
type BookData struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre"`
	ISBN        string `json:"isbn"`
	Description string `json:"description"`
	Copies      int    `json:"copies"`
	Available   bool   `json:"available"`
}

// BorrowData 借阅响应数据
type BorrowData struct {
	ID       uint   `json:"id"`
	BookID   uint   `json:"book_id"`
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
	DueDate  string `json:"due_date"`
}

// SummaryItem 借阅汇总条目
type SummaryItem struct {
	Book struct {
		Title string `json:"title"`
		ISBN  string `json:"isbn"`
	} `json:"book"`
	TotalQuantity int64 `json:"total_quantity"`
}

// RequireServer 检查服务是否可达,不可达时跳过测试
func RequireServer(t *testing.T) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://localhost:8080/ping")
	if err != nil {
		t.Skipf("服务不可达,跳过集成测试: %v", err)
	}
	resp.Body.Close()
}

// GenerateTestISBN 生成随机13位测试ISBN(978前缀)
func GenerateTestISBN() string {
	return fmt.Sprintf("978%010d", rand.Int63n(10000000000))
}

// DoJSON 发送带JSON体的请求并解析统一响应
// 返回HTTP状态码和响应体,便于同时断言两层语义
func DoJSON(t *testing.T, method, url string, data interface{}) (int, *Response) {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(raw, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(raw))

	return resp.StatusCode, &result
}

// PostJSON 发送POST请求
func PostJSON(t *testing.T, url string, data interface{}) (int, *Response) {
	return DoJSON(t, "POST", url, data)
}

// GetJSON 发送GET请求
func GetJSON(t *testing.T, url string) (int, *Response) {
	return DoJSON(t, "GET", url, nil)
}

// CreateTestBook 创建一本测试图书,返回解析后的数据
func CreateTestBook(t *testing.T, title string, copies int) *BookData {
	t.Helper()

	status, resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
		"title":  title,
		"author": "测试作者",
		"genre":  "SCIENCE",
		"isbn":   GenerateTestISBN(),
		"copies": copies,
	})
	require.Equal(t, http.StatusCreated, status, "创建测试图书失败: %s", resp.Message)

	var data BookData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return &data
}

// FutureDueDate 返回两周后的RFC3339应还日期
func FutureDueDate() string {
	return time.Now().Add(14 * 24 * time.Hour).UTC().Format(time.RFC3339)
}
