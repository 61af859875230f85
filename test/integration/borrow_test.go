package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 借阅模块集成测试
//
// 场景覆盖:
// 1. 正常借阅(201、副本扣减、台账写入)
// 2. 图书不存在(404)、副本不足(400)、参数非法(400)
// 3. 并发借阅防超借(真实MySQL行锁验证)
// 4. 借阅汇总(分组求和、下架图书排除)

// borrowReq 构造借书请求体
func borrowReq(bookID uint, quantity int) map[string]interface{} {
	return map[string]interface{}{
		"book_id":  bookID,
		"quantity": quantity,
		"due_date": FutureDueDate(),
	}
}

// TestBorrowBook 测试借书
func TestBorrowBook(t *testing.T) {
	RequireServer(t)

	t.Run("正常借阅", func(t *testing.T) {
		created := CreateTestBook(t, "借阅测试图书", 5)

		status, resp := PostJSON(t, BaseURL+"/borrows", borrowReq(created.ID, 2))
		require.Equal(t, http.StatusCreated, status, "借阅成功应返回201: %s", resp.Message)

		var data BorrowData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.NotZero(t, data.ID)
		assert.Equal(t, created.ID, data.BookID)
		assert.Equal(t, 2, data.Quantity)

		// 副本已扣减
		status, resp = GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, created.ID))
		require.Equal(t, http.StatusOK, status)

		var book BookData
		require.NoError(t, json.Unmarshal(resp.Data, &book))
		assert.Equal(t, 3, book.Copies)
		assert.True(t, book.Available)
	})

	t.Run("借空后可借状态翻转", func(t *testing.T) {
		created := CreateTestBook(t, "借空测试图书", 2)

		status, _ := PostJSON(t, BaseURL+"/borrows", borrowReq(created.ID, 2))
		require.Equal(t, http.StatusCreated, status)

		status, resp := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, created.ID))
		require.Equal(t, http.StatusOK, status)

		var book BookData
		require.NoError(t, json.Unmarshal(resp.Data, &book))
		assert.Equal(t, 0, book.Copies)
		assert.False(t, book.Available, "借空后应不可借")

		// 再借被拒绝
		status, _ = PostJSON(t, BaseURL+"/borrows", borrowReq(created.ID, 1))
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("图书不存在返回404", func(t *testing.T) {
		status, resp := PostJSON(t, BaseURL+"/borrows", borrowReq(99999999, 1))
		assert.Equal(t, http.StatusNotFound, status)
		assert.NotEqual(t, 0, resp.Code)
	})

	t.Run("副本不足返回400", func(t *testing.T) {
		created := CreateTestBook(t, "副本不足测试图书", 1)

		status, _ := PostJSON(t, BaseURL+"/borrows", borrowReq(created.ID, 5))
		assert.Equal(t, http.StatusBadRequest, status)

		// 失败不应扣副本
		status, resp := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, created.ID))
		require.Equal(t, http.StatusOK, status)

		var book BookData
		require.NoError(t, json.Unmarshal(resp.Data, &book))
		assert.Equal(t, 1, book.Copies, "失败的借阅不应扣减副本")
	})

	t.Run("数量非法返回400", func(t *testing.T) {
		created := CreateTestBook(t, "数量校验测试图书", 5)

		status, _ := PostJSON(t, BaseURL+"/borrows", borrowReq(created.ID, 0))
		assert.Equal(t, http.StatusBadRequest, status)

		status, _ = PostJSON(t, BaseURL+"/borrows", borrowReq(created.ID, -1))
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("应还日期格式非法返回400", func(t *testing.T) {
		created := CreateTestBook(t, "日期校验测试图书", 5)

		status, _ := PostJSON(t, BaseURL+"/borrows", map[string]interface{}{
			"book_id":  created.ID,
			"quantity": 1,
			"due_date": "2026/09/15",
		})
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

// TestBorrowBook_Concurrent 并发借阅防超借(真实行锁验证)
// 5个副本,30个并发请求,最终恰好5次成功
func TestBorrowBook_Concurrent(t *testing.T) {
	RequireServer(t)

	const (
		copies      = 5
		concurrency = 30
	)
	created := CreateTestBook(t, "并发借阅测试图书", copies)

	var wg sync.WaitGroup
	var successes int32
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, _ := PostJSON(t, BaseURL+"/borrows", borrowReq(created.ID, 1))
			if status == http.StatusCreated {
				atomic.AddInt32(&successes, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(copies), successes, "成功次数应恰好等于副本数")

	status, resp := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, created.ID))
	require.Equal(t, http.StatusOK, status)

	var book BookData
	require.NoError(t, json.Unmarshal(resp.Data, &book))
	assert.Equal(t, 0, book.Copies, "副本应恰好借空,不能为负")
	assert.False(t, book.Available)
}

// TestBorrowSummary 测试借阅汇总
func TestBorrowSummary(t *testing.T) {
	RequireServer(t)

	bookA := CreateTestBook(t, "汇总测试图书A", 10)
	bookB := CreateTestBook(t, "汇总测试图书B", 10)

	// A借两次(3+2=5),B借一次(4)
	for _, q := range []int{3, 2} {
		status, _ := PostJSON(t, BaseURL+"/borrows", borrowReq(bookA.ID, q))
		require.Equal(t, http.StatusCreated, status)
	}
	status, _ := PostJSON(t, BaseURL+"/borrows", borrowReq(bookB.ID, 4))
	require.Equal(t, http.StatusCreated, status)

	findByISBN := func(items []SummaryItem, isbn string) *SummaryItem {
		for i := range items {
			if items[i].Book.ISBN == isbn {
				return &items[i]
			}
		}
		return nil
	}

	fetchSummary := func() []SummaryItem {
		status, resp := GetJSON(t, BaseURL+"/borrows")
		require.Equal(t, http.StatusOK, status)
		var items []SummaryItem
		require.NoError(t, json.Unmarshal(resp.Data, &items))
		return items
	}

	t.Run("按图书分组求和", func(t *testing.T) {
		items := fetchSummary()

		itemA := findByISBN(items, bookA.ISBN)
		require.NotNil(t, itemA, "图书A应出现在汇总中")
		assert.Equal(t, int64(5), itemA.TotalQuantity, "多次借阅应累加")
		assert.Equal(t, "汇总测试图书A", itemA.Book.Title)

		itemB := findByISBN(items, bookB.ISBN)
		require.NotNil(t, itemB)
		assert.Equal(t, int64(4), itemB.TotalQuantity)
	})

	t.Run("重复查询结果一致", func(t *testing.T) {
		first := fetchSummary()
		second := fetchSummary()
		assert.ElementsMatch(t, first, second, "台账未变时汇总应稳定")
	})

	t.Run("下架图书的记录不产生条目", func(t *testing.T) {
		bookC := CreateTestBook(t, "汇总下架测试图书C", 5)
		status, _ := PostJSON(t, BaseURL+"/borrows", borrowReq(bookC.ID, 2))
		require.Equal(t, http.StatusCreated, status)

		// 借完后下架
		status, _ = DoJSON(t, "DELETE", fmt.Sprintf("%s/books/%d", BaseURL, bookC.ID), nil)
		require.Equal(t, http.StatusOK, status)

		items := fetchSummary()
		assert.Nil(t, findByISBN(items, bookC.ISBN), "已下架图书不应出现在汇总中")
		// 其他图书的条目不受影响
		assert.NotNil(t, findByISBN(items, bookA.ISBN))
	})
}
