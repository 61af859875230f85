package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewBook 测试图书创建
func TestNewBook(t *testing.T) {
	t.Run("正常创建", func(t *testing.T) {
		b, err := NewBook("Go语言实战", "威廉·肯尼迪", GenreScience, "9787115428028", "实战书籍", 5)
		require.NoError(t, err)

		assert.Equal(t, 5, b.Copies)
		assert.True(t, b.Available, "有副本时应该可借")
	})

	t.Run("副本数为0时不可借", func(t *testing.T) {
		b, err := NewBook("已借空的书", "作者", GenreFiction, "9787115428029", "", 0)
		require.NoError(t, err)

		assert.False(t, b.Available, "0副本应该不可借")
	})

	t.Run("非法分类", func(t *testing.T) {
		_, err := NewBook("书", "作者", Genre("COOKBOOK"), "9787115428030", "", 1)
		assert.ErrorIs(t, err, ErrInvalidGenre)
	})

	t.Run("负数副本", func(t *testing.T) {
		_, err := NewBook("书", "作者", GenreHistory, "9787115428031", "", -1)
		assert.ErrorIs(t, err, ErrInvalidCopies)
	})
}

// TestGenreValid 测试分类枚举校验
func TestGenreValid(t *testing.T) {
	valid := []Genre{GenreFiction, GenreNonFiction, GenreScience, GenreHistory, GenreBiography, GenreFantasy}
	for _, g := range valid {
		assert.True(t, g.Valid(), "分类%s应该合法", g)
	}

	assert.False(t, Genre("").Valid())
	assert.False(t, Genre("fiction").Valid(), "枚举值区分大小写")
	assert.False(t, Genre("COOKBOOK").Valid())
}

// TestBookBorrow 测试借出行为
func TestBookBorrow(t *testing.T) {
	newBook := func(copies int) *Book {
		b, err := NewBook("书", "作者", GenreFiction, "9787115428032", "", copies)
		require.NoError(t, err)
		return b
	}

	t.Run("正常借出", func(t *testing.T) {
		b := newBook(5)
		require.NoError(t, b.Borrow(2))

		assert.Equal(t, 3, b.Copies)
		assert.True(t, b.Available)
	})

	t.Run("借空后不可借", func(t *testing.T) {
		b := newBook(2)
		require.NoError(t, b.Borrow(2))

		assert.Equal(t, 0, b.Copies)
		assert.False(t, b.Available, "借空后available应该翻为false")

		// 再借应该失败
		err := b.Borrow(1)
		assert.ErrorIs(t, err, ErrInsufficientCopies)
	})

	t.Run("副本不足", func(t *testing.T) {
		b := newBook(1)
		err := b.Borrow(2)
		assert.ErrorIs(t, err, ErrInsufficientCopies)
		assert.Equal(t, 1, b.Copies, "失败时副本数不应变化")
		assert.True(t, b.Available)
	})

	t.Run("数量必须为正", func(t *testing.T) {
		b := newBook(5)
		assert.ErrorIs(t, b.Borrow(0), ErrInvalidQuantity)
		assert.ErrorIs(t, b.Borrow(-1), ErrInvalidQuantity)
		assert.Equal(t, 5, b.Copies)
	})
}

// TestBookRestock 测试补充馆藏
func TestBookRestock(t *testing.T) {
	b, err := NewBook("书", "作者", GenreFantasy, "9787115428033", "", 0)
	require.NoError(t, err)
	require.False(t, b.Available)

	require.NoError(t, b.Restock(3))
	assert.Equal(t, 3, b.Copies)
	assert.True(t, b.Available, "补充副本后应该恢复可借")

	assert.ErrorIs(t, b.Restock(0), ErrInvalidQuantity)
}

// TestBookSetCopies 测试编目直接设置副本数
func TestBookSetCopies(t *testing.T) {
	b, err := NewBook("书", "作者", GenreBiography, "9787115428034", "", 5)
	require.NoError(t, err)

	require.NoError(t, b.SetCopies(0))
	assert.Equal(t, 0, b.Copies)
	assert.False(t, b.Available, "副本数改成0应该同步不可借")

	require.NoError(t, b.SetCopies(10))
	assert.True(t, b.Available)

	assert.ErrorIs(t, b.SetCopies(-1), ErrInvalidCopies)
	assert.Equal(t, 10, b.Copies, "失败时不应修改副本数")
}

// TestBookUpdateInfo 测试部分更新
func TestBookUpdateInfo(t *testing.T) {
	b, err := NewBook("旧书名", "旧作者", GenreFiction, "9787115428035", "旧简介", 5)
	require.NoError(t, err)

	t.Run("只改书名", func(t *testing.T) {
		require.NoError(t, b.UpdateInfo("新书名", "", "", ""))
		assert.Equal(t, "新书名", b.Title)
		assert.Equal(t, "旧作者", b.Author, "空字段不应被修改")
		assert.Equal(t, GenreFiction, b.Genre)
	})

	t.Run("改分类", func(t *testing.T) {
		require.NoError(t, b.UpdateInfo("", "", GenreHistory, ""))
		assert.Equal(t, GenreHistory, b.Genre)
	})

	t.Run("非法分类被拒绝", func(t *testing.T) {
		err := b.UpdateInfo("", "", Genre("COOKBOOK"), "")
		assert.ErrorIs(t, err, ErrInvalidGenre)
		assert.Equal(t, GenreHistory, b.Genre, "失败时分类不应变化")
	})
}
