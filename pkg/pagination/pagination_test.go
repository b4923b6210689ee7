package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_PageIndexFloor(t *testing.T) {
	for _, raw := range []string{"", "0", "-3", "abc", "1.5"} {
		p := Parse(raw, "", "", "", Users)
		assert.Equal(t, 1, p.PageIndex, "pageNo=%q", raw)
		assert.Equal(t, 0, p.Skip)
	}

	p := Parse("3", "", "", "", Users)
	assert.Equal(t, 3, p.PageIndex)
	assert.Equal(t, 20, p.Skip)
}

func TestParse_PageSizeClamp(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"", 10},      // 缺省
		{"junk", 10},  // 非数字
		{"0", 1},      // 下界
		{"-5", 1},     // 下界
		{"100", 100},  // 上界内
		{"9999", 100}, // 超过上界
		{"25", 25},
	}
	for _, tc := range cases {
		p := Parse("1", tc.raw, "", "", Users)
		assert.Equal(t, tc.want, p.PageSize, "pageLimit=%q", tc.raw)
		assert.Equal(t, tc.want, p.Take)
	}
}

func TestParse_SortFieldAllowList(t *testing.T) {
	p := Parse("1", "", "email", "", Users)
	assert.Equal(t, "email", p.SortBy)

	// 白名单外静默回退默认字段
	for _, raw := range []string{"password", "1;DROP TABLE users", ""} {
		p = Parse("1", "", raw, "", Users)
		assert.Equal(t, "created_at", p.SortBy, "sortBy=%q", raw)
	}

	// camelCase 字段映射为列名
	p = Parse("1", "", "userType", "", Users)
	assert.Equal(t, "user_type", p.SortBy)
}

func TestParse_SortOrder(t *testing.T) {
	assert.Equal(t, "asc", Parse("1", "", "", "asc", Users).SortOrder)
	assert.Equal(t, "asc", Parse("1", "", "", "ASC", Users).SortOrder)
	assert.Equal(t, "asc", Parse("1", "", "", " Asc ", Users).SortOrder)
	for _, raw := range []string{"", "desc", "ascending", "up", "1"} {
		assert.Equal(t, "desc", Parse("1", "", "", raw, Users).SortOrder, "sortOrder=%q", raw)
	}
}

func TestParse_OrderClause(t *testing.T) {
	p := Parse("2", "15", "name", "asc", Users)
	assert.Equal(t, "name asc", p.OrderClause())
	assert.Equal(t, 15, p.Skip)
}

func TestNewEnvelope(t *testing.T) {
	p := Parse("3", "10", "", "", Users)
	env := NewEnvelope([]int{1, 2, 3}, 25, p)

	assert.Equal(t, int64(25), env.Count)
	assert.Equal(t, 3, env.TotalPages)
	assert.False(t, env.HasNext)
	assert.True(t, env.HasPrevious)
}

func TestNewEnvelope_Bounds(t *testing.T) {
	// count=0：没有下一页也没有上一页
	env := NewEnvelope(nil, 0, Parse("1", "10", "", "", Users))
	assert.Equal(t, 0, env.TotalPages)
	assert.False(t, env.HasNext)
	assert.False(t, env.HasPrevious)

	// 恰好整除
	env = NewEnvelope(nil, 20, Parse("1", "10", "", "", Users))
	assert.Equal(t, 2, env.TotalPages)
	assert.True(t, env.HasNext)
	assert.False(t, env.HasPrevious)

	// 余数进位
	env = NewEnvelope(nil, 21, Parse("2", "10", "", "", Users))
	assert.Equal(t, 3, env.TotalPages)
	assert.True(t, env.HasNext)
	assert.True(t, env.HasPrevious)
}

func TestEntityConfigs(t *testing.T) {
	assert.Equal(t, 100, Users.MaxPageSize)
	assert.Equal(t, 50, Admins.MaxPageSize)
	_, ok := Admins.AllowedSortField["phone"]
	assert.False(t, ok)
}
