package pagination

import (
	"math"
	"strconv"
	"strings"
)

// Config 每个实体的分页约束：默认/最大页大小、可排序字段白名单（JSON 字段名 → 数据库列名）
type Config struct {
	DefaultPageSize  int
	MaxPageSize      int
	AllowedSortField map[string]string
	DefaultSortField string
}

// Params 校验后的分页参数，可直接用于 Offset/Limit/Order
type Params struct {
	Skip      int
	Take      int
	SortBy    string // 数据库列名
	SortOrder string // "asc" / "desc"
	PageIndex int
	PageSize  int
}

// OrderClause 拼接 GORM Order 子句（列名来自白名单，无注入风险）
func (p Params) OrderClause() string { return p.SortBy + " " + p.SortOrder }

// Parse 将未经信任的 query 参数规范化：
//   - 页码下限 1，非数字按 1
//   - 页大小收敛到 [1, MaxPageSize]，缺省用 DefaultPageSize
//   - 排序字段不在白名单内时静默回退默认字段
//   - 只有 "asc"（忽略大小写）才升序，其余一律降序
func Parse(pageNo, pageLimit, sortBy, sortOrder string, cfg Config) Params {
	pageIndex := 1
	if n, err := strconv.Atoi(strings.TrimSpace(pageNo)); err == nil && n > 1 {
		pageIndex = n
	}

	pageSize := cfg.DefaultPageSize
	if n, err := strconv.Atoi(strings.TrimSpace(pageLimit)); err == nil {
		pageSize = n
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > cfg.MaxPageSize {
		pageSize = cfg.MaxPageSize
	}

	column, ok := cfg.AllowedSortField[sortBy]
	if !ok {
		column = cfg.AllowedSortField[cfg.DefaultSortField]
	}

	order := "desc"
	if strings.EqualFold(strings.TrimSpace(sortOrder), "asc") {
		order = "asc"
	}

	return Params{
		Skip:      (pageIndex - 1) * pageSize,
		Take:      pageSize,
		SortBy:    column,
		SortOrder: order,
		PageIndex: pageIndex,
		PageSize:  pageSize,
	}
}

// Envelope 列表响应的分页元数据，字段平铺进最终 JSON
type Envelope struct {
	Data        any   `json:"data"`
	Count       int64 `json:"count"`
	PageIndex   int   `json:"pageIndex"`
	PageSize    int   `json:"pageSize"`
	TotalPages  int   `json:"totalPages"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

func NewEnvelope(data any, count int64, p Params) Envelope {
	totalPages := int(math.Ceil(float64(count) / float64(p.PageSize)))
	return Envelope{
		Data:        data,
		Count:       count,
		PageIndex:   p.PageIndex,
		PageSize:    p.PageSize,
		TotalPages:  totalPages,
		HasNext:     p.PageIndex < totalPages,
		HasPrevious: p.PageIndex > 1,
	}
}

// 各实体的分页配置
var (
	Users = Config{
		DefaultPageSize: 10,
		MaxPageSize:     100,
		AllowedSortField: map[string]string{
			"id":        "id",
			"name":      "name",
			"email":     "email",
			"phone":     "phone",
			"userType":  "user_type",
			"isActive":  "is_active",
			"createdAt": "created_at",
			"updatedAt": "updated_at",
		},
		DefaultSortField: "createdAt",
	}

	Admins = Config{
		DefaultPageSize: 10,
		MaxPageSize:     50,
		AllowedSortField: map[string]string{
			"id":        "id",
			"email":     "email",
			"createdAt": "created_at",
			"updatedAt": "updated_at",
		},
		DefaultSortField: "createdAt",
	}

	Audits = Config{
		DefaultPageSize: 20,
		MaxPageSize:     200,
		AllowedSortField: map[string]string{
			"id":             "id",
			"method":         "method",
			"path":           "path",
			"responseStatus": "response_status",
			"duration":       "duration",
			"createdAt":      "created_at",
		},
		DefaultSortField: "createdAt",
	}
)
