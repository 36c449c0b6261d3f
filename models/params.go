package models

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	MaxPage      = 1_000_000
	DefaultSort  = "created_at"
)

var (
	MusicSortFields  = []string{"title", "artist", "album", "year", "created_at"}
	ReviewSortFields = []string{"rating", "created_at", "updated_at", "title"}
	UserSortFields   = []string{"username", "email", "role", "created_at", "last_login_at"}
)

// ListParams is the shared paging, sorting and search window of list endpoints.
// Malformed values fall back to defaults; they are never rejected.
type ListParams struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	Search    string
}

func NewListParams(page, limit, sortBy, sortOrder, search string, sortable []string) ListParams {
	p := ListParams{
		Page:      DefaultPage,
		Limit:     DefaultLimit,
		SortBy:    DefaultSort,
		SortOrder: "desc",
		Search:    strings.TrimSpace(search),
	}
	if n, err := strconv.Atoi(strings.TrimSpace(page)); err == nil && n >= 1 {
		p.Page = min(n, MaxPage)
	}
	if n, err := strconv.Atoi(strings.TrimSpace(limit)); err == nil {
		switch {
		case n < 1:
			p.Limit = 1
		case n > MaxLimit:
			p.Limit = MaxLimit
		default:
			p.Limit = n
		}
	}
	for _, field := range sortable {
		if sortBy == field {
			p.SortBy = field
			break
		}
	}
	if strings.EqualFold(sortOrder, "asc") {
		p.SortOrder = "asc"
	}
	return p
}

func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

func (p ListParams) Desc() bool {
	return p.SortOrder != "asc"
}

// TotalPages is ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

type MusicListParams struct {
	ListParams
	Genre string
	Year  *int
}

type ReviewListParams struct {
	ListParams
	MusicID   string
	UserID    string
	MinRating *int
	MaxRating *int
}

type UserListParams struct {
	ListParams
	Role     string
	IsActive *bool
}

// ParseOptionalInt returns nil for blank or non-numeric input.
func ParseOptionalInt(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

func ParseOptionalBool(s string) *bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &b
}
