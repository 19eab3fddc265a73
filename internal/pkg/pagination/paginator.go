package pagination

import (
	"errors"
	"strconv"
	"strings"
)

// Page 分页结果，越界页码被夹到最近的合法页
type Page struct {
	Number   int
	NumPages int
	Count    int64
	PerPage  int
}

// Paginate 根据总数、每页大小和原始页码参数计算页面
// 非整数或缺省页码视为第一页，过大的整数（含溢出）为最后一页；空列表也有一个空的第一页
func Paginate(count int64, perPage int, rawPage string) Page {
	if perPage < 1 {
		perPage = 1
	}

	numPages := int((count + int64(perPage) - 1) / int64(perPage))
	if numPages < 1 {
		numPages = 1
	}

	// 溢出的整数 Atoi 返回截断后的极值，按整数继续夹取
	number, err := strconv.Atoi(strings.TrimSpace(rawPage))
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		number = 1
	}
	if number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}

	return Page{
		Number:   number,
		NumPages: numPages,
		Count:    count,
		PerPage:  perPage,
	}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

func (p Page) Limit() int {
	return p.PerPage
}

func (p Page) HasNext() bool {
	return p.Number < p.NumPages
}

func (p Page) HasPrevious() bool {
	return p.Number > 1
}

func (p Page) HasOtherPages() bool {
	return p.NumPages > 1
}

func (p Page) NextPageNumber() int {
	return p.Number + 1
}

func (p Page) PreviousPageNumber() int {
	return p.Number - 1
}

// PageRange 模板中渲染页码列表
func (p Page) PageRange() []int {
	pages := make([]int, p.NumPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}
