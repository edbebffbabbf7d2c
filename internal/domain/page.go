package domain

// PageRequest is a 0-based page index plus a size. Sorting is fixed per query.
type PageRequest struct {
	Page int
	Size int
}

func (p PageRequest) Offset() int { return p.Page * p.Size }

type Page[T any] struct {
	Content          []T   `json:"content"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	Number           int   `json:"number"`
	Size             int   `json:"size"`
	NumberOfElements int   `json:"numberOfElements"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
}

func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Content:          content,
		TotalElements:    total,
		TotalPages:       pages,
		Number:           req.Page,
		Size:             req.Size,
		NumberOfElements: len(content),
		First:            req.Page == 0,
		Last:             req.Page+1 >= pages,
	}
}

// MapPage converts the content while keeping the paging metadata.
func MapPage[T, U any](p Page[T], f func(T) U) Page[U] {
	out := make([]U, 0, len(p.Content))
	for _, v := range p.Content {
		out = append(out, f(v))
	}
	return Page[U]{
		Content:          out,
		TotalElements:    p.TotalElements,
		TotalPages:       p.TotalPages,
		Number:           p.Number,
		Size:             p.Size,
		NumberOfElements: len(out),
		First:            p.First,
		Last:             p.Last,
	}
}
