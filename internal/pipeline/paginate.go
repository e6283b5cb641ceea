package pipeline

// DefaultPageSize is the fixed group count per page for every request kind.
const DefaultPageSize = 9

// Pagination reports where a page sits inside the full group list.
type Pagination struct {
	CurrentPage   int `json:"currentPage"`
	TotalPages    int `json:"totalPages"`
	TotalGroups   int `json:"totalGroups"`
	GroupsPerPage int `json:"groupsPerPage"`
}

// Paginate slices groups into the requested page. The page number is clamped
// into [1, totalPages]; totalPages is at least 1 even for an empty list, and
// the returned slice never exceeds pageSize.
func Paginate(groups []GroupResult, page, pageSize int) ([]GroupResult, Pagination) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total := len(groups)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	items := groups[start:end]
	if len(items) > pageSize {
		// Unreachable given the bounds above, but the page-size cap is a hard
		// invariant of the response contract.
		items = items[:pageSize]
	}

	return items, Pagination{
		CurrentPage:   page,
		TotalPages:    totalPages,
		TotalGroups:   total,
		GroupsPerPage: pageSize,
	}
}
