package model

// PageSize is the fixed workboard page size
const PageSize = 50

// Page is one slice of the filtered, sorted row set. Total and HasMore are
// computed pre-slice, post-filter.
type Page struct {
	Rows    []DataRow
	Total   int
	HasMore bool

	// Seq identifies the query that produced this page so a superseded
	// in-flight response can be discarded
	Seq uint64
}

// Paginate slices rows to the requested 1-based page. Filtering and sorting
// must already have happened; paginating first would produce wrong totals and
// per-page ordering.
func Paginate(rows []DataRow, page int) Page {
	if page < 1 {
		page = 1
	}

	total := len(rows)
	start := (page - 1) * PageSize
	if start > total {
		start = total
	}
	end := start + PageSize
	if end > total {
		end = total
	}

	return Page{
		Rows:    rows[start:end],
		Total:   total,
		HasMore: page*PageSize < total,
	}
}
