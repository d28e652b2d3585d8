package notes

import "github.com/dmitrijs2005/recordapi/internal/server/query"

// Filters are the optional inputs of a notes listing.
type Filters struct {
	OwnerID *int64
	Search  *string
}

func (f Filters) Spec() query.Spec {
	var s query.Spec
	if f.OwnerID != nil {
		s = s.Where(OwnerEquals, query.Int(*f.OwnerID))
	}
	if f.Search != nil {
		s = s.Where(TextContains, query.Substring(*f.Search))
	}
	return s
}
