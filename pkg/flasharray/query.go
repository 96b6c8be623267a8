package flasharray

import (
	"net/url"
	"strconv"
	"strings"
)

// QueryParams represents the query parameters accepted by collection
// endpoints. A nil QueryParams is valid and means "no parameters".
type QueryParams struct {
	ContinuationToken string
	Filter            string
	IDs               []string
	Names             []string
	Sort              []string
	Limit             int
	Offset            int
	TotalItemCount    bool
	TotalOnly         bool

	// Extra holds endpoint-specific parameters, such as the id/name list
	// parameters populated by ResolveReferences. List values are encoded as a
	// single comma-separated value.
	Extra url.Values
}

// NewQueryParams creates an empty QueryParams.
func NewQueryParams() *QueryParams {
	return &QueryParams{}
}

// Clone returns a deep copy. A nil receiver yields a fresh empty value, so
// callers can clone-then-modify without nil checks.
func (p *QueryParams) Clone() *QueryParams {
	if p == nil {
		return NewQueryParams()
	}

	clone := *p
	clone.IDs = append([]string(nil), p.IDs...)
	clone.Names = append([]string(nil), p.Names...)
	clone.Sort = append([]string(nil), p.Sort...)

	if p.Extra != nil {
		clone.Extra = make(url.Values, len(p.Extra))
		for key, values := range p.Extra {
			clone.Extra[key] = append([]string(nil), values...)
		}
	}

	return &clone
}

// WithContinuationToken sets the continuation token.
func (p *QueryParams) WithContinuationToken(token string) *QueryParams {
	p.ContinuationToken = token

	return p
}

// WithFilter sets the filter expression.
func (p *QueryParams) WithFilter(filter string) *QueryParams {
	p.Filter = filter

	return p
}

// WithIDs sets the ids parameter.
func (p *QueryParams) WithIDs(ids ...string) *QueryParams {
	p.IDs = ids

	return p
}

// WithNames sets the names parameter.
func (p *QueryParams) WithNames(names ...string) *QueryParams {
	p.Names = names

	return p
}

// WithSort sets the sort keys.
func (p *QueryParams) WithSort(sort ...string) *QueryParams {
	p.Sort = sort

	return p
}

// WithLimit sets the page size.
func (p *QueryParams) WithLimit(limit int) *QueryParams {
	p.Limit = limit

	return p
}

// WithOffset sets the item offset.
func (p *QueryParams) WithOffset(offset int) *QueryParams {
	p.Offset = offset

	return p
}

// WithTotalItemCount requests the total item count in the response.
func (p *QueryParams) WithTotalItemCount(enabled bool) *QueryParams {
	p.TotalItemCount = enabled

	return p
}

// WithTotalOnly requests only the aggregate total row.
func (p *QueryParams) WithTotalOnly(enabled bool) *QueryParams {
	p.TotalOnly = enabled

	return p
}

// With sets an endpoint-specific parameter. List values are joined with
// commas when encoded.
func (p *QueryParams) With(key string, values ...string) *QueryParams {
	if p.Extra == nil {
		p.Extra = url.Values{}
	}

	p.Extra[key] = values

	return p
}

// has reports whether the given parameter name is populated, either as one of
// the well-known fields or in Extra.
func (p *QueryParams) has(key string) bool {
	switch key {
	case "ids":
		return len(p.IDs) > 0
	case "names":
		return len(p.Names) > 0
	}

	_, ok := p.Extra[key]

	return ok
}

// unset removes the given parameter name.
func (p *QueryParams) unset(key string) {
	switch key {
	case "ids":
		p.IDs = nil
	case "names":
		p.Names = nil
	}

	delete(p.Extra, key)
}

// set assigns a list value to the given parameter name.
func (p *QueryParams) set(key string, values []string) {
	switch key {
	case "ids":
		p.IDs = values
	case "names":
		p.Names = values
	default:
		p.With(key, values...)
	}
}

// ToValues converts the parameters to url.Values for the transport layer.
func (p *QueryParams) ToValues() url.Values {
	values := url.Values{}

	if p == nil {
		return values
	}

	if p.ContinuationToken != "" {
		values.Set("continuation_token", p.ContinuationToken)
	}

	if p.Filter != "" {
		values.Set("filter", p.Filter)
	}

	if len(p.IDs) > 0 {
		values.Set("ids", strings.Join(p.IDs, ","))
	}

	if len(p.Names) > 0 {
		values.Set("names", strings.Join(p.Names, ","))
	}

	if len(p.Sort) > 0 {
		values.Set("sort", strings.Join(p.Sort, ","))
	}

	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}

	if p.Offset > 0 {
		values.Set("offset", strconv.Itoa(p.Offset))
	}

	if p.TotalItemCount {
		values.Set("total_item_count", "true")
	}

	if p.TotalOnly {
		values.Set("total_only", "true")
	}

	for key, vals := range p.Extra {
		values.Set(key, strings.Join(vals, ","))
	}

	return values
}
