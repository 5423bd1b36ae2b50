package api

import (
	"net/url"
	"strconv"
)

// ListOptions carries backend-driven filter and pagination parameters.
// An absent filter key means "no constraint", never "match nothing".
type ListOptions struct {
	Page    int
	PerPage int
	Search  string
	Filters url.Values
}

// encode renders the options as a query string (including the leading "?"),
// or "" when nothing is set.
func (o ListOptions) encode() string {
	q := url.Values{}
	for k, vs := range o.Filters {
		for _, v := range vs {
			if v != "" {
				q.Add(k, v)
			}
		}
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(o.PerPage))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// CacheKey renders the options as a stable cache-key suffix. Lists share
// the resource prefix so one invalidation covers every filter variant.
func (o ListOptions) CacheKey() string {
	return o.encode()
}
