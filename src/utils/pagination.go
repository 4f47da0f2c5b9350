package utils

import (
	"fluxtrail/src/types"
)

// PageOptionsFallback fills the omitted fields of a pagination query, first
// from the supplied defaults and finally from ORDER_DESC/1/10, and derives
// Skip. It does not reject a bad Order value; callers check that themselves.
func PageOptionsFallback(opts types.PageOptions, defaults *types.PageOptions) types.PageOptions {
	out := opts
	if out.Order == "" && defaults != nil {
		out.Order = defaults.Order
	}
	if out.Order == "" {
		out.Order = types.ORDER_DESC
	}
	if out.Page == 0 && defaults != nil {
		out.Page = defaults.Page
	}
	if out.Page == 0 {
		out.Page = 1
	}
	if out.NumOfItemsPerPage == 0 && defaults != nil {
		out.NumOfItemsPerPage = defaults.NumOfItemsPerPage
	}
	if out.NumOfItemsPerPage == 0 {
		out.NumOfItemsPerPage = 10
	}
	if out.SearchTerm == "" && defaults != nil {
		out.SearchTerm = defaults.SearchTerm
	}
	out.Skip = (out.Page - 1) * out.NumOfItemsPerPage
	return out
}

func NewPageMeta(opts types.PageOptions, itemCount int64) types.PageMeta {
	pageCount := itemCount / int64(opts.NumOfItemsPerPage)
	if itemCount%int64(opts.NumOfItemsPerPage) != 0 {
		pageCount++
	}
	return types.PageMeta{
		Page:              opts.Page,
		NumOfItemsPerPage: opts.NumOfItemsPerPage,
		ItemCount:         itemCount,
		PageCount:         pageCount,
		HasPreviousPage:   opts.Page > 1,
		HasNextPage:       int64(opts.Page) < pageCount,
	}
}
