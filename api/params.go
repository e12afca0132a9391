package api

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/talentbridge/dashboard-gateway/config"
	"github.com/talentbridge/dashboard-gateway/services"
)

// Listing query parameters.
const (
	queryParamPage     = "page"
	queryParamPageSize = "page_size"
	queryParamLimit    = "limit" // accepted alias for page_size
	queryParamSearch   = "search"
	queryParamSortBy   = "sort_by"
	queryParamOrder    = "order"
)

// parseQueryState builds the listing query state from request query
// parameters. Unset values fall back to the collection defaults; any
// parameter named after a filterable field becomes a categorical filter.
func parseQueryState(c *gin.Context, settings *config.CollectionSettings) services.QueryState {
	state := services.NewQueryState(settings)

	state.Search = strings.TrimSpace(c.Query(queryParamSearch))

	if page, err := strconv.Atoi(c.Query(queryParamPage)); err == nil && page >= 1 {
		state.Page = page
	}

	sizeRaw := c.Query(queryParamPageSize)
	if sizeRaw == "" {
		sizeRaw = c.Query(queryParamLimit)
	}
	if size, err := strconv.Atoi(sizeRaw); err == nil && size >= 1 {
		if size > settings.MaxPageSize {
			size = settings.MaxPageSize
		}
		state.PageSize = size
	}

	if sortBy := strings.TrimSpace(c.Query(queryParamSortBy)); sortBy != "" {
		state.Sort.Field = sortBy
	}
	order := strings.ToLower(strings.TrimSpace(c.Query(queryParamOrder)))
	if order == config.OrderAsc || order == config.OrderDesc {
		state.Sort.Order = order
	}

	for _, field := range settings.FilterableFields {
		if value := c.Query(field); value != "" && value != services.FilterAll {
			state.Filters[field] = value
		}
	}

	return state
}
