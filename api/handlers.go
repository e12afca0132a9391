package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talentbridge/dashboard-gateway/config"
	apperrors "github.com/talentbridge/dashboard-gateway/internal/errors"
	"github.com/talentbridge/dashboard-gateway/services"
)

// maxRequestBodySize limits request bodies; the listing API is GET-heavy so
// the cap is small.
const maxRequestBodySize = 1 << 20

// API holds dependencies for API handlers, primarily the collection provider.
type API struct {
	provider services.CollectionProvider
}

// NewAPI creates a new API handler structure.
func NewAPI(provider services.CollectionProvider) *API {
	return &API{provider: provider}
}

// SetupRoutes defines all the HTTP routes of the dashboard gateway.
func SetupRoutes(router *gin.Engine, provider services.CollectionProvider, allowedOrigins []string) {
	apiHandler := NewAPI(provider)

	router.Use(CORSMiddleware(allowedOrigins))
	router.Use(RequestSizeLimitMiddleware(maxRequestBodySize))

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Collection listing routes
	collectionRoutes := router.Group("/collections")
	{
		collectionRoutes.GET("/:collectionName/records", apiHandler.ListRecordsHandler) // Search/filter/sort/page a snapshot
		collectionRoutes.POST("/:collectionName/refresh", apiHandler.RefreshHandler)    // Re-fetch from the platform API
	}

	// Enrolled-students aggregate view
	router.GET("/students/enrolled", apiHandler.EnrolledStudentsHandler)
}

// HealthCheckHandler reports service liveness.
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListRecordsHandler serves one processed page of a collection snapshot.
// Query parameters: search, sort_by, order, page, page_size, plus one
// parameter per filterable field (value "all" means no constraint).
func (api *API) ListRecordsHandler(c *gin.Context) {
	collection := c.Param("collectionName")
	settings, err := api.provider.Settings(collection)
	if err != nil {
		SendCollectionNotFoundError(c, collection)
		return
	}

	state := parseQueryState(c, settings)
	result, err := api.provider.List(collection, state)
	if err != nil {
		api.sendListError(c, collection, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RefreshHandler re-fetches a collection from the platform API using the
// caller's bearer token. The empty-data conditions are non-fatal: the
// snapshot is replaced and the response carries a notice instead of an
// error status.
func (api *API) RefreshHandler(c *gin.Context) {
	collection := c.Param("collectionName")
	if _, err := api.provider.Settings(collection); err != nil {
		SendCollectionNotFoundError(c, collection)
		return
	}

	token := BearerToken(c)
	if token == "" {
		SendAuthRequiredError(c)
		return
	}

	count, err := api.provider.Refresh(c.Request.Context(), token, collection)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAuthRequired):
			SendAuthRequiredError(c)
		case errors.Is(err, apperrors.ErrNoData):
			c.JSON(http.StatusOK, gin.H{
				"collection": collection,
				"count":      0,
				"notice":     string(ErrorCodeNoData),
				"message":    err.Error(),
			})
		case errors.Is(err, apperrors.ErrNoUsableRecords):
			c.JSON(http.StatusOK, gin.H{
				"collection": collection,
				"count":      0,
				"notice":     string(ErrorCodeEmptyResult),
				"message":    err.Error(),
			})
		case errors.Is(err, apperrors.ErrUpstreamFailed):
			SendUpstreamError(c, err)
		default:
			SendInternalError(c, "refresh", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"collection": collection, "count": count})
}

// EnrolledStudentsHandler serves the enrolled-students aggregate with the
// same search/sort/page parameters as any listing.
func (api *API) EnrolledStudentsHandler(c *gin.Context) {
	settings, err := api.provider.Settings(config.CollectionStudents)
	if err != nil {
		SendCollectionNotFoundError(c, config.CollectionStudents)
		return
	}

	state := parseQueryState(c, settings)
	result, err := api.provider.EnrolledStudents(state)
	if err != nil {
		api.sendListError(c, config.CollectionStudents, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (api *API) sendListError(c *gin.Context, collection string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrCollectionNotFound):
		SendCollectionNotFoundError(c, collection)
	case errors.Is(err, apperrors.ErrSnapshotMissing):
		SendSnapshotMissingError(c, collection)
	default:
		SendInternalError(c, "listing", err)
	}
}
