package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/ndemidov/inkwell/internal/models"
	"github.com/ndemidov/inkwell/internal/pagination"
)

// pageMeta renders the pagination block of a listing envelope.
func pageMeta[T any](pg pagination.Page[T]) echo.Map {
	return echo.Map{
		"currentPage":     pg.Number,
		"totalPages":      pagination.TotalPages(pg.TotalCount, pg.Size),
		"totalItems":      pg.TotalCount,
		"itemsPerPage":    pg.Size,
		"hasNextPage":     pg.HasNext,
		"hasPreviousPage": pg.HasPrevious,
	}
}

// postListing builds the response envelope shared by all post listings.
func postListing(data echo.Map, pg pagination.Page[models.Post]) echo.Map {
	if data == nil {
		data = echo.Map{}
	}
	data["posts"] = pg.Items
	return echo.Map{
		"success": true,
		"data":    data,
		"meta":    pageMeta(pg),
	}
}

// formErrors re-renders a submitted form with its field errors. Validation
// failures are a normal response, not a transport error.
func formErrors(c echo.Context, errs map[string]string, values interface{}) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success": false,
		"errors":  errs,
		"values":  values,
	})
}

// parseID reads a numeric path parameter, mapping garbage to a not-found
// rather than a bad-request: /posts/abc/ is an unknown page, not a bad call.
func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, "Page not found")
	}
	return uint(id), nil
}

func postDetailPath(postID uint) string {
	return "/posts/" + strconv.FormatUint(uint64(postID), 10) + "/"
}

func profilePath(username string) string {
	return "/profile/" + username + "/"
}
