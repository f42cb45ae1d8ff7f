package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"pathlab/services/booking"
	ai "pathlab/services/intelligence"
	"pathlab/services/lab"
	"pathlab/utils"
)

// CatalogHandler serves the test catalog and scheduling reference data.
type CatalogHandler struct {
	Store    *lab.Store
	Location *time.Location
	Now      func() time.Time
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(store *lab.Store, loc *time.Location) *CatalogHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &CatalogHandler{Store: store, Location: loc, Now: time.Now}
}

// ListTestsHandler filters the catalog by ?q= and ?category=. A comma
// separated ?recommended= list is moved to the front.
func (h *CatalogHandler) ListTestsHandler(c *gin.Context) {
	tests := h.Store.FilterTests(c.Query("q"), c.Query("category"))
	if rec := c.Query("recommended"); rec != "" {
		tests = ai.RankTests(tests, strings.Split(rec, ","))
	}
	c.JSON(http.StatusOK, gin.H{
		"tests":     tests,
		"count":     len(tests),
		"isLoading": h.Store.IsLoading(),
	})
}

// CategoriesHandler returns the category filter options, "All" first.
func (h *CatalogHandler) CategoriesHandler(c *gin.Context) {
	options := []string{"All"}
	for _, cat := range h.Store.Categories() {
		options = append(options, string(cat))
	}
	c.JSON(http.StatusOK, gin.H{"categories": options})
}

// GetTestHandler returns a single catalog entry.
func (h *CatalogHandler) GetTestHandler(c *gin.Context) {
	test, ok := h.Store.GetTestByID(c.Param("id"))
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "Test not found", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, test)
}

// ListSlotsHandler returns the fixed collection windows.
func (h *CatalogHandler) ListSlotsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"slots": booking.TimeSlots()})
}

// BookableDatesHandler returns the next seven bookable dates.
func (h *CatalogHandler) BookableDatesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"dates": booking.BookableDates(h.Now(), h.Location)})
}
