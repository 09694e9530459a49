package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RatingController struct {
	uc     RatingUseCase
	logger *zap.Logger
}

func NewRatingController(uc RatingUseCase, logger *zap.Logger) *RatingController {
	return &RatingController{uc: uc, logger: logger}
}

func (ctl *RatingController) AddRating(c *gin.Context) {
	var req struct {
		Rating  *int   `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Rating is required")
		return
	}
	userID, _ := currentUserID(c)

	dto, err := ctl.uc.AddRating(c.Request.Context(), c.Param("id"), userID, *req.Rating, req.Comment)
	if err != nil {
		respondError(c, ctl.logger, "add rating", err)
		return
	}
	respond(c, http.StatusCreated, dto)
}

// ListRatings puts the list and its stats beside status rather than under data.
func (ctl *RatingController) ListRatings(c *gin.Context) {
	list, err := ctl.uc.ListRatings(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctl.logger, "list ratings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        http.StatusOK,
		"ratings":       list.Ratings,
		"averageRating": list.AverageRating,
		"totalRatings":  list.TotalRatings,
	})
}
