package handlers

import (
	"net/http"

	"musicweb-api/helper"
	"musicweb-api/models"
	"musicweb-api/services"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService services.ReviewService
	Helper        *helper.HTTPHelper
}

func NewReviewHandler(reviewService services.ReviewService, h *helper.HTTPHelper) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, Helper: h}
}

func (h *ReviewHandler) GetReviews(c *gin.Context) {
	params := models.ReviewListParams{
		ListParams: listParams(c, models.ReviewSortFields),
		MusicID:    c.Query("musicId"),
		UserID:     c.Query("userId"),
		MinRating:  models.ParseOptionalInt(c.Query("minRating")),
		MaxRating:  models.ParseOptionalInt(c.Query("maxRating")),
	}

	reviews, total, err := h.reviewService.List(c.Request.Context(), params)
	if err != nil {
		h.Helper.SendErrorFromErr(c, err)
		return
	}

	h.Helper.SetPaginationHeaders(c, params.Page, params.Limit, total)
	h.Helper.SendJSON(c, http.StatusOK, reviews)
}

func (h *ReviewHandler) GetReview(c *gin.Context) {
	review, err := h.reviewService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Helper.SendErrorFromErr(c, err)
		return
	}

	h.Helper.SendJSON(c, http.StatusOK, review)
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	id, ok := identity(c, h.Helper)
	if !ok {
		return
	}

	var req models.CreateReviewRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), id, req)
	if err != nil {
		h.Helper.SendErrorFromErr(c, err)
		return
	}

	h.Helper.SendCreated(c, review)
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	id, ok := identity(c, h.Helper)
	if !ok {
		return
	}

	var patch models.ReviewPatch
	if !h.Helper.BindJSON(c, &patch) {
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), id, c.Param("id"), patch)
	if err != nil {
		h.Helper.SendErrorFromErr(c, err)
		return
	}

	h.Helper.SendJSON(c, http.StatusOK, review)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, ok := identity(c, h.Helper)
	if !ok {
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), id, c.Param("id")); err != nil {
		h.Helper.SendErrorFromErr(c, err)
		return
	}

	h.Helper.SendMessage(c, "Review deleted successfully")
}
