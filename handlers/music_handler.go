package handlers

import (
	"net/http"

	"musicweb-api/helper"
	"musicweb-api/models"
	"musicweb-api/services"

	"github.com/gin-gonic/gin"
)

type MusicHandler struct {
	musicService services.MusicService
	Helper       *helper.HTTPHelper
}

func NewMusicHandler(musicService services.MusicService, h *helper.HTTPHelper) *MusicHandler {
	return &MusicHandler{musicService: musicService, Helper: h}
}

func (h *MusicHandler) GetMusicList(c *gin.Context) {
	params := models.MusicListParams{
		ListParams: listParams(c, models.MusicSortFields),
		Genre:      c.Query("genre"),
		Year:       models.ParseOptionalInt(c.Query("year")),
	}

	music, total, err := h.musicService.List(c.Request.Context(), params)
	if err != nil {
		h.Helper.SendErrorFromErr(c, err)
		return
	}

	h.Helper.SetPaginationHeaders(c, params.Page, params.Limit, total)
	h.Helper.SendJSON(c, http.StatusOK, music)
}

func (h *MusicHandler) GetMusic(c *gin.Context) {
	music, err := h.musicService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Helper.SendErrorFromErr(c, err)
		return
	}

	h.Helper.SendJSON(c, http.StatusOK, music)
}

func (h *MusicHandler) CreateMusic(c *gin.Context) {
	var req models.CreateMusicRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	music, err := h.musicService.Create(c.Request.Context(), req)
	if err != nil {
		h.Helper.SendErrorFromErr(c, err)
		return
	}

	h.Helper.SendCreated(c, music)
}

func (h *MusicHandler) UpdateMusic(c *gin.Context) {
	var patch models.MusicPatch
	if !h.Helper.BindJSON(c, &patch) {
		return
	}

	music, err := h.musicService.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.Helper.SendErrorFromErr(c, err)
		return
	}

	h.Helper.SendJSON(c, http.StatusOK, music)
}

func (h *MusicHandler) DeleteMusic(c *gin.Context) {
	if err := h.musicService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.Helper.SendErrorFromErr(c, err)
		return
	}

	h.Helper.SendMessage(c, "Music deleted successfully")
}

func (h *MusicHandler) GetGenres(c *gin.Context) {
	genres, err := h.musicService.Genres(c.Request.Context())
	if err != nil {
		h.Helper.SendErrorFromErr(c, err)
		return
	}

	h.Helper.SendJSON(c, http.StatusOK, genres)
}

func (h *MusicHandler) GetMusicReviews(c *gin.Context) {
	reviews, err := h.musicService.Reviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Helper.SendErrorFromErr(c, err)
		return
	}

	h.Helper.SendJSON(c, http.StatusOK, reviews)
}
