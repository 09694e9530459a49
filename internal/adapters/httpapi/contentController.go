package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ContentController struct {
	uc     ContentUseCase
	logger *zap.Logger
}

func NewContentController(uc ContentUseCase, logger *zap.Logger) *ContentController {
	return &ContentController{uc: uc, logger: logger}
}

// ListContents serves one feed page. Non-numeric skip/limit fall back to
// the defaults instead of failing.
func (ctl *ContentController) ListContents(c *gin.Context) {
	skip, _ := strconv.Atoi(c.Query("skip"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	items, err := ctl.uc.ListFeed(c.Request.Context(), c.Query("search"), skip, limit)
	if err != nil {
		respondError(c, ctl.logger, "list feed", err)
		return
	}
	respond(c, http.StatusOK, items)
}

func (ctl *ContentController) GetContent(c *gin.Context) {
	detail, err := ctl.uc.GetContentDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctl.logger, "get content", err)
		return
	}
	respond(c, http.StatusOK, detail)
}

func (ctl *ContentController) CreateContent(c *gin.Context) {
	userID, _ := currentUserID(c)
	media, closeFile, err := formFile(c, "content")
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid upload")
		return
	}
	defer closeFile()
	if media == nil {
		respondMessage(c, http.StatusBadRequest, "Please select content image")
		return
	}

	dto, err := ctl.uc.CreateContent(c.Request.Context(), userID, c.PostForm("title"), c.PostForm("description"), media)
	if err != nil {
		respondError(c, ctl.logger, "create content", err)
		return
	}
	respond(c, http.StatusCreated, dto)
}

func (ctl *ContentController) UpdateContent(c *gin.Context) {
	userID, _ := currentUserID(c)
	media, closeFile, err := formFile(c, "content")
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid upload")
		return
	}
	defer closeFile()

	var description *string
	if d, ok := c.GetPostForm("description"); ok {
		description = &d
	}

	dto, err := ctl.uc.UpdateContent(c.Request.Context(), c.Param("id"), userID, c.PostForm("title"), description, media)
	if err != nil {
		respondError(c, ctl.logger, "update content", err)
		return
	}
	respond(c, http.StatusOK, dto)
}

func (ctl *ContentController) DeleteContent(c *gin.Context) {
	userID, _ := currentUserID(c)
	if err := ctl.uc.DeleteContent(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, ctl.logger, "delete content", err)
		return
	}
	c.Status(http.StatusNoContent)
}
