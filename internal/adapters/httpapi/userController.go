package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserController struct {
	uc     UserUseCase
	logger *zap.Logger
}

func NewUserController(uc UserUseCase, logger *zap.Logger) *UserController {
	return &UserController{uc: uc, logger: logger}
}

func (ctl *UserController) RegisterUser(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Please provide name, a valid email and a password of at least 6 characters")
		return
	}
	res, err := ctl.uc.RegisterUser(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, ctl.logger, "register", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": http.StatusCreated, "data": res.User, "token": res.Token})
}

func (ctl *UserController) LoginUser(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid credentials")
		return
	}
	res, err := ctl.uc.LoginUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, ctl.logger, "login", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "data": res.User, "token": res.Token})
}

func (ctl *UserController) Logout(c *gin.Context) {
	userID, _ := currentUserID(c)
	if err := ctl.uc.LogoutUser(c.Request.Context(), userID); err != nil {
		respondError(c, ctl.logger, "logout", err)
		return
	}
	respondMessage(c, http.StatusOK, "Logout successfully")
}

func (ctl *UserController) GetProfile(c *gin.Context) {
	userID, _ := currentUserID(c)
	profile, err := ctl.uc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, ctl.logger, "get profile", err)
		return
	}
	respond(c, http.StatusOK, profile)
}

// UpdateProfile accepts multipart with an optional "avatar" file.
func (ctl *UserController) UpdateProfile(c *gin.Context) {
	userID, _ := currentUserID(c)
	avatar, closeFile, err := formFile(c, "avatar")
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid upload")
		return
	}
	defer closeFile()

	profile, err := ctl.uc.UpdateProfile(c.Request.Context(), userID, c.PostForm("name"), avatar)
	if err != nil {
		respondError(c, ctl.logger, "update profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "data": profile, "message": "Profile updated successfully"})
}
