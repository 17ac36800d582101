package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

// POST /api/admin/login
func (h Handler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	token, u, err := h.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{
		Token: token,
		User:  loginUser{ID: u.ID, Username: u.Username},
	})
}
