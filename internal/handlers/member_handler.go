package handlers

import (
	"net/http"

	"mind-service/internal/apperr"
	"mind-service/internal/middleware"
	"mind-service/internal/service"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	Service *service.MemberService
}

func NewMemberHandler(s *service.MemberService) *MemberHandler {
	return &MemberHandler{Service: s}
}

type kakaoTokenRequest struct {
	Code string `json:"code"`
}

// KakaoToken answers POST /kakao/token: authorization code in, access
// token out.
func (h *MemberHandler) KakaoToken(c *gin.Context) {
	var req kakaoTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperr.New(apperr.CodeMissingValue, "Missing value"))
		return
	}

	token, appErr := h.Service.KakaoLogin(c.Request.Context(), req.Code)
	if appErr != nil {
		writeError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "success": true})
}

type loginRequest struct {
	ID string `json:"id"`
	PW string `json:"pw"`
}

func (h *MemberHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperr.New(apperr.CodeUserInvalid, "ID or password is missing"))
		return
	}

	token, appErr := h.Service.Login(c.Request.Context(), req.ID, req.PW)
	if appErr != nil {
		writeError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "success": true})
}

type joinRequest struct {
	ID   string `json:"id"`
	PW   string `json:"pw"`
	Name string `json:"name"`
}

func (h *MemberHandler) Join(c *gin.Context) {
	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperr.New(apperr.CodeUserInvalid, "params missing"))
		return
	}

	if appErr := h.Service.Join(c.Request.Context(), req.ID, req.PW, req.Name); appErr != nil {
		writeError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Info answers GET /member/info with the nickname of the authenticated
// member; anonymous callers get an empty nickname.
func (h *MemberHandler) Info(c *gin.Context) {
	nickname := ""
	if member := middleware.MemberFrom(c); member != nil {
		nickname = member.Nickname
	}
	c.JSON(http.StatusOK, gin.H{"nickname": nickname, "success": true})
}
