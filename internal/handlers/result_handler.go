package handlers

import (
	"net/http"

	"mind-service/internal/apperr"
	"mind-service/internal/middleware"
	"mind-service/internal/service"

	"github.com/gin-gonic/gin"
)

type ResultHandler struct {
	Service *service.ResultService
}

func NewResultHandler(s *service.ResultService) *ResultHandler {
	return &ResultHandler{Service: s}
}

type generateResultRequest struct {
	ProgressToken string `json:"progressToken"`
	SelectTest    string `json:"selectTest"`
}

// GenerateResult answers POST /test/result: runs the scoring pipeline
// and returns the generated text.
func (h *ResultHandler) GenerateResult(c *gin.Context) {
	var req generateResultRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProgressToken == "" {
		writeError(c, apperr.New(apperr.CodeMissingValue, "Missing progressToken or selectTest"))
		return
	}
	selectTest, ok := parseTestID(req.SelectTest)
	if !ok {
		writeError(c, apperr.New(apperr.CodeMissingValue, "Missing progressToken or selectTest"))
		return
	}

	member := middleware.MemberFrom(c)
	content, appErr := h.Service.GenerateResult(c.Request.Context(), req.ProgressToken, selectTest, member)
	if appErr != nil {
		writeError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": content, "success": true})
}

// History answers GET /test/result/history with the member's recent
// saved results. An anonymous caller gets an empty history.
func (h *ResultHandler) History(c *gin.Context) {
	memberID := ""
	if member := middleware.MemberFrom(c); member != nil {
		memberID = member.ID
	}

	views, appErr := h.Service.History(c.Request.Context(), memberID)
	if appErr != nil {
		writeError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": views, "success": true})
}

type saveResultRequest struct {
	SaveResultToken string `json:"saveResultToken"`
}

// Save answers POST /test/result/save, linking an existing result to
// the authenticated member.
func (h *ResultHandler) Save(c *gin.Context) {
	var req saveResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperr.New(apperr.CodeMissingValue, "Missing saveResultToken"))
		return
	}

	memberID := ""
	if member := middleware.MemberFrom(c); member != nil {
		memberID = member.ID
	}

	if appErr := h.Service.SaveResult(c.Request.Context(), req.SaveResultToken, memberID); appErr != nil {
		writeError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
