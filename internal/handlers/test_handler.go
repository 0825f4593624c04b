package handlers

import (
	"net/http"

	"mind-service/internal/apperr"
	"mind-service/internal/service"

	"github.com/gin-gonic/gin"
)

type TestHandler struct {
	Service *service.TestService
}

func NewTestHandler(s *service.TestService) *TestHandler {
	return &TestHandler{Service: s}
}

// StartTest answers GET /test?progressToken=&selectTest=. Without a
// token a new one is issued; with a token the attempt is created or
// resumed.
func (h *TestHandler) StartTest(c *gin.Context) {
	progressToken := c.Query("progressToken")
	selectTest, ok := parseTestID(c.Query("selectTest"))
	if !ok {
		writeError(c, apperr.New(apperr.CodeMissingValue, "Missing value"))
		return
	}

	res, appErr := h.Service.StartTest(c.Request.Context(), progressToken, selectTest)
	if appErr != nil {
		writeError(c, appErr)
		return
	}

	if !res.Created {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"test":      res.Test,
			"test_name": res.Test.TestName,
			"progress":  res.Record.Progress,
		})
		return
	}

	body := gin.H{
		"token":     res.Record.Token,
		"test":      res.Test,
		"test_name": res.Test.TestName,
		"success":   true,
	}
	if progressToken != "" {
		body["progressID"] = res.Record.ID.Hex()
	}
	c.JSON(http.StatusOK, body)
}

// TestList answers GET /test/list?loadTestList=1.
func (h *TestHandler) TestList(c *gin.Context) {
	if c.Query("loadTestList") == "" {
		writeError(c, apperr.New(apperr.CodeMissingValue, "Missing value"))
		return
	}

	items, appErr := h.Service.TestList(c.Request.Context())
	if appErr != nil {
		writeError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"testList": items, "success": true})
}

type updateProgressRequest struct {
	Token      string `json:"token"`
	Progress   *int   `json:"progress"`
	SelectTest string `json:"selectTest"`
}

// UpdateProgress answers POST /test/update, appending one selection
// digit to the attempt.
func (h *TestHandler) UpdateProgress(c *gin.Context) {
	var req updateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Progress == nil {
		writeError(c, apperr.New(apperr.CodeMissingValue, "params missing"))
		return
	}
	selectTest, ok := parseTestID(req.SelectTest)
	if !ok {
		writeError(c, apperr.New(apperr.CodeMissingValue, "params missing"))
		return
	}

	if appErr := h.Service.UpdateProgress(c.Request.Context(), req.Token, selectTest, *req.Progress); appErr != nil {
		writeError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
