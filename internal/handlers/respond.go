// internal/handlers/respond.go
package handlers

import (
	"net/http"

	"msm-console/internal/pkg/apiclient"
	"msm-console/internal/pkg/response"
	"msm-console/internal/workspace"

	"github.com/gin-gonic/gin"
)

// OK answers with data and any navigation the request triggered.
func OK(c *gin.Context, ws *workspace.Workspace, status int, message string, data interface{}) {
	if path := ws.Nav.TakeRedirect(); path != "" {
		response.SuccessRedirect(c, status, message, path, data)
		return
	}
	response.Success(c, status, message, data)
}

// Fail maps err to a status code. A request that ended the session carries
// the login redirect so the shell follows it even without the push channel.
// data, when given, is what the screen keeps showing next to the error.
func Fail(c *gin.Context, ws *workspace.Workspace, message string, err error, data ...interface{}) {
	status := apiclient.HTTPStatus(err)
	message = apiclient.MessageOf(err, message)

	if path := ws.Nav.TakeRedirect(); path != "" {
		c.Abort()
		c.JSON(status, response.Response{
			Success:  false,
			Message:  message,
			Error:    err.Error(),
			Redirect: path,
		})
		return
	}

	if status == http.StatusBadRequest && len(data) == 0 {
		response.ValidationError(c, message, err)
		return
	}
	response.Error(c, status, message, err, data...)
}
