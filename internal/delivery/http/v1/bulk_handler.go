package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-careers-backend/internal/delivery/http/middleware"
	"go-careers-backend/internal/delivery/http/response"
	"go-careers-backend/internal/domain"
	"go-careers-backend/pkg/apperror"
)

type BulkHandler struct {
	bulkUC domain.BulkUsecase
}

func NewBulkHandler(protected *gin.RouterGroup, bulkUC domain.BulkUsecase) {
	handler := &BulkHandler{bulkUC: bulkUC}

	bulk := protected.Group("/applications/bulk")
	{
		bulk.POST("", handler.Execute)
		bulk.GET("/status", handler.Status)
	}
}

// BulkActionRequest carries stage and format unchecked; the coordinator
// answers INVALID_STAGE and INVALID_ACTION itself
type BulkActionRequest struct {
	ApplicationIDs []string        `json:"applicationIds" binding:"required,max=500"`
	Action         string          `json:"action" binding:"required"`
	Data           domain.BulkData `json:"data"`
}

// ExecuteBulkAction godoc
// @Summary      Run one action over many applications
// @Description  Items are processed independently; the result lists successes and per-id failures.
// @Description  Export returns rows as JSON, or the file itself with ?download=1.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        download  query     bool               false  "Stream the export file"
// @Param        body      body      BulkActionRequest  true   "Bulk request"
// @Success      200       {object}  response.Response{data=domain.BulkResult}
// @Failure      400       {object}  response.Response
// @Failure      409       {object}  response.Response
// @Router       /applications/bulk [post]
// @Security     BearerAuth
func (h *BulkHandler) Execute(c *gin.Context) {
	var req BulkActionRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.bulkUC.Execute(c.Request.Context(), middleware.ActorFromContext(c), domain.BulkRequest{
		ApplicationIDs: req.ApplicationIDs,
		Action:         domain.BulkAction(req.Action),
		Data:           req.Data,
	})
	if err != nil {
		c.Error(err)
		return
	}

	if result.Export != nil && queryBool(c, "download") {
		c.Header("Content-Disposition", `attachment; filename="`+result.Export.Filename+`"`)
		c.Data(http.StatusOK, result.Export.ContentType, result.Export.Content)
		return
	}

	response.Success(c, http.StatusOK, "Bulk action processed", result)
}

// BulkStatus godoc
// @Summary      Whether a bulk action is running on a selection
// @Tags         applications
// @Produce      json
// @Param        ids  query     string  true  "Comma separated application ids"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /applications/bulk/status [get]
// @Security     BearerAuth
func (h *BulkHandler) Status(c *gin.Context) {
	var ids []string
	for _, id := range strings.Split(c.Query("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		c.Error(apperror.BadRequest("ids is required"))
		return
	}

	processing, err := h.bulkUC.IsProcessing(c.Request.Context(), ids)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Bulk status", gin.H{"processing": processing})
}
