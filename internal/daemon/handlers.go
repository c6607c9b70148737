package daemon

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"ledger/internal/api"
	"ledger/internal/logging"
	"ledger/internal/services"
)

const headerDegraded = "X-Label-Degraded"

type handlers struct {
	svc    *api.ShipmentService
	health healthFunc
	logger *slog.Logger
}

func (h *handlers) handleHealth(c *gin.Context) {
	if h.health == nil {
		c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
		return
	}
	resp, err := h.health(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handlers) handleList(c *gin.Context) {
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.respondError(c, services.Wrap(services.ErrValidation, "api", "list", fmt.Sprintf("invalid limit %q", raw), nil))
			return
		}
		limit = parsed
	}
	items, err := h.svc.List(c.Request.Context(), c.QueryArray("status"), c.Query("q"), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if items == nil {
		items = []api.Shipment{}
	}
	c.JSON(http.StatusOK, api.ShipmentListResponse{Items: items})
}

func (h *handlers) handleShow(c *gin.Context) {
	item, err := h.svc.Describe(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *handlers) handleCreate(c *gin.Context) {
	var fields api.ShipmentFields
	if !h.bind(c, &fields) {
		return
	}
	item, err := h.svc.Create(c.Request.Context(), fields)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *handlers) handleReplace(c *gin.Context) {
	var fields api.ShipmentFields
	if !h.bind(c, &fields) {
		return
	}
	item, err := h.svc.Replace(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *handlers) handlePatch(c *gin.Context) {
	var req api.BulkPatchRequest
	if !h.bind(c, &req) {
		return
	}
	resp, err := h.svc.Patch(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handlers) handleDelete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) handleDeleteMany(c *gin.Context) {
	var req api.IDsRequest
	if !h.bind(c, &req) {
		return
	}
	resp, err := h.svc.DeleteMany(c.Request.Context(), req.IDs)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handlers) handleBatch(c *gin.Context) {
	var req api.BatchRequest
	if !h.bind(c, &req) {
		return
	}
	resp, err := h.svc.CreateBatch(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *handlers) handleImport(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		h.respondError(c, services.Wrap(services.ErrValidation, "api", "import", "multipart field \"file\" is required", err))
		return
	}
	file, err := header.Open()
	if err != nil {
		h.respondError(c, services.Wrap(services.ErrValidation, "api", "import", "open upload", err))
		return
	}
	defer file.Close()

	resp, err := h.svc.Import(c.Request.Context(), file, header.Filename)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *handlers) handleStatusByPrefix(c *gin.Context) {
	var req api.StatusByPrefixRequest
	if !h.bind(c, &req) {
		return
	}
	resp, err := h.svc.SetStatusByPrefix(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handlers) handleStats(c *gin.Context) {
	resp, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// handleLabels streams the PDF by default. With ?deliver=1 the document is
// stored through the configured sink and a JSON summary is returned instead.
func (h *handlers) handleLabels(c *gin.Context) {
	var req api.LabelRequest
	if c.Request.ContentLength != 0 {
		if !h.bind(c, &req) {
			return
		}
	}
	deliver := parseFlag(c.Query("deliver"))

	delivery, err := h.svc.GenerateLabels(c.Request.Context(), req, deliver)
	if err != nil {
		h.respondError(c, err)
		return
	}
	art := delivery.Artifact
	c.Header(headerDegraded, strconv.Itoa(art.Degraded()))
	if deliver {
		c.JSON(http.StatusOK, api.FromDelivery(delivery))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.Filename))
	c.Data(http.StatusOK, art.ContentType, art.Data)
}

func (h *handlers) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.respondError(c, services.Wrap(services.ErrValidation, "api", "decode request", "invalid JSON body", err))
		return false
	}
	return true
}

func (h *handlers) respondError(c *gin.Context, err error) {
	status := services.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logging.ErrorWithContext(logging.WithContext(c.Request.Context(), h.logger), "request failed", "http_request_failed",
			logging.String("path", c.Request.URL.Path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the daemon log for the failing stage"),
		)
	}
	c.AbortWithStatusJSON(status, api.ErrorBody(err))
}

func parseFlag(value string) bool {
	value = strings.TrimSpace(value)
	return value == "1" || strings.EqualFold(value, "true") || strings.EqualFold(value, "yes")
}
