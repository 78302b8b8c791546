package routes

import (
	"net/http"

	"Finboard/internal/contracts"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ShareReport(c *gin.Context) {
	var body contracts.ShareReportRequest
	if !h.bindJSON(c, &body) {
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	recipientID, err := parseID("recipientID", body.RecipientID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	shared, err := h.ReportService.Share(c.Request.Context(), userID, recipientID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusCreated, "report shared", contracts.ShareReportResponse{
		ReportId:   shared.Id.String(),
		ReceiverId: shared.ReceiverId.String(),
		SharedDate: shared.SharedDate,
	})
}

func (h *Handler) UnreadReportCount(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	count, err := h.ReportService.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, contracts.ReportCountResponse{ReportCount: count})
}

func (h *Handler) ReportNumber(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	count, err := h.ReportService.ReportNumber(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, contracts.ReportNumberResponse{ReportNumber: count})
}

func (h *Handler) UnreadReports(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ids, err := h.ReportService.UnreadIDs(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, contracts.UnreadReportsResponse{UnreadReportIds: ids})
}

func (h *Handler) ReportSenders(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	details, err := h.ReportService.SenderDetails(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, details)
}

func (h *Handler) GetReport(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	reportID, err := parseID("id", c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	senderID, err := parseID("senderId", c.Query("senderId"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	data, err := h.ReportService.GetReport(c.Request.Context(), userID, senderID, reportID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, data)
}

func (h *Handler) MarkReportRead(c *gin.Context) {
	var body contracts.MarkReportReadRequest
	if !h.bindJSON(c, &body) {
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	reportID, err := parseID("reportId", body.ReportID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	remaining, err := h.ReportService.MarkAsRead(c.Request.Context(), userID, reportID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "report marked as read", contracts.ReportCountResponse{ReportCount: remaining})
}
