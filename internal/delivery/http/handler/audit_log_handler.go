package handler

import (
	"errors"
	"net/http"
	"strconv"

	"clinic-appointment-api/internal/usecase"
	"clinic-appointment-api/pkg/response"

	"github.com/gorilla/mux"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{auditLogUsecase: auditLogUsecase}
}

func (h *AuditLogHandler) List(w http.ResponseWriter, r *http.Request) {
	logs, err := h.auditLogUsecase.GetAllAuditLogs(r.Context())
	if err != nil {
		response.InternalServerError(w, "")
		return
	}

	response.SuccessList(w, http.StatusOK, len(logs), logs)
}

func (h *AuditLogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.NotFound(w, usecase.ErrAuditLogNotFound.Error())
		return
	}

	auditLog, err := h.auditLogUsecase.GetAuditLog(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrAuditLogNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalServerError(w, "")
		return
	}

	response.Success(w, http.StatusOK, auditLog)
}
