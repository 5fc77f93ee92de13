// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/juju/errors"

	"github.com/danielhkuo/labdesk/attachments"
	"github.com/danielhkuo/labdesk/middleware"
	"github.com/danielhkuo/labdesk/reconcile"
)

const (
	// multipartOverhead is allowed on top of the file limit for boundaries
	// and part headers.
	multipartOverhead = 64 << 10
	multipartMemory   = 1 << 20
)

type AttachmentHandler struct {
	svc       *reconcile.Service
	files     attachments.Store
	maxUpload int64
}

func NewAttachmentHandler(svc *reconcile.Service, files attachments.Store, maxUpload int64) *AttachmentHandler {
	return &AttachmentHandler{svc: svc, files: files, maxUpload: maxUpload}
}

func (h *AttachmentHandler) tooLarge(w http.ResponseWriter) {
	middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge,
		"file exceeds the "+humanize.IBytes(uint64(h.maxUpload))+" upload limit")
}

// UploadAttachment handles POST /requests/{identifier}/attachments.
// Files are keyed by the resolved record id, so a request number and its
// internal id share one attachment list.
func (h *AttachmentHandler) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Resolve(r.Context(), r.PathValue("identifier"))
	if err != nil {
		writeError(w, r, err, "Failed to fetch request")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.tooLarge(w)
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	if header.Size > h.maxUpload {
		h.tooLarge(w)
		return
	}

	// Multipart writers default to octet-stream; let the store infer a
	// better type from the extension.
	contentType := header.Header.Get("Content-Type")
	if contentType == "application/octet-stream" {
		contentType = ""
	}

	att, err := h.files.Put(r.Context(), res.Ref.ID, header.Filename, contentType, header.Size, file)
	if err != nil {
		writeError(w, r, err, "Failed to store attachment")
		return
	}

	slog.Info("attachment stored",
		"request_id", middleware.RequestIDFromContext(r.Context()),
		"record", res.Ref.ID,
		"kind", res.Ref.Kind,
		"file", att.FileName,
		"size", att.HumanSize,
	)
	middleware.SuccessResponse(w, http.StatusCreated, att, "")
}

// ListAttachments handles GET /requests/{identifier}/attachments
func (h *AttachmentHandler) ListAttachments(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Resolve(r.Context(), r.PathValue("identifier"))
	if err != nil {
		writeError(w, r, err, "Failed to fetch request")
		return
	}

	list, err := h.files.List(r.Context(), res.Ref.ID)
	if err != nil {
		writeError(w, r, err, "Failed to list attachments")
		return
	}
	middleware.ListResponse(w, list)
}
