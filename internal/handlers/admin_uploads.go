package handlers

import (
	"net/http"
)

// UploadTarget issues a one-time presigned destination for image bytes.
// The client PUTs the file straight to the returned uploadUrl with its
// content-type header, then stores the storageId on the product after
// resolving it to a durable URL.
func (a *Admin) UploadTarget(w http.ResponseWriter, r *http.Request) {
	target, err := a.svc.RequestUploadTarget(r.Context())
	if err != nil {
		writeOperationError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, target)
}

type resolveRequest struct {
	StorageID string `json:"storageId"`
}

type resolveResponse struct {
	// URL is null when the reference does not match a stored blob.
	URL *string `json:"url"`
}

// UploadResolve converts a blob reference into a durable fetchable URL.
// An unknown reference resolves to a null URL, not an error.
func (a *Admin) UploadResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := readJSON(r, &req); err != nil || req.StorageID == "" {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	url, err := a.svc.ResolveBlobURL(r.Context(), req.StorageID)
	if err != nil {
		writeOperationError(w, r, err)
		return
	}

	var resp resolveResponse
	if url != "" {
		resp.URL = &url
	}
	writeJSON(w, http.StatusOK, resp)
}
