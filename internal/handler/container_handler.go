// Package handler provides HTTP handlers for the inspect API.
package handler

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"ushay-etl/internal/domain"
	pkgerrors "ushay-etl/pkg/errors"
)

const multipartOverhead = 1 << 20

// ContainerHandler serves single-container inspection.
type ContainerHandler struct {
	containers  domain.ContainerService
	wanted      []string
	maxFileSize int64
	logger      domain.Logger
}

// NewContainerHandler creates a new container handler
func NewContainerHandler(containers domain.ContainerService, wanted []string, maxFileSize int64, logger domain.Logger) *ContainerHandler {
	return &ContainerHandler{
		containers:  containers,
		wanted:      wanted,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// InspectResponse is the JSON body returned for an inspected container.
type InspectResponse struct {
	*domain.FileResult
	Fields []domain.MetadataField `json:"fields"`
}

// InspectContainer handles POST /api/v1/containers/inspect with a multipart
// "file" part. The container is processed in memory and nothing is stored.
// ?wanted_only=true restricts fields to the configured wanted keys.
func (h *ContainerHandler) InspectContainer(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		writeAppError(w, pkgerrors.NewValidationError("File is required", err.Error()))
		return
	}
	defer file.Close()

	if header.Size > h.maxFileSize {
		writeError(w, http.StatusRequestEntityTooLarge, "File too large")
		return
	}

	// Sanitize filename (strip any path components)
	name := strings.TrimSpace(filepath.Base(header.Filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "container.ushay"
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Failed to read uploaded container", err, "file", name)
		writeAppError(w, pkgerrors.NewValidationError("Could not read file", err.Error()))
		return
	}

	res := h.containers.Inspect(r.Context(), name, data)

	resp := InspectResponse{FileResult: res, Fields: res.FieldList()}
	if wantedOnly, _ := strconv.ParseBool(r.URL.Query().Get("wanted_only")); wantedOnly {
		resp.Fields = project(res.Fields, h.wanted)
	}
	if resp.Fields == nil {
		resp.Fields = []domain.MetadataField{}
	}
	if resp.Sections == nil {
		resp.Sections = []domain.SectionRecord{}
	}

	h.logger.Info("Container inspected",
		"file", name,
		"zip_ok", res.Probe.ArchiveOpenable,
		"fields", len(resp.Fields),
		"sections", len(resp.Sections),
	)
	writeJSON(w, http.StatusOK, resp)
}

func project(fields *domain.Fields, wanted []string) []domain.MetadataField {
	values := fields.Project(wanted)
	out := make([]domain.MetadataField, 0, len(wanted))
	for _, k := range wanted {
		out = append(out, domain.MetadataField{Tag: k, Value: values[k]})
	}
	return out
}
