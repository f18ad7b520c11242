package http

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "emcli/internal/errors"
	"emcli/internal/ffe"
	"emcli/internal/services"
)

// ConvertHandler handles export file conversion requests
type ConvertHandler struct {
	service  ConvertServiceInterface
	maxBytes int64
	logger   *slog.Logger
}

// NewConvertHandler creates a new conversion handler
func NewConvertHandler(service ConvertServiceInterface, maxBytes int64, logger *slog.Logger) *ConvertHandler {
	return &ConvertHandler{
		service:  service,
		maxBytes: maxBytes,
		logger:   logger.With(slog.String("handler", "convert")),
	}
}

// Routes returns the conversion routes
func (h *ConvertHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Post("/", h.Convert)
	return r
}

// ConvertResponse is the success envelope for POST /api/convert.
type ConvertResponse struct {
	Success     bool        `json:"success"`
	Document    interface{} `json:"document"`
	Datasets    int         `json:"datasets"`
	DroppedRows int         `json:"dropped_rows"`
	Filetype    string      `json:"filetype"`
	Datatype    string      `json:"datatype,omitempty"`
	Saved       bool        `json:"saved"`
}

// Convert handles POST /api/convert. The body is either the raw export file
// text or a multipart form with a "file" part; query parameters control the
// conversion:
//
//	filename  used for extension-based detection (required for raw bodies;
//	          multipart uploads default to the part's filename)
//	filetype  override the detected producing tool
//	datatype  override the detected data type label
//	save      "true" persists the document and records the conversion
func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	save, _ := strconv.ParseBool(q.Get("save"))

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	filename := q.Get("filename")
	var body io.Reader = r.Body
	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil && mt == "multipart/form-data" {
		file, header, err := r.FormFile("file")
		if err != nil {
			render.Render(w, r, apierrors.NewErrorResponse(
				apierrors.ErrValidation("file", "multipart form must carry a file part")))
			return
		}
		defer file.Close()
		body = file
		if filename == "" {
			filename = header.Filename
		}
	}

	if filename == "" {
		render.Render(w, r, apierrors.NewErrorResponse(
			apierrors.ErrValidation("filename", "filename query parameter is required")))
		return
	}

	result, err := h.service.Convert(ctx, services.ConvertRequest{
		Filename: filename,
		Filetype: q.Get("filetype"),
		Datatype: q.Get("datatype"),
		Save:     save,
		Body:     body,
	})
	if err != nil {
		h.renderConvertError(w, r, filename, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, ConvertResponse{
		Success:     true,
		Document:    result.Document,
		Datasets:    result.Stats.Datasets,
		DroppedRows: result.Stats.DroppedRows,
		Filetype:    result.Filetype,
		Datatype:    result.Datatype,
		Saved:       result.Conversion != nil,
	})
}

func (h *ConvertHandler) renderConvertError(w http.ResponseWriter, r *http.Request, filename string, err error) {
	ctx := r.Context()
	h.logger.WarnContext(ctx, "conversion failed",
		slog.String("filename", filename),
		slog.String("error", err.Error()),
	)

	var parseErr *ffe.ParseError
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, services.ErrEmptyFilename):
		render.Render(w, r, apierrors.NewErrorResponse(
			apierrors.ErrValidation("filename", "filename query parameter is required")))
	case errors.Is(err, services.ErrUnknownExtension):
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.UnsupportedFiletypeError(filename)))
	case errors.As(err, &parseErr):
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.ParseFailedError(parseErr)))
	case errors.As(err, &maxBytesErr):
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrPayloadTooLarge))
	default:
		h.logger.ErrorContext(ctx, "internal conversion error", slog.String("error", err.Error()))
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrInternalServer))
	}
}
