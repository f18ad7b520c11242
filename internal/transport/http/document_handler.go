package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "emcli/internal/errors"
	"emcli/internal/services"
)

// DocumentHandler serves previously converted documents
type DocumentHandler struct {
	service ConvertServiceInterface
	logger  *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(service ConvertServiceInterface, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "documents")),
	}
}

// Routes returns the document routes
func (h *DocumentHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/", h.ListConversions)
	r.Route("/{id}", func(r chi.Router) {
		r.Use(h.DocumentCtx)
		r.Get("/", h.GetDocument)
	})
	return r
}

// DocumentCtx middleware validates the id parameter
func (h *DocumentHandler) DocumentCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") == "" {
			render.Render(w, r, apierrors.NewErrorResponse(
				apierrors.ErrValidation("id", "document id is required")))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetDocument handles GET /api/documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	doc, err := h.service.DocumentByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrConversionNotFound), errors.Is(err, services.ErrDocumentMissing):
			render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrDocumentNotFound))
		default:
			h.logger.ErrorContext(ctx, "failed to load document",
				slog.String("id", id),
				slog.String("error", err.Error()),
			)
			render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrInternalServer))
		}
		return
	}

	render.JSON(w, r, doc)
}

// ListConversions handles GET /api/documents
func (h *DocumentHandler) ListConversions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	convs, err := h.service.Conversions(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list conversions", slog.String("error", err.Error()))
		render.Render(w, r, apierrors.NewErrorResponse(apierrors.ErrInternalServer))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"success":     true,
		"conversions": convs,
		"count":       len(convs),
	})
}
