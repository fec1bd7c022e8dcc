package dimension

import (
	"context"
	"errors"
	"net/http"

	"github.com/frahmantamala/talento-plus/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(ctx context.Context, kind Kind) ([]DimensionResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// GetDimensions handles GET /dimensions/{kind}
func (h *Handler) GetDimensions(w http.ResponseWriter, r *http.Request) {
	kind, err := ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		h.WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	dims, err := h.Service.List(r.Context(), kind)
	if err != nil {
		if errors.Is(err, ErrUnknownKind) {
			h.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		h.Logger.Error("GetDimensions: failed to list", "kind", kind, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get dimensions")
		return
	}

	h.WriteJSON(w, http.StatusOK, DimensionsResponse{
		Kind:       kind,
		Dimensions: dims,
	})
}
