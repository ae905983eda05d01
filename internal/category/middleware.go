package category

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
)

type pathParamKey string

// ValidatePathParamsMiddleware parses the named path values as category IDs and stores them in the
// request context. Values that are not positive integers are answered with 404, the same response
// as for a category that does not exist.
func (h *Handler) ValidatePathParamsMiddleware(next http.Handler, params ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, param := range params {
			id, err := strconv.Atoi(r.PathValue(param))
			if err != nil || id <= 0 {
				slog.Debug("invalid path parameter", "param", param, "value", r.PathValue(param))
				h.respondError(w, http.StatusNotFound, "Category not found")
				return
			}
			r = r.WithContext(context.WithValue(r.Context(), pathParamKey(param), id))
		}
		next.ServeHTTP(w, r)
	})
}

func pathParamFromContext(ctx context.Context, param string) (int, bool) {
	id, ok := ctx.Value(pathParamKey(param)).(int)
	return id, ok
}
