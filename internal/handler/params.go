package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// pathUUID binds the named chi path parameter as a UUID the same way
// oapi-codegen's generated wrappers do. On failure it writes a 404, since a
// malformed ID can never name an existing resource.
func pathUUID(w http.ResponseWriter, r *http.Request, name, what string) (openapi_types.UUID, bool) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeJSON(w, http.StatusNotFound, notFoundBody(what+" not found"))
		return id, false
	}
	return id, true
}

// queryInt binds an optional integer query parameter. A nil result means the
// parameter was absent.
func queryInt(r *http.Request, name string) (*int, error) {
	var v *int
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		return nil, fmt.Errorf("invalid %s parameter", name)
	}
	return v, nil
}
