package api

import (
	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// BindIDParam reads the required path parameter "id".
func BindIDParam(c *gin.Context) (string, error) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	return id, err
}

// BindBoolQuery reads an optional boolean query parameter; absent means false.
func BindBoolQuery(c *gin.Context, name string) (bool, error) {
	var v *bool
	if err := runtime.BindQueryParameter("form", true, false, name, c.Request.URL.Query(), &v); err != nil {
		return false, err
	}
	return v != nil && *v, nil
}
