package handlers

import (
	_ "embed"
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
)

//go:embed openapi.yaml
var openapiSpec []byte

// LoadSwagger parses and validates the embedded OpenAPI document.
func LoadSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

// NewRequestValidator returns a middleware validating requests against doc. Requests that match no
// operation are passed on so echo answers them with its own 404/405. A request that does not match
// its operation fails with a 400 carrying the *openapi3filter.RequestError as Internal, which
// service.HTTPErrorHandler turns into bad_parameter.
func NewRequestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				var routeErr *routers.RouteError
				if errors.As(err, &routeErr) {
					return next(c)
				}
				return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
			}
			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "request does not match the API").SetInternal(err)
			}
			return next(c)
		}
	}, nil
}

