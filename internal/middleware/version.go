package middleware

import (
	"net/http"
	"sort"
	"strings"

	"roomledger/internal/common"

	"github.com/labstack/echo/v4"
)

// APIVersion represents API version information
type APIVersion struct {
	Version string `json:"version"`
	Status  string `json:"status"` // "active" or "sunset"
	Message string `json:"message,omitempty"`
}

// VersionMiddleware provides API versioning functionality
type VersionMiddleware struct {
	supportedVersions map[string]APIVersion
	defaultVersion    string
}

// NewVersionMiddleware creates a new version middleware instance
func NewVersionMiddleware() *VersionMiddleware {
	return &VersionMiddleware{
		supportedVersions: map[string]APIVersion{
			"v1": {
				Version: "v1",
				Status:  "active",
				Message: "Current stable API version",
			},
		},
		defaultVersion: "v1",
	}
}

// VersionHeader adds version information to response headers
func (vm *VersionMiddleware) VersionHeader(version string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-API-Version", version)

			if ver, exists := vm.supportedVersions[version]; exists {
				h.Set("X-API-Message", ver.Message)
			}

			return next(c)
		}
	}
}

// VersionRoute creates a version-specific route group
func (vm *VersionMiddleware) VersionRoute(e *echo.Echo, version string) *echo.Group {
	group := e.Group("/" + version)
	group.Use(vm.VersionHeader(version))
	return group
}

// APIVersionResolver stores the requested version in the context under
// "api_version" and rejects unknown /vN prefixes.
func (vm *VersionMiddleware) APIVersionResolver() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			version := extractVersionFromPath(c.Request().URL.Path)
			if version == "" {
				c.Set("api_version", vm.defaultVersion)
				return next(c)
			}

			if _, supported := vm.supportedVersions[version]; !supported {
				return c.JSON(http.StatusNotFound, common.CreateErrorResponse(common.CodeNotFound,
					"Unsupported API version", map[string]string{"supported_versions": strings.Join(vm.activeVersions(), ", ")}))
			}
			c.Set("api_version", version)
			return next(c)
		}
	}
}

// extractVersionFromPath returns "vN" for paths starting with /vN/ or equal
// to /vN.
func extractVersionFromPath(path string) string {
	if len(path) < 3 || path[0] != '/' || path[1] != 'v' {
		return ""
	}
	end := 2
	for end < len(path) && path[end] >= '0' && path[end] <= '9' {
		end++
	}
	if end == 2 || (end < len(path) && path[end] != '/') {
		return ""
	}
	return path[1:end]
}

func (vm *VersionMiddleware) activeVersions() []string {
	var versions []string
	for version, info := range vm.supportedVersions {
		if info.Status == "active" {
			versions = append(versions, version)
		}
	}
	sort.Strings(versions)
	return versions
}
