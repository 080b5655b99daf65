// Package router sets up the gin engine with all middlewares and
// attaches the API routes.
package router

import (
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	docs "github.com/kassenbuch/backend/api"
	v1 "github.com/kassenbuch/backend/internal/controllers/v1"
	"github.com/kassenbuch/backend/internal/httputil"
	"github.com/kassenbuch/backend/internal/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Config sets up the router and all middlewares. The teardown function
// unregisters the Prometheus metrics so that Config can be called
// repeatedly, e.g. in tests.
func Config(url *url.URL) (*gin.Engine, func(), error) {
	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(url))
	r.Use(MetricsMiddleware())
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, map[string]string{
			"error": "This HTTP method is not allowed for the endpoint you called",
		})
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, out io.Writer, latency time.Duration) zerolog.Logger {
			return log.Logger.With().
				Str("request-id", requestid.Get(c)).
				Dur("latency", latency).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if ok {
		log.Debug().Str("allowOrigins", allowOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(allowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	log.Debug().Str("API Base URL", url.String()).Str("Host", url.Host).Str("Path", url.Path).Msg("Router")
	log.Info().Str("version", version).Msg("Router")

	docs.SwaggerInfo.Host = url.Host
	docs.SwaggerInfo.BasePath = url.Path
	docs.SwaggerInfo.Title = "Kassenbuch"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Description = "The backend for Kassenbuch, a self-hosted personal finance tool with CSV import."

	if err := registerPrometheusMetrics(); err != nil {
		return nil, func() {}, err
	}

	return r, func() { unregisterPrometheusMetrics() }, nil
}

// AttachRoutes attaches the API routes to the router group that is
// passed in. Separating this from Config allows tests to attach the
// routes to different paths.
func AttachRoutes(group *gin.RouterGroup) {
	group.GET("", GetRoot)
	group.OPTIONS("", OptionsRoot)
	group.GET("/version", GetVersion)
	group.OPTIONS("/version", OptionsVersion)

	group.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// pprof performance profiles
	enablePprof, ok := os.LookupEnv("ENABLE_PPROF")
	if ok && enablePprof == "true" {
		pprof.RouteRegister(group, "debug/pprof")
	}

	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 setup
	v1Group := group.Group("/v1")
	{
		v1Group.GET("", GetV1)
		v1Group.OPTIONS("", OptionsV1)
	}

	v1.RegisterHouseholdRoutes(v1Group.Group("/households"))
	v1.RegisterAccountRoutes(v1Group.Group("/accounts"))
	v1.RegisterCategoryRoutes(v1Group.Group("/categories"))
	v1.RegisterCounterpartyRoutes(v1Group.Group("/counterparties"))
	v1.RegisterTagRoutes(v1Group.Group("/tags"))
	v1.RegisterTransactionRoutes(v1Group.Group("/transactions"))
	v1.RegisterRecurringTransactionRoutes(v1Group.Group("/recurring-transactions"))
	v1.RegisterCategorizationRuleRoutes(v1Group.Group("/categorization-rules"))
	v1.RegisterMappingProfileRoutes(v1Group.Group("/mapping-profiles"))
	v1.RegisterImportJobRoutes(v1Group.Group("/import-jobs"))
	v1.RegisterColumnMappingRoutes(v1Group.Group("/column-mappings"))
	v1.RegisterValueMappingRoutes(v1Group.Group("/value-mappings"))
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Docs    string `json:"docs" example:"https://example.com/api/docs/index.html"` // Swagger API documentation
	Version string `json:"version" example:"https://example.com/api/version"`      // Endpoint returning the version of the backend
	Metrics string `json:"metrics" example:"https://example.com/api/metrics"`      // Prometheus metrics
	V1      string `json:"v1" example:"https://example.com/api/v1"`                // List endpoint for all v1 endpoints
}

// GetRoot returns the link list for the API root
//
//	@Summary		API root
//	@Description	Entrypoint for the API, listing all endpoints
//	@Tags			General
//	@Success		200	{object}	RootResponse
//	@Router			/ [get]
func GetRoot(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Docs:    url + "/docs/index.html",
			Version: url + "/version",
			Metrics: url + "/metrics",
			V1:      url + "/v1",
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"` // Data object for the version endpoint
}
type VersionObject struct {
	Version string `json:"version" example:"1.1.0"` // the running version of the backend
}

// GetVersion returns the API version object
//
//	@Summary		API version
//	@Description	Returns the software version of the API
//	@Tags			General
//	@Success		200	{object}	VersionResponse
//	@Router			/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// OptionsRoot returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/ [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsVersion returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/version [options]
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V1Response struct {
	Links V1Links `json:"links"` // Links for the v1 API
}

type V1Links struct {
	Households            string `json:"households" example:"https://example.com/api/v1/households"`                        // URL of household list endpoint
	Accounts              string `json:"accounts" example:"https://example.com/api/v1/accounts"`                            // URL of account list endpoint
	Categories            string `json:"categories" example:"https://example.com/api/v1/categories"`                        // URL of category list endpoint
	Counterparties        string `json:"counterparties" example:"https://example.com/api/v1/counterparties"`                // URL of counterparty list endpoint
	Tags                  string `json:"tags" example:"https://example.com/api/v1/tags"`                                    // URL of tag list endpoint
	Transactions          string `json:"transactions" example:"https://example.com/api/v1/transactions"`                    // URL of transaction list endpoint
	RecurringTransactions string `json:"recurringTransactions" example:"https://example.com/api/v1/recurring-transactions"` // URL of recurring transaction list endpoint
	CategorizationRules   string `json:"categorizationRules" example:"https://example.com/api/v1/categorization-rules"`     // URL of categorization rule list endpoint
	MappingProfiles       string `json:"mappingProfiles" example:"https://example.com/api/v1/mapping-profiles"`             // URL of mapping profile list endpoint
	ImportJobs            string `json:"importJobs" example:"https://example.com/api/v1/import-jobs"`                       // URL of import job list endpoint
}

// GetV1 returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	V1Response
//	@Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Households:            url + "/v1/households",
			Accounts:              url + "/v1/accounts",
			Categories:            url + "/v1/categories",
			Counterparties:        url + "/v1/counterparties",
			Tags:                  url + "/v1/tags",
			Transactions:          url + "/v1/transactions",
			RecurringTransactions: url + "/v1/recurring-transactions",
			CategorizationRules:   url + "/v1/categorization-rules",
			MappingProfiles:       url + "/v1/mapping-profiles",
			ImportJobs:            url + "/v1/import-jobs",
		},
	})
}

// OptionsV1 returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
