package http

import (
	nethttp "net/http"
	"os"
	"strings"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/epi-control/internal/application/audit"
	"github.com/jhoicas/epi-control/internal/application/auth"
	"github.com/jhoicas/epi-control/internal/application/compliance"
	"github.com/jhoicas/epi-control/internal/application/dto"
	"github.com/jhoicas/epi-control/internal/application/issuance"
	"github.com/jhoicas/epi-control/internal/application/usecase"
	"github.com/jhoicas/epi-control/internal/domain/access"
	"github.com/jhoicas/epi-control/pkg/logger"
)

// ServerConfig parâmetros do app Fiber e dos middlewares globais.
type ServerConfig struct {
	AppName         string
	CORSOrigins     []string
	RateLimitMax    int
	RateLimitWindow time.Duration
	BodyLimitBytes  int
	SwaggerFile     string // vazio ou inexistente desliga /docs
}

// RouterDeps dependências para o router.
type RouterDeps struct {
	Employees   *usecase.EmployeeUseCase
	Equipment   *usecase.EquipmentUseCase
	Reports     *usecase.ReportUseCase
	Issuances   *issuance.Coordinator
	Compliance  *compliance.Scheduler
	Trail       *audit.Trail
	AuthUC      *auth.AuthUseCase
	Metrics     nethttp.Handler // nil desliga /metrics
	Log         *logger.Logger
	JWTSecret   string
}

// NewApp cria o app Fiber com os middlewares globais e registra as rotas.
func NewApp(cfg ServerConfig, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.BodyLimitBytes,
		ErrorHandler: ErrorHandler,
	})
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(RequestLogger(deps.Log.Component("http")))
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins(cfg.CORSOrigins),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Swagger UI em local: http://localhost:<port>/docs
	if cfg.SwaggerFile != "" {
		if _, err := os.Stat(cfg.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.SwaggerFile,
				Path:     "docs",
				Title:    "EPI Control API",
			}))
		}
	}
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	if cfg.RateLimitMax > 0 {
		app.Use("/api", limiter.New(limiter.Config{
			Max:        cfg.RateLimitMax,
			Expiration: cfg.RateLimitWindow,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(dto.Envelope{Error: &dto.ErrorResponse{
					Kind:    "RATE_LIMIT",
					Code:    "TOO_MANY_REQUESTS",
					Message: "muitas requisições, tente novamente mais tarde",
				}})
			},
		}))
	}

	Router(app, deps)
	return app
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return writeData(c, fiber.StatusOK, fiber.Map{"status": "ok", "timestamp": time.Now().UTC()})
	})

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(access.RoleAdmin)

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/users", adminOnly, authHandler.CreateUser)

	employees := protected.Group("/colaboradores")
	employeeHandler := NewEmployeeHandler(deps.Employees)
	employees.Get("/", employeeHandler.List)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Put("/:id", employeeHandler.Update)
	employees.Delete("/:id", adminOnly, employeeHandler.Retire)

	equipment := protected.Group("/epis")
	equipmentHandler := NewEquipmentHandler(deps.Equipment)
	equipment.Get("/", equipmentHandler.List)
	equipment.Get("/estoque-baixo", equipmentHandler.LowStock)
	equipment.Post("/", equipmentHandler.Create)
	equipment.Get("/:id", equipmentHandler.GetByID)
	equipment.Put("/:id", equipmentHandler.Update)
	equipment.Delete("/:id", adminOnly, equipmentHandler.Retire)

	issuances := protected.Group("/entregas")
	issuanceHandler := NewIssuanceHandler(deps.Issuances)
	issuances.Get("/", issuanceHandler.List)
	issuances.Post("/", issuanceHandler.Create)
	issuances.Get("/:id", issuanceHandler.GetByID)
	issuances.Get("/:id/verificacao", issuanceHandler.Verify)
	issuances.Get("/:id/comprovante", issuanceHandler.Receipt)
	issuances.Delete("/:id", adminOnly, issuanceHandler.Delete)

	complianceHandler := NewComplianceHandler(deps.Compliance)
	protected.Get("/treinamentos", complianceHandler.ListTrainings)
	protected.Post("/treinamentos", complianceHandler.RecordTraining)
	protected.Get("/exames", complianceHandler.ListExams)
	protected.Post("/exames", complianceHandler.RecordExam)
	protected.Get("/conformidade/resumo", complianceHandler.Summary)

	reportHandler := NewReportHandler(deps.Reports)
	protected.Get("/dashboard/stats", reportHandler.Dashboard)
	reports := protected.Group("/relatorios")
	reports.Get("/vencimentos", reportHandler.Expirations)
	reports.Get("/por-setor", reportHandler.BySector)
	reports.Get("/conformidade", reportHandler.Compliance)
	reports.Get("/valorizacao", reportHandler.Valuation)

	auditHandler := NewAuditHandler(deps.Trail)
	protected.Get("/audit-logs", adminOnly, auditHandler.List)
}

func corsOrigins(origins []string) string {
	if len(origins) == 0 {
		return "*"
	}
	return strings.Join(origins, ",")
}
