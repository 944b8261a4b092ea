package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/epi-control/internal/application/audit"
	"github.com/jhoicas/epi-control/internal/application/auth"
	appcompliance "github.com/jhoicas/epi-control/internal/application/compliance"
	"github.com/jhoicas/epi-control/internal/application/issuance"
	"github.com/jhoicas/epi-control/internal/application/ports"
	"github.com/jhoicas/epi-control/internal/application/usecase"
	"github.com/jhoicas/epi-control/internal/domain/access"
	"github.com/jhoicas/epi-control/internal/domain/compliance"
	"github.com/jhoicas/epi-control/internal/domain/repository"
	"github.com/jhoicas/epi-control/internal/infrastructure/memory"
	"github.com/jhoicas/epi-control/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/epi-control/internal/infrastructure/pdf"
	"github.com/jhoicas/epi-control/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/epi-control/internal/interfaces/http"
	"github.com/jhoicas/epi-control/pkg/config"
	"github.com/jhoicas/epi-control/pkg/logger"
)

// stores repositórios e o TxRunner do backend escolhido.
type stores struct {
	tx        ports.TxRunner
	employees repository.EmployeeRepository
	equipment repository.EquipmentRepository
	issuances repository.IssuanceRepository
	trainings repository.TrainingRepository
	exams     repository.ExamRepository
	reports   repository.ReportRepository
	audit     repository.AuditRepository
	users     repository.UserRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicação")

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar armazenamento")
	}
	defer st.close()

	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = uuid.NewString()
		log.Warn().Msg("JWT_SECRET vazio: usando segredo aleatório, tokens não sobrevivem a reinícios")
	}

	policy := access.NewPolicy()
	m := metrics.New()
	clock := compliance.NewClock(cfg.Compliance.Location())
	trail := audit.NewTrail(st.audit, policy, m, log)

	coordinator := issuance.NewCoordinator(issuance.Deps{
		Tx:        st.tx,
		Employees: st.employees,
		Equipment: st.equipment,
		Issuances: st.issuances,
		Policy:    policy,
		Trail:     trail,
		Receipts:  infrapdf.NewMarotoReceiptGenerator(cfg.App.CompanyName),
		Metrics:   m,
		Clock:     clock,
		Log:       log,
	})
	scheduler := appcompliance.NewScheduler(st.tx, st.employees, st.trainings, st.exams, policy, trail, m, clock, log)
	authUC := auth.NewAuthUseCase(st.users, policy, trail, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	created, err := authUC.EnsureAdmin(ctx, cfg.App.BootstrapAdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("criar usuário admin inicial")
	}
	if created {
		log.Info().Msg("usuário admin inicial criado")
	}

	app := httpRouter.NewApp(httpRouter.ServerConfig{
		AppName:         cfg.App.Name,
		CORSOrigins:     cfg.HTTP.CORSOrigins,
		RateLimitMax:    cfg.HTTP.RateLimitMax,
		RateLimitWindow: cfg.HTTP.RateLimitWindow,
		BodyLimitBytes:  cfg.HTTP.BodyLimitBytes,
		SwaggerFile:     cfg.HTTP.SwaggerFile,
	}, httpRouter.RouterDeps{
		Employees:  usecase.NewEmployeeUseCase(st.employees, policy, trail, clock),
		Equipment:  usecase.NewEquipmentUseCase(st.equipment, policy, trail, clock),
		Reports:    usecase.NewReportUseCase(st.reports, st.employees, st.equipment, st.issuances, clock),
		Issuances:  coordinator,
		Compliance: scheduler,
		Trail:      trail,
		AuthUC:     authUC,
		Metrics:    m.Handler(),
		Log:        log,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}

// openStores conecta ao PostgreSQL (aplicando migrações se configurado) ou monta o store em memória.
func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.Store.Driver == "memory" {
		mem := memory.New()
		log.Warn().Msg("store em memória: dados são perdidos ao reiniciar")
		return &stores{
			tx:        mem,
			employees: mem.Employees(),
			equipment: mem.Equipment(),
			issuances: mem.Issuances(),
			trainings: mem.Trainings(),
			exams:     mem.Exams(),
			reports:   mem.Reports(),
			audit:     mem.Audit(),
			users:     mem.Users(),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.RunMigrations(ctx, pool, log.Component("migrations").Zerolog()); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &stores{
		tx:        postgres.NewTxRunner(pool, cfg.DB.TxIsolation),
		employees: postgres.NewEmployeeRepository(pool),
		equipment: postgres.NewEquipmentRepository(pool),
		issuances: postgres.NewIssuanceRepository(pool),
		trainings: postgres.NewTrainingRepository(pool),
		exams:     postgres.NewExamRepository(pool),
		reports:   postgres.NewReportRepository(pool),
		audit:     postgres.NewAuditRepository(pool),
		users:     postgres.NewUserRepository(pool),
		close:     pool.Close,
	}, nil
}
