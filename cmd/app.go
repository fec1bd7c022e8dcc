package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/frahmantamala/talento-plus/internal"
	"github.com/frahmantamala/talento-plus/internal/auth"
	authPostgres "github.com/frahmantamala/talento-plus/internal/auth/postgres"
	"github.com/frahmantamala/talento-plus/internal/core/events"
	"github.com/frahmantamala/talento-plus/internal/dimension"
	dimensionPostgres "github.com/frahmantamala/talento-plus/internal/dimension/postgres"
	"github.com/frahmantamala/talento-plus/internal/employee"
	employeePostgres "github.com/frahmantamala/talento-plus/internal/employee/postgres"
	"github.com/frahmantamala/talento-plus/internal/importer"
	"github.com/frahmantamala/talento-plus/internal/notification"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Dependencies holds the wired services shared by the server and the CLI
// commands.
type Dependencies struct {
	Config     *internal.Config
	DB         *sqlx.DB
	Gorm       *gorm.DB
	Bus        *events.EventBus
	Logger     *slog.Logger
	Dimensions *dimension.Service
	Accounts   *auth.Service
	Employees  *employee.Service
	Importer   *importer.Service
}

func initializeDependencies(config *internal.Config, logger *slog.Logger) (*Dependencies, error) {
	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	bus := events.NewEventBus(logger)
	if config.Mail.Enabled {
		notification.Subscribe(bus, notification.NewMailer(config.Mail), logger)
		logger.Info("welcome mail enabled", "smtp", config.Mail.Addr())
	}

	sec := config.Security
	tokens := auth.NewJWTTokenGenerator(sec.JWTAccessSecret, sec.JWTRefreshSecret, sec.AccessTokenDuration, sec.RefreshTokenDuration, sec.JWTIssuer)

	dimensions := dimension.NewService(dimensionPostgres.NewDimensionRepository(gormDB), logger)
	accounts := auth.NewService(authPostgres.NewAccountRepository(gormDB), nil, tokens, bus,
		auth.Options{BCryptCost: sec.BCryptCost, MinCredentialLength: sec.MinCredentialLength}, logger)

	employeeRepo := employeePostgres.NewEmployeeRepository(gormDB)
	employees := employee.NewService(employeeRepo, dimensions, accounts, employeePostgres.NewStatsReader(db), config.Import.EmailDomain, logger)
	accounts.SetProfileLookup(employees)

	return &Dependencies{
		Config:     config,
		DB:         db,
		Gorm:       gormDB,
		Bus:        bus,
		Logger:     logger,
		Dimensions: dimensions,
		Accounts:   accounts,
		Employees:  employees,
		Importer:   importer.NewService(employeeRepo, dimensions, accounts, bus, config.Import.EmailDomain, logger),
	}, nil
}

// Close waits for in-flight event handlers and releases the pool.
func (d *Dependencies) Close() {
	d.Bus.Wait()
	if err := d.DB.Close(); err != nil {
		d.Logger.Error("database close error", "error", err)
	}
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm runs gorm on top of the existing pool so both share connections.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
}

func splitOrigins(origins string) []string {
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
