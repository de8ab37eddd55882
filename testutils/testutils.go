package testutils

import (
	"encoding/json"
	"io"
	"log"
	"testing"

	"lead-capture-backend/db"
	"lead-capture-backend/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const TestJWTSecret = "test-secret"

// Envelope mirrors utils.Response with Data left raw for typed decoding.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func silentLogger() logger.Interface {
	return logger.New(
		log.New(io.Discard, "", log.LstdFlags),
		logger.Config{
			LogLevel: logger.Silent,
		},
	)
}

// SetupTestDB returns a gorm handle on a sqlmock connection speaking the postgres dialect.
func SetupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Erreur lors de la création de la connexion SQL mock: %s", err)
	}

	dialector := postgres.New(postgres.Config{
		Conn:       sqlDB,
		DriverName: "postgres",
	})

	cfg := db.Config()
	cfg.Logger = silentLogger()
	gormDB, err := gorm.Open(dialector, cfg)
	if err != nil {
		t.Fatalf("Erreur lors de l'ouverture de la connexion GORM: %s", err)
	}

	originalDB := db.DB
	db.DB = gormDB

	cleanup := func() {
		db.DB = originalDB
		sqlDB.Close()
	}

	return gormDB, mock, cleanup
}

// SetupSQLiteDB returns a migrated in-memory sqlite database private to the test.
// A single connection keeps every statement on the same in-memory database.
func SetupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := db.Config()
	cfg.Logger = silentLogger()
	gormDB, err := gorm.Open(sqlite.Open("file::memory:"), cfg)
	if err != nil {
		t.Fatalf("open sqlite: %s", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %s", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.Migrate(gormDB); err != nil {
		t.Fatalf("migrate sqlite: %s", err)
	}
	return gormDB
}

func SetupTestRouter() *gin.Engine {
	r := gin.New()
	return r
}

func InitTestMain() {
	gin.SetMode(gin.TestMode)
	utils.Logger.SetOutput(io.Discard)
}

// AdminToken returns a bearer header value accepted by middleware.AdminAuth(TestJWTSecret).
func AdminToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateAdminJWT(TestJWTSecret, "admin@test", 1)
	if err != nil {
		t.Fatalf("generate token: %s", err)
	}
	return "Bearer " + token
}
