package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/healthconnect/doctor-portal/config"
	"github.com/healthconnect/doctor-portal/model"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupMiddlewareDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_mw_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&model.Session{}); err != nil {
		t.Fatalf("failed to auto-migrate models: %v", err)
	}
	return db
}

func protectedRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(DatabaseMiddleware(db))
	r.Use(ValidateSessionToken())
	r.GET("/protected", func(c *gin.Context) {
		doctorID, _ := GetDoctorID(c)
		c.JSON(http.StatusOK, gin.H{"doctor_id": doctorID})
	})
	return r
}

func serveRequest(r *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORSMiddlewareSetsHeaders(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serveRequest(r, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "session-token")
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serveRequest(r, http.MethodOptions, "/", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestDatabaseMiddlewareInjectsDB(t *testing.T) {
	db := setupMiddlewareDB(t, "inject")

	r := gin.New()
	r.Use(DatabaseMiddleware(db))
	r.GET("/", func(c *gin.Context) {
		if GetDB(c) == nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})

	w := serveRequest(r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetDBWithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetDB(c))
}

func TestGetDoctorIDUnset(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	id, ok := GetDoctorID(c)
	assert.False(t, ok)
	assert.Zero(t, id)
}

func TestValidateSessionTokenMissing(t *testing.T) {
	db := setupMiddlewareDB(t, "missing")
	r := protectedRouter(db)

	w := serveRequest(r, http.MethodGet, "/protected", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestValidateSessionTokenUnknown(t *testing.T) {
	config.ResetRedisClientForTest()
	db := setupMiddlewareDB(t, "unknown")
	r := protectedRouter(db)

	w := serveRequest(r, http.MethodGet, "/protected", map[string]string{"session-token": "no-such-token"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestValidateSessionTokenDBFallback(t *testing.T) {
	config.ResetRedisClientForTest()
	db := setupMiddlewareDB(t, "fallback")

	session := model.Session{DoctorID: 7, SessionToken: "valid-token", ExpiresAt: time.Now().Add(time.Hour)}
	assert.NoError(t, db.Create(&session).Error)

	r := protectedRouter(db)
	w := serveRequest(r, http.MethodGet, "/protected", map[string]string{"session-token": "valid-token"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"doctor_id":7`)
}

func TestValidateSessionTokenExpired(t *testing.T) {
	config.ResetRedisClientForTest()
	db := setupMiddlewareDB(t, "expired")

	session := model.Session{DoctorID: 7, SessionToken: "expired-token", ExpiresAt: time.Now().Add(-time.Minute)}
	assert.NoError(t, db.Create(&session).Error)

	r := protectedRouter(db)
	w := serveRequest(r, http.MethodGet, "/protected", map[string]string{"session-token": "expired-token"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestValidateSessionTokenRedisFastPath(t *testing.T) {
	client, mock := redismock.NewClientMock()
	config.SetRedisClientForTest(client)
	t.Cleanup(config.ResetRedisClientForTest)

	mock.ExpectGet("session:redis-token").SetVal("9")

	db := setupMiddlewareDB(t, "redis")
	r := protectedRouter(db)
	w := serveRequest(r, http.MethodGet, "/protected", map[string]string{"session-token": "redis-token"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"doctor_id":9`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateSessionTokenRedisMissFallsBack(t *testing.T) {
	client, mock := redismock.NewClientMock()
	config.SetRedisClientForTest(client)
	t.Cleanup(config.ResetRedisClientForTest)

	mock.ExpectGet("session:db-token").RedisNil()

	db := setupMiddlewareDB(t, "redismiss")
	session := model.Session{DoctorID: 3, SessionToken: "db-token", ExpiresAt: time.Now().Add(time.Hour)}
	assert.NoError(t, db.Create(&session).Error)

	r := protectedRouter(db)
	w := serveRequest(r, http.MethodGet, "/protected", map[string]string{"session-token": "db-token"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"doctor_id":3`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
