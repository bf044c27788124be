package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterRegister(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	r.Register(RegistrarFunc(func(rg *gin.RouterGroup) {}))

	assert.Len(t, r.registrars, 1)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	r.Register(RegistrarFunc(func(rg *gin.RouterGroup) {
		rg.GET("/balances", func(c *gin.Context) {
			c.String(http.StatusOK, "balances")
		})
	}))
	r.Setup()

	req := httptest.NewRequest("GET", "/api/v1/balances", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "balances", w.Body.String())
}

func TestRouterSetupReturnsGroup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	api := r.Setup()
	api.GET("/late", func(c *gin.Context) {
		c.String(http.StatusOK, "late")
	})

	req := httptest.NewRequest("GET", "/api/v1/late", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterMultipleRegistrars(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	transactions := RegistrarFunc(func(rg *gin.RouterGroup) {
		rg.POST("/transactions", func(c *gin.Context) {
			c.String(http.StatusCreated, "appended")
		})
	})
	variances := RegistrarFunc(func(rg *gin.RouterGroup) {
		rg.GET("/variances", func(c *gin.Context) {
			c.String(http.StatusOK, "variances")
		})
	})

	r.Register(transactions, variances).Setup()

	req1 := httptest.NewRequest("POST", "/api/v1/transactions", nil)
	w1 := httptest.NewRecorder()
	engine.ServeHTTP(w1, req1)
	assert.Equal(t, http.StatusCreated, w1.Code)

	req2 := httptest.NewRequest("GET", "/api/v1/variances", nil)
	w2 := httptest.NewRecorder()
	engine.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusOK, w2.Code)
}

func TestRouterChainedRegister(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	r.Register(RegistrarFunc(func(rg *gin.RouterGroup) {
		rg.GET("/a", func(c *gin.Context) { c.String(http.StatusOK, "a") })
	})).Register(RegistrarFunc(func(rg *gin.RouterGroup) {
		rg.GET("/b", func(c *gin.Context) { c.String(http.StatusOK, "b") })
	})).Setup()

	for _, path := range []string{"/api/v1/a", "/api/v1/b"} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "route %s should be mounted", path)
	}
}
