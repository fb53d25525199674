package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func ctxWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestParsePaginationDefaults(t *testing.T) {
	p := parsePagination(ctxWithQuery(""))
	if p.Offset != 0 || p.Limit != defaultLimit {
		t.Fatalf("unexpected defaults: %+v", p)
	}
}

func TestParsePaginationClampsLimit(t *testing.T) {
	p := parsePagination(ctxWithQuery("limit=999"))
	if p.Limit != maxLimit {
		t.Fatalf("limit not clamped: %+v", p)
	}
}

func TestParsePaginationRejectsNegatives(t *testing.T) {
	p := parsePagination(ctxWithQuery("offset=-5&limit=-1"))
	if p.Offset != 0 || p.Limit != defaultLimit {
		t.Fatalf("negative values should fall back: %+v", p)
	}
}

func TestParsePaginationZeroLimitAllowed(t *testing.T) {
	p := parsePagination(ctxWithQuery("limit=0"))
	if p.Limit != 0 {
		t.Fatalf("zero limit should pass through: %+v", p)
	}
}

func TestIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, err := idParam(c)
	if err != nil || id != 42 {
		t.Fatalf("id parse failed: %d, %v", id, err)
	}

	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	if _, err := idParam(c); err == nil {
		t.Fatalf("non-numeric id should fail")
	}
}
