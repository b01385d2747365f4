package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
)

func testContext(target string, header map[string]string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		c.Request.Header.Set(k, v)
	}
	return c
}

func TestExpectedVersion(t *testing.T) {
	cases := []struct {
		header string
		want   int64
		ok     bool
	}{
		{"", -1, true},
		{"*", -1, true},
		{`"4"`, 4, true},
		{`W/"7"`, 7, true},
		{"12", 12, true},
		{`"abc"`, 0, false},
		{`"-2"`, 0, false},
	}

	for _, tc := range cases {
		c := testContext("/", map[string]string{"If-Match": tc.header})
		got, ok := expectedVersion(c)
		assert.Equal(t, tc.ok, ok, tc.header)
		if tc.ok {
			assert.Equal(t, tc.want, got, tc.header)
		}
	}

	assert.Equal(t, `"9"`, etag(9))
}

func TestSplitServices(t *testing.T) {
	assert.Equal(t, []string{"haircut", "beard"}, splitServices(" haircut, ,beard,"))
	assert.Empty(t, splitServices(""))
}

func TestProviderScope(t *testing.T) {
	c := testContext("/?provider_id=p2", nil)
	c.Set(middleware.ContextUserID, "p1")
	c.Set(middleware.ContextUserRole, domain.RoleProvider)
	assert.Equal(t, "p1", providerScope(c))

	c = testContext("/?provider_id=p2", nil)
	c.Set(middleware.ContextUserID, "root")
	c.Set(middleware.ContextUserRole, domain.RoleAdmin)
	assert.Equal(t, "p2", providerScope(c))
	assert.Equal(t, "root", actorFrom(c).ID)
}
