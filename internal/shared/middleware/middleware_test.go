package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roleContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestRequireRolesAllowsMatchingRole(t *testing.T) {
	c, w := roleContext(t)
	c.Set("user_role", "ADMIN")

	RequireRoles("USER", "ADMIN")(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolesRejectsOtherRole(t *testing.T) {
	c, w := roleContext(t)
	c.Set("user_role", "USER")

	RequireAdmin()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRolesRejectsMissingRole(t *testing.T) {
	c, w := roleContext(t)

	RequireAdmin()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// A token whose role claim is absent marshals to a nil context value; the
// check must deny it, not panic the handler.
func TestRequireRolesRejectsNonStringRole(t *testing.T) {
	for _, role := range []interface{}{nil, 42} {
		c, w := roleContext(t)
		c.Set("user_role", role)

		require.NotPanics(t, func() { RequireAdmin()(c) })
		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusForbidden, w.Code)
	}
}
