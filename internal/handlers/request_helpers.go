package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
)

// actorFrom reads the identity the auth middleware stored on the context.
func actorFrom(c *gin.Context) ucBooking.Actor {
	id, role := middleware.Identity(c)
	return ucBooking.Actor{ID: id, Role: role}
}

// providerScope is the caller itself for providers. Admins may name another
// provider with ?provider_id=.
func providerScope(c *gin.Context) string {
	id, role := middleware.Identity(c)
	if role == domain.RoleAdmin {
		if p := c.Query("provider_id"); p != "" {
			return p
		}
	}
	return id
}

// splitServices turns "haircut,beard" into its names, dropping blanks.
func splitServices(raw string) []string {
	out := []string{}
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// --------------------------------------------------
// ETag / If-Match on availability versions
// --------------------------------------------------

func etag(version int64) string {
	return fmt.Sprintf("%q", strconv.FormatInt(version, 10))
}

// expectedVersion parses If-Match. A missing header or "*" disables the
// check and yields -1.
func expectedVersion(c *gin.Context) (int64, bool) {
	raw := strings.TrimSpace(c.GetHeader("If-Match"))
	if raw == "" || raw == "*" {
		return -1, true
	}

	raw = strings.TrimPrefix(raw, "W/")
	raw = strings.Trim(raw, `"`)

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
