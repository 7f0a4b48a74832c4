package app

import (
	"time"

	"go_crm_backend/db"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// TouchLastSeen updates users.last_seen_at for authenticated traffic,
// throttled through Redis so it costs at most one write per interval.
func TouchLastSeen(repo *db.Repo, rdb *redis.Client, throttle time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := GetUserID(c)
		if uid == "" {
			c.Next()
			return
		}

		key := "crm:user:lastseen:" + uid
		if ok, _ := rdb.SetNX(c, key, "1", throttle).Result(); ok {
			_ = repo.TouchUserSeen(c, uid) // best effort, never blocks the request
		}
		c.Next()
	}
}
