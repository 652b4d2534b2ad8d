package handler

import (
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Amanastel/TicketFlow/pkg/cache"
	"github.com/Amanastel/TicketFlow/pkg/db"
)

// healthResponse is the wire shape for GET /health (SPEC_FULL.md §6):
// backend_ok folds the teacher's separate postgres/redis service checks into
// a single boolean, with per-backend detail kept in a log line instead of
// the response body since the spec fixes the response shape.
type healthResponse struct {
	Status    string `json:"status"`
	BackendOK bool   `json:"backend_ok"`
}

// NewHealthHandler returns an HTTP handler that checks PG and Redis
// connectivity, grounded on the teacher's healthHandler closure in
// cmd/server/main.go.
func NewHealthHandler(pgPool *pgxpool.Pool, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		pgErr := db.HealthCheck(ctx, pgPool)
		redisErr := cache.HealthCheck(ctx, redisClient)

		ok := pgErr == nil && redisErr == nil
		resp := healthResponse{BackendOK: ok}
		if ok {
			resp.Status = "ok"
			writeJSON(w, http.StatusOK, resp)
			return
		}

		resp.Status = "degraded"
		logBackendFailure(pgErr, redisErr)
		writeJSON(w, http.StatusServiceUnavailable, resp)
	}
}

func logBackendFailure(pgErr, redisErr error) {
	if pgErr != nil {
		log.Printf("[health] postgres unhealthy: %v", pgErr)
	}
	if redisErr != nil {
		log.Printf("[health] redis unhealthy: %v", redisErr)
	}
}
