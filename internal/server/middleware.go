package server

import "net/http"

const cronHeaderName = "X-Pagewatch-Cron"

// requireCronAuth admits requests carrying the scheduler header or the
// shared secret as a testKey query parameter.
func (s *Server) requireCronAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(cronHeaderName) == "1" {
			next.ServeHTTP(w, r)
			return
		}
		if s.cfg.CronSecret != "" && r.URL.Query().Get("testKey") == s.cfg.CronSecret {
			next.ServeHTTP(w, r)
			return
		}
		s.logger.Warn().Str("path", r.URL.Path).Str("remote", r.RemoteAddr).Msg("Unauthorized cron request")
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	})
}
