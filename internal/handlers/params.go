package handlers

import (
	"net/http"
	"strconv"

	"civicBack/internal/services"
)

// getParam returns a path or query parameter value regardless of whether the
// router stores it with a leading colon or not.
func getParam(r *http.Request, name string) string {
	if r == nil {
		return ""
	}
	if val := r.URL.Query().Get(":" + name); val != "" {
		return val
	}
	return r.URL.Query().Get(name)
}

func getIntParam(r *http.Request, name string) (int, error) {
	return strconv.Atoi(getParam(r, name))
}

// actorFromContext reads the authenticated caller the JWT middleware put on
// the request context.
func actorFromContext(r *http.Request) services.Actor {
	actor := services.Actor{}
	if id, ok := r.Context().Value("user_id").(int); ok {
		actor.ID = id
	}
	if role, ok := r.Context().Value("role").(string); ok {
		actor.Role = role
	}
	return actor
}
