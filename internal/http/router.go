package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/campus-dining-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. admin may be nil, in which case admin routes are absent.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/menu", handler.Menu)
	mux.HandleFunc("/menu/board", handler.Board)
	mux.HandleFunc("/menu/next", handler.Next)
	mux.HandleFunc("/menu/weeks", handler.Weeks)
	mux.Handle("/", handler)
	if admin != nil {
		mux.HandleFunc("/admin/menu/refresh", admin.RefreshMenu)
	}
	return mux
}
