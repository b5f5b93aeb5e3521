// Package api exposes the simulator over HTTP for agent harnesses. Each
// route is one operation with the uniform status-flag response contract;
// the handlers resolve the ambient session and thread the acting identity
// into the services explicitly.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/punchamoorthee/paypeer/internal/service"
	"github.com/punchamoorthee/paypeer/internal/session"
)

// Services bundles the engines the handlers drive.
type Services struct {
	Accounts      *service.Accounts
	Ledger        *service.Ledger
	Transactions  *service.Transactions
	Requests      *service.Requests
	Notifications *service.Notifications
}

type Handler struct {
	sess  *session.Session
	svc   Services
	reset func()
}

// NewHandler wires the handlers to the session and services. reset
// reloads the configured scenario; test harnesses call it between
// episodes.
func NewHandler(sess *session.Session, svc Services, reset func()) *Handler {
	return &Handler{sess: sess, svc: svc, reset: reset}
}

// Router builds the full route table, including /health and /metrics.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	v1 := r.PathPrefix("/api/v1").Subrouter()

	v1.HandleFunc("/session/login", h.Login).Methods("POST")
	v1.HandleFunc("/session/logout", h.Logout).Methods("POST")

	v1.HandleFunc("/account", h.AccountInfo).Methods("GET")
	v1.HandleFunc("/account/name", h.UpdateAccountName).Methods("PUT")

	v1.HandleFunc("/friends", h.ShowFriends).Methods("GET")
	v1.HandleFunc("/friends", h.AddFriend).Methods("POST")
	v1.HandleFunc("/friends/{email}", h.RemoveFriend).Methods("DELETE")

	v1.HandleFunc("/cards", h.ShowCards).Methods("GET")
	v1.HandleFunc("/cards", h.AddCard).Methods("POST")
	v1.HandleFunc("/cards/{id}", h.DeleteCard).Methods("DELETE")

	v1.HandleFunc("/balance", h.ShowBalance).Methods("GET")
	v1.HandleFunc("/balance/add", h.AddMoney).Methods("POST")
	v1.HandleFunc("/balance/withdraw", h.WithdrawMoney).Methods("POST")

	v1.HandleFunc("/transactions", h.SendMoney).Methods("POST")
	v1.HandleFunc("/transactions", h.ShowTransactions).Methods("GET")
	v1.HandleFunc("/transactions/{id}", h.ShowTransaction).Methods("GET")
	v1.HandleFunc("/transactions/{id}", h.UpdateTransaction).Methods("PATCH")
	v1.HandleFunc("/transactions/{id}/like", h.LikeTransaction).Methods("POST")
	v1.HandleFunc("/transactions/{id}/comments", h.CommentTransaction).Methods("POST")

	v1.HandleFunc("/payment-requests", h.RequestMoney).Methods("POST")
	v1.HandleFunc("/payment-requests", h.ShowRequests).Methods("GET")
	v1.HandleFunc("/payment-requests/{id}", h.ShowRequest).Methods("GET")
	v1.HandleFunc("/payment-requests/{id}/approve", h.ApproveRequest).Methods("POST")
	v1.HandleFunc("/payment-requests/{id}/deny", h.DenyRequest).Methods("POST")
	v1.HandleFunc("/payment-requests/{id}/remind", h.RemindRequest).Methods("POST")
	v1.HandleFunc("/payment-requests/{id}", h.CancelRequest).Methods("DELETE")

	v1.HandleFunc("/notifications", h.ShowNotifications).Methods("GET")
	v1.HandleFunc("/notifications/unread-count", h.UnreadCount).Methods("GET")
	v1.HandleFunc("/notifications/read", h.MarkNotifications).Methods("PUT")
	v1.HandleFunc("/notifications", h.DeleteNotifications).Methods("DELETE")

	v1.HandleFunc("/reset", h.Reset).Methods("POST")

	return r
}

// actor is the ambient identity; empty when nobody is logged in, which
// the services reject as NotAuthenticated.
func (h *Handler) actor() string {
	email, _ := h.sess.Current()
	return email
}

// track times one operation; use as `defer track(op)()`.
func track(op string) func() {
	timer := prometheus.NewTimer(opDuration.WithLabelValues(op))
	return func() { timer.ObserveDuration() }
}

// decode parses a JSON request body.
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed JSON body", service.ErrInvalidArgument)
	}
	return nil
}

// pathID parses the {id} route variable.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id must be an integer", service.ErrInvalidArgument)
	}
	return id, nil
}
