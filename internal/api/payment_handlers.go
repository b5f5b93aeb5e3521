package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/punchamoorthee/paypeer/internal/domain"
	"github.com/punchamoorthee/paypeer/internal/service"
	"github.com/shopspring/decimal"
)

func (h *Handler) SendMoney(w http.ResponseWriter, r *http.Request) {
	defer track("send_money")()

	var req struct {
		Receiver    string          `json:"receiver"`
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
		Private     bool            `json:"private"`
		CardID      *int64          `json:"card_id"`
	}
	if err := decode(r, &req); err != nil {
		h.fail(w, "send_money", "create_status", err, map[string]any{"transaction": map[string]any{}})
		return
	}
	tx, err := h.svc.Transactions.Send(h.actor(), req.Receiver, req.Amount.Round(2), req.Description, req.Private, req.CardID)
	if err != nil {
		h.fail(w, "send_money", "create_status", err, map[string]any{"transaction": map[string]any{}})
		return
	}
	h.ok(w, "send_money", "create_status", map[string]any{"transaction": tx})
}

func (h *Handler) ShowTransactions(w http.ResponseWriter, r *http.Request) {
	defer track("show_my_transactions")()

	empty := map[string]any{"transactions": []any{}, "total": 0}
	q, err := transactionQuery(r.URL.Query())
	if err != nil {
		h.fail(w, "show_my_transactions", "transactions_status", err, empty)
		return
	}
	txs, total, err := h.svc.Transactions.Query(h.actor(), q)
	if err != nil {
		h.fail(w, "show_my_transactions", "transactions_status", err, empty)
		return
	}
	if txs == nil {
		txs = []*domain.Transaction{}
	}
	h.ok(w, "show_my_transactions", "transactions_status", map[string]any{
		"transactions": txs,
		"total":        total,
	})
}

func (h *Handler) ShowTransaction(w http.ResponseWriter, r *http.Request) {
	defer track("show_a_transaction")()

	id, err := pathID(r)
	var tx *domain.Transaction
	if err == nil {
		tx, err = h.svc.Transactions.Get(h.actor(), id)
	}
	if err != nil {
		h.fail(w, "show_a_transaction", "transaction_status", err, map[string]any{"transaction_details": map[string]any{}})
		return
	}
	h.ok(w, "show_a_transaction", "transaction_status", map[string]any{"transaction_details": tx})
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	defer track("update_a_transaction")()

	var req struct {
		Description *string `json:"description"`
		Private     *bool   `json:"private"`
	}
	id, err := pathID(r)
	if err == nil {
		err = decode(r, &req)
	}
	var tx *domain.Transaction
	if err == nil {
		tx, err = h.svc.Transactions.Update(h.actor(), id, req.Description, req.Private)
	}
	if err != nil {
		h.fail(w, "update_a_transaction", "update_status", err, map[string]any{"transaction": map[string]any{}})
		return
	}
	h.ok(w, "update_a_transaction", "update_status", map[string]any{"transaction": tx})
}

func (h *Handler) LikeTransaction(w http.ResponseWriter, r *http.Request) {
	defer track("like_a_transaction")()

	id, err := pathID(r)
	var tx *domain.Transaction
	if err == nil {
		tx, err = h.svc.Transactions.Like(h.actor(), id)
	}
	if err != nil {
		h.fail(w, "like_a_transaction", "like_status", err, map[string]any{"transaction": map[string]any{}})
		return
	}
	h.ok(w, "like_a_transaction", "like_status", map[string]any{"transaction": tx})
}

func (h *Handler) CommentTransaction(w http.ResponseWriter, r *http.Request) {
	defer track("comment_on_a_transaction")()

	var req struct {
		Text string `json:"text"`
	}
	id, err := pathID(r)
	if err == nil {
		err = decode(r, &req)
	}
	var tx *domain.Transaction
	if err == nil {
		tx, err = h.svc.Transactions.Comment(h.actor(), id, req.Text)
	}
	if err != nil {
		h.fail(w, "comment_on_a_transaction", "comment_status", err, map[string]any{"transaction": map[string]any{}})
		return
	}
	h.ok(w, "comment_on_a_transaction", "comment_status", map[string]any{"transaction": tx})
}

func (h *Handler) RequestMoney(w http.ResponseWriter, r *http.Request) {
	defer track("request_money")()

	var req struct {
		ToUser      string          `json:"to_user"`
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
		Private     bool            `json:"private"`
	}
	if err := decode(r, &req); err != nil {
		h.fail(w, "request_money", "create_status", err, map[string]any{"payment_request": map[string]any{}})
		return
	}
	pr, err := h.svc.Requests.Create(h.actor(), req.ToUser, req.Amount.Round(2), req.Description, req.Private)
	if err != nil {
		h.fail(w, "request_money", "create_status", err, map[string]any{"payment_request": map[string]any{}})
		return
	}
	h.ok(w, "request_money", "create_status", map[string]any{"payment_request": pr})
}

func (h *Handler) ShowRequests(w http.ResponseWriter, r *http.Request) {
	defer track("show_my_payment_requests")()

	reqs, err := h.svc.Requests.ListMine(h.actor())
	if err != nil {
		h.fail(w, "show_my_payment_requests", "requests_status", err, map[string]any{"payment_requests": []any{}})
		return
	}
	if reqs == nil {
		reqs = []*domain.PaymentRequest{}
	}
	h.ok(w, "show_my_payment_requests", "requests_status", map[string]any{"payment_requests": reqs})
}

func (h *Handler) ShowRequest(w http.ResponseWriter, r *http.Request) {
	defer track("show_a_payment_request")()

	id, err := pathID(r)
	var pr *domain.PaymentRequest
	if err == nil {
		pr, err = h.svc.Requests.Get(h.actor(), id)
	}
	if err != nil {
		h.fail(w, "show_a_payment_request", "request_status", err, map[string]any{"payment_request": map[string]any{}})
		return
	}
	h.ok(w, "show_a_payment_request", "request_status", map[string]any{"payment_request": pr})
}

func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	defer track("approve_a_payment_request")()

	// The body is optional; absent means balance-funded.
	var req struct {
		CardID *int64 `json:"card_id"`
	}
	id, err := pathID(r)
	if err == nil && r.ContentLength != 0 {
		err = decode(r, &req)
	}
	var pr *domain.PaymentRequest
	if err == nil {
		pr, err = h.svc.Requests.Approve(h.actor(), id, req.CardID)
	}
	if err != nil {
		h.fail(w, "approve_a_payment_request", "approve_status", err, map[string]any{"payment_request": map[string]any{}})
		return
	}
	h.ok(w, "approve_a_payment_request", "approve_status", map[string]any{"payment_request": pr})
}

func (h *Handler) DenyRequest(w http.ResponseWriter, r *http.Request) {
	defer track("deny_a_payment_request")()

	id, err := pathID(r)
	var pr *domain.PaymentRequest
	if err == nil {
		pr, err = h.svc.Requests.Deny(h.actor(), id)
	}
	if err != nil {
		h.fail(w, "deny_a_payment_request", "deny_status", err, map[string]any{"payment_request": map[string]any{}})
		return
	}
	h.ok(w, "deny_a_payment_request", "deny_status", map[string]any{"payment_request": pr})
}

func (h *Handler) RemindRequest(w http.ResponseWriter, r *http.Request) {
	defer track("remind_a_payment_request")()

	id, err := pathID(r)
	if err == nil {
		_, err = h.svc.Requests.Remind(h.actor(), id)
	}
	if err != nil {
		h.fail(w, "remind_a_payment_request", "remind_status", err, nil)
		return
	}
	h.ok(w, "remind_a_payment_request", "remind_status", nil)
}

func (h *Handler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	defer track("cancel_a_payment_request")()

	id, err := pathID(r)
	if err == nil {
		err = h.svc.Requests.Cancel(h.actor(), id)
	}
	if err != nil {
		h.fail(w, "cancel_a_payment_request", "cancel_status", err, nil)
		return
	}
	h.ok(w, "cancel_a_payment_request", "cancel_status", nil)
}

func (h *Handler) ShowNotifications(w http.ResponseWriter, r *http.Request) {
	defer track("show_my_notifications")()

	empty := map[string]any{"notifications": []any{}, "total": 0}
	q, err := notificationQuery(r.URL.Query())
	if err != nil {
		h.fail(w, "show_my_notifications", "notifications_status", err, empty)
		return
	}
	notes, total, err := h.svc.Notifications.Query(h.actor(), q)
	if err != nil {
		h.fail(w, "show_my_notifications", "notifications_status", err, empty)
		return
	}
	if notes == nil {
		notes = []*domain.Notification{}
	}
	h.ok(w, "show_my_notifications", "notifications_status", map[string]any{
		"notifications": notes,
		"total":         total,
	})
}

func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	defer track("show_my_unread_notification_count")()

	count, err := h.svc.Notifications.UnreadCount(h.actor())
	if err != nil {
		h.fail(w, "show_my_unread_notification_count", "count_status", err, map[string]any{"unread_count": 0})
		return
	}
	h.ok(w, "show_my_unread_notification_count", "count_status", map[string]any{"unread_count": count})
}

func (h *Handler) MarkNotifications(w http.ResponseWriter, r *http.Request) {
	defer track("mark_my_notifications")()

	// Absent body or field means mark as read.
	var req struct {
		Read *bool `json:"read"`
	}
	var err error
	if r.ContentLength != 0 {
		err = decode(r, &req)
	}
	read := true
	if req.Read != nil {
		read = *req.Read
	}
	var updated int
	if err == nil {
		updated, err = h.svc.Notifications.MarkAll(h.actor(), read)
	}
	if err != nil {
		h.fail(w, "mark_my_notifications", "mark_status", err, map[string]any{"updated": 0})
		return
	}
	h.ok(w, "mark_my_notifications", "mark_status", map[string]any{"updated": updated})
}

func (h *Handler) DeleteNotifications(w http.ResponseWriter, r *http.Request) {
	defer track("delete_my_notifications")()

	deleted, err := h.svc.Notifications.PurgeAll(h.actor())
	if err != nil {
		h.fail(w, "delete_my_notifications", "delete_status", err, map[string]any{"deleted": 0})
		return
	}
	h.ok(w, "delete_my_notifications", "delete_status", map[string]any{"deleted": deleted})
}

// Reset reloads the configured scenario, discarding all state.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	defer track("reset_scenario")()
	h.reset()
	h.ok(w, "reset_scenario", "reset_status", nil)
}

// transactionQuery maps URL parameters onto the engine's query type.
// Missing parameters fall back to the API defaults: any direction, newest
// first, first page of 50.
func transactionQuery(v url.Values) (domain.TransactionQuery, error) {
	q := domain.TransactionQuery{
		Counterparty:  v.Get("counterparty"),
		Description:   v.Get("description"),
		CreatedAfter:  v.Get("created_after"),
		CreatedBefore: v.Get("created_before"),
		Direction:     domain.DirectionAny,
		SortBy:        domain.SortByCreatedAt,
		Order:         domain.SortDesc,
		Page:          domain.Page{Number: 1, Size: 50},
	}
	if s := v.Get("direction"); s != "" {
		q.Direction = domain.Direction(s)
	}
	if s := v.Get("sort_by"); s != "" {
		q.SortBy = domain.SortField(s)
	}
	if s := v.Get("sort_order"); s != "" {
		q.Order = domain.SortOrder(s)
	}

	var err error
	if q.MinLikes, err = queryInt(v, "min_likes"); err != nil {
		return q, err
	}
	if q.MaxLikes, err = queryInt(v, "max_likes"); err != nil {
		return q, err
	}
	if q.MinAmount, err = queryDecimal(v, "min_amount"); err != nil {
		return q, err
	}
	if q.MaxAmount, err = queryDecimal(v, "max_amount"); err != nil {
		return q, err
	}
	if q.Private, err = queryBool(v, "private"); err != nil {
		return q, err
	}
	if q.Page, err = queryPage(v, q.Page); err != nil {
		return q, err
	}
	return q, nil
}

func notificationQuery(v url.Values) (domain.NotificationQuery, error) {
	q := domain.NotificationQuery{Page: domain.Page{Number: 1, Size: 50}}
	var err error
	if q.Read, err = queryBool(v, "read"); err != nil {
		return q, err
	}
	if q.Page, err = queryPage(v, q.Page); err != nil {
		return q, err
	}
	return q, nil
}

func queryPage(v url.Values, def domain.Page) (domain.Page, error) {
	page := def
	if n, err := queryInt(v, "page"); err != nil {
		return page, err
	} else if n != nil {
		page.Number = *n
	}
	if n, err := queryInt(v, "page_size"); err != nil {
		return page, err
	} else if n != nil {
		page.Size = *n
	}
	return page, nil
}

func queryInt(v url.Values, key string) (*int, error) {
	s := v.Get(key)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", service.ErrInvalidArgument, key)
	}
	return &n, nil
}

func queryDecimal(v url.Values, key string) (*decimal.Decimal, error) {
	s := v.Get(key)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", service.ErrInvalidArgument, key)
	}
	return &d, nil
}

func queryBool(v url.Values, key string) (*bool, error) {
	s := v.Get(key)
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be true or false", service.ErrInvalidArgument, key)
	}
	return &b, nil
}
