package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// Login establishes the active identity and issues an access token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	defer track("login_user")()

	var req struct {
		Email string `json:"email"`
	}
	if err := decode(r, &req); err != nil {
		h.fail(w, "login_user", "login_status", err, map[string]any{"account_info": map[string]any{}})
		return
	}
	token, user, err := h.svc.Accounts.Login(req.Email)
	if err != nil {
		h.fail(w, "login_user", "login_status", err, map[string]any{"account_info": map[string]any{}})
		return
	}
	h.ok(w, "login_user", "login_status", map[string]any{
		"access_token": token,
		"account_info": user,
	})
}

// Logout clears the active identity; always succeeds.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	defer track("logout_user")()
	h.svc.Accounts.Logout()
	h.ok(w, "logout_user", "logout_status", nil)
}

func (h *Handler) AccountInfo(w http.ResponseWriter, r *http.Request) {
	defer track("show_my_account_info")()

	user, err := h.svc.Accounts.Info(h.actor())
	if err != nil {
		h.fail(w, "show_my_account_info", "account_status", err, map[string]any{"account_info": map[string]any{}})
		return
	}
	h.ok(w, "show_my_account_info", "account_status", map[string]any{"account_info": user})
}

func (h *Handler) UpdateAccountName(w http.ResponseWriter, r *http.Request) {
	defer track("update_my_account_name")()

	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := decode(r, &req); err != nil {
		h.fail(w, "update_my_account_name", "update_status", err, map[string]any{"account_info": map[string]any{}})
		return
	}
	user, err := h.svc.Accounts.UpdateName(h.actor(), req.FirstName, req.LastName)
	if err != nil {
		h.fail(w, "update_my_account_name", "update_status", err, map[string]any{"account_info": map[string]any{}})
		return
	}
	h.ok(w, "update_my_account_name", "update_status", map[string]any{"account_info": user})
}

func (h *Handler) ShowFriends(w http.ResponseWriter, r *http.Request) {
	defer track("show_my_friends")()

	friends, err := h.svc.Accounts.Friends(h.actor())
	if err != nil {
		h.fail(w, "show_my_friends", "friends_status", err, map[string]any{"friends": []any{}})
		return
	}
	h.ok(w, "show_my_friends", "friends_status", map[string]any{"friends": friends})
}

func (h *Handler) AddFriend(w http.ResponseWriter, r *http.Request) {
	defer track("add_a_friend")()

	var req struct {
		Email string `json:"email"`
	}
	if err := decode(r, &req); err != nil {
		h.fail(w, "add_a_friend", "add_status", err, nil)
		return
	}
	if err := h.svc.Accounts.AddFriend(h.actor(), req.Email); err != nil {
		h.fail(w, "add_a_friend", "add_status", err, nil)
		return
	}
	h.ok(w, "add_a_friend", "add_status", nil)
}

func (h *Handler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	defer track("remove_a_friend")()

	email := mux.Vars(r)["email"]
	if err := h.svc.Accounts.RemoveFriend(h.actor(), email); err != nil {
		h.fail(w, "remove_a_friend", "remove_status", err, nil)
		return
	}
	h.ok(w, "remove_a_friend", "remove_status", nil)
}

func (h *Handler) ShowCards(w http.ResponseWriter, r *http.Request) {
	defer track("show_my_payment_cards")()

	cards, err := h.svc.Accounts.Cards(h.actor())
	if err != nil {
		h.fail(w, "show_my_payment_cards", "cards_status", err, map[string]any{"payment_cards": []any{}})
		return
	}
	h.ok(w, "show_my_payment_cards", "cards_status", map[string]any{"payment_cards": cards})
}

func (h *Handler) AddCard(w http.ResponseWriter, r *http.Request) {
	defer track("add_a_payment_card")()

	var req struct {
		CardName    string `json:"card_name"`
		OwnerName   string `json:"owner_name"`
		CardNumber  int64  `json:"card_number"`
		ExpiryYear  int    `json:"expiry_year"`
		ExpiryMonth int    `json:"expiry_month"`
		CVV         int    `json:"cvv"`
	}
	if err := decode(r, &req); err != nil {
		h.fail(w, "add_a_payment_card", "add_status", err, map[string]any{"payment_card": map[string]any{}})
		return
	}
	card, err := h.svc.Accounts.AddCard(h.actor(), req.CardName, req.OwnerName, req.CardNumber, req.ExpiryYear, req.ExpiryMonth, req.CVV)
	if err != nil {
		h.fail(w, "add_a_payment_card", "add_status", err, map[string]any{"payment_card": map[string]any{}})
		return
	}
	h.ok(w, "add_a_payment_card", "add_status", map[string]any{"payment_card": card})
}

func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	defer track("delete_a_payment_card")()

	id, err := pathID(r)
	if err == nil {
		err = h.svc.Accounts.DeleteCard(h.actor(), id)
	}
	if err != nil {
		h.fail(w, "delete_a_payment_card", "delete_status", err, nil)
		return
	}
	h.ok(w, "delete_a_payment_card", "delete_status", nil)
}

func (h *Handler) ShowBalance(w http.ResponseWriter, r *http.Request) {
	defer track("show_my_balance")()

	balance, err := h.svc.Ledger.Balance(h.actor())
	if err != nil {
		h.fail(w, "show_my_balance", "balance_status", err, map[string]any{"balance": decimal.Zero})
		return
	}
	h.ok(w, "show_my_balance", "balance_status", map[string]any{"balance": balance})
}

func (h *Handler) AddMoney(w http.ResponseWriter, r *http.Request) {
	defer track("add_money_to_my_balance")()

	var req struct {
		Amount decimal.Decimal `json:"amount"`
		CardID int64           `json:"card_id"`
	}
	if err := decode(r, &req); err != nil {
		h.fail(w, "add_money_to_my_balance", "add_status", err, map[string]any{"balance": decimal.Zero})
		return
	}
	balance, err := h.svc.Ledger.AddMoney(h.actor(), req.Amount.Round(2), req.CardID)
	if err != nil {
		h.fail(w, "add_money_to_my_balance", "add_status", err, map[string]any{"balance": decimal.Zero})
		return
	}
	h.ok(w, "add_money_to_my_balance", "add_status", map[string]any{"balance": balance})
}

func (h *Handler) WithdrawMoney(w http.ResponseWriter, r *http.Request) {
	defer track("withdraw_money_from_my_balance")()

	var req struct {
		Amount decimal.Decimal `json:"amount"`
		CardID int64           `json:"card_id"`
	}
	if err := decode(r, &req); err != nil {
		h.fail(w, "withdraw_money_from_my_balance", "withdraw_status", err, map[string]any{"balance": decimal.Zero})
		return
	}
	balance, err := h.svc.Ledger.WithdrawMoney(h.actor(), req.Amount.Round(2), req.CardID)
	if err != nil {
		h.fail(w, "withdraw_money_from_my_balance", "withdraw_status", err, map[string]any{"balance": decimal.Zero})
		return
	}
	h.ok(w, "withdraw_money_from_my_balance", "withdraw_status", map[string]any{"balance": balance})
}
