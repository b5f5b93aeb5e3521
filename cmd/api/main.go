package main

import (
	"log"
	"net/http"

	"github.com/punchamoorthee/paypeer/internal/api"
	"github.com/punchamoorthee/paypeer/internal/config"
	"github.com/punchamoorthee/paypeer/internal/scenario"
	"github.com/punchamoorthee/paypeer/internal/service"
	"github.com/punchamoorthee/paypeer/internal/session"
	"github.com/punchamoorthee/paypeer/internal/store"
	"github.com/shopspring/decimal"
)

func main() {
	// Amounts serialize as JSON numbers, matching the wire contract.
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	sc := scenario.Default()
	if cfg.ScenarioPath != "" {
		sc, err = scenario.FromFile(cfg.ScenarioPath)
		if err != nil {
			log.Fatalf("Unable to load scenario: %v", err)
		}
		log.Printf("Loaded scenario from %s", cfg.ScenarioPath)
	}

	st := store.NewState()
	sess := session.New()
	sc.Apply(st, sess)

	// Initialize Layers
	accounts := service.NewAccounts(st, sess)
	ledger := service.NewLedger(st)
	transactions := service.NewTransactions(st, ledger)
	notifications := service.NewNotifications(st)
	requests := service.NewRequests(st, transactions, notifications)

	handler := api.NewHandler(sess, api.Services{
		Accounts:      accounts,
		Ledger:        ledger,
		Transactions:  transactions,
		Requests:      requests,
		Notifications: notifications,
	}, func() {
		sc.Apply(st, sess)
	})

	log.Printf("Server starting on :%s (%s)", cfg.Port, cfg.Env)
	if err := http.ListenAndServe(":"+cfg.Port, handler.Router()); err != nil {
		log.Fatal(err)
	}
}
