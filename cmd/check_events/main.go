package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/queries/list_events"
	"github.com/light-bringer/ordertally-service/internal/app/catalog/repo"
	"github.com/light-bringer/ordertally-service/internal/config"
	"github.com/light-bringer/ordertally-service/internal/pkg/kvstore"
)

func main() {
	limit := flag.Int("limit", 10, "Number of events to show")
	eventType := flag.String("type", "", "Only show events of this type")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	store, err := kvstore.Open(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	req := &list_events.Request{Limit: *limit}
	if *eventType != "" {
		req.EventType = eventType
	}
	events, err := list_events.NewQuery(repo.NewActivityRepo(store)).Execute(ctx, req)
	if err != nil {
		log.Fatalf("Failed to list events: %v", err)
	}

	fmt.Printf("Events in the %s activity log:\n", store.Driver())
	for i, e := range events {
		fmt.Printf("%d. %s - %s (aggregate: %s, at: %s)\n", i+1, e.EventType, e.EventID, e.AggregateID, e.OccurredAt.Format("2006-01-02 15:04:05"))
	}

	if len(events) == 0 {
		fmt.Println("No events found!")
	} else {
		fmt.Printf("\nTotal: %d events\n", len(events))
	}
}
