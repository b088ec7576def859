package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/spanner"
	"github.com/spf13/pflag"

	"github.com/light-bringer/catalog-search-service/internal/app/catalog/queries/list_events"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/repo"
	"github.com/light-bringer/catalog-search-service/internal/config"
)

func main() {
	flags := pflag.NewFlagSet("check_events", pflag.ExitOnError)
	eventType := flags.String("type", "", "only events of this type, e.g. product.created")
	status := flags.String("status", "", "only events in this status (pending, processing, completed, failed)")
	limit := flags.Int("limit", 10, "number of events to print")
	flags.String("config", "", "config file (yaml, json or toml)")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	client, err := spanner.NewClient(ctx, cfg.Spanner.Database)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	defer client.Close()

	req := &list_events.Request{Limit: *limit}
	if *eventType != "" {
		req.EventType = eventType
	}
	if *status != "" {
		req.Status = status
	}

	result, err := list_events.NewQuery(repo.NewEventsReadModel(client)).Execute(ctx, req)
	if err != nil {
		log.Fatalf("Failed to list events: %v", err)
	}

	fmt.Println("Events in outbox_events table:")
	for i, e := range result.Events {
		fmt.Printf("%d. %s - %s (aggregate: %s, status: %s, retries: %d)\n",
			i+1, e.EventType, e.EventID, e.AggregateID, e.Status, e.RetryCount)
	}

	if len(result.Events) == 0 {
		fmt.Println("No events found!")
		return
	}
	fmt.Printf("\nShowing %d of %d matching events\n", len(result.Events), result.TotalCount)
}
