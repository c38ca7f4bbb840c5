package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/iamkibet/bitedash-app-sub000/api"
	"github.com/iamkibet/bitedash-app-sub000/configs"
	"github.com/iamkibet/bitedash-app-sub000/repository"
	"github.com/iamkibet/bitedash-app-sub000/services"
	"github.com/iamkibet/bitedash-app-sub000/utils"
	"github.com/iamkibet/bitedash-app-sub000/views"
)

// Thin terminal harness around the client core: inspect the cart, place the
// order, pay and watch the poll resolve. The mobile UI drives the same
// services.
func main() {
	cfg := configs.LoadConfig()

	var (
		cartRepo  repository.CartRepository
		creds     api.CredentialStore
		locations *repository.LocationRepository
	)
	store, err := repository.Open(cfg.LocalDBPath)
	if err != nil {
		log.Printf("local store unavailable (%v), running in memory", err)
		cartRepo = repository.NewMemoryCartRepository()
		creds = api.NewStaticCredentials(os.Getenv("API_TOKEN"))
	} else {
		cartRepo = repository.NewCartRepository(store)
		tokens := repository.NewTokenRepository(store)
		if tok := os.Getenv("API_TOKEN"); tok != "" {
			if err := tokens.Set(tok); err != nil {
				log.Fatalf("store token: %v", err)
			}
		}
		creds = tokens
		locations = repository.NewLocationRepository(store)
	}

	client := api.NewClient(cfg.APIBaseURL, creds)
	client.HTTP.Timeout = cfg.HTTPTimeout
	carts := services.NewCartService(cartRepo)
	orders := services.NewOrderService(client, carts, locations)
	payments := services.NewPaymentService(client, cfg)

	ctx := context.Background()
	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "cart":
		c := carts.Cart()
		fmt.Printf("restaurant=%d items=%d subtotal=KES %s\n",
			c.RestaurantID, carts.ItemCount(), carts.Subtotal().StringFixed(2))
		for _, it := range c.Items {
			fmt.Printf("  %dx %s @ %s\n", it.Quantity, it.MenuItem.Name, it.MenuItem.Price.StringFixed(2))
		}

	case "place":
		addr := ""
		if len(os.Args) > 2 {
			addr = os.Args[2]
		}
		o, err := orders.PlaceOrder(ctx, &services.PlaceOrderIn{DeliveryAddress: addr})
		if err != nil {
			fatalUser(err)
		}
		fmt.Printf("order #%d placed, total KES %s\n", o.ID, o.TotalAmount.StringFixed(2))
		for _, it := range o.OrderItems {
			fmt.Printf("  %dx %s = %s\n", it.Quantity, it.Name, it.LineTotal().StringFixed(2))
		}

	case "pay":
		if len(os.Args) < 4 {
			log.Fatal("usage: bitedash pay <orderID> <phone>")
		}
		id, _ := strconv.Atoi(os.Args[2])
		res, err := payments.Initiate(ctx, uint(id), os.Args[3])
		if err != nil {
			fatalUser(err)
		}
		fmt.Println(res.Message)
		h := payments.StartPolling(ctx, uint(id), res.Reference)
		defer h.Cancel()
		<-h.Done()
		outcome, o := h.Outcome()
		if outcome == services.OutcomePaid && o != nil {
			fmt.Printf("payment confirmed, order #%d is %s\n", o.ID, o.Status)
		} else {
			fmt.Printf("payment %s\n", outcome)
		}

	case "orders":
		listOrders(ctx, client, creds)

	default:
		fmt.Println("usage: bitedash <cart|place [address]|pay <orderID> <phone>|orders>")
	}
}

// listOrders picks the projection matching the stored token's role.
func listOrders(ctx context.Context, client *api.Client, creds api.CredentialStore) {
	tok, _ := creds.Token()
	claims, err := utils.PeekClaims(tok)
	if err != nil {
		log.Fatal("no valid session, set API_TOKEN")
	}
	if claims.Expired() {
		log.Fatal("session expired, log in again")
	}

	fetch := func(page int) (*views.OrderListing, error) {
		switch claims.Role {
		case "restaurant":
			return views.NewStoreView(client, claims.UserID).Orders(ctx, page)
		case "rider":
			return views.NewRiderView(client, claims.UserID).Deliveries(ctx, page)
		default:
			return views.NewCustomerView(client).Orders(ctx, page)
		}
	}

	for page := 1; ; page++ {
		listing, err := fetch(page)
		if err != nil {
			fatalUser(err)
		}
		for _, row := range listing.Rows {
			fmt.Printf("#%d %s/%s KES %s %v\n",
				row.Order.ID, row.Order.Status, row.Order.PaymentStatus,
				row.Order.TotalAmount.StringFixed(2), row.Actions)
		}
		if !listing.HasMore() {
			fmt.Printf("%d orders\n", listing.Total)
			return
		}
	}
}

func fatalUser(err error) {
	if fields := api.FieldErrors(err); fields != nil {
		for f, msgs := range fields {
			for _, m := range msgs {
				fmt.Printf("%s: %s\n", f, m)
			}
		}
	}
	log.Fatal(api.UserMessage(err))
}
