package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/api"
	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/auth"
	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/cart"
	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/checkout"
	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/config"
	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/store"
	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/transport"
)

// app bundles the wired-up client pieces the commands operate on.
type app struct {
	cfg      config.Config
	store    store.Store
	session  *auth.Session
	client   *api.Client
	cart     *cart.Cart
	checkout *checkout.Checkout
}

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open state store: %v", err)
	}
	defer st.Close()

	session := auth.NewSession(st)

	// The refresher gets a plain client; routing it through the auth
	// transport would recurse on 401.
	refresher := auth.NewRefresher(session, &http.Client{Timeout: cfg.HTTPTimeout}, cfg.BaseURL)

	httpc := &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Transport: transport.New(otelhttp.NewTransport(nil), refresher),
	}

	client := api.New(cfg.BaseURL, httpc, session)
	crt := cart.New(st)

	a := &app{
		cfg:      cfg,
		store:    st,
		session:  session,
		client:   client,
		cart:     crt,
		checkout: checkout.New(st, crt, session, client),
	}

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	if cfg.RedisAddr == "" {
		return store.NewFileStore(cfg.StateFile)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return store.NewRedisStore(redisClient, ""), nil
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.cmdLogin(ctx, args)
	case "register":
		return a.cmdRegister(ctx, args)
	case "logout":
		return a.cmdLogout(ctx)
	case "whoami":
		return a.cmdWhoami(ctx)
	case "forgot-password":
		return a.cmdForgotPassword(ctx, args)
	case "products":
		return a.cmdProducts(ctx, args)
	case "toplistings":
		return a.cmdTopListings(ctx)
	case "cart":
		return a.cmdCart(ctx, args)
	case "checkout":
		return a.cmdCheckout(ctx)
	case "order":
		return a.cmdOrder(ctx, args)
	case "orders":
		return a.cmdOrders(ctx)
	case "search-orders":
		return a.cmdSearchOrders(ctx, args)
	case "track":
		return a.cmdTrack(ctx, args)
	case "contact":
		return a.cmdContact(ctx, args)
	case "newsletter":
		return a.cmdNewsletter(ctx, args)
	case "feedback":
		return a.cmdFeedback(ctx, args)
	case "seller-profile":
		return a.cmdSellerProfile(ctx, args)
	case "ads":
		return a.cmdAds(ctx, args)
	case "plan":
		return a.cmdPlan(ctx, args)
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: markethub <command> [flags]

Account:
  login            Sign in and store the session
  register         Create an account
  logout           Forget the stored session
  whoami           Show the logged-in account
  forgot-password  Request a password reset link

Shopping:
  products         Browse the catalog
  toplistings      Show promoted listings
  cart             Manage the cart (add, list, remove, clear, total)
  checkout         Freeze the cart and start checkout
  order            Submit the frozen checkout as an order
  orders           List your orders
  search-orders    Find orders by buyer name
  track            Track one order by id

Community:
  contact          Send a contact-form message
  newsletter       Subscribe an email to the newsletter
  feedback         List or submit feedback

Selling:
  seller-profile   Show or update the seller profile
  ads              List or create ad campaigns
  plan             Show or upgrade the subscription plan
`)
}
