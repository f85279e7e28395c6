package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/api"
	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/auth"
	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/checkout"
	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/domain"
	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/payment"
)

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	role, err := a.client.Login(ctx, api.Credentials{Username: *username, Password: *password})
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (%s)\n", *username, role)

	if target := a.session.TakeRedirect(ctx); target != "" {
		fmt.Printf("You were heading to %s — run that command again to continue.\n", target)
	}
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("username", "", "account username")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	role := fs.String("role", "buyer", "account role (buyer or seller)")
	phone := fs.String("phone", "", "phone number (sellers)")
	student := fs.String("student", "", "student status")
	agree := fs.Bool("agree", false, "accept the terms of service")
	fs.Parse(args)

	err := a.client.Register(ctx, api.Registration{
		Username: *username,
		Email:    *email,
		Password: *password,
		Role:     *role,
		Phone:    *phone,
		Student:  *student,
		Agreed:   *agree,
	})
	if err != nil {
		return err
	}
	fmt.Println("Account created. Run `markethub login` to sign in.")
	return nil
}

func (a *app) cmdLogout(ctx context.Context) error {
	if err := a.session.Clear(ctx); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func (a *app) cmdWhoami(ctx context.Context) error {
	info, err := a.session.TokenInfo(ctx)
	if errors.Is(err, auth.ErrNoToken) {
		fmt.Println("Not logged in.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("Subject: %s\n", info.Subject)
	fmt.Printf("Role:    %s\n", a.session.Role(ctx))
	if !info.ExpiresAt.IsZero() {
		state := "valid"
		if info.Expired(time.Now()) {
			state = "expired, will refresh on the next call"
		}
		fmt.Printf("Token:   expires %s (%s)\n", info.ExpiresAt.Format(time.RFC3339), state)
	}
	return nil
}

func (a *app) cmdForgotPassword(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("forgot-password", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	fs.Parse(args)

	if err := a.client.ForgotPassword(ctx, *email); err != nil {
		return err
	}
	fmt.Println("If that email exists, a reset link is on its way.")
	return nil
}

func (a *app) cmdProducts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	page := fs.Int("page", 0, "result page")
	search := fs.String("search", "", "search by product or seller name")
	category := fs.String("category", "all", "category filter")
	sortBy := fs.String("sort", "", "sort order: lowest, highest or newest")
	fs.Parse(args)

	items, err := a.client.ListProducts(ctx, api.ProductQuery{
		Page:     *page,
		Search:   *search,
		Category: *category,
	})
	if err != nil {
		return err
	}

	// The server already narrowed the listing; applying the same filters
	// locally keeps the output right for backends that ignore the params.
	items = api.FilterProducts(items, *category, *search)
	api.SortProducts(items, *sortBy)

	if len(items) == 0 {
		fmt.Println("No products found.")
		return nil
	}
	for _, p := range items {
		seller := p.Seller.Name
		if seller == "" {
			seller = "Unknown Seller"
		}
		fmt.Printf("%-8d %-30s %10s  %s\n", p.ID, p.Name, domain.FormatAmount(p.Price), seller)
	}
	return nil
}

func (a *app) cmdTopListings(ctx context.Context) error {
	items, err := a.client.TopListings(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No promoted listings right now.")
		return nil
	}
	for _, p := range items {
		line := fmt.Sprintf("%-8d %-30s %10s", p.ID, p.Name, domain.FormatAmount(p.Price))
		if p.Discount > 0 {
			line += fmt.Sprintf("  -%d%%", p.Discount)
		}
		if p.IsNew {
			line += "  NEW"
		}
		fmt.Println(line)
	}
	return nil
}

func (a *app) cmdCart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("cart needs a subcommand: add, list, remove, clear or total")
	}

	switch args[0] {
	case "add":
		return a.cmdCartAdd(ctx, args[1:])
	case "list":
		return a.cmdCartList(ctx)
	case "remove":
		return a.cmdCartRemove(ctx, args[1:])
	case "clear":
		if err := a.cart.Clear(ctx); err != nil {
			return err
		}
		fmt.Println("Cart cleared.")
		return nil
	case "total":
		total, err := a.cart.Total(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Total: %s\n", domain.FormatAmount(total))
		return nil
	default:
		return fmt.Errorf("unknown cart subcommand %q", args[0])
	}
}

func (a *app) cmdCartAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cart add", flag.ExitOnError)
	productID := fs.Int64("product", 0, "catalog product id to add")
	id := fs.String("id", "", "item id (when not adding by -product)")
	name := fs.String("name", "", "item name")
	price := fs.String("price", "", "item price")
	sellerID := fs.String("seller-id", "", "seller id")
	sellerName := fs.String("seller", "", "seller display name")
	fs.Parse(args)

	var item domain.CartItem
	if *productID > 0 {
		product, err := a.findProduct(ctx, *productID)
		if err != nil {
			return err
		}
		item = product.ToCartItem()
	} else {
		if *id == "" {
			return errors.New("either -product or -id is required")
		}
		itemName := *name
		if itemName == "" {
			itemName = *id
		}
		item = domain.CartItem{
			ID:       *id,
			Name:     itemName,
			Price:    domain.ParsePrice(*price),
			SellerID: *sellerID,
			Seller:   domain.SellerRef{Name: *sellerName},
		}
	}

	if err := a.cart.Add(ctx, item); err != nil {
		return err
	}

	count, err := a.cart.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Added %s to cart (%d items).\n", item.Name, count)
	return nil
}

func (a *app) findProduct(ctx context.Context, id int64) (*domain.Product, error) {
	items, err := a.client.ListProducts(ctx, api.ProductQuery{})
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("no product with id %d", id)
}

func (a *app) cmdCartList(ctx context.Context) error {
	items, err := a.cart.Items(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("Your cart is empty.")
		return nil
	}
	for i, item := range items {
		fmt.Printf("%2d. %-30s %10s x%-3d %10s  %s\n",
			i+1, item.Name, domain.FormatAmount(item.Price), item.Quantity.Int(),
			domain.FormatAmount(item.Subtotal()), item.SellerName())
	}
	total, err := a.cart.Total(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Total: %s\n", domain.FormatAmount(total))
	return nil
}

func (a *app) cmdCartRemove(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cart remove", flag.ExitOnError)
	id := fs.String("id", "", "product id to remove")
	index := fs.Int("index", 0, "1-based line number to remove")
	fs.Parse(args)

	var err error
	switch {
	case *id != "":
		err = a.cart.RemoveByID(ctx, *id)
	case *index > 0:
		err = a.cart.RemoveAt(ctx, *index-1)
	default:
		return errors.New("pass -id or -index")
	}
	if err != nil {
		return err
	}
	fmt.Println("Removed.")
	return nil
}

func (a *app) cmdCheckout(ctx context.Context) error {
	snapshot, err := a.checkout.Begin(ctx)
	if errors.Is(err, api.ErrLoginRequired) {
		return errors.New("log in first; checkout will resume afterwards")
	}
	if err != nil {
		return err
	}

	fmt.Printf("Checkout started with %d items, subtotal %s.\n",
		len(snapshot.Items), domain.FormatAmount(snapshot.Subtotal))
	fmt.Println("Run `markethub order` with your delivery details to place it.")
	return nil
}

func (a *app) cmdOrder(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("order", flag.ExitOnError)
	name := fs.String("name", "", "buyer full name")
	phone := fs.String("phone", "", "buyer phone number")
	address := fs.String("address", "", "delivery address")
	method := fs.String("payment", "", "payment method")
	delivery := fs.String("delivery", "", "delivery option")
	fee := fs.String("fee", "0", "delivery fee")
	fs.Parse(args)

	snapshot, err := a.checkout.Snapshot(ctx)
	if err != nil {
		return err
	}

	payload, err := checkout.BuildPayload(snapshot,
		checkout.BuyerDetails{Name: *name, Phone: *phone, Address: *address, PaymentMethod: *method},
		checkout.DeliveryOption{Name: *delivery, Fee: *fee})
	if err != nil {
		return err
	}

	order, err := a.checkout.PlaceOrder(ctx, payload)
	if err != nil {
		return err
	}

	if order.ID > 0 {
		fmt.Printf("Order #%d placed, total %s.\n", order.ID, domain.FormatAmount(payload.TotalPrice))
	} else {
		fmt.Printf("Order placed, total %s.\n", domain.FormatAmount(payload.TotalPrice))
	}
	return nil
}

func (a *app) cmdOrders(ctx context.Context) error {
	orders, err := a.client.MyOrders(ctx)
	if err != nil {
		return err
	}
	printOrders(orders)
	return nil
}

func (a *app) cmdSearchOrders(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search-orders", flag.ExitOnError)
	buyer := fs.String("buyer", "", "buyer name to search for")
	fs.Parse(args)

	orders, err := a.client.SearchOrders(ctx, *buyer)
	if err != nil {
		return err
	}
	printOrders(orders)
	return nil
}

func printOrders(orders []domain.Order) {
	if len(orders) == 0 {
		fmt.Println("No orders found.")
		return
	}
	for _, o := range orders {
		fmt.Printf("#%-8d %-20s %10s  %-12s %s\n",
			o.ID, o.BuyerName, domain.FormatAmount(o.TotalPrice), o.Status, o.CreatedAt)
	}
}

func (a *app) cmdTrack(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("track", flag.ExitOnError)
	id := fs.Int64("id", 0, "order id")
	fs.Parse(args)

	if *id <= 0 {
		return errors.New("pass -id with the order number")
	}

	order, err := a.client.TrackOrder(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Printf("Order #%d\n", order.ID)
	fmt.Printf("Buyer:  %s\n", order.BuyerName)
	fmt.Printf("Total:  %s\n", domain.FormatAmount(order.TotalPrice))
	fmt.Printf("Status: %s\n", order.Status)
	return nil
}

func (a *app) cmdContact(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("contact", flag.ExitOnError)
	name := fs.String("name", "", "your name")
	email := fs.String("email", "", "your email")
	subject := fs.String("subject", "", "message subject")
	message := fs.String("message", "", "message body")
	fs.Parse(args)

	err := a.client.SubmitContact(ctx, domain.ContactMessage{
		Name:    *name,
		Email:   *email,
		Subject: *subject,
		Message: *message,
	})
	if err != nil {
		return err
	}
	fmt.Println("Message sent.")
	return nil
}

func (a *app) cmdNewsletter(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("newsletter", flag.ExitOnError)
	email := fs.String("email", "", "email to subscribe")
	fs.Parse(args)

	err := a.client.SubscribeNewsletter(ctx, *email)
	if errors.Is(err, api.ErrAlreadySubscribed) {
		fmt.Println("That email is already subscribed.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println("Subscribed.")
	return nil
}

func (a *app) cmdFeedback(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "list" {
		feedbacks, err := a.client.ListFeedbacks(ctx)
		if err != nil {
			return err
		}
		if len(feedbacks) == 0 {
			fmt.Println("No feedback yet.")
			return nil
		}
		for _, fb := range feedbacks {
			who := fb.UserName
			if who == "" {
				who = "anonymous"
			}
			fmt.Printf("%s: %s\n", who, fb.Text)
		}
		return nil
	}

	if args[0] != "add" {
		return fmt.Errorf("unknown feedback subcommand %q", args[0])
	}

	fs := flag.NewFlagSet("feedback add", flag.ExitOnError)
	text := fs.String("text", "", "feedback text")
	fs.Parse(args[1:])

	if err := a.client.SubmitFeedback(ctx, domain.Feedback{Text: *text}); err != nil {
		return err
	}
	fmt.Println("Feedback submitted.")
	return nil
}

func (a *app) cmdSellerProfile(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "show" {
		profile, err := a.client.SellerProfile(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Name:     %s\n", profile.FullName)
		fmt.Printf("Email:    %s\n", profile.Email)
		fmt.Printf("Phone:    %s\n", profile.Phone)
		fmt.Printf("Location: %s\n", profile.Location)
		fmt.Printf("Business: %s\n", profile.BusinessType)
		return nil
	}

	if args[0] != "update" {
		return fmt.Errorf("unknown seller-profile subcommand %q", args[0])
	}

	fs := flag.NewFlagSet("seller-profile update", flag.ExitOnError)
	fullName := fs.String("name", "", "full name")
	email := fs.String("email", "", "contact email")
	phone := fs.String("phone", "", "phone number")
	location := fs.String("location", "", "business location")
	nationalID := fs.String("national-id", "", "national id")
	businessType := fs.String("business-type", "", "type of business")
	fs.Parse(args[1:])

	err := a.client.UpdateSellerProfile(ctx, domain.SellerProfile{
		FullName:     *fullName,
		Email:        *email,
		Phone:        *phone,
		Location:     *location,
		NationalID:   *nationalID,
		BusinessType: *businessType,
	})
	if err != nil {
		return err
	}
	fmt.Println("Profile updated.")
	return nil
}

func (a *app) cmdAds(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "list" {
		ads, err := a.client.ListAds(ctx)
		if err != nil {
			return err
		}
		if len(ads) == 0 {
			fmt.Println("No ad campaigns.")
			return nil
		}
		for _, ad := range ads {
			fmt.Printf("#%-6d %-30s %s\n", ad.ID, ad.Title, ad.Description)
		}
		return nil
	}

	if args[0] != "create" {
		return fmt.Errorf("unknown ads subcommand %q", args[0])
	}

	fs := flag.NewFlagSet("ads create", flag.ExitOnError)
	title := fs.String("title", "", "ad title")
	description := fs.String("description", "", "ad description")
	imagePath := fs.String("image", "", "path to the ad image")
	fs.Parse(args[1:])

	plan := payment.CurrentPlan(ctx, a.store)
	ads, err := a.client.ListAds(ctx)
	if err != nil {
		return err
	}
	if !plan.AllowsAds(len(ads)) {
		return fmt.Errorf("the %s plan allows %d ads; upgrade with `markethub plan upgrade`",
			plan, plan.Limits().MaxAds)
	}

	submission := api.AdSubmission{Title: *title, Description: *description}
	if *imagePath != "" {
		f, err := os.Open(*imagePath)
		if err != nil {
			return err
		}
		defer f.Close()
		submission.Image = f
		submission.ImageName = filepath.Base(*imagePath)
	}

	if err := a.client.CreateAd(ctx, submission); err != nil {
		return err
	}
	fmt.Println("Ad campaign created.")
	return nil
}

func (a *app) cmdPlan(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "show" {
		plan := payment.CurrentPlan(ctx, a.store)
		limits := plan.Limits()
		fmt.Printf("Plan: %s\n", plan)
		fmt.Printf("Products: %s\n", formatLimit(limits.MaxProducts))
		fmt.Printf("Ads:      %s\n", formatLimit(limits.MaxAds))
		return nil
	}

	if args[0] != "upgrade" {
		return fmt.Errorf("unknown plan subcommand %q", args[0])
	}

	fs := flag.NewFlagSet("plan upgrade", flag.ExitOnError)
	planName := fs.String("plan", "", "target plan: free, silver or gold")
	email := fs.String("email", "", "billing email")
	fs.Parse(args[1:])

	plan := payment.ParsePlan(*planName)

	listener, err := payment.NewCallbackListener(a.cfg.CallbackAddr)
	if err != nil {
		return err
	}

	if plan != payment.PlanFree {
		fmt.Printf("Complete the payment of %s in your browser; the provider will redirect to\n  %s\n",
			domain.FormatAmount(plan.Price()), listener.URL())
	}

	if err := payment.Subscribe(ctx, a.client, a.store, plan, *email, listener); err != nil {
		return err
	}
	fmt.Printf("You are now on the %s plan.\n", plan)
	return nil
}

func formatLimit(n int) string {
	if n == payment.Unlimited {
		return "unlimited"
	}
	return strconv.Itoa(n)
}
