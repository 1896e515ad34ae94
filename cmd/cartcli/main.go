package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Dias221467/Storefront/internal/cartview"
	"github.com/Dias221467/Storefront/pkg/logger"
	"github.com/Dias221467/Storefront/pkg/storeclient"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type terminal struct {
	out io.Writer
}

func (t terminal) Notice(msg string) { fmt.Fprintln(t.out, msg) }
func (t terminal) Alert(msg string)  { fmt.Fprintf(t.out, "error: %s\n", msg) }
func (t terminal) RetryableError(msg string, err error) {
	fmt.Fprintf(t.out, "%s (%v)\n", msg, err)
}
func (t terminal) Navigate(path string) { fmt.Fprintf(t.out, "-> %s\n", path) }

func main() {
	_ = godotenv.Load()

	email := flag.String("email", os.Getenv("STORE_EMAIL"), "account email")
	password := flag.String("password", os.Getenv("STORE_PASSWORD"), "account password")
	yes := flag.Bool("yes", false, "skip delete confirmation")
	timeout := flag.Duration("timeout", 15*time.Second, "overall request timeout")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: cartcli [flags] [show | add <productID> [qty] [size] | delete <itemID> | checkout]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger.InitLogger(envOr("LOG_LEVEL", "warn"))

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, *email, *password, *yes, flag.Args(), os.Stdin, os.Stdout); err != nil {
		logrus.WithError(err).Error("cartcli failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, email, password string, yes bool, args []string, in io.Reader, out io.Writer) error {
	client, err := storeclient.NewFromEnv()
	if err != nil {
		return err
	}

	login, err := client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	catalog, err := client.GetProducts(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	term := terminal{out: out}
	checkout := &cartview.CheckoutState{}
	view := cartview.NewController(client, cartview.Deps{
		Session:  cartview.Session{Token: login.Token, User: &login.User},
		Catalog:  catalog,
		Checkout: checkout,
		Notifier: term,
	})

	cmd := "show"
	if len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "show":
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("add needs a product id")
		}
		qty := 1
		if len(args) > 2 {
			if qty, err = strconv.Atoi(args[2]); err != nil {
				return fmt.Errorf("invalid quantity %q", args[2])
			}
		}
		size := ""
		if len(args) > 3 {
			size = args[3]
		}
		if _, err := client.AddItem(ctx, login.Token, login.User.ID, args[1], qty, size); err != nil {
			return fmt.Errorf("add item: %w", err)
		}
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("delete needs an item id")
		}
		if err := view.FetchCart(ctx); err != nil {
			return err
		}
		if err := view.RequestDelete(args[1]); err != nil {
			return err
		}
		if !yes && !confirm(in, out, "Are you sure you want to Remove the item from Cart") {
			view.Cancel()
			break
		}
		if err := view.Confirm(ctx); err != nil {
			return err
		}
	case "checkout":
		if err := view.FetchCart(ctx); err != nil {
			return err
		}
		if !view.ContinueToCheckout(term) {
			fmt.Fprintln(out, "Your Cart is Empty")
		}
		return nil
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}

	if err := view.FetchCart(ctx); err != nil {
		return err
	}
	printCart(out, view)
	return nil
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s? [y/N] ", prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func printCart(out io.Writer, view *cartview.Controller) {
	cart := view.Cart()
	if len(cart) == 0 {
		fmt.Fprintln(out, "Your Cart is Empty :)")
		fmt.Fprintln(out, "Explore our collection and add items to your cart")
	}
	for _, item := range cart {
		fmt.Fprintf(out, "%s  %-30s x %-3d %-4s $%.2f\n", item.ID, item.Title, item.Quantity, item.Size, item.Price)
	}
	for _, item := range view.Unresolved() {
		fmt.Fprintf(out, "%s  (product %s is no longer available)\n", item.ID, item.ProductID)
	}
	fmt.Fprintf(out, "Total: $%.2f\n", view.Total())
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
