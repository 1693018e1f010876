// Package cli is the command line front end over the stores, standing in for
// the browser views: each command issues store operations and renders the
// resulting snapshot, while alert banners go to stderr.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/fx"

	"storefront/internal/delivery"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/store"
)

// CLI dispatches one command per invocation, the way a single view
// interaction would.
type CLI struct {
	cart    store.CartStore
	auth    store.AuthStore
	catalog store.CatalogStore
	orders  store.OrderStore
	alerts  service.AlertPublisher
	logger  *slog.Logger
	out     io.Writer
	errOut  io.Writer
	args    []string
}

// CLIParams holds dependencies for the CLI, injected by Fx.
type CLIParams struct {
	fx.In

	Cart    store.CartStore
	Auth    store.AuthStore
	Catalog store.CatalogStore
	Orders  store.OrderStore
	Alerts  service.AlertPublisher
	Logger  *slog.Logger
}

// New is the constructor for the CLI delivery.
func New(params CLIParams) delivery.Delivery {
	return &CLI{
		cart:    params.Cart,
		auth:    params.Auth,
		catalog: params.Catalog,
		orders:  params.Orders,
		alerts:  params.Alerts,
		logger:  params.Logger,
		out:     os.Stdout,
		errOut:  os.Stderr,
		args:    os.Args[1:],
	}
}

// Serve runs the single command given on the process arguments.
func (c *CLI) Serve(ctx context.Context) error {
	return c.Run(ctx, c.args)
}

// Run dispatches one command and flushes any alerts it produced. Store
// operations publish their banners synchronously, so draining after the
// command sees everything.
func (c *CLI) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		c.printUsage()

		return nil
	}

	alertCh, cancel := c.alerts.Subscribe()
	err := c.dispatch(ctx, args[0], args[1:])
	cancel()
	c.drainAlerts(alertCh)

	return err
}

func (c *CLI) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return c.runLogin(ctx, args)
	case "signup":
		return c.runSignup(ctx, args)
	case "logout":
		return c.runLogout(args)
	case "password":
		return c.runPassword(ctx, args)
	case "products":
		return c.runProducts(ctx, args)
	case "cart":
		return c.runCart(ctx, args)
	case "checkout":
		return c.runCheckout(ctx, args)
	case "orders":
		return c.runOrders(ctx, args)
	case "settings":
		return c.runSettings(args)
	case "help", "--help", "-h":
		c.printUsage()

		return nil
	default:
		c.printUsage()

		return errors.Errorf("unknown command %q", command)
	}
}

func (c *CLI) drainAlerts(alertCh <-chan entity.Alert) {
	for {
		select {
		case alert, ok := <-alertCh:
			if !ok {
				return
			}
			renderAlert(c.errOut, alert)
		default:
			return
		}
	}
}

func (c *CLI) runLogin(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("login", pflag.ContinueOnError)
	email := flags.String("email", "", "account email")
	password := flags.String("password", "", "account password")
	remember := flags.Bool("remember", false, "remember these credentials")
	if err := flags.Parse(args); err != nil {
		return err
	}

	// Absent flags fall back to the remembered pair, the CLI form of a
	// prefilled login form.
	if *email == "" {
		if creds, ok := c.auth.RememberedCredentials(); ok {
			*email = creds.Email
			if *password == "" {
				*password = creds.Password
			}
		}
	}

	if err := c.auth.Login(ctx, store.LoginInput{Email: *email, Password: *password}); err != nil {
		return err
	}

	if *remember {
		if err := c.auth.RememberCredentials(*email, *password); err != nil {
			c.logger.Warn("Failed to remember credentials", slog.Any("error", err))
		}
	}

	fmt.Fprintf(c.out, "Logged in as %s\n", c.auth.UserDisplayName())

	return nil
}

func (c *CLI) runSignup(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("signup", pflag.ContinueOnError)
	firstName := flags.String("first-name", "", "given name")
	lastName := flags.String("last-name", "", "family name")
	email := flags.String("email", "", "account email")
	password := flags.String("password", "", "account password")
	if err := flags.Parse(args); err != nil {
		return err
	}

	input := store.SignupInput{
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		Password:  *password,
	}
	if err := c.auth.Signup(ctx, input); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Welcome, %s\n", c.auth.UserDisplayName())

	return nil
}

func (c *CLI) runLogout(args []string) error {
	flags := pflag.NewFlagSet("logout", pflag.ContinueOnError)
	if err := flags.Parse(args); err != nil {
		return err
	}

	c.auth.Logout()
	fmt.Fprintln(c.out, "Logged out.")

	return nil
}

func (c *CLI) runPassword(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("password", pflag.ContinueOnError)
	newPassword := flags.String("new", "", "new password")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if err := c.auth.ChangePassword(ctx, *newPassword); err != nil {
		return err
	}

	fmt.Fprintln(c.out, "Password changed.")

	return nil
}

func (c *CLI) runProducts(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("products", pflag.ContinueOnError)
	category := flags.String("category", "", "show a single category")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if err := c.catalog.LoadCatalog(ctx); err != nil {
		return err
	}

	if *category != "" {
		renderProducts(c.out, *category, c.catalog.Products(*category))

		return nil
	}
	renderCatalog(c.out, c.catalog.Catalog())

	return nil
}

func (c *CLI) runCart(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "list":
		if err := c.cart.LoadCart(ctx); err != nil {
			return err
		}

		c.renderCartSnapshot()

		return nil
	case "add":
		flags := pflag.NewFlagSet("cart add", pflag.ContinueOnError)
		productID := flags.String("product", "", "product id")
		qty := flags.Int("qty", 1, "quantity")
		if err := flags.Parse(args); err != nil {
			return err
		}

		if err := c.cart.AddItem(ctx, *productID, *qty); err != nil {
			return err
		}

		// The add endpoint does not patch the snapshot; re-sync to show
		// the server-side merge.
		if err := c.cart.LoadCart(ctx); err != nil {
			return err
		}

		c.renderCartSnapshot()

		return nil
	case "remove":
		flags := pflag.NewFlagSet("cart remove", pflag.ContinueOnError)
		id := flags.String("id", "", "cart line id")
		if err := flags.Parse(args); err != nil {
			return err
		}

		if err := c.cart.RemoveItem(ctx, *id); err != nil {
			return err
		}

		c.renderCartSnapshot()

		return nil
	case "clear":
		if err := c.cart.ClearCart(ctx); err != nil {
			return err
		}

		fmt.Fprintln(c.out, "Cart cleared.")

		return nil
	case "inc", "dec":
		flags := pflag.NewFlagSet("cart "+sub, pflag.ContinueOnError)
		id := flags.String("id", "", "cart line id")
		if err := flags.Parse(args); err != nil {
			return err
		}

		if sub == "inc" {
			c.cart.IncrementQuantity(*id)
		} else {
			c.cart.DecrementQuantity(*id)
		}

		c.renderCartSnapshot()

		return nil
	default:
		return errors.Errorf("unknown cart subcommand %q", sub)
	}
}

func (c *CLI) renderCartSnapshot() {
	renderCart(c.out, c.cart.Items(), cartTotals{
		Subtotal:   c.cart.Subtotal(),
		Tax:        c.cart.Tax(),
		Shipping:   c.cart.Shipping(),
		GrandTotal: c.cart.GrandTotal(),
	})
}

func (c *CLI) runCheckout(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("checkout", pflag.ContinueOnError)
	address := store.ShippingAddressInput{}
	flags.StringVar(&address.FullName, "name", "", "recipient full name")
	flags.StringVar(&address.Email, "email", "", "contact email")
	flags.StringVar(&address.Phone, "phone", "", "10 digit phone number")
	flags.StringVar(&address.AddressLine1, "address", "", "address line 1")
	flags.StringVar(&address.AddressLine2, "address2", "", "address line 2")
	flags.StringVar(&address.City, "city", "", "city")
	flags.StringVar(&address.State, "state", "", "state")
	flags.StringVar(&address.ZipCode, "zip", "", "postal code")
	flags.StringVar(&address.Country, "country", "", "country")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if err := c.cart.LoadCart(ctx); err != nil {
		return err
	}

	confirmation, err := c.orders.PlaceOrder(ctx, store.PlaceOrderInput{Address: address})
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Order confirmed: %s\n", confirmation.Number)

	return nil
}

func (c *CLI) runOrders(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("orders", pflag.ContinueOnError)
	id := flags.String("id", "", "show a single order")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if err := c.orders.LoadOrders(ctx); err != nil {
		return err
	}

	if *id != "" {
		order, ok := c.orders.OrderByID(*id)
		if !ok {
			return errors.Errorf("no order with id %q", *id)
		}
		renderOrder(c.out, order)

		return nil
	}
	renderOrders(c.out, c.orders.Orders())

	return nil
}

func (c *CLI) runSettings(args []string) error {
	flags := pflag.NewFlagSet("settings", pflag.ContinueOnError)
	forget := flags.Bool("forget-remembered", false, "drop the remembered credentials")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *forget {
		if err := c.auth.ForgetCredentials(); err != nil {
			return err
		}

		fmt.Fprintln(c.out, "Remembered credentials dropped.")
	}

	if c.auth.IsAuthenticated() {
		fmt.Fprintf(c.out, "Signed in as %s <%s>\n", c.auth.UserDisplayName(), c.auth.UserEmail())
	} else {
		fmt.Fprintln(c.out, "Not signed in.")
	}

	if creds, ok := c.auth.RememberedCredentials(); ok {
		fmt.Fprintf(c.out, "Remembered account: %s\n", creds.Email)
	}

	return nil
}

func (c *CLI) printUsage() {
	fmt.Fprint(c.errOut, `Usage: storefront <command> [flags]

Commands:
  login      --email --password [--remember]
  signup     --first-name --last-name --email --password
  logout
  password   --new
  products   [--category]
  cart       [list|add|remove|clear|inc|dec] [flags]
  checkout   --name --email --phone --address --city --state --zip --country
  orders     [--id]
  settings   [--forget-remembered]
`)
}
