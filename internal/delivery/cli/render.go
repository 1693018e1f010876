package cli

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/entity"
)

// cartTotals carries the derived money values rendered under the cart table.
type cartTotals struct {
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Shipping   decimal.Decimal
	GrandTotal decimal.Decimal
}

func renderCart(w io.Writer, items []entity.CartItem, totals cartTotals) {
	if len(items) == 0 {
		fmt.Fprintln(w, "Your cart is empty.")

		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tITEM\tPRICE\tQTY\tTOTAL")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			item.ID, item.Name, item.Price.StringFixed(2), item.Qty, item.TotalAmt)
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "\nSubtotal:    %s\n", totals.Subtotal.StringFixed(2))
	fmt.Fprintf(w, "Tax (18%%):   %s\n", totals.Tax.StringFixed(2))
	fmt.Fprintf(w, "Shipping:    %s\n", totals.Shipping.StringFixed(2))
	fmt.Fprintf(w, "Grand total: %s\n", totals.GrandTotal.StringFixed(2))
}

func renderProducts(w io.Writer, category string, products []entity.Product) {
	if len(products) == 0 {
		fmt.Fprintf(w, "No products in %q.\n", category)

		return
	}

	fmt.Fprintf(w, "%s:\n", category)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE")
	for _, product := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", product.ID, product.Name, product.Price.StringFixed(2))
	}
	_ = tw.Flush()
}

func renderCatalog(w io.Writer, catalog entity.Catalog) {
	categories := make([]string, 0, len(catalog))
	for category := range catalog {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for i, category := range categories {
		if i > 0 {
			fmt.Fprintln(w)
		}
		renderProducts(w, category, catalog[category])
	}
}

func renderOrders(w io.Writer, orders []entity.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(w, "No orders yet.")

		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tITEMS\tTOTAL\tSTATUS")
	for _, order := range orders {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", order.ID, len(order.Items), order.Total.StringFixed(2), order.Status)
	}
	_ = tw.Flush()
}

func renderOrder(w io.Writer, order entity.Order) {
	fmt.Fprintf(w, "Order %s (%s)\n", order.ID, order.Status)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tQTY\tPRICE")
	for _, line := range order.Items {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", line.Name, line.Quantity, line.Price.StringFixed(2))
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "Total: %s\n", order.Total.StringFixed(2))
	if order.ShippingAddress != nil {
		fmt.Fprintf(w, "Ship to: %s, %s, %s %s\n",
			order.ShippingAddress.FullName, order.ShippingAddress.City,
			order.ShippingAddress.State, order.ShippingAddress.ZipCode)
	}
}

func renderAlert(w io.Writer, alert entity.Alert) {
	fmt.Fprintf(w, "[%s] %s\n", alert.Level, alert.Message)
}
