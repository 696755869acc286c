package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"pos-terminal/internal/api"
	"pos-terminal/internal/cart"
	"pos-terminal/internal/checkout"
	"pos-terminal/internal/metering"
	"pos-terminal/internal/receipt"
	"pos-terminal/internal/resources"
)

// repl is the cashier-facing command loop. It is deliberately thin: every
// rule lives in the checkout/cart/metering packages, the loop only parses
// commands and prints results.
type repl struct {
	client   *api.Client
	store    *resources.Store
	poller   *resources.Poller
	checkout *checkout.Checkout
	menu     []api.MenuItem
}

func newRepl(client *api.Client, store *resources.Store, poller *resources.Poller, co *checkout.Checkout) *repl {
	return &repl{client: client, store: store, poller: poller, checkout: co}
}

func (r *repl) run(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println(`POS terminal ready. Type "help" for commands.`)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}
		r.dispatch(ctx, strings.Fields(line))
	}
}

func (r *repl) dispatch(ctx context.Context, args []string) {
	switch args[0] {
	case "help":
		fmt.Println(`menu                     show orderable items
add <n> <qty>            add menu item n to the cart
remove <line>            remove cart line
cart                     show cart
customer <name> <guests> set customer details
table <id>               target a table
pay <cash|online>        set payment method
submit                   place the order
resources                show resource cards
refresh                  refresh resource cards now
start <deviceId>         start a rental session
end <deviceId>           end a rental session
quit                     exit`)
	case "menu":
		r.showMenu(ctx)
	case "add":
		r.addToCart(ctx, args[1:])
	case "remove":
		r.removeLine(args[1:])
	case "cart":
		r.showCart()
	case "customer":
		r.setCustomer(args[1:])
	case "table":
		if len(args) < 2 {
			fmt.Println("usage: table <id>")
			return
		}
		r.checkout.AttachTable(args[1])
		fmt.Println("table attached")
	case "pay":
		r.setPayment(args[1:])
	case "submit":
		r.submit(ctx)
	case "resources":
		r.showResources()
	case "refresh":
		if err := r.poller.RefreshNow(ctx); err != nil {
			fmt.Println("refresh failed:", userMessage(err))
		}
	case "start":
		r.startSession(ctx, args[1:])
	case "end":
		r.endSession(ctx, args[1:])
	default:
		fmt.Println("unknown command, try \"help\"")
	}
}

func (r *repl) showMenu(ctx context.Context) {
	items, err := r.client.ListMenu(ctx)
	if err != nil {
		fmt.Println("failed to load menu:", userMessage(err))
		return
	}
	r.menu = items
	for i, item := range items {
		fmt.Printf("%2d. %-24s %s\n", i+1, item.Name, receipt.FormatEGP(item.Price))
	}
}

func (r *repl) addToCart(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Println("usage: add <n> <qty>")
		return
	}
	if r.menu == nil {
		r.showMenu(ctx)
	}
	idx, err1 := strconv.Atoi(args[0])
	qty, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil || idx < 1 || idx > len(r.menu) {
		fmt.Println("usage: add <n> <qty>")
		return
	}

	item := r.menu[idx-1]
	line, err := r.checkout.Cart().AddLine(cart.ItemRef{
		ItemID:    item.ID,
		Name:      item.Name,
		UnitPrice: item.Price,
	}, qty)
	if err != nil {
		fmt.Println("cannot add:", err)
		return
	}
	fmt.Printf("added %dx %s (%s)\n", line.Quantity, line.Name, receipt.FormatEGP(line.LineTotal))
}

func (r *repl) removeLine(args []string) {
	if len(args) < 1 {
		fmt.Println("usage: remove <line>")
		return
	}
	idx, err := strconv.Atoi(args[0])
	lines := r.checkout.Cart().Lines()
	if err != nil || idx < 1 || idx > len(lines) {
		fmt.Println("usage: remove <line>")
		return
	}
	if err := r.checkout.Cart().RemoveLine(lines[idx-1].ID); err != nil {
		fmt.Println("cannot remove:", err)
	}
}

func (r *repl) showCart() {
	c := r.checkout.Cart()
	if c.IsEmpty() {
		fmt.Println("cart is empty")
		return
	}
	for i, line := range c.Lines() {
		fmt.Printf("%2d. %dx %-20s %s\n", i+1, line.Quantity, line.Name, receipt.FormatEGP(line.LineTotal))
	}
	fmt.Printf("    total: %s\n", receipt.FormatEGP(c.Total()))
}

func (r *repl) setCustomer(args []string) {
	if len(args) < 1 {
		fmt.Println("usage: customer <name> [guests]")
		return
	}
	guests := 1
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			guests = n
		}
	}
	r.checkout.SetCustomer(checkout.Customer{Name: args[0], Guests: guests})
}

func (r *repl) setPayment(args []string) {
	if len(args) < 1 {
		fmt.Println("usage: pay <cash|online>")
		return
	}
	switch strings.ToLower(args[0]) {
	case "cash":
		r.checkout.SetPaymentMethod(api.PaymentCash)
	case "online":
		r.checkout.SetPaymentMethod(api.PaymentOnline)
	default:
		fmt.Println("usage: pay <cash|online>")
	}
}

func (r *repl) submit(ctx context.Context) {
	result, err := r.checkout.Submit(ctx)
	if err != nil {
		fmt.Println("order not placed:", userMessage(err))
		return
	}
	fmt.Print(receipt.Render(result.Order))
	if result.TableWarning != "" {
		fmt.Println("warning:", result.TableWarning)
	}
	r.checkout.Reset()
}

func (r *repl) showResources() {
	for _, card := range r.store.List() {
		status := string(card.Status)
		if card.Session != nil {
			status += " since " + card.Session.StartTime.Local().Format("15:04:05")
		}
		fmt.Printf("%-10s %-12s %-12s %s\n", card.Kind, card.ResourceID, card.Name, status)
	}
}

func (r *repl) startSession(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Println("usage: start <deviceId>")
		return
	}
	session, err := r.checkout.StartDeviceSession(ctx, args[0])
	if err != nil {
		fmt.Println("cannot start session:", userMessage(err))
		return
	}
	fmt.Printf("session %s started at %s (%s/h)\n",
		session.ID,
		session.StartTime.Local().Format("15:04:05"),
		receipt.FormatEGP(session.RatePerHour),
	)
}

func (r *repl) endSession(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Println("usage: end <deviceId>")
		return
	}
	card, ok := r.store.Get(args[0])
	if !ok {
		fmt.Println("unknown device")
		return
	}

	// Show the advisory figure; the printed slip carries the server's.
	if card.Session != nil {
		reading := metering.Reading(*card.Session, time.Now())
		fmt.Printf("local estimate: %s after %s\n",
			receipt.FormatEGP(metering.RoundDisplay(reading.Amount)), reading.Formatted)
	}

	invoice, err := r.checkout.EndDeviceSession(ctx, args[0])
	if err != nil {
		fmt.Println("cannot end session:", userMessage(err))
		return
	}
	fmt.Print(receipt.RenderSessionInvoice(card.Name, invoice))
}

func userMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return err.Error()
}
