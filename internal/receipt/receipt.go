package receipt

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"pos-terminal/internal/api"
)

// GenerateReceiptNumber builds a terminal-local receipt reference. The
// server's orderCode stays the authoritative identifier; this number only
// labels the printed slip.
func GenerateReceiptNumber() string {
	now := time.Now().UTC()

	datePart := now.Format("20060102-150405")
	millis := now.Nanosecond() / int(time.Millisecond)

	// 4-digit cryptographic random
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		// fallback: time-based entropy
		n = big.NewInt(now.UnixNano() % 10000)
	}

	return fmt.Sprintf(
		"RCP-%s-%03d-%04d",
		datePart,
		millis,
		n.Int64(),
	)
}

// FormatEGP renders an amount the way the terminal displays prices.
func FormatEGP(amount float64) string {
	return fmt.Sprintf("%.2f EGP", amount)
}

const lineWidth = 40

// Render produces the plain-text slip for the thermal printer.
func Render(order *api.Order) string {
	var b strings.Builder

	writeCentered(&b, "CAFE RECEIPT")
	writeCentered(&b, GenerateReceiptNumber())
	b.WriteString(strings.Repeat("-", lineWidth) + "\n")

	if order.OrderCode != "" {
		fmt.Fprintf(&b, "Order:   %s\n", order.OrderCode)
	}
	if order.CustomerDetails.Name != "" {
		fmt.Fprintf(&b, "Guest:   %s (%d)\n", order.CustomerDetails.Name, order.CustomerDetails.Guests)
	}
	if order.Table != nil {
		fmt.Fprintf(&b, "Table:   %d\n", order.Table.TableNo)
	}
	b.WriteString(strings.Repeat("-", lineWidth) + "\n")

	for _, item := range order.Items {
		lineTotal := item.UnitPrice * float64(item.Quantity)
		name := fmt.Sprintf("%dx %s", item.Quantity, item.Item)
		writeRow(&b, name, FormatEGP(lineTotal))
	}

	b.WriteString(strings.Repeat("-", lineWidth) + "\n")
	writeRow(&b, "Subtotal", FormatEGP(order.Bills.Subtotal))
	writeRow(&b, "Tax", FormatEGP(order.Bills.Tax))
	writeRow(&b, "TOTAL", FormatEGP(order.Bills.Total))
	b.WriteString(strings.Repeat("-", lineWidth) + "\n")

	fmt.Fprintf(&b, "Paid by: %s\n", order.PaymentMethod)
	writeCentered(&b, "Thank you!")

	return b.String()
}

// RenderSessionInvoice produces the slip for a finished rental session.
func RenderSessionInvoice(deviceName string, invoice *api.SessionInvoice) string {
	var b strings.Builder

	writeCentered(&b, "PLAYSTATION SESSION")
	writeCentered(&b, GenerateReceiptNumber())
	b.WriteString(strings.Repeat("-", lineWidth) + "\n")

	writeRow(&b, "Device", deviceName)
	writeRow(&b, "Duration", fmt.Sprintf("%d min", invoice.DurationMinutes))
	writeRow(&b, "TOTAL", FormatEGP(invoice.Amount))
	b.WriteString(strings.Repeat("-", lineWidth) + "\n")
	writeCentered(&b, "Thank you!")

	return b.String()
}

func writeRow(b *strings.Builder, left, right string) {
	pad := lineWidth - len(left) - len(right)
	if pad < 1 {
		pad = 1
	}
	b.WriteString(left + strings.Repeat(" ", pad) + right + "\n")
}

func writeCentered(b *strings.Builder, text string) {
	pad := (lineWidth - len(text)) / 2
	if pad < 0 {
		pad = 0
	}
	b.WriteString(strings.Repeat(" ", pad) + text + "\n")
}
