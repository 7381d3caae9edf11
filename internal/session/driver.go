// Package session implements the interactive menu-driven loop that
// drives the engine from a terminal. It owns all prompting and
// input parsing; the engine never reads input.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sufi2801/restaurant-billing-system/internal/engine"
	"github.com/sufi2801/restaurant-billing-system/internal/logger"
	"github.com/sufi2801/restaurant-billing-system/internal/models"
)

// Driver runs one operator session over an input and output stream.
type Driver struct {
	engine *engine.Engine
	in     *bufio.Scanner
	out    io.Writer
	logger *logger.Logger
}

// New creates a driver reading commands from in and writing the
// display to out.
func New(eng *engine.Engine, log *logger.Logger, in io.Reader, out io.Writer) *Driver {
	return &Driver{
		engine: eng,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: log,
	}
}

// Run executes the interactive loop until the operator exits, input
// ends, or the context is cancelled.
func (d *Driver) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		fmt.Fprint(d.out, "\n====== Restaurant Management System ======\n"+
			"1. View Full Menu\n"+
			"2. Create New Order (Dine-in / Takeaway)\n"+
			"3. Modify Existing Order (Add / Remove / Update qty)\n"+
			"4. Generate Bill & Close Order (KOT -> Receipt)\n"+
			"5. List Active Orders\n"+
			"6. Table Status\n"+
			"7. Toggle Item Availability (Admin)\n"+
			"8. Exit\n")

		opt, ok, err := d.promptInt("Choose option: ")
		if !ok {
			return nil
		}
		if err != nil {
			fmt.Fprintln(d.out, "Invalid input.")
			continue
		}
		d.logger.Debug("command_selected", map[string]any{"option": opt})

		switch opt {
		case 1:
			d.printMenu()
		case 2:
			d.createOrderFlow()
		case 3:
			d.modifyOrderFlow()
		case 4:
			d.billOrderFlow()
		case 5:
			d.listActiveOrders()
		case 6:
			d.tableStatus()
		case 7:
			d.toggleAvailabilityFlow()
		case 8:
			fmt.Fprintln(d.out, "Exiting...")
			return nil
		default:
			fmt.Fprintln(d.out, "Invalid option.")
		}
	}
}

// promptLine reads one trimmed input line. ok is false on EOF.
func (d *Driver) promptLine(label string) (string, bool) {
	fmt.Fprint(d.out, label)
	if !d.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(d.in.Text()), true
}

// promptInt reads one line and parses it as an integer.
func (d *Driver) promptInt(label string) (int, bool, error) {
	line, ok := d.promptLine(label)
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(line)
	return n, true, err
}

func (d *Driver) printMenu() {
	fmt.Fprintln(d.out, "\n========== MENU ==========")
	for _, cat := range models.Categories {
		fmt.Fprintf(d.out, "%s:\n", cat.Label())
		fmt.Fprintf(d.out, "Code  | %-20s | Price  | Avail\n", "Name")
		fmt.Fprintln(d.out, "-----------------------------------------------")
		for _, item := range d.engine.Catalog().ItemsByCategory(cat) {
			avail := "Yes"
			if !item.Available {
				avail = "No"
			}
			fmt.Fprintf(d.out, "%-5s | %-20s | %6s | %s\n",
				item.Code, item.Name, item.Price.StringFixed(2), avail)
		}
		fmt.Fprintln(d.out)
	}
	fmt.Fprintln(d.out, "==========================")
}

func (d *Driver) createOrderFlow() {
	dineIn, ok, err := d.promptInt("Dine-In (1) or Takeaway (0)? ")
	if !ok {
		return
	}
	if err != nil || (dineIn != 0 && dineIn != 1) {
		fmt.Fprintln(d.out, "Invalid input.")
		return
	}

	kind := models.Takeaway
	table := 0
	if dineIn == 1 {
		kind = models.DineIn
		table, ok, err = d.promptInt(fmt.Sprintf("Enter table number (1..%d): ", d.engine.MaxTables()))
		if !ok {
			return
		}
		if err != nil {
			fmt.Fprintln(d.out, "Invalid input.")
			return
		}
	}

	o, err := d.engine.CreateOrder(kind, table)
	if err != nil {
		d.printError(err)
		return
	}
	fmt.Fprintf(d.out, "Created Order KOT: %d\n", o.ID)

	d.addItemsLoop(o.ID)
	fmt.Fprintf(d.out, "Order saved. KOT: %d\n", o.ID)
}

// addItemsLoop prompts for item codes until the operator enters 0.
func (d *Driver) addItemsLoop(orderID int) {
	for {
		d.printMenu()
		code, ok := d.promptLine("Enter item code to add (or 0 to finish): ")
		if !ok || code == "0" {
			return
		}
		qty, ok, err := d.promptInt("Enter quantity: ")
		if !ok {
			return
		}
		if err != nil {
			fmt.Fprintln(d.out, "Invalid input.")
			continue
		}
		if err := d.engine.AddLine(orderID, code, qty); err != nil {
			d.printError(err)
			if errors.Is(err, models.ErrOrderFull) {
				return
			}
			continue
		}
		fmt.Fprintln(d.out, "Added.")
	}
}

func (d *Driver) modifyOrderFlow() {
	kot, ok, err := d.promptInt("Enter KOT (order id) to modify: ")
	if !ok {
		return
	}
	if err != nil {
		fmt.Fprintln(d.out, "Invalid input.")
		return
	}
	o, err := d.engine.Order(kot)
	if err != nil {
		d.printError(err)
		return
	}
	if o.State != models.StateActive {
		fmt.Fprintln(d.out, "Order already closed.")
		return
	}

	for {
		fmt.Fprintf(d.out, "\nModify Order KOT %d\n", kot)
		fmt.Fprint(d.out, "1. Add Item\n2. Remove Item\n3. Update Item Quantity\n4. Show Order Details\n5. Back\n")
		choice, ok, err := d.promptInt("Choice: ")
		if !ok {
			return
		}
		if err != nil {
			fmt.Fprintln(d.out, "Invalid input.")
			continue
		}

		switch choice {
		case 1:
			d.printMenu()
			code, ok := d.promptLine("Item code to add: ")
			if !ok {
				return
			}
			qty, ok, err := d.promptInt("Quantity: ")
			if !ok {
				return
			}
			if err != nil {
				fmt.Fprintln(d.out, "Invalid input.")
				continue
			}
			if err := d.engine.AddLine(kot, code, qty); err != nil {
				d.printError(err)
			} else {
				fmt.Fprintln(d.out, "Added.")
			}
		case 2:
			code, ok := d.promptLine("Enter item code to remove: ")
			if !ok {
				return
			}
			if err := d.engine.RemoveLine(kot, code); err != nil {
				d.printError(err)
			} else {
				fmt.Fprintln(d.out, "Removed.")
			}
		case 3:
			code, ok := d.promptLine("Enter item code to update: ")
			if !ok {
				return
			}
			qty, ok, err := d.promptInt("Enter new quantity (0 to remove): ")
			if !ok {
				return
			}
			if err != nil {
				fmt.Fprintln(d.out, "Invalid input.")
				continue
			}
			if err := d.engine.SetLineQty(kot, code, qty); err != nil {
				d.printError(err)
			} else {
				fmt.Fprintln(d.out, "Updated.")
			}
		case 4:
			d.printOrderDetails(kot)
		case 5:
			return
		default:
			fmt.Fprintln(d.out, "Invalid choice.")
		}
	}
}

func (d *Driver) printOrderDetails(kot int) {
	o, err := d.engine.Order(kot)
	if err != nil {
		d.printError(err)
		return
	}
	fmt.Fprintf(d.out, "\nOrder KOT: %d | Type: %s | Table: %d | Items: %d\n",
		o.ID, o.Kind.Label(), o.TableNumber, len(o.Lines))
	if len(o.Lines) == 0 {
		fmt.Fprintln(d.out, "No items.")
		return
	}

	fmt.Fprintf(d.out, "%-6s %-25s %-6s %-8s\n", "Code", "Item", "Qty", "Amount")
	for _, line := range o.Lines {
		item, err := d.engine.Catalog().Lookup(line.Code)
		if err != nil {
			continue
		}
		amount := item.Price.Mul(decimalQty(line.Qty))
		fmt.Fprintf(d.out, "%-6s %-25s %-6d %-8s\n",
			item.Code, item.Name, line.Qty, amount.StringFixed(2))
	}

	bill, err := d.engine.PreviewBill(kot)
	if err != nil {
		d.printError(err)
		return
	}
	fmt.Fprintf(d.out, "Subtotal: %s | GST: %s | Service: %s | Discount: %s | Total: %s\n",
		bill.Subtotal.StringFixed(2), bill.GST.StringFixed(2), bill.Service.StringFixed(2),
		bill.Discount.StringFixed(2), bill.Total.StringFixed(2))
}

func (d *Driver) billOrderFlow() {
	kot, ok, err := d.promptInt("Enter KOT (order id) to bill: ")
	if !ok {
		return
	}
	if err != nil {
		fmt.Fprintln(d.out, "Invalid input.")
		return
	}

	_, path, err := d.engine.CloseOrder(kot, d.out)
	switch {
	case err == nil:
		fmt.Fprintf(d.out, "Receipt saved to: %s\n", path)
	case errors.Is(err, models.ErrReceiptPersistFailed):
		fmt.Fprintln(d.out, "Failed to write receipt to file. Order is closed.")
	default:
		d.printError(err)
	}
}

func (d *Driver) listActiveOrders() {
	fmt.Fprintln(d.out, "\nActive Orders:")
	fmt.Fprintln(d.out, "KOT   | Type     | Table | Items | Time")
	fmt.Fprintln(d.out, "----------------------------------------------")
	for _, o := range d.engine.ActiveOrders() {
		fmt.Fprintf(d.out, "%-5d | %-8s | %-5d | %-5d | %s\n",
			o.ID, o.Kind.Label(), o.TableNumber, len(o.Lines), o.OpenedAt.Format(time.ANSIC))
	}
}

func (d *Driver) tableStatus() {
	fmt.Fprintf(d.out, "\nTable Status (1..%d):\n", d.engine.MaxTables())
	for _, ts := range d.engine.TableStatuses() {
		if ts.Occupied {
			fmt.Fprintf(d.out, "Table %2d: Occupied (KOT %d, items %d)\n", ts.Table, ts.KOT, ts.Lines)
		} else {
			fmt.Fprintf(d.out, "Table %2d: Free\n", ts.Table)
		}
	}
}

func (d *Driver) toggleAvailabilityFlow() {
	d.printMenu()
	code, ok := d.promptLine("Enter item code to toggle availability: ")
	if !ok {
		return
	}
	avail, err := d.engine.ToggleAvailability(code)
	if err != nil {
		d.printError(err)
		return
	}
	item, err := d.engine.Catalog().Lookup(code)
	if err != nil {
		d.printError(err)
		return
	}
	state := "Available"
	if !avail {
		state = "Unavailable"
	}
	fmt.Fprintf(d.out, "%s now %s\n", item.Name, state)
}

func decimalQty(qty int) decimal.Decimal {
	return decimal.NewFromInt(int64(qty))
}

// printError maps engine errors to the short diagnostics of the
// original tool and keeps the session going.
func (d *Driver) printError(err error) {
	switch {
	case errors.Is(err, models.ErrUnknownItem):
		fmt.Fprintln(d.out, "Invalid item code.")
	case errors.Is(err, models.ErrUnavailable):
		fmt.Fprintln(d.out, "Item is not available.")
	case errors.Is(err, models.ErrInvalidQty):
		fmt.Fprintln(d.out, "Quantity must be positive.")
	case errors.Is(err, models.ErrOrderFull):
		fmt.Fprintln(d.out, "Order items full.")
	case errors.Is(err, models.ErrOrderClosed):
		fmt.Fprintln(d.out, "Order already closed.")
	case errors.Is(err, models.ErrOrderNotFound):
		fmt.Fprintln(d.out, "Order not found.")
	case errors.Is(err, models.ErrLineNotFound):
		fmt.Fprintln(d.out, "Item not found.")
	case errors.Is(err, models.ErrInvalidTable):
		fmt.Fprintln(d.out, "Invalid table.")
	case errors.Is(err, models.ErrTableOccupied):
		fmt.Fprintln(d.out, "Table occupied.")
	case errors.Is(err, models.ErrCapacityExceeded):
		fmt.Fprintln(d.out, "Capacity reached.")
	case errors.Is(err, models.ErrEmptyOrder):
		fmt.Fprintln(d.out, "Order has no items.")
	default:
		fmt.Fprintf(d.out, "Error: %v\n", err)
	}
}
