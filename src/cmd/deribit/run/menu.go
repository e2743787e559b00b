package run

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/jiaming2012/deribit-trading/src/eventservices"
	"github.com/jiaming2012/deribit-trading/src/models"
)

type MenuOption int

const (
	PlaceOrderOption MenuOption = iota + 1
	CancelOrderOption
	OrderBookOption
	PositionsOption
	InstrumentsOption
	ModifyOrderOption
	ExitOption
)

// Menu reads whitespace separated answers from in and writes results to out. Each
// operation runs to completion before the menu is shown again.
type Menu struct {
	Client   *eventservices.DeribitClient
	Token    *oauth2.Token
	Currency string
	Kind     string

	in    *bufio.Scanner
	out   io.Writer
	words <-chan string
}

func NewMenu(in io.Reader, out io.Writer, client *eventservices.DeribitClient, token *oauth2.Token, currency, kind string) *Menu {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)

	return &Menu{
		Client:   client,
		Token:    token,
		Currency: currency,
		Kind:     kind,
		in:       scanner,
		out:      out,
	}
}

// Run returns on Exit, at the end of input, or once ctx is cancelled.
func (m *Menu) Run(ctx context.Context) {
	done := make(chan struct{})
	defer close(done)
	m.words = m.scan(done)

	for {
		m.printMenu()

		choice, ok := m.next(ctx)
		if !ok {
			if ctx.Err() != nil {
				log.Info("Interrupted, leaving the menu")
			}
			fmt.Fprintln(m.out, "\nExiting. Thank you!")
			return
		}

		option, err := strconv.Atoi(choice)
		if err != nil {
			log.Errorf("Invalid option %q. Try again.", choice)
			continue
		}

		switch MenuOption(option) {
		case PlaceOrderOption:
			m.placeOrder(ctx)
		case CancelOrderOption:
			m.cancelOrder(ctx)
		case OrderBookOption:
			m.orderBook(ctx)
		case PositionsOption:
			m.positions(ctx)
		case InstrumentsOption:
			m.instruments(ctx)
		case ModifyOrderOption:
			m.modifyOrder(ctx)
		case ExitOption:
			fmt.Fprintln(m.out, "Exiting. Thank you!")
			return
		default:
			log.Errorf("Invalid option %d. Try again.", option)
		}
	}
}

func (m *Menu) printMenu() {
	fmt.Fprint(m.out, "\n=== Deribit Trading System Menu ===\n"+
		"1. Place Order\n"+
		"2. Cancel Order\n"+
		"3. Get Order Book\n"+
		"4. View Current Positions\n"+
		"5. List Supported Instruments\n"+
		"6. Modify Order\n"+
		"7. Exit\n"+
		"Enter your choice: ")
}

// scan feeds words from the input until it is exhausted or done is closed.
func (m *Menu) scan(done <-chan struct{}) <-chan string {
	words := make(chan string)

	go func() {
		defer close(words)
		for m.in.Scan() {
			select {
			case words <- m.in.Text():
			case <-done:
				return
			}
		}
	}()

	return words
}

func (m *Menu) next(ctx context.Context) (string, bool) {
	select {
	case <-ctx.Done():
		return "", false
	case word, ok := <-m.words:
		if !ok || ctx.Err() != nil {
			return "", false
		}
		return word, true
	}
}

func (m *Menu) prompt(ctx context.Context, label string) (string, bool) {
	fmt.Fprint(m.out, label)
	return m.next(ctx)
}

func (m *Menu) promptFloat(ctx context.Context, label string) (float64, bool) {
	answer, ok := m.prompt(ctx, label)
	if !ok {
		return 0, false
	}

	value, err := strconv.ParseFloat(answer, 64)
	if err != nil {
		log.Errorf("invalid number %q: %v", answer, err)
		return 0, false
	}

	return value, true
}

func (m *Menu) placeOrder(ctx context.Context) {
	instrument, ok := m.prompt(ctx, "Enter instrument name: ")
	if !ok {
		return
	}

	amount, ok := m.promptFloat(ctx, "Enter amount: ")
	if !ok {
		return
	}

	price, ok := m.promptFloat(ctx, "Enter price: ")
	if !ok {
		return
	}

	result, err := m.Client.PlaceBuyOrder(ctx, m.Token, instrument, amount, price)
	if err != nil {
		log.WithContext(ctx).Errorf("Error placing order: %v", err)
		return
	}

	fmt.Fprintf(m.out, "Order placed successfully: %s\n", models.FormatOrder(result.Order))
}

func (m *Menu) cancelOrder(ctx context.Context) {
	orderID, ok := m.prompt(ctx, "Enter order ID to cancel: ")
	if !ok {
		return
	}

	order, err := m.Client.CancelOrder(ctx, m.Token, orderID)
	if err != nil {
		log.WithContext(ctx).Errorf("Error cancelling order: %v", err)
		return
	}

	fmt.Fprintf(m.out, "Order cancelled: %s\n", models.FormatOrder(*order))
}

func (m *Menu) orderBook(ctx context.Context) {
	instrument, ok := m.prompt(ctx, "Enter instrument name: ")
	if !ok {
		return
	}

	book, err := m.Client.FetchOrderBook(ctx, instrument)
	if err != nil {
		log.WithContext(ctx).Errorf("Error: %v", err)
		return
	}

	models.WriteOrderBook(m.out, instrument, book)
}

func (m *Menu) positions(ctx context.Context) {
	instrument, ok := m.prompt(ctx, "Enter instrument name: ")
	if !ok {
		return
	}

	position, err := m.Client.FetchPosition(ctx, m.Token, instrument)
	if err != nil {
		log.WithContext(ctx).Errorf("Error: %v", err)
		return
	}

	models.WritePosition(m.out, instrument, position)
}

func (m *Menu) instruments(ctx context.Context) {
	instruments, err := m.Client.FetchInstruments(ctx, m.Currency, m.Kind)
	if err != nil {
		log.WithContext(ctx).Errorf("Error fetching instruments: %v", err)
		return
	}

	models.WriteInstruments(m.out, instruments)
}

func (m *Menu) modifyOrder(ctx context.Context) {
	orderID, ok := m.prompt(ctx, "Enter Order ID to modify: ")
	if !ok {
		return
	}

	price, ok := m.promptFloat(ctx, "Enter new price: ")
	if !ok {
		return
	}

	quantity, ok := m.promptFloat(ctx, "Enter new quantity: ")
	if !ok {
		return
	}

	result, err := m.Client.EditOrder(ctx, m.Token, orderID, quantity, price)
	if err != nil {
		log.WithContext(ctx).Errorf("Error modifying order: %v", err)
		return
	}

	fmt.Fprintf(m.out, "Order modified successfully: %s\n", models.FormatOrder(result.Order))
}
