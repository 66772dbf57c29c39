package settlement

import (
	"strconv"
	"strings"
	"time"

	"github.com/shinyyama/auction-backend/internal/model"
	"github.com/shopspring/decimal"
)

// WinDetails feeds the winner message template.
type WinDetails struct {
	Title       string
	Amount      int64
	Currency    string
	Phone       string
	PaymentDays int
	AuctionID   string
	ClosedAt    string
	Quantity    int
}

// FormatAmount renders a whole-unit price with two decimals.
func FormatAmount(amount int64) string {
	return decimal.NewFromInt(amount).StringFixed(2)
}

func quantitySuffix(qty int) string {
	switch {
	case qty == 1:
		return " (1 copia)"
	case qty > 1:
		return " (" + strconv.Itoa(qty) + " copias)"
	}
	return ""
}

func defaultTemplate(d WinDetails) string {
	phone := d.Phone
	if phone == "" {
		phone = "contacto no indicado"
	}
	return "¡Felicitaciones! Ganaste la subasta \"" + d.Title + "\"" + quantitySuffix(d.Quantity) +
		" por " + d.Currency + " " + FormatAmount(d.Amount) + ". Puedes comunicarte al " + phone + "."
}

// Render substitutes the placeholder tokens into tpl. A blank template falls
// back to the default congratulation text.
func Render(tpl string, d WinDetails) string {
	if d.Currency == "" {
		d.Currency = "S/"
	}
	base := tpl
	if strings.TrimSpace(base) == "" {
		base = defaultTemplate(d)
	}
	qty := ""
	if d.Quantity > 0 {
		qty = strconv.Itoa(d.Quantity)
	}
	r := strings.NewReplacer(
		"{{titulo}}", d.Title,
		"{{monto}}", FormatAmount(d.Amount),
		"{{moneda}}", d.Currency,
		"{{telefono}}", d.Phone,
		"{{diasLimite}}", strconv.Itoa(d.PaymentDays),
		"{{idSubasta}}", d.AuctionID,
		"{{fechaCierre}}", d.ClosedAt,
		"{{cantidad}}", qty,
	)
	return r.Replace(base)
}

// Formatter carries the per-deployment settings of winner messages.
type Formatter struct {
	Currency    string
	PaymentDays int
	DateLayout  string
	Location    *time.Location
}

func (f Formatter) Details(a *model.Auction, amount int64, qty int, at time.Time) WinDetails {
	loc := f.Location
	if loc == nil {
		loc = time.UTC
	}
	layout := f.DateLayout
	if layout == "" {
		layout = "2/1/2006, 15:04:05"
	}
	return WinDetails{
		Title:       a.Title,
		Amount:      amount,
		Currency:    f.Currency,
		Phone:       a.SellerContact,
		PaymentDays: f.PaymentDays,
		AuctionID:   a.ID,
		ClosedAt:    at.In(loc).Format(layout),
		Quantity:    qty,
	}
}

// Message renders the winner text for a using its own template.
func (f Formatter) Message(a *model.Auction, amount int64, qty int, at time.Time) string {
	return Render(a.WinMessageTemplate, f.Details(a, amount, qty, at))
}

// ClosePrice is the price announced when an auction closes by bid or timeout.
func ClosePrice(a *model.Auction) int64 {
	return a.Price()
}

// BuyNowPrice is the price announced for a direct purchase.
func BuyNowPrice(a *model.Auction) int64 {
	if a.BuyNowPrice != nil && *a.BuyNowPrice > 0 {
		return *a.BuyNowPrice
	}
	return a.Price()
}

// CloseQuantity is the number of copies the leader won; defaults to all copies.
func CloseQuantity(a *model.Auction) int {
	if q := a.Winners()[a.LeaderUID]; q > 0 {
		return q
	}
	if a.TotalCopies > 0 {
		return a.TotalCopies
	}
	return 1
}
