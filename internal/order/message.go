package order

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"menulink/internal/cart"
	"menulink/internal/models"
)

type Locale string

const (
	LocaleID Locale = "id"
	LocaleEN Locale = "en"
)

const (
	TypeDineIn   = "dine-in"
	TypeTakeaway = "takeaway"
	TypeDelivery = "delivery"
)

// Context is the transient checkout metadata. It lives only between the
// order form and dispatch.
type Context struct {
	CustomerName string
	OrderType    string
	TableNumber  string
	CustomerNote string
}

func ValidOrderType(t string) bool {
	return t == TypeDineIn || t == TypeTakeaway || t == TypeDelivery
}

const divider = "-------------------"

// Indonesian grouping: "." as thousands separator.
var rupiahPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah renders an integer Rupiah amount, e.g. 25000 -> "Rp 25.000".
func FormatRupiah(amount int64) string {
	return rupiahPrinter.Sprintf("Rp %d", amount)
}

var indonesianDays = map[time.Weekday]string{
	time.Sunday:    "Minggu",
	time.Monday:    "Senin",
	time.Tuesday:   "Selasa",
	time.Wednesday: "Rabu",
	time.Thursday:  "Kamis",
	time.Friday:    "Jumat",
	time.Saturday:  "Sabtu",
}

var indonesianMonths = map[time.Month]string{
	time.January:   "Januari",
	time.February:  "Februari",
	time.March:     "Maret",
	time.April:     "April",
	time.May:       "Mei",
	time.June:      "Juni",
	time.July:      "Juli",
	time.August:    "Agustus",
	time.September: "September",
	time.October:   "Oktober",
	time.November:  "November",
	time.December:  "Desember",
}

func formatDateTime(now time.Time, locale Locale) string {
	if locale == LocaleID {
		return fmt.Sprintf("%s, %d %s %d %02d:%02d",
			indonesianDays[now.Weekday()], now.Day(), indonesianMonths[now.Month()],
			now.Year(), now.Hour(), now.Minute())
	}
	return now.Format("Monday, 2 January 2006 15:04")
}

func orderTypeLabel(orderType string, locale Locale) string {
	if locale == LocaleID {
		switch orderType {
		case TypeDineIn:
			return "Makan di Tempat"
		case TypeTakeaway:
			return "Bawa Pulang"
		}
		return "Delivery"
	}
	switch orderType {
	case TypeDineIn:
		return "Dine In"
	case TypeTakeaway:
		return "Takeaway"
	}
	return "Delivery"
}

// sanitizeText drops characters known to corrupt the transport encoding:
// variation selectors, zero-width joiners and invalid UTF-8 sequences.
// Emoji survive double URL-encoding badly, so the transcript stays plain
// text.
func sanitizeText(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 0xFE00 && r <= 0xFE0F: // variation selectors
		case r == 0x200D: // zero-width joiner
		case r == utf8.RuneError:
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// BuildMessage renders the order transcript sent through the messaging
// deep link. Pure: no I/O, no side effects. Section order is fixed (header,
// store identity and date, customer block, itemized lines, total, optional
// free-text note, footer); empty optional fields are omitted entirely.
func BuildMessage(lines []cart.Line, orderCtx Context, settings models.StoreSettings, locale Locale, now time.Time) string {
	storeName := sanitizeText(settings.StoreName)
	if storeName == "" {
		storeName = "Store"
	}

	id := locale == LocaleID
	out := make([]string, 0, 16+4*len(lines))

	// Header and store identity
	if id {
		out = append(out, "=== PESANAN BARU ===")
	} else {
		out = append(out, "=== NEW ORDER ===")
	}
	out = append(out, "", storeName, formatDateTime(now, locale), divider, "")

	// Customer block
	if name := sanitizeText(orderCtx.CustomerName); name != "" {
		if id {
			out = append(out, "Nama: "+name)
		} else {
			out = append(out, "Name: "+name)
		}
	}
	if id {
		out = append(out, "Tipe: "+orderTypeLabel(orderCtx.OrderType, locale))
	} else {
		out = append(out, "Type: "+orderTypeLabel(orderCtx.OrderType, locale))
	}
	if table := sanitizeText(orderCtx.TableNumber); orderCtx.OrderType == TypeDineIn && table != "" {
		if id {
			out = append(out, "No. Meja: "+table)
		} else {
			out = append(out, "Table No: "+table)
		}
	}
	out = append(out, "")

	// Itemized lines
	if id {
		out = append(out, "--- DETAIL PESANAN ---")
	} else {
		out = append(out, "--- ORDER DETAILS ---")
	}
	out = append(out, "")

	totalItems := 0
	var totalPrice int64
	for i, line := range lines {
		totalItems += line.Quantity
		totalPrice += line.Subtotal()

		out = append(out, fmt.Sprintf("%d. %s", i+1, sanitizeText(line.Item.Name)))
		out = append(out, fmt.Sprintf("   %dx @ %s", line.Quantity, FormatRupiah(line.Item.Price)))
		out = append(out, "   = "+FormatRupiah(line.Subtotal()))
		if note := sanitizeText(line.Note); note != "" {
			if id {
				out = append(out, "   Catatan: "+note)
			} else {
				out = append(out, "   Note: "+note)
			}
		}
		out = append(out, "")
	}

	// Total
	out = append(out, divider)
	if id {
		out = append(out, fmt.Sprintf("TOTAL: %s (%d item)", FormatRupiah(totalPrice), totalItems))
	} else {
		out = append(out, fmt.Sprintf("TOTAL: %s (%d items)", FormatRupiah(totalPrice), totalItems))
	}
	out = append(out, divider)

	// Optional free-text note
	if note := sanitizeText(orderCtx.CustomerNote); note != "" {
		out = append(out, "")
		if id {
			out = append(out, "Catatan Tambahan:")
		} else {
			out = append(out, "Additional Notes:")
		}
		out = append(out, note)
	}

	// Footer
	out = append(out, "")
	if id {
		out = append(out, "Terima kasih!")
	} else {
		out = append(out, "Thank you!")
	}
	out = append(out, "- "+storeName+" -")

	return strings.Join(out, "\n")
}
