package order

import (
	"strings"
	"testing"
	"time"

	"menulink/internal/cart"
	"menulink/internal/models"
)

var testTime = time.Date(2024, time.March, 8, 18, 30, 0, 0, time.UTC)

func testLines() []cart.Line {
	return []cart.Line{
		{Item: cart.ItemRef{ID: "1", Name: "Fried Rice", Price: 25000}, Quantity: 2},
		{Item: cart.ItemRef{ID: "2", Name: "Iced Tea", Price: 8000}, Quantity: 1, Note: "less sugar"},
	}
}

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "Rp 0"},
		{8000, "Rp 8.000"},
		{25000, "Rp 25.000"},
		{1250000, "Rp 1.250.000"},
	}

	for _, tt := range tests {
		if got := FormatRupiah(tt.amount); got != tt.want {
			t.Errorf("FormatRupiah(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestBuildMessageItemizedScenario(t *testing.T) {
	settings := models.StoreSettings{StoreName: "Warung Berkah", WhatsappNumber: "6281234567890"}
	msg := BuildMessage(testLines(), Context{OrderType: TypeTakeaway}, settings, LocaleEN, testTime)

	for _, want := range []string{
		"1. Fried Rice",
		"2x @ Rp 25.000",
		"= Rp 50.000",
		"2. Iced Tea",
		"Note: less sugar",
		"TOTAL: Rp 58.000 (3 items)",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildMessageOmitsEmptyOptionalSections(t *testing.T) {
	settings := models.StoreSettings{StoreName: "Warung Berkah"}
	msg := BuildMessage(testLines(), Context{OrderType: TypeTakeaway}, settings, LocaleEN, testTime)

	for _, absent := range []string{"Name:", "Table No:", "Additional Notes:"} {
		if strings.Contains(msg, absent) {
			t.Errorf("message must omit %q when the field is empty:\n%s", absent, msg)
		}
	}
	if !strings.Contains(msg, "Type: Takeaway") {
		t.Errorf("order type line is mandatory:\n%s", msg)
	}
}

func TestBuildMessageSectionOrdering(t *testing.T) {
	settings := models.StoreSettings{StoreName: "Warung Berkah"}
	orderCtx := Context{
		CustomerName: "Budi",
		OrderType:    TypeDineIn,
		TableNumber:  "12",
		CustomerNote: "no cutlery please",
	}
	msg := BuildMessage(testLines(), orderCtx, settings, LocaleEN, testTime)

	markers := []string{
		"=== NEW ORDER ===",
		"Warung Berkah",
		"Name: Budi",
		"Type: Dine In",
		"Table No: 12",
		"--- ORDER DETAILS ---",
		"1. Fried Rice",
		"TOTAL:",
		"Additional Notes:",
		"no cutlery please",
		"Thank you!",
	}

	last := -1
	for _, marker := range markers {
		idx := strings.Index(msg, marker)
		if idx < 0 {
			t.Fatalf("message missing section %q:\n%s", marker, msg)
		}
		if idx < last {
			t.Fatalf("section %q out of order:\n%s", marker, msg)
		}
		last = idx
	}
}

func TestBuildMessageTableOnlyForDineIn(t *testing.T) {
	settings := models.StoreSettings{StoreName: "Warung Berkah"}
	orderCtx := Context{OrderType: TypeDelivery, TableNumber: "12"}

	msg := BuildMessage(testLines(), orderCtx, settings, LocaleEN, testTime)
	if strings.Contains(msg, "Table No:") {
		t.Errorf("table number must be omitted outside dine-in:\n%s", msg)
	}
}

func TestBuildMessageIndonesianLocale(t *testing.T) {
	settings := models.StoreSettings{StoreName: "Warung Berkah"}
	orderCtx := Context{CustomerName: "Budi", OrderType: TypeDineIn, TableNumber: "3"}

	msg := BuildMessage(testLines(), orderCtx, settings, LocaleID, testTime)

	for _, want := range []string{
		"=== PESANAN BARU ===",
		"Nama: Budi",
		"Tipe: Makan di Tempat",
		"No. Meja: 3",
		"--- DETAIL PESANAN ---",
		"Catatan: less sugar",
		"TOTAL: Rp 58.000 (3 item)",
		"Terima kasih!",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildMessageDefaultsStoreName(t *testing.T) {
	msg := BuildMessage(testLines(), Context{OrderType: TypeTakeaway}, models.StoreSettings{}, LocaleEN, testTime)
	if !strings.Contains(msg, "Store") {
		t.Errorf("expected fallback store label:\n%s", msg)
	}
}

func TestSanitizeTextStripsTransportBreakers(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"spicy \ufe0f", "spicy"},
		{"a\u200db", "ab"},
		{"  plain  ", "plain"},
		{"sate ayam", "sate ayam"},
	}

	for _, tt := range tests {
		if got := sanitizeText(tt.in); got != tt.want {
			t.Errorf("sanitizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
