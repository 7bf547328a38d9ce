package enums

import "testing"

func TestParseCurrency(t *testing.T) {
	cases := []struct {
		in      string
		want    Currency
		wantErr bool
	}{
		{in: "PEN", want: CurrencyPEN},
		{in: " usd ", want: CurrencyUSD},
		{in: "clp", want: CurrencyCLP},
		{in: "EUR", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseCurrency(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseCurrency(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestCurrencyLabelAndOrder(t *testing.T) {
	list := Currencies()
	if len(list) != 5 || list[0] != CurrencyPEN || list[1] != CurrencyUSD {
		t.Fatalf("unexpected currency order %v", list)
	}
	if got := CurrencyMXN.Label(); got != "MXN - Mexican Peso" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := Currency("EUR").Label(); got != "EUR" {
		t.Fatalf("unknown currency label should fall back to code, got %q", got)
	}
	if CurrencyPEN.Symbol() != "S/" {
		t.Fatalf("unexpected PEN symbol %q", CurrencyPEN.Symbol())
	}
	list[0] = CurrencyCLP
	if Currencies()[0] != CurrencyPEN {
		t.Fatalf("Currencies must return a copy")
	}
}
