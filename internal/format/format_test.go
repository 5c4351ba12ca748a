package format

import (
	"errors"
	"testing"

	"github.com/ArielAmzalak/SenhasGF4/internal/models"
)

func TestPhone(t *testing.T) {
	t.Parallel()

	t.Run("formats eleven digit numbers", func(t *testing.T) {
		cases := map[string]string{
			"92981231234":       "(92) 98123-1234",
			"(92) 98123-1234":   "(92) 98123-1234",
			"92 98123 1234":     "(92) 98123-1234",
			"5592981231234":     "(92) 98123-1234",
			"+55 92 98123-1234": "(92) 98123-1234",
		}
		for in, want := range cases {
			got, err := Phone(in)
			if err != nil {
				t.Fatalf("Phone(%q): unexpected error %v", in, err)
			}
			if got != want {
				t.Fatalf("Phone(%q) = %q, want %q", in, got, want)
			}
		}
	})

	t.Run("rejects wrong digit counts", func(t *testing.T) {
		for _, in := range []string{"9812312", "929812312345", "5511981231", "55981231234567"} {
			if _, err := Phone(in); !errors.Is(err, models.ErrValidation) {
				t.Fatalf("Phone(%q): expected validation error, got %v", in, err)
			}
		}
	})

	t.Run("rejects empty and digit-less input", func(t *testing.T) {
		for _, in := range []string{"", "   ", "abc-def"} {
			if _, err := Phone(in); !errors.Is(err, models.ErrValidation) {
				t.Fatalf("Phone(%q): expected validation error, got %v", in, err)
			}
		}
	})

	t.Run("keeps the 55 prefix when the number already has eleven digits", func(t *testing.T) {
		got, err := Phone("55981231234")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "(92) 98123-1234"; got != want {
			t.Fatalf("Phone = %q, want %q", got, want)
		}
	})
}

func TestName(t *testing.T) {
	t.Parallel()

	if got := Name("  maria da silva "); got != "MARIA DA SILVA" {
		t.Fatalf("Name = %q", got)
	}
	if got := Name(Name("  maria ")); got != Name("  maria ") {
		t.Fatalf("Name is not idempotent: %q", got)
	}
	if got := Name("   "); got != "" {
		t.Fatalf("Name of blank input should be empty, got %q", got)
	}
}

func TestTruthy(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"Sim", "sim", "S", "true", "1", "y", "YES", "Ativo", "ATIVA", "on", "ok", " Sim "} {
		if !Truthy(in) {
			t.Fatalf("Truthy(%q) = false, want true", in)
		}
	}
	for _, in := range []string{"", "Nao", "Não", "false", "0", "off", "inativo", "2"} {
		if Truthy(in) {
			t.Fatalf("Truthy(%q) = true, want false", in)
		}
	}
}

func TestPositiveInt(t *testing.T) {
	t.Parallel()

	cases := map[string]int{
		"50":        50,
		" 50 ":      50,
		"50 senhas": 50,
		"":          0,
		"zero":      0,
		"0":         0,
		"-10":       10, // sign stripped with the other non-digits
	}
	for in, want := range cases {
		if got := PositiveInt(in); got != want {
			t.Fatalf("PositiveInt(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestFold(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Área":       "area",
		"  SETOR  ":  "setor",
		"Destino":    "destino",
		"não":        "nao",
		"Habilitada": "habilitada",
	}
	for in, want := range cases {
		if got := Fold(in); got != want {
			t.Fatalf("Fold(%q) = %q, want %q", in, got, want)
		}
	}
}
