package areas

import (
	"errors"
	"testing"

	"github.com/ArielAmzalak/SenhasGF4/internal/models"
)

func TestResolveActive(t *testing.T) {
	t.Parallel()

	t.Run("returns only truthy areas", func(t *testing.T) {
		rows := [][]string{
			{"Área", "Ativa"},
			{"A", "Sim"},
			{"B", "Nao"},
			{"C", "1"},
		}
		got, err := ResolveActive(rows)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 || got[0].Name != "A" || got[1].Name != "C" {
			t.Fatalf("expected [A C], got %+v", got)
		}
	})

	t.Run("matches header synonyms case and accent insensitively", func(t *testing.T) {
		rows := [][]string{
			{"SETOR", "destino", "status", "limite"},
			{"Triagem", "Fila1", "Ativo", "25"},
		}
		got, err := ResolveActive(rows)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected 1 area, got %d", len(got))
		}
		a := got[0]
		if a.Name != "Triagem" || a.Sheet != "Fila1" || a.MaxTickets != 25 {
			t.Fatalf("unexpected area %+v", a)
		}
	})

	t.Run("defaults sheet to area name and missing flag to active", func(t *testing.T) {
		rows := [][]string{
			{"Area"},
			{"Credenciamento"},
		}
		got, err := ResolveActive(rows)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].Sheet != "Credenciamento" || !got[0].Active {
			t.Fatalf("unexpected areas %+v", got)
		}
	})

	t.Run("skips rows with blank area names", func(t *testing.T) {
		rows := [][]string{
			{"Area", "Ativa"},
			{"  ", "Sim"},
			{"", "Sim"},
			{"D", "Sim"},
		}
		got, err := ResolveActive(rows)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].Name != "D" {
			t.Fatalf("expected only D, got %+v", got)
		}
	})

	t.Run("fails when the area column is missing", func(t *testing.T) {
		rows := [][]string{
			{"Nome", "Ativa"},
			{"A", "Sim"},
		}
		if _, err := ResolveActive(rows); !errors.Is(err, models.ErrConfiguration) {
			t.Fatalf("expected configuration error, got %v", err)
		}
	})

	t.Run("empty table yields no areas and no error", func(t *testing.T) {
		got, err := ResolveActive(nil)
		if err != nil || got != nil {
			t.Fatalf("expected nil result, got %+v, %v", got, err)
		}
	})

	t.Run("unreadable quota cell means no limit", func(t *testing.T) {
		rows := [][]string{
			{"Area", "Limite"},
			{"A", "sem limite"},
		}
		got, err := ResolveActive(rows)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got[0].MaxTickets != 0 {
			t.Fatalf("expected no quota, got %d", got[0].MaxTickets)
		}
	})
}

func TestNeighborhoods(t *testing.T) {
	t.Parallel()

	t.Run("skips known header and keeps source order", func(t *testing.T) {
		rows := [][]string{
			{"Nome do Bairro"},
			{"Centro"},
			{""},
			{"Aleixo"},
			{"Compensa"},
		}
		got := Neighborhoods(rows)
		want := []string{"Centro", "Aleixo", "Compensa"}
		if len(got) != len(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected %v, got %v", want, got)
			}
		}
	})

	t.Run("keeps a first row that is not a header label", func(t *testing.T) {
		rows := [][]string{
			{"Centro"},
			{"Aleixo"},
		}
		got := Neighborhoods(rows)
		if len(got) != 2 || got[0] != "Centro" {
			t.Fatalf("expected first row kept, got %v", got)
		}
	})

	t.Run("does not deduplicate", func(t *testing.T) {
		rows := [][]string{
			{"Bairro"},
			{"Centro"},
			{"Centro"},
		}
		if got := Neighborhoods(rows); len(got) != 2 {
			t.Fatalf("expected duplicates preserved, got %v", got)
		}
	})
}
