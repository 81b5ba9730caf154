package prompt

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ClaireRuysschaert/BudgetMate/internal/models"
	"github.com/ClaireRuysschaert/BudgetMate/internal/services"
)

func testLine(categoryName, subCategoryName string) *models.StatementLine {
	line := &models.StatementLine{
		OperationType: models.OperationTypeCard,
		Amount:        decimal.RequireFromString("-45.90"),
		OperationDate: time.Date(2024, 5, 23, 0, 0, 0, 0, time.UTC),
		Label:         "AMAZON FR",
	}
	if categoryName != "" {
		line.Category = &models.Category{Name: categoryName}
	}
	if subCategoryName != "" {
		line.SubCategory = &models.SubCategory{Name: subCategoryName}
	}
	return line
}

func TestDecideCategory(t *testing.T) {
	proposal := services.CategoryProposal{
		Label:       "AMAZON FR",
		Category:    "Shopping",
		SubCategory: "En ligne",
	}

	t.Run("accepts_proposal", func(t *testing.T) {
		console := NewConsole(strings.NewReader("y\n"), &bytes.Buffer{})

		category, subCategory, ok := console.DecideCategory(proposal)
		if !ok || category != "Shopping" || subCategory != "En ligne" {
			t.Errorf("got (%q, %q, %v)", category, subCategory, ok)
		}
	})

	t.Run("replaces_proposal", func(t *testing.T) {
		console := NewConsole(strings.NewReader("n\nMaison\nEquipement\n"), &bytes.Buffer{})

		category, subCategory, ok := console.DecideCategory(proposal)
		if !ok || category != "Maison" || subCategory != "Equipement" {
			t.Errorf("got (%q, %q, %v)", category, subCategory, ok)
		}
	})

	t.Run("quits", func(t *testing.T) {
		console := NewConsole(strings.NewReader("q\n"), &bytes.Buffer{})

		_, _, ok := console.DecideCategory(proposal)
		if ok {
			t.Error("expected cancellation")
		}
	})

	t.Run("eof_cancels", func(t *testing.T) {
		console := NewConsole(strings.NewReader(""), &bytes.Buffer{})

		_, _, ok := console.DecideCategory(proposal)
		if ok {
			t.Error("expected cancellation on EOF")
		}
	})

	t.Run("reprompts_on_garbage", func(t *testing.T) {
		console := NewConsole(strings.NewReader("bof\nyes\n"), &bytes.Buffer{})

		_, _, ok := console.DecideCategory(proposal)
		if !ok {
			t.Error("expected the second answer to be honored")
		}
	})
}

func TestDecideShare(t *testing.T) {
	t.Run("menu_choices", func(t *testing.T) {
		cases := []struct {
			answer string
			want   services.ShareDecision
		}{
			{"1", services.ShareOnce},
			{"2", services.ShareForever},
			{"3", services.DeclineOnce},
			{"4", services.DeclineForever},
		}
		for _, tc := range cases {
			console := NewConsole(strings.NewReader(tc.answer+"\n"), &bytes.Buffer{})

			outcome := console.DecideShare(testLine("Shopping", "En ligne"))
			if outcome.Decision != tc.want {
				t.Errorf("answer %q: decision = %q, want %q", tc.answer, outcome.Decision, tc.want)
			}
			if outcome.NewSubCategory != "" {
				t.Errorf("answer %q: unexpected refinement %+v", tc.answer, outcome)
			}
		}
	})

	t.Run("catch_all_offers_refinement", func(t *testing.T) {
		console := NewConsole(strings.NewReader("Maison\nEquipement\n1\n"), &bytes.Buffer{})

		outcome := console.DecideShare(testLine("Shopping et services", "autre"))
		if outcome.NewCategory != "Maison" || outcome.NewSubCategory != "Equipement" {
			t.Errorf("refinement = %+v", outcome)
		}
		if outcome.Decision != services.ShareOnce {
			t.Errorf("decision = %q, want share_once", outcome.Decision)
		}
	})

	t.Run("empty_refinement_keeps_categorization", func(t *testing.T) {
		console := NewConsole(strings.NewReader("\n2\n"), &bytes.Buffer{})

		outcome := console.DecideShare(testLine("Shopping et services", "autre"))
		if outcome.NewCategory != "" || outcome.NewSubCategory != "" {
			t.Errorf("expected no refinement, got %+v", outcome)
		}
		if outcome.Decision != services.ShareForever {
			t.Errorf("decision = %q, want share_forever", outcome.Decision)
		}
	})

	t.Run("eof_declines_once", func(t *testing.T) {
		console := NewConsole(strings.NewReader(""), &bytes.Buffer{})

		outcome := console.DecideShare(testLine("Shopping", "En ligne"))
		if outcome.Decision != services.DeclineOnce {
			t.Errorf("decision = %q, want decline_once", outcome.Decision)
		}
	})
}
