package match

import (
	"math"
	"testing"

	"acheiBack/internal/models"
)

func intp(v int) *int { return &v }

func lostItem(id int) models.Item {
	return models.Item{
		ID:         id,
		Name:       "black wallet",
		Status:     models.StatusLost,
		CategoryID: intp(1),
		LocationID: intp(2),
		ColorID:    intp(3),
		BrandID:    intp(4),
	}
}

func TestScoreSymmetry(t *testing.T) {
	cases := []struct {
		name string
		a, b models.Item
	}{
		{"full attributes", lostItem(1), models.Item{ID: 2, Name: "wallet", Status: models.StatusFound, CategoryID: intp(1), LocationID: intp(5)}},
		{"nil refs", models.Item{ID: 1, Name: "phone"}, models.Item{ID: 2, Name: "celular", ColorID: intp(1)}},
		{"empty text", models.Item{ID: 1, CategoryID: intp(7)}, models.Item{ID: 2, CategoryID: intp(7)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got, rev := Score(tc.a, tc.b), Score(tc.b, tc.a); got != rev {
				t.Fatalf("score not symmetric: %f vs %f", got, rev)
			}
		})
	}
}

func TestScoreIdenticalItems(t *testing.T) {
	a := lostItem(1)
	b := lostItem(2)
	b.Status = models.StatusFound

	if got := Score(a, b); math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("expected score 1.0 for identical attributes and text, got %f", got)
	}
}

func TestScoreNothingInCommon(t *testing.T) {
	a := models.Item{ID: 1, Name: "red umbrella", Status: models.StatusLost, CategoryID: intp(1), LocationID: intp(1), ColorID: intp(1), BrandID: intp(1)}
	b := models.Item{ID: 2, Name: "laptop charger", Status: models.StatusFound, CategoryID: intp(2), LocationID: intp(2), ColorID: intp(2), BrandID: intp(2)}

	if got := Score(a, b); got != 0 {
		t.Fatalf("expected score 0 for disjoint items, got %f", got)
	}
}

func TestScoreBothNullColorAndBrandCountAsMatch(t *testing.T) {
	a := models.Item{ID: 1, Name: "keys", CategoryID: intp(1)}
	b := models.Item{ID: 2, Name: "keys", CategoryID: intp(1)}

	// category 0.35 + color 0.15 + brand 0.10 + text 0.15; location one-sided null adds nothing
	want := weightCategory + weightColor + weightBrand + weightText
	if got := Score(a, b); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %f, got %f", want, got)
	}
}

func TestScoreOneSidedNullContributesZero(t *testing.T) {
	a := models.Item{ID: 1, CategoryID: intp(1), ColorID: intp(3)}
	b := models.Item{ID: 2, CategoryID: intp(1)}

	// color is null on one side only, so it does not count as a both-null match
	want := weightCategory + weightBrand + weightText // brand both null, text both empty
	if got := Score(a, b); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %f, got %f", want, got)
	}
}

func TestTextSimilarity(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "blue backpack", "blue backpack", 1},
		{"case insensitive", "Blue Backpack", "blue backpack", 1},
		{"diacritics folded", "Relógio de pulso", "relogio de pulso", 1},
		{"disjoint", "wallet", "umbrella", 0},
		{"partial", "black leather wallet", "black wallet", 2.0 / 3.0},
		{"both empty", "", "", 1},
		{"one empty", "wallet", "", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := textSimilarity(tc.a, tc.b); math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("textSimilarity(%q, %q) = %f, want %f", tc.a, tc.b, got, tc.want)
			}
		})
	}
}
