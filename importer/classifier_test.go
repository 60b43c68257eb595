package importer

import (
	"reflect"
	"testing"
)

func TestQuestionNumber(t *testing.T) {
	cases := []struct {
		column string
		want   int
		ok     bool
	}{
		{"Earned Pt 1", 1, true},
		{"earned pt_12", 12, true},
		{"EarnedPt-3", 3, true},
		{"earned 7", 7, true},
		{"earned_25", 25, true},
		{"Earned Points 4", 0, false},
		{"Possible Pt 1", 0, false},
		{"earned pt 1234", 0, false},
		{"Maths", 0, false},
	}
	for _, tc := range cases {
		got, ok := QuestionNumber(tc.column)
		if ok != tc.ok || got != tc.want {
			t.Errorf("QuestionNumber(%q) = %d, %v; want %d, %v", tc.column, got, ok, tc.want, tc.ok)
		}
	}
}

func TestClassifyColumnsOrdersByQuestion(t *testing.T) {
	c := ClassifyColumns([]string{"Name", "earned 10", "Earned Pt 2", "earned_1", "Possible 1"})
	want := []string{"earned_1", "Earned Pt 2", "earned 10"}
	if !reflect.DeepEqual(c.Earned, want) {
		t.Fatalf("Earned = %v, want %v", c.Earned, want)
	}
	if !c.HasEarned() {
		t.Fatal("expected earned columns")
	}
	if len(c.Collisions) != 0 {
		t.Fatalf("unexpected collisions: %v", c.Collisions)
	}
}

func TestClassifyColumnsLaterColumnWins(t *testing.T) {
	c := ClassifyColumns([]string{"earned 3", "EarnedPt 3"})
	if len(c.Earned) != 1 || c.Earned[0] != "EarnedPt 3" {
		t.Fatalf("Earned = %v, want [EarnedPt 3]", c.Earned)
	}
	if _, ok := c.Questions["earned 3"]; ok {
		t.Fatal("dropped column still mapped")
	}
	want := []Collision{{Question: 3, Dropped: "earned 3", Kept: "EarnedPt 3"}}
	if !reflect.DeepEqual(c.Collisions, want) {
		t.Fatalf("Collisions = %v, want %v", c.Collisions, want)
	}
}

func TestClassifyColumnsNone(t *testing.T) {
	c := ClassifyColumns([]string{"Name", "Maths", "Science"})
	if c.HasEarned() || len(c.Earned) != 0 {
		t.Fatalf("expected no earned columns, got %v", c.Earned)
	}
}
