package catalog

import "testing"

func TestFilterNolabelAndGroupedOr(t *testing.T) {
	pred, err := ParseFilter("nolabel && (x || yy && zz)")
	if err != nil {
		t.Fatalf("ParseFilter: %v", err)
	}
	paths := []string{"ax", "by", "zzxx", "zxaxz", "yyasdzz3", "asd3yyz"}
	want := []bool{false, false, true, false, true, false}
	for i, p := range paths {
		got, err := pred.Apply(p, nil, "")
		if err != nil {
			t.Fatalf("Apply(%q): %v", p, err)
		}
		if got != want[i] {
			t.Errorf("Apply(%q) = %v, want %v", p, got, want[i])
		}
	}
}

func TestFilterNolabelAgainstEmptyPath(t *testing.T) {
	pred, err := ParseFilter("nolabel")
	if err != nil {
		t.Fatalf("ParseFilter: %v", err)
	}
	got, err := pred.Apply("", nil, "")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !got {
		t.Errorf("Apply(\"\") = false, want true")
	}
}

func TestFilterPlainLiteralIsSubstringMatch(t *testing.T) {
	pred, err := ParseFilter("img2")
	if err != nil {
		t.Fatalf("ParseFilter: %v", err)
	}
	for path, want := range map[string]bool{
		"folder/img2.png": true,
		"folder/img3.png": false,
	} {
		got, err := pred.Apply(path, nil, "")
		if err != nil {
			t.Fatalf("Apply(%q): %v", path, err)
		}
		if got != want {
			t.Errorf("Apply(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestFilterNotBindsTighterThanAndOr(t *testing.T) {
	pred, err := ParseFilter("!a && b")
	if err != nil {
		t.Fatalf("ParseFilter: %v", err)
	}
	// !a && b means (!a) && b, not !(a && b).
	got, err := pred.Apply("b", nil, "")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !got {
		t.Errorf("Apply(\"b\") = false, want true since path does not contain \"a\"")
	}
	got, err = pred.Apply("ab", nil, "")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got {
		t.Errorf("Apply(\"ab\") = true, want false since path contains \"a\"")
	}
}

func TestFilterUnmatchedParenFails(t *testing.T) {
	if _, err := ParseFilter("(a && b"); err == nil {
		t.Fatal("ParseFilter succeeded on an unbalanced expression")
	}
}

func TestCatalogFilterByExprFallsBackToSubstringOnParseFailure(t *testing.T) {
	c := New([]PathPair{
		{Relative: "a/(unbalanced.png"},
		{Relative: "b/other.png"},
	}, "")
	c.FilterByExpr("(unbalanced", nil, "")
	if c.LenFiltered() != 1 {
		t.Fatalf("LenFiltered() = %d, want 1", c.LenFiltered())
	}
	_, label := c.FilteredIdxFileLabelPairs(0)
	if label != "(unbalanced.png" {
		t.Errorf("got label %q", label)
	}
}
