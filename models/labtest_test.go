package models

import "testing"

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		if !c.Valid() {
			t.Fatalf("%s should be valid", c)
		}
	}
	if Category("Dental").Valid() || Category("").Valid() {
		t.Fatal("unknown category accepted")
	}
}

func TestLabTestIsPopular(t *testing.T) {
	yes, no := true, false
	cases := []struct {
		flag *bool
		want bool
	}{{nil, false}, {&no, false}, {&yes, true}}
	for _, tc := range cases {
		if got := (LabTest{ID: "t1", Popular: tc.flag}).IsPopular(); got != tc.want {
			t.Fatalf("IsPopular(%v) = %v, want %v", tc.flag, got, tc.want)
		}
	}
}
