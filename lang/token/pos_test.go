package token

import "testing"

func TestPosString(t *testing.T) {
	cases := []struct {
		p    Pos
		want string
	}{
		{Pos{}, "-"},
		{Pos{Filename: "x.mt"}, "x.mt"},
		{Pos{Line: 3, Col: 7}, "3:7"},
		{Pos{Filename: "x.mt", Line: 3, Col: 7}, "x.mt:3:7"},
	}
	for _, c := range cases {
		if got := c.p.String(); got != c.want {
			t.Errorf("Pos%+v: want %q, got %q", c.p, c.want, got)
		}
	}
}

func TestPosIsValid(t *testing.T) {
	if (Pos{}).IsValid() {
		t.Error("zero Pos should not be valid")
	}
	if !(Pos{Line: 1, Col: 1}).IsValid() {
		t.Error("Pos{1,1} should be valid")
	}
}
