package geom

import "testing"

func TestFromPointsNormalizes(t *testing.T) {
	r := FromPoints(Pt(1970, 50), Pt(100, 100))
	if r.Min.X != 100 || r.Min.Y != 50 || r.Max.X != 1970 || r.Max.Y != 100 {
		t.Errorf("Expected (100,50)-(1970,100), got %s", r)
	}
}

func TestUnion(t *testing.T) {
	a := FromPoints(Pt(0, 0), Pt(1920, 1080))
	b := FromPoints(Pt(1920, 0), Pt(4480, 1440))
	u := a.Union(b)
	if u.Min.X != 0 || u.Min.Y != 0 || u.Max.X != 4480 || u.Max.Y != 1440 {
		t.Errorf("Expected (0,0)-(4480,1440), got %s", u)
	}
}

func TestIntersect(t *testing.T) {
	a := FromPoints(Pt(0, 0), Pt(100, 100))
	b := FromPoints(Pt(50, 50), Pt(200, 200))
	got, ok := a.Intersect(b)
	if !ok {
		t.Fatal("Expected overlap")
	}
	if got.Min.X != 50 || got.Min.Y != 50 || got.Max.X != 100 || got.Max.Y != 100 {
		t.Errorf("Expected (50,50)-(100,100), got %s", got)
	}

	c := FromPoints(Pt(200, 200), Pt(300, 300))
	if _, ok := a.Intersect(c); ok {
		t.Error("Expected no overlap for disjoint rectangles")
	}
}

func TestMeetsMinSpan(t *testing.T) {
	small := FromPoints(Pt(10, 10), Pt(12, 12))
	if small.MeetsMinSpan(5) {
		t.Error("3x3 selection should not meet the 5px minimum")
	}
	wide := FromPoints(Pt(0, 0), Pt(100, 3))
	if wide.MeetsMinSpan(5) {
		t.Error("Minimum span must hold in both axes")
	}
	ok := FromPoints(Pt(0, 0), Pt(5, 5))
	if !ok.MeetsMinSpan(5) {
		t.Error("5x5 selection should meet the 5px minimum")
	}
}

func TestContains(t *testing.T) {
	r := FromPoints(Pt(1920, 0), Pt(4480, 1440))
	if !r.Contains(Pt(1970, 50)) {
		t.Error("Expected point inside rect")
	}
	if r.Contains(Pt(4480, 0)) {
		t.Error("Max edge is exclusive")
	}
}
