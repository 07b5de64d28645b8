package core

import "testing"

func TestScores(t *testing.T) {
	t.Run("no deal is neutral", func(t *testing.T) {
		s, b := Scores(false, 0, 40000, 48000)
		if s != 0.0 || b != 0.0 {
			t.Errorf("no deal must score exactly 0.0/0.0, got %v/%v", s, b)
		}
	})

	t.Run("deal surplus is signed and exact", func(t *testing.T) {
		s, b := Scores(true, 45000, 40000, 48000)
		if s != (45000.0-40000.0)/40000.0 {
			t.Errorf("seller score = %v", s)
		}
		if b != (48000.0-45000.0)/48000.0 {
			t.Errorf("buyer score = %v", b)
		}
	})

	t.Run("bad deal goes negative", func(t *testing.T) {
		s, b := Scores(true, 30000, 40000, 25000)
		if s >= 0 {
			t.Errorf("selling below estimate should be negative, got %v", s)
		}
		if b >= 0 {
			t.Errorf("buying above estimate should be negative, got %v", b)
		}
	})
}
