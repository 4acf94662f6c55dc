package spreadsheet

import (
	"testing"
)

func BenchmarkLargeCellPopulation(b *testing.B) {
	for i := 0; i < b.N; i++ {
		s := NewSheet()
		for row := 0; row < 100; row++ {
			for col := 0; col < 26; col++ {
				s.SetCell(Position{Row: row, Col: col}, "1")
			}
		}
	}
}

func BenchmarkFormulaDependencyChain(b *testing.B) {
	s := NewSheet()
	s.SetCell(Position{Row: 0, Col: 0}, "1")
	for row := 1; row < 100; row++ {
		above := Position{Row: row - 1, Col: 0}
		s.SetCell(Position{Row: row, Col: 0}, "="+above.String()+"+1")
	}
	last := Position{Row: 99, Col: 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.SetCell(Position{Row: 0, Col: 0}, "2")
		s.Value(last)
	}
}

func BenchmarkWideDependencyFanOut(b *testing.B) {
	s := NewSheet()
	s.SetCell(Position{Row: 0, Col: 0}, "100")
	for row := 1; row < 500; row++ {
		s.SetCell(Position{Row: row, Col: 1}, "=A1*2")
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.SetCell(Position{Row: 0, Col: 0}, "7")
		for row := 1; row < 500; row++ {
			s.Value(Position{Row: row, Col: 1})
		}
	}
}

func BenchmarkCycleRejection(b *testing.B) {
	s := NewSheet()
	for row := 0; row < 200; row++ {
		below := Position{Row: row + 1, Col: 0}
		s.SetCell(Position{Row: row, Col: 0}, "="+below.String())
	}
	bottom := Position{Row: 200, Col: 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.SetCell(bottom, "=A1"); err == nil {
			b.Fatal("expected circular dependency")
		}
	}
}
