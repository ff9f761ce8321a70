package main

import (
	"math"
	"math/big"
)

// CategoryStats накапливает длительности одной категории.
// Инвариант: Min <= v <= Max для всех v, Sum == Σ Values, Count == len(Values).
// Sum не ограничена int64: сумма больших длительностей не переполняется.
type CategoryStats struct {
	Name   string
	Count  int
	Sum    *big.Int
	Max    int64
	Min    int64
	Values []int64
}

func newCategoryStats(name string) *CategoryStats {
	return &CategoryStats{Name: name, Sum: new(big.Int)}
}

// Add учитывает очередное значение.
func (s *CategoryStats) Add(v int64) {
	if s.Count == 0 || v > s.Max {
		s.Max = v
	}
	if s.Count == 0 || v < s.Min {
		s.Min = v
	}
	s.Count++
	s.Sum.Add(s.Sum, big.NewInt(v))
	s.Values = append(s.Values, v)
}

// Average возвращает среднее, округлённое до ближайшего float64; 0 для пустой категории.
func (s *CategoryStats) Average() float64 {
	if s.Count == 0 {
		return 0
	}
	avg, _ := new(big.Rat).SetFrac(s.Sum, big.NewInt(int64(s.Count))).Float64()
	return avg
}

// StdDev возвращает выборочное стандартное отклонение (делим на n-1).
// Для одного значения отклонение равно 0.
func (s *CategoryStats) StdDev() float64 {
	if s.Count < 2 {
		return 0
	}
	mean := s.Average()
	var sq float64
	for _, v := range s.Values {
		d := float64(v) - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(s.Count-1))
}
