package schedule

import (
	"testing"
	"time"

	"github.com/VidaClinicas/clinic-agenda/internal/httperr"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestNewInterval(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr bool
	}{
		{"valido", at(9, 0), at(10, 0), false},
		{"duracao zero", at(9, 0), at(9, 0), true},
		{"fim antes do inicio", at(10, 0), at(9, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInterval(tt.start, tt.end)
			if tt.wantErr {
				if !httperr.IsBusiness(err, CodeInvalidInterval) {
					t.Fatalf("esperava invalid_interval, obteve %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("erro inesperado: %v", err)
			}
		})
	}
}

func TestIntervalOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{
			name: "sobreposicao parcial",
			a:    Interval{at(9, 0), at(10, 0)},
			b:    Interval{at(9, 30), at(10, 30)},
			want: true,
		},
		{
			name: "contido",
			a:    Interval{at(9, 0), at(11, 0)},
			b:    Interval{at(9, 30), at(10, 0)},
			want: true,
		},
		{
			name: "identico",
			a:    Interval{at(9, 0), at(10, 0)},
			b:    Interval{at(9, 0), at(10, 0)},
			want: true,
		},
		{
			// meio-aberto: fim de um encostando no início do outro
			name: "adjacente nao conflita",
			a:    Interval{at(9, 0), at(10, 0)},
			b:    Interval{at(10, 0), at(11, 0)},
			want: false,
		},
		{
			name: "disjunto",
			a:    Interval{at(9, 0), at(10, 0)},
			b:    Interval{at(14, 0), at(15, 0)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Fatalf("a.Overlaps(b) = %v, esperava %v", got, tt.want)
			}
			// o predicado é simétrico
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Fatalf("b.Overlaps(a) = %v, esperava %v", got, tt.want)
			}
		})
	}
}

func TestIntervalContains(t *testing.T) {
	iv := Interval{at(9, 0), at(10, 0)}

	if !iv.Contains(at(9, 0)) {
		t.Error("início deve pertencer ao intervalo")
	}
	if !iv.Contains(at(9, 59)) {
		t.Error("instante interno deve pertencer ao intervalo")
	}
	if iv.Contains(at(10, 0)) {
		t.Error("fim não pertence ao intervalo meio-aberto")
	}
	if iv.Contains(at(8, 59)) {
		t.Error("instante anterior não pertence ao intervalo")
	}
}
