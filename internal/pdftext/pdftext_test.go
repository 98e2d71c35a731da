package pdftext

import (
	"testing"

	"github.com/ledongthuc/pdf"
)

func TestJoinRow(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		want  string
	}{
		{
			name:  "table cells get a separator",
			words: []string{"03:00", "70 à 75", "210 à 225"},
			want:  "03:00 70 à 75 210 à 225",
		},
		{
			name:  "existing trailing space is kept",
			words: []string{"Séance ", "C1", " (Mardi le matin)"},
			want:  "Séance C1 (Mardi le matin)",
		},
		{
			name:  "empty words are dropped",
			words: []string{"", "Durée", "", ": 1h30"},
			want:  "Durée : 1h30",
		},
		{
			name:  "single word",
			words: []string{"Echauffement"},
			want:  "Echauffement",
		},
		{
			name:  "no words",
			words: nil,
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := make([]pdf.Text, len(tt.words))
			for i, s := range tt.words {
				content[i] = pdf.Text{S: s}
			}
			if got := joinRow(content); got != tt.want {
				t.Errorf("joinRow() = %q, want %q", got, tt.want)
			}
		})
	}
}
