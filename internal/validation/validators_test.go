package validation

import (
	"testing"

	"github.com/AuriPersonalAssist/auri-flow/internal/models"
)

func TestValidateTaskType(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"pontual", "estudo", "treino", "sono", "leitura", "outro"} {
		if err := ValidateTaskType(valid); err != nil {
			t.Errorf("Expected %q to be valid, got %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "projeto", "Estudo"} {
		if err := ValidateTaskType(invalid); err == nil {
			t.Errorf("Expected %q to be invalid, got nil", invalid)
		}
	}
}

func TestGUTRatingValidator(t *testing.T) {
	t.Parallel()

	for _, valid := range []int{1, 3, 5} {
		if err := Validate.Var(valid, "gut_rating"); err != nil {
			t.Errorf("Expected rating %d to be valid, got %v", valid, err)
		}
	}
	for _, invalid := range []int{0, 6, -1} {
		if err := Validate.Var(invalid, "gut_rating"); err == nil {
			t.Errorf("Expected rating %d to be invalid, got nil", invalid)
		}
	}
}

func TestValidateWeights(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		weights models.PillarWeights
		valid   bool
	}{
		{"normalized", models.PillarWeights{Development: 0.4, Physical: 0.3, Mental: 0.3}, true},
		{"even thirds", models.DefaultPillarWeights(), true},
		{"within tolerance", models.PillarWeights{Development: 0.34, Physical: 0.33, Mental: 0.335}, true},
		{"sum too low", models.PillarWeights{Development: 0.2, Physical: 0.2, Mental: 0.2}, false},
		{"sum too high", models.PillarWeights{Development: 0.5, Physical: 0.5, Mental: 0.5}, false},
		{"negative weight", models.PillarWeights{Development: -0.1, Physical: 0.6, Mental: 0.5}, false},
		{"weight above one", models.PillarWeights{Development: 1.2, Physical: -0.1, Mental: -0.1}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateWeights(tt.weights)
			if tt.valid && err != nil {
				t.Errorf("Expected weights to be valid, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("Expected weights to be rejected, got nil")
			}
		})
	}
}

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  ler um livro  ", "ler um livro"},
		{"keeps newline and tab", "linha1\n\tlinha2", "linha1\n\tlinha2"},
		{"strips control characters", "tarefa\x00com\x08lixo", "tarefacomlixo"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SanitizeText(tt.input); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
