package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AuriPersonalAssist/auri-flow/internal/calibration"
	"github.com/AuriPersonalAssist/auri-flow/internal/models"
	"github.com/AuriPersonalAssist/auri-flow/internal/scoring"
)

// batchFile is the YAML input for offline scoring
type batchFile struct {
	Weights *models.PillarWeights `yaml:"weights"`
	Tasks   []taskInput           `yaml:"tasks"`
}

type taskInput struct {
	ID           string                `yaml:"id"`
	Title        string                `yaml:"title"`
	Category     string                `yaml:"category"`
	StartAt      *time.Time            `yaml:"start_at"`
	EndAt        *time.Time            `yaml:"end_at"`
	DurationMin  *int                  `yaml:"duration_min"`
	Effort       *int                  `yaml:"effort"`
	Money        *float64              `yaml:"money"`
	Benefits     models.PillarBenefits `yaml:"benefits"`
	GUT          *models.GUT           `yaml:"gut"`
	Deadline     *deadlineInput        `yaml:"deadline"`
	Dependencies []string              `yaml:"dependencies"`
	Completed    bool                  `yaml:"completed"`
}

type deadlineInput struct {
	Due      time.Time `yaml:"due"`
	Rigidity int       `yaml:"rigidity"`
}

// NewScoreCmd creates the score command
func NewScoreCmd() *cobra.Command {
	var (
		tasksFile string
		calFile   string
		at        string
		withTrace bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a batch of tasks from a YAML file",
		Long:  "Run the scoring pipeline over a task batch without a database, useful for tuning calibration values",
		RunE: func(cmd *cobra.Command, args []string) error {
			if tasksFile == "" {
				return fmt.Errorf("--tasks is required")
			}

			cal, err := calibration.Load(calFile)
			if err != nil {
				return fmt.Errorf("failed to load calibration: %w", err)
			}

			data, err := os.ReadFile(tasksFile)
			if err != nil {
				return fmt.Errorf("failed to read tasks file: %w", err)
			}

			var batch batchFile
			if err := yaml.Unmarshal(data, &batch); err != nil {
				return fmt.Errorf("failed to parse tasks file: %w", err)
			}
			if len(batch.Tasks) == 0 {
				return fmt.Errorf("tasks file contains no tasks")
			}

			weights := models.DefaultPillarWeights()
			if batch.Weights != nil {
				weights = *batch.Weights
			}

			now := time.Now()
			if at != "" {
				now, err = time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("invalid --at value, expected RFC3339: %w", err)
				}
			}

			tasks, err := buildTasks(batch.Tasks)
			if err != nil {
				return err
			}

			scorer := scoring.NewScorer(cal)
			ranked := scorer.Rank(tasks, weights, now)

			idx := scoring.BuildIndex(ranked)
			for i, task := range ranked {
				cmd.Printf("%2d. %-40s %10.2f\n", i+1, task.Title, task.PriorityScore)
				if withTrace {
					_, trace := scorer.ScoreTraced(task, weights, now, idx)
					for _, stage := range trace {
						cmd.Printf("      %-16s %10.4f\n", stage.Name, stage.Value)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tasksFile, "tasks", "", "YAML file with tasks and optional pillar weights")
	cmd.Flags().StringVar(&calFile, "calibration", "", "Calibration override file")
	cmd.Flags().StringVar(&at, "at", "", "Score as of this RFC3339 time instead of now")
	cmd.Flags().BoolVar(&withTrace, "trace", false, "Print per-task pipeline stages")
	return cmd
}

// buildTasks converts the YAML inputs into model tasks. IDs may be omitted;
// dependencies refer to the literal id strings used in the same file.
func buildTasks(inputs []taskInput) ([]*models.Task, error) {
	ids := make(map[string]uuid.UUID, len(inputs))
	for i, in := range inputs {
		if in.ID == "" {
			continue
		}
		if _, dup := ids[in.ID]; dup {
			return nil, fmt.Errorf("task %d: duplicate id %q", i+1, in.ID)
		}
		ids[in.ID] = uuid.NewSHA1(uuid.NameSpaceOID, []byte(in.ID))
	}

	tasks := make([]*models.Task, 0, len(inputs))
	for i, in := range inputs {
		category := models.TaskType(in.Category)
		if in.Category != "" && !category.Valid() {
			return nil, fmt.Errorf("task %d (%s): unknown category %q", i+1, in.Title, in.Category)
		}

		id := uuid.New()
		if in.ID != "" {
			id = ids[in.ID]
		}

		task := &models.Task{
			ID:          id,
			Title:       in.Title,
			Category:    category,
			StartAt:     in.StartAt,
			EndAt:       in.EndAt,
			DurationMin: in.DurationMin,
			Effort:      in.Effort,
			Money:       in.Money,
			Benefits:    in.Benefits,
			GUT:         in.GUT,
			Completed:   in.Completed,
		}
		if in.Deadline != nil {
			task.Deadline = &models.Deadline{Due: in.Deadline.Due, Rigidity: in.Deadline.Rigidity}
		}
		for _, dep := range in.Dependencies {
			depID, ok := ids[dep]
			if !ok {
				return nil, fmt.Errorf("task %d (%s): unknown dependency %q", i+1, in.Title, dep)
			}
			task.Dependencies = append(task.Dependencies, depID)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
