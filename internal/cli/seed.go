package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/crackit360/crackit360-api/internal/config"
	"github.com/crackit360/crackit360-api/internal/container"
	"github.com/crackit360/crackit360-api/internal/quiz"
	"github.com/crackit360/crackit360-api/internal/speedtest"
	"github.com/crackit360/crackit360-api/internal/technical"
)

// SeedFile is the YAML layout of a question bank import.
type SeedFile struct {
	Quiz      []quiz.Question                  `yaml:"quiz"`
	SpeedTest []speedtest.QuantitativeQuestion `yaml:"speed_test"`
	Technical []technical.Question             `yaml:"technical"`
}

// NewSeedCmd loads question banks from a YAML file.
func NewSeedCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import quiz, speed test and technical questions from YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			if _, err := container.Bootstrap(cmd.Context()); err != nil {
				return err
			}
			return seed(cmd.Context(), config.DB, f)
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "seed.yaml", "path to the YAML question bank")
	return cmd
}

func parseSeed(r io.Reader) (*SeedFile, error) {
	var sf SeedFile
	if err := yaml.NewDecoder(r).Decode(&sf); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	for i, q := range sf.Quiz {
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return nil, fmt.Errorf("quiz question %d: correct_answer %d out of range", i, q.CorrectAnswer)
		}
	}
	for i, q := range sf.SpeedTest {
		if !q.Level.IsValid() {
			return nil, fmt.Errorf("speed test question %d: invalid level %q", i, q.Level)
		}
	}
	return &sf, nil
}

func seed(ctx context.Context, db *gorm.DB, r io.Reader) error {
	sf, err := parseSeed(r)
	if err != nil {
		return err
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := quiz.NewRepository(tx).CreateQuestions(ctx, sf.Quiz); err != nil {
			return fmt.Errorf("insert quiz questions: %w", err)
		}
		if err := speedtest.NewRepository(tx).CreateQuestions(ctx, sf.SpeedTest); err != nil {
			return fmt.Errorf("insert speed test questions: %w", err)
		}
		if err := technical.NewRepository(tx).CreateQuestions(ctx, sf.Technical); err != nil {
			return fmt.Errorf("insert technical questions: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	config.WithContext(ctx).WithFields(logrus.Fields{
		"quiz":       len(sf.Quiz),
		"speed_test": len(sf.SpeedTest),
		"technical":  len(sf.Technical),
	}).Info("Question banks seeded")
	return nil
}
