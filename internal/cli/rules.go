package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"medrec/internal/config"
	"medrec/internal/models"
)

func newRulesCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the classification rule table",
		Long: "Print the rule table of the active predictor in priority order. The yaml\n" +
			"format can be used as a starting point for RULES_FILE.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			predictor, err := a.newPredictor(zap.NewNop())
			if err != nil {
				return err
			}

			info, err := predictor.ModelInfo(cmd.Context())
			if err != nil {
				return userError(err)
			}

			switch format {
			case "table":
				fmt.Fprintln(cmd.OutOrStdout(), renderRuleTable(info))
			case "yaml":
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(rulesFileFrom(info)); err != nil {
					return fmt.Errorf("failed to encode rules: %w", err)
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q (want table or yaml)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format (table, yaml)")
	return cmd
}

func renderRuleTable(info *models.ModelInfo) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "NAME", "KEYWORDS", "MEDICINE", "CONFIDENCE")

	for i, r := range info.Rules {
		keywords := strings.Join(r.Keywords, ", ")
		if keywords == "" {
			keywords = "(default)"
		}
		t.Row(fmt.Sprint(i+1), r.Name, keywords, r.Medicine, fmt.Sprintf("%.2f", r.Confidence))
	}
	return t.String()
}

func rulesFileFrom(info *models.ModelInfo) *config.RulesFile {
	f := &config.RulesFile{ConfidenceThreshold: info.ConfidenceThreshold}
	for _, r := range info.Rules {
		f.Rules = append(f.Rules, config.RuleConfig{
			Name:        r.Name,
			Keywords:    r.Keywords,
			Medicine:    r.Medicine,
			Description: r.Description,
			Confidence:  r.Confidence,
		})
	}
	return f
}
