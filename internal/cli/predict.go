package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"medrec/internal/handlers/api"
	"medrec/internal/models"
	"medrec/internal/recommend"
	"medrec/internal/validation"
)

// predictOutput is the JSON printed by the predict command.
type predictOutput struct {
	models.PredictResponse
	ConfidenceBand string `json:"confidence_band"`
}

func newPredictCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "predict <symptoms...>",
		Short: "Recommend a medicine for a symptom description",
		Example: `  medrec predict "stomach ache and nausea"
  medrec predict --format text sore throat`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symptoms, err := validation.ValidateSymptoms(strings.Join(args, " "))
			if err != nil {
				return userError(err)
			}

			predictor, err := a.newPredictor(zap.NewNop())
			if err != nil {
				return err
			}

			start := time.Now()
			rec, err := predictor.Predict(cmd.Context(), symptoms)
			if err != nil {
				return userError(err)
			}
			elapsed := time.Since(start)

			if format == "text" {
				printRecommendation(cmd, rec)
				return nil
			}

			now := time.Now()
			out := predictOutput{
				PredictResponse: models.PredictResponse{
					Recommendation: *rec,
					Metadata: models.ResponseMetadata{
						ResponseTime:     fmt.Sprintf("%dms", elapsed.Milliseconds()),
						BackendTimestamp: now,
						RequestID:        api.NewRequestID(now),
					},
				},
				ConfidenceBand: rec.ConfidenceBand(),
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json, text)")
	return cmd
}

func printRecommendation(cmd *cobra.Command, r *models.Recommendation) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s (%.0f%% confidence, %s)\n", r.Medicine, r.Confidence*100, r.ConfidenceBand())
	fmt.Fprintln(w, r.Description)
	for _, alt := range r.AlternativeSuggestions {
		fmt.Fprintf(w, "  alternative: %s (%.0f%%) %s\n", alt.Medicine, alt.Confidence*100, alt.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, r.Disclaimer)
}

// userError replaces a classified error with its caller-facing message.
func userError(err error) error {
	if msg := recommend.MessageOf(err); msg != "" {
		return fmt.Errorf("%s: %w", msg, recommend.KindOf(err))
	}
	return err
}
