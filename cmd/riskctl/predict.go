package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Skufu/maternalrisk/internal/observation"
	"github.com/Skufu/maternalrisk/internal/predictor"
)

func newPredictCmd(a *app) *cobra.Command {
	o := observation.Default()
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the risk level for one set of measurements",
		Long: "Predict the maternal health risk level for one set of measurements.\n" +
			"Unset flags take the same defaults as the web form.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			art, err := a.load(a.config())
			if err != nil {
				return fmt.Errorf("cannot load model artifacts: %w", err)
			}
			defer art.Classifier.Close()

			p, err := predictor.New(art, a.logger)
			if err != nil {
				return err
			}

			res, err := p.Predict(cmd.Context(), o)
			if err != nil {
				var verr *observation.ValidationError
				if errors.As(err, &verr) {
					for _, fe := range verr.Fields {
						fmt.Fprintf(cmd.ErrOrStderr(), "  --%s: %s\n", fe.Field, fe.Message)
					}
					return errors.New("invalid measurements")
				}
				var perr *predictor.PredictionError
				if errors.As(err, &perr) {
					return fmt.Errorf("Prediction failed: %w", perr.Err)
				}
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			printAssessment(cmd.OutOrStdout(), res)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&o.Age, "age", o.Age, "Age (years)")
	f.IntVar(&o.SystolicBP, "systolicBP", o.SystolicBP, "Systolic blood pressure (mmHg)")
	f.IntVar(&o.DiastolicBP, "diastolicBP", o.DiastolicBP, "Diastolic blood pressure (mmHg)")
	f.IntVar(&o.BS, "bs", o.BS, "Blood sugar (mg/dL)")
	f.Float64Var(&o.BodyTemp, "bodyTemp", o.BodyTemp, "Body temperature (°F)")
	f.IntVar(&o.HeartRate, "heartRate", o.HeartRate, "Heart rate (bpm)")
	f.BoolVar(&asJSON, "json", false, "Print the full assessment as JSON")
	return cmd
}

func printAssessment(w io.Writer, res predictor.Assessment) {
	fmt.Fprintln(w, res.Advice.Headline)
	fmt.Fprintln(w, res.Advice.Message)
	if res.Soft {
		fmt.Fprintf(w, "warning: unrecognised model output %s\n", res.Output)
	}
	fmt.Fprintf(w, "model: %s  scaler: %s\n", res.Model, res.Scaler)
}
