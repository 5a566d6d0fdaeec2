package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pickfloor/scheduler/internal/forecast"
)

func init() {
	forecastCmd.AddCommand(forecastWeekCmd, forecastDayCmd, saveForecastCmd, updateActualsCmd, forecastAccuracyCmd)

	for _, c := range []*cobra.Command{forecastWeekCmd, forecastDayCmd, saveForecastCmd} {
		c.Flags().String("method", string(forecast.Ensemble), "prediction method: simple_average|weighted_average|exponential_smoothing|ensemble")
	}
	rootCmd.AddCommand(forecastCmd)
}

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Demand forecasting (forecast_week, forecast_day, save_forecast, ...)",
}

var forecastWeekCmd = &cobra.Command{
	Use:   "week STORE_ID MONDAY",
	Short: "Forecast a full week (forecast_week)",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		storeID, err := parseInt64(args[0])
		if err != nil {
			return err
		}
		monday, err := parseDate(args[1])
		if err != nil {
			return err
		}
		method, _ := cmd.Flags().GetString("method")
		result, err := a.forecasts.ForecastWeek(storeID, monday, forecast.Method(method))
		if err != nil {
			return err
		}
		return printJSON(result)
	}),
}

var forecastDayCmd = &cobra.Command{
	Use:   "day STORE_ID DATE",
	Short: "Forecast a single day (forecast_day)",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		storeID, err := parseInt64(args[0])
		if err != nil {
			return err
		}
		date, err := parseDate(args[1])
		if err != nil {
			return err
		}
		method, _ := cmd.Flags().GetString("method")
		result, err := a.forecasts.ForecastDay(storeID, date, forecast.Method(method))
		if err != nil {
			return err
		}
		return printJSON(result)
	}),
}

var saveForecastCmd = &cobra.Command{
	Use:   "save STORE_ID MONDAY",
	Short: "Generate and persist a week of forecasts (save_forecast)",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		storeID, err := parseInt64(args[0])
		if err != nil {
			return err
		}
		monday, err := parseDate(args[1])
		if err != nil {
			return err
		}
		method, _ := cmd.Flags().GetString("method")
		count, err := a.forecasts.SaveForecast(storeID, monday, forecast.Method(method))
		if err != nil {
			return err
		}
		fmt.Printf("saved %d forecast rows\n", count)
		return nil
	}),
}

var updateActualsCmd = &cobra.Command{
	Use:   "update-actuals STORE_ID DATE HOUR ACTUAL",
	Short: "Record an observed order count against a forecast row (update_actuals)",
	Args:  cobra.ExactArgs(4),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		storeID, err := parseInt64(args[0])
		if err != nil {
			return err
		}
		date, err := parseDate(args[1])
		if err != nil {
			return err
		}
		var hour int
		if _, err := fmt.Sscanf(args[2], "%d", &hour); err != nil {
			return fmt.Errorf("invalid hour %q", args[2])
		}
		var actual float64
		if _, err := fmt.Sscanf(args[3], "%f", &actual); err != nil {
			return fmt.Errorf("invalid actual %q", args[3])
		}
		updated, err := a.forecasts.UpdateActuals(storeID, date, hour, actual)
		if err != nil {
			return err
		}
		fmt.Println(updated)
		return nil
	}),
}

var forecastAccuracyCmd = &cobra.Command{
	Use:   "accuracy STORE_ID START END",
	Short: "Report MAE/MAPE/bias/rating over a date range (get_forecast_accuracy)",
	Args:  cobra.ExactArgs(3),
	RunE: withApp(func(a *app, cmd *cobra.Command, args []string) error {
		storeID, err := parseInt64(args[0])
		if err != nil {
			return err
		}
		start, err := parseDate(args[1])
		if err != nil {
			return err
		}
		end, err := parseDate(args[2])
		if err != nil {
			return err
		}
		accuracy, err := a.forecasts.GetForecastAccuracy(storeID, start, end)
		if err != nil {
			return err
		}
		return printJSON(accuracy)
	}),
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func parseInt64(s string) (int64, error) {
	var v int64
	if _, err := fmt.Sscanf(s, "%d", &v); err != nil {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	return v, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(cmdOut)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
