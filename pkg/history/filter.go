package history

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/railstat/railstat/pkg/autotrain"
)

// recordEnvironment exposes one record to a filter expression. Optional
// metrics appear as a Has* flag plus a value that is only meaningful when
// the flag is set, so expressions never trip over missing data
func recordEnvironment(record autotrain.DelayRecord) map[string]interface{} {
	environment := map[string]interface{}{
		"Date":        record.Date,
		"TrainNumber": record.TrainNumber,
		"Origin":      record.Origin,
		"Destination": record.Destination,

		"HasArrivalDelay":   record.ArrivalDelayMinutes != nil,
		"ArrivalDelay":      0,
		"HasDepartureDelay": record.DepartureDelayMinutes != nil,
		"DepartureDelay":    0,

		"OnTime": record.OnTimeArrival,
	}

	if record.ArrivalDelayMinutes != nil {
		environment["ArrivalDelay"] = *record.ArrivalDelayMinutes
	}
	if record.DepartureDelayMinutes != nil {
		environment["DepartureDelay"] = *record.DepartureDelayMinutes
	}

	return environment
}

func FilterRecords(records []autotrain.DelayRecord, filterSource string) ([]autotrain.DelayRecord, error) {
	if filterSource == "" {
		return records, nil
	}

	program, err := expr.Compile(filterSource, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter expression: %w", err)
	}

	filtered := []autotrain.DelayRecord{}
	for _, record := range records {
		output, err := expr.Run(program, recordEnvironment(record))
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate filter expression: %w", err)
		}

		keep, isBoolean := output.(bool)
		if !isBoolean {
			return nil, fmt.Errorf("filter expression must evaluate to a boolean, got %T", output)
		}

		if keep {
			filtered = append(filtered, record)
		}
	}

	return filtered, nil
}
