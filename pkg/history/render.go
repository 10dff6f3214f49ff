package history

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/gocarina/gocsv"
	"github.com/liip/sheriff"
	"github.com/railstat/railstat/pkg/autotrain"
	"github.com/railstat/railstat/pkg/performance"
	"github.com/railstat/railstat/pkg/util"
)

const displayTimeFormat = "2006-01-02 15:04 MST"

func formatOptionalMinutes(minutes *int) string {
	if minutes == nil {
		return ""
	}

	return strconv.Itoa(*minutes)
}

func renderRecordsTable(records []autotrain.DelayRecord) error {
	writer := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)

	fmt.Fprintln(writer, "DATE\tTRAIN\tROUTE\tSCHED DEP\tACTUAL DEP\tDEP DELAY\tSCHED ARR\tACTUAL ARR\tARR DELAY\tON TIME")

	for _, record := range records {
		fmt.Fprintf(
			writer,
			"%s\t%d\t%s-%s\t%s\t%s\t%s\t%s\t%s\t%s\t%t\n",
			record.Date,
			record.TrainNumber,
			record.Origin,
			record.Destination,
			util.FormatOptionalTime(record.ScheduledDeparture, displayTimeFormat),
			util.FormatOptionalTime(record.ActualDeparture, displayTimeFormat),
			formatOptionalMinutes(record.DepartureDelayMinutes),
			util.FormatOptionalTime(record.ScheduledArrival, displayTimeFormat),
			util.FormatOptionalTime(record.ActualArrival, displayTimeFormat),
			formatOptionalMinutes(record.ArrivalDelayMinutes),
			record.OnTimeArrival,
		)
	}

	return writer.Flush()
}

func renderRecordsCSV(records []autotrain.DelayRecord) error {
	return gocsv.Marshal(&records, os.Stdout)
}

func renderRecordsJSON(records []autotrain.DelayRecord) error {
	recordsReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, records)
	if err != nil {
		return err
	}

	jsonBytes, err := json.MarshalIndent(recordsReduced, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(jsonBytes))

	return nil
}

func renderSummariesTable(summaries []performance.DirectionSummary) error {
	writer := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)

	fmt.Fprintln(writer, "TRAIN\tROUTE\tRUNS\tARRIVALS\tON TIME\tON TIME %\tMEAN ARR DELAY\tMAX ARR DELAY\tMEAN DEP DELAY")

	for _, summary := range summaries {
		fmt.Fprintf(
			writer,
			"%d\t%s-%s\t%d\t%d\t%d\t%.1f\t%.1f\t%d\t%.1f\n",
			summary.TrainNumber,
			summary.Origin,
			summary.Destination,
			summary.Runs,
			summary.RecordedArrivals,
			summary.OnTimeArrivals,
			summary.OnTimePercentage,
			summary.MeanArrivalDelayMinutes,
			summary.MaxArrivalDelayMinutes,
			summary.MeanDepartureDelayMinutes,
		)
	}

	return writer.Flush()
}
