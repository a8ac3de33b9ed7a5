package main

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Skotchmaster/coderr/internal/repo"
	"github.com/Skotchmaster/coderr/internal/service"
	pkgdb "github.com/Skotchmaster/coderr/pkg/db"
)

// coderrctl stats
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the platform base-info rollup",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := bootDB(cmd.Context())
		if err != nil {
			return err
		}
		defer pkgdb.Close(db)

		svc := &service.StatsService{Repo: &repo.GormRepo{DB: db}}
		info, err := svc.BaseInfo(cmd.Context())
		if err != nil {
			return err
		}
		return renderStats(cmd.OutOrStdout(), info)
	},
}

func renderStats(w io.Writer, info *service.BaseInfo) error {
	table := tablewriter.NewWriter(w)
	table.Header("Metric", "Value")
	rows := [][]string{
		{"reviews", strconv.FormatInt(info.ReviewCount, 10)},
		{"average rating", strconv.FormatFloat(info.AverageRating, 'f', 1, 64)},
		{"business profiles", strconv.FormatInt(info.BusinessProfileCount, 10)},
		{"offers", strconv.FormatInt(info.OfferCount, 10)},
	}
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}
