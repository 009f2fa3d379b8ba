package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ferminmg/scrapingcines/internal/reconcile"
)

// renderReport formats the run statistics as a small console table.
func renderReport(stats *reconcile.Stats) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Resultado", "Películas"})
	tw.AppendRows([]table.Row{
		{"Del scraper", strconv.Itoa(stats.FromScraper)},
		{"Manuales fusionadas", strconv.Itoa(stats.ManualMerged)},
		{"Manuales independientes", strconv.Itoa(stats.ManualStandalone)},
		{"Caducadas", strconv.Itoa(stats.Expired)},
		{"Resueltas en TMDB", strconv.Itoa(stats.Resolved)},
	})
	tw.AppendFooter(table.Row{"Total en cartelera", strconv.Itoa(stats.Total)})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
