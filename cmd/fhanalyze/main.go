package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"finhealth/internal/analysis"
	"finhealth/internal/config"
	"finhealth/internal/logger"
	"finhealth/internal/model"
	"finhealth/internal/parser"
	"finhealth/internal/service/calculator"
	"finhealth/internal/service/excel"
	"finhealth/internal/util"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, analysis.ErrExtractionNotFound) {
			fmt.Fprintln(os.Stderr, analysis.UserMessage)
		} else {
			fmt.Fprintf(os.Stderr, "fhanalyze: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("fhanalyze", flag.ContinueOnError)
	file := fs.String("file", "", "损益表文件 (.xlsx / .csv)")
	sheet := fs.String("sheet", "", "工作表名称 (为空时自动识别)")
	company := fs.String("company", "", "公司名称")
	period := fs.String("period", "", "报告期")
	growth := fs.String("growth", "", "营收增长率 (%)，覆盖表格中的值")
	asJSON := fs.Bool("json", false, "以 JSON 输出完整结果")
	logLevel := fs.String("log-level", "", "日志级别 (覆盖配置文件，日志写到 stderr)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return errors.New("-file is required")
	}

	cfg, _, err := config.LoadConfigWithInfo()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	if *sheet != "" {
		cfg.Extraction.Sheet = *sheet
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := logger.InitLoggerTo(os.Stderr, cfg.Log.Level, cfg.Log.File); err != nil {
		return err
	}

	weights, err := calculator.NewWeights(cfg.Scoring.Weights())
	if err != nil {
		return fmt.Errorf("invalid scoring weights: %w", err)
	}
	queries := parser.WithOverrides(parser.DefaultQueries(), cfg.Extraction.Labels.Overrides())

	grid, recognition, err := excel.NewLoader(queries, cfg.Extraction.Sheet).LoadFile(*file)
	if err != nil {
		return err
	}
	logger.Log.WithField("sheet", recognition.SheetName).Debug("已选择工作表")

	growthRate, err := analysis.ParseGrowthRate(*growth)
	if err != nil {
		return fmt.Errorf("invalid -growth: %w", err)
	}
	opts := analysis.Options{CompanyName: *company, Period: *period, GrowthRate: growthRate}

	result, err := analysis.NewAnalyzer(calculator.NewEngine(weights), queries).Analyze(grid, opts)
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	printSummary(out, result)
	return nil
}

func printSummary(out io.Writer, a *model.Analysis) {
	r := a.Record
	fmt.Fprintf(out, "Company: %s  Period: %s\n", a.CompanyName, a.Period)
	fmt.Fprintf(out, "Total Income:  %s\n", util.FormatAmount(r.TotalIncome))
	fmt.Fprintf(out, "Gross Profit:  %s\n", util.FormatAmount(r.GrossProfit))
	fmt.Fprintf(out, "Net Profit:    %s\n\n", util.FormatAmount(r.NetProfit))

	ratios := a.Ratios
	fmt.Fprintf(out, "Net Profit Margin:   %s\n", util.FormatPercent(ratios.NetProfitMargin))
	fmt.Fprintf(out, "Expense Ratio:       %s\n", util.FormatPercent(ratios.ExpenseRatio))
	fmt.Fprintf(out, "Gross Profit Margin: %s\n", util.FormatPercent(ratios.GrossProfitMargin))
	fmt.Fprintf(out, "Finance Cost Ratio:  %s\n", util.FormatPercent(ratios.FinanceCostRatio))
	fmt.Fprintf(out, "Revenue Growth Rate: %s\n\n", util.FormatPercent(ratios.RevenueGrowthRate))

	fmt.Fprintf(out, "Weighted Score: %.2f (%s)\n\n", a.ScoreCard.Score, a.ScoreCard.Category)
	fmt.Fprintln(out, a.Advisory.Text)
}
