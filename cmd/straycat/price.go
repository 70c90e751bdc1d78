// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"straycat-cli/internal/config"
	"straycat-cli/internal/costing"
	"straycat-cli/internal/csvstore"
	"straycat-cli/internal/issue"

	"github.com/spf13/cobra"
)

var (
	priceSave bool

	priceCmd = &cobra.Command{
		Use:   "price <item>=<qty> [<item>=<qty>...]",
		Short: "Price an order from the saved time costs",
		Long: `Price an order from the CSV data, without starting the app:

  straycat price 草莓蛋糕=3 拿鐵=2

Each line uses the item's saved per-portion cost, suggested price, and
profit. With --save the result table is also written to ` + csvstore.QuoteResultsFile + `.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runPrice,
	}
)

func init() {
	priceCmd.Flags().BoolVar(&priceSave, "save", false, "also write the result table to the data directory")
}

func runPrice(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	dataDir := cfg.DataDir
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(projectDir, dataDir)
	}
	if info, err := os.Stat(dataDir); err != nil || !info.IsDir() {
		printIssue(issue.DataDirNotFoundId)
		return fmt.Errorf("data directory not found: %s", dataDir)
	}
	store := csvstore.New(dataDir)

	records, err := store.LoadTimeCosts()
	if err != nil {
		return err
	}
	byItem := make(map[string]costing.TimeCost, len(records))
	for _, tc := range records {
		byItem[tc.Item] = tc
	}

	var lines []costing.QuoteLine
	for _, arg := range args {
		item, qtyStr, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("invalid order entry %q (expected <item>=<qty>)", arg)
		}
		qty, err := strconv.Atoi(qtyStr)
		if err != nil || qty < 1 {
			return fmt.Errorf("invalid quantity %q for %q", qtyStr, item)
		}
		tc, found := byItem[item]
		if !found {
			return fmt.Errorf("no time cost recorded for %q (define it with the app or 'straycat serve' first)", item)
		}
		lines = append(lines, costing.BuildQuote(tc, qty))
	}

	var totalCost, totalPrice, totalProfit float64
	fmt.Println(TitleStyle.Render("品項名稱\t數量\t總成本\t總建議售價\t總利潤"))
	for _, q := range lines {
		fmt.Printf("%s\t%d\t%.2f\t%.2f\t%.2f\n", q.Item, q.Quantity, q.TotalCost, q.TotalPrice, q.TotalProfit)
		totalCost += q.TotalCost
		totalPrice += q.TotalPrice
		totalProfit += q.TotalProfit
	}
	fmt.Println(SubtitleStyle.Render(fmt.Sprintf("總計\t\t%.2f\t%.2f\t%.2f",
		costing.Round2(totalCost), costing.Round2(totalPrice), costing.Round2(totalProfit))))

	if priceSave {
		if err := store.SaveQuoteResults(lines); err != nil {
			return err
		}
		fmt.Println(SuccessStyle.Render("✓ saved to ") + CmdStyle.Render(filepath.Join(dataDir, csvstore.QuoteResultsFile)))
	}
	return nil
}
