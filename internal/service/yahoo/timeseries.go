package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"StockMCP/internal/domain/models"
	"StockMCP/pkg/util"
)

var incomeKeys = []string{
	"TotalRevenue", "OperatingRevenue", "CostOfRevenue", "ReconciledCostOfRevenue", "GrossProfit",
	"OperatingExpense", "SellingGeneralAndAdministration", "ResearchAndDevelopment",
	"OperatingIncome", "TotalOperatingIncomeAsReported", "NetNonOperatingInterestIncomeExpense",
	"InterestIncome", "InterestExpense", "InterestIncomeNonOperating", "InterestExpenseNonOperating",
	"OtherIncomeExpense", "PretaxIncome", "TaxProvision", "TaxRateForCalcs",
	"NetIncome", "NetIncomeCommonStockholders", "NetIncomeContinuousOperations",
	"NetIncomeIncludingNoncontrollingInterests", "DilutedNIAvailtoComStockholders",
	"BasicEPS", "DilutedEPS", "BasicAverageShares", "DilutedAverageShares",
	"EBIT", "EBITDA", "NormalizedEBITDA", "NormalizedIncome", "TotalExpenses",
	"ReconciledDepreciation",
}

var balanceSheetKeys = []string{
	"TotalAssets", "CurrentAssets", "CashAndCashEquivalents", "CashCashEquivalentsAndShortTermInvestments",
	"OtherShortTermInvestments", "AccountsReceivable", "Receivables", "Inventory", "OtherCurrentAssets",
	"TotalNonCurrentAssets", "NetPPE", "GrossPPE", "AccumulatedDepreciation", "Goodwill",
	"OtherIntangibleAssets", "GoodwillAndOtherIntangibleAssets", "InvestmentsAndAdvances",
	"OtherNonCurrentAssets", "TotalLiabilitiesNetMinorityInterest", "CurrentLiabilities",
	"AccountsPayable", "PayablesAndAccruedExpenses", "CurrentDebt", "CurrentDeferredRevenue",
	"OtherCurrentLiabilities", "TotalNonCurrentLiabilitiesNetMinorityInterest", "LongTermDebt",
	"OtherNonCurrentLiabilities", "CapitalLeaseObligations", "TotalDebt", "NetDebt",
	"StockholdersEquity", "CommonStockEquity", "TotalEquityGrossMinorityInterest", "CommonStock",
	"RetainedEarnings", "TreasuryStock", "WorkingCapital", "TangibleBookValue", "NetTangibleAssets",
	"InvestedCapital", "TotalCapitalization", "ShareIssued", "OrdinarySharesNumber", "TreasurySharesNumber",
}

var cashFlowKeys = []string{
	"OperatingCashFlow", "InvestingCashFlow", "FinancingCashFlow", "FreeCashFlow", "CapitalExpenditure",
	"BeginningCashPosition", "EndCashPosition", "ChangesInCash", "NetIncomeFromContinuingOperations",
	"DepreciationAndAmortization", "StockBasedCompensation", "DeferredIncomeTax", "ChangeInWorkingCapital",
	"ChangeInReceivables", "ChangeInInventory", "ChangeInPayablesAndAccruedExpense",
	"ChangeInOtherWorkingCapital", "OtherNonCashItems", "NetPPEPurchaseAndSale", "PurchaseOfPPE",
	"PurchaseOfInvestment", "SaleOfInvestment", "NetInvestmentPurchaseAndSale",
	"NetBusinessPurchaseAndSale", "PurchaseOfBusiness", "RepurchaseOfCapitalStock",
	"CommonStockPayments", "CashDividendsPaid", "CommonStockDividendPaid", "IssuanceOfDebt",
	"RepaymentOfDebt", "LongTermDebtIssuance", "LongTermDebtPayments", "NetIssuancePaymentsOfDebt",
	"NetCommonStockIssuance", "CommonStockIssuance", "IncomeTaxPaidSupplementalData",
	"InterestPaidSupplementalData",
}

var moduleKeys = map[string][]string{
	models.TimeSeriesModuleFinancials:   incomeKeys,
	models.TimeSeriesModuleBalanceSheet: balanceSheetKeys,
	models.TimeSeriesModuleCashFlow:     cashFlowKeys,
	models.TimeSeriesModuleAll:          concat(incomeKeys, balanceSheetKeys, cashFlowKeys),
}

var periodTypes = []string{models.TimeSeriesAnnual, models.TimeSeriesQuarterly, models.TimeSeriesTrailing}

type timeSeriesEntry struct {
	AsOfDate      string `json:"asOfDate"`
	PeriodType    string `json:"periodType"`
	ReportedValue *struct {
		Raw Number `json:"raw"`
	} `json:"reportedValue"`
}

type timeSeriesResponse struct {
	TimeSeries struct {
		Result []map[string]json.RawMessage `json:"result"`
	} `json:"timeseries"`
}

// FundamentalsTimeSeries returns one record per reporting date, oldest first.
// Each record holds date, TYPE, periodType and one key per reported line item.
func (c *Client) FundamentalsTimeSeries(ctx context.Context, symbol string, opts models.TimeSeriesOptions, cfg models.ModuleConfig) ([]models.StatementRecord, error) {
	keys, ok := moduleKeys[opts.Module]
	if !ok {
		return nil, fmt.Errorf("unknown fundamentals module %q", opts.Module)
	}
	if !slices.Contains(periodTypes, opts.Type) {
		return nil, fmt.Errorf("unknown fundamentals period type %q", opts.Type)
	}

	types := make([]string, len(keys))
	for i, k := range keys {
		types[i] = opts.Type + k
	}

	params := url.Values{
		"symbol":        {symbol},
		"type":          {strings.Join(types, ",")},
		"period1":       {strconv.FormatInt(opts.Period1.Unix(), 10)},
		"period2":       {strconv.FormatInt(c.now().Unix(), 10)},
		"merge":         {"false"},
		"padTimeSeries": {"true"},
	}

	var resp timeSeriesResponse
	rawURL := c.cfg.TimeseriesURL + "/ws/fundamentals-timeseries/v1/finance/timeseries/" + url.PathEscape(symbol)
	if err := c.get(ctx, "timeseries", rawURL, params, &resp); err != nil {
		return nil, err
	}

	recordType := strings.ToUpper(strings.ReplaceAll(opts.Module, "-", "_"))
	byDate := map[string]models.StatementRecord{}

	for _, result := range resp.TimeSeries.Result {
		for name, raw := range result {
			if name == "meta" || name == "timestamp" || !strings.HasPrefix(name, opts.Type) {
				continue
			}
			var entries []*timeSeriesEntry
			if err := json.Unmarshal(raw, &entries); err != nil {
				if cfg.ValidateResult {
					return nil, fmt.Errorf("decode %s: %w", name, err)
				}
				continue
			}

			field := fieldName(strings.TrimPrefix(name, opts.Type))
			for _, e := range entries {
				if e == nil || e.ReportedValue == nil || e.ReportedValue.Raw.Value == nil {
					continue
				}
				date, ok := util.ParseTime(e.AsOfDate)
				if !ok {
					if cfg.ValidateResult {
						return nil, fmt.Errorf("%s: bad asOfDate %q", name, e.AsOfDate)
					}
					continue
				}
				rec, seen := byDate[e.AsOfDate]
				if !seen {
					rec = models.StatementRecord{
						"date":       date,
						"TYPE":       recordType,
						"periodType": e.PeriodType,
					}
					byDate[e.AsOfDate] = rec
				}
				rec[field] = *e.ReportedValue.Raw.Value
			}
		}
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	// asOfDate is YYYY-MM-DD so lexical order is chronological
	sort.Strings(dates)

	records := make([]models.StatementRecord, 0, len(dates))
	for _, d := range dates {
		records = append(records, byDate[d])
	}
	return records, nil
}

// fieldName lower-cases the leading letter unless the key is an acronym.
func fieldName(key string) string {
	if key == "" || strings.ToUpper(key) == key {
		return key
	}
	r := []rune(key)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
