package main

import (
	"database/sql"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/weirdtangent/yhfinance"
)

// yhRawValue is the {raw, fmt} pair Yahoo wraps every statement figure in.
// Raw is a pointer so a field Yahoo omits stays distinguishable from zero.
type yhRawValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

func (v yhRawValue) null() sql.NullFloat64 {
	if v.Raw == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v.Raw, Valid: true}
}

type yhIncomeStatement struct {
	EndDate      yhRawValue `json:"endDate"`
	TotalRevenue yhRawValue `json:"totalRevenue"`
	NetIncome    yhRawValue `json:"netIncome"`
}

type yhBalanceSheet struct {
	EndDate                yhRawValue `json:"endDate"`
	TotalAssets            yhRawValue `json:"totalAssets"`
	TotalLiab              yhRawValue `json:"totalLiab"`
	TotalStockholderEquity yhRawValue `json:"totalStockholderEquity"`
}

type yhFinancialsResponse struct {
	IncomeStatementHistory struct {
		Statements []yhIncomeStatement `json:"incomeStatementHistory"`
	} `json:"incomeStatementHistory"`
	BalanceSheetHistory struct {
		Statements []yhBalanceSheet `json:"balanceSheetStatements"`
	} `json:"balanceSheetHistory"`
}

// fetchBankStatementsFromYH pulls the annual income statement and balance
// sheet for one bank and merges them into per-period rows. Recent responses
// are cached in Redis for a day when a pool is configured.
func fetchBankStatementsFromYH(deps *Dependencies, bank BankConfig) ([]RawStatementRow, error) {
	sublog := deps.logger.With().Str("bank", bank.Name).Str("symbol", bank.Symbol).Logger()

	apiKey := deps.secrets["yhfinance_rapidapi_key"]
	apiHost := deps.secrets["yhfinance_rapidapi_host"]
	if apiKey == "" || apiHost == "" {
		return nil, errMissingAPICredential
	}

	// pull recent response from redis (1 day expire), or go get from YF
	response := ""
	redisKey := "yhfinance/financials/" + bank.Symbol
	if deps.redisPool != nil {
		redisConn := deps.redisPool.Get()
		defer redisConn.Close()

		cached, err := redis.String(redisConn.Do("GET", redisKey))
		if err == nil && cached != "" {
			sublog.Info().Str("redis_key", redisKey).Msg("redis cache hit")
			response = cached
		}
	}
	if response == "" {
		var err error
		financialsParams := map[string]string{"symbol": bank.Symbol}
		response, err = yhfinance.GetFromYHFinance(&sublog, apiKey, apiHost, "stockFinancials", financialsParams)
		if err != nil {
			sublog.Warn().Err(err).Msg("failed to retrieve financial statements")
			return nil, err
		}
		if deps.redisPool != nil && response != "" {
			redisConn := deps.redisPool.Get()
			defer redisConn.Close()
			if _, err := redisConn.Do("SET", redisKey, response, "EX", 60*60*24); err != nil {
				sublog.Error().Err(err).Str("redis_key", redisKey).Msg("failed to save to redis")
			}
		}
	}

	var financials yhFinancialsResponse
	json.NewDecoder(strings.NewReader(response)).Decode(&financials)

	rows := mergeStatements(bank.Name, financials)
	if len(rows) == 0 {
		return nil, errNoStatements
	}
	sublog.Info().Int("periods", len(rows)).Msg("loaded financial statements")
	return rows, nil
}

// mergeStatements joins income-statement and balance-sheet periods on their
// end date, one row per period, ascending. Periods present on only one side
// still produce a row; the missing side stays null and the row is dropped
// later by the completeness check.
func mergeStatements(bankName string, financials yhFinancialsResponse) []RawStatementRow {
	byPeriod := map[int64]*RawStatementRow{}

	rowFor := func(endDate yhRawValue) *RawStatementRow {
		if endDate.Raw == nil {
			return nil
		}
		key := int64(*endDate.Raw)
		if row, ok := byPeriod[key]; ok {
			return row
		}
		row := &RawStatementRow{
			BankName:  bankName,
			PeriodEnd: time.Unix(key, 0).UTC(),
		}
		byPeriod[key] = row
		return row
	}

	for _, statement := range financials.IncomeStatementHistory.Statements {
		if row := rowFor(statement.EndDate); row != nil {
			row.TotalRevenue = statement.TotalRevenue.null()
			row.NetIncome = statement.NetIncome.null()
		}
	}
	for _, statement := range financials.BalanceSheetHistory.Statements {
		if row := rowFor(statement.EndDate); row != nil {
			row.TotalAssets = statement.TotalAssets.null()
			row.TotalLiabilities = statement.TotalLiab.null()
			row.StockholdersEquity = statement.TotalStockholderEquity.null()
		}
	}

	rows := make([]RawStatementRow, 0, len(byPeriod))
	for _, row := range byPeriod {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].PeriodEnd.Before(rows[j].PeriodEnd) })
	return rows
}

// fetchAllBanks loads statements for every configured bank, skipping banks
// that fail so one bad symbol does not sink the whole run.
func fetchAllBanks(deps *Dependencies) ([]RawStatementRow, error) {
	rows := []RawStatementRow{}
	for _, bank := range deps.config.Banks {
		bankRows, err := fetchBankStatementsFromYH(deps, bank)
		if err != nil {
			deps.logger.Error().Err(err).Str("bank", bank.Name).Msg("failed to load bank, continuing with the rest")
			continue
		}
		rows = append(rows, bankRows...)
	}
	if len(rows) == 0 {
		return nil, errNoStatements
	}
	return rows, nil
}
