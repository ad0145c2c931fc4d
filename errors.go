package main

import "errors"

var (
	errNoRecords            = errors.New("no financial records for bank")
	errNoBanksConfigured    = errors.New("no banks configured")
	errMissingAPICredential = errors.New("yhfinance_rapidapi_key or yhfinance_rapidapi_host is missing")
	errNoStatements         = errors.New("provider returned no usable statements")
	errEmptyDataset         = errors.New("enriched dataset is empty")
)
