// test/mocks/mocks.go

// Package mocks contains generated mocks for the application's interfaces.
// To regenerate mocks, run `go generate ./test/mocks` from the root directory.
package mocks

//go:generate mockgen -source=../../internal/core/ports/blob_store.go -destination=blob_store_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/ledger.go -destination=ledger_mock.go -package=mocks
//go:generate mockgen -source=../../internal/core/ports/insights.go -destination=insights_mock.go -package=mocks
