package pipeline

import (
	"strconv"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/ledger"
	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

func benchTransactions(n int) []model.Transaction {
	cats := model.Categories
	day := model.NewDate(2024, 1, 1)
	txs := make([]model.Transaction, 0, n)
	for i := 0; i < n; i++ {
		txs = append(txs, model.Transaction{
			Date:        day.AddDays(i % 365),
			Amount:      decimal.NewFromInt(int64(i%200 + 1)),
			Category:    cats[i%len(cats)],
			Description: "bench row " + strconv.Itoa(i),
		})
	}
	return txs
}

func BenchmarkSummarize(b *testing.B) {
	txs := benchTransactions(10000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Summarize(txs, model.Date{}, model.Date{})
	}
}

func BenchmarkAggregateDays(b *testing.B) {
	txs := benchTransactions(10000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = AggregateDays(txs, model.Date{}, model.Date{})
	}
}

func BenchmarkLoad(b *testing.B) {
	led := ledger.New(b.TempDir())
	if err := led.AppendAll(benchTransactions(5000)); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result := Load(led, nil)
		if len(result.Problems) > 0 {
			b.Fatal(result.Problems[0])
		}
	}
}
