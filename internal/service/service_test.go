package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/generator"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/storage"
)

type testEnv struct {
	svc     *Service
	storage *storage.Storage
	hook    *test.Hook
}

// newTestEnv wires the services to a fresh database with the clock
// pinned to 2024-03-15.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	s, err := storage.Open(filepath.Join(t.TempDir(), "ledger.db"), logger)
	require.NoError(t, err)

	op := operator.NewOperatorDelegator(s, 1, logger)
	op.Start()
	t.Cleanup(func() {
		op.Stop()
		_ = s.Close()
	})

	gen := generator.NewGenerator(op, s.Reader.Templates, logger,
		generator.WithClock(func() time.Time { return time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC) }),
		generator.WithLocation(time.UTC),
	)

	return &testEnv{
		svc:     NewService(s, op, gen, logger),
		storage: s,
		hook:    hook,
	}
}

func date(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

func (e *testEnv) category(t *testing.T, name string, kind Kind) {
	t.Helper()
	_, err := e.svc.Category.Create(context.Background(), name, kind)
	require.NoError(t, err)
}

func (e *testEnv) transaction(t *testing.T, name, category string, kind Kind, amount string, on civil.Date) *Transaction {
	t.Helper()
	res, err := e.svc.Transaction.Create(context.Background(), TransactionInput{
		Name:          name,
		Amount:        decimal.RequireFromString(amount),
		Kind:          kind,
		ExecutionDate: on,
		Category:      category,
	})
	require.NoError(t, err)
	return res.Transaction
}

func rentTemplate() TemplateInput {
	return TemplateInput{
		Name:       "Flat",
		Amount:     decimal.NewFromInt(100),
		Kind:       KindExpense,
		DayOfMonth: 31,
		StartDate:  date(2024, time.January, 1),
		Category:   "Rent",
	}
}
