package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentdesk/internal/domain"
)

func createdContract(created time.Time, customer uuid.UUID, vehicles ...uuid.UUID) domain.Contract {
	c := domain.Contract{ID: uuid.New(), CustomerID: uuidPtr(customer), CreatedAt: timePtr(created)}
	for _, v := range vehicles {
		c.LineItems = append(c.LineItems, domain.LineItem{VehicleID: uuidPtr(v)})
	}
	return c
}

func issuedInvoice(issued time.Time, total, tax string) domain.Invoice {
	return domain.Invoice{ID: uuid.New(), IssuedAt: issued, Total: dec(total), Tax: dec(tax)}
}

func TestMonthlyRevenue_InvalidYear(t *testing.T) {
	f := newReportFixture(false)

	for _, year := range []int{2019, 2026} {
		_, err := f.svc.MonthlyRevenue(context.Background(), year)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr, "year %d", year)
		assert.Equal(t, domain.CodeInvalidYear, verr.Code)
	}
	f.contracts.AssertNotCalled(t, "ContractsInRange", mock.Anything, mock.Anything, mock.Anything)
}

func TestMonthlyRevenue_BucketsAndOmitsEmptyMonths(t *testing.T) {
	f := newReportFixture(false)

	custA, custB := uuid.New(), uuid.New()
	car1, car2 := uuid.New(), uuid.New()
	contracts := []domain.Contract{
		createdContract(time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC), custA, car1),
		createdContract(time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC), custA, car1, car2),
		createdContract(time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC), custB, car2),
		{ID: uuid.New()},
	}
	invoices := []domain.Invoice{
		issuedInvoice(time.Date(2024, 1, 6, 9, 0, 0, 0, time.UTC), "118.00", "18.00"),
		issuedInvoice(time.Date(2024, 1, 25, 9, 0, 0, 0, time.UTC), "100.01", "15.26"),
		issuedInvoice(time.Date(2024, 2, 14, 9, 0, 0, 0, time.UTC), "59.00", "9.00"),
	}

	f.contracts.On("ContractsInRange", mock.Anything, day(2024, 1, 1), day(2024, 12, 31)).Return(contracts, nil)
	f.invoices.On("InvoicesInRange", mock.Anything, day(2024, 1, 1), day(2024, 12, 31)).Return(invoices, nil)
	f.expectAudit(func(r domain.GeneratedReport) bool {
		return r.Type == domain.ReportMonthlyRevenue &&
			r.Parameters == "Año: 2024, Meses con datos: 3" &&
			r.FileName == "reporte-ingresos-mensuales-2024.json"
	})

	rows, err := f.svc.MonthlyRevenue(context.Background(), 2024)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	jan := rows[0]
	assert.Equal(t, "2024-01", jan.Period())
	assert.Equal(t, 2, jan.ContractCount)
	assert.True(t, dec("218.01").Equal(jan.Revenue))
	assert.True(t, dec("33.26").Equal(jan.Tax))
	assert.Equal(t, "109.01", jan.AvgPerContract.StringFixed(2))
	assert.Equal(t, 1, jan.CustomerCount)
	assert.Equal(t, 2, jan.VehicleCount)

	feb := rows[1]
	assert.Equal(t, time.February, feb.Month)
	assert.Equal(t, 0, feb.ContractCount)
	assert.True(t, feb.AvgPerContract.IsZero())
	assert.True(t, dec("59").Equal(feb.Revenue))

	mar := rows[2]
	assert.Equal(t, time.March, mar.Month)
	assert.Equal(t, 1, mar.ContractCount)
	assert.True(t, mar.Revenue.IsZero())
	assert.Equal(t, 1, mar.VehicleCount)
}

func TestMonthlyRevenue_AverageRoundsHalfUp(t *testing.T) {
	f := newReportFixture(false)
	created := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	cust := uuid.New()
	contracts := []domain.Contract{
		createdContract(created, cust), createdContract(created, cust),
		createdContract(created, cust), createdContract(created, cust),
	}
	invoices := []domain.Invoice{issuedInvoice(created, "0.10", "0")}

	f.contracts.On("ContractsInRange", mock.Anything, mock.Anything, mock.Anything).Return(contracts, nil)
	f.invoices.On("InvoicesInRange", mock.Anything, mock.Anything, mock.Anything).Return(invoices, nil)
	f.expectAudit(func(domain.GeneratedReport) bool { return true })

	rows, err := f.svc.MonthlyRevenue(context.Background(), 2024)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	// 0.10 / 4 = 0.025
	assert.Equal(t, "0.03", rows[0].AvgPerContract.StringFixed(2))
}

func TestRangeRevenue_SingleRowLabelledWithStartMonth(t *testing.T) {
	f := newReportFixture(false)
	cust := uuid.New()
	contracts := []domain.Contract{
		createdContract(time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC), cust, uuid.New()),
		createdContract(time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), uuid.New(), uuid.New()),
	}
	invoices := []domain.Invoice{
		issuedInvoice(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "200.00", "30.51"),
	}

	f.contracts.On("ContractsInRange", mock.Anything, day(2024, 2, 15), day(2024, 4, 15)).Return(contracts, nil)
	f.invoices.On("InvoicesInRange", mock.Anything, day(2024, 2, 15), day(2024, 4, 15)).Return(invoices, nil)
	f.expectAudit(func(r domain.GeneratedReport) bool {
		return r.Type == domain.ReportRangeRevenue &&
			r.Parameters == "FechaInicio: 2024-02-15, FechaFin: 2024-04-15, Contratos: 2"
	})

	rows, err := f.svc.RangeRevenue(context.Background(), day(2024, 2, 15), day(2024, 4, 15))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-02", rows[0].Period())
	assert.Equal(t, 2, rows[0].ContractCount)
	assert.Equal(t, "100.00", rows[0].AvgPerContract.StringFixed(2))
	assert.Equal(t, 2, rows[0].CustomerCount)
	assert.Equal(t, 2, rows[0].VehicleCount)
}

func TestRangeRevenue_NoDataReturnsEmpty(t *testing.T) {
	f := newReportFixture(false)
	f.contracts.On("ContractsInRange", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Contract{}, nil)
	f.invoices.On("InvoicesInRange", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Invoice{}, nil)

	rows, err := f.svc.RangeRevenue(context.Background(), day(2024, 3, 1), day(2024, 3, 1))
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
	f.audit.AssertNotCalled(t, "Record", mock.Anything)
}
