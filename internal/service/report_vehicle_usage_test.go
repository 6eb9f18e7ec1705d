package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentdesk/internal/domain"
	"rentdesk/internal/service"
	"rentdesk/internal/validator"
	"rentdesk/mocks"
)

func vehicle(plate *string, brand string) domain.Vehicle {
	return domain.Vehicle{ID: uuid.New(), Plate: plate, Brand: brand, Model: "M", Type: "SEDAN", Active: true}
}

func lineItem(id *uuid.UUID, plate *string, days int, subtotal string) domain.LineItem {
	return domain.LineItem{ID: id, Plate: plate, RentalDays: days, Subtotal: dec(subtotal)}
}

func usageFixture() *reportFixture {
	f := newReportFixture(false)

	contracts := []domain.Contract{
		{
			ID:      uuid.New(),
			EndDate: timePtr(day(2024, 3, 5)),
			LineItems: []domain.LineItem{
				lineItem(uuidPtr(uuid.New()), strPtr("abc-123"), 4, "200"),
				lineItem(uuidPtr(uuid.New()), nil, 9, "999"),
			},
		},
		{
			ID:      uuid.New(),
			EndDate: timePtr(day(2024, 3, 9)),
			LineItems: []domain.LineItem{
				lineItem(uuidPtr(uuid.New()), strPtr("ABC-123"), 3, "150"),
				lineItem(uuidPtr(uuid.New()), strPtr("XYZ-999"), 20, "500"),
				lineItem(nil, strPtr("XYZ-999"), 0, "0"),
			},
		},
	}
	vehicles := []domain.Vehicle{
		vehicle(strPtr("DEF-456"), "Kia"),
		vehicle(strPtr("ABC-123"), "Toyota"),
		vehicle(strPtr("   "), "Ghost"),
		vehicle(strPtr("XYZ-999"), "Hyundai"),
		vehicle(nil, "Nobody"),
		vehicle(strPtr("GHI-789"), "Nissan"),
	}

	f.contracts.On("ContractsInRange", mock.Anything, day(2024, 3, 1), day(2024, 3, 10)).Return(contracts, nil)
	f.vehicles.On("VehiclesForReporting", mock.Anything).Return(vehicles, nil)
	return f
}

func TestVehicleUsage_AggregatesSortsAndZeroFills(t *testing.T) {
	f := usageFixture()
	f.expectAudit(func(r domain.GeneratedReport) bool {
		return r.Type == domain.ReportVehicleUsage &&
			r.Parameters == "FechaInicio: 2024-03-01, FechaFin: 2024-03-10, Vehículos: 4"
	})

	rows, err := f.svc.VehicleUsage(context.Background(), day(2024, 3, 1), day(2024, 3, 10))
	require.NoError(t, err)
	require.Len(t, rows, 4)

	xyz := rows[0]
	assert.Equal(t, "XYZ-999", xyz.Plate)
	assert.Equal(t, 20, xyz.RentedDays)
	assert.Equal(t, 1, xyz.ContractCount)
	assert.True(t, dec("500").Equal(xyz.Revenue))
	assert.Equal(t, 100.0, xyz.UsagePercent)
	require.NotNil(t, xyz.LastRental)
	assert.Equal(t, day(2024, 3, 9), *xyz.LastRental)

	abc := rows[1]
	assert.Equal(t, "ABC-123", abc.Plate)
	assert.Equal(t, "Toyota", abc.Brand)
	assert.Equal(t, 7, abc.RentedDays)
	assert.Equal(t, 2, abc.ContractCount)
	assert.True(t, dec("350").Equal(abc.Revenue))
	assert.InDelta(t, 70.0, abc.UsagePercent, 1e-9)
	require.NotNil(t, abc.LastRental)
	assert.Equal(t, day(2024, 3, 9), *abc.LastRental)

	// Zero rows keep catalog order.
	assert.Equal(t, "DEF-456", rows[2].Plate)
	assert.Equal(t, "GHI-789", rows[3].Plate)
	for _, r := range rows[2:] {
		assert.Zero(t, r.RentedDays)
		assert.Zero(t, r.ContractCount)
		assert.True(t, r.Revenue.IsZero())
		assert.Zero(t, r.UsagePercent)
		assert.Nil(t, r.LastRental)
	}
	f.audit.AssertExpectations(t)
}

func TestVehicleUsage_EmptyCatalogReturnsEmpty(t *testing.T) {
	f := newReportFixture(false)
	f.contracts.On("ContractsInRange", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.Contract{{ID: uuid.New()}}, nil)
	f.vehicles.On("VehiclesForReporting", mock.Anything).Return([]domain.Vehicle{}, nil)

	rows, err := f.svc.VehicleUsage(context.Background(), day(2024, 3, 1), day(2024, 3, 10))
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
	f.audit.AssertNotCalled(t, "Record", mock.Anything)
}

func TestVehicleUsage_EmptyCatalogStillExports(t *testing.T) {
	f := newReportFixture(false)
	f.contracts.On("ContractsInRange", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.Contract{}, nil)
	f.vehicles.On("VehiclesForReporting", mock.Anything).Return([]domain.Vehicle{}, nil)
	f.expectAudit(func(r domain.GeneratedReport) bool {
		return r.Format == domain.FormatCSV && r.SizeBytes != nil
	})

	file, err := f.svc.ExportVehicleUsage(context.Background(), day(2024, 3, 1), day(2024, 3, 10), domain.FormatCSV)
	require.NoError(t, err)
	assert.NotEmpty(t, file.Content)
	f.audit.AssertExpectations(t)
}

func newCachedUsageService(catalog *mocks.MockCatalogInvalidator, contracts []domain.Contract, vehicles []domain.Vehicle) service.ReportService {
	contractSrc := new(mocks.MockContractSource)
	contractSrc.On("ContractsInRange", mock.Anything, mock.Anything, mock.Anything).Return(contracts, nil)
	vehicleSrc := new(mocks.MockVehicleSource)
	vehicleSrc.On("VehiclesForReporting", mock.Anything).Return(vehicles, nil)

	return service.NewReportService(service.ReportDeps{
		Contracts:    contractSrc,
		Vehicles:     vehicleSrc,
		VehicleCache: catalog,
		Validator:    validator.NewRangeValidator(func() time.Time { return fixedNow }),
	})
}

func TestVehicleUsage_UnknownRentedPlateInvalidatesCatalog(t *testing.T) {
	catalog := new(mocks.MockCatalogInvalidator)
	catalog.On("Invalidate", mock.Anything).Return(nil).Once()

	contracts := []domain.Contract{{
		ID: uuid.New(),
		LineItems: []domain.LineItem{
			lineItem(uuidPtr(uuid.New()), strPtr("ABC-123"), 2, "100"),
			lineItem(uuidPtr(uuid.New()), strPtr("NEW-001"), 3, "180"),
		},
	}}
	svc := newCachedUsageService(catalog, contracts, []domain.Vehicle{vehicle(strPtr("ABC-123"), "Toyota")})

	rows, err := svc.VehicleUsage(context.Background(), day(2024, 3, 1), day(2024, 3, 10))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ABC-123", rows[0].Plate)
	catalog.AssertExpectations(t)
}

func TestVehicleUsage_InvalidationFailureDoesNotFailReport(t *testing.T) {
	catalog := new(mocks.MockCatalogInvalidator)
	catalog.On("Invalidate", mock.Anything).Return(errors.New("redis down"))

	contracts := []domain.Contract{{
		ID:        uuid.New(),
		LineItems: []domain.LineItem{lineItem(uuidPtr(uuid.New()), strPtr("NEW-001"), 3, "180")},
	}}
	svc := newCachedUsageService(catalog, contracts, []domain.Vehicle{vehicle(strPtr("ABC-123"), "Toyota")})

	rows, err := svc.VehicleUsage(context.Background(), day(2024, 3, 1), day(2024, 3, 10))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Zero(t, rows[0].RentedDays)
	catalog.AssertNumberOfCalls(t, "Invalidate", 1)
}

func TestVehicleUsage_CatalogKeptWhenPlatesKnown(t *testing.T) {
	catalog := new(mocks.MockCatalogInvalidator)

	contracts := []domain.Contract{{
		ID:        uuid.New(),
		LineItems: []domain.LineItem{lineItem(uuidPtr(uuid.New()), strPtr(" abc-123 "), 3, "180")},
	}}
	svc := newCachedUsageService(catalog, contracts, []domain.Vehicle{vehicle(strPtr("ABC-123"), "Toyota")})

	_, err := svc.VehicleUsage(context.Background(), day(2024, 3, 1), day(2024, 3, 10))
	require.NoError(t, err)
	catalog.AssertNotCalled(t, "Invalidate", mock.Anything)
}

func TestVehicleUsage_SingleDayRangeRejected(t *testing.T) {
	f := newReportFixture(false)

	_, err := f.svc.VehicleUsage(context.Background(), day(2024, 3, 1), day(2024, 3, 1))
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.CodeRangeTooShort, verr.Code)
	f.vehicles.AssertNotCalled(t, "VehiclesForReporting", mock.Anything)
}

func TestVehicleUsage_VehicleServiceFailure(t *testing.T) {
	f := newReportFixture(false)
	f.contracts.On("ContractsInRange", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.Contract{}, nil).Maybe()
	f.vehicles.On("VehiclesForReporting", mock.Anything).
		Return(nil, &domain.RemoteError{Service: "vehicles", Status: 503})

	_, err := f.svc.VehicleUsage(context.Background(), day(2024, 3, 1), day(2024, 3, 10))
	assert.ErrorIs(t, err, domain.ErrRemote)
	f.audit.AssertNotCalled(t, "Record", mock.Anything)
}

func TestVehicleUsageSummary(t *testing.T) {
	f := usageFixture()
	f.expectAudit(func(domain.GeneratedReport) bool { return true })

	sum, err := f.svc.VehicleUsageSummary(context.Background(), day(2024, 3, 1), day(2024, 3, 10))
	require.NoError(t, err)

	assert.Equal(t, "2024-03-01 a 2024-03-10", sum.Period)
	assert.Equal(t, 4, sum.TotalVehicles)
	assert.Equal(t, 2, sum.VehiclesWithUse)
	assert.Equal(t, 2, sum.VehiclesWithoutUse)
	assert.True(t, dec("850").Equal(sum.TotalRevenue))
	assert.Equal(t, 27, sum.TotalRentedDays)
	assert.Equal(t, 3, sum.TotalContracts)
	assert.InDelta(t, 0.75, sum.AvgContracts, 1e-9)
	require.NotNil(t, sum.MostProfitable)
	assert.Equal(t, "XYZ-999", sum.MostProfitable.Plate)
}
