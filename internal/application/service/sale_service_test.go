package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sokoni/depot-api/internal/domain/entity"
	"github.com/sokoni/depot-api/internal/domain/enum"
	"github.com/sokoni/depot-api/internal/domain/repository"
	"github.com/sokoni/depot-api/pkg/apperror"
	"github.com/sokoni/depot-api/pkg/money"
	"github.com/sokoni/depot-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeUserRepo holds users in memory.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByName(ctx context.Context, name string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Name == name {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, params *repository.UserFilterParams) ([]entity.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.User
	for _, u := range r.users {
		if u.ID == params.Except {
			continue
		}
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

// fakeLedger implements SaleRepository over in-memory maps. Transaction
// takes a snapshot first and restores it when the callback fails, matching
// the rollback contract of the real store.
type fakeLedger struct {
	mu          sync.Mutex
	products    map[uuid.UUID]*entity.Product
	sales       map[uuid.UUID]*entity.Sale
	saleNumbers map[string]bool

	// forceCollisions makes InsertSale fail with a duplicate number error
	// this many times before accepting.
	forceCollisions int
}

func newFakeLedger(products ...*entity.Product) *fakeLedger {
	l := &fakeLedger{
		products:    make(map[uuid.UUID]*entity.Product),
		sales:       make(map[uuid.UUID]*entity.Sale),
		saleNumbers: make(map[string]bool),
	}
	for _, p := range products {
		l.products[p.ID] = p
	}
	return l
}

type fakeLedgerTx struct {
	ledger *fakeLedger
}

func (t *fakeLedgerTx) LockProduct(id uuid.UUID) (*entity.Product, error) {
	p, ok := t.ledger.products[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (t *fakeLedgerTx) DecrementStock(id uuid.UUID, quantity int) (bool, error) {
	p, ok := t.ledger.products[id]
	if !ok || p.StockInSaleUnits < quantity {
		return false, nil
	}
	p.StockInSaleUnits -= quantity
	return true, nil
}

func (t *fakeLedgerTx) InsertSale(sale *entity.Sale) error {
	if t.ledger.forceCollisions > 0 {
		t.ledger.forceCollisions--
		return repository.ErrDuplicateSaleNumber
	}
	if t.ledger.saleNumbers[sale.SaleNumber] {
		return repository.ErrDuplicateSaleNumber
	}
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	copied := *sale
	t.ledger.sales[sale.ID] = &copied
	t.ledger.saleNumbers[sale.SaleNumber] = true
	return nil
}

func (t *fakeLedgerTx) InsertSaleItems(items []entity.SaleItem) error {
	if len(items) == 0 {
		return nil
	}
	sale, ok := t.ledger.sales[items[0].SaleID]
	if !ok {
		return nil
	}
	sale.Items = append(sale.Items, items...)
	return nil
}

func (l *fakeLedger) Transaction(ctx context.Context, fn func(tx repository.SaleTx) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	snapProducts := make(map[uuid.UUID]*entity.Product, len(l.products))
	for id, p := range l.products {
		copied := *p
		snapProducts[id] = &copied
	}
	snapSales := make(map[uuid.UUID]*entity.Sale, len(l.sales))
	for id, s := range l.sales {
		copied := *s
		snapSales[id] = &copied
	}
	snapNumbers := make(map[string]bool, len(l.saleNumbers))
	for n := range l.saleNumbers {
		snapNumbers[n] = true
	}

	if err := fn(&fakeLedgerTx{ledger: l}); err != nil {
		l.products = snapProducts
		l.sales = snapSales
		l.saleNumbers = snapNumbers
		return err
	}
	return nil
}

func (l *fakeLedger) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.sales[id]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (l *fakeLedger) List(ctx context.Context, params *repository.SaleFilterParams) ([]repository.SaleWithSeller, int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []repository.SaleWithSeller
	for _, s := range l.sales {
		if params.UserID != nil && s.UserID != *params.UserID {
			continue
		}
		out = append(out, repository.SaleWithSeller{Sale: *s, ItemsCount: int64(len(s.Items))})
	}
	return out, int64(len(out)), nil
}

func (l *fakeLedger) stockOf(id uuid.UUID) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.products[id].StockInSaleUnits
}

func (l *fakeLedger) saleCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.sales)
}

func testProduct(name string, stock int, priceCents int64) *entity.Product {
	return &entity.Product{
		ID:               uuid.New(),
		Name:             name,
		StockInSaleUnits: stock,
		PricePerSaleUnit: money.FromCents(priceCents),
	}
}

func testSeller() *entity.User {
	return &entity.User{ID: uuid.New(), Name: "cashier", Role: enum.RoleUser}
}

func newSaleService(t *testing.T, ledger *fakeLedger, users *fakeUserRepo) *SaleService {
	t.Helper()
	return NewSaleService(ledger, nil, users, zaptest.NewLogger(t))
}

func TestCreateSaleRecordsSaleAndDecrementsStock(t *testing.T) {
	soap := testProduct("Soap", 10, 250)
	rice := testProduct("Rice 5kg", 4, 1999)
	ledger := newFakeLedger(soap, rice)
	seller := testSeller()
	svc := newSaleService(t, ledger, newFakeUserRepo(seller))

	result, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID: seller.ID,
		Lines: []entity.SaleLine{
			{ProductID: soap.ID, Quantity: 3},
			{ProductID: rice.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result.Sale)
	sale := result.Sale

	assert.True(t, strings.HasPrefix(sale.SaleNumber, "SALE-"), "sale number %q", sale.SaleNumber)
	assert.Equal(t, 7, ledger.stockOf(soap.ID))
	assert.Equal(t, 2, ledger.stockOf(rice.ID))

	// 3 x 2.50 + 2 x 19.99 = 47.48 exactly
	assert.Equal(t, money.FromCents(4748), sale.TotalAmount)

	require.Len(t, sale.Items, 2)
	var sum money.Money
	for _, item := range sale.Items {
		sum = sum.Add(item.TotalPrice)
		assert.Equal(t, item.UnitPrice.MulInt(item.Quantity), item.TotalPrice)
	}
	assert.Equal(t, sale.TotalAmount, sum)

	// The receipt is assembled as part of the commit
	receipt := result.Receipt
	require.NotNil(t, receipt)
	assert.Equal(t, sale.SaleNumber, receipt.SaleNumber)
	assert.Equal(t, "cashier", receipt.SellerName)
	assert.Equal(t, money.FromCents(4748), receipt.TotalAmount)
	require.Len(t, receipt.Items, 2)
	assert.Equal(t, "Soap", receipt.Items[0].ProductName)
	assert.Equal(t, "Rice 5kg", receipt.Items[1].ProductName)
}

func TestCreateSaleSnapshotsPriceAtSaleTime(t *testing.T) {
	soap := testProduct("Soap", 10, 250)
	ledger := newFakeLedger(soap)
	seller := testSeller()
	svc := newSaleService(t, ledger, newFakeUserRepo(seller))

	result, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID: seller.ID,
		Lines:  []entity.SaleLine{{ProductID: soap.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// A later price change must not touch the committed sale item
	ledger.products[soap.ID].PricePerSaleUnit = money.FromCents(999)

	assert.Equal(t, money.FromCents(250), result.Sale.Items[0].UnitPrice)
	assert.Equal(t, money.FromCents(250), result.Sale.TotalAmount)
	assert.Equal(t, money.FromCents(250), result.Receipt.Items[0].UnitPrice)
}

func TestCreateSaleInsufficientStockRollsBackEverything(t *testing.T) {
	soap := testProduct("Soap", 10, 250)
	rice := testProduct("Rice 5kg", 1, 1999)
	ledger := newFakeLedger(soap, rice)
	seller := testSeller()
	svc := newSaleService(t, ledger, newFakeUserRepo(seller))

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID: seller.ID,
		Lines: []entity.SaleLine{
			{ProductID: soap.ID, Quantity: 3},
			{ProductID: rice.ID, Quantity: 2},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err), "got %v", err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	// Neither product lost stock and no sale was recorded
	assert.Equal(t, 10, ledger.stockOf(soap.ID))
	assert.Equal(t, 1, ledger.stockOf(rice.ID))
	assert.Equal(t, 0, ledger.saleCount())
}

func TestCreateSaleUnknownProduct(t *testing.T) {
	soap := testProduct("Soap", 10, 250)
	ledger := newFakeLedger(soap)
	seller := testSeller()
	svc := newSaleService(t, ledger, newFakeUserRepo(seller))

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID: seller.ID,
		Lines: []entity.SaleLine{
			{ProductID: soap.ID, Quantity: 1},
			{ProductID: uuid.New(), Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
	assert.Equal(t, 10, ledger.stockOf(soap.ID))
	assert.Equal(t, 0, ledger.saleCount())
}

func TestCreateSaleUnknownUser(t *testing.T) {
	soap := testProduct("Soap", 10, 250)
	ledger := newFakeLedger(soap)
	svc := newSaleService(t, ledger, newFakeUserRepo())

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID: uuid.New(),
		Lines:  []entity.SaleLine{{ProductID: soap.ID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestCreateSaleValidation(t *testing.T) {
	soap := testProduct("Soap", 10, 250)
	seller := testSeller()

	tests := []struct {
		name  string
		lines []entity.SaleLine
	}{
		{"empty sale", nil},
		{"zero quantity", []entity.SaleLine{{ProductID: soap.ID, Quantity: 0}}},
		{"negative quantity", []entity.SaleLine{{ProductID: soap.ID, Quantity: -2}}},
		{"duplicate product", []entity.SaleLine{
			{ProductID: soap.ID, Quantity: 1},
			{ProductID: soap.ID, Quantity: 2},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := newFakeLedger(soap)
			svc := newSaleService(t, ledger, newFakeUserRepo(seller))

			_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
				UserID: seller.ID,
				Lines:  tt.lines,
			})
			require.Error(t, err)
			assert.Equal(t, 422, apperror.GetAppError(err).Code)
			assert.Equal(t, 10, ledger.stockOf(soap.ID))
			assert.Equal(t, 0, ledger.saleCount())
		})
	}
}

func TestCreateSaleRetriesOnDuplicateSaleNumber(t *testing.T) {
	soap := testProduct("Soap", 10, 250)
	ledger := newFakeLedger(soap)
	ledger.forceCollisions = 2
	seller := testSeller()
	svc := newSaleService(t, ledger, newFakeUserRepo(seller))

	result, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID: seller.ID,
		Lines:  []entity.SaleLine{{ProductID: soap.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	require.NotNil(t, result.Sale)
	require.NotNil(t, result.Receipt)

	// The failed attempts rolled back, only the final one decremented
	assert.Equal(t, 9, ledger.stockOf(soap.ID))
	assert.Equal(t, 1, ledger.saleCount())
}

func TestCreateSaleGivesUpAfterRepeatedCollisions(t *testing.T) {
	soap := testProduct("Soap", 10, 250)
	ledger := newFakeLedger(soap)
	ledger.forceCollisions = saleNumberAttempts
	seller := testSeller()
	svc := newSaleService(t, ledger, newFakeUserRepo(seller))

	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID: seller.ID,
		Lines:  []entity.SaleLine{{ProductID: soap.ID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
	assert.Equal(t, 10, ledger.stockOf(soap.ID))
	assert.Equal(t, 0, ledger.saleCount())
}

func TestConcurrentSalesNeverOversell(t *testing.T) {
	const stock = 8
	soap := testProduct("Soap", stock, 250)
	ledger := newFakeLedger(soap)
	seller := testSeller()
	svc := newSaleService(t, ledger, newFakeUserRepo(seller))

	var wg sync.WaitGroup
	errs := make(chan error, stock+1)
	for i := 0; i < stock+1; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
				UserID: seller.ID,
				Lines:  []entity.SaleLine{{ProductID: soap.ID, Quantity: 1}},
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var successes, stockFailures int
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case apperror.IsInsufficientStock(err):
			stockFailures++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, stock, successes)
	assert.Equal(t, 1, stockFailures)
	assert.Equal(t, 0, ledger.stockOf(soap.ID))
	assert.Equal(t, stock, ledger.saleCount())
}

func TestGetSaleEnforcesOwnership(t *testing.T) {
	soap := testProduct("Soap", 10, 250)
	ledger := newFakeLedger(soap)
	seller := testSeller()
	other := &entity.User{ID: uuid.New(), Name: "other", Role: enum.RoleUser}
	svc := newSaleService(t, ledger, newFakeUserRepo(seller, other))

	result, err := svc.CreateSale(context.Background(), &CreateSaleInput{
		UserID: seller.ID,
		Lines:  []entity.SaleLine{{ProductID: soap.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	sale := result.Sale

	// Owner can read
	got, err := svc.GetSale(context.Background(), seller.ID, false, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.ID, got.ID)

	// Another non-admin cannot
	_, err = svc.GetSale(context.Background(), other.ID, false, sale.ID)
	require.Error(t, err)
	assert.Equal(t, 403, apperror.GetAppError(err).Code)

	// An admin can
	got, err = svc.GetSale(context.Background(), other.ID, true, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.ID, got.ID)
}

func TestListSalesPinsNonAdminToOwnSales(t *testing.T) {
	soap := testProduct("Soap", 10, 250)
	ledger := newFakeLedger(soap)
	seller := testSeller()
	other := &entity.User{ID: uuid.New(), Name: "other", Role: enum.RoleUser}
	svc := newSaleService(t, ledger, newFakeUserRepo(seller, other))

	for _, u := range []*entity.User{seller, seller, other} {
		_, err := svc.CreateSale(context.Background(), &CreateSaleInput{
			UserID: u.ID,
			Lines:  []entity.SaleLine{{ProductID: soap.ID, Quantity: 1}},
		})
		require.NoError(t, err)
	}

	params := func() *repository.SaleFilterParams {
		return &repository.SaleFilterParams{Pagination: pagination.DefaultPagination()}
	}

	result, err := svc.ListSales(context.Background(), seller.ID, false, params())
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Pagination.Total)

	result, err = svc.ListSales(context.Background(), seller.ID, true, params())
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Pagination.Total)
}
