package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nguyenduy/opticart-api/internal/domain/entity"
	"github.com/nguyenduy/opticart-api/internal/domain/enum"
	"github.com/nguyenduy/opticart-api/internal/domain/selection"
	"github.com/nguyenduy/opticart-api/pkg/apperror"
	"github.com/nguyenduy/opticart-api/pkg/pagination"

	domainRepo "github.com/nguyenduy/opticart-api/internal/domain/repository"
)

// In-memory fakes for the repository interfaces. Only the behavior the
// services under test actually exercise is modeled; everything else returns
// zero values.

type fakeSelectionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*selection.State
	saveErr  error
}

func newFakeSelectionStore() *fakeSelectionStore {
	return &fakeSelectionStore{sessions: make(map[uuid.UUID]*selection.State)}
}

func (f *fakeSelectionStore) Save(ctx context.Context, state *selection.State, ttl time.Duration) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *state
	f.sessions[state.AccountID] = &cp
	return nil
}

func (f *fakeSelectionStore) Get(ctx context.Context, accountID uuid.UUID) (*selection.State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, ok := f.sessions[accountID]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (f *fakeSelectionStore) Delete(ctx context.Context, accountID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, accountID)
	return nil
}

type fakeCartStore struct {
	mu    sync.Mutex
	carts map[uuid.UUID][]domainRepo.CartItem
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: make(map[uuid.UUID][]domainRepo.CartItem)}
}

func (f *fakeCartStore) Add(ctx context.Context, accountID uuid.UUID, item domainRepo.CartItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.carts[accountID] = append(f.carts[accountID], item)
	return nil
}

func (f *fakeCartStore) Get(ctx context.Context, accountID uuid.UUID) ([]domainRepo.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domainRepo.CartItem(nil), f.carts[accountID]...), nil
}

func (f *fakeCartStore) Remove(ctx context.Context, accountID uuid.UUID, productGlassID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := f.carts[accountID]
	kept := items[:0]
	for _, it := range items {
		if it.ProductGlassID != productGlassID {
			kept = append(kept, it)
		}
	}
	f.carts[accountID] = kept
	return nil
}

func (f *fakeCartStore) Clear(ctx context.Context, accountID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.carts, accountID)
	return nil
}

type fakeEyeGlassRepo struct {
	frames map[uuid.UUID]*entity.EyeGlass
}

func newFakeEyeGlassRepo(frames ...*entity.EyeGlass) *fakeEyeGlassRepo {
	f := &fakeEyeGlassRepo{frames: make(map[uuid.UUID]*entity.EyeGlass)}
	for _, fr := range frames {
		f.frames[fr.ID] = fr
	}
	return f
}

func (f *fakeEyeGlassRepo) Create(ctx context.Context, eyeGlass *entity.EyeGlass) error {
	if eyeGlass.ID == uuid.Nil {
		eyeGlass.ID = uuid.New()
	}
	f.frames[eyeGlass.ID] = eyeGlass
	return nil
}

func (f *fakeEyeGlassRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.EyeGlass, error) {
	return f.frames[id], nil
}

func (f *fakeEyeGlassRepo) GetByCode(ctx context.Context, code string) (*entity.EyeGlass, error) {
	for _, fr := range f.frames {
		if fr.Code == code {
			return fr, nil
		}
	}
	return nil, nil
}

func (f *fakeEyeGlassRepo) Update(ctx context.Context, eyeGlass *entity.EyeGlass) error {
	f.frames[eyeGlass.ID] = eyeGlass
	return nil
}

func (f *fakeEyeGlassRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.frames, id)
	return nil
}

func (f *fakeEyeGlassRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.EyeGlass, int64, error) {
	return nil, 0, nil
}

func (f *fakeEyeGlassRepo) ListWithCursor(ctx context.Context, params *pagination.CursorParams, search string) ([]entity.EyeGlass, error) {
	return nil, nil
}

func (f *fakeEyeGlassRepo) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	fr, ok := f.frames[id]
	if !ok {
		return apperror.NewNotFoundError("Frame")
	}
	if fr.Quantity < quantity {
		return apperror.ErrOutOfStock
	}
	fr.Quantity -= quantity
	return nil
}

func (f *fakeEyeGlassRepo) IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	if fr, ok := f.frames[id]; ok {
		fr.Quantity += quantity
	}
	return nil
}

func (f *fakeEyeGlassRepo) GetLowStock(ctx context.Context, params *pagination.PaginationParams) ([]entity.EyeGlass, int64, error) {
	return nil, 0, nil
}

type fakeLensTypeRepo struct {
	lensTypes map[uuid.UUID]*entity.LensType
}

func newFakeLensTypeRepo(lensTypes ...*entity.LensType) *fakeLensTypeRepo {
	f := &fakeLensTypeRepo{lensTypes: make(map[uuid.UUID]*entity.LensType)}
	for _, lt := range lensTypes {
		f.lensTypes[lt.ID] = lt
	}
	return f
}

func (f *fakeLensTypeRepo) Create(ctx context.Context, lensType *entity.LensType) error {
	if lensType.ID == uuid.Nil {
		lensType.ID = uuid.New()
	}
	f.lensTypes[lensType.ID] = lensType
	return nil
}

func (f *fakeLensTypeRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.LensType, error) {
	return f.lensTypes[id], nil
}

func (f *fakeLensTypeRepo) Update(ctx context.Context, lensType *entity.LensType) error { return nil }
func (f *fakeLensTypeRepo) Delete(ctx context.Context, id uuid.UUID) error              { return nil }

func (f *fakeLensTypeRepo) ListActive(ctx context.Context) ([]entity.LensType, error) {
	var out []entity.LensType
	for _, lt := range f.lensTypes {
		if lt.Status {
			out = append(out, *lt)
		}
	}
	return out, nil
}

func (f *fakeLensTypeRepo) List(ctx context.Context) ([]entity.LensType, error) { return nil, nil }

type fakeLensRepo struct {
	lenses map[uuid.UUID]*entity.Lens
}

func newFakeLensRepo(lenses ...*entity.Lens) *fakeLensRepo {
	f := &fakeLensRepo{lenses: make(map[uuid.UUID]*entity.Lens)}
	for _, l := range lenses {
		f.lenses[l.ID] = l
	}
	return f
}

func (f *fakeLensRepo) Create(ctx context.Context, lens *entity.Lens) error {
	f.lenses[lens.ID] = lens
	return nil
}

func (f *fakeLensRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Lens, error) {
	return f.lenses[id], nil
}

func (f *fakeLensRepo) Update(ctx context.Context, lens *entity.Lens) error { return nil }
func (f *fakeLensRepo) Delete(ctx context.Context, id uuid.UUID) error      { return nil }

func (f *fakeLensRepo) ListByType(ctx context.Context, lensTypeID uuid.UUID) ([]entity.Lens, error) {
	return nil, nil
}

func (f *fakeLensRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Lens, int64, error) {
	return nil, 0, nil
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*entity.Profile
}

func newFakeProfileRepo(profiles ...*entity.Profile) *fakeProfileRepo {
	f := &fakeProfileRepo{profiles: make(map[uuid.UUID]*entity.Profile)}
	for _, p := range profiles {
		f.profiles[p.ID] = p
	}
	return f
}

func (f *fakeProfileRepo) Create(ctx context.Context, profile *entity.Profile) error {
	f.profiles[profile.ID] = profile
	return nil
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	return f.profiles[id], nil
}

func (f *fakeProfileRepo) Update(ctx context.Context, profile *entity.Profile) error { return nil }
func (f *fakeProfileRepo) Delete(ctx context.Context, id uuid.UUID) error            { return nil }

func (f *fakeProfileRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, params *pagination.PaginationParams) ([]entity.Profile, int64, error) {
	return nil, 0, nil
}

type fakeRefractionRepo struct {
	records map[uuid.UUID]*entity.RefractionRecord
}

func newFakeRefractionRepo(records ...*entity.RefractionRecord) *fakeRefractionRepo {
	f := &fakeRefractionRepo{records: make(map[uuid.UUID]*entity.RefractionRecord)}
	for _, r := range records {
		f.records[r.ID] = r
	}
	return f
}

func (f *fakeRefractionRepo) CreateRecord(ctx context.Context, record *entity.RefractionRecord) error {
	f.records[record.ID] = record
	return nil
}

func (f *fakeRefractionRepo) GetRecordByID(ctx context.Context, id uuid.UUID) (*entity.RefractionRecord, error) {
	return f.records[id], nil
}

func (f *fakeRefractionRepo) ListRecordsByProfile(ctx context.Context, profileID uuid.UUID) ([]entity.RefractionRecord, error) {
	var out []entity.RefractionRecord
	for _, r := range f.records {
		if r.ProfileID == profileID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRefractionRepo) CreateMeasurements(ctx context.Context, measurements []entity.MeasurementRecord) error {
	return nil
}

func (f *fakeRefractionRepo) GetMeasurementsByRecord(ctx context.Context, recordID uuid.UUID) ([]entity.MeasurementRecord, error) {
	if r, ok := f.records[recordID]; ok {
		return r.Measurements, nil
	}
	return nil, nil
}

type fakeProductGlassRepo struct {
	products map[uuid.UUID]*entity.ProductGlass
}

func newFakeProductGlassRepo(products ...*entity.ProductGlass) *fakeProductGlassRepo {
	f := &fakeProductGlassRepo{products: make(map[uuid.UUID]*entity.ProductGlass)}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProductGlassRepo) Create(ctx context.Context, productGlass *entity.ProductGlass) error {
	if productGlass.ID == uuid.Nil {
		productGlass.ID = uuid.New()
	}
	f.products[productGlass.ID] = productGlass
	return nil
}

func (f *fakeProductGlassRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductGlass, error) {
	return f.products[id], nil
}

func (f *fakeProductGlassRepo) GetWithRelations(ctx context.Context, id uuid.UUID) (*entity.ProductGlass, error) {
	return f.products[id], nil
}

func (f *fakeProductGlassRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, params *pagination.PaginationParams) ([]entity.ProductGlass, int64, error) {
	return nil, 0, nil
}

func (f *fakeProductGlassRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.products, id)
	return nil
}

type fakeVoucherRepo struct {
	vouchers map[uuid.UUID]*entity.Voucher
}

func newFakeVoucherRepo(vouchers ...*entity.Voucher) *fakeVoucherRepo {
	f := &fakeVoucherRepo{vouchers: make(map[uuid.UUID]*entity.Voucher)}
	for _, v := range vouchers {
		f.vouchers[v.ID] = v
	}
	return f
}

func (f *fakeVoucherRepo) Create(ctx context.Context, voucher *entity.Voucher) error {
	f.vouchers[voucher.ID] = voucher
	return nil
}

func (f *fakeVoucherRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Voucher, error) {
	return f.vouchers[id], nil
}

func (f *fakeVoucherRepo) GetByCode(ctx context.Context, code string) (*entity.Voucher, error) {
	for _, v := range f.vouchers {
		if v.Code == code {
			return v, nil
		}
	}
	return nil, nil
}

func (f *fakeVoucherRepo) Update(ctx context.Context, voucher *entity.Voucher) error {
	f.vouchers[voucher.ID] = voucher
	return nil
}

func (f *fakeVoucherRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeVoucherRepo) List(ctx context.Context) ([]entity.Voucher, error) { return nil, nil }

func (f *fakeVoucherRepo) DecrementQuantity(ctx context.Context, id uuid.UUID) error {
	v, ok := f.vouchers[id]
	if !ok || v.Quantity <= 0 {
		return apperror.ErrVoucherUnusable
	}
	v.Quantity--
	return nil
}

type fakeKioskRepo struct {
	kiosks map[uuid.UUID]*entity.Kiosk
}

func newFakeKioskRepo(kiosks ...*entity.Kiosk) *fakeKioskRepo {
	f := &fakeKioskRepo{kiosks: make(map[uuid.UUID]*entity.Kiosk)}
	for _, k := range kiosks {
		f.kiosks[k.ID] = k
	}
	return f
}

func (f *fakeKioskRepo) Create(ctx context.Context, kiosk *entity.Kiosk) error { return nil }

func (f *fakeKioskRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Kiosk, error) {
	return f.kiosks[id], nil
}

func (f *fakeKioskRepo) Update(ctx context.Context, kiosk *entity.Kiosk) error { return nil }
func (f *fakeKioskRepo) Delete(ctx context.Context, id uuid.UUID) error        { return nil }

func (f *fakeKioskRepo) ListActive(ctx context.Context) ([]entity.Kiosk, error) { return nil, nil }
func (f *fakeKioskRepo) List(ctx context.Context) ([]entity.Kiosk, error)       { return nil, nil }

type fakeAccountRepo struct {
	accounts map[uuid.UUID]*entity.Account
}

func newFakeAccountRepo(accounts ...*entity.Account) *fakeAccountRepo {
	f := &fakeAccountRepo{accounts: make(map[uuid.UUID]*entity.Account)}
	for _, a := range accounts {
		f.accounts[a.ID] = a
	}
	return f
}

func (f *fakeAccountRepo) Create(ctx context.Context, account *entity.Account) error { return nil }

func (f *fakeAccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return f.accounts[id], nil
}

func (f *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	for _, a := range f.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) GetByUsername(ctx context.Context, username string) (*entity.Account, error) {
	for _, a := range f.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) Update(ctx context.Context, account *entity.Account) error {
	f.accounts[account.ID] = account
	return nil
}
func (f *fakeAccountRepo) Delete(ctx context.Context, id uuid.UUID) error            { return nil }

func (f *fakeAccountRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Account, int64, error) {
	return nil, 0, nil
}

func (f *fakeAccountRepo) GetWithRoles(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return f.accounts[id], nil
}

func (f *fakeAccountRepo) AssignRole(ctx context.Context, accountID uuid.UUID, roleID uint) error {
	return nil
}

func (f *fakeAccountRepo) RemoveRole(ctx context.Context, accountID uuid.UUID, roleID uint) error {
	return nil
}

type fakeOrderRepo struct {
	orders    map[uuid.UUID]*entity.Order
	createErr error
}

func newFakeOrderRepo(orders ...*entity.Order) *fakeOrderRepo {
	f := &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
	for _, o := range orders {
		f.orders[o.ID] = o
	}
	return f
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return f.orders[id], nil
}

func (f *fakeOrderRepo) GetByCode(ctx context.Context, code string) (*entity.Order, error) {
	for _, o := range f.orders {
		if o.Code == code {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeOrderRepo) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	return nil, 0, nil
}

func (f *fakeOrderRepo) ListWithCursor(ctx context.Context, params *domainRepo.OrderCursorFilterParams) ([]entity.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return f.orders[id], nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error {
	if o, ok := f.orders[id]; ok {
		o.Status = status
	}
	return nil
}

type fakeOrderDetailRepo struct {
	details   []entity.OrderDetail
	createErr error
}

func (f *fakeOrderDetailRepo) Create(ctx context.Context, detail *entity.OrderDetail) error {
	f.details = append(f.details, *detail)
	return nil
}

func (f *fakeOrderDetailRepo) CreateBatch(ctx context.Context, details []entity.OrderDetail) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.details = append(f.details, details...)
	return nil
}

func (f *fakeOrderDetailRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderDetail, error) {
	return nil, nil
}

func (f *fakeOrderDetailRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderDetail, error) {
	var out []entity.OrderDetail
	for _, d := range f.details {
		if d.OrderID == orderID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeOrderDetailRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeOrderDetailRepo) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	return nil
}

type fakePaymentRepo struct {
	payments map[uuid.UUID]*entity.Payment
}

func newFakePaymentRepo(payments ...*entity.Payment) *fakePaymentRepo {
	f := &fakePaymentRepo{payments: make(map[uuid.UUID]*entity.Payment)}
	for _, p := range payments {
		f.payments[p.ID] = p
	}
	return f
}

func (f *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	f.payments[payment.ID] = payment
	return nil
}

func (f *fakePaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	return f.payments[id], nil
}

func (f *fakePaymentRepo) GetByCode(ctx context.Context, code string) (*entity.Payment, error) {
	for _, p := range f.payments {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error) {
	var out []entity.Payment
	for _, p := range f.payments {
		if p.OrderID == orderID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) Update(ctx context.Context, payment *entity.Payment) error {
	f.payments[payment.ID] = payment
	return nil
}

type fakeGateway struct {
	chargeFn func(ctx context.Context, req domainRepo.ChargeRequest) (*domainRepo.ChargeResult, error)
	charges  []domainRepo.ChargeRequest
	refunds  []string
}

func (f *fakeGateway) Charge(ctx context.Context, req domainRepo.ChargeRequest) (*domainRepo.ChargeResult, error) {
	f.charges = append(f.charges, req)
	if f.chargeFn != nil {
		return f.chargeFn(ctx, req)
	}
	return &domainRepo.ChargeResult{
		TransactionID: "txn-" + req.PaymentCode,
		PaymentURL:    "https://pay.example/" + req.PaymentCode,
		Succeeded:     true,
	}, nil
}

func (f *fakeGateway) Refund(ctx context.Context, transactionID string, amount int64) error {
	f.refunds = append(f.refunds, transactionID)
	return nil
}

type fakePublisher struct {
	events []domainRepo.OrderPlacedEvent
	err    error
}

func (f *fakePublisher) PublishOrderPlaced(ctx context.Context, event domainRepo.OrderPlacedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakePublisher) Close() error { return nil }
