package coupon

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

var couponColumns = []string{
	"id",
	"code",
	"description",
	"discount_type",
	"discount_value",
	"minimum_purchase_amount",
	"maximum_discount_amount",
	"usage_limit",
	"per_user_limit",
	"start_date",
	"end_date",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий купонов и их использований
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория купонов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает купон
func (r *Repository) Create(ctx context.Context, coupon *domain.Coupon) (*domain.Coupon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("coupons").
		Columns(
			"code",
			"description",
			"discount_type",
			"discount_value",
			"minimum_purchase_amount",
			"maximum_discount_amount",
			"usage_limit",
			"per_user_limit",
			"start_date",
			"end_date",
			"is_active",
		).
		Values(
			coupon.Code,
			coupon.Description,
			coupon.DiscountType,
			coupon.DiscountValue,
			nullDecimal(coupon.MinimumPurchaseAmount),
			nullDecimal(coupon.MaximumDiscountAmount),
			coupon.UsageLimit,
			coupon.PerUserLimit,
			coupon.StartDate,
			coupon.EndDate,
			coupon.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&coupon.ID, &createdAt, &updatedAt)
	if pgerr.IsUniqueViolation(err) {
		return nil, ErrDuplicateCode
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	coupon.CreatedAt = createdAt.Time
	coupon.UpdatedAt = updatedAt.Time

	return coupon, nil
}

// GetByCode получает купон по коду (с учетом регистра)
// В транзакции строка купона блокируется (FOR UPDATE): параллельные попытки
// использовать последний доступный купон выполняются по очереди
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(couponColumns...).
		From("coupons").
		Where(squirrel.Eq{"code": code})

	if dbmetrics.CanLockRows(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %w", ErrBuildQuery, err)
	}

	coupon, err := scanCoupon(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - scan coupon: %w", ErrScanRow, err)
	}

	return coupon, nil
}

// SetActive включает или выключает купон
func (r *Repository) SetActive(ctx context.Context, code string, active bool) (*domain.Coupon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("coupons").
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"code": code}).
		Suffix("RETURNING " + strings.Join(couponColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: SetActive - build update query: %w", ErrBuildQuery, err)
	}

	coupon, err := scanCoupon(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: SetActive - execute update: %w", ErrExecQuery, err)
	}

	return coupon, nil
}

// CountRedemptions количество использований купона
func (r *Repository) CountRedemptions(ctx context.Context, couponID int64) (int, error) {
	return r.count(ctx, "CountRedemptions", squirrel.Eq{"coupon_id": couponID})
}

// CountUserRedemptions количество использований купона клиентом
func (r *Repository) CountUserRedemptions(ctx context.Context, couponID, customerID int64) (int, error) {
	return r.count(ctx, "CountUserRedemptions", squirrel.Eq{"coupon_id": couponID, "customer_id": customerID})
}

func (r *Repository) count(ctx context.Context, method string, where squirrel.Eq) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("coupon_redemptions").
		Where(where).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, method, err)
	}

	var n int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, method, err)
	}

	return n, nil
}

// RecordRedemption сохраняет факт использования купона
// Должен вызываться в той же транзакции, в которой были посчитаны использования
func (r *Repository) RecordRedemption(ctx context.Context, redemption *domain.Redemption) (*domain.Redemption, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("coupon_redemptions").
		Columns("coupon_id", "customer_id", "booking_id", "amount_saved").
		Values(redemption.CouponID, redemption.CustomerID, redemption.BookingID, redemption.AmountSaved).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: RecordRedemption - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&redemption.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: RecordRedemption - execute insert: %w", ErrExecQuery, err)
	}
	redemption.CreatedAt = createdAt.Time

	return redemption, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCoupon(row rowScanner) (*domain.Coupon, error) {
	var coupon domain.Coupon
	var minPurchase, maxDiscount decimal.NullDecimal
	var usageLimit, perUserLimit sql.NullInt64
	var startDate, endDate sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&coupon.ID,
		&coupon.Code,
		&coupon.Description,
		&coupon.DiscountType,
		&coupon.DiscountValue,
		&minPurchase,
		&maxDiscount,
		&usageLimit,
		&perUserLimit,
		&startDate,
		&endDate,
		&coupon.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if minPurchase.Valid {
		coupon.MinimumPurchaseAmount = &minPurchase.Decimal
	}
	if maxDiscount.Valid {
		coupon.MaximumDiscountAmount = &maxDiscount.Decimal
	}
	if usageLimit.Valid {
		v := int(usageLimit.Int64)
		coupon.UsageLimit = &v
	}
	if perUserLimit.Valid {
		v := int(perUserLimit.Int64)
		coupon.PerUserLimit = &v
	}
	if startDate.Valid {
		coupon.StartDate = &startDate.Time
	}
	if endDate.Valid {
		coupon.EndDate = &endDate.Time
	}
	coupon.CreatedAt = createdAt.Time
	coupon.UpdatedAt = updatedAt.Time

	return &coupon, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
