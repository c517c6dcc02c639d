package dao

import (
	"testing"

	"creator_wallet/internal/domain"
	"creator_wallet/internal/ledger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testMaxDeposit = 1_000_000 // $10,000.00

func newMockDAO(t *testing.T) (*WalletDAO, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return NewWalletDAO(gdb, testMaxDeposit), mock
}

func walletRows(id, userID uint, tk, tki int64, version uint) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "tk", "tki", "total_earnings", "total_withdrawn", "version"}).
		AddRow(id, userID, tk, tki, 0, 0, version)
}

func TestGetOrCreateExisting(t *testing.T) {
	d, mock := newMockDAO(t)

	mock.ExpectQuery("SELECT .* FROM `wallets`").
		WillReturnRows(walletRows(3, 7, 5000, 100, 2))

	wallet, err := d.GetOrCreate(7)
	require.NoError(t, err)
	assert.Equal(t, uint(3), wallet.ID)
	assert.Equal(t, int64(5000), wallet.TK)
	assert.Equal(t, int64(100), wallet.TKI)
	assert.Equal(t, uint(2), wallet.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrCreateLazilyCreates(t *testing.T) {
	d, mock := newMockDAO(t)

	// No wallet yet: the lookup misses and a zero-balance row is inserted
	mock.ExpectQuery("SELECT .* FROM `wallets`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "tk", "tki", "total_earnings", "total_withdrawn", "version"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `wallets`").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectCommit()

	wallet, err := d.GetOrCreate(7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), wallet.UserID)
	assert.Zero(t, wallet.TK)
	assert.Zero(t, wallet.TKI)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMutateAdd(t *testing.T) {
	d, mock := newMockDAO(t)

	mock.ExpectQuery("SELECT .* FROM `wallets`").
		WillReturnRows(walletRows(3, 7, 10_000, 0, 1))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `wallets` SET").
		WillReturnResult(sqlmock.NewResult(0, 1)) // conditional update matched
	mock.ExpectExec("INSERT INTO `transactions`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	wallet, record, err := d.Mutate(7, ledger.OpAdd, 5000, domain.TxTypeDeposit)
	require.NoError(t, err)
	assert.Equal(t, int64(15_000), wallet.TK)
	assert.Equal(t, int64(200), wallet.TKI) // 2 Hypes rebate on 50.00
	assert.Equal(t, uint(2), wallet.Version)
	assert.Equal(t, int64(200), record.Rebate)
	assert.Equal(t, domain.TxTypeDeposit, record.Type)
	assert.NotEmpty(t, record.Reference)
	require.NotNil(t, record.ToWalletID)
	assert.Equal(t, uint(3), *record.ToWalletID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMutateRetriesOnVersionConflict(t *testing.T) {
	d, mock := newMockDAO(t)

	// First attempt: a concurrent writer bumped the version, zero rows match
	mock.ExpectQuery("SELECT .* FROM `wallets`").
		WillReturnRows(walletRows(3, 7, 10_000, 0, 1))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `wallets` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	// Second attempt: fresh read sees the new version and succeeds
	mock.ExpectQuery("SELECT .* FROM `wallets`").
		WillReturnRows(walletRows(3, 7, 12_000, 0, 2))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `wallets` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `transactions`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	wallet, _, err := d.Mutate(7, ledger.OpAdd, 5000, domain.TxTypeDeposit)
	require.NoError(t, err)
	assert.Equal(t, int64(17_000), wallet.TK) // applied against the fresh balance
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMutateInsufficientBalance(t *testing.T) {
	d, mock := newMockDAO(t)

	mock.ExpectQuery("SELECT .* FROM `wallets`").
		WillReturnRows(walletRows(3, 7, 1000, 0, 1))

	// Validation fails before any write is attempted
	_, _, err := d.Mutate(7, ledger.OpSubtract, 5000, domain.TxTypeSpend)
	assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMutateDepositCap(t *testing.T) {
	d, mock := newMockDAO(t)

	// Cap is checked before the wallet is even read
	_, _, err := d.Mutate(7, ledger.OpAdd, testMaxDeposit+1, domain.TxTypeDeposit)
	assert.ErrorIs(t, err, ledger.ErrDepositLimit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGiftVideoNotFound(t *testing.T) {
	d, mock := newMockDAO(t)

	mock.ExpectQuery("SELECT .* FROM `videos`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "creator_id", "title", "description", "earned_total", "created_at"}))

	_, err := d.Gift(7, 42, 1000)
	assert.ErrorIs(t, err, ErrVideoNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGiftOwnVideoRejected(t *testing.T) {
	d, mock := newMockDAO(t)

	mock.ExpectQuery("SELECT .* FROM `videos`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "creator_id", "title", "description", "earned_total", "created_at"}).
			AddRow(42, 7, "my own video", "", 0, 0))

	_, err := d.Gift(7, 42, 1000)
	assert.ErrorIs(t, err, ErrSelfGift)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGiftDepositCap(t *testing.T) {
	d, mock := newMockDAO(t)

	// Cap is checked up front, before the video is even loaded
	_, err := d.Gift(7, 42, testMaxDeposit+50_000)
	assert.ErrorIs(t, err, ledger.ErrDepositLimit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGift(t *testing.T) {
	d, mock := newMockDAO(t)

	// Video owned by creator 9
	mock.ExpectQuery("SELECT .* FROM `videos`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "creator_id", "title", "description", "earned_total", "created_at"}).
			AddRow(42, 9, "dance video", "", 0, 0))
	// Sender and creator wallets
	mock.ExpectQuery("SELECT .* FROM `wallets`").
		WillReturnRows(walletRows(3, 7, 10_000, 0, 1))
	mock.ExpectQuery("SELECT .* FROM `wallets`").
		WillReturnRows(walletRows(4, 9, 0, 0, 5))
	// One transaction covering both wallets, the video counter and the log row
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `wallets` SET").
		WillReturnResult(sqlmock.NewResult(0, 1)) // sender debit
	mock.ExpectExec("UPDATE `wallets` SET").
		WillReturnResult(sqlmock.NewResult(0, 1)) // creator credit
	mock.ExpectExec("UPDATE `videos` SET").
		WillReturnResult(sqlmock.NewResult(0, 1)) // video counter
	mock.ExpectExec("INSERT INTO `transactions`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	result, err := d.Gift(7, 42, 2500) // gift 25.00
	require.NoError(t, err)
	assert.Equal(t, int64(7500), result.SenderWallet.TK)
	assert.Equal(t, uint(9), result.CreatorID)
	assert.Equal(t, domain.TxTypeGift, result.Record.Type)
	assert.Equal(t, int64(100), result.Record.Rebate) // creator earns 1 Hype on 25.00
	require.NotNil(t, result.Record.VideoID)
	assert.Equal(t, uint(42), *result.Record.VideoID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
