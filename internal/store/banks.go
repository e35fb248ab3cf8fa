package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/ThaboMollo/Julius/internal/model"
)

// CreateBankConfig registers a bank account for statement reconciliation.
func (s *Store) CreateBankConfig(bankName string, code model.BankCode, frequency string) (model.BankConfig, error) {
	bc := model.BankConfig{
		ID:              uuid.New(),
		BankName:        bankName,
		BankCode:        code,
		UploadFrequency: frequency,
		IsActive:        true,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	_, err := s.db.Exec(`INSERT INTO bank_configs
		(id, bank_name, bank_code, upload_frequency, is_active, last_upload_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, 1, NULL, ?, ?)`,
		bc.ID.String(), bc.BankName, string(bc.BankCode), bc.UploadFrequency,
		fmtTime(bc.CreatedAt), fmtTime(bc.UpdatedAt),
	)
	if err != nil {
		return model.BankConfig{}, err
	}
	return bc, nil
}

// ListBankConfigs returns all configured banks.
func (s *Store) ListBankConfigs() ([]model.BankConfig, error) {
	rows, err := s.db.Query(`SELECT id, bank_name, bank_code, upload_frequency, is_active, last_upload_at, created_at, updated_at
		FROM bank_configs ORDER BY bank_name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var configs []model.BankConfig
	for rows.Next() {
		var bc model.BankConfig
		var id, code, createdAt, updatedAt string
		var lastUpload sql.NullString
		var isActive int
		err := rows.Scan(&id, &bc.BankName, &code, &bc.UploadFrequency, &isActive,
			&lastUpload, &createdAt, &updatedAt)
		if err != nil {
			return nil, err
		}
		if bc.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		bc.BankCode = model.BankCode(code)
		bc.IsActive = isActive != 0
		bc.LastUploadAt = parseNullTime(lastUpload)
		bc.CreatedAt = parseTime(createdAt)
		bc.UpdatedAt = parseTime(updatedAt)
		configs = append(configs, bc)
	}
	return configs, rows.Err()
}

// FindBankConfigByCode returns the active config for a bank code.
func (s *Store) FindBankConfigByCode(code model.BankCode) (model.BankConfig, error) {
	configs, err := s.ListBankConfigs()
	if err != nil {
		return model.BankConfig{}, err
	}
	for _, bc := range configs {
		if bc.BankCode == code && bc.IsActive {
			return bc, nil
		}
	}
	return model.BankConfig{}, ErrNotFound
}

// RecordStatementUpload stores the outcome of one statement reconciliation
// and stamps the bank's last upload time.
func (s *Store) RecordStatementUpload(up model.StatementUpload) error {
	up.ID = uuid.New()
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`INSERT INTO statement_uploads
		(id, bank_config_id, filename, uploaded_at, period_start, period_end,
		 total_transactions, matched_count, unmatched_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		up.ID.String(), up.BankConfigID.String(), up.Filename, fmtTime(up.UploadedAt),
		fmtTime(up.PeriodStart), fmtTime(up.PeriodEnd),
		up.TotalTransactions, up.MatchedCount, up.UnmatchedCount,
	)
	if err != nil {
		return err
	}
	_, err = tx.Exec("UPDATE bank_configs SET last_upload_at = ?, updated_at = ? WHERE id = ?",
		fmtTime(up.UploadedAt), fmtTime(time.Now()), up.BankConfigID.String())
	if err != nil {
		return err
	}
	return tx.Commit()
}
