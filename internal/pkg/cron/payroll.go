package cron

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/storage"
	"github.com/cmlabs-hris/payroll-engine/internal/service/report"
)

// RegisterArchiveJob stores the XLSX payroll register of the month that
// just closed. A month already archived is left untouched.
type RegisterArchiveJob struct {
	mu             sync.Mutex // serializes the exists check and the save
	payrollService payroll.PayrollService
	storage        storage.FileStorage
	now            func() time.Time
}

func NewRegisterArchiveJob(payrollService payroll.PayrollService, fileStorage storage.FileStorage) *RegisterArchiveJob {
	return &RegisterArchiveJob{
		payrollService: payrollService,
		storage:        fileStorage,
		now:            time.Now,
	}
}

// ArchivePath is the storage key of a register export.
func ArchivePath(year int, month time.Month, filename string) string {
	return fmt.Sprintf("registers/%04d-%02d/%s", year, int(month), filename)
}

// Run archives the previous calendar month.
func (j *RegisterArchiveJob) Run(ctx context.Context) error {
	now := j.now()
	prev := now.AddDate(0, 0, -now.Day()) // last day of previous month
	query := payroll.PeriodQuery{Year: prev.Year(), Month: int(prev.Month())}

	return j.Archive(ctx, query)
}

// Archive exports and stores the register of one period.
func (j *RegisterArchiveJob) Archive(ctx context.Context, query payroll.PeriodQuery) error {
	if err := query.Validate(); err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	path := ArchivePath(query.Year, time.Month(query.Month), report.RegisterFilename(query.Period().Label()))

	exists, err := j.storage.Exists(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to check archive: %w", err)
	}
	if exists {
		slog.Debug("Payroll register already archived", "path", path)
		return nil
	}

	export, err := j.payrollService.ExportRegister(ctx, query)
	if err != nil {
		if errors.Is(err, payroll.ErrEmptyRegister) {
			slog.Info("No payroll register to archive", "year", query.Year, "month", query.Month)
			return nil
		}
		return fmt.Errorf("failed to export register: %w", err)
	}

	key, err := j.storage.Save(ctx, bytes.NewReader(export.Data), path)
	if err != nil {
		return fmt.Errorf("failed to archive register: %w", err)
	}

	slog.Info("Payroll register archived",
		"run_id", export.RunID,
		"path", key,
		"payslips", export.Generated,
		"skipped", len(export.Skipped),
	)
	return nil
}
