package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go-careers-backend/internal/domain"
	"go-careers-backend/pkg/apperror"
	"go-careers-backend/pkg/logger"
)

const defaultBulkLockTTL = time.Minute

type bulkUsecase struct {
	appRepo domain.ApplicationRepository
	locker  domain.BulkLocker
	lockTTL time.Duration
	now     func() time.Time
}

func NewBulkUsecase(appRepo domain.ApplicationRepository, locker domain.BulkLocker, lockTTL time.Duration) domain.BulkUsecase {
	if lockTTL <= 0 {
		lockTTL = defaultBulkLockTTL
	}
	return &bulkUsecase{
		appRepo: appRepo,
		locker:  locker,
		lockTTL: lockTTL,
		now:     time.Now,
	}
}

// Execute runs one action over every id independently. Per-id failures are
// collected in the result; only invalid requests and lock contention fail
// the whole call.
func (u *bulkUsecase) Execute(ctx context.Context, actor domain.Actor, req domain.BulkRequest) (*domain.BulkResult, error) {
	ids := normalizeIDs(req.ApplicationIDs)
	if len(ids) == 0 {
		return nil, apperror.BadRequest("No applications specified")
	}
	if !req.Action.IsValid() {
		return nil, apperror.InvalidAction(fmt.Sprintf("Unknown bulk action %q", req.Action))
	}
	data, err := validateBulkData(req.Action, req.Data)
	if err != nil {
		return nil, err
	}

	key := selectionKey(ids)
	unlock, acquired, err := u.locker.TryLock(ctx, key, u.lockTTL)
	if err != nil {
		logger.Log.Error("Bulk lock unavailable", "error", err)
		return nil, apperror.StoreUnavailable(err)
	}
	if !acquired {
		return nil, apperror.Conflict("A bulk action is already in progress for this selection")
	}
	defer unlock()

	result := &domain.BulkResult{
		Action:    req.Action,
		Requested: len(ids),
		Failed:    []domain.BulkFailure{},
	}
	now := u.now().UTC()

	switch req.Action {
	case domain.BulkMoveToStage, domain.BulkReject:
		u.forEach(ctx, ids, result, func(ctx context.Context, id string) error {
			return u.appRepo.UpdateStage(ctx, id, data.Stage, now)
		})
	case domain.BulkArchive:
		u.forEach(ctx, ids, result, func(ctx context.Context, id string) error {
			return u.appRepo.SetArchived(ctx, id, true, now)
		})
	case domain.BulkAddTag:
		u.forEach(ctx, ids, result, func(ctx context.Context, id string) error {
			return u.appRepo.AddTag(ctx, id, data.Tag)
		})
	case domain.BulkRemoveTag:
		u.forEach(ctx, ids, result, func(ctx context.Context, id string) error {
			return u.appRepo.RemoveTag(ctx, id, data.Tag)
		})
	case domain.BulkAssignReviewer:
		u.forEach(ctx, ids, result, func(ctx context.Context, id string) error {
			return u.appRepo.AssignReviewer(ctx, id, data.ReviewerID)
		})
	case domain.BulkSendEmail:
		// Delivery is not wired; the count reflects addressable applications
		u.forEach(ctx, ids, result, func(ctx context.Context, id string) error {
			_, err := u.appRepo.GetByID(ctx, id)
			return err
		})
	case domain.BulkDelete:
		u.deleteAll(ctx, ids, result)
	case domain.BulkExport:
		if err := u.export(ctx, ids, data.Format, result); err != nil {
			return nil, err
		}
	}

	logger.Log.Info("Bulk action finished",
		"action", req.Action,
		"actor", actor.Label(),
		"requested", result.Requested,
		"succeeded", result.Succeeded,
		"failed", len(result.Failed),
	)
	return result, nil
}

func (u *bulkUsecase) IsProcessing(ctx context.Context, ids []string) (bool, error) {
	ids = normalizeIDs(ids)
	if len(ids) == 0 {
		return false, nil
	}
	locked, err := u.locker.IsLocked(ctx, selectionKey(ids))
	if err != nil {
		return false, apperror.StoreUnavailable(err)
	}
	return locked, nil
}

func validateBulkData(action domain.BulkAction, data domain.BulkData) (domain.BulkData, error) {
	switch action {
	case domain.BulkReject:
		data.Stage = domain.StageRejected
	case domain.BulkMoveToStage:
		if data.Stage == "" {
			return data, apperror.InvalidStage("A target stage is required")
		}
		if !data.Stage.IsValid() {
			return data, apperror.InvalidStage(fmt.Sprintf("Unknown pipeline stage %q", data.Stage))
		}
	case domain.BulkAddTag, domain.BulkRemoveTag:
		data.Tag = strings.TrimSpace(data.Tag)
		if data.Tag == "" {
			return data, apperror.BadRequest("A tag is required")
		}
	case domain.BulkAssignReviewer:
		data.ReviewerID = strings.TrimSpace(data.ReviewerID)
		if data.ReviewerID == "" {
			return data, apperror.BadRequest("A reviewer is required")
		}
	case domain.BulkExport:
		switch data.Format {
		case "":
			data.Format = domain.ExportCSV
		case domain.ExportCSV, domain.ExportExcel:
		default:
			return data, apperror.BadRequest(fmt.Sprintf("Unsupported export format %q", data.Format))
		}
	}
	return data, nil
}

// forEach applies fn to every id; one failure never stops the batch
func (u *bulkUsecase) forEach(ctx context.Context, ids []string, result *domain.BulkResult, fn func(ctx context.Context, id string) error) {
	for _, id := range ids {
		if err := fn(ctx, id); err != nil {
			result.Failed = append(result.Failed, bulkFailure(id, err))
			continue
		}
		result.Succeeded++
	}
}

func bulkFailure(id string, err error) domain.BulkFailure {
	var appErr *apperror.AppError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.BulkFailure{ID: id, Kind: apperror.KindNotFound, Reason: "Application not found"}
	case errors.As(err, &appErr):
		return domain.BulkFailure{ID: id, Kind: appErr.Kind, Reason: appErr.Message}
	default:
		logger.Log.Warn("Bulk item failed", "application_id", id, "error", err)
		return domain.BulkFailure{ID: id, Kind: apperror.KindStoreUnavailable, Reason: err.Error()}
	}
}

// deleteAll groups the selection by job and removes each group together with
// its counter decrement in one repository call, so a failed group leaves both
// the rows and the count untouched
func (u *bulkUsecase) deleteAll(ctx context.Context, ids []string, result *domain.BulkResult) {
	apps, err := u.appRepo.ListByIDs(ctx, ids)
	if err != nil {
		for _, id := range ids {
			result.Failed = append(result.Failed, bulkFailure(id, err))
		}
		return
	}

	jobOf := make(map[string]string, len(apps))
	groups := make(map[string][]string)
	for _, app := range apps {
		jobOf[app.ID] = app.JobID
		groups[app.JobID] = append(groups[app.JobID], app.ID)
	}

	outcome := make(map[string]error, len(ids))
	for jobID, group := range groups {
		deleted, err := u.appRepo.DeleteForJob(ctx, jobID, group)
		if err != nil {
			logger.Log.Error("Bulk delete failed for job", "job_id", jobID, "applications", len(group), "error", err)
			for _, id := range group {
				outcome[id] = err
			}
			continue
		}
		gone := make(map[string]bool, len(deleted))
		for _, id := range deleted {
			gone[id] = true
		}
		for _, id := range group {
			if !gone[id] {
				outcome[id] = domain.ErrNotFound
			}
		}
	}

	// Report in request order
	for _, id := range ids {
		if _, ok := jobOf[id]; !ok {
			result.Failed = append(result.Failed, bulkFailure(id, domain.ErrNotFound))
			continue
		}
		if err := outcome[id]; err != nil {
			result.Failed = append(result.Failed, bulkFailure(id, err))
			continue
		}
		result.Succeeded++
	}
}

func (u *bulkUsecase) export(ctx context.Context, ids []string, format domain.ExportFormat, result *domain.BulkResult) error {
	apps, err := u.appRepo.ListByIDs(ctx, ids)
	if err != nil {
		return storeError(err, "Application")
	}

	byID := make(map[string]domain.Application, len(apps))
	for _, app := range apps {
		byID[app.ID] = app
	}

	rows := make([]domain.ExportRow, 0, len(apps))
	for _, id := range ids {
		app, ok := byID[id]
		if !ok {
			result.Failed = append(result.Failed, bulkFailure(id, domain.ErrNotFound))
			continue
		}
		rows = append(rows, exportRow(app))
		result.Succeeded++
	}

	file, err := renderExport(rows, format, u.now())
	if err != nil {
		return apperror.Internal(err)
	}
	result.Export = file
	return nil
}

// normalizeIDs trims, drops blanks and duplicates, keeping the first order
func normalizeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// selectionKey identifies a selection regardless of id order
func selectionKey(ids []string) string {
	sorted := append([]string{}, ids...)
	sort.Strings(sorted)
	sum := sha256.Sum256([]byte(strings.Join(sorted, "\n")))
	return "bulk:" + hex.EncodeToString(sum[:])
}
