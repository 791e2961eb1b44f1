package delivery

import (
	"bytes"
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/2beens/gymapi/internal/telemetry/tracing"
)

const archiveFolderName = "gym-reports-archive"

// DriveArchiver keeps a copy of every dispatched document in a Google Drive folder.
type DriveArchiver struct {
	service  *drive.Service
	folderID string
	now      func() time.Time
}

// NewDriveArchiver creates the archiver; when folderID is empty the archive folder is looked up
// by name and created if missing.
func NewDriveArchiver(ctx context.Context, folderID string, opts ...option.ClientOption) (*DriveArchiver, error) {
	driveService, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create drive client: %w", err)
	}

	a := &DriveArchiver{
		service:  driveService,
		folderID: folderID,
		now:      time.Now,
	}

	if a.folderID == "" {
		if a.folderID, err = a.findOrCreateFolder(ctx); err != nil {
			return nil, err
		}
	}

	log.Debugf("reports archive drive folder: %s", a.folderID)
	return a, nil
}

func (a *DriveArchiver) FolderID() string {
	return a.folderID
}

func (a *DriveArchiver) Archive(ctx context.Context, doc Document) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "delivery.archiver.archive")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	fileMeta := &drive.File{
		Name:     fmt.Sprintf("%s_%s", a.now().Format("20060102-150405"), doc.FileName),
		MimeType: "application/pdf",
		Parents:  []string{a.folderID},
	}

	file, err := a.service.
		Files.Create(fileMeta).
		Fields("id").
		Media(bytes.NewReader(doc.Content)).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("%s: failed to upload to drive: %w", fileMeta.Name, err)
	}

	return file.Id, nil
}

func (a *DriveArchiver) findOrCreateFolder(ctx context.Context) (string, error) {
	query := fmt.Sprintf(
		"mimeType = 'application/vnd.google-apps.folder' and trashed = false and name = '%s'",
		archiveFolderName,
	)
	found, err := a.service.
		Files.List().
		Q(query).
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("unable to list drive folders: %w", err)
	}

	if len(found.Files) > 0 {
		if len(found.Files) > 1 {
			log.Warnf("found %d archive folders, will take the first one: %s", len(found.Files), found.Files[0].Id)
		}
		return found.Files[0].Id, nil
	}

	log.Println("reports archive folder not found, creating ...")
	folder, err := a.service.
		Files.Create(&drive.File{
			Name:     archiveFolderName,
			MimeType: "application/vnd.google-apps.folder",
		}).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to create archive folder: %w", err)
	}
	return folder.Id, nil
}
